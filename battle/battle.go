// Package battle is the single-active-Pokémon turn machine. A Battle is an
// immutable value; every transition returns a new one, so a battle replayed
// from the same seed and choices always lands in the same state.
package battle

import (
	"fmt"

	"showdown-sim/game"
)

type Side struct {
	active Pokemon
}

func (s Side) Active() Pokemon { return s.active }

type Battle struct {
	turn        int
	sides       [2]Side
	choices     [2]Choice
	phase       Phase
	faster      game.Player
	fasterKnown bool
}

// New starts a battle at turn 1 with both leads at full HP.
func New(black, white *game.PokemonSpec) Battle {
	return Battle{
		turn: 1,
		sides: [2]Side{
			game.Black: {active: NewPokemon(black)},
			game.White: {active: NewPokemon(white)},
		},
		phase: Begin,
	}
}

func (b Battle) Turn() int                    { return b.turn }
func (b Battle) Phase() Phase                 { return b.phase }
func (b Battle) Side(p game.Player) Side      { return b.sides[p] }
func (b Battle) Active(p game.Player) Pokemon { return b.sides[p].active }
func (b Battle) Pending(p game.Player) Choice { return b.choices[p] }

// Faster reports which player acts first this turn, once it is known.
func (b Battle) Faster() (game.Player, bool) { return b.faster, b.fasterKnown }

// WithActive replaces a side's active Pokémon, e.g. to resume from a known HP.
func (b Battle) WithActive(p game.Player, pk Pokemon) Battle {
	b.sides[p] = Side{active: pk}
	return b
}

// Choices lists the legal decisions for p. It is empty outside Begin and
// when p's active Pokémon has fainted.
func (b Battle) Choices(p game.Player) []Choice {
	if b.phase != Begin {
		return nil
	}
	active := b.sides[p].active
	if active.Fainted() {
		return nil
	}
	out := make([]Choice, 0, len(active.Moves()))
	for _, m := range active.Moves() {
		out = append(out, NewMoveChoice(m))
	}
	return out
}

// Simulate queues both choices and advances until either player has a
// decision to make again.
func (b Battle) Simulate(env *Env, black, white Choice) (Battle, error) {
	b.choices = [2]Choice{game.Black: black, game.White: white}
	for {
		var err error
		b, err = b.Step(env)
		if err != nil {
			return b, err
		}
		if len(b.Choices(game.Black)) > 0 || len(b.Choices(game.White)) > 0 {
			return b, nil
		}
		// both actives down: nobody will ever have a choice again
		if b.phase == Begin {
			return b, nil
		}
	}
}

// Step applies one phase transition.
func (b Battle) Step(env *Env) (Battle, error) {
	switch b.phase {
	case Begin:
		b.phase = ComputeTurnOrder
		return b, nil
	case ComputeTurnOrder:
		b.faster = b.computeFaster(env)
		b.fasterKnown = true
		b.phase = FirstAttack
		return b, nil
	case FirstAttack:
		if !b.fasterKnown {
			return b, fmt.Errorf("turn %d %s: %w", b.turn, b.phase, ErrSpeedUnresolved)
		}
		next, err := b.makeMove(env, b.faster)
		if err != nil {
			return b, err
		}
		next.phase = SecondAttack
		return next, nil
	case SecondAttack:
		if !b.fasterKnown {
			return b, fmt.Errorf("turn %d %s: %w", b.turn, b.phase, ErrSpeedUnresolved)
		}
		next, err := b.makeMove(env, b.faster.Opponent())
		if err != nil {
			return b, err
		}
		next.phase = End
		return next, nil
	case End:
		b.turn++
		b.choices = [2]Choice{}
		b.fasterKnown = false
		b.faster = game.Black
		b.phase = Begin
		return b, nil
	}
	return b, fmt.Errorf("%w: %d", ErrUnknownPhase, b.phase)
}

func (b Battle) computeFaster(env *Env) game.Player {
	black := b.sides[game.Black].active.Stat(game.Speed)
	white := b.sides[game.White].active.Stat(game.Speed)
	switch {
	case black > white:
		return game.Black
	case white > black:
		return game.White
	}
	return env.RNG.SpeedTieWinner()
}

// Winner reports the player whose opponent has fainted. Both sides fainted
// at once is unreachable in a correct simulation and returns ErrBothFainted.
func (b Battle) Winner() (game.Player, bool, error) {
	blackDown := b.sides[game.Black].active.Fainted()
	whiteDown := b.sides[game.White].active.Fainted()
	switch {
	case blackDown && whiteDown:
		return game.Black, false, fmt.Errorf("turn %d: %w", b.turn, ErrBothFainted)
	case whiteDown:
		return game.Black, true, nil
	case blackDown:
		return game.White, true, nil
	}
	return game.Black, false, nil
}
