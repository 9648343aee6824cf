package battle

import (
	"showdown-sim/formula"
	"showdown-sim/game"
)

// Pokemon is the runtime state of one team member. Every change produces a
// new value; stats are derived from the spec on each call.
type Pokemon struct {
	spec   *game.PokemonSpec
	hp     int
	status game.Status
}

// NewPokemon returns spec at full HP with no status.
func NewPokemon(spec *game.PokemonSpec) Pokemon {
	return Pokemon{spec: spec, hp: formula.SpecStat(spec, game.HP), status: game.StatusOK}
}

func (p Pokemon) Spec() *game.PokemonSpec { return p.spec }
func (p Pokemon) Name() string            { return p.spec.Species.Name }
func (p Pokemon) Types() []game.Type      { return p.spec.Species.Types }
func (p Pokemon) Moves() []game.Move      { return p.spec.Moves }
func (p Pokemon) HP() int                 { return p.hp }
func (p Pokemon) Status() game.Status     { return p.status }
func (p Pokemon) Fainted() bool           { return p.status == game.StatusFaint }

func (p Pokemon) MaxHP() int {
	return formula.SpecStat(p.spec, game.HP)
}

func (p Pokemon) Stat(s game.Stat) int {
	return formula.SpecStat(p.spec, s)
}

// WithHP clamps hp to [0, MaxHP]. Reaching zero faints the Pokémon; raising
// a fainted one above zero clears the faint.
func (p Pokemon) WithHP(hp int) Pokemon {
	hp = max(0, min(hp, p.MaxHP()))
	p.hp = hp
	switch {
	case hp == 0:
		p.status = game.StatusFaint
	case p.status == game.StatusFaint:
		p.status = game.StatusOK
	}
	return p
}

func (p Pokemon) TakeDamage(damage int) Pokemon {
	return p.WithHP(p.hp - damage)
}
