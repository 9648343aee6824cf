package ai

import (
	"context"
	"fmt"

	"showdown-sim/battle"
	"showdown-sim/game"
)

// DefaultMaxTurns bounds a playout; battles where neither side can hurt the
// other would otherwise never end.
const DefaultMaxTurns = 1000

type Outcome struct {
	Battle battle.Battle
	Winner game.Player
	Draw   bool
	Turns  int
}

// Score is the outcome from p's point of view: 1 for a win, 0.5 for a draw.
func (o Outcome) Score(p game.Player) float64 {
	switch {
	case o.Draw:
		return 0.5
	case o.Winner == p:
		return 1
	}
	return 0
}

// RunToCompletion lets both AIs play b out until a side faints or maxTurns
// turns pass, which is reported as a draw.
func RunToCompletion(ctx context.Context, env *battle.Env, b battle.Battle, black, white AI, maxTurns int) (Outcome, error) {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	start := b.Turn()
	for {
		winner, ok, err := b.Winner()
		if err != nil {
			return Outcome{Battle: b}, err
		}
		if ok {
			return Outcome{Battle: b, Winner: winner, Turns: b.Turn() - start}, nil
		}
		if b.Turn()-start >= maxTurns {
			return Outcome{Battle: b, Draw: true, Turns: b.Turn() - start}, nil
		}
		if err := ctx.Err(); err != nil {
			return Outcome{Battle: b}, err
		}

		bc, err := black.Decide(ctx, env, b, game.Black)
		if err != nil {
			return Outcome{Battle: b}, fmt.Errorf("black decide: %w", err)
		}
		wc, err := white.Decide(ctx, env, b, game.White)
		if err != nil {
			return Outcome{Battle: b}, fmt.Errorf("white decide: %w", err)
		}
		b, err = b.Simulate(env, bc, wc)
		if err != nil {
			return Outcome{Battle: b}, err
		}
	}
}
