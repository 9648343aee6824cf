// Package ai chooses actions for a side: a uniform random baseline, mixed
// strategy realization, and a flat Monte Carlo search solved as a
// normal-form game.
package ai

import (
	"context"

	"showdown-sim/battle"
	"showdown-sim/game"
)

// AI decides one choice for player p at a decision point of b.
type AI interface {
	Decide(ctx context.Context, env *battle.Env, b battle.Battle, p game.Player) (battle.Choice, error)
}

// Strategist produces a distribution over p's choices instead of a single one.
type Strategist interface {
	Strategy(ctx context.Context, env *battle.Env, b battle.Battle, p game.Player) (MixedStrategy[battle.Choice], error)
}

// RandomAI picks uniformly among the legal choices, or passes when there
// are none.
type RandomAI struct{}

func (RandomAI) Decide(_ context.Context, env *battle.Env, b battle.Battle, p game.Player) (battle.Choice, error) {
	choices := b.Choices(p)
	if len(choices) == 0 {
		return battle.Pass(), nil
	}
	return choices[env.RNG.IntN(len(choices))], nil
}

// Mixed turns a Strategist into an AI by sampling its distribution.
type Mixed struct {
	Strategist  Strategist
	ChanceFloor float64
}

func (m Mixed) Decide(ctx context.Context, env *battle.Env, b battle.Battle, p game.Player) (battle.Choice, error) {
	s, err := m.Strategist.Strategy(ctx, env, b, p)
	if err != nil {
		return battle.Choice{}, err
	}
	if s.Len() == 0 {
		return battle.Pass(), nil
	}
	return s.PickOne(env.RNG, m.ChanceFloor)
}
