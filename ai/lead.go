package ai

import (
	"context"
	"errors"

	"showdown-sim/battle"
	"showdown-sim/game"
)

var ErrEmptyTeam = errors.New("team has no members")

// RandomLead picks a lead index uniformly.
func RandomLead(env *battle.Env, team []*game.PokemonSpec) (int, error) {
	if len(team) == 0 {
		return 0, ErrEmptyTeam
	}
	return env.RNG.IntN(len(team)), nil
}

// LeadMatrix plays every lead pairing out from the first turn and returns
// Black's expected score per (black lead, white lead).
func (mc *MonteCarlo) LeadMatrix(ctx context.Context, env *battle.Env, black, white []*game.PokemonSpec) ([][]float64, error) {
	if len(black) == 0 || len(white) == 0 {
		return nil, ErrEmptyTeam
	}
	values, _, err := mc.runCells(ctx, env, len(black), len(white), mc.Playouts,
		func(ctx context.Context, env *battle.Env, i, j int) (float64, error) {
			out, err := RunToCompletion(ctx, env, battle.New(black[i], white[j]), mc.rollout(), mc.rollout(), mc.MaxTurns)
			if err != nil {
				return 0, err
			}
			return out.Score(game.Black), nil
		})
	return values, err
}

// ChooseLead returns p's distribution over its own lead indices.
func (mc *MonteCarlo) ChooseLead(ctx context.Context, env *battle.Env, black, white []*game.PokemonSpec, p game.Player) (MixedStrategy[int], error) {
	values, err := mc.LeadMatrix(ctx, env, black, white)
	if err != nil {
		return MixedStrategy[int]{}, err
	}
	return FindBestStrategy(orient(values, p), env.Log), nil
}
