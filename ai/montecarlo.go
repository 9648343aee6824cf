package ai

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"showdown-sim/battle"
	"showdown-sim/game"
)

// MonteCarlo scores every (black, white) choice pair by random playouts and
// solves the resulting payoff table.
type MonteCarlo struct {
	Playouts    int
	Workers     int
	ChanceFloor float64
	MaxTurns    int
	// Rollout continues each playout after the first turn; RandomAI when nil.
	Rollout AI
}

// OutcomeMatrix holds Black's win probability for each choice pair: rows
// are Black's choices, columns White's.
type OutcomeMatrix struct {
	Rows     []battle.Choice
	Cols     []battle.Choice
	Values   [][]float64
	Playouts [][]int
}

// Oriented returns the payoff table from p's point of view along with p's
// choices. For White the table is transposed and complemented.
func (m OutcomeMatrix) Oriented(p game.Player) ([][]float64, []battle.Choice) {
	if p == game.Black {
		return m.Values, m.Rows
	}
	return orient(m.Values, p), m.Cols
}

func orient(values [][]float64, p game.Player) [][]float64 {
	if p == game.Black {
		return values
	}
	if len(values) == 0 {
		return nil
	}
	out := make([][]float64, len(values[0]))
	for j := range out {
		out[j] = make([]float64, len(values))
		for i := range values {
			out[j][i] = 1 - values[i][j]
		}
	}
	return out
}

func (mc *MonteCarlo) rollout() AI {
	if mc.Rollout == nil {
		return RandomAI{}
	}
	return mc.Rollout
}

// ComputeExpectedOutcomesMatrix spreads totalPlayouts evenly over every
// choice pair. A side without legal choices gets a single pass column so the
// table is never empty.
func (mc *MonteCarlo) ComputeExpectedOutcomesMatrix(ctx context.Context, env *battle.Env, b battle.Battle, totalPlayouts int) (OutcomeMatrix, error) {
	rows := b.Choices(game.Black)
	if len(rows) == 0 {
		// TODO: a lone pass row against real choices skews asymmetric positions; revisit once switching is modelled.
		rows = []battle.Choice{battle.Pass()}
	}
	cols := b.Choices(game.White)
	if len(cols) == 0 {
		cols = []battle.Choice{battle.Pass()}
	}

	values, counts, err := mc.runCells(ctx, env, len(rows), len(cols), totalPlayouts,
		func(ctx context.Context, env *battle.Env, i, j int) (float64, error) {
			next, err := b.Simulate(env, rows[i], cols[j])
			if err != nil {
				return 0, err
			}
			out, err := RunToCompletion(ctx, env, next, mc.rollout(), mc.rollout(), mc.MaxTurns)
			if err != nil {
				return 0, err
			}
			return out.Score(game.Black), nil
		})
	if err != nil {
		return OutcomeMatrix{}, err
	}
	return OutcomeMatrix{Rows: rows, Cols: cols, Values: values, Playouts: counts}, nil
}

// FindStrategyFromExpectedOutcomes solves m for player p.
func FindStrategyFromExpectedOutcomes(env *battle.Env, m OutcomeMatrix, p game.Player) MixedStrategy[battle.Choice] {
	table, choices := m.Oriented(p)
	rows := FindBestStrategy(table, env.Log)
	entries := make([]Weighted[battle.Choice], 0, rows.Len())
	for _, e := range rows.Entries() {
		entries = append(entries, Weighted[battle.Choice]{Value: choices[e.Value], Weight: e.Weight})
	}
	return NewMixedStrategy(env.Log, entries...)
}

func (mc *MonteCarlo) Strategy(ctx context.Context, env *battle.Env, b battle.Battle, p game.Player) (MixedStrategy[battle.Choice], error) {
	m, err := mc.ComputeExpectedOutcomesMatrix(ctx, env, b, mc.Playouts)
	if err != nil {
		return MixedStrategy[battle.Choice]{}, err
	}
	return FindStrategyFromExpectedOutcomes(env, m, p), nil
}

func (mc *MonteCarlo) Decide(ctx context.Context, env *battle.Env, b battle.Battle, p game.Player) (battle.Choice, error) {
	return Mixed{Strategist: mc, ChanceFloor: mc.ChanceFloor}.Decide(ctx, env, b, p)
}

type playFunc func(ctx context.Context, env *battle.Env, row, col int) (float64, error)

// runCells plays every cell of a rows x cols table on a bounded worker pool.
// Each cell owns an Env forked up front in row-major order, so results do
// not depend on the number of workers. When ctx ends, finished playouts are
// kept and a cell without any reports 0.5.
func (mc *MonteCarlo) runCells(ctx context.Context, env *battle.Env, rows, cols, totalPlayouts int, play playFunc) ([][]float64, [][]int, error) {
	perCell := max(1, totalPlayouts/(rows*cols))
	workers := mc.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	envs := make([][]*battle.Env, rows)
	values := make([][]float64, rows)
	counts := make([][]int, rows)
	for i := range rows {
		envs[i] = make([]*battle.Env, cols)
		values[i] = make([]float64, cols)
		counts[i] = make([]int, cols)
		for j := range cols {
			envs[i][j] = env.Fork()
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range rows {
		for j := range cols {
			g.Go(func() error {
				score, n := 0.0, 0
				for ; n < perCell; n++ {
					if gctx.Err() != nil {
						break
					}
					s, err := play(gctx, envs[i][j], i, j)
					if isContextErr(err) {
						break
					}
					if err != nil {
						return fmt.Errorf("cell %d,%d: %w", i, j, err)
					}
					score += s
				}
				counts[i][j] = n
				if n == 0 {
					values[i][j] = 0.5
				} else {
					values[i][j] = score / float64(n)
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if ctx.Err() != nil {
		env.Log.Info("search stopped early", "reason", ctx.Err(), "per_cell", perCell)
	}
	env.Log.Debug("outcome table computed", "rows", rows, "cols", cols, "per_cell", perCell)
	return values, counts, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
