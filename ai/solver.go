package ai

import "log/slog"

const payoffEpsilon = 1e-9

// FindBestStrategy treats table[i][j] as our payoff for row i against
// opponent column j and assumes the opponent plays uniformly at random: the
// rows with the highest average payoff share the weight evenly.
//
// This is a heuristic, not a Nash equilibrium. It is only right for games
// where a uniform opponent is a best response (symmetric ones such as
// Rock-Paper-Scissors); a linear-program solver would replace it.
func FindBestStrategy(table [][]float64, logger *slog.Logger) MixedStrategy[int] {
	if len(table) == 0 {
		return MixedStrategy[int]{}
	}
	averages := make([]float64, len(table))
	best := averages[0]
	for i, row := range table {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		if len(row) > 0 {
			averages[i] = sum / float64(len(row))
		}
		if i == 0 || averages[i] > best {
			best = averages[i]
		}
	}

	var rows []int
	for i, avg := range averages {
		if best-avg <= payoffEpsilon {
			rows = append(rows, i)
		}
	}
	entries := make([]Weighted[int], 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Weighted[int]{Value: r, Weight: 1 / float64(len(rows))})
	}
	return NewMixedStrategy(logger, entries...)
}
