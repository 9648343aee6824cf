// Package formula holds the numeric rules of combat: derived stats, damage
// ranges and type effectiveness. Every function is pure.
package formula

import (
	"errors"
	"fmt"

	"showdown-sim/game"
)

var ErrNatureOnHP = errors.New("nature cannot modify HP")

// ComputeStat derives a stat value the way the games do, truncating after
// every step. A non-neutral nature effect on HP is an input error.
func ComputeStat(base, iv, ev int, effect game.NatureEffect, level int, isHP bool) (int, error) {
	if isHP {
		if effect != game.Neutral {
			return 0, fmt.Errorf("compute stat: %w", ErrNatureOnHP)
		}
		return HPStat(base, iv, ev, level), nil
	}
	return OtherStat(base, iv, ev, effect, level), nil
}

func statCore(base, iv, ev, level int) int {
	return (2*base + iv + ev/4) * level / 100
}

func HPStat(base, iv, ev, level int) int {
	return statCore(base, iv, ev, level) + level + 10
}

func OtherStat(base, iv, ev int, effect game.NatureEffect, level int) int {
	v := statCore(base, iv, ev, level) + 5
	switch effect {
	case game.Strengthened:
		return v * 110 / 100
	case game.Weakened:
		return v * 90 / 100
	}
	return v
}

// SpecStat computes stat s for a validated spec.
func SpecStat(spec *game.PokemonSpec, s game.Stat) int {
	base := spec.Species.BaseStats[s]
	if s == game.HP {
		return HPStat(base, spec.IVs[s], spec.EVs[s], spec.Level)
	}
	return OtherStat(base, spec.IVs[s], spec.EVs[s], spec.Nature.Effect(s), spec.Level)
}
