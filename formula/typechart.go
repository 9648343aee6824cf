package formula

import (
	"errors"
	"fmt"

	"showdown-sim/game"
)

var ErrDefenderTypes = errors.New("defender must have one or two types")

type Effectiveness int8

const (
	None Effectiveness = iota
	Quarter
	Half
	Normal
	Double
	Quadruple
)

var multipliers = [...]float64{0, 0.25, 0.5, 1, 2, 4}

func (e Effectiveness) Multiplier() float64 {
	return multipliers[e]
}

func (e Effectiveness) String() string {
	switch e {
	case None:
		return "NONE"
	case Quarter:
		return "QUARTER"
	case Half:
		return "HALF"
	case Normal:
		return "NORMAL"
	case Double:
		return "DOUBLE"
	case Quadruple:
		return "QUADRUPLE"
	}
	return "?"
}

// attacking type -> defending type -> multiplier; missing entries are neutral
var typeChart = map[game.Type]map[game.Type]float64{
	game.Normal: {
		game.Rock: 0.5, game.Ghost: 0, game.Steel: 0.5,
	},
	game.Fire: {
		game.Fire: 0.5, game.Water: 0.5, game.Grass: 2, game.Ice: 2, game.Bug: 2, game.Rock: 0.5, game.Dragon: 0.5, game.Steel: 2,
	},
	game.Water: {
		game.Fire: 2, game.Water: 0.5, game.Grass: 0.5, game.Ground: 2, game.Rock: 2, game.Dragon: 0.5,
	},
	game.Electric: {
		game.Water: 2, game.Electric: 0.5, game.Grass: 0.5, game.Ground: 0, game.Flying: 2, game.Dragon: 0.5,
	},
	game.Grass: {
		game.Fire: 0.5, game.Water: 2, game.Grass: 0.5, game.Poison: 0.5, game.Ground: 2, game.Flying: 0.5, game.Bug: 0.5, game.Rock: 2, game.Dragon: 0.5, game.Steel: 0.5,
	},
	game.Ice: {
		game.Fire: 0.5, game.Water: 0.5, game.Grass: 2, game.Ice: 0.5, game.Ground: 2, game.Flying: 2, game.Dragon: 2, game.Steel: 0.5,
	},
	game.Fighting: {
		game.Normal: 2, game.Ice: 2, game.Poison: 0.5, game.Flying: 0.5, game.Psychic: 0.5, game.Bug: 0.5, game.Rock: 2, game.Ghost: 0, game.Dark: 2, game.Steel: 2, game.Fairy: 0.5,
	},
	game.Poison: {
		game.Grass: 2, game.Poison: 0.5, game.Ground: 0.5, game.Rock: 0.5, game.Ghost: 0.5, game.Steel: 0, game.Fairy: 2,
	},
	game.Ground: {
		game.Fire: 2, game.Electric: 2, game.Grass: 0.5, game.Poison: 2, game.Flying: 0, game.Bug: 0.5, game.Rock: 2, game.Steel: 2,
	},
	game.Flying: {
		game.Electric: 0.5, game.Grass: 2, game.Fighting: 2, game.Bug: 2, game.Rock: 0.5, game.Steel: 0.5,
	},
	game.Psychic: {
		game.Fighting: 2, game.Poison: 2, game.Psychic: 0.5, game.Dark: 0, game.Steel: 0.5,
	},
	game.Bug: {
		game.Fire: 0.5, game.Grass: 2, game.Fighting: 0.5, game.Poison: 0.5, game.Flying: 0.5, game.Psychic: 2, game.Ghost: 0.5, game.Dark: 2, game.Steel: 0.5, game.Fairy: 0.5,
	},
	game.Rock: {
		game.Fire: 2, game.Ice: 2, game.Fighting: 0.5, game.Ground: 0.5, game.Flying: 2, game.Bug: 2, game.Steel: 0.5,
	},
	game.Ghost: {
		game.Normal: 0, game.Psychic: 2, game.Ghost: 2, game.Dark: 0.5,
	},
	game.Dragon: {
		game.Dragon: 2, game.Steel: 0.5, game.Fairy: 0,
	},
	game.Dark: {
		game.Fighting: 0.5, game.Psychic: 2, game.Ghost: 2, game.Dark: 0.5, game.Fairy: 0.5,
	},
	game.Steel: {
		game.Fire: 0.5, game.Water: 0.5, game.Electric: 0.5, game.Ice: 2, game.Rock: 2, game.Steel: 0.5, game.Fairy: 2,
	},
	game.Fairy: {
		game.Fire: 0.5, game.Fighting: 2, game.Poison: 0.5, game.Dragon: 2, game.Dark: 2, game.Steel: 0.5,
	},
}

// ComputeTypeEffectiveness sums one step per defending type: up for super
// effective, down for resisted. An immunity in any slot wins outright.
func ComputeTypeEffectiveness(attack game.Type, defenders []game.Type) (Effectiveness, error) {
	if len(defenders) == 0 || len(defenders) > 2 {
		return None, fmt.Errorf("%w: got %d", ErrDefenderTypes, len(defenders))
	}
	acc := 0
	for _, d := range defenders {
		m, ok := typeChart[attack][d]
		if !ok {
			continue
		}
		switch {
		case m == 0:
			return None, nil
		case m > 1:
			acc++
		case m < 1:
			acc--
		}
	}
	return Normal + Effectiveness(acc), nil
}
