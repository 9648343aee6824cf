// Package random supplies the seeded entropy used by battles and search.
// A Policy decides how many distinct damage rolls a hit can take, trading
// fidelity for cheaper playouts.
package random

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"showdown-sim/game"
)

type Policy uint8

const (
	// Deterministic always rolls the same near-average percentage.
	Deterministic Policy = iota
	// TwoPoint rolls one of two percentages matching the full range's mean and spread.
	TwoPoint
	// Full rolls any of the sixteen percentages from 85 to 100.
	Full
)

var (
	deterministicRolls = []int{92}
	twoPointRolls      = []int{88, 97}
	fullRolls          = []int{85, 86, 87, 88, 89, 90, 91, 92, 93, 94, 95, 96, 97, 98, 99, 100}
)

// Rolls returns the damage percentages the policy samples from.
func (p Policy) Rolls() []int {
	switch p {
	case Deterministic:
		return deterministicRolls
	case TwoPoint:
		return twoPointRolls
	}
	return fullRolls
}

func (p Policy) String() string {
	switch p {
	case Deterministic:
		return "deterministic"
	case TwoPoint:
		return "two-point"
	case Full:
		return "full"
	}
	return "unknown"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deterministic", "single":
		return Deterministic, nil
	case "two-point", "twopoint", "two_point":
		return TwoPoint, nil
	case "full", "":
		return Full, nil
	}
	return Full, fmt.Errorf("unknown random policy %q", s)
}

// Generator is not safe for concurrent use; give each worker its own via Fork.
type Generator struct {
	policy Policy
	rng    *rand.Rand
}

func New(policy Policy, seed uint64) *Generator {
	return &Generator{
		policy: policy,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (g *Generator) Policy() Policy { return g.policy }

// MoveDamage returns one damage percentage from the policy's roll set.
func (g *Generator) MoveDamage() int {
	rolls := g.policy.Rolls()
	if len(rolls) == 1 {
		return rolls[0]
	}
	return rolls[g.rng.IntN(len(rolls))]
}

// SpeedTieWinner flips a fair coin between the two players.
func (g *Generator) SpeedTieWinner() game.Player {
	if g.rng.IntN(2) == 0 {
		return game.Black
	}
	return game.White
}

func (g *Generator) IntN(n int) int { return g.rng.IntN(n) }

func (g *Generator) Float64() float64 { return g.rng.Float64() }

func (g *Generator) Uint64() uint64 { return g.rng.Uint64() }

// Fork derives an independent generator with the same policy, advancing
// this generator's stream by one draw.
func (g *Generator) Fork() *Generator {
	return New(g.policy, g.rng.Uint64())
}
