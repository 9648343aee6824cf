package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"showdown-sim/random"
)

// NormalizationTolerance is how far weights may sum away from 1 before a
// warning is logged.
const NormalizationTolerance = 0.1

var ErrEmptyStrategy = errors.New("strategy has no positive weights")

type Weighted[T comparable] struct {
	Value  T
	Weight float64
}

// MixedStrategy is a probability distribution over a finite set of values.
// Entries keep their insertion order so sampling is reproducible from a seed.
type MixedStrategy[T comparable] struct {
	entries []Weighted[T]
}

// NewMixedStrategy merges duplicate values and warns, without rejecting,
// when the weights do not sum to roughly 1.
func NewMixedStrategy[T comparable](logger *slog.Logger, entries ...Weighted[T]) MixedStrategy[T] {
	index := make(map[T]int, len(entries))
	var merged []Weighted[T]
	for _, e := range entries {
		if i, ok := index[e.Value]; ok {
			merged[i].Weight += e.Weight
			continue
		}
		index[e.Value] = len(merged)
		merged = append(merged, e)
	}
	m := MixedStrategy[T]{entries: merged}
	if total := m.Total(); len(merged) > 0 && math.Abs(total-1) > NormalizationTolerance {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("mixed strategy weights not normalized", "total", total, "entries", len(merged))
	}
	return m
}

// CreateEvenStrategy weights every value equally.
func CreateEvenStrategy[T comparable](values []T) MixedStrategy[T] {
	entries := make([]Weighted[T], 0, len(values))
	for _, v := range values {
		entries = append(entries, Weighted[T]{Value: v, Weight: 1 / float64(len(values))})
	}
	return NewMixedStrategy(nil, entries...)
}

func (m MixedStrategy[T]) Entries() []Weighted[T] {
	return append([]Weighted[T](nil), m.entries...)
}

// Choices returns the distribution as a value -> weight map.
func (m MixedStrategy[T]) Choices() map[T]float64 {
	out := make(map[T]float64, len(m.entries))
	for _, e := range m.entries {
		out[e.Value] = e.Weight
	}
	return out
}

func (m MixedStrategy[T]) Len() int { return len(m.entries) }

func (m MixedStrategy[T]) Probability(v T) float64 {
	for _, e := range m.entries {
		if e.Value == v {
			return e.Weight
		}
	}
	return 0
}

func (m MixedStrategy[T]) Total() float64 {
	total := 0.0
	for _, e := range m.entries {
		total += e.Weight
	}
	return total
}

// PickOne draws one value in proportion to its weight. Entries whose
// normalized probability is below chanceFloor are dropped first; if that
// would drop everything the floor is ignored.
func (m MixedStrategy[T]) PickOne(g *random.Generator, chanceFloor float64) (T, error) {
	b := newBasket(m.entries, chanceFloor)
	if b.total() <= 0 {
		var zero T
		return zero, fmt.Errorf("pick from %d entries: %w", len(m.entries), ErrEmptyStrategy)
	}
	return b.pick(g.Float64() * b.total()), nil
}

// basket holds ascending running totals of the weights.
type basket[T comparable] struct {
	values     []T
	cumulative []float64
}

func newBasket[T comparable](entries []Weighted[T], chanceFloor float64) basket[T] {
	total := 0.0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	b := fill(entries, func(e Weighted[T]) bool {
		return e.Weight > 0 && e.Weight/total >= chanceFloor
	})
	if b.total() <= 0 {
		b = fill(entries, func(e Weighted[T]) bool { return e.Weight > 0 })
	}
	return b
}

func fill[T comparable](entries []Weighted[T], keep func(Weighted[T]) bool) basket[T] {
	var b basket[T]
	running := 0.0
	for _, e := range entries {
		if !keep(e) {
			continue
		}
		running += e.Weight
		b.values = append(b.values, e.Value)
		b.cumulative = append(b.cumulative, running)
	}
	return b
}

func (b basket[T]) total() float64 {
	if len(b.cumulative) == 0 {
		return 0
	}
	return b.cumulative[len(b.cumulative)-1]
}

// pick maps draw in [0, total) to the first entry whose running total
// exceeds it.
func (b basket[T]) pick(draw float64) T {
	i := sort.Search(len(b.cumulative), func(i int) bool { return b.cumulative[i] > draw })
	if i == len(b.values) {
		i--
	}
	return b.values[i]
}
