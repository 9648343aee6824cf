package battle

import (
	"log/slog"

	"showdown-sim/random"
)

// Env is the mutable context threaded through transitions: the entropy
// stream and the diagnostic logger. Battles themselves stay immutable.
type Env struct {
	RNG *random.Generator
	Log *slog.Logger
}

// NewEnv uses a discarding logger when logger is nil.
func NewEnv(rng *random.Generator, logger *slog.Logger) *Env {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Env{RNG: rng, Log: logger}
}

// Fork returns an Env with an independent entropy stream and the same logger.
func (e *Env) Fork() *Env {
	return &Env{RNG: e.RNG.Fork(), Log: e.Log}
}
