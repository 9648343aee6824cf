package battle

import "errors"

// These report defects in the state machine, never game conditions, and are
// passed to the caller unrecovered.
var (
	ErrNoChoice        = errors.New("no choice queued for acting player")
	ErrSpeedUnresolved = errors.New("turn order not computed")
	ErrBothFainted     = errors.New("both active pokemon fainted")
	ErrChoiceMismatch  = errors.New("choice cannot be interpreted")
	ErrUnknownPhase    = errors.New("unknown phase")
)
