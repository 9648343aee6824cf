package battle

import (
	"fmt"

	"showdown-sim/game"
)

type ChoiceKind uint8

const (
	// NoChoice is the zero value: nothing has been queued.
	NoChoice ChoiceKind = iota
	MoveChoice
	SwitchChoice
	// PassChoice stands in for a side with no legal action when building
	// search matrices.
	PassChoice
)

// Choice is one player's decision for a turn. Only the fields belonging to
// Kind are set, which keeps Choice comparable.
type Choice struct {
	Kind   ChoiceKind
	Move   game.Move
	Target int
}

func NewMoveChoice(m game.Move) Choice { return Choice{Kind: MoveChoice, Move: m} }

func NewSwitchChoice(target int) Choice { return Choice{Kind: SwitchChoice, Target: target} }

func Pass() Choice { return Choice{Kind: PassChoice} }

func (c Choice) String() string {
	switch c.Kind {
	case NoChoice:
		return "none"
	case MoveChoice:
		return "move " + c.Move.Name
	case SwitchChoice:
		return fmt.Sprintf("switch %d", c.Target)
	case PassChoice:
		return "pass"
	}
	return "?"
}
