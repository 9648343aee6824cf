package battle

// Phase is a sub-step of one game turn. Phases cycle
// Begin -> ComputeTurnOrder -> FirstAttack -> SecondAttack -> End -> Begin.
type Phase uint8

const (
	// Begin is where decisions are collected.
	Begin Phase = iota
	ComputeTurnOrder
	FirstAttack
	SecondAttack
	End
)

func (p Phase) String() string {
	switch p {
	case Begin:
		return "BEGIN"
	case ComputeTurnOrder:
		return "COMPUTE_TURN_ORDER"
	case FirstAttack:
		return "FIRST_ATTACK"
	case SecondAttack:
		return "SECOND_ATTACK"
	case End:
		return "END"
	}
	return "UNKNOWN"
}
