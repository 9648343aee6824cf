package formula

const (
	critNumerator  = 6144
	modDenominator = 4096
	minRollPercent = 85
	maxRollPercent = 100
)

// DamageRange is the inclusive span of damage a hit can roll.
type DamageRange struct {
	Min int
	Max int
}

// Roll applies a random percentage in [85,100] to the top of the range.
func (r DamageRange) Roll(percent int) int {
	return r.Max * percent / maxRollPercent
}

// ComputeDamage is the base damage formula. The divisions happen in this
// exact order; changing it moves results by one in edge cases.
func ComputeDamage(level, offense, defense, power int, crit bool) DamageRange {
	damage := (2*level/5 + 2) * power * offense / defense
	damage = damage/50 + 2
	if crit {
		damage = modify(damage, critNumerator)
	}
	return DamageRange{Min: damage * minRollPercent / maxRollPercent, Max: damage}
}

// modify applies a 4096-based fixed-point modifier, rounding to nearest with
// halves going down.
func modify(value, numerator int) int {
	return (value*numerator + modDenominator/2 - 1) / modDenominator
}
