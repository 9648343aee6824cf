package battle

import (
	"fmt"

	"showdown-sim/formula"
	"showdown-sim/game"
)

// makeMove resolves mover's queued choice against the opposing active
// Pokémon.
func (b Battle) makeMove(env *Env, mover game.Player) (Battle, error) {
	attacker := b.sides[mover].active
	if attacker.Fainted() {
		return b, nil
	}

	choice := b.choices[mover]
	switch choice.Kind {
	case MoveChoice:
	case NoChoice:
		return b, fmt.Errorf("turn %d %s %s: %w", b.turn, b.phase, mover, ErrNoChoice)
	case SwitchChoice, PassChoice:
		env.Log.Debug("unhandled choice skipped", "turn", b.turn, "player", mover, "choice", choice.String())
		return b, nil
	default:
		return b, fmt.Errorf("turn %d %s: %w: kind %d", b.turn, mover, ErrChoiceMismatch, choice.Kind)
	}

	move := choice.Move
	if move.Power == 0 {
		env.Log.Debug("move without direct damage skipped", "turn", b.turn, "player", mover, "move", move.Name)
		return b, nil
	}

	defenderSide := mover.Opponent()
	defender := b.sides[defenderSide].active
	dmgRange, eff, err := Estimate(attacker, defender, move)
	if err != nil {
		return b, err
	}
	damage := applyEffectiveness(dmgRange.Roll(env.RNG.MoveDamage()), eff)

	env.Log.Debug("move resolved",
		"turn", b.turn,
		"player", mover,
		"attacker", attacker.Name(),
		"move", move.Name,
		"effectiveness", eff.String(),
		"damage", damage,
	)

	b.sides[defenderSide] = Side{active: defender.TakeDamage(damage)}
	return b, nil
}

// Estimate returns the unmodified damage range of move from attacker to
// defender and the type effectiveness that scales it.
func Estimate(attacker, defender Pokemon, move game.Move) (formula.DamageRange, formula.Effectiveness, error) {
	eff, err := formula.ComputeTypeEffectiveness(move.Type, defender.Types())
	if err != nil {
		return formula.DamageRange{}, eff, fmt.Errorf("%s vs %s: %w", move.Name, defender.Name(), err)
	}
	offense, defense := move.Stats()
	return formula.ComputeDamage(attacker.spec.Level, attacker.Stat(offense), defender.Stat(defense), move.Power, false), eff, nil
}

// ScaledRange is Estimate with effectiveness applied to both ends.
func ScaledRange(attacker, defender Pokemon, move game.Move) (lo, hi int, eff formula.Effectiveness, err error) {
	r, eff, err := Estimate(attacker, defender, move)
	if err != nil {
		return 0, 0, eff, err
	}
	return applyEffectiveness(r.Min, eff), applyEffectiveness(r.Max, eff), eff, nil
}

// applyEffectiveness floors the scaled damage; a hit that is not immune
// always deals at least 1.
func applyEffectiveness(damage int, eff formula.Effectiveness) int {
	scaled := int(float64(damage) * eff.Multiplier())
	if eff != formula.None && scaled < 1 {
		scaled = 1
	}
	return scaled
}
