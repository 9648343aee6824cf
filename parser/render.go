package parser

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"showdown-sim/ai"
	"showdown-sim/battle"
	"showdown-sim/formula"
	"showdown-sim/game"
)

func title(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

func effectivenessNote(eff formula.Effectiveness) string {
	switch {
	case eff == formula.None:
		return "no effect"
	case eff > formula.Normal:
		return "super effective"
	case eff < formula.Normal:
		return "not very effective"
	}
	return ""
}

// RenderBattle summarises both actives and what each of their moves would
// do to the other side.
func RenderBattle(b battle.Battle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Turn %d (%s)\n", b.Turn(), title(b.Phase().String()))

	for _, p := range game.Players {
		me, foe := b.Active(p), b.Active(p.Opponent())
		fmt.Fprintf(&sb, "%s: %s %d/%d [%s]\n", p, me.Name(), me.HP(), me.MaxHP(), me.Status())

		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		for _, m := range me.Moves() {
			if m.Power == 0 {
				fmt.Fprintf(tw, "  %s\t%s\t-\t\n", m.Name, m.Type)
				continue
			}
			lo, hi, eff, err := battle.ScaledRange(me, foe, m)
			if err != nil {
				fmt.Fprintf(tw, "  %s\t%s\t%v\t\n", m.Name, m.Type, err)
				continue
			}
			note := effectivenessNote(eff)
			if note != "" {
				note = " (" + note + ")"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%d-%d%s\t\n", m.Name, m.Type, lo, hi, note)
		}
		tw.Flush()
	}
	return sb.String()
}

// RenderMatrix prints black's win probability per choice pair, rows being
// black's choices and cols white's.
func RenderMatrix(rows, cols []string, values [][]float64) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "black \\ white\t")
	for _, c := range cols {
		fmt.Fprintf(tw, "%s\t", c)
	}
	fmt.Fprintln(tw)
	for i, r := range rows {
		fmt.Fprintf(tw, "%s\t", r)
		for j := range cols {
			fmt.Fprintf(tw, "%.3f\t", values[i][j])
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	return sb.String()
}

// RenderStrategy lists entries in order with their probabilities.
func RenderStrategy[T comparable](s ai.MixedStrategy[T]) string {
	total := s.Total()
	var sb strings.Builder
	for _, e := range s.Entries() {
		p := 0.0
		if total > 0 {
			p = e.Weight / total
		}
		fmt.Fprintf(&sb, "%v %.1f%%\n", e.Value, 100*p)
	}
	return sb.String()
}
