package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"showdown-sim/ai"
	"showdown-sim/battle"
	"showdown-sim/game"
	"showdown-sim/game/gametest"
)

type fakeDex struct{}

func (fakeDex) Species(name string) (*game.Species, error) {
	for _, s := range []*game.Species{gametest.Charizard, gametest.Blastoise, gametest.Venusaur, gametest.Gengar, gametest.Snorlax, gametest.Magnemite} {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown species %q", name)
}

func (fakeDex) Move(name string) (game.Move, error) {
	for _, m := range []game.Move{gametest.Tackle, gametest.HyperBeam, gametest.Flamethrower, gametest.Surf, gametest.Earthquake, gametest.ShadowBall, gametest.Growl} {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return game.Move{}, fmt.Errorf("unknown move %q", name)
}

const sampleTeam = `
Blaze (Charizard) (F) @ Life Orb
Ability: Solar Power
Level: 50
EVs: 4 HP / 252 SpA / 252 Spe
Timid Nature
IVs: 0 Atk
- Flamethrower
- Earthquake

Venusaur
- Tackle
`

func TestParseTeam(t *testing.T) {
	team, err := ParseTeam(sampleTeam, fakeDex{})
	if err != nil {
		t.Fatal(err)
	}
	if len(team) != 2 {
		t.Fatalf("got %d members, want 2", len(team))
	}

	c := team[0]
	if c.Species != gametest.Charizard || c.Ability != "Solar Power" || c.Gender != game.Female || c.Level != 50 {
		t.Errorf("header fields: %+v", c)
	}
	if c.Nature.Name != "Timid" {
		t.Errorf("nature = %s", c.Nature.Name)
	}
	if want := (game.Stats{4, 0, 0, 252, 0, 252}); c.EVs != want {
		t.Errorf("EVs = %v, want %v", c.EVs, want)
	}
	if want := (game.Stats{31, 0, 31, 31, 31, 31}); c.IVs != want {
		t.Errorf("IVs = %v, want %v", c.IVs, want)
	}
	if len(c.Moves) != 2 || c.Moves[0] != gametest.Flamethrower || c.Moves[1] != gametest.Earthquake {
		t.Errorf("moves = %v", c.Moves)
	}

	v := team[1]
	if v.Level != 100 || v.Ability != "Overgrow" || v.Gender != game.Male || v.Nature != game.NeutralNature {
		t.Errorf("defaults not applied: %+v", v)
	}
	if v.IVs != game.Uniform(31) || v.EVs != (game.Stats{}) {
		t.Errorf("default spreads: IVs %v EVs %v", v.IVs, v.EVs)
	}
}

func TestParseTeamHeaders(t *testing.T) {
	tests := []struct {
		header  string
		species *game.Species
		gender  game.Gender
	}{
		{"Blastoise", gametest.Blastoise, game.Male},
		{"Blastoise @ Leftovers", gametest.Blastoise, game.Male},
		{"Blastoise (F)", gametest.Blastoise, game.Female},
		{"Shelly (Blastoise) (F) @ Leftovers", gametest.Blastoise, game.Female},
		{"Magnemite @ Choice Specs", gametest.Magnemite, game.Genderless},
	}
	for _, tt := range tests {
		team, err := ParseTeam(tt.header+"\n- Tackle\n", fakeDex{})
		if err != nil {
			t.Errorf("%q: %v", tt.header, err)
			continue
		}
		if team[0].Species != tt.species || team[0].Gender != tt.gender {
			t.Errorf("%q: got %s %s", tt.header, team[0].Species.Name, team[0].Gender)
		}
	}
}

func TestParseTeamErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "\n\n",
		"unknown mon":  "Missingno\n- Tackle\n",
		"unknown move": "Venusaur\n- Splash\n",
		"no moves":     "Venusaur\nAbility: Overgrow\n",
		"bad level":    "Venusaur\nLevel: high\n- Tackle\n",
		"level range":  "Venusaur\nLevel: 101\n- Tackle\n",
		"bad evs":      "Venusaur\nEVs: 252\n- Tackle\n",
		"ev overflow":  "Venusaur\nEVs: 252 HP / 252 Atk / 252 Def\n- Tackle\n",
		"bad stat":     "Venusaur\nEVs: 4 Luck\n- Tackle\n",
		"bad nature":   "Venusaur\nGrumpy Nature\n- Tackle\n",
		"bad ability":  "Venusaur\nAbility: Levitate\n- Tackle\n",
		"stray line":   "Venusaur\nwhatever\n- Tackle\n",
		"gender lock":  "Magnemite (M)\n- Tackle\n",
		"five moves":   "Venusaur\n- Tackle\n- Growl\n- Surf\n- Earthquake\n- Hyper Beam\n",
		"open paren":   "Nick Venusaur)\n- Tackle\n",
	}
	for name, text := range tests {
		if _, err := ParseTeam(text, fakeDex{}); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	_, err := ParseTeam("Venusaur\nwhatever\n- Tackle\n", fakeDex{})
	if !errors.Is(err, ErrMalformed) || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("want malformed error on line 2, got %v", err)
	}
	_, err = ParseTeam("Venusaur\nLevel: 0\n- Tackle\n", fakeDex{})
	if !errors.Is(err, game.ErrInvalidSpec) {
		t.Errorf("want invalid spec, got %v", err)
	}
}

func TestParseTeamIgnoresCosmeticLines(t *testing.T) {
	text := "Venusaur\r\nShiny: Yes\r\nHappiness: 0\r\nTera Type: Grass\r\n- Tackle\r\n"
	team, err := ParseTeam(text, fakeDex{})
	if err != nil {
		t.Fatal(err)
	}
	if len(team[0].Moves) != 1 {
		t.Errorf("moves = %v", team[0].Moves)
	}
}

func TestRenderBattle(t *testing.T) {
	b := battle.New(
		gametest.Spec(t, gametest.Charizard, gametest.Flamethrower, gametest.Tackle, gametest.Growl),
		gametest.Spec(t, gametest.Gengar, gametest.Tackle),
	)
	out := RenderBattle(b)
	for _, want := range []string{
		"Turn 1 (Begin)",
		"black: Charizard 297/297 [ok]",
		"white: Gengar",
		"Flamethrower",
		"no effect",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}
}

func TestRenderMatrixAndStrategy(t *testing.T) {
	tackle := battle.NewMoveChoice(gametest.Tackle)
	growl := battle.NewMoveChoice(gametest.Growl)
	out := RenderMatrix([]string{tackle.String(), growl.String()}, []string{tackle.String()}, [][]float64{{1}, {0.25}})
	for _, want := range []string{"move Tackle", "move Growl", "1.000", "0.250"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in\n%s", want, out)
		}
	}

	s := ai.NewMixedStrategy(nil,
		ai.Weighted[battle.Choice]{Value: tackle, Weight: 0.75},
		ai.Weighted[battle.Choice]{Value: growl, Weight: 0.25},
	)
	got := RenderStrategy(s)
	if want := "move Tackle 75.0%\nmove Growl 25.0%\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
