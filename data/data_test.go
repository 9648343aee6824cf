package data

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"showdown-sim/game"
)

var discard = slog.New(slog.DiscardHandler)

func loadDex(t *testing.T) *Pokedex {
	t.Helper()
	dex, err := Load("pokedex.json", "moves.json", discard)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return dex
}

func TestToID(t *testing.T) {
	tests := map[string]string{
		"Charizard":    "charizard",
		"Mr. Mime":     "mrmime",
		"Soft-Boiled":  "softboiled",
		" Body  Slam ": "bodyslam",
		"Porygon2":     "porygon2",
		"":             "",
	}
	for in, want := range tests {
		if got := ToID(in); got != want {
			t.Errorf("ToID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadSpecies(t *testing.T) {
	dex := loadDex(t)

	char, err := dex.Species("charizard")
	if err != nil {
		t.Fatal(err)
	}
	if char.Name != "Charizard" || char.BaseStats != (game.Stats{78, 84, 78, 109, 85, 100}) {
		t.Errorf("unexpected charizard: %+v", char)
	}
	if len(char.Types) != 2 || char.Types[0] != game.Fire || char.Types[1] != game.Flying {
		t.Errorf("types = %v", char.Types)
	}
	if len(char.Abilities) != 2 || char.Abilities[0] != "Blaze" || char.Abilities[1] != "Solar Power" {
		t.Errorf("abilities = %v", char.Abilities)
	}

	mime, err := dex.Species("Mr. Mime")
	if err != nil {
		t.Fatal(err)
	}
	if mime.Name != "Mr. Mime" {
		t.Errorf("got %s", mime.Name)
	}
}

func TestLoadGenders(t *testing.T) {
	dex := loadDex(t)
	tests := []struct {
		name string
		want []game.Gender
	}{
		{"Magnemite", []game.Gender{game.Genderless}},
		{"Tauros", []game.Gender{game.Male}},
		{"Chansey", []game.Gender{game.Female}},
		{"Venusaur", []game.Gender{game.Male, game.Female}},
		{"Pikachu", []game.Gender{game.Male, game.Female}},
	}
	for _, tt := range tests {
		s, err := dex.Species(tt.name)
		if err != nil {
			t.Fatal(err)
		}
		if len(s.Genders) != len(tt.want) {
			t.Errorf("%s: genders %v, want %v", tt.name, s.Genders, tt.want)
			continue
		}
		for i := range tt.want {
			if s.Genders[i] != tt.want[i] {
				t.Errorf("%s: genders %v, want %v", tt.name, s.Genders, tt.want)
			}
		}
	}
}

func TestLoadMoves(t *testing.T) {
	dex := loadDex(t)
	m, err := dex.Move("Flamethrower")
	if err != nil {
		t.Fatal(err)
	}
	want := game.Move{Name: "Flamethrower", Type: game.Fire, Power: 90, Category: game.Special}
	if m != want {
		t.Errorf("got %+v, want %+v", m, want)
	}
	growl, err := dex.Move("growl")
	if err != nil {
		t.Fatal(err)
	}
	if growl.Power != 0 || growl.Category != game.StatusMove {
		t.Errorf("growl = %+v", growl)
	}
	if _, err := dex.Move("softboiled"); err != nil {
		t.Errorf("softboiled: %v", err)
	}
}

func TestUnknownLookups(t *testing.T) {
	dex := loadDex(t)
	if _, err := dex.Species("Missingno"); !errors.Is(err, ErrUnknownSpecies) {
		t.Errorf("species: got %v", err)
	}
	if _, err := dex.Move("Splash"); !errors.Is(err, ErrUnknownMove) {
		t.Errorf("move: got %v", err)
	}
}

func TestDecodeSkipsUnsupportedEntries(t *testing.T) {
	species := `{
		"missingno": {"name": "MissingNo.", "types": ["Bird", "Normal"], "baseStats": {"hp": 33}},
		"nameless": {"types": ["Fire"]},
		"oddgender": {"name": "Odd", "types": ["Fire"], "gender": "Q"},
		"snorlax": {"name": "Snorlax", "types": ["Normal"], "baseStats": {"hp": 160, "atk": 110, "def": 65, "spa": 65, "spd": 110, "spe": 30}, "abilities": {"0": "Immunity"}}
	}`
	moves := `{
		"birdbeam": {"name": "Bird Beam", "type": "Bird", "basePower": 60, "category": "Special"},
		"magic": {"name": "Magic", "type": "Fire", "basePower": 60, "category": "Magic"},
		"tackle": {"name": "Tackle", "type": "Normal", "basePower": 40, "category": "Physical"}
	}`
	var logs bytes.Buffer
	dex, err := Decode(strings.NewReader(species), strings.NewReader(moves), slog.New(slog.NewTextHandler(&logs, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if n, m := dex.Len(); n != 1 || m != 1 {
		t.Errorf("loaded %d species and %d moves, want 1 and 1", n, m)
	}
	if s, err := dex.Species("Snorlax"); err != nil || s.BaseStats[game.HP] != 160 {
		t.Errorf("snorlax: %v, %v", s, err)
	}
	if _, err := dex.Move("Tackle"); err != nil {
		t.Error(err)
	}
	if _, err := dex.Species("MissingNo."); !errors.Is(err, ErrUnknownSpecies) {
		t.Errorf("missingno: %v", err)
	}
	if got := strings.Count(logs.String(), "skipped"); got != 5 {
		t.Errorf("logged %d skips, want 5:\n%s", got, logs.String())
	}
	if !strings.Contains(logs.String(), "id=missingno") {
		t.Errorf("skip warning does not name the entry:\n%s", logs.String())
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{`), strings.NewReader(`{}`), discard); err == nil {
		t.Error("species: expected error")
	}
	if _, err := Decode(strings.NewReader(`{}`), strings.NewReader(`[`), discard); err == nil {
		t.Error("moves: expected error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("nope.json", "moves.json", discard); err == nil {
		t.Error("expected error")
	}
}
