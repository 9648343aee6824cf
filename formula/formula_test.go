package formula

import (
	"errors"
	"testing"

	"showdown-sim/game"
	"showdown-sim/game/gametest"
)

func TestComputeStat(t *testing.T) {
	tests := []struct {
		name   string
		base   int
		iv     int
		ev     int
		effect game.NatureEffect
		level  int
		isHP   bool
		want   int
	}{
		{"charizard hp", 78, 31, 0, game.Neutral, 100, true, 297},
		{"charizard atk", 84, 31, 0, game.Neutral, 100, false, 204},
		{"charizard spe", 100, 31, 0, game.Neutral, 100, false, 236},
		{"charizard hp lv50 truncates", 78, 31, 0, game.Neutral, 50, true, 153},
		{"charizard atk lv50 truncates", 84, 31, 0, game.Neutral, 50, false, 104},
		// ev/4 is floored before the level product: 195/4 -> 48, not 48.75
		{"ev floored first", 130, 29, 195, game.Strengthened, 78, false, 293},
		{"hp with evs", 108, 24, 74, game.Neutral, 78, true, 289},
		{"weakened", 100, 31, 0, game.Weakened, 100, false, 212},
		{"strengthened", 100, 31, 0, game.Strengthened, 100, false, 259},
		{"max evs", 78, 31, 252, game.Neutral, 100, true, 360},
		{"level 1", 78, 0, 0, game.Neutral, 1, true, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStat(tt.base, tt.iv, tt.ev, tt.effect, tt.level, tt.isHP)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputeStat = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeStatRejectsNatureOnHP(t *testing.T) {
	for _, effect := range []game.NatureEffect{game.Strengthened, game.Weakened} {
		if _, err := ComputeStat(78, 31, 0, effect, 100, true); !errors.Is(err, ErrNatureOnHP) {
			t.Errorf("effect %v: expected ErrNatureOnHP, got %v", effect, err)
		}
	}
}

func TestSpecStat(t *testing.T) {
	spec := gametest.Spec(t, gametest.Charizard, gametest.Flamethrower)
	want := game.Stats{297, 204, 192, 254, 206, 236}
	for _, s := range game.AllStats {
		if got := SpecStat(spec, s); got != want[s] {
			t.Errorf("%s = %d, want %d", s, got, want[s])
		}
	}
}

func TestComputeDamage(t *testing.T) {
	tests := []struct {
		name  string
		level int
		atk   int
		def   int
		power int
		crit  bool
		want  DamageRange
	}{
		{"reference", 100, 204, 236, 100, false, DamageRange{62, 74}},
		{"reference crit", 100, 204, 236, 100, true, DamageRange{94, 111}},
		{"minimum", 1, 1, 999, 1, false, DamageRange{1, 2}},
		{"level 50", 50, 150, 100, 80, false, DamageRange{45, 54}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDamage(tt.level, tt.atk, tt.def, tt.power, tt.crit)
			if got != tt.want {
				t.Errorf("ComputeDamage = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestModifyRoundsHalfDown(t *testing.T) {
	tests := []struct{ in, want int }{
		{74, 111},
		{73, 109}, // 109.5
		{75, 112}, // 112.5
		{2, 3},
	}
	for _, tt := range tests {
		if got := modify(tt.in, critNumerator); got != tt.want {
			t.Errorf("modify(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDamageRangeRoll(t *testing.T) {
	r := DamageRange{Min: 62, Max: 74}
	if got := r.Roll(100); got != 74 {
		t.Errorf("Roll(100) = %d, want 74", got)
	}
	if got := r.Roll(85); got != r.Min {
		t.Errorf("Roll(85) = %d, want %d", got, r.Min)
	}
}

func TestComputeTypeEffectiveness(t *testing.T) {
	tests := []struct {
		name     string
		attack   game.Type
		defender []game.Type
		want     Effectiveness
	}{
		{"neutral", game.Normal, []game.Type{game.Water}, Normal},
		{"super", game.Water, []game.Type{game.Fire}, Double},
		{"resisted", game.Fire, []game.Type{game.Water}, Half},
		{"double super", game.Ice, []game.Type{game.Dragon, game.Flying}, Quadruple},
		{"double resisted", game.Fire, []game.Type{game.Water, game.Rock}, Quarter},
		{"cancel out", game.Fire, []game.Type{game.Grass, game.Water}, Normal},
		{"immune", game.Normal, []game.Type{game.Ghost}, None},
		{"weak then immune", game.Electric, []game.Type{game.Water, game.Ground}, None},
		{"immune then weak", game.Electric, []game.Type{game.Ground, game.Water}, None},
		{"ground vs flying fire", game.Ground, []game.Type{game.Fire, game.Flying}, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTypeEffectiveness(tt.attack, tt.defender)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTypeEffectivenessSlotOrder(t *testing.T) {
	for _, attack := range game.AllTypes {
		for _, a := range game.AllTypes {
			for _, b := range game.AllTypes {
				x, err := ComputeTypeEffectiveness(attack, []game.Type{a, b})
				if err != nil {
					t.Fatal(err)
				}
				y, _ := ComputeTypeEffectiveness(attack, []game.Type{b, a})
				if x != y {
					t.Fatalf("%s vs %s/%s: %v != %v", attack, a, b, x, y)
				}
			}
		}
	}
}

func TestComputeTypeEffectivenessBadDefender(t *testing.T) {
	if _, err := ComputeTypeEffectiveness(game.Fire, nil); !errors.Is(err, ErrDefenderTypes) {
		t.Errorf("empty: expected ErrDefenderTypes, got %v", err)
	}
	three := []game.Type{game.Fire, game.Water, game.Grass}
	if _, err := ComputeTypeEffectiveness(game.Fire, three); !errors.Is(err, ErrDefenderTypes) {
		t.Errorf("three: expected ErrDefenderTypes, got %v", err)
	}
}

func TestMultiplier(t *testing.T) {
	want := map[Effectiveness]float64{None: 0, Quarter: 0.25, Half: 0.5, Normal: 1, Double: 2, Quadruple: 4}
	for e, m := range want {
		if e.Multiplier() != m {
			t.Errorf("%v multiplier = %v, want %v", e, e.Multiplier(), m)
		}
	}
}
