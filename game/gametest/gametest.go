// Package gametest provides species, moves and spec builders for tests.
package gametest

import (
	"testing"

	"showdown-sim/game"
)

var mixed = []game.Gender{game.Male, game.Female}

var (
	Charizard = &game.Species{
		Name:      "Charizard",
		Types:     []game.Type{game.Fire, game.Flying},
		BaseStats: game.Stats{78, 84, 78, 109, 85, 100},
		Abilities: []string{"Blaze", "Solar Power"},
		Genders:   mixed,
	}
	Blastoise = &game.Species{
		Name:      "Blastoise",
		Types:     []game.Type{game.Water},
		BaseStats: game.Stats{79, 83, 100, 85, 105, 78},
		Abilities: []string{"Torrent", "Rain Dish"},
		Genders:   mixed,
	}
	Venusaur = &game.Species{
		Name:      "Venusaur",
		Types:     []game.Type{game.Grass, game.Poison},
		BaseStats: game.Stats{80, 82, 83, 100, 100, 80},
		Abilities: []string{"Overgrow", "Chlorophyll"},
		Genders:   mixed,
	}
	Gengar = &game.Species{
		Name:      "Gengar",
		Types:     []game.Type{game.Ghost, game.Poison},
		BaseStats: game.Stats{60, 65, 60, 130, 75, 110},
		Abilities: []string{"Cursed Body"},
		Genders:   mixed,
	}
	Snorlax = &game.Species{
		Name:      "Snorlax",
		Types:     []game.Type{game.Normal},
		BaseStats: game.Stats{160, 110, 65, 65, 110, 30},
		Abilities: []string{"Immunity", "Thick Fat"},
		Genders:   mixed,
	}
	Magnemite = &game.Species{
		Name:      "Magnemite",
		Types:     []game.Type{game.Electric, game.Steel},
		BaseStats: game.Stats{25, 35, 70, 95, 55, 45},
		Abilities: []string{"Sturdy", "Magnet Pull"},
		Genders:   []game.Gender{game.Genderless},
	}
)

var (
	Tackle       = game.Move{Name: "Tackle", Type: game.Normal, Power: 40, Category: game.Physical}
	HyperBeam    = game.Move{Name: "Hyper Beam", Type: game.Normal, Power: 150, Category: game.Special}
	Flamethrower = game.Move{Name: "Flamethrower", Type: game.Fire, Power: 90, Category: game.Special}
	Surf         = game.Move{Name: "Surf", Type: game.Water, Power: 90, Category: game.Special}
	Earthquake   = game.Move{Name: "Earthquake", Type: game.Ground, Power: 100, Category: game.Physical}
	ShadowBall   = game.Move{Name: "Shadow Ball", Type: game.Ghost, Power: 80, Category: game.Special}
	Growl        = game.Move{Name: "Growl", Type: game.Normal, Power: 0, Category: game.StatusMove}
)

// Spec builds a level 100, 31 IV, 0 EV, neutral-natured spec with the
// species' first ability, failing the test on a validation error.
func Spec(tb testing.TB, species *game.Species, moves ...game.Move) *game.PokemonSpec {
	tb.Helper()
	spec, err := game.NewPokemonSpec(species, species.Abilities[0], species.Genders[0], game.NeutralNature,
		game.Stats{}, game.Uniform(game.MaxIV), 100, moves)
	if err != nil {
		tb.Fatalf("build %s: %v", species.Name, err)
	}
	return spec
}
