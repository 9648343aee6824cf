// Package data loads species and move tables in the JSON layout used by
// Pokémon Showdown's pokedex.json and moves.json.
package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"showdown-sim/game"
)

var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrUnknownMove    = errors.New("unknown move")
)

// ToID normalises a display name into a lookup key: case folded with
// everything but letters and digits removed, so "Mr. Mime" becomes "mrmime".
func ToID(name string) string {
	folded := cases.Fold().String(name)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type rawStats struct {
	HP  int `json:"hp"`
	Atk int `json:"atk"`
	Def int `json:"def"`
	SpA int `json:"spa"`
	SpD int `json:"spd"`
	Spe int `json:"spe"`
}

type rawSpecies struct {
	Name        string             `json:"name"`
	Types       []string           `json:"types"`
	BaseStats   rawStats           `json:"baseStats"`
	Abilities   map[string]string  `json:"abilities"`
	Gender      string             `json:"gender"`
	GenderRatio map[string]float64 `json:"genderRatio"`
}

type rawMove struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	BasePower int    `json:"basePower"`
	Category  string `json:"category"`
}

// Pokedex indexes species and moves by ID.
type Pokedex struct {
	species map[string]*game.Species
	moves   map[string]game.Move
}

// Load reads a species file and a move file.
func Load(speciesPath, movesPath string, logger *slog.Logger) (*Pokedex, error) {
	sf, err := os.Open(speciesPath)
	if err != nil {
		return nil, err
	}
	defer sf.Close()
	mf, err := os.Open(movesPath)
	if err != nil {
		return nil, err
	}
	defer mf.Close()
	return Decode(sf, mf, logger)
}

// Decode builds a Pokedex from the two JSON documents. Entries the model
// cannot represent, such as glitch species with types outside the chart,
// are skipped with a warning.
func Decode(speciesJSON, movesJSON io.Reader, logger *slog.Logger) (*Pokedex, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var rawDex map[string]rawSpecies
	if err := json.NewDecoder(speciesJSON).Decode(&rawDex); err != nil {
		return nil, fmt.Errorf("decode species: %w", err)
	}
	var rawMoves map[string]rawMove
	if err := json.NewDecoder(movesJSON).Decode(&rawMoves); err != nil {
		return nil, fmt.Errorf("decode moves: %w", err)
	}

	dex := &Pokedex{
		species: make(map[string]*game.Species, len(rawDex)),
		moves:   make(map[string]game.Move, len(rawMoves)),
	}
	for _, key := range sortedKeys(rawDex) {
		s, err := rawDex[key].species()
		if err != nil {
			logger.Warn("species skipped", "id", key, "err", err)
			continue
		}
		dex.species[ToID(s.Name)] = s
	}
	for _, key := range sortedKeys(rawMoves) {
		m, err := rawMoves[key].move()
		if err != nil {
			logger.Warn("move skipped", "id", key, "err", err)
			continue
		}
		dex.moves[ToID(m.Name)] = m
	}
	return dex, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r rawSpecies) species() (*game.Species, error) {
	if r.Name == "" {
		return nil, errors.New("missing name")
	}
	types := make([]game.Type, 0, len(r.Types))
	for _, t := range r.Types {
		typ, err := game.ParseType(t)
		if err != nil {
			return nil, err
		}
		types = append(types, typ)
	}
	if len(types) == 0 || len(types) > 2 {
		return nil, fmt.Errorf("%d types", len(types))
	}

	// abilities are keyed "0", "1", "H", "S"; keep that order
	slots := make([]string, 0, len(r.Abilities))
	for slot := range r.Abilities {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	abilities := make([]string, 0, len(slots))
	for _, slot := range slots {
		abilities = append(abilities, r.Abilities[slot])
	}

	genders, err := r.genders()
	if err != nil {
		return nil, err
	}
	return &game.Species{
		Name:  r.Name,
		Types: types,
		BaseStats: game.Stats{
			r.BaseStats.HP, r.BaseStats.Atk, r.BaseStats.Def,
			r.BaseStats.SpA, r.BaseStats.SpD, r.BaseStats.Spe,
		},
		Abilities: abilities,
		Genders:   genders,
	}, nil
}

func (r rawSpecies) genders() ([]game.Gender, error) {
	if r.Gender != "" {
		g, err := game.ParseGender(r.Gender)
		if err != nil {
			return nil, err
		}
		return []game.Gender{g}, nil
	}
	if r.GenderRatio != nil {
		var out []game.Gender
		if r.GenderRatio["M"] > 0 {
			out = append(out, game.Male)
		}
		if r.GenderRatio["F"] > 0 {
			out = append(out, game.Female)
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	return []game.Gender{game.Male, game.Female}, nil
}

func (r rawMove) move() (game.Move, error) {
	t, err := game.ParseType(r.Type)
	if err != nil {
		return game.Move{}, err
	}
	c, err := game.ParseMoveCategory(r.Category)
	if err != nil {
		return game.Move{}, err
	}
	return game.Move{Name: r.Name, Type: t, Power: r.BasePower, Category: c}, nil
}

func (d *Pokedex) Species(name string) (*game.Species, error) {
	if s, ok := d.species[ToID(name)]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSpecies, name)
}

func (d *Pokedex) Move(name string) (game.Move, error) {
	if m, ok := d.moves[ToID(name)]; ok {
		return m, nil
	}
	return game.Move{}, fmt.Errorf("%w: %s", ErrUnknownMove, name)
}

// Len reports how many species and moves are loaded.
func (d *Pokedex) Len() (species, moves int) { return len(d.species), len(d.moves) }
