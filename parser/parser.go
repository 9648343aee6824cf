// Package parser reads teams in Pokémon Showdown's export format and renders
// battles and search results as plain text.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"showdown-sim/game"
)

var ErrMalformed = errors.New("malformed team")

// Dex resolves names found in a team export.
type Dex interface {
	Species(name string) (*game.Species, error)
	Move(name string) (game.Move, error)
}

type entry struct {
	line      int
	species   *game.Species
	ability   string
	gender    game.Gender
	genderSet bool
	nature    game.Nature
	evs       game.Stats
	ivs       game.Stats
	level     int
	moves     []game.Move
}

// ParseTeam parses a Showdown export. Members are separated by blank lines.
// Level defaults to 100, IVs to 31, EVs to 0, nature to Serious, ability
// and gender to the species' first.
func ParseTeam(text string, dex Dex) ([]*game.PokemonSpec, error) {
	var (
		team []*game.PokemonSpec
		cur  *entry
	)
	flush := func() error {
		if cur == nil {
			return nil
		}
		spec, err := cur.build()
		if err != nil {
			return fmt.Errorf("line %d: %w", cur.line, err)
		}
		team = append(team, spec)
		cur = nil
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		n := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if cur == nil {
			e, err := parseHeader(line, dex)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			e.line = n
			cur = e
			continue
		}
		if err := cur.parseLine(line, dex); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(team) == 0 {
		return nil, fmt.Errorf("%w: no members", ErrMalformed)
	}
	return team, nil
}

// parseHeader handles "Nickname (Species) (M) @ Item" and its shorter forms.
func parseHeader(line string, dex Dex) (*entry, error) {
	e := &entry{
		nature: game.NeutralNature,
		ivs:    game.Uniform(game.MaxIV),
		level:  game.MaxLevel,
	}
	name, _, _ := strings.Cut(line, " @ ")
	name = strings.TrimSpace(name)

	for _, g := range []string{"(M)", "(F)"} {
		if strings.HasSuffix(name, g) {
			gender, err := game.ParseGender(g[1:2])
			if err != nil {
				return nil, err
			}
			e.gender, e.genderSet = gender, true
			name = strings.TrimSpace(strings.TrimSuffix(name, g))
			break
		}
	}
	if strings.HasSuffix(name, ")") {
		open := strings.LastIndex(name, "(")
		if open < 0 {
			return nil, fmt.Errorf("%w: unbalanced parenthesis in %q", ErrMalformed, line)
		}
		name = name[open+1 : len(name)-1]
	}
	if name == "" {
		return nil, fmt.Errorf("%w: missing species in %q", ErrMalformed, line)
	}

	s, err := dex.Species(name)
	if err != nil {
		return nil, err
	}
	e.species = s
	return e, nil
}

func (e *entry) parseLine(line string, dex Dex) error {
	if move, ok := strings.CutPrefix(line, "- "); ok {
		m, err := dex.Move(strings.TrimSpace(move))
		if err != nil {
			return err
		}
		e.moves = append(e.moves, m)
		return nil
	}
	if nature, ok := strings.CutSuffix(line, " Nature"); ok {
		n, err := game.ParseNature(nature)
		if err != nil {
			return err
		}
		e.nature = n
		return nil
	}

	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("%w: unexpected line %q", ErrMalformed, line)
	}
	value = strings.TrimSpace(value)
	switch strings.TrimSpace(key) {
	case "Ability":
		e.ability = value
	case "Level":
		level, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: level %q", ErrMalformed, value)
		}
		e.level = level
	case "EVs":
		return parseSpread(value, &e.evs)
	case "IVs":
		return parseSpread(value, &e.ivs)
	case "Gender":
		g, err := game.ParseGender(value)
		if err != nil {
			return err
		}
		e.gender, e.genderSet = g, true
	default:
		// Shiny, Happiness, Tera Type and friends do not affect the model
	}
	return nil
}

// parseSpread reads "252 SpA / 4 SpD / 252 Spe" into dst, leaving stats it
// does not mention untouched.
func parseSpread(value string, dst *game.Stats) error {
	for _, part := range strings.Split(value, "/") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return fmt.Errorf("%w: stat spread %q", ErrMalformed, value)
		}
		v, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("%w: stat value %q", ErrMalformed, fields[0])
		}
		s, err := game.ParseStat(fields[1])
		if err != nil {
			return err
		}
		dst[s] = v
	}
	return nil
}

func (e *entry) build() (*game.PokemonSpec, error) {
	ability := e.ability
	if ability == "" && len(e.species.Abilities) > 0 {
		ability = e.species.Abilities[0]
	}
	gender := e.gender
	if !e.genderSet && len(e.species.Genders) > 0 {
		gender = e.species.Genders[0]
	}
	return game.NewPokemonSpec(e.species, ability, gender, e.nature, e.evs, e.ivs, e.level, e.moves)
}
