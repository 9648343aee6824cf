package game

import (
	"errors"
	"fmt"
)

const (
	MaxEV      = 252
	MaxEVTotal = 510
	MaxIV      = 31
	MinLevel   = 1
	MaxLevel   = 100
	MaxMoves   = 4
)

var ErrInvalidSpec = errors.New("invalid pokemon spec")

// PokemonSpec is the immutable build of one team member. Build it with
// NewPokemonSpec and share it by pointer; nothing mutates it afterwards.
type PokemonSpec struct {
	Species *Species
	Ability string
	Gender  Gender
	Nature  Nature
	EVs     Stats
	IVs     Stats
	Level   int
	Moves   []Move
}

func NewPokemonSpec(species *Species, ability string, gender Gender, nature Nature, evs, ivs Stats, level int, moves []Move) (*PokemonSpec, error) {
	spec := &PokemonSpec{
		Species: species,
		Ability: ability,
		Gender:  gender,
		Nature:  nature,
		EVs:     evs,
		IVs:     ivs,
		Level:   level,
		Moves:   append([]Move(nil), moves...),
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func (p *PokemonSpec) Validate() error {
	if p.Species == nil {
		return fmt.Errorf("%w: missing species", ErrInvalidSpec)
	}
	name := p.Species.Name
	if !p.Species.HasAbility(p.Ability) {
		return fmt.Errorf("%w: %s cannot have ability %q", ErrInvalidSpec, name, p.Ability)
	}
	if !p.Species.AllowsGender(p.Gender) {
		return fmt.Errorf("%w: %s cannot have gender %s", ErrInvalidSpec, name, p.Gender)
	}
	for _, s := range AllStats {
		if ev := p.EVs[s]; ev < 0 || ev > MaxEV {
			return fmt.Errorf("%w: %s %s EV %d outside [0,%d]", ErrInvalidSpec, name, s, ev, MaxEV)
		}
		if iv := p.IVs[s]; iv < 0 || iv > MaxIV {
			return fmt.Errorf("%w: %s %s IV %d outside [0,%d]", ErrInvalidSpec, name, s, iv, MaxIV)
		}
	}
	if total := p.EVs.Sum(); total > MaxEVTotal {
		return fmt.Errorf("%w: %s EV total %d exceeds %d", ErrInvalidSpec, name, total, MaxEVTotal)
	}
	if p.Level < MinLevel || p.Level > MaxLevel {
		return fmt.Errorf("%w: %s level %d outside [%d,%d]", ErrInvalidSpec, name, p.Level, MinLevel, MaxLevel)
	}
	if len(p.Moves) == 0 || len(p.Moves) > MaxMoves {
		return fmt.Errorf("%w: %s has %d moves, want 1-%d", ErrInvalidSpec, name, len(p.Moves), MaxMoves)
	}
	return nil
}
