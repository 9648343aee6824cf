package game

import (
	"fmt"
	"strings"
)

type Gender uint8

const (
	Genderless Gender = iota
	Male
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "M"
	case Female:
		return "F"
	}
	return "N"
}

func ParseGender(s string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M", "MALE":
		return Male, nil
	case "F", "FEMALE":
		return Female, nil
	case "N", "", "GENDERLESS":
		return Genderless, nil
	}
	return Genderless, fmt.Errorf("unknown gender %q", s)
}

// Species is a Pokedex entry.
type Species struct {
	Name      string
	Types     []Type
	BaseStats Stats
	Abilities []string
	Genders   []Gender
}

func (s *Species) HasAbility(ability string) bool {
	for _, a := range s.Abilities {
		if strings.EqualFold(a, strings.TrimSpace(ability)) {
			return true
		}
	}
	return false
}

func (s *Species) AllowsGender(g Gender) bool {
	for _, legal := range s.Genders {
		if legal == g {
			return true
		}
	}
	return false
}

type MoveCategory uint8

const (
	Physical MoveCategory = iota
	Special
	StatusMove
)

func ParseMoveCategory(s string) (MoveCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical":
		return Physical, nil
	case "special":
		return Special, nil
	case "status":
		return StatusMove, nil
	}
	return Physical, fmt.Errorf("unknown move category %q", s)
}

type Move struct {
	Name     string
	Type     Type
	Power    int
	Category MoveCategory
}

// Stats returns the offensive and defensive stats the move is resolved with.
func (m Move) Stats() (offense, defense Stat) {
	if m.Category == Special {
		return SpAttack, SpDefense
	}
	return Attack, Defense
}
