package game

import (
	"fmt"
	"strings"
)

type Type string

const (
	Normal   Type = "Normal"
	Fire     Type = "Fire"
	Water    Type = "Water"
	Electric Type = "Electric"
	Grass    Type = "Grass"
	Ice      Type = "Ice"
	Fighting Type = "Fighting"
	Poison   Type = "Poison"
	Ground   Type = "Ground"
	Flying   Type = "Flying"
	Psychic  Type = "Psychic"
	Bug      Type = "Bug"
	Rock     Type = "Rock"
	Ghost    Type = "Ghost"
	Dragon   Type = "Dragon"
	Dark     Type = "Dark"
	Steel    Type = "Steel"
	Fairy    Type = "Fairy"
)

var AllTypes = []Type{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

// ParseType accepts any letter case ("fire", "FIRE").
func ParseType(s string) (Type, error) {
	for _, t := range AllTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown type %q", s)
}
