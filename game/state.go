package game

import (
	"fmt"
	"strings"
)

// Player identifies one side of a battle.
type Player uint8

const (
	Black Player = iota
	White
)

func (p Player) Opponent() Player {
	if p == Black {
		return White
	}
	return Black
}

func (p Player) String() string {
	if p == Black {
		return "black"
	}
	return "white"
}

// ParsePlayer accepts the side names and Showdown's p1/p2 ids.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "p1":
		return Black, nil
	case "white", "p2":
		return White, nil
	}
	return Black, fmt.Errorf("unknown player %q", s)
}

// Players lists both sides in a fixed order.
var Players = [2]Player{Black, White}

type Status uint8

const (
	StatusOK Status = iota
	StatusPoison
	StatusBurn
	StatusParalysis
	StatusFreeze
	StatusFaint
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPoison:
		return "psn"
	case StatusBurn:
		return "brn"
	case StatusParalysis:
		return "par"
	case StatusFreeze:
		return "frz"
	case StatusFaint:
		return "fnt"
	}
	return "?"
}
