package game

import (
	"fmt"
	"strings"
)

type Stat uint8

const (
	HP Stat = iota
	Attack
	Defense
	SpAttack
	SpDefense
	Speed
)

var AllStats = [6]Stat{HP, Attack, Defense, SpAttack, SpDefense, Speed}

var statNames = [6]string{"HP", "Atk", "Def", "SpA", "SpD", "Spe"}

func (s Stat) String() string {
	if int(s) < len(statNames) {
		return statNames[s]
	}
	return "?"
}

// ParseStat understands the short names used in team exports.
func ParseStat(s string) (Stat, error) {
	for i, n := range statNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stat %q", s)
}

// Stats holds one value per Stat, indexed by the Stat constants.
type Stats [6]int

func (s Stats) Sum() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Uniform returns a Stats with every entry set to v.
func Uniform(v int) Stats {
	return Stats{v, v, v, v, v, v}
}

type NatureEffect int8

const (
	Neutral NatureEffect = iota
	Strengthened
	Weakened
)

type Nature struct {
	Name  string
	Plus  Stat
	Minus Stat
}

// Effect reports how the nature modifies s. Natures whose boosted and
// hindered stats coincide are neutral, and HP is never affected.
func (n Nature) Effect(s Stat) NatureEffect {
	if n.Plus == n.Minus || s == HP {
		return Neutral
	}
	switch s {
	case n.Plus:
		return Strengthened
	case n.Minus:
		return Weakened
	}
	return Neutral
}

var natures = []Nature{
	{"Hardy", Attack, Attack}, {"Lonely", Attack, Defense}, {"Brave", Attack, Speed},
	{"Adamant", Attack, SpAttack}, {"Naughty", Attack, SpDefense},
	{"Bold", Defense, Attack}, {"Docile", Defense, Defense}, {"Relaxed", Defense, Speed},
	{"Impish", Defense, SpAttack}, {"Lax", Defense, SpDefense},
	{"Timid", Speed, Attack}, {"Hasty", Speed, Defense}, {"Serious", Speed, Speed},
	{"Jolly", Speed, SpAttack}, {"Naive", Speed, SpDefense},
	{"Modest", SpAttack, Attack}, {"Mild", SpAttack, Defense}, {"Quiet", SpAttack, Speed},
	{"Bashful", SpAttack, SpAttack}, {"Rash", SpAttack, SpDefense},
	{"Calm", SpDefense, Attack}, {"Gentle", SpDefense, Defense}, {"Sassy", SpDefense, Speed},
	{"Careful", SpDefense, SpAttack}, {"Quirky", SpDefense, SpDefense},
}

// NeutralNature is used when a team entry names no nature.
var NeutralNature = Nature{"Serious", Speed, Speed}

func ParseNature(s string) (Nature, error) {
	for _, n := range natures {
		if strings.EqualFold(n.Name, strings.TrimSpace(s)) {
			return n, nil
		}
	}
	return Nature{}, fmt.Errorf("unknown nature %q", s)
}
