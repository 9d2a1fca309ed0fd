package stats

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidNature = errors.New("invalid nature")

// Modifier is a nature multiplier in percent.
type Modifier int

const (
	Hindered Modifier = 90
	Neutral  Modifier = 100
	Boosted  Modifier = 110
)

// Nature is one of the 25 natures. The zero value means "not chosen".
type Nature uint8

const (
	NatureNone Nature = iota
	Hardy
	Lonely
	Brave
	Adamant
	Naughty
	Bold
	Docile
	Relaxed
	Impish
	Lax
	Timid
	Hasty
	Serious
	Jolly
	Naive
	Modest
	Mild
	Quiet
	Bashful
	Rash
	Calm
	Gentle
	Sassy
	Careful
	Quirky
)

type natureInfo struct {
	name     string
	up, down Stat // HP means no change
}

var natureTable = [...]natureInfo{
	NatureNone: {"", HP, HP},
	Hardy:      {"hardy", HP, HP},
	Lonely:     {"lonely", Attack, Defense},
	Brave:      {"brave", Attack, Speed},
	Adamant:    {"adamant", Attack, SpecialAttack},
	Naughty:    {"naughty", Attack, SpecialDefense},
	Bold:       {"bold", Defense, Attack},
	Docile:     {"docile", HP, HP},
	Relaxed:    {"relaxed", Defense, Speed},
	Impish:     {"impish", Defense, SpecialAttack},
	Lax:        {"lax", Defense, SpecialDefense},
	Timid:      {"timid", Speed, Attack},
	Hasty:      {"hasty", Speed, Defense},
	Serious:    {"serious", HP, HP},
	Jolly:      {"jolly", Speed, SpecialAttack},
	Naive:      {"naive", Speed, SpecialDefense},
	Modest:     {"modest", SpecialAttack, Attack},
	Mild:       {"mild", SpecialAttack, Defense},
	Quiet:      {"quiet", SpecialAttack, Speed},
	Bashful:    {"bashful", HP, HP},
	Rash:       {"rash", SpecialAttack, SpecialDefense},
	Calm:       {"calm", SpecialDefense, Attack},
	Gentle:     {"gentle", SpecialDefense, Defense},
	Sassy:      {"sassy", SpecialDefense, Speed},
	Careful:    {"careful", SpecialDefense, SpecialAttack},
	Quirky:     {"quirky", HP, HP},
}

// AllNatures lists the 25 natures in index order.
func AllNatures() []Nature {
	out := make([]Nature, 0, len(natureTable)-1)
	for n := Hardy; n <= Quirky; n++ {
		out = append(out, n)
	}
	return out
}

// ParseNature accepts any casing ("Jolly", "JOLLY").
func ParseNature(s string) (Nature, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for n := Hardy; n <= Quirky; n++ {
		if natureTable[n].name == key {
			return n, nil
		}
	}
	return NatureNone, fmt.Errorf("%q: %w", s, ErrInvalidNature)
}

// Valid reports whether n is one of the 25 natures.
func (n Nature) Valid() bool {
	return n >= Hardy && n <= Quirky
}

func (n Nature) String() string {
	if int(n) < len(natureTable) {
		name := natureTable[n].name
		if name == "" {
			return "none"
		}
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("Nature(%d)", n)
}

// Modifier returns the multiplier n applies to s.
func (n Nature) Modifier(s Stat) Modifier {
	if !n.Valid() || s == HP {
		return Neutral
	}
	info := natureTable[n]
	switch {
	case info.up == HP:
		return Neutral
	case info.up == s:
		return Boosted
	case info.down == s:
		return Hindered
	}
	return Neutral
}

// IsNeutral reports whether n changes no stat.
func (n Nature) IsNeutral() bool {
	return n.Valid() && natureTable[n].up == HP
}

// Boosts returns the stat raised by n.
func (n Nature) Boosts() (Stat, bool) {
	if !n.Valid() || n.IsNeutral() {
		return HP, false
	}
	return natureTable[n].up, true
}

// Lowers returns the stat dropped by n.
func (n Nature) Lowers() (Stat, bool) {
	if !n.Valid() || n.IsNeutral() {
		return HP, false
	}
	return natureTable[n].down, true
}

// BoostLabel renders "+Def" style labels, or "neutral".
func (n Nature) BoostLabel() string {
	if s, ok := n.Boosts(); ok {
		return "+" + s.String()
	}
	return "neutral"
}

func (n Nature) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return []byte{}, nil
	}
	return []byte(natureTable[n].name), nil
}

func (n *Nature) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*n = NatureNone
		return nil
	}
	parsed, err := ParseNature(string(b))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
