package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownType = errors.New("unknown type")

// Type is an elemental type. TypeNone marks "no type" / "no Tera".
type Type uint8

const (
	TypeNone Type = iota
	TypeNormal
	TypeFire
	TypeWater
	TypeElectric
	TypeGrass
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon
	TypeDark
	TypeSteel
	TypeFairy
	TypeStellar // Tera only

	typeCount
)

var typeNames = [typeCount]string{
	"", "normal", "fire", "water", "electric", "grass", "ice", "fighting", "poison",
	"ground", "flying", "psychic", "bug", "rock", "ghost", "dragon", "dark", "steel",
	"fairy", "stellar",
}

// ParseType accepts any casing ("Fire", "FIRE").
func ParseType(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t := TypeNormal; t < typeCount; t++ {
		if typeNames[t] == key {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("%q: %w", s, ErrUnknownType)
}

// ParseTypes parses a list of type names.
func ParseTypes(names []string) ([]Type, error) {
	out := make([]Type, 0, len(names))
	for _, n := range names {
		t, err := ParseType(n)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (t Type) String() string {
	if t == TypeNone || t >= typeCount {
		return "none"
	}
	name := typeNames[t]
	return strings.ToUpper(name[:1]) + name[1:]
}

func (t Type) MarshalText() ([]byte, error) {
	if t >= typeCount {
		return nil, fmt.Errorf("type %d: %w", t, ErrUnknownType)
	}
	return []byte(typeNames[t]), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || strings.EqualFold(s, "none") {
		*t = TypeNone
		return nil
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// typeChart holds attacking-vs-defending effectiveness in halves:
// 0 immune, 1 resisted, 2 neutral, 4 super effective.
var typeChart = buildTypeChart()

func buildTypeChart() [typeCount][typeCount]uint8 {
	var c [typeCount][typeCount]uint8
	for a := range c {
		for d := range c[a] {
			c[a][d] = 2
		}
	}
	set := func(atk Type, eff uint8, defs ...Type) {
		for _, d := range defs {
			c[atk][d] = eff
		}
	}

	set(TypeNormal, 1, TypeRock, TypeSteel)
	set(TypeNormal, 0, TypeGhost)

	set(TypeFire, 1, TypeFire, TypeWater, TypeRock, TypeDragon)
	set(TypeFire, 4, TypeGrass, TypeIce, TypeBug, TypeSteel)

	set(TypeWater, 1, TypeWater, TypeGrass, TypeDragon)
	set(TypeWater, 4, TypeFire, TypeGround, TypeRock)

	set(TypeElectric, 1, TypeElectric, TypeGrass, TypeDragon)
	set(TypeElectric, 4, TypeWater, TypeFlying)
	set(TypeElectric, 0, TypeGround)

	set(TypeGrass, 1, TypeFire, TypeGrass, TypePoison, TypeFlying, TypeBug, TypeDragon, TypeSteel)
	set(TypeGrass, 4, TypeWater, TypeGround, TypeRock)

	set(TypeIce, 1, TypeFire, TypeWater, TypeIce, TypeSteel)
	set(TypeIce, 4, TypeGrass, TypeGround, TypeFlying, TypeDragon)

	set(TypeFighting, 1, TypePoison, TypeFlying, TypePsychic, TypeBug, TypeFairy)
	set(TypeFighting, 4, TypeNormal, TypeIce, TypeRock, TypeDark, TypeSteel)
	set(TypeFighting, 0, TypeGhost)

	set(TypePoison, 1, TypePoison, TypeGround, TypeRock, TypeGhost)
	set(TypePoison, 4, TypeGrass, TypeFairy)
	set(TypePoison, 0, TypeSteel)

	set(TypeGround, 1, TypeGrass, TypeBug)
	set(TypeGround, 4, TypeFire, TypeElectric, TypePoison, TypeRock, TypeSteel)
	set(TypeGround, 0, TypeFlying)

	set(TypeFlying, 1, TypeElectric, TypeRock, TypeSteel)
	set(TypeFlying, 4, TypeGrass, TypeFighting, TypeBug)

	set(TypePsychic, 1, TypePsychic, TypeSteel)
	set(TypePsychic, 4, TypeFighting, TypePoison)
	set(TypePsychic, 0, TypeDark)

	set(TypeBug, 1, TypeFire, TypeFighting, TypePoison, TypeFlying, TypeGhost, TypeSteel, TypeFairy)
	set(TypeBug, 4, TypeGrass, TypePsychic, TypeDark)

	set(TypeRock, 1, TypeFighting, TypeGround, TypeSteel)
	set(TypeRock, 4, TypeFire, TypeIce, TypeFlying, TypeBug)

	set(TypeGhost, 1, TypeDark)
	set(TypeGhost, 4, TypePsychic, TypeGhost)
	set(TypeGhost, 0, TypeNormal)

	set(TypeDragon, 1, TypeSteel)
	set(TypeDragon, 4, TypeDragon)
	set(TypeDragon, 0, TypeFairy)

	set(TypeDark, 1, TypeFighting, TypeDark, TypeFairy)
	set(TypeDark, 4, TypePsychic, TypeGhost)

	set(TypeSteel, 1, TypeFire, TypeWater, TypeElectric, TypeSteel)
	set(TypeSteel, 4, TypeIce, TypeRock, TypeFairy)

	set(TypeFairy, 1, TypeFire, TypePoison, TypeSteel)
	set(TypeFairy, 4, TypeFighting, TypeDragon, TypeDark)

	return c
}

// Effectiveness returns the multiplier of an attacking type against up to
// two defending types, in quarters: 0, 1, 2, 4 (neutral), 8, 16.
func Effectiveness(atk Type, defs ...Type) int {
	if atk == TypeNone || atk >= typeCount {
		return 4
	}
	q := 4
	for i, d := range defs {
		if i == 2 {
			break
		}
		if d == TypeNone || d >= typeCount {
			continue
		}
		q = q * int(typeChart[atk][d]) / 2
	}
	return q
}

// EffectivenessFloat is Effectiveness as a plain multiplier (0.25 .. 4).
func EffectivenessFloat(atk Type, defs ...Type) float64 {
	return float64(Effectiveness(atk, defs...)) / 4
}
