package stats

import (
	"errors"
	"fmt"
)

// Level-50 doubles constants.
const (
	Level      = 50
	MaxIV      = 31
	MaxEV      = 252
	MaxTotalEV = 508
)

var (
	ErrEVOutOfRange    = errors.New("ev out of range")
	ErrEVTotalExceeded = errors.New("ev total exceeds 508")
	ErrInvalidIV       = errors.New("iv out of range")
)

// Stat identifies one of the six battle stats.
type Stat uint8

const (
	HP Stat = iota
	Attack
	Defense
	SpecialAttack
	SpecialDefense
	Speed
)

var statAbbrev = [...]string{"HP", "Atk", "Def", "SpA", "SpD", "Spe"}

// String returns the Showdown abbreviation ("Atk", "SpD", ...).
func (s Stat) String() string {
	if int(s) < len(statAbbrev) {
		return statAbbrev[s]
	}
	return fmt.Sprintf("Stat(%d)", s)
}

// BaseStats is the per-species stat line.
type BaseStats struct {
	HP             int `yaml:"hp" json:"hp"`
	Attack         int `yaml:"atk" json:"atk"`
	Defense        int `yaml:"def" json:"def"`
	SpecialAttack  int `yaml:"spa" json:"spa"`
	SpecialDefense int `yaml:"spd" json:"spd"`
	Speed          int `yaml:"spe" json:"spe"`
}

// Get returns the base value for s.
func (b BaseStats) Get(s Stat) int {
	switch s {
	case HP:
		return b.HP
	case Attack:
		return b.Attack
	case Defense:
		return b.Defense
	case SpecialAttack:
		return b.SpecialAttack
	case SpecialDefense:
		return b.SpecialDefense
	case Speed:
		return b.Speed
	}
	return 0
}

// Spread holds one value per stat. Used for both EVs and IVs.
type Spread struct {
	HP             int `yaml:"hp" json:"hp"`
	Attack         int `yaml:"atk" json:"atk"`
	Defense        int `yaml:"def" json:"def"`
	SpecialAttack  int `yaml:"spa" json:"spa"`
	SpecialDefense int `yaml:"spd" json:"spd"`
	Speed          int `yaml:"spe" json:"spe"`
}

// PerfectIVs returns 31 in every stat.
func PerfectIVs() Spread {
	return Spread{MaxIV, MaxIV, MaxIV, MaxIV, MaxIV, MaxIV}
}

// Get returns the value stored for s.
func (sp Spread) Get(s Stat) int {
	return BaseStats(sp).Get(s)
}

// With returns a copy of sp with s set to v.
func (sp Spread) With(s Stat, v int) Spread {
	switch s {
	case HP:
		sp.HP = v
	case Attack:
		sp.Attack = v
	case Defense:
		sp.Defense = v
	case SpecialAttack:
		sp.SpecialAttack = v
	case SpecialDefense:
		sp.SpecialDefense = v
	case Speed:
		sp.Speed = v
	}
	return sp
}

// Total sums all six values.
func (sp Spread) Total() int {
	return sp.HP + sp.Attack + sp.Defense + sp.SpecialAttack + sp.SpecialDefense + sp.Speed
}

// ValidateEVs checks the 0..252 per-stat and 508 total limits.
func (sp Spread) ValidateEVs() error {
	for s := HP; s <= Speed; s++ {
		if v := sp.Get(s); v < 0 || v > MaxEV {
			return fmt.Errorf("%s EVs %d: %w", s, v, ErrEVOutOfRange)
		}
	}
	if t := sp.Total(); t > MaxTotalEV {
		return fmt.Errorf("total %d: %w", t, ErrEVTotalExceeded)
	}
	return nil
}

// ValidateIVs checks every value is within 0..31.
func (sp Spread) ValidateIVs() error {
	for s := HP; s <= Speed; s++ {
		if v := sp.Get(s); v < 0 || v > MaxIV {
			return fmt.Errorf("%s IV %d: %w", s, v, ErrInvalidIV)
		}
	}
	return nil
}

// String renders the spread Showdown-style, skipping zero stats.
func (sp Spread) String() string {
	out := ""
	for s := HP; s <= Speed; s++ {
		v := sp.Get(s)
		if v == 0 {
			continue
		}
		if out != "" {
			out += " / "
		}
		out += fmt.Sprintf("%d %s", v, s)
	}
	if out == "" {
		return "0"
	}
	return out
}

// Final is a fully derived stat line.
type Final struct {
	HP             int `json:"hp"`
	Attack         int `json:"atk"`
	Defense        int `json:"def"`
	SpecialAttack  int `json:"spa"`
	SpecialDefense int `json:"spd"`
	Speed          int `json:"spe"`
}

// Get returns the final value for s.
func (f Final) Get(s Stat) int {
	return BaseStats(f).Get(s)
}

// CalculateStat computes a non-HP stat:
// floor((floor((2*base + iv + floor(ev/4)) * level / 100) + 5) * nature).
func CalculateStat(base, iv, ev, level int, mod Modifier) int {
	inner := (2*base+iv+ev/4)*level/100 + 5
	return inner * int(mod) / 100
}

// CalculateHP computes the HP stat. Base HP 1 (Shedinja) is always 1.
func CalculateHP(base, iv, ev, level int) int {
	if base == 1 {
		return 1
	}
	return (2*base+iv+ev/4)*level/100 + level + 10
}

// Calculate derives all six stats at level 50.
func Calculate(base BaseStats, ivs, evs Spread, n Nature) Final {
	return Final{
		HP:             CalculateHP(base.HP, ivs.HP, evs.HP, Level),
		Attack:         CalculateStat(base.Attack, ivs.Attack, evs.Attack, Level, n.Modifier(Attack)),
		Defense:        CalculateStat(base.Defense, ivs.Defense, evs.Defense, Level, n.Modifier(Defense)),
		SpecialAttack:  CalculateStat(base.SpecialAttack, ivs.SpecialAttack, evs.SpecialAttack, Level, n.Modifier(SpecialAttack)),
		SpecialDefense: CalculateStat(base.SpecialDefense, ivs.SpecialDefense, evs.SpecialDefense, Level, n.Modifier(SpecialDefense)),
		Speed:          CalculateStat(base.Speed, ivs.Speed, evs.Speed, Level, n.Modifier(Speed)),
	}
}

// Value computes a single stat, dispatching HP to CalculateHP.
func Value(s Stat, base, iv, ev int, n Nature) int {
	if s == HP {
		return CalculateHP(base, iv, ev, Level)
	}
	return CalculateStat(base, iv, ev, Level, n.Modifier(s))
}
