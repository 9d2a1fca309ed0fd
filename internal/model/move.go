package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown move category")

// Category is the damage class of a move.
type Category uint8

const (
	Physical Category = iota
	Special
	Status
)

func (c Category) String() string {
	switch c {
	case Physical:
		return "physical"
	case Special:
		return "special"
	case Status:
		return "status"
	}
	return fmt.Sprintf("Category(%d)", c)
}

// ParseCategory accepts "physical", "special" or "status".
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical":
		return Physical, nil
	case "special":
		return Special, nil
	case "status":
		return Status, nil
	}
	return Status, fmt.Errorf("%q: %w", s, ErrUnknownCategory)
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Move is a resolved move as used by the damage formula.
type Move struct {
	Name       string   `yaml:"name" json:"name"`
	Type       Type     `yaml:"type" json:"type"`
	Category   Category `yaml:"category" json:"category"`
	Power      int      `yaml:"power" json:"power"`
	Priority   int      `yaml:"priority" json:"priority,omitempty"`
	AlwaysCrit bool     `yaml:"always_crit" json:"always_crit,omitempty"`
	// IsSpread marks moves hitting both foes (or everyone) in doubles.
	IsSpread     bool `yaml:"spread" json:"spread,omitempty"`
	MakesContact bool `yaml:"contact" json:"contact,omitempty"`
	// HasSecondary marks moves boosted by Sheer Force.
	HasSecondary bool `yaml:"secondary" json:"secondary,omitempty"`
	// TargetsDefense marks special moves that hit physical Defense (Psyshock).
	TargetsDefense bool `yaml:"targets_defense" json:"targets_defense,omitempty"`
	MinHits        int  `yaml:"min_hits" json:"min_hits,omitempty"`
	MaxHits        int  `yaml:"max_hits" json:"max_hits,omitempty"`
}

// IsDamaging reports whether the move deals direct damage.
func (m Move) IsDamaging() bool {
	return m.Category != Status && m.Power > 0
}

// IsMultiHit reports moves that strike more than once.
func (m Move) IsMultiHit() bool {
	return m.MaxHits > 1
}

// HitsPhysicalDefense reports which defensive stat the move is checked
// against: Defense for physical moves and Psyshock-likes, else Sp. Def.
func (m Move) HitsPhysicalDefense() bool {
	return m.Category == Physical || m.TargetsDefense
}
