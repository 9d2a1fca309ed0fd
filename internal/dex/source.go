// Package dex supplies species and move data to the engine.
package dex

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

var (
	ErrSpeciesNotFound = errors.New("species not found")
	ErrMoveNotFound    = errors.New("move not found")
	ErrAbilityNotFound = errors.New("ability not found")
)

// Source - внешний источник данных о покемонах и приёмах.
// Реализации: in-memory Dex (embedded YAML) и db.DexRepository (PostgreSQL).
type Source interface {
	BaseStats(ctx context.Context, species string) (stats.BaseStats, error)
	Types(ctx context.Context, species string) ([]model.Type, error)
	Abilities(ctx context.Context, species string) ([]model.Ability, error)
	// Move resolves a move as used by user. Some moves change with the
	// user's form (Ivy Cudgel).
	Move(ctx context.Context, name, user string) (model.Move, error)
}

// Species is one dataset entry.
type Species struct {
	Name      string          `yaml:"name" json:"name"`
	Types     []model.Type    `yaml:"types" json:"types"`
	Base      stats.BaseStats `yaml:"base" json:"base"`
	Abilities []model.Ability `yaml:"abilities" json:"abilities,omitempty"`
}

// Build resolves species into a fresh build: 31 IVs, no EVs, neutral
// nature, first listed ability.
func Build(ctx context.Context, src Source, species string) (model.PokemonBuild, error) {
	base, err := src.BaseStats(ctx, species)
	if err != nil {
		return model.PokemonBuild{}, err
	}
	types, err := src.Types(ctx, species)
	if err != nil {
		return model.PokemonBuild{}, err
	}
	abilities, err := src.Abilities(ctx, species)
	if err != nil {
		return model.PokemonBuild{}, err
	}

	b := model.NewBuild(model.NormalizeName(species), base, types...)
	if len(abilities) > 0 {
		b.Ability = abilities[0]
	}
	return b, nil
}

// CheckAbility verifies that species can have ability.
func CheckAbility(ctx context.Context, src Source, species string, ability model.Ability) error {
	abilities, err := src.Abilities(ctx, species)
	if err != nil {
		return err
	}
	for _, a := range abilities {
		if a == ability {
			return nil
		}
	}
	return fmt.Errorf("%s on %s: %w", ability, species, ErrAbilityNotFound)
}

// ResolveMove applies user-dependent changes to a stored move.
func ResolveMove(mv model.Move, user string) model.Move {
	if model.NormalizeName(mv.Name) == "ivy-cudgel" {
		if p, ok := LookupPolicy(user); ok && p.FixedTera != model.TypeNone {
			mv.Type = p.FixedTera
		}
	}
	return mv
}
