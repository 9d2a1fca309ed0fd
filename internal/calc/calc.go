// Package calc is the request-level facade of the engine. It resolves
// species and move names through a dex.Source and exposes the six
// operations adapters call: speed comparison, speed EV search, damage
// range and the three survival optimisations.
package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/vgcspread/internal/damage"
	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/optimizer"
	"github.com/udisondev/vgcspread/internal/speed"
	"github.com/udisondev/vgcspread/internal/stats"
	"github.com/udisondev/vgcspread/internal/survival"
	"github.com/udisondev/vgcspread/internal/usage"
)

var ErrMissingSpecies = errors.New("species name is required")

// Service wires the dex, usage data and the optimizer together.
type Service struct {
	dex dex.Source
	opt *optimizer.Optimizer
	log *slog.Logger
}

// New creates a Service. A nil provider disables usage data.
func New(src dex.Source, provider usage.Provider, opts optimizer.Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		dex: src,
		opt: optimizer.New(src, provider, opts),
		log: log,
	}
}

// Pokemon names a species with an optional build on top of it.
type Pokemon struct {
	Species string        `yaml:"species" json:"species"`
	Nature  stats.Nature  `yaml:"nature" json:"nature,omitempty"`
	EVs     stats.Spread  `yaml:"evs" json:"evs"`
	IVs     *stats.Spread `yaml:"ivs" json:"ivs,omitempty"` // nil = 31 everywhere
	Ability model.Ability `yaml:"ability" json:"ability,omitempty"`
	Item    model.Item    `yaml:"item" json:"item,omitempty"`
	Tera    model.Type    `yaml:"tera" json:"tera,omitempty"`
}

// resolve builds p through the dex and validates the investment.
func (s *Service) resolve(ctx context.Context, p Pokemon) (model.PokemonBuild, error) {
	if p.Species == "" {
		return model.PokemonBuild{}, ErrMissingSpecies
	}
	b, err := dex.Build(ctx, s.dex, p.Species)
	if err != nil {
		return model.PokemonBuild{}, err
	}
	if err := p.EVs.ValidateEVs(); err != nil {
		return model.PokemonBuild{}, fmt.Errorf("%s: %w", b.Species, err)
	}
	b.EVs = p.EVs
	if p.IVs != nil {
		if err := p.IVs.ValidateIVs(); err != nil {
			return model.PokemonBuild{}, fmt.Errorf("%s: %w", b.Species, err)
		}
		b.IVs = *p.IVs
	}
	if p.Nature.Valid() {
		b.Nature = p.Nature
	}
	if p.Ability != model.AbilityNone {
		b.Ability = p.Ability
	}
	b.Item = p.Item
	b.TeraType = p.Tera
	return b, nil
}

// OptimizeSingle runs the single-threat optimisation.
func (s *Service) OptimizeSingle(ctx context.Context, req optimizer.Request) (optimizer.Result, error) {
	return s.opt.OptimizeSingle(ctx, req)
}

// OptimizeDual runs the two-threat optimisation.
func (s *Service) OptimizeDual(ctx context.Context, req optimizer.Request) (optimizer.Result, error) {
	return s.opt.OptimizeDual(ctx, req)
}

// OptimizeMulti runs the 3..6 threat optimisation.
func (s *Service) OptimizeMulti(ctx context.Context, req optimizer.Request) (optimizer.Result, error) {
	return s.opt.OptimizeMulti(ctx, req)
}

// Optimize picks the mode from the number of threats.
func (s *Service) Optimize(ctx context.Context, req optimizer.Request) (optimizer.Result, error) {
	return s.opt.Optimize(ctx, req)
}

// IsNotFound reports errors caused by an unknown species, move or ability.
func IsNotFound(err error) bool {
	return errors.Is(err, dex.ErrSpeciesNotFound) ||
		errors.Is(err, dex.ErrMoveNotFound) ||
		errors.Is(err, dex.ErrAbilityNotFound)
}

// IsInvalidArgument reports errors caused by a malformed request.
func IsInvalidArgument(err error) bool {
	for _, target := range []error{
		ErrMissingSpecies,
		optimizer.ErrThreatCount,
		optimizer.ErrNoThreats,
		optimizer.ErrStatusMove,
		survival.ErrInvalidThreshold,
		stats.ErrInvalidNature,
		stats.ErrEVOutOfRange,
		stats.ErrEVTotalExceeded,
		stats.ErrInvalidIV,
		model.ErrUnknownType,
		model.ErrUnknownItem,
		model.ErrUnknownAbility,
		model.ErrUnknownCategory,
		damage.ErrUnknownWeather,
		damage.ErrUnknownTerrain,
		speed.ErrInvalidStage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
