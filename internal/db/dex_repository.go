package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

// DexRepository - dex.Source поверх таблиц species и moves.
type DexRepository struct {
	pool *pgxpool.Pool
}

var _ dex.Source = (*DexRepository)(nil)

// NewDexRepository creates a new dex repository.
func NewDexRepository(pool *pgxpool.Pool) *DexRepository {
	return &DexRepository{pool: pool}
}

// LoadSpecies loads one species row by name.
func (r *DexRepository) LoadSpecies(ctx context.Context, name string) (dex.Species, error) {
	key := model.NormalizeName(name)
	var (
		sp        dex.Species
		types     []string
		abilities []string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT name, types, hp, atk, def, spa, spd, spe, abilities
		 FROM species WHERE name = $1`, key,
	).Scan(&sp.Name, &types, &sp.Base.HP, &sp.Base.Attack, &sp.Base.Defense,
		&sp.Base.SpecialAttack, &sp.Base.SpecialDefense, &sp.Base.Speed, &abilities)
	if errors.Is(err, pgx.ErrNoRows) {
		return dex.Species{}, fmt.Errorf("%q: %w", name, dex.ErrSpeciesNotFound)
	}
	if err != nil {
		return dex.Species{}, fmt.Errorf("loading species %q: %w", key, err)
	}

	if sp.Types, err = model.ParseTypes(types); err != nil {
		return dex.Species{}, fmt.Errorf("species %q types: %w", key, err)
	}
	sp.Abilities = make([]model.Ability, 0, len(abilities))
	for _, a := range abilities {
		ab, err := model.ParseAbility(a)
		if err != nil {
			return dex.Species{}, fmt.Errorf("species %q abilities: %w", key, err)
		}
		sp.Abilities = append(sp.Abilities, ab)
	}
	return sp, nil
}

func (r *DexRepository) BaseStats(ctx context.Context, species string) (stats.BaseStats, error) {
	sp, err := r.LoadSpecies(ctx, species)
	return sp.Base, err
}

func (r *DexRepository) Types(ctx context.Context, species string) ([]model.Type, error) {
	sp, err := r.LoadSpecies(ctx, species)
	return sp.Types, err
}

func (r *DexRepository) Abilities(ctx context.Context, species string) ([]model.Ability, error) {
	sp, err := r.LoadSpecies(ctx, species)
	return sp.Abilities, err
}

// Move loads a move and applies user-dependent changes.
func (r *DexRepository) Move(ctx context.Context, name, user string) (model.Move, error) {
	key := model.NormalizeName(name)
	var (
		mv       model.Move
		typ, cat string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT name, type, category, power, priority, always_crit, spread,
		        contact, secondary, targets_defense, min_hits, max_hits
		 FROM moves WHERE name = $1`, key,
	).Scan(&mv.Name, &typ, &cat, &mv.Power, &mv.Priority, &mv.AlwaysCrit, &mv.IsSpread,
		&mv.MakesContact, &mv.HasSecondary, &mv.TargetsDefense, &mv.MinHits, &mv.MaxHits)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Move{}, fmt.Errorf("%q: %w", name, dex.ErrMoveNotFound)
	}
	if err != nil {
		return model.Move{}, fmt.Errorf("loading move %q: %w", key, err)
	}

	if mv.Type, err = model.ParseType(typ); err != nil {
		return model.Move{}, fmt.Errorf("move %q: %w", key, err)
	}
	if mv.Category, err = model.ParseCategory(cat); err != nil {
		return model.Move{}, fmt.Errorf("move %q: %w", key, err)
	}
	return dex.ResolveMove(mv, user), nil
}

// CountSpecies returns the number of stored species.
func (r *DexRepository) CountSpecies(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM species`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting species: %w", err)
	}
	return n, nil
}
