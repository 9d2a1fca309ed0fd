package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/model"
)

// SeedStats reports how many rows SeedDex upserted.
type SeedStats struct {
	Species int `json:"species"`
	Moves   int `json:"moves"`
}

// SeedDex upserts a dataset into the species and moves tables in a
// single transaction. Names are stored normalised.
func SeedDex(ctx context.Context, pool *pgxpool.Pool, ds dex.Dataset) (SeedStats, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return SeedStats{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, sp := range ds.Species {
		batch.Queue(
			`INSERT INTO species (name, types, hp, atk, def, spa, spd, spe, abilities)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			 ON CONFLICT (name) DO UPDATE SET
			  types=$2, hp=$3, atk=$4, def=$5, spa=$6, spd=$7, spe=$8, abilities=$9`,
			model.NormalizeName(sp.Name), typeNames(sp.Types),
			sp.Base.HP, sp.Base.Attack, sp.Base.Defense,
			sp.Base.SpecialAttack, sp.Base.SpecialDefense, sp.Base.Speed,
			abilityNames(sp.Abilities),
		)
	}
	for _, mv := range ds.Moves {
		batch.Queue(
			`INSERT INTO moves (name, type, category, power, priority, always_crit, spread,
			                    contact, secondary, targets_defense, min_hits, max_hits)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			 ON CONFLICT (name) DO UPDATE SET
			  type=$2, category=$3, power=$4, priority=$5, always_crit=$6, spread=$7,
			  contact=$8, secondary=$9, targets_defense=$10, min_hits=$11, max_hits=$12`,
			model.NormalizeName(mv.Name), mv.Type.String(), mv.Category.String(),
			mv.Power, mv.Priority, mv.AlwaysCrit, mv.IsSpread,
			mv.MakesContact, mv.HasSecondary, mv.TargetsDefense, mv.MinHits, mv.MaxHits,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return SeedStats{}, fmt.Errorf("seeding dex batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return SeedStats{}, fmt.Errorf("close seed batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return SeedStats{}, fmt.Errorf("commit seed: %w", err)
	}

	st := SeedStats{Species: len(ds.Species), Moves: len(ds.Moves)}
	slog.Info("dex seeded", "species", st.Species, "moves", st.Moves)
	return st, nil
}

func typeNames(types []model.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

func abilityNames(abilities []model.Ability) []string {
	out := make([]string, len(abilities))
	for i, a := range abilities {
		out[i] = a.String()
	}
	return out
}
