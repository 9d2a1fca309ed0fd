package db

import (
	"context"
	"testing"

	"github.com/udisondev/vgcspread/internal/dex"
)

// BenchmarkDexRepository_Build - защитник целиком: три запроса к species.
func BenchmarkDexRepository_Build(b *testing.B) {
	pool := setupTestDB(b)
	ctx := context.Background()

	ds, err := dex.EmbeddedDataset()
	if err != nil {
		b.Fatalf("loading dataset: %v", err)
	}
	if _, err := SeedDex(ctx, pool, ds); err != nil {
		b.Fatalf("seeding dex: %v", err)
	}
	repo := NewDexRepository(pool)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if _, err := dex.Build(ctx, repo, "incineroar"); err != nil {
			b.Fatal(err)
		}
	}
}
