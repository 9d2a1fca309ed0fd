package dex

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

func embedded(t *testing.T) *Dex {
	t.Helper()
	d, err := Embedded()
	require.NoError(t, err)
	return d
}

func TestEmbedded_Species(t *testing.T) {
	d := embedded(t)
	ctx := context.Background()

	base, err := d.BaseStats(ctx, "Incineroar")
	require.NoError(t, err)
	assert.Equal(t, stats.BaseStats{HP: 95, Attack: 115, Defense: 90, SpecialAttack: 80, SpecialDefense: 90, Speed: 60}, base)

	types, err := d.Types(ctx, "flutter mane")
	require.NoError(t, err)
	assert.Equal(t, []model.Type{model.TypeGhost, model.TypeFairy}, types)

	abilities, err := d.Abilities(ctx, "Chien-Pao")
	require.NoError(t, err)
	assert.Equal(t, []model.Ability{model.SwordOfRuin}, abilities)

	assert.GreaterOrEqual(t, len(d.SpeciesNames()), 40)
}

func TestEmbedded_EverySpeciesValid(t *testing.T) {
	d := embedded(t)
	for _, name := range d.SpeciesNames() {
		s := d.species[name]
		assert.NotEmpty(t, s.Types, name)
		assert.LessOrEqual(t, len(s.Types), 2, name)
		assert.Positive(t, s.Base.HP, name)
		assert.Positive(t, s.Base.Speed, name)
	}
}

func TestEmbedded_Moves(t *testing.T) {
	d := embedded(t)
	ctx := context.Background()

	mv, err := d.Move(ctx, "Surging Strikes", "urshifu-rapid-strike")
	require.NoError(t, err)
	assert.Equal(t, model.TypeWater, mv.Type)
	assert.True(t, mv.AlwaysCrit)
	assert.Equal(t, 3, mv.MaxHits)

	mv, err = d.Move(ctx, "psyshock", "")
	require.NoError(t, err)
	assert.True(t, mv.HitsPhysicalDefense())

	mv, err = d.Move(ctx, "Protect", "")
	require.NoError(t, err)
	assert.False(t, mv.IsDamaging())
}

func TestMove_IvyCudgelFollowsForm(t *testing.T) {
	d := embedded(t)
	ctx := context.Background()

	tests := []struct {
		user string
		want model.Type
	}{
		{"ogerpon", model.TypeGrass},
		{"ogerpon-teal", model.TypeGrass},
		{"ogerpon-wellspring", model.TypeWater},
		{"ogerpon-hearthflame", model.TypeFire},
		{"ogerpon-cornerstone", model.TypeRock},
		{"incineroar", model.TypeGrass},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			mv, err := d.Move(ctx, "ivy-cudgel", tt.user)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mv.Type)
		})
	}
}

func TestNotFound(t *testing.T) {
	d := embedded(t)
	ctx := context.Background()

	_, err := d.BaseStats(ctx, "missingno")
	assert.ErrorIs(t, err, ErrSpeciesNotFound)
	_, err = d.Move(ctx, "hyper-beam-9000", "")
	assert.ErrorIs(t, err, ErrMoveNotFound)

	err = CheckAbility(ctx, d, "incineroar", model.Levitate)
	assert.ErrorIs(t, err, ErrAbilityNotFound)
	assert.NoError(t, CheckAbility(ctx, d, "incineroar", model.Intimidate))
}

func TestBuild(t *testing.T) {
	b, err := Build(context.Background(), embedded(t), "Dragonite")
	require.NoError(t, err)
	assert.Equal(t, "dragonite", b.Species)
	assert.Equal(t, model.Multiscale, b.Ability)
	assert.Equal(t, 31, b.IVs.Speed)
	assert.True(t, b.Nature.IsNeutral())
	assert.Equal(t, 166, b.MaxHP())

	_, err = Build(context.Background(), embedded(t), "agumon")
	assert.ErrorIs(t, err, ErrSpeciesNotFound)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(strings.NewReader("species:\n  - name: x\n    types: [plasma]\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownType)
}

func TestLookupPolicy(t *testing.T) {
	p, ok := LookupPolicy("Ting-Lu")
	require.True(t, ok)
	assert.Equal(t, model.VesselOfRuin, p.FixedAbility)
	assert.Equal(t, model.Leftovers, p.SynergyItem)

	p, ok = LookupPolicy("terapagos")
	require.True(t, ok)
	assert.Equal(t, model.TypeStellar, p.FixedTera)

	_, ok = LookupPolicy("incineroar")
	assert.False(t, ok)
}
