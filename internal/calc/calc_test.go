package calc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/optimizer"
	"github.com/udisondev/vgcspread/internal/speed"
	"github.com/udisondev/vgcspread/internal/stats"
	"github.com/udisondev/vgcspread/internal/survival"
	"github.com/udisondev/vgcspread/internal/usage"
)

func newService(t *testing.T) *Service {
	t.Helper()
	d, err := dex.Embedded()
	require.NoError(t, err)
	return New(d, usage.Nop{}, optimizer.Options{Parallel: true, MaxWorkers: 2})
}

func TestCompareSpeed(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		first     SpeedSide
		second    SpeedSide
		trickRoom bool
		mover     string
	}{
		{
			name:   "faster moves first",
			first:  SpeedSide{Pokemon: Pokemon{Species: "Incineroar"}},
			second: SpeedSide{Pokemon: Pokemon{Species: "Flutter Mane"}},
			mover:  "flutter-mane",
		},
		{
			name:      "trick room reverses",
			first:     SpeedSide{Pokemon: Pokemon{Species: "Incineroar"}},
			second:    SpeedSide{Pokemon: Pokemon{Species: "Flutter Mane"}},
			trickRoom: true,
			mover:     "incineroar",
		},
		{
			name:   "tailwind doubles",
			first:  SpeedSide{Pokemon: Pokemon{Species: "Incineroar"}, Mods: speed.Modifiers{Tailwind: true}},
			second: SpeedSide{Pokemon: Pokemon{Species: "Amoonguss"}},
			mover:  "incineroar",
		},
		{
			name:   "mirror is a tie",
			first:  SpeedSide{Pokemon: Pokemon{Species: "Chien-Pao", Nature: stats.Jolly, EVs: stats.Spread{Speed: 252}}},
			second: SpeedSide{Pokemon: Pokemon{Species: "Chien-Pao", Nature: stats.Jolly, EVs: stats.Spread{Speed: 252}}},
			mover:  "speed tie",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.CompareSpeed(ctx, SpeedComparisonRequest{First: tt.first, Second: tt.second, TrickRoom: tt.trickRoom})
			require.NoError(t, err)
			if got.Mover != tt.mover {
				t.Errorf("CompareSpeed() mover = %q, want %q", got.Mover, tt.mover)
			}
		})
	}
}

func TestCompareSpeed_Stats(t *testing.T) {
	s := newService(t)

	got, err := s.CompareSpeed(context.Background(), SpeedComparisonRequest{
		First:  SpeedSide{Pokemon: Pokemon{Species: "incineroar"}},
		Second: SpeedSide{Pokemon: Pokemon{Species: "flutter-mane"}, Mods: speed.Modifiers{Paralyzed: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, 80, got.FirstEff)
	assert.Equal(t, 155, got.Second.Stat)
	assert.Equal(t, 77, got.SecondEff)
	assert.Equal(t, speed.FirstMoves, got.Outcome)
}

func TestFindSpeedEVs(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		req       SpeedEVsRequest
		evs       int
		iv        int
		reachable bool
		note      string
	}{
		{
			name:      "outspeed",
			req:       SpeedEVsRequest{Species: "flutter-mane", Nature: stats.Timid, Goal: optimizer.SpeedGoal{Target: 200}},
			evs:       220,
			iv:        31,
			reachable: true,
		},
		{
			name: "outspeed out of reach",
			req:  SpeedEVsRequest{Species: "flutter-mane", Nature: stats.Timid, Goal: optimizer.SpeedGoal{Target: 205}},
			evs:  252,
			iv:   31,
			note: "cannot outspeed even with 252 EVs",
		},
		{
			name:      "underspeed",
			req:       SpeedEVsRequest{Species: "incineroar", Nature: stats.Brave, Goal: optimizer.SpeedGoal{Target: 80, Underspeed: true}},
			evs:       60,
			iv:        31,
			reachable: true,
		},
		{
			name:      "underspeed needs 0 IV",
			req:       SpeedEVsRequest{Species: "incineroar", Goal: optimizer.SpeedGoal{Target: 70, Underspeed: true}},
			evs:       0,
			iv:        0,
			reachable: true,
			note:      "needs 0 Speed IV",
		},
		{
			name: "underspeed needs -Spe nature",
			req:  SpeedEVsRequest{Species: "incineroar", Goal: optimizer.SpeedGoal{Target: 60, Underspeed: true}},
			evs:  0,
			iv:   31,
			note: "too fast even at 0 IV: use a -Spe nature (Brave, Relaxed, Quiet, Sassy)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindSpeedEVs(ctx, tt.req)
			require.NoError(t, err)
			if got.EVs != tt.evs {
				t.Errorf("FindSpeedEVs() EVs = %d, want %d", got.EVs, tt.evs)
			}
			if got.IV != tt.iv {
				t.Errorf("FindSpeedEVs() IV = %d, want %d", got.IV, tt.iv)
			}
			assert.Equal(t, tt.reachable, got.Reachable)
			assert.Equal(t, tt.note, got.Note)
		})
	}
}

func TestFindSpeedEVs_ResultStats(t *testing.T) {
	s := newService(t)

	got, err := s.FindSpeedEVs(context.Background(), SpeedEVsRequest{
		Species: "flutter-mane",
		Nature:  stats.Timid,
		Goal:    optimizer.SpeedGoal{Target: 150, TargetMods: speed.Modifiers{Stage: -1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, got.Goal)
	assert.Equal(t, 0, got.EVs)
	assert.Greater(t, got.Effective, got.Goal)
}

func TestCalculateDamageRange(t *testing.T) {
	s := newService(t)

	res, err := s.CalculateDamageRange(context.Background(), DamageRequest{
		Attacker: Pokemon{Species: "Chien-Pao", Nature: stats.Adamant, EVs: stats.Spread{Attack: 252}},
		Defender: Pokemon{Species: "Incineroar"},
		Move:     "Icicle Crash",
	})
	require.NoError(t, err)

	// Sword of Ruin: 110 Def -> 82.
	assert.Equal(t, 82, res.DefenseStat)
	assert.Equal(t, 189, res.AttackStat)
	assert.Equal(t, 170, res.DefenderHP)
	if res.MaxDamage != 66 {
		t.Errorf("MaxDamage = %d, want %d", res.MaxDamage, 66)
	}
	if res.MinDamage != 56 {
		t.Errorf("MinDamage = %d, want %d", res.MinDamage, 56)
	}
	assert.Equal(t, 38.8, res.MaxPercent)
	assert.Equal(t, 32.9, res.MinPercent)
}

func TestCalculateDamageRange_Immune(t *testing.T) {
	s := newService(t)

	res, err := s.CalculateDamageRange(context.Background(), DamageRequest{
		Attacker: Pokemon{Species: "incineroar", Nature: stats.Adamant, EVs: stats.Spread{Attack: 252}},
		Defender: Pokemon{Species: "flutter-mane"},
		Move:     "fake-out",
	})
	require.NoError(t, err)
	assert.True(t, res.Immune)
	assert.Equal(t, "type", res.ImmuneReason)
	assert.Equal(t, "immune", res.KOChance())
}

func TestCalculateDamageRange_DefenderTera(t *testing.T) {
	s := newService(t)
	att := Pokemon{Species: "incineroar", Nature: stats.Adamant, EVs: stats.Spread{Attack: 252}}

	res, err := s.CalculateDamageRange(context.Background(), DamageRequest{
		Attacker: att,
		Defender: Pokemon{Species: "flutter-mane", Tera: model.TypeNormal},
		Move:     "fake-out",
	})
	require.NoError(t, err)
	assert.False(t, res.Immune)
	assert.Positive(t, res.MaxDamage)
}

func TestService_Optimize(t *testing.T) {
	s := newService(t)

	res, err := s.OptimizeSingle(context.Background(), optimizer.Request{
		Species: "incineroar",
		Threats: []optimizer.ThreatSpec{{Attacker: "chien-pao", Move: "icicle-crash"}},
	})
	require.NoError(t, err)
	assert.Equal(t, optimizer.ModeSingle, res.Mode)
	assert.LessOrEqual(t, res.Best.Total, stats.MaxTotalEV)
	assert.NoError(t, res.Best.EVs.ValidateEVs())
}

func TestService_Errors(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.CalculateDamageRange(ctx, DamageRequest{
		Attacker: Pokemon{Species: "missingno"},
		Defender: Pokemon{Species: "incineroar"},
		Move:     "fake-out",
	})
	assert.True(t, IsNotFound(err))
	assert.False(t, IsInvalidArgument(err))

	_, err = s.CalculateDamageRange(ctx, DamageRequest{
		Attacker: Pokemon{Species: "incineroar", EVs: stats.Spread{Attack: 252, HP: 252, Speed: 252}},
		Defender: Pokemon{Species: "incineroar"},
		Move:     "fake-out",
	})
	assert.True(t, IsInvalidArgument(err))
	assert.ErrorIs(t, err, stats.ErrEVTotalExceeded)

	_, err = s.CompareSpeed(ctx, SpeedComparisonRequest{
		First:  SpeedSide{Pokemon: Pokemon{Species: "incineroar"}, Mods: speed.Modifiers{Stage: 9}},
		Second: SpeedSide{Pokemon: Pokemon{Species: "incineroar"}},
	})
	assert.True(t, IsInvalidArgument(err))

	_, err = s.FindSpeedEVs(ctx, SpeedEVsRequest{})
	assert.ErrorIs(t, err, ErrMissingSpecies)

	_, err = s.OptimizeDual(ctx, optimizer.Request{Species: "incineroar"})
	assert.True(t, IsInvalidArgument(err))
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		err      error
		notFound bool
		invalid  bool
	}{
		{fmt.Errorf("x: %w", dex.ErrMoveNotFound), true, false},
		{fmt.Errorf("x: %w", dex.ErrAbilityNotFound), true, false},
		{fmt.Errorf("x: %w", survival.ErrInvalidThreshold), false, true},
		{fmt.Errorf("x: %w", optimizer.ErrStatusMove), false, true},
		{errors.New("boom"), false, false},
		{nil, false, false},
	}

	for _, tt := range tests {
		if got := IsNotFound(tt.err); got != tt.notFound {
			t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.notFound)
		}
		if got := IsInvalidArgument(tt.err); got != tt.invalid {
			t.Errorf("IsInvalidArgument(%v) = %v, want %v", tt.err, got, tt.invalid)
		}
	}
}
