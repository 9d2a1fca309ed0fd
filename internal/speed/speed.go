// Package speed computes effective Speed under battle modifiers and finds
// the Speed investment needed to move before (or after) a benchmark.
package speed

import (
	"errors"
	"fmt"

	"github.com/udisondev/vgcspread/internal/stats"
)

var ErrInvalidStage = errors.New("speed stage out of -6..+6")

// Multiplier is an exact rational speed multiplier.
type Multiplier struct {
	Num int
	Den int
}

var (
	Neutral     = Multiplier{1, 1}
	Tailwind    = Multiplier{2, 1}
	Paralysis   = Multiplier{1, 2}
	Booster     = Multiplier{3, 2}
	ChoiceScarf = Multiplier{3, 2}
)

// Apply returns floor(speed * m).
func Apply(speed int, m Multiplier) int {
	if m.Den == 0 {
		return speed
	}
	return speed * m.Num / m.Den
}

// StageMultiplier maps a stage in -6..+6 to (2+s)/2 or 2/(2-s).
// Stages outside the range are clamped.
func StageMultiplier(stage int) Multiplier {
	stage = max(-6, min(6, stage))
	if stage >= 0 {
		return Multiplier{2 + stage, 2}
	}
	return Multiplier{2, 2 - stage}
}

// Modifiers are the in-battle effects on one Pokemon's Speed.
type Modifiers struct {
	Tailwind  bool `yaml:"tailwind" json:"tailwind,omitempty"`
	Paralyzed bool `yaml:"paralyzed" json:"paralyzed,omitempty"`
	// Booster is a Speed-boosting Protosynthesis / Quark Drive.
	Booster bool `yaml:"booster" json:"booster,omitempty"`
	Scarf   bool `yaml:"scarf" json:"scarf,omitempty"`
	Stage   int  `yaml:"stage" json:"stage,omitempty"`
}

// Effective applies the modifiers to a raw Speed stat:
// booster, scarf, stage, tailwind, paralysis, flooring at each step.
func (m Modifiers) Effective(stat int) int {
	s := stat
	if m.Booster {
		s = Apply(s, Booster)
	}
	if m.Scarf {
		s = Apply(s, ChoiceScarf)
	}
	s = Apply(s, StageMultiplier(m.Stage))
	if m.Tailwind {
		s = Apply(s, Tailwind)
	}
	if m.Paralyzed {
		s = Apply(s, Paralysis)
	}
	return s
}

// Validate rejects stages outside -6..+6.
func (m Modifiers) Validate() error {
	if m.Stage < -6 || m.Stage > 6 {
		return fmt.Errorf("stage %d: %w", m.Stage, ErrInvalidStage)
	}
	return nil
}

func (m Modifiers) String() string {
	var out string
	add := func(s string) {
		if out != "" {
			out += ", "
		}
		out += s
	}
	if m.Tailwind {
		add("tailwind")
	}
	if m.Paralyzed {
		add("paralysis")
	}
	if m.Booster {
		add("booster")
	}
	if m.Scarf {
		add("scarf")
	}
	if m.Stage != 0 {
		add(fmt.Sprintf("%+d", m.Stage))
	}
	if out == "" {
		return "none"
	}
	return out
}

// Stat is the level-50 Speed stat for the given investment.
func Stat(base, iv, ev int, n stats.Nature) int {
	return stats.CalculateStat(base, iv, ev, stats.Level, n.Modifier(stats.Speed))
}

// FindMinSpeedEVs returns the smallest breakpoint whose Speed, after own
// modifiers, is strictly greater than target. ok is false when 252 EVs
// are not enough.
func FindMinSpeedEVs(base, iv int, n stats.Nature, own Modifiers, target int) (ev int, ok bool) {
	for _, bp := range stats.Breakpoints {
		if own.Effective(Stat(base, iv, bp, n)) > target {
			return bp, true
		}
	}
	return 0, false
}

// FindMaxSpeedEVsBelow returns the largest breakpoint whose Speed, after
// own modifiers, stays strictly below target. When even 0 EVs are too
// fast at the given IV it retries with 0 IV, reported through outIV.
func FindMaxSpeedEVsBelow(base, iv int, n stats.Nature, own Modifiers, target int) (ev, outIV int, ok bool) {
	for i := len(stats.Breakpoints) - 1; i >= 0; i-- {
		bp := stats.Breakpoints[i]
		if own.Effective(Stat(base, iv, bp, n)) < target {
			return bp, iv, true
		}
	}
	if iv != 0 && own.Effective(Stat(base, 0, 0, n)) < target {
		return 0, 0, true
	}
	return 0, iv, false
}
