// Package survival turns a damage range into a survival verdict.
package survival

import (
	"errors"
	"fmt"

	"github.com/udisondev/vgcspread/internal/damage"
)

// Thresholds in percent of the 16 rolls.
const (
	// Guaranteed survives every roll.
	Guaranteed = 100.0
	// Standard accepts the single highest roll, 15 of 16.
	Standard = 93.75

	perRoll = 100.0 / damage.RollCount
)

var ErrInvalidThreshold = errors.New("survival threshold must be in (0, 100]")

// ValidateThreshold accepts any value in (0, 100]. Values between the
// 6.25 steps are allowed and behave like the next step up.
func ValidateThreshold(t float64) error {
	if t <= 0 || t > 100 {
		return fmt.Errorf("%.2f: %w", t, ErrInvalidThreshold)
	}
	return nil
}

// Percentage is the share of rolls that leave the defender standing:
// count(roll < hp) * 6.25.
func Percentage(rolls [damage.RollCount]int, hp int) float64 {
	n := 0
	for _, r := range rolls {
		if r < hp {
			n++
		}
	}
	return float64(n) * perRoll
}

// Survives reports whether res clears threshold t.
func Survives(res damage.Result, t float64) bool {
	return Percentage(res.Rolls, res.DefenderHP) >= t
}

// Verdict is the survival outcome of one threat.
type Verdict struct {
	Threat     string  `json:"threat,omitempty"`
	Survival   float64 `json:"survival"`
	Threshold  float64 `json:"threshold"`
	Survives   bool    `json:"survives"`
	MinPercent float64 `json:"min_percent"`
	MaxPercent float64 `json:"max_percent"`
	// Margin is 100 - MaxPercent; negative when the top roll KOs.
	Margin float64 `json:"margin"`
}

// Evaluate builds the verdict of res against threshold t.
func Evaluate(res damage.Result, t float64) Verdict {
	pct := Percentage(res.Rolls, res.DefenderHP)
	return Verdict{
		Survival:   pct,
		Threshold:  t,
		Survives:   pct >= t,
		MinPercent: res.MinPercent,
		MaxPercent: res.MaxPercent,
		Margin:     100 - res.MaxPercent,
	}
}

func (v Verdict) String() string {
	status := "survives"
	if !v.Survives {
		status = "falls"
	}
	return fmt.Sprintf("%s %.1f-%.1f%%, %.2f%% survival (%s at %.2f%%)",
		v.Threat, v.MinPercent, v.MaxPercent, v.Survival, status, v.Threshold)
}
