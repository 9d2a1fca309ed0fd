package optimizer

import (
	"fmt"
	"time"

	"github.com/udisondev/vgcspread/internal/stats"
	"github.com/udisondev/vgcspread/internal/survival"
)

// Mode is the optimisation flavour, fixed by the number of threats.
type Mode uint8

const (
	ModeSingle Mode = iota + 1
	ModeDual
	ModeMulti
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeDual:
		return "dual"
	case ModeMulti:
		return "multi"
	}
	return fmt.Sprintf("Mode(%d)", m)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Verdict of a run. Infeasible is a normal outcome, not an error.
type Verdict uint8

const (
	Feasible Verdict = iota
	Infeasible
)

func (v Verdict) String() string {
	if v == Infeasible {
		return "infeasible"
	}
	return "feasible"
}

func (v Verdict) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Candidate is one full spread with its per-threat outcome.
type Candidate struct {
	Nature  stats.Nature       `json:"nature"`
	EVs     stats.Spread       `json:"evs"`
	SpeedIV int                `json:"speed_iv"`
	Total   int                `json:"total_evs"`
	Stats   stats.Final        `json:"final_stats"`
	Threats []survival.Verdict `json:"threats"`
	// Margin is the worst 100 - max% over all threats.
	Margin float64 `json:"margin"`
}

// Remaining is the unspent part of the 508 budget.
func (c Candidate) Remaining() int {
	return stats.MaxTotalEV - c.Total
}

// Alternative is a runner-up nature with the reason it lost.
type Alternative struct {
	Candidate
	Explanation string `json:"explanation"`
}

// SearchStats describes the work done by one run.
type SearchStats struct {
	Threats         int           `json:"threats"`
	NaturesTried    int           `json:"natures_tried"`
	NaturesFeasible int           `json:"natures_feasible"`
	CacheSize       int           `json:"cache_size"`
	Elapsed         time.Duration `json:"elapsed"`
}

// Result is the answer of one optimisation call.
type Result struct {
	RunID     string  `json:"run_id"`
	Mode      Mode    `json:"mode"`
	Verdict   Verdict `json:"verdict"`
	Threshold float64 `json:"threshold"`
	// Best is the minimal spread, or the closest miss when infeasible.
	Best Candidate `json:"best"`
	// Filled spends the leftover EVs on top of Best.
	Filled             *Candidate    `json:"filled,omitempty"`
	Alternatives       []Alternative `json:"alternatives,omitempty"`
	NatureAutoSelected bool          `json:"nature_auto_selected"`
	Reason             string        `json:"reason,omitempty"`
	Suggestions        []string      `json:"suggestions,omitempty"`
	// Interrupted is set when the context ended the search early; Best
	// is then the best spread found so far.
	Interrupted bool        `json:"interrupted,omitempty"`
	Stats       SearchStats `json:"stats"`
}
