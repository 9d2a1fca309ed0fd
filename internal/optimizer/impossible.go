package optimizer

import (
	"fmt"

	"github.com/udisondev/vgcspread/internal/stats"
)

// coarseGrid is the HP x secondary-defense sample grid of the
// closest-miss search.
var coarseGrid = []int{0, 52, 100, 148, 196, 252}

// impossible fills res with the closest miss. Every candidate nature
// samples HP and the defense the threats hit less from the coarse grid,
// pours the rest of its budget into the defense they hit most, and the
// spread with the largest worst-case margin wins. Ties keep the earlier
// nature.
func (o *Optimizer) impossible(p *problem, outcomes []outcome, res *Result) {
	primary, secondary := stats.Defense, stats.SpecialDefense
	if !p.mostlyPhysical() {
		primary, secondary = stats.SpecialDefense, stats.Defense
	}

	var best Candidate
	found := false
	for _, oc := range outcomes {
		speedEVs, speedIV := oc.speedEVs, oc.speedIV
		if oc.status == statusSpeedUnreachable || oc.status == statusSkipped {
			speedEVs, speedIV = 0, p.defender.IVs.Speed
		}
		budget := max(0, p.budget(speedEVs))

		for _, hp := range coarseGrid {
			for _, side := range coarseGrid {
				if hp+side > budget {
					continue
				}
				bulk := stats.Spread{HP: hp}.
					With(secondary, side).
					With(primary, stats.NormalizeEVs(min(stats.MaxEV, budget-hp-side)))
				c := p.candidate(oc.nature, p.spread(bulk, speedEVs), speedIV)
				if !found || c.Margin > best.Margin {
					best, found = c, true
				}
			}
		}
	}

	res.Verdict = Infeasible
	res.Best = best
	res.Reason, res.Suggestions = p.explainFailure(outcomes, best)
}

func (p *problem) explainFailure(outcomes []outcome, best Candidate) (string, []string) {
	speedBlocked := 0
	for _, oc := range outcomes {
		if oc.status == statusSpeedUnreachable || oc.status == statusNoBudget {
			speedBlocked++
		}
	}

	reason := fmt.Sprintf("no EV spread survives every threat at %g%%", p.threshold)
	if speedBlocked == len(outcomes) {
		reason = "the speed benchmark is out of reach for every candidate nature"
	}

	var suggestions []string
	if len(p.threats) > 1 {
		hardest := best.Threats[0]
		for _, v := range best.Threats[1:] {
			if v.Margin < hardest.Margin {
				hardest = v
			}
		}
		suggestions = append(suggestions,
			fmt.Sprintf("Consider dropping one threat to make survival possible (hardest: %s)", hardest.Threat))
	}
	suggestions = append(suggestions,
		"Try a different Tera type to improve type matchups",
		fmt.Sprintf("Reduce target survival rate (currently %g%%)", p.threshold))
	if speedBlocked > 0 && p.speed != nil {
		label := p.speed.Label
		if label == "" {
			label = "the target"
		}
		suggestions = append(suggestions,
			fmt.Sprintf("Relax the speed benchmark: %s at %d effective Speed is out of reach for some natures", label, p.speed.Goal()))
	}
	return reason, suggestions
}
