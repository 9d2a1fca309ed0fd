package optimizer

import (
	"fmt"
	"sort"
)

// maxAlternatives is how many runner-up natures are reported.
const maxAlternatives = 3

// rankOutcomes keeps the natures that found a spread and orders them by
// (speed EVs, total EVs). The sort is stable, so equal natures keep the
// candidate priority order.
func rankOutcomes(outcomes []outcome) []outcome {
	feasible := make([]outcome, 0, len(outcomes))
	for _, oc := range outcomes {
		if oc.status == statusFound {
			feasible = append(feasible, oc)
		}
	}
	sort.SliceStable(feasible, func(i, j int) bool {
		if feasible[i].speedEVs != feasible[j].speedEVs {
			return feasible[i].speedEVs < feasible[j].speedEVs
		}
		return feasible[i].total < feasible[j].total
	})
	return feasible
}

func (o *Optimizer) selectBest(p *problem, feasible []outcome, res *Result) {
	win := feasible[0]
	res.Verdict = Feasible
	res.Best = p.candidate(win.nature, p.spread(win.bulk, win.speedEVs), win.speedIV)

	if filled := p.fill(res.Best); filled.Total > res.Best.Total {
		res.Filled = &filled
	}

	end := min(len(feasible), 1+maxAlternatives)
	for _, alt := range feasible[1:end] {
		res.Alternatives = append(res.Alternatives, Alternative{
			Candidate:   p.candidate(alt.nature, p.spread(alt.bulk, alt.speedEVs), alt.speedIV),
			Explanation: explainNature(win, alt),
		})
	}
}

// explainNature says why alt lost to opt.
func explainNature(opt, alt outcome) string {
	evDiff := alt.total - opt.total
	speedDiff := alt.speedEVs - opt.speedEVs
	tail := fmt.Sprintf("Uses %d more EVs total than %s (%s).", evDiff, opt.nature, opt.nature.BoostLabel())

	switch {
	case speedDiff > 0:
		return fmt.Sprintf("%s's %s nature requires %d more Speed EVs to hit the same speed tier. %s",
			alt.nature, alt.nature.BoostLabel(), speedDiff, tail)
	case speedDiff < 0:
		return fmt.Sprintf("%s's %s nature saves %d Speed EVs but requires %d more EVs in bulk stats. %s",
			alt.nature, alt.nature.BoostLabel(), -speedDiff, evDiff-speedDiff, tail)
	}
	return fmt.Sprintf("%s's %s nature hits the same speed tier but distributes bulk EVs differently. %s",
		alt.nature, alt.nature.BoostLabel(), tail)
}
