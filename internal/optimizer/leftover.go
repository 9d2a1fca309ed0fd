package optimizer

import "github.com/udisondev/vgcspread/internal/stats"

// fill spends the EVs a minimal spread leaves unused. Speed creep comes
// first when there is an outspeed benchmark. Then HP and the defense the
// threats mostly hit are raised one breakpoint at a time, always feeding
// HP unless it already exceeds that defense. The rest goes into the
// other defense.
//
// The HP-vs-defense rule is a heuristic for effective bulk, not a proven
// optimum.
func (p *problem) fill(c Candidate) Candidate {
	evs := c.EVs
	left := stats.MaxTotalEV - evs.Total()
	if left <= 0 {
		return c
	}

	if p.speed != nil && !p.speed.Underspeed && p.speedEVs == nil && evs.Speed < stats.MaxEV {
		creep := stats.NormalizeEVs(evs.Speed+min(stats.MaxEV-evs.Speed, left)) - evs.Speed
		evs.Speed += creep
		left -= creep
	}

	target, other := stats.Defense, stats.SpecialDefense
	if !p.mostlyPhysical() {
		target, other = stats.SpecialDefense, stats.Defense
	}

	b := p.defender.WithNature(c.Nature)
	value := func(s stats.Stat) int {
		return stats.Value(s, b.Base.Get(s), b.IVs.Get(s), evs.Get(s), c.Nature)
	}
	step := func(s stats.Stat) (int, bool) {
		next, ok := stats.NextBreakpoint(evs.Get(s))
		return next - evs.Get(s), ok && next-evs.Get(s) <= left
	}

loop:
	for left > 0 {
		hpCost, hpOK := step(stats.HP)
		defCost, defOK := step(target)
		switch {
		case value(stats.HP) > value(target) && defOK:
			evs = evs.With(target, evs.Get(target)+defCost)
			left -= defCost
		case hpOK:
			evs.HP += hpCost
			left -= hpCost
		case defOK:
			evs = evs.With(target, evs.Get(target)+defCost)
			left -= defCost
		default:
			break loop
		}
	}
	if left > 0 {
		evs = evs.With(other, stats.NormalizeEVs(min(stats.MaxEV, evs.Get(other)+left)))
	}
	return p.candidate(c.Nature, evs, c.SpeedIV)
}

func (p *problem) mostlyPhysical() bool {
	phys := 0
	for _, t := range p.threats {
		if t.Physical() {
			phys++
		}
	}
	return phys*2 >= len(p.threats)
}
