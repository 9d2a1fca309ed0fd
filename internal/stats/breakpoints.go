package stats

// Breakpoints are the EV values that change a stat at level 50 with an odd
// IV: 0, then 4, then every 8 up to 252. Any other EV count wastes points.
// That is 33 entries: the uninvested 0 plus 32 investment points, which is
// what "the 32 breakpoints" usually counts.
var Breakpoints = buildBreakpoints()

func buildBreakpoints() []int {
	bp := []int{0}
	for ev := 4; ev <= MaxEV; ev += 8 {
		bp = append(bp, ev)
	}
	return bp
}

// IsBreakpoint reports whether ev is a member of Breakpoints.
func IsBreakpoint(ev int) bool {
	if ev == 0 {
		return true
	}
	return ev >= 4 && ev <= MaxEV && (ev-4)%8 == 0
}

// NormalizeEVs rounds ev down to the nearest breakpoint, clamped to 0..252.
func NormalizeEVs(ev int) int {
	if ev < 4 {
		return 0
	}
	if ev > MaxEV {
		ev = MaxEV
	}
	return (ev-4)/8*8 + 4
}

// NextBreakpoint returns the smallest breakpoint above ev, or false at 252.
func NextBreakpoint(ev int) (int, bool) {
	for _, bp := range Breakpoints {
		if bp > ev {
			return bp, true
		}
	}
	return MaxEV, false
}

// FindMinEVsForStat returns the first breakpoint whose stat reaches target.
// The bool is false when even 252 EVs fall short.
func FindMinEVsForStat(base, iv, target, level int, mod Modifier) (int, bool) {
	for _, ev := range Breakpoints {
		if CalculateStat(base, iv, ev, level, mod) >= target {
			return ev, true
		}
	}
	return MaxEV, false
}

// FindMinEVsForHP is FindMinEVsForStat for the HP formula.
func FindMinEVsForHP(base, iv, target, level int) (int, bool) {
	for _, ev := range Breakpoints {
		if CalculateHP(base, iv, ev, level) >= target {
			return ev, true
		}
	}
	return MaxEV, false
}

// OptimizeEVEfficiency strips wasted EVs: it returns the smallest
// breakpoint producing the same stat as ev does.
func OptimizeEVEfficiency(base, iv, ev, level int, mod Modifier) int {
	target := CalculateStat(base, iv, ev, level, mod)
	min, _ := FindMinEVsForStat(base, iv, target, level, mod)
	return min
}

// OptimizeHPEfficiency is OptimizeEVEfficiency for HP.
func OptimizeHPEfficiency(base, iv, ev, level int) int {
	target := CalculateHP(base, iv, ev, level)
	min, _ := FindMinEVsForHP(base, iv, target, level)
	return min
}

// OptimizeSpread applies OptimizeEVEfficiency to every stat of evs.
func OptimizeSpread(base BaseStats, ivs, evs Spread, n Nature) Spread {
	out := Spread{HP: OptimizeHPEfficiency(base.HP, ivs.HP, evs.HP, Level)}
	for s := Attack; s <= Speed; s++ {
		out = out.With(s, OptimizeEVEfficiency(base.Get(s), ivs.Get(s), evs.Get(s), Level, n.Modifier(s)))
	}
	return out
}
