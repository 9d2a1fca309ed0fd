package optimizer

import (
	"context"
	"sort"

	"github.com/udisondev/vgcspread/internal/damage"
	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
	"github.com/udisondev/vgcspread/internal/survival"
)

// search is the per-nature state: the defender with the nature applied,
// the threats split by the defense they hit, and the damage cache.
type search struct {
	p        *problem
	nature   stats.Nature
	defender model.PokemonBuild
	cache    *damageCache
	physical []int
	special  []int
}

func (p *problem) newSearch(n stats.Nature, speedIV int) *search {
	d := p.defender.WithNature(n)
	d.IVs.Speed = speedIV

	s := &search{p: p, nature: n, defender: d, cache: newDamageCache()}
	for i, t := range p.threats {
		if t.Physical() {
			s.physical = append(s.physical, i)
		} else {
			s.special = append(s.special, i)
		}
	}
	return s
}

// result returns the damage of threat i against the given bulk. A
// physical hit ignores Sp. Def EVs and a special hit ignores Def EVs, so
// the unused stat is zeroed in the key to share entries.
func (s *search) result(i, hp, def, spd int) damage.Result {
	if s.p.threats[i].Physical() {
		spd = 0
	} else {
		def = 0
	}
	key := cacheKey{threat: i, hp: hp, def: def, spd: spd, nature: s.nature, tera: s.p.tera}
	return s.cache.get(key, func() damage.Result {
		t := s.p.threats[i]
		d := s.defender.WithEVs(stats.Spread{HP: hp, Defense: def, SpecialDefense: spd})
		return damage.Calculate(t.Attacker, d, t.Move, t.Mods)
	})
}

func (s *search) survives(i, hp, def, spd int) bool {
	return survival.Survives(s.result(i, hp, def, spd), s.p.threshold)
}

// survivesWith places v into the defense stat threat i hits.
func (s *search) survivesWith(i, hp, v int) bool {
	if s.p.threats[i].Physical() {
		return s.survives(i, hp, v, 0)
	}
	return s.survives(i, hp, 0, v)
}

// minStatScan finds the smallest breakpoint of the relevant defense that
// lets threat i be survived at hp. -1 when even 252 is not enough.
func (s *search) minStatScan(i, hp int) int {
	for _, v := range stats.Breakpoints {
		if s.survivesWith(i, hp, v) {
			return v
		}
	}
	return -1
}

// minStatBinary is minStatScan by bisection. Survival is monotone in the
// defense stat, so both agree.
func (s *search) minStatBinary(i, hp int) int {
	bps := stats.Breakpoints
	k := sort.Search(len(bps), func(k int) bool { return s.survivesWith(i, hp, bps[k]) })
	if k == len(bps) {
		return -1
	}
	return bps[k]
}

// requirement is the Defense needed by the hardest physical threat and
// the Sp. Def needed by the hardest special threat at hp.
func (s *search) requirement(hp int, find func(i, hp int) int) (def, spd int, ok bool) {
	for _, i := range s.physical {
		v := find(i, hp)
		if v < 0 {
			return 0, 0, false
		}
		def = max(def, v)
	}
	for _, i := range s.special {
		v := find(i, hp)
		if v < 0 {
			return 0, 0, false
		}
		spd = max(spd, v)
	}
	return def, spd, true
}

func (s *search) verify(hp, def, spd int) bool {
	for i := range s.p.threats {
		if !s.survives(i, hp, def, spd) {
			return false
		}
	}
	return true
}

// feasibilitySamples are the HP investments probed before a full search,
// rounded down to breakpoints.
var feasibilitySamples = []int{0, 60, 120, 180, 252}

// feasible is a cheap pre-filter for multi-threat runs. The Def / SpD
// requirement never rises with HP, so for two neighbouring samples a < b
// any spread with HP in [a, b] costs at least a + req(b). A nature is
// dropped only when that lower bound exceeds the budget on every interval,
// which never discards a nature the full search would accept.
func (s *search) feasible(budget int) bool {
	hps := make([]int, len(feasibilitySamples))
	for k, sample := range feasibilitySamples {
		hps[k] = stats.NormalizeEVs(sample)
	}
	for k, lo := range hps {
		if lo > budget {
			break
		}
		hi := lo
		if k+1 < len(hps) {
			hi = hps[k+1]
		}
		def, spd, ok := s.requirement(hi, s.minStatBinary)
		if ok && lo+def+spd <= budget {
			return true
		}
	}
	return false
}

// hpFirst scans HP breakpoints ascending and returns the cheapest bulk
// spread surviving every threat. Ties keep the lower HP. On context
// cancellation it returns the best spread found so far.
func (s *search) hpFirst(ctx context.Context, budget int) (best stats.Spread, found, interrupted bool) {
	mixed := len(s.physical) > 0 && len(s.special) > 0
	bestTotal := 0

	for _, hp := range stats.Breakpoints {
		if ctx.Err() != nil {
			return best, found, true
		}
		if hp > budget || (found && hp >= bestTotal) {
			break
		}

		var def, spd int
		var ok bool
		if mixed {
			def, spd, ok = s.requirement(hp, s.minStatScan)
			ok = ok && hp+def+spd <= budget && s.verify(hp, def, spd)
		} else {
			def, spd, ok = s.uniformScan(hp, budget-hp)
		}
		if !ok {
			continue
		}

		if total := hp + def + spd; !found || total < bestTotal {
			best = stats.Spread{HP: hp, Defense: def, SpecialDefense: spd}
			bestTotal = total
			found = true
		}
	}
	return best, found, false
}

// uniformScan handles threat sets hitting a single defense: it raises
// that stat until every threat is survived, stopping at the first hit.
func (s *search) uniformScan(hp, remaining int) (def, spd int, ok bool) {
	physical := len(s.special) == 0
	for _, v := range stats.Breakpoints {
		if v > remaining {
			break
		}
		if physical {
			def, spd = v, 0
		} else {
			def, spd = 0, v
		}
		if s.verify(hp, def, spd) {
			return def, spd, true
		}
	}
	return 0, 0, false
}
