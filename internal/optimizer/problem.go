package optimizer

import (
	"context"
	"fmt"

	"github.com/udisondev/vgcspread/internal/damage"
	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/speed"
	"github.com/udisondev/vgcspread/internal/stats"
	"github.com/udisondev/vgcspread/internal/survival"
)

// problem is a validated request with every name resolved.
type problem struct {
	mode      Mode
	defender  model.PokemonBuild
	threats   []Threat
	threshold float64
	tera      model.Type
	speed     *SpeedGoal
	speedEVs  *int
	reserved  stats.Spread
}

func (o *Optimizer) prepare(ctx context.Context, req Request, mode Mode) (*problem, error) {
	threshold := req.Threshold
	if threshold == 0 {
		threshold = o.defaultThreshold(mode)
	}
	if err := survival.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	reserved := stats.Spread{
		Attack:        stats.NormalizeEVs(req.Reserved.Attack),
		SpecialAttack: stats.NormalizeEVs(req.Reserved.SpecialAttack),
	}
	if err := req.Reserved.ValidateEVs(); err != nil {
		return nil, fmt.Errorf("reserved EVs: %w", err)
	}
	if req.SpeedEVs != nil {
		if *req.SpeedEVs < 0 || *req.SpeedEVs > stats.MaxEV {
			return nil, fmt.Errorf("speed EVs %d: %w", *req.SpeedEVs, stats.ErrEVOutOfRange)
		}
		if t := *req.SpeedEVs + reserved.Total(); t > stats.MaxTotalEV {
			return nil, fmt.Errorf("speed and reserved EVs %d: %w", t, stats.ErrEVTotalExceeded)
		}
	}

	def, err := dex.Build(ctx, o.dex, req.Species)
	if err != nil {
		return nil, fmt.Errorf("resolving defender %q: %w", req.Species, err)
	}
	if req.Ability != model.AbilityNone {
		def.Ability = req.Ability
	}
	def.Item = req.Item
	def.TeraType = req.Tera

	threats := make([]Threat, 0, len(req.Threats))
	for _, spec := range req.Threats {
		t, err := o.prepareThreat(ctx, spec)
		if err != nil {
			return nil, err
		}
		if req.Tera != model.TypeNone {
			t.Mods.DefenderTera = req.Tera
			t.Mods.DefenderTeraActive = true
		}
		threats = append(threats, t)
	}

	return &problem{
		mode:      mode,
		defender:  def,
		threats:   threats,
		threshold: threshold,
		tera:      req.Tera,
		speed:     req.Speed,
		speedEVs:  req.SpeedEVs,
		reserved:  reserved,
	}, nil
}

type outcomeStatus uint8

const (
	statusFound outcomeStatus = iota
	statusSpeedUnreachable
	statusNoBudget
	statusInfeasible
	statusSkipped
)

func (s outcomeStatus) String() string {
	switch s {
	case statusFound:
		return "found"
	case statusSpeedUnreachable:
		return "speed unreachable"
	case statusNoBudget:
		return "no budget"
	case statusInfeasible:
		return "infeasible"
	}
	return "skipped"
}

// outcome is what one nature candidate produced.
type outcome struct {
	nature      stats.Nature
	status      outcomeStatus
	speedEVs    int
	speedIV     int
	bulk        stats.Spread // HP / Def / SpD only
	total       int
	cacheSize   int
	interrupted bool
}

// speedFor resolves the Speed EVs and IV a nature needs.
func (p *problem) speedFor(n stats.Nature) (ev, iv int, ok bool) {
	base := p.defender.Base.Speed
	iv = p.defender.IVs.Speed
	switch {
	case p.speedEVs != nil:
		return stats.NormalizeEVs(*p.speedEVs), iv, true
	case p.speed == nil:
		return 0, iv, true
	case p.speed.Underspeed:
		goal := p.speed.Goal()
		if p.speed.Own.Effective(speed.Stat(base, iv, 0, n)) < goal {
			return 0, iv, true
		}
		if p.speed.Own.Effective(speed.Stat(base, 0, 0, n)) < goal {
			return 0, 0, true
		}
		return 0, iv, false
	}
	ev, ok = speed.FindMinSpeedEVs(base, iv, n, p.speed.Own, p.speed.Goal())
	return ev, iv, ok
}

func (p *problem) budget(speedEVs int) int {
	return stats.MaxTotalEV - speedEVs - p.reserved.Total()
}

// evaluate runs ComputeSpeed, FeasibilityCheck and HPFirstSearch for one
// nature.
func (p *problem) evaluate(ctx context.Context, n stats.Nature) (oc outcome) {
	oc.nature = n

	speedEVs, speedIV, ok := p.speedFor(n)
	if !ok {
		oc.status = statusSpeedUnreachable
		return oc
	}
	oc.speedEVs, oc.speedIV = speedEVs, speedIV

	budget := p.budget(speedEVs)
	if budget < 0 {
		oc.status = statusNoBudget
		return oc
	}

	s := p.newSearch(n, speedIV)
	defer func() { oc.cacheSize = s.cache.size() }()

	if p.mode == ModeMulti && !s.feasible(budget) {
		oc.status = statusInfeasible
		return oc
	}

	bulk, found, interrupted := s.hpFirst(ctx, budget)
	oc.interrupted = interrupted
	if !found {
		oc.status = statusInfeasible
		return oc
	}
	oc.status = statusFound
	oc.bulk = bulk
	oc.total = bulk.Total() + speedEVs + p.reserved.Total()
	return oc
}

// spread assembles the full EV spread of an outcome.
func (p *problem) spread(bulk stats.Spread, speedEVs int) stats.Spread {
	return stats.Spread{
		HP:             bulk.HP,
		Attack:         p.reserved.Attack,
		Defense:        bulk.Defense,
		SpecialAttack:  p.reserved.SpecialAttack,
		SpecialDefense: bulk.SpecialDefense,
		Speed:          speedEVs,
	}
}

// candidate evaluates a full spread against every threat.
func (p *problem) candidate(n stats.Nature, evs stats.Spread, speedIV int) Candidate {
	b := p.defender.WithNature(n).WithEVs(evs)
	b.IVs.Speed = speedIV

	c := Candidate{
		Nature:  n,
		EVs:     evs,
		SpeedIV: speedIV,
		Total:   evs.Total(),
		Stats:   b.Stats(),
		Threats: make([]survival.Verdict, 0, len(p.threats)),
		Margin:  100,
	}
	for _, t := range p.threats {
		res := damage.Calculate(t.Attacker, b, t.Move, t.Mods)
		v := survival.Evaluate(res, p.threshold)
		v.Threat = t.Name
		c.Threats = append(c.Threats, v)
		c.Margin = min(c.Margin, v.Margin)
	}
	return c
}
