// Package optimizer searches the smallest EV spread that lets a Pokemon
// survive a set of threats, optionally while hitting a Speed benchmark.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/speed"
	"github.com/udisondev/vgcspread/internal/stats"
	"github.com/udisondev/vgcspread/internal/survival"
	"github.com/udisondev/vgcspread/internal/usage"
)

var (
	ErrThreatCount = errors.New("wrong number of threats")
	ErrNoThreats   = errors.New("no threats given")
)

// Threat count limits of the multi-threat mode.
const (
	MinMultiThreats = 3
	MaxMultiThreats = 6
)

// Options tune an Optimizer.
type Options struct {
	// Parallel evaluates nature candidates concurrently. The winner is
	// the same as in a sequential run.
	Parallel   bool
	MaxWorkers int
	// Default survival thresholds per mode, in percent.
	SingleThreshold float64
	DualThreshold   float64
	MultiThreshold  float64
	// ThreatEVs is the offensive investment assumed for a threat without
	// usage data or explicit EVs.
	ThreatEVs int
	Logger    *slog.Logger
}

// DefaultOptions returns parallel evaluation with the standard thresholds.
func DefaultOptions() Options {
	return Options{
		Parallel:        true,
		MaxWorkers:      runtime.GOMAXPROCS(0),
		SingleThreshold: survival.Guaranteed,
		DualThreshold:   survival.Guaranteed,
		MultiThreshold:  survival.Standard,
		ThreatEVs:       DefaultThreatEVs,
	}
}

// SpeedGoal is a Speed benchmark: strictly outspeed (or, with Underspeed,
// stay strictly below) Target after TargetMods.
type SpeedGoal struct {
	Label      string          `yaml:"label" json:"label,omitempty"`
	Target     int             `yaml:"target" json:"target"`
	TargetMods speed.Modifiers `yaml:"target_modifiers" json:"target_modifiers"`
	Own        speed.Modifiers `yaml:"own_modifiers" json:"own_modifiers"`
	Underspeed bool            `yaml:"underspeed" json:"underspeed,omitempty"`
}

// Goal is the effective speed to beat.
func (g SpeedGoal) Goal() int {
	return g.TargetMods.Effective(g.Target)
}

// Request describes the defender and what it must survive.
type Request struct {
	Species string        `yaml:"species" json:"species"`
	Nature  stats.Nature  `yaml:"nature" json:"nature,omitempty"`
	Ability model.Ability `yaml:"ability" json:"ability,omitempty"`
	Item    model.Item    `yaml:"item" json:"item,omitempty"`
	// Tera is the defender's Tera type; set means terastallized.
	Tera    model.Type   `yaml:"tera" json:"tera,omitempty"`
	Threats []ThreatSpec `yaml:"threats" json:"threats"`
	// Threshold in percent; 0 takes the mode default.
	Threshold float64    `yaml:"threshold" json:"threshold,omitempty"`
	Speed     *SpeedGoal `yaml:"speed" json:"speed,omitempty"`
	// SpeedEVs pins the Speed investment instead of searching it.
	SpeedEVs *int `yaml:"speed_evs" json:"speed_evs,omitempty"`
	// Reserved keeps Attack / Sp. Atk EVs out of the bulk budget.
	Reserved stats.Spread `yaml:"reserved" json:"reserved"`
}

// Optimizer runs spread searches. Safe for concurrent use: every call
// builds its own damage caches.
type Optimizer struct {
	dex   dex.Source
	usage usage.Provider
	opts  Options
	log   *slog.Logger
}

// New wires an optimizer to its data collaborators. A nil provider
// means no usage data.
func New(src dex.Source, provider usage.Provider, opts Options) *Optimizer {
	if provider == nil {
		provider = usage.Nop{}
	}
	def := DefaultOptions()
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = def.MaxWorkers
	}
	if opts.SingleThreshold == 0 {
		opts.SingleThreshold = def.SingleThreshold
	}
	if opts.DualThreshold == 0 {
		opts.DualThreshold = def.DualThreshold
	}
	if opts.MultiThreshold == 0 {
		opts.MultiThreshold = def.MultiThreshold
	}
	if opts.ThreatEVs <= 0 {
		opts.ThreatEVs = def.ThreatEVs
	}
	opts.ThreatEVs = stats.NormalizeEVs(min(opts.ThreatEVs, stats.MaxEV))
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Optimizer{dex: src, usage: provider, opts: opts, log: log}
}

// OptimizeSingle survives one threat (default threshold 100%).
func (o *Optimizer) OptimizeSingle(ctx context.Context, req Request) (Result, error) {
	if len(req.Threats) != 1 {
		return Result{}, fmt.Errorf("single survival needs 1 threat, got %d: %w", len(req.Threats), ErrThreatCount)
	}
	return o.run(ctx, req, ModeSingle)
}

// OptimizeDual survives two threats (default threshold 100%).
func (o *Optimizer) OptimizeDual(ctx context.Context, req Request) (Result, error) {
	if len(req.Threats) != 2 {
		return Result{}, fmt.Errorf("dual survival needs 2 threats, got %d: %w", len(req.Threats), ErrThreatCount)
	}
	return o.run(ctx, req, ModeDual)
}

// OptimizeMulti survives 3 to 6 threats (default threshold 93.75%).
func (o *Optimizer) OptimizeMulti(ctx context.Context, req Request) (Result, error) {
	if n := len(req.Threats); n < MinMultiThreats || n > MaxMultiThreats {
		return Result{}, fmt.Errorf("multi survival needs %d..%d threats, got %d: %w", MinMultiThreats, MaxMultiThreats, n, ErrThreatCount)
	}
	return o.run(ctx, req, ModeMulti)
}

// Optimize picks the mode from the number of threats.
func (o *Optimizer) Optimize(ctx context.Context, req Request) (Result, error) {
	switch n := len(req.Threats); {
	case n == 0:
		return Result{}, ErrNoThreats
	case n == 1:
		return o.OptimizeSingle(ctx, req)
	case n == 2:
		return o.OptimizeDual(ctx, req)
	default:
		return o.OptimizeMulti(ctx, req)
	}
}

func (o *Optimizer) defaultThreshold(mode Mode) float64 {
	switch mode {
	case ModeSingle:
		return o.opts.SingleThreshold
	case ModeDual:
		return o.opts.DualThreshold
	}
	return o.opts.MultiThreshold
}

func (o *Optimizer) run(ctx context.Context, req Request, mode Mode) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := o.log.With("run_id", runID, "mode", mode.String(), "species", req.Species)

	p, err := o.prepare(ctx, req, mode)
	if err != nil {
		return Result{}, err
	}

	natures := NatureCandidates(p.defender.Base, req.Nature)
	outcomes, err := o.evaluateAll(ctx, p, natures, log)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		RunID:              runID,
		Mode:               mode,
		Threshold:          p.threshold,
		NatureAutoSelected: !req.Nature.Valid(),
	}
	res.Stats.Threats = len(p.threats)
	res.Stats.NaturesTried = len(outcomes)
	for _, oc := range outcomes {
		res.Stats.CacheSize += oc.cacheSize
		if oc.interrupted {
			res.Interrupted = true
		}
	}

	feasible := rankOutcomes(outcomes)
	res.Stats.NaturesFeasible = len(feasible)
	if len(feasible) > 0 {
		o.selectBest(p, feasible, &res)
	} else {
		if res.Interrupted && ctx.Err() != nil {
			return Result{}, fmt.Errorf("search interrupted before any spread was found: %w", ctx.Err())
		}
		o.impossible(p, outcomes, &res)
	}

	res.Stats.Elapsed = time.Since(start)
	log.Info("spread search finished",
		"verdict", res.Verdict.String(),
		"nature", res.Best.Nature.String(),
		"evs", res.Best.EVs.String(),
		"natures_feasible", res.Stats.NaturesFeasible,
		"cache_size", res.Stats.CacheSize,
		"elapsed", res.Stats.Elapsed)
	return res, nil
}

// evaluateAll runs every nature candidate. Results keep candidate order,
// so parallel and sequential runs pick the same winner.
func (o *Optimizer) evaluateAll(ctx context.Context, p *problem, natures []stats.Nature, log *slog.Logger) ([]outcome, error) {
	outcomes := make([]outcome, len(natures))
	eval := func(i int) {
		outcomes[i] = p.evaluate(ctx, natures[i])
		oc := outcomes[i]
		log.Debug("nature evaluated",
			"nature", oc.nature.String(),
			"status", oc.status.String(),
			"speed_evs", oc.speedEVs,
			"total", oc.total,
			"cache_size", oc.cacheSize)
	}

	if !o.opts.Parallel || len(natures) == 1 {
		for i := range natures {
			eval(i)
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.MaxWorkers)
	for i := range natures {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i] = outcome{nature: natures[i], status: statusSkipped, interrupted: true}
				return nil
			}
			eval(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
