package calc

import (
	"context"
	"fmt"

	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/optimizer"
	"github.com/udisondev/vgcspread/internal/speed"
	"github.com/udisondev/vgcspread/internal/stats"
)

// SpeedSide is one Pokemon of a speed comparison.
type SpeedSide struct {
	Pokemon Pokemon         `yaml:"pokemon" json:"pokemon"`
	Mods    speed.Modifiers `yaml:"modifiers" json:"modifiers"`
}

// SpeedComparisonRequest asks who moves first.
type SpeedComparisonRequest struct {
	First     SpeedSide `yaml:"first" json:"first"`
	Second    SpeedSide `yaml:"second" json:"second"`
	TrickRoom bool      `yaml:"trick_room" json:"trick_room,omitempty"`
}

// CompareSpeed resolves both sides and compares their effective Speed.
func (s *Service) CompareSpeed(ctx context.Context, req SpeedComparisonRequest) (speed.Comparison, error) {
	var sides [2]speed.Side
	for i, in := range []SpeedSide{req.First, req.Second} {
		if err := in.Mods.Validate(); err != nil {
			return speed.Comparison{}, fmt.Errorf("%s: %w", in.Pokemon.Species, err)
		}
		b, err := s.resolve(ctx, in.Pokemon)
		if err != nil {
			return speed.Comparison{}, err
		}
		sides[i] = speed.Side{Name: b.Species, Stat: b.Stat(stats.Speed), Mods: in.Mods}
	}
	return speed.CompareSpeed(sides[0], sides[1], req.TrickRoom), nil
}

// SpeedEVsRequest asks for the Speed investment hitting a benchmark.
type SpeedEVsRequest struct {
	Species string       `yaml:"species" json:"species"`
	Nature  stats.Nature `yaml:"nature" json:"nature,omitempty"`
	// IV defaults to 31.
	IV   *int                `yaml:"iv" json:"iv,omitempty"`
	Goal optimizer.SpeedGoal `yaml:"goal" json:"goal"`
}

// SpeedEVsResult is the answer of FindSpeedEVs.
type SpeedEVsResult struct {
	Species    string       `json:"species"`
	Nature     stats.Nature `json:"nature"`
	Goal       int          `json:"goal"`
	Underspeed bool         `json:"underspeed,omitempty"`
	Reachable  bool         `json:"reachable"`
	EVs        int          `json:"evs"`
	IV         int          `json:"iv"`
	Stat       int          `json:"speed"`
	Effective  int          `json:"effective_speed"`
	Note       string       `json:"note,omitempty"`
}

// FindSpeedEVs returns the fewest EVs that outspeed the goal, or with
// Underspeed the most EVs that stay below it.
func (s *Service) FindSpeedEVs(ctx context.Context, req SpeedEVsRequest) (SpeedEVsResult, error) {
	if req.Species == "" {
		return SpeedEVsResult{}, ErrMissingSpecies
	}
	for _, m := range []speed.Modifiers{req.Goal.Own, req.Goal.TargetMods} {
		if err := m.Validate(); err != nil {
			return SpeedEVsResult{}, err
		}
	}
	b, err := dex.Build(ctx, s.dex, req.Species)
	if err != nil {
		return SpeedEVsResult{}, err
	}
	iv := stats.MaxIV
	if req.IV != nil {
		if *req.IV < 0 || *req.IV > stats.MaxIV {
			return SpeedEVsResult{}, fmt.Errorf("speed IV %d: %w", *req.IV, stats.ErrInvalidIV)
		}
		iv = *req.IV
	}
	n := b.Nature
	if req.Nature.Valid() {
		n = req.Nature
	}

	res := SpeedEVsResult{
		Species:    b.Species,
		Nature:     n,
		Goal:       req.Goal.Goal(),
		Underspeed: req.Goal.Underspeed,
		IV:         iv,
	}
	base := b.Base.Speed
	if req.Goal.Underspeed {
		res.EVs, res.IV, res.Reachable = speed.FindMaxSpeedEVsBelow(base, iv, n, req.Goal.Own, res.Goal)
		switch {
		case !res.Reachable && n.Modifier(stats.Speed) != stats.Hindered:
			res.Note = "too fast even at 0 IV: use a -Spe nature (Brave, Relaxed, Quiet, Sassy)"
		case !res.Reachable:
			res.Note = "too fast even at 0 IV with a -Spe nature"
		case res.IV != iv:
			res.Note = "needs 0 Speed IV"
		}
	} else {
		res.EVs, res.Reachable = speed.FindMinSpeedEVs(base, iv, n, req.Goal.Own, res.Goal)
		if !res.Reachable {
			res.EVs = stats.MaxEV
			res.Note = "cannot outspeed even with 252 EVs"
		}
	}

	res.Stat = speed.Stat(base, res.IV, res.EVs, n)
	res.Effective = req.Goal.Own.Effective(res.Stat)
	s.log.Debug("speed EVs found",
		"species", res.Species,
		"goal", res.Goal,
		"evs", res.EVs,
		"reachable", res.Reachable)
	return res, nil
}
