// Package usage provides the most common competitive set of a species,
// taken from usage statistics.
package usage

import (
	"context"

	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

// Spread is the most used set of one species.
type Spread struct {
	Nature  stats.Nature  `json:"nature"`
	EVs     stats.Spread  `json:"evs"`
	Item    model.Item    `json:"item"`
	Ability model.Ability `json:"ability"`
	// Usage is the share of the top spread, in percent.
	Usage float64 `json:"usage"`
}

// Provider returns the common spread of species. ok is false when the
// provider has no data for it.
type Provider interface {
	CommonSpread(ctx context.Context, species string) (Spread, bool, error)
}

// Nop is a Provider without data.
type Nop struct{}

func (Nop) CommonSpread(context.Context, string) (Spread, bool, error) {
	return Spread{}, false, nil
}

// Static serves spreads from a fixed map, keyed by normalised species name.
type Static map[string]Spread

func (s Static) CommonSpread(_ context.Context, species string) (Spread, bool, error) {
	sp, ok := s[model.NormalizeName(species)]
	return sp, ok, nil
}
