package usage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

var ErrInvalidChaos = errors.New("invalid chaos usage data")

// ChaosProvider reads Smogon "chaos" JSON usage dumps:
//
//	{"data": {"Incineroar": {"Abilities": {...}, "Items": {...},
//	  "Spreads": {"Careful:252/4/0/0/252/0": 12.5, ...}}}}
//
// The dump is parsed once; lookups are map reads.
type ChaosProvider struct {
	spreads map[string]Spread
}

var _ Provider = (*ChaosProvider)(nil)

// LoadChaosFile reads a chaos dump from disk.
func LoadChaosFile(path string) (*ChaosProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading usage file %s: %w", path, err)
	}
	return ParseChaos(raw)
}

// ParseChaos builds a provider from a chaos dump. Species whose top
// spread cannot be parsed are skipped.
func ParseChaos(raw []byte) (*ChaosProvider, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidChaos
	}
	data := gjson.GetBytes(raw, "data")
	if !data.IsObject() {
		return nil, fmt.Errorf("missing data object: %w", ErrInvalidChaos)
	}

	p := &ChaosProvider{spreads: make(map[string]Spread)}
	skipped := 0
	data.ForEach(func(name, entry gjson.Result) bool {
		sp, ok := parseEntry(entry)
		if !ok {
			skipped++
			return true
		}
		p.spreads[model.NormalizeName(name.String())] = sp
		return true
	})

	slog.Debug("loaded usage stats", "species", len(p.spreads), "skipped", skipped)
	return p, nil
}

func (p *ChaosProvider) CommonSpread(_ context.Context, species string) (Spread, bool, error) {
	sp, ok := p.spreads[model.NormalizeName(species)]
	return sp, ok, nil
}

// Len reports the number of species with a usable spread.
func (p *ChaosProvider) Len() int {
	return len(p.spreads)
}

func parseEntry(entry gjson.Result) (Spread, bool) {
	key, weight, total := topKey(entry.Get("Spreads"))
	if key == "" {
		return Spread{}, false
	}
	nature, evs, err := parseSpreadKey(key)
	if err != nil {
		return Spread{}, false
	}
	sp := Spread{Nature: nature, EVs: evs}
	if total > 0 {
		sp.Usage = weight * 100 / total
	}

	// unknown items and abilities fall back to none
	if name, _, _ := topKey(entry.Get("Items")); name != "" {
		if it, err := model.ParseItem(name); err == nil {
			sp.Item = it
		}
	}
	if name, _, _ := topKey(entry.Get("Abilities")); name != "" {
		if a, err := model.ParseAbility(name); err == nil {
			sp.Ability = a
		}
	}
	return sp, true
}

// topKey returns the heaviest key of a {name: weight} object, the first
// one on ties, with its weight and the object's total weight.
func topKey(obj gjson.Result) (key string, weight, total float64) {
	obj.ForEach(func(k, v gjson.Result) bool {
		w := v.Float()
		total += w
		if key == "" || w > weight {
			key, weight = k.String(), w
		}
		return true
	})
	return key, weight, total
}

// parseSpreadKey parses "Careful:252/4/0/0/252/0" (HP/Atk/Def/SpA/SpD/Spe).
func parseSpreadKey(key string) (stats.Nature, stats.Spread, error) {
	natureName, evPart, ok := strings.Cut(key, ":")
	if !ok {
		return 0, stats.Spread{}, fmt.Errorf("spread %q: %w", key, ErrInvalidChaos)
	}
	nature, err := stats.ParseNature(natureName)
	if err != nil {
		return 0, stats.Spread{}, err
	}

	parts := strings.Split(evPart, "/")
	if len(parts) != 6 {
		return 0, stats.Spread{}, fmt.Errorf("spread %q: %w", key, ErrInvalidChaos)
	}
	var vals [6]int
	for i, s := range parts {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, stats.Spread{}, fmt.Errorf("spread %q: %w", key, ErrInvalidChaos)
		}
		vals[i] = v
	}
	evs := stats.Spread{HP: vals[0], Attack: vals[1], Defense: vals[2], SpecialAttack: vals[3], SpecialDefense: vals[4], Speed: vals[5]}
	if err := evs.ValidateEVs(); err != nil {
		return 0, stats.Spread{}, err
	}
	return nature, evs, nil
}
