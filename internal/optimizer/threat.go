package optimizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/vgcspread/internal/damage"
	"github.com/udisondev/vgcspread/internal/dex"
	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

var ErrStatusMove = errors.New("threat move deals no damage")

// DefaultThreatEVs is the offensive investment assumed for a threat
// unless Options.ThreatEVs says otherwise.
const DefaultThreatEVs = stats.MaxEV

// ThreatSpec names one attacker and move. Zero fields fall back to the
// usage provider, then to the species policy table, then to defaults.
type ThreatSpec struct {
	Attacker string       `yaml:"attacker" json:"attacker"`
	Move     string       `yaml:"move" json:"move"`
	Nature   stats.Nature `yaml:"nature" json:"nature,omitempty"`
	// EVs in the attacking stat; nil means usage data or 252.
	EVs     *int          `yaml:"evs" json:"evs,omitempty"`
	Item    model.Item    `yaml:"item" json:"item,omitempty"`
	Ability model.Ability `yaml:"ability" json:"ability,omitempty"`
	Tera    model.Type    `yaml:"tera" json:"tera,omitempty"`
	// Field holds extra battle state for this hit (screens, weather...).
	Field damage.Modifiers `yaml:"field" json:"field"`
}

// Threat is a resolved attacker, move and modifier set.
type Threat struct {
	Name     string             `json:"name"`
	Attacker model.PokemonBuild `json:"attacker"`
	Move     model.Move         `json:"move"`
	Mods     damage.Modifiers   `json:"modifiers"`
}

// Physical reports whether the threat hits the Defense stat.
func (t Threat) Physical() bool {
	return t.Move.HitsPhysicalDefense()
}

// SpreadLabel renders "Adamant 252 Atk".
func (t Threat) SpreadLabel() string {
	s := stats.SpecialAttack
	if t.Move.Category == model.Physical {
		s = stats.Attack
	}
	return fmt.Sprintf("%s %d %s", t.Attacker.Nature, t.Attacker.EVs.Get(s), s)
}

// prepareThreat resolves a spec against the dex and the usage provider.
func (o *Optimizer) prepareThreat(ctx context.Context, spec ThreatSpec) (Threat, error) {
	att, err := dex.Build(ctx, o.dex, spec.Attacker)
	if err != nil {
		return Threat{}, fmt.Errorf("resolving attacker %q: %w", spec.Attacker, err)
	}
	mv, err := o.dex.Move(ctx, spec.Move, spec.Attacker)
	if err != nil {
		return Threat{}, fmt.Errorf("resolving move %q: %w", spec.Move, err)
	}
	if !mv.IsDamaging() {
		return Threat{}, fmt.Errorf("%s: %w", mv.Name, ErrStatusMove)
	}

	offense := stats.SpecialAttack
	att.Nature = stats.Modest
	if mv.Category == model.Physical {
		offense = stats.Attack
		att.Nature = stats.Adamant
	}
	att.EVs = stats.Spread{}.With(offense, o.opts.ThreatEVs)

	if sp, ok, err := o.usage.CommonSpread(ctx, spec.Attacker); err != nil {
		return Threat{}, fmt.Errorf("usage data for %q: %w", spec.Attacker, err)
	} else if ok {
		att.Nature = sp.Nature
		att.EVs = sp.EVs
		if sp.Item != model.ItemNone {
			att.Item = sp.Item
		}
		if sp.Ability != model.AbilityNone {
			att.Ability = sp.Ability
		}
	}

	policy, hasPolicy := dex.LookupPolicy(spec.Attacker)
	if hasPolicy {
		if att.Item == model.ItemNone {
			att.Item = policy.SynergyItem
		}
		if policy.FixedAbility != model.AbilityNone {
			att.Ability = policy.FixedAbility
		}
	}

	if spec.Nature.Valid() {
		att.Nature = spec.Nature
	}
	if spec.EVs != nil {
		if *spec.EVs < 0 || *spec.EVs > stats.MaxEV {
			return Threat{}, fmt.Errorf("threat %s: %d: %w", spec.Attacker, *spec.EVs, stats.ErrEVOutOfRange)
		}
		att.EVs = att.EVs.With(offense, stats.NormalizeEVs(*spec.EVs))
	}
	if spec.Item != model.ItemNone {
		att.Item = spec.Item
	}
	if spec.Ability != model.AbilityNone {
		att.Ability = spec.Ability
	}

	mods := spec.Field
	mods.AttackerItem = att.Item
	mods.AttackerAbility = att.Ability
	if tera := spec.Tera; tera != model.TypeNone {
		if hasPolicy && policy.FixedTera != model.TypeNone {
			tera = policy.FixedTera
		}
		att.TeraType = tera
		mods.AttackerTera = tera
		mods.AttackerTeraActive = true
	}
	mods = mods.RuinFromAbility(att.Ability)
	if mv.IsSpread && !mods.Singles {
		mods.MultipleTargets = true
	}
	if mv.AlwaysCrit {
		mods.Critical = true
	}
	if att.Item == model.FlameOrb || att.Item == model.ToxicOrb {
		mods.AttackerStatused = true
		mods.AttackerBurned = mods.AttackerBurned || att.Item == model.FlameOrb
	}
	if att.Item == model.BoosterEnergy && (att.Ability == model.Protosynthesis || att.Ability == model.QuarkDrive) {
		mods.AttackerBoost = highestStat(att)
	}

	return Threat{
		Name:     fmt.Sprintf("%s %s", att.Species, mv.Name),
		Attacker: att,
		Move:     mv,
		Mods:     mods,
	}, nil
}

// highestStat picks the stat Booster Energy raises; ties go to the
// earlier stat in Atk, Def, SpA, SpD, Spe order.
func highestStat(b model.PokemonBuild) stats.Stat {
	final := b.Stats()
	best := stats.Attack
	for _, s := range []stats.Stat{stats.Defense, stats.SpecialAttack, stats.SpecialDefense, stats.Speed} {
		if final.Get(s) > final.Get(best) {
			best = s
		}
	}
	return best
}
