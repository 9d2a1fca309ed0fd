package calc

import (
	"context"
	"fmt"

	"github.com/udisondev/vgcspread/internal/damage"
	"github.com/udisondev/vgcspread/internal/model"
)

// DamageRequest is one attack between two named Pokemon. A set Tera type
// means the Pokemon has terastallized.
type DamageRequest struct {
	Attacker Pokemon          `yaml:"attacker" json:"attacker"`
	Defender Pokemon          `yaml:"defender" json:"defender"`
	Move     string           `yaml:"move" json:"move"`
	Field    damage.Modifiers `yaml:"field" json:"field"`
}

// CalculateDamageRange resolves the request and returns all 16 rolls.
func (s *Service) CalculateDamageRange(ctx context.Context, req DamageRequest) (damage.Result, error) {
	att, err := s.resolve(ctx, req.Attacker)
	if err != nil {
		return damage.Result{}, fmt.Errorf("attacker: %w", err)
	}
	def, err := s.resolve(ctx, req.Defender)
	if err != nil {
		return damage.Result{}, fmt.Errorf("defender: %w", err)
	}
	mv, err := s.dex.Move(ctx, req.Move, att.Species)
	if err != nil {
		return damage.Result{}, err
	}

	mods := req.Field.RuinFromAbility(att.Ability).RuinFromAbility(def.Ability)
	if att.TeraType != model.TypeNone {
		mods.AttackerTera, mods.AttackerTeraActive = att.TeraType, true
	}
	if def.TeraType != model.TypeNone {
		mods.DefenderTera, mods.DefenderTeraActive = def.TeraType, true
	}
	if mv.IsSpread && !mods.Singles {
		mods.MultipleTargets = true
	}
	switch att.Item {
	case model.FlameOrb:
		mods.AttackerBurned, mods.AttackerStatused = true, true
	case model.ToxicOrb:
		mods.AttackerStatused = true
	}

	res := damage.Calculate(att, def, mv, mods)
	s.log.Debug("damage calculated",
		"attacker", att.Species,
		"defender", def.Species,
		"move", mv.Name,
		"min", res.MinDamage,
		"max", res.MaxDamage)
	return res, nil
}
