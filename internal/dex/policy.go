package dex

import (
	"strings"

	"github.com/udisondev/vgcspread/internal/model"
)

// Policy is what a species always (or almost always) runs as a threat.
type Policy struct {
	SynergyItem  model.Item
	FixedAbility model.Ability
	// FixedTera is a Tera type the species cannot change.
	FixedTera model.Type
}

// policies - единая таблица видовых особенностей угроз:
// фиксированная способность, фиксированный Tera и «синергийный» предмет.
var policies = map[string]Policy{
	"landorus":             {SynergyItem: model.LifeOrb, FixedAbility: model.SheerForce},
	"ursaluna":             {SynergyItem: model.FlameOrb, FixedAbility: model.Guts},
	"ursaluna-bloodmoon":   {SynergyItem: model.LifeOrb, FixedAbility: model.MindsEye},
	"urshifu":              {SynergyItem: model.ChoiceBand, FixedAbility: model.UnseenFist},
	"urshifu-rapid-strike": {SynergyItem: model.ChoiceBand, FixedAbility: model.UnseenFist},
	"ogerpon":              {SynergyItem: model.TealMask, FixedAbility: model.Defiant, FixedTera: model.TypeGrass},
	"ogerpon-wellspring":   {SynergyItem: model.WellspringMask, FixedAbility: model.WaterAbsorb, FixedTera: model.TypeWater},
	"ogerpon-hearthflame":  {SynergyItem: model.HearthflameMask, FixedAbility: model.MoldBreaker, FixedTera: model.TypeFire},
	"ogerpon-cornerstone":  {SynergyItem: model.CornerstoneMask, FixedAbility: model.Sturdy, FixedTera: model.TypeRock},
	"chien-pao":            {SynergyItem: model.FocusSash, FixedAbility: model.SwordOfRuin},
	"chi-yu":               {SynergyItem: model.ChoiceSpecs, FixedAbility: model.BeadsOfRuin},
	"ting-lu":              {SynergyItem: model.Leftovers, FixedAbility: model.VesselOfRuin},
	"wo-chien":             {SynergyItem: model.RockyHelmet, FixedAbility: model.TabletsOfRuin},
	"terapagos":            {FixedAbility: model.TeraShell, FixedTera: model.TypeStellar},
}

// LookupPolicy returns the policy of species. Ogerpon forms written
// "ogerpon-teal" resolve to the base entry.
func LookupPolicy(species string) (Policy, bool) {
	key := model.NormalizeName(species)
	if p, ok := policies[key]; ok {
		return p, true
	}
	if strings.HasPrefix(key, "ogerpon-teal") {
		return policies["ogerpon"], true
	}
	return Policy{}, false
}
