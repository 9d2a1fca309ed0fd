package damage

import (
	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

// Modifier values on the 4096 scale used by the games.
const (
	modBase = 4096

	modSpread        = 3072
	modWeatherBoost  = 6144
	modWeatherNerf   = 2048
	modTerrainBoost  = 5325
	modMistyTerrain  = 2048
	modCrit          = 6144
	modBurn          = 2048
	modScreenSingles = 2048
	modScreenDoubles = 2732

	modLifeOrb    = 5324
	modExpertBelt = 4915
	modTypeItem   = 4915
	modMask       = 4915
	modBandGlass  = 4505

	modTintedLens = 8192
	modSniper     = 6144
	modNeuroforce = 5120

	modSTAB          = 6144
	modSTABBoosted   = 8192
	modSTABAdaptTera = 9216

	modHalve       = 2048
	modSolidRock   = 3072
	modDouble      = 8192
	modDrySkin     = 5120
	modResistBerry = 2048

	modHelpingHand = 6144
	modFriendGuard = 3072

	modStatPulse    = 5461 // Hadron Engine, Orichalcum Pulse
	modParadox      = 5325 // Protosynthesis, Quark Drive
	modPowerAbility = 5325 // Tough Claws, Sheer Force
)

// levelFactor is floor(2*50/5)+2.
const levelFactor = 2*stats.Level/5 + 2

// RollCount is the number of damage rolls per hit.
const RollCount = 16

func applyMod(v, mod int) int {
	return v * mod / modBase
}

// Calculate runs the level-50 damage formula and returns all 16 rolls.
//
// Stat-level effects (stages, Choice items, Ruin, Assault Vest...) shape
// the attack and defense values. The base damage then passes through the
// modifier stages in a fixed order, flooring after every multiplication:
// field, screens, item, ability, STAB, type effectiveness, defender
// ability, support. The random roll comes last:
// roll[i] = floor(maxRoll * (85+i) / 100).
func Calculate(att, def model.PokemonBuild, mv model.Move, mods Modifiers) Result {
	mods = mods.withBuilds(att, def)

	res := Result{Move: mv.Name, DefenderHP: def.MaxHP(), HitCount: 1}
	if !mv.IsDamaging() {
		res.Status = true
		return res.finish()
	}

	crit := mods.Critical || mv.AlwaysCrit
	physical := mv.Category == model.Physical
	moveType := mv.Type

	defAbility := mods.DefenderAbility
	if mods.AttackerAbility.IgnoresAbilities() {
		defAbility = model.AbilityNone
	}

	defTypes := def.Types
	if mods.DefenderTeraActive && mods.DefenderTera != model.TypeNone && mods.DefenderTera != model.TypeStellar {
		defTypes = []model.Type{mods.DefenderTera}
	}

	if blocked, ok := defAbility.BlocksType(); ok && blocked == moveType {
		return res.immune(defAbility.String())
	}
	if mods.DefenderItem == model.AirBalloon && moveType == model.TypeGround {
		return res.immune(model.AirBalloon.String())
	}

	eff := model.Effectiveness(moveType, defTypes...)
	if eff == 0 && (moveType == model.TypeNormal || moveType == model.TypeFighting) &&
		(mods.AttackerAbility == model.Scrappy || mods.AttackerAbility == model.MindsEye) {
		eff = model.Effectiveness(moveType, withoutType(defTypes, model.TypeGhost)...)
	}
	// Tera Shell only lowers effectiveness that is neutral or better.
	if eff > 2 && defAbility == model.TeraShell && !mods.DefenderDamaged {
		eff = 2
	}
	if eff == 0 {
		return res.immune("type")
	}
	res.Effectiveness = float64(eff) / 4

	atk, dfn := attackAndDefense(att, def, mv, mods, defAbility, defTypes, crit)
	power := basePower(mv, mods)
	res.AttackStat, res.DefenseStat, res.Power = atk, dfn, power

	dmg := levelFactor*power*atk/dfn/50 + 2
	apply := func(label string, mod int) {
		dmg = applyMod(dmg, mod)
		res.Applied = append(res.Applied, label)
	}

	// field
	if mv.IsSpread && !mods.Singles && mods.MultipleTargets {
		apply("spread", modSpread)
	}
	switch {
	case mods.Weather == Sun && moveType == model.TypeFire, mods.Weather == Rain && moveType == model.TypeWater:
		apply("weather boost", modWeatherBoost)
	case mods.Weather == Sun && moveType == model.TypeWater, mods.Weather == Rain && moveType == model.TypeFire:
		apply("weather nerf", modWeatherNerf)
	}
	if grounded(att, mods.AttackerAbility, mods.AttackerItem, mods.AttackerAirborne) {
		switch {
		case mods.Terrain == ElectricTerrain && moveType == model.TypeElectric,
			mods.Terrain == GrassyTerrain && moveType == model.TypeGrass,
			mods.Terrain == PsychicTerrain && moveType == model.TypePsychic:
			apply(mods.Terrain.String()+" terrain", modTerrainBoost)
		}
	}
	if mods.Terrain == MistyTerrain && moveType == model.TypeDragon &&
		grounded(def, mods.DefenderAbility, mods.DefenderItem, mods.DefenderAirborne) {
		apply("misty terrain", modMistyTerrain)
	}
	if crit {
		apply("critical", modCrit)
	}
	if physical && mods.AttackerBurned && mods.AttackerAbility != model.Guts && model.NormalizeName(mv.Name) != "facade" {
		apply("burn", modBurn)
	}

	// screens
	if !crit && (mods.AuroraVeil || (physical && mods.Reflect) || (!physical && mods.LightScreen)) {
		if mods.Singles {
			apply("screen", modScreenSingles)
		} else {
			apply("screen", modScreenDoubles)
		}
	}

	// item
	switch it := mods.AttackerItem; {
	case it == model.LifeOrb:
		apply("life-orb", modLifeOrb)
	case it == model.ExpertBelt && eff > 4:
		apply("expert-belt", modExpertBelt)
	case it == model.MuscleBand && physical, it == model.WiseGlasses && !physical:
		apply(it.String(), modBandGlass)
	default:
		if t, ok := it.BoostedType(); ok && t == moveType {
			apply(it.String(), modTypeItem)
		} else if _, ok := it.MaskType(); ok {
			apply(it.String(), modMask)
		}
	}

	// attacker ability
	switch a := mods.AttackerAbility; {
	case a == model.TintedLens && eff < 4:
		apply("tinted-lens", modTintedLens)
	case a == model.Sniper && crit:
		apply("sniper", modSniper)
	case a == model.Neuroforce && eff > 4:
		apply("neuroforce", modNeuroforce)
	}

	// STAB
	if stab := stabModifier(att, moveType, mods); stab != modBase {
		apply("stab", stab)
	}

	// type effectiveness
	if eff != 4 {
		dmg = dmg * eff / 4
		res.Applied = append(res.Applied, "type")
	}

	// defender ability and item
	switch defAbility {
	case model.Multiscale, model.ShadowShield:
		if !mods.DefenderDamaged {
			apply(defAbility.String(), modHalve)
		}
	case model.SolidRock, model.Filter, model.PrismArmor:
		if eff > 4 {
			apply(defAbility.String(), modSolidRock)
		}
	case model.IceScales:
		if !physical {
			apply("ice-scales", modHalve)
		}
	case model.Fluffy:
		if mv.MakesContact {
			apply("fluffy", modHalve)
		}
		if moveType == model.TypeFire {
			apply("fluffy fire", modDouble)
		}
	case model.ThickFat:
		if moveType == model.TypeFire || moveType == model.TypeIce {
			apply("thick-fat", modHalve)
		}
	case model.Heatproof:
		if moveType == model.TypeFire {
			apply("heatproof", modHalve)
		}
	case model.PurifyingSalt:
		if moveType == model.TypeGhost {
			apply("purifying-salt", modHalve)
		}
	case model.FurCoat:
		if physical {
			apply("fur-coat", modHalve)
		}
	case model.DrySkin:
		if moveType == model.TypeFire {
			apply("dry-skin", modDrySkin)
		}
	}
	if t, ok := mods.DefenderItem.ResistedType(); ok && t == moveType &&
		(eff > 4 || mods.DefenderItem == model.ChilanBerry) {
		apply(mods.DefenderItem.String(), modResistBerry)
	}

	// support
	if mods.HelpingHand {
		apply("helping-hand", modHelpingHand)
	}
	if mods.FriendGuard {
		apply("friend-guard", modFriendGuard)
	}

	res.HitCount = hitCount(mv, mods)
	maxRoll := max(1, dmg) * res.HitCount
	for i := range res.Rolls {
		res.Rolls[i] = max(1, maxRoll*(85+i)/100)
	}
	return res.finish()
}

func attackAndDefense(att, def model.PokemonBuild, mv model.Move, mods Modifiers, defAbility model.Ability, defTypes []model.Type, crit bool) (int, int) {
	physical := mv.Category == model.Physical
	atkStat := stats.SpecialAttack
	if physical {
		atkStat = stats.Attack
	}
	defStat := stats.SpecialDefense
	if mv.HitsPhysicalDefense() {
		defStat = stats.Defense
	}

	a := att.Stat(atkStat)
	d := def.Stat(defStat)

	atkStage := clampStage(mods.AttackStage)
	defStage := clampStage(mods.DefenseStage)
	if defAbility == model.Unaware {
		atkStage = 0
	}
	if mods.AttackerAbility == model.Unaware {
		defStage = 0
	}
	// crits ignore the attacker's drops and the defender's boosts
	if crit && atkStage < 0 {
		atkStage = 0
	}
	if crit && defStage > 0 {
		defStage = 0
	}
	num, den := stageRatio(atkStage)
	a = a * num / den
	num, den = stageRatio(defStage)
	d = d * num / den

	if (physical && mods.AttackerItem == model.ChoiceBand) || (!physical && mods.AttackerItem == model.ChoiceSpecs) {
		a = a * 3 / 2
	}
	switch mods.AttackerAbility {
	case model.HugePower, model.PurePower:
		if physical {
			a *= 2
		}
	case model.GorillaTactics:
		if physical {
			a = a * 3 / 2
		}
	case model.Guts:
		if physical && (mods.AttackerStatused || mods.AttackerBurned) {
			a = a * 3 / 2
		}
	case model.HadronEngine:
		if !physical && mods.Terrain == ElectricTerrain {
			a = applyMod(a, modStatPulse)
		}
	case model.OrichalcumPulse:
		if physical && mods.Weather == Sun {
			a = applyMod(a, modStatPulse)
		}
	case model.EmbodyAspect:
		if physical && mods.AttackerItem == model.HearthflameMask {
			a = a * 3 / 2
		}
	}
	if mods.AttackerBoost != stats.HP && mods.AttackerBoost == atkStat {
		a = applyMod(a, modParadox)
	}

	// Ruin auras skip their own holder.
	if mods.SwordOfRuin && defStat == stats.Defense && mods.DefenderAbility != model.SwordOfRuin {
		d = d * 3 / 4
	}
	if mods.BeadsOfRuin && defStat == stats.SpecialDefense && mods.DefenderAbility != model.BeadsOfRuin {
		d = d * 3 / 4
	}
	if mods.TabletsOfRuin && atkStat == stats.Attack && mods.AttackerAbility != model.TabletsOfRuin {
		a = a * 3 / 4
	}
	if mods.VesselOfRuin && atkStat == stats.SpecialAttack && mods.AttackerAbility != model.VesselOfRuin {
		a = a * 3 / 4
	}

	if mods.DefenderBoost != stats.HP && mods.DefenderBoost == defStat {
		d = applyMod(d, modParadox)
	}
	if mods.DefenderItem == model.AssaultVest && defStat == stats.SpecialDefense {
		d = d * 3 / 2
	}
	if mods.DefenderItem == model.Eviolite {
		d = d * 3 / 2
	}
	if defAbility == model.EmbodyAspect {
		if (mods.DefenderItem == model.WellspringMask && defStat == stats.SpecialDefense) ||
			(mods.DefenderItem == model.CornerstoneMask && defStat == stats.Defense) {
			d = d * 3 / 2
		}
	}
	if (mods.Weather == Sand && defStat == stats.SpecialDefense && hasType(defTypes, model.TypeRock)) ||
		(mods.Weather == Snow && defStat == stats.Defense && hasType(defTypes, model.TypeIce)) {
		d = d * 3 / 2
	}

	return max(1, a), max(1, d)
}

func basePower(mv model.Move, mods Modifiers) int {
	p := mv.Power
	if mods.AttackerAbility == model.Technician && p <= 60 {
		p = p * 3 / 2
	}
	// Tera raises weak moves of the Tera type to 60, except multi-hit and priority moves.
	if mods.AttackerTeraActive && mods.AttackerTera == mv.Type && p < 60 && !mv.IsMultiHit() && mv.Priority <= 0 {
		p = 60
	}
	switch {
	case mods.AttackerAbility == model.ToughClaws && mv.MakesContact,
		mods.AttackerAbility == model.SheerForce && mv.HasSecondary:
		p = applyMod(p, modPowerAbility)
	}
	return max(1, p)
}

func stabModifier(att model.PokemonBuild, moveType model.Type, mods Modifiers) int {
	adapt := mods.AttackerAbility == model.Adaptability
	original := att.HasType(moveType)
	teraMatch := mods.AttackerTeraActive && mods.AttackerTera != model.TypeStellar && mods.AttackerTera == moveType

	switch {
	case teraMatch && original:
		if adapt {
			return modSTABAdaptTera
		}
		return modSTABBoosted
	case teraMatch, original:
		if adapt {
			return modSTABBoosted
		}
		return modSTAB
	}
	return modBase
}

func hitCount(mv model.Move, mods Modifiers) int {
	if !mv.IsMultiHit() {
		return 1
	}
	if mods.Hits > 0 {
		return max(mv.MinHits, min(mods.Hits, mv.MaxHits))
	}
	return mv.MaxHits
}

func grounded(p model.PokemonBuild, ability model.Ability, item model.Item, airborne bool) bool {
	return !airborne && !p.HasType(model.TypeFlying) && ability != model.Levitate && item != model.AirBalloon
}

func hasType(types []model.Type, t model.Type) bool {
	for _, own := range types {
		if own == t {
			return true
		}
	}
	return false
}

func withoutType(types []model.Type, drop model.Type) []model.Type {
	out := make([]model.Type, 0, len(types))
	for _, t := range types {
		if t != drop {
			out = append(out, t)
		}
	}
	return out
}
