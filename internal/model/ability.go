package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownAbility = errors.New("unknown ability")

// Ability is a closed set of abilities. Abilities that never touch damage
// or speed are listed too so that species data can name them.
type Ability uint16

const (
	AbilityNone Ability = iota
	// attacker stat / power
	Adaptability
	HugePower
	PurePower
	GorillaTactics
	Guts
	HadronEngine
	OrichalcumPulse
	Technician
	SheerForce
	ToughClaws
	TintedLens
	Sniper
	Neuroforce
	Protosynthesis
	QuarkDrive
	SupremeOverlord
	// field
	SwordOfRuin
	BeadsOfRuin
	TabletsOfRuin
	VesselOfRuin
	// ability bypass
	MoldBreaker
	Teravolt
	Turboblaze
	Scrappy
	MindsEye
	Unaware
	// defender reduction
	Multiscale
	ShadowShield
	SolidRock
	Filter
	PrismArmor
	IceScales
	Fluffy
	ThickFat
	Heatproof
	PurifyingSalt
	FurCoat
	TeraShell
	// immunities
	Levitate
	WaterAbsorb
	VoltAbsorb
	FlashFire
	SapSipper
	LightningRod
	StormDrain
	MotorDrive
	DrySkin
	EarthEater
	WellBakedBody
	// speed
	Chlorophyll
	SwiftSwim
	SandRush
	SlushRush
	Unburden
	QuickFeet
	SpeedBoost
	// no damage effect
	Intimidate
	InnerFocus
	Defiant
	Competitive
	Prankster
	Regenerator
	Sturdy
	UnseenFist
	EmbodyAspect
	ZeroToHero
	Commander
	GoodAsGold
	ArmorTail
	ClearBody
	Drought
	Drizzle
	SandStream
	SnowWarning
	ElectricSurge
	PsychicSurge
	GrassySurge
	MistySurge
	FriendGuard
	Pressure
	Overcoat
	OwnTempo
	Oblivious
	CursedBody
	MirrorArmor
	TeraShift
	TeraformZero
	ToxicDebris
	SeedSower
	Stamina
	RoughSkin
	IronBarbs
	PoisonHeal
	MagicGuard
	MagicBounce
	Synchronize
	Trace
	Moxie
	Justified
	Frisk
	Infiltrator
	Pickpocket
	ShieldDust
	SereneGrace
	SkillLink
	Hustle
	CompoundEyes
	Costar
	Hospitality

	abilityCount
)

var abilityNames = [abilityCount]string{
	AbilityNone:     "",
	Adaptability:    "adaptability",
	HugePower:       "huge-power",
	PurePower:       "pure-power",
	GorillaTactics:  "gorilla-tactics",
	Guts:            "guts",
	HadronEngine:    "hadron-engine",
	OrichalcumPulse: "orichalcum-pulse",
	Technician:      "technician",
	SheerForce:      "sheer-force",
	ToughClaws:      "tough-claws",
	TintedLens:      "tinted-lens",
	Sniper:          "sniper",
	Neuroforce:      "neuroforce",
	Protosynthesis:  "protosynthesis",
	QuarkDrive:      "quark-drive",
	SupremeOverlord: "supreme-overlord",
	SwordOfRuin:     "sword-of-ruin",
	BeadsOfRuin:     "beads-of-ruin",
	TabletsOfRuin:   "tablets-of-ruin",
	VesselOfRuin:    "vessel-of-ruin",
	MoldBreaker:     "mold-breaker",
	Teravolt:        "teravolt",
	Turboblaze:      "turboblaze",
	Scrappy:         "scrappy",
	MindsEye:        "minds-eye",
	Unaware:         "unaware",
	Multiscale:      "multiscale",
	ShadowShield:    "shadow-shield",
	SolidRock:       "solid-rock",
	Filter:          "filter",
	PrismArmor:      "prism-armor",
	IceScales:       "ice-scales",
	Fluffy:          "fluffy",
	ThickFat:        "thick-fat",
	Heatproof:       "heatproof",
	PurifyingSalt:   "purifying-salt",
	FurCoat:         "fur-coat",
	TeraShell:       "tera-shell",
	Levitate:        "levitate",
	WaterAbsorb:     "water-absorb",
	VoltAbsorb:      "volt-absorb",
	FlashFire:       "flash-fire",
	SapSipper:       "sap-sipper",
	LightningRod:    "lightning-rod",
	StormDrain:      "storm-drain",
	MotorDrive:      "motor-drive",
	DrySkin:         "dry-skin",
	EarthEater:      "earth-eater",
	WellBakedBody:   "well-baked-body",
	Chlorophyll:     "chlorophyll",
	SwiftSwim:       "swift-swim",
	SandRush:        "sand-rush",
	SlushRush:       "slush-rush",
	Unburden:        "unburden",
	QuickFeet:       "quick-feet",
	SpeedBoost:      "speed-boost",
	Intimidate:      "intimidate",
	InnerFocus:      "inner-focus",
	Defiant:         "defiant",
	Competitive:     "competitive",
	Prankster:       "prankster",
	Regenerator:     "regenerator",
	Sturdy:          "sturdy",
	UnseenFist:      "unseen-fist",
	EmbodyAspect:    "embody-aspect",
	ZeroToHero:      "zero-to-hero",
	Commander:       "commander",
	GoodAsGold:      "good-as-gold",
	ArmorTail:       "armor-tail",
	ClearBody:       "clear-body",
	Drought:         "drought",
	Drizzle:         "drizzle",
	SandStream:      "sand-stream",
	SnowWarning:     "snow-warning",
	ElectricSurge:   "electric-surge",
	PsychicSurge:    "psychic-surge",
	GrassySurge:     "grassy-surge",
	MistySurge:      "misty-surge",
	FriendGuard:     "friend-guard",
	Pressure:        "pressure",
	Overcoat:        "overcoat",
	OwnTempo:        "own-tempo",
	Oblivious:       "oblivious",
	CursedBody:      "cursed-body",
	MirrorArmor:     "mirror-armor",
	TeraShift:       "tera-shift",
	TeraformZero:    "teraform-zero",
	ToxicDebris:     "toxic-debris",
	SeedSower:       "seed-sower",
	Stamina:         "stamina",
	RoughSkin:       "rough-skin",
	IronBarbs:       "iron-barbs",
	PoisonHeal:      "poison-heal",
	MagicGuard:      "magic-guard",
	MagicBounce:     "magic-bounce",
	Synchronize:     "synchronize",
	Trace:           "trace",
	Moxie:           "moxie",
	Justified:       "justified",
	Frisk:           "frisk",
	Infiltrator:     "infiltrator",
	Pickpocket:      "pickpocket",
	ShieldDust:      "shield-dust",
	SereneGrace:     "serene-grace",
	SkillLink:       "skill-link",
	Hustle:          "hustle",
	CompoundEyes:    "compound-eyes",
	Costar:          "costar",
	Hospitality:     "hospitality",
}

var abilitiesByCompact = func() map[string]Ability {
	m := make(map[string]Ability, abilityCount)
	for a := AbilityNone + 1; a < abilityCount; a++ {
		if abilityNames[a] == "" {
			continue
		}
		m[compactName(abilityNames[a])] = a
	}
	return m
}()

// immunities maps type-absorbing abilities to the type they block.
var immunities = map[Ability]Type{
	Levitate:      TypeGround,
	EarthEater:    TypeGround,
	WaterAbsorb:   TypeWater,
	StormDrain:    TypeWater,
	DrySkin:       TypeWater,
	VoltAbsorb:    TypeElectric,
	LightningRod:  TypeElectric,
	MotorDrive:    TypeElectric,
	FlashFire:     TypeFire,
	WellBakedBody: TypeFire,
	SapSipper:     TypeGrass,
}

// ParseAbility accepts display names ("Sword of Ruin"), ids and compact ids.
func ParseAbility(s string) (Ability, error) {
	if strings.TrimSpace(s) == "" || strings.EqualFold(strings.TrimSpace(s), "none") {
		return AbilityNone, nil
	}
	if a, ok := abilitiesByCompact[compactName(s)]; ok {
		return a, nil
	}
	return AbilityNone, fmt.Errorf("%q: %w", s, ErrUnknownAbility)
}

func (a Ability) String() string {
	if a == AbilityNone || a >= abilityCount || abilityNames[a] == "" {
		return "none"
	}
	return abilityNames[a]
}

// IgnoresAbilities reports Mold Breaker and its clones.
func (a Ability) IgnoresAbilities() bool {
	return a == MoldBreaker || a == Teravolt || a == Turboblaze
}

// BlocksType returns the type the ability grants immunity to.
func (a Ability) BlocksType() (Type, bool) {
	t, ok := immunities[a]
	return t, ok
}

// IsRuin reports the four Treasures of Ruin abilities.
func (a Ability) IsRuin() bool {
	return a == SwordOfRuin || a == BeadsOfRuin || a == TabletsOfRuin || a == VesselOfRuin
}

func (a Ability) MarshalText() ([]byte, error) {
	if a >= abilityCount {
		return nil, fmt.Errorf("ability %d: %w", a, ErrUnknownAbility)
	}
	return []byte(abilityNames[a]), nil
}

func (a *Ability) UnmarshalText(b []byte) error {
	parsed, err := ParseAbility(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
