package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownItem = errors.New("unknown item")

// Item is a held item. Only items this calculator knows are representable;
// unknown names are rejected by ParseItem.
type Item uint16

const (
	ItemNone Item = iota
	ChoiceBand
	ChoiceSpecs
	ChoiceScarf
	LifeOrb
	ExpertBelt
	AssaultVest
	Eviolite
	FocusSash
	Leftovers
	SitrusBerry
	RockyHelmet
	BoosterEnergy
	AirBalloon
	ClearAmulet
	CovertCloak
	SafetyGoggles
	MirrorHerb
	WeaknessPolicy
	ThroatSpray
	LightClay
	MentalHerb
	LumBerry
	WhiteHerb
	FlameOrb
	ToxicOrb
	BlackSludge
	MuscleBand
	WiseGlasses
	PunchingGlove
	LoadedDice
	ScopeLens
	QuickClaw
	// type-boosting items
	SilkScarf
	Charcoal
	MysticWater
	Magnet
	MiracleSeed
	NeverMeltIce
	BlackBelt
	PoisonBarb
	SoftSand
	SharpBeak
	TwistedSpoon
	SilverPowder
	HardStone
	SpellTag
	DragonFang
	BlackGlasses
	MetalCoat
	FairyFeather
	// Ogerpon masks
	TealMask
	HearthflameMask
	WellspringMask
	CornerstoneMask
	// resistance berries
	ChilanBerry
	OccaBerry
	PasshoBerry
	WacanBerry
	RindoBerry
	YacheBerry
	ChopleBerry
	KebiaBerry
	ShucaBerry
	CobaBerry
	PayapaBerry
	TangaBerry
	ChartiBerry
	KasibBerry
	HabanBerry
	ColburBerry
	BabiriBerry
	RoseliBerry

	itemCount
)

var itemNames = [itemCount]string{
	ItemNone:        "",
	ChoiceBand:      "choice-band",
	ChoiceSpecs:     "choice-specs",
	ChoiceScarf:     "choice-scarf",
	LifeOrb:         "life-orb",
	ExpertBelt:      "expert-belt",
	AssaultVest:     "assault-vest",
	Eviolite:        "eviolite",
	FocusSash:       "focus-sash",
	Leftovers:       "leftovers",
	SitrusBerry:     "sitrus-berry",
	RockyHelmet:     "rocky-helmet",
	BoosterEnergy:   "booster-energy",
	AirBalloon:      "air-balloon",
	ClearAmulet:     "clear-amulet",
	CovertCloak:     "covert-cloak",
	SafetyGoggles:   "safety-goggles",
	MirrorHerb:      "mirror-herb",
	WeaknessPolicy:  "weakness-policy",
	ThroatSpray:     "throat-spray",
	LightClay:       "light-clay",
	MentalHerb:      "mental-herb",
	LumBerry:        "lum-berry",
	WhiteHerb:       "white-herb",
	FlameOrb:        "flame-orb",
	ToxicOrb:        "toxic-orb",
	BlackSludge:     "black-sludge",
	MuscleBand:      "muscle-band",
	WiseGlasses:     "wise-glasses",
	PunchingGlove:   "punching-glove",
	LoadedDice:      "loaded-dice",
	ScopeLens:       "scope-lens",
	QuickClaw:       "quick-claw",
	SilkScarf:       "silk-scarf",
	Charcoal:        "charcoal",
	MysticWater:     "mystic-water",
	Magnet:          "magnet",
	MiracleSeed:     "miracle-seed",
	NeverMeltIce:    "never-melt-ice",
	BlackBelt:       "black-belt",
	PoisonBarb:      "poison-barb",
	SoftSand:        "soft-sand",
	SharpBeak:       "sharp-beak",
	TwistedSpoon:    "twisted-spoon",
	SilverPowder:    "silver-powder",
	HardStone:       "hard-stone",
	SpellTag:        "spell-tag",
	DragonFang:      "dragon-fang",
	BlackGlasses:    "black-glasses",
	MetalCoat:       "metal-coat",
	FairyFeather:    "fairy-feather",
	TealMask:        "teal-mask",
	HearthflameMask: "hearthflame-mask",
	WellspringMask:  "wellspring-mask",
	CornerstoneMask: "cornerstone-mask",
	ChilanBerry:     "chilan-berry",
	OccaBerry:       "occa-berry",
	PasshoBerry:     "passho-berry",
	WacanBerry:      "wacan-berry",
	RindoBerry:      "rindo-berry",
	YacheBerry:      "yache-berry",
	ChopleBerry:     "chople-berry",
	KebiaBerry:      "kebia-berry",
	ShucaBerry:      "shuca-berry",
	CobaBerry:       "coba-berry",
	PayapaBerry:     "payapa-berry",
	TangaBerry:      "tanga-berry",
	ChartiBerry:     "charti-berry",
	KasibBerry:      "kasib-berry",
	HabanBerry:      "haban-berry",
	ColburBerry:     "colbur-berry",
	BabiriBerry:     "babiri-berry",
	RoseliBerry:     "roseli-berry",
}

var typeBoostItems = map[Item]Type{
	SilkScarf:    TypeNormal,
	Charcoal:     TypeFire,
	MysticWater:  TypeWater,
	Magnet:       TypeElectric,
	MiracleSeed:  TypeGrass,
	NeverMeltIce: TypeIce,
	BlackBelt:    TypeFighting,
	PoisonBarb:   TypePoison,
	SoftSand:     TypeGround,
	SharpBeak:    TypeFlying,
	TwistedSpoon: TypePsychic,
	SilverPowder: TypeBug,
	HardStone:    TypeRock,
	SpellTag:     TypeGhost,
	DragonFang:   TypeDragon,
	BlackGlasses: TypeDark,
	MetalCoat:    TypeSteel,
	FairyFeather: TypeFairy,
}

var resistBerries = map[Item]Type{
	ChilanBerry: TypeNormal,
	OccaBerry:   TypeFire,
	PasshoBerry: TypeWater,
	WacanBerry:  TypeElectric,
	RindoBerry:  TypeGrass,
	YacheBerry:  TypeIce,
	ChopleBerry: TypeFighting,
	KebiaBerry:  TypePoison,
	ShucaBerry:  TypeGround,
	CobaBerry:   TypeFlying,
	PayapaBerry: TypePsychic,
	TangaBerry:  TypeBug,
	ChartiBerry: TypeRock,
	KasibBerry:  TypeGhost,
	HabanBerry:  TypeDragon,
	ColburBerry: TypeDark,
	BabiriBerry: TypeSteel,
	RoseliBerry: TypeFairy,
}

var maskTypes = map[Item]Type{
	TealMask:        TypeGrass,
	HearthflameMask: TypeFire,
	WellspringMask:  TypeWater,
	CornerstoneMask: TypeRock,
}

// NormalizeName lower-cases a display name into the hyphenated id form:
// "Choice Band" -> "choice-band", "Mind's Eye" -> "minds-eye".
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("'", "", "’", "", ".", "", "_", "-", " ", "-").Replace(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// compactName drops everything but letters and digits ("choiceband"),
// matching the ids used by usage-statistics dumps.
func compactName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var itemsByCompact = func() map[string]Item {
	m := make(map[string]Item, itemCount)
	for i := ItemNone + 1; i < itemCount; i++ {
		m[compactName(itemNames[i])] = i
	}
	return m
}()

// ParseItem accepts display names, hyphenated ids and compact ids.
func ParseItem(s string) (Item, error) {
	if strings.TrimSpace(s) == "" || strings.EqualFold(strings.TrimSpace(s), "none") {
		return ItemNone, nil
	}
	if it, ok := itemsByCompact[compactName(s)]; ok {
		return it, nil
	}
	return ItemNone, fmt.Errorf("%q: %w", s, ErrUnknownItem)
}

func (i Item) String() string {
	if i == ItemNone || i >= itemCount {
		return "none"
	}
	return itemNames[i]
}

// BoostedType returns the type a type-boosting item powers up.
func (i Item) BoostedType() (Type, bool) {
	t, ok := typeBoostItems[i]
	return t, ok
}

// MaskType returns the Tera type tied to an Ogerpon mask.
func (i Item) MaskType() (Type, bool) {
	t, ok := maskTypes[i]
	return t, ok
}

// ResistedType returns the type a resistance berry weakens.
func (i Item) ResistedType() (Type, bool) {
	t, ok := resistBerries[i]
	return t, ok
}

func (i Item) MarshalText() ([]byte, error) {
	if i >= itemCount {
		return nil, fmt.Errorf("item %d: %w", i, ErrUnknownItem)
	}
	return []byte(itemNames[i]), nil
}

func (i *Item) UnmarshalText(b []byte) error {
	parsed, err := ParseItem(string(b))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
