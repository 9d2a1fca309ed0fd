package damage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

var (
	ErrUnknownWeather = errors.New("unknown weather")
	ErrUnknownTerrain = errors.New("unknown terrain")
)

// Weather in play.
type Weather uint8

const (
	WeatherNone Weather = iota
	Sun
	Rain
	Sand
	Snow
)

var weatherNames = [...]string{"", "sun", "rain", "sand", "snow"}

func (w Weather) String() string {
	if int(w) < len(weatherNames) && w != WeatherNone {
		return weatherNames[w]
	}
	return "none"
}

// ParseWeather accepts "sun", "rain", "sand", "snow" or "".
func ParseWeather(s string) (Weather, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" || key == "none" {
		return WeatherNone, nil
	}
	for i, n := range weatherNames {
		if n == key {
			return Weather(i), nil
		}
	}
	return WeatherNone, fmt.Errorf("%q: %w", s, ErrUnknownWeather)
}

func (w Weather) MarshalText() ([]byte, error) { return []byte(weatherNames[w%5]), nil }

func (w *Weather) UnmarshalText(b []byte) error {
	parsed, err := ParseWeather(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Terrain in play.
type Terrain uint8

const (
	TerrainNone Terrain = iota
	ElectricTerrain
	GrassyTerrain
	PsychicTerrain
	MistyTerrain
)

var terrainNames = [...]string{"", "electric", "grassy", "psychic", "misty"}

func (t Terrain) String() string {
	if int(t) < len(terrainNames) && t != TerrainNone {
		return terrainNames[t]
	}
	return "none"
}

// ParseTerrain accepts "electric", "grassy", "psychic", "misty" or "".
func ParseTerrain(s string) (Terrain, error) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-terrain")
	if key == "" || key == "none" {
		return TerrainNone, nil
	}
	for i, n := range terrainNames {
		if n == key {
			return Terrain(i), nil
		}
	}
	return TerrainNone, fmt.Errorf("%q: %w", s, ErrUnknownTerrain)
}

func (t Terrain) MarshalText() ([]byte, error) { return []byte(terrainNames[t%5]), nil }

func (t *Terrain) UnmarshalText(b []byte) error {
	parsed, err := ParseTerrain(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Modifiers is the battle-state flag bag for one hit. The zero value is a
// plain doubles hit with no field effects. Every flag only adds a
// multiplier; none of them excludes another.
type Modifiers struct {
	// Singles switches screens to the 0.5x singles value and disables the
	// spread reduction. Doubles is the default format.
	Singles bool `yaml:"singles" json:"singles,omitempty"`
	// MultipleTargets marks a spread move actually hitting two targets.
	MultipleTargets bool `yaml:"multiple_targets" json:"multiple_targets,omitempty"`

	AttackerItem    model.Item    `yaml:"attacker_item" json:"attacker_item,omitempty"`
	AttackerAbility model.Ability `yaml:"attacker_ability" json:"attacker_ability,omitempty"`
	DefenderItem    model.Item    `yaml:"defender_item" json:"defender_item,omitempty"`
	DefenderAbility model.Ability `yaml:"defender_ability" json:"defender_ability,omitempty"`

	AttackerTera       model.Type `yaml:"attacker_tera" json:"attacker_tera,omitempty"`
	AttackerTeraActive bool       `yaml:"attacker_tera_active" json:"attacker_tera_active,omitempty"`
	DefenderTera       model.Type `yaml:"defender_tera" json:"defender_tera,omitempty"`
	DefenderTeraActive bool       `yaml:"defender_tera_active" json:"defender_tera_active,omitempty"`

	Critical bool `yaml:"critical" json:"critical,omitempty"`

	SwordOfRuin   bool `yaml:"sword_of_ruin" json:"sword_of_ruin,omitempty"`
	BeadsOfRuin   bool `yaml:"beads_of_ruin" json:"beads_of_ruin,omitempty"`
	TabletsOfRuin bool `yaml:"tablets_of_ruin" json:"tablets_of_ruin,omitempty"`
	VesselOfRuin  bool `yaml:"vessel_of_ruin" json:"vessel_of_ruin,omitempty"`

	Weather          Weather `yaml:"weather" json:"weather,omitempty"`
	Terrain          Terrain `yaml:"terrain" json:"terrain,omitempty"`
	AttackerAirborne bool    `yaml:"attacker_airborne" json:"attacker_airborne,omitempty"`
	DefenderAirborne bool    `yaml:"defender_airborne" json:"defender_airborne,omitempty"`

	Reflect     bool `yaml:"reflect" json:"reflect,omitempty"`
	LightScreen bool `yaml:"light_screen" json:"light_screen,omitempty"`
	AuroraVeil  bool `yaml:"aurora_veil" json:"aurora_veil,omitempty"`

	HelpingHand bool `yaml:"helping_hand" json:"helping_hand,omitempty"`
	FriendGuard bool `yaml:"friend_guard" json:"friend_guard,omitempty"`

	AttackerBurned   bool `yaml:"attacker_burned" json:"attacker_burned,omitempty"`
	AttackerStatused bool `yaml:"attacker_statused" json:"attacker_statused,omitempty"`

	// Stat stages, -6..+6, on the stats used by this hit.
	AttackStage  int `yaml:"attack_stage" json:"attack_stage,omitempty"`
	DefenseStage int `yaml:"defense_stage" json:"defense_stage,omitempty"`

	// Protosynthesis / Quark Drive boosted stat; stats.HP means none.
	AttackerBoost stats.Stat `yaml:"-" json:"-"`
	DefenderBoost stats.Stat `yaml:"-" json:"-"`

	// DefenderDamaged disables full-HP effects (Multiscale, Tera Shell).
	DefenderDamaged bool `yaml:"defender_damaged" json:"defender_damaged,omitempty"`

	// Hits overrides the hit count of a multi-hit move; 0 means max hits.
	Hits int `yaml:"hits" json:"hits,omitempty"`
}

// RuinFromAbility switches on the field flag matching a Ruin ability.
func (m Modifiers) RuinFromAbility(a model.Ability) Modifiers {
	switch a {
	case model.SwordOfRuin:
		m.SwordOfRuin = true
	case model.BeadsOfRuin:
		m.BeadsOfRuin = true
	case model.TabletsOfRuin:
		m.TabletsOfRuin = true
	case model.VesselOfRuin:
		m.VesselOfRuin = true
	}
	return m
}

// withBuilds fills items, abilities and Tera from the builds when the
// modifiers leave them unset.
func (m Modifiers) withBuilds(att, def model.PokemonBuild) Modifiers {
	if m.AttackerItem == model.ItemNone {
		m.AttackerItem = att.Item
	}
	if m.DefenderItem == model.ItemNone {
		m.DefenderItem = def.Item
	}
	if m.AttackerAbility == model.AbilityNone {
		m.AttackerAbility = att.Ability
	}
	if m.DefenderAbility == model.AbilityNone {
		m.DefenderAbility = def.Ability
	}
	if m.AttackerTeraActive && m.AttackerTera == model.TypeNone {
		m.AttackerTera = att.TeraType
	}
	if m.DefenderTeraActive && m.DefenderTera == model.TypeNone {
		m.DefenderTera = def.TeraType
	}
	return m
}

func clampStage(s int) int {
	return max(-6, min(6, s))
}

// stageRatio returns the stat-stage multiplier as a fraction.
func stageRatio(stage int) (num, den int) {
	stage = clampStage(stage)
	if stage >= 0 {
		return 2 + stage, 2
	}
	return 2, 2 - stage
}
