package damage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

// physicalAttacker has 178 Attack (base 110, Adamant, 252 EVs).
func physicalAttacker() model.PokemonBuild {
	b := model.NewBuild("attacker", stats.BaseStats{HP: 80, Attack: 110, Defense: 80, SpecialAttack: 110, SpecialDefense: 80, Speed: 100}, model.TypeFighting)
	b.Nature = stats.Adamant
	b.EVs = stats.Spread{Attack: 252}
	return b
}

// specialAttacker has 178 Sp. Atk (base 110, Modest, 252 EVs).
func specialAttacker() model.PokemonBuild {
	b := physicalAttacker()
	b.Nature = stats.Modest
	b.EVs = stats.Spread{SpecialAttack: 252}
	return b
}

// defender has 170 HP, 110 Def and 110 SpD.
func defender(types ...model.Type) model.PokemonBuild {
	return model.NewBuild("defender", stats.BaseStats{HP: 95, Attack: 100, Defense: 90, SpecialAttack: 80, SpecialDefense: 90, Speed: 60}, types...)
}

var (
	normalHit   = model.Move{Name: "Strike", Type: model.TypeNormal, Category: model.Physical, Power: 100}
	fightingHit = model.Move{Name: "Punch", Type: model.TypeFighting, Category: model.Physical, Power: 100}
	spreadHit   = model.Move{Name: "Quake", Type: model.TypeFighting, Category: model.Physical, Power: 100, IsSpread: true}
	weakHit     = model.Move{Name: "Jab", Type: model.TypeFighting, Category: model.Physical, Power: 40}
	specialHit  = model.Move{Name: "Beam", Type: model.TypeNormal, Category: model.Special, Power: 100}
	psyshock    = model.Move{Name: "Psyshock", Type: model.TypeNormal, Category: model.Special, Power: 100, TargetsDefense: true}
	multiHit    = model.Move{Name: "Flurry", Type: model.TypeFighting, Category: model.Physical, Power: 25, MinHits: 2, MaxHits: 5}
	groundHit   = model.Move{Name: "Dig", Type: model.TypeGround, Category: model.Physical, Power: 100}
)

func TestCalculate_BaseRolls(t *testing.T) {
	res := Calculate(physicalAttacker(), defender(model.TypeWater), normalHit, Modifiers{})

	want := [RollCount]int{62, 62, 63, 64, 64, 65, 66, 67, 67, 68, 69, 70, 70, 71, 72, 73}
	assert.Equal(t, want, res.Rolls)
	assert.Equal(t, 170, res.DefenderHP)
	assert.Equal(t, 178, res.AttackStat)
	assert.Equal(t, 110, res.DefenseStat)
	assert.Equal(t, 36.4, res.MinPercent)
	assert.Equal(t, 42.9, res.MaxPercent)
	assert.Zero(t, res.KORolls)
	assert.Equal(t, "guaranteed 3HKO", res.KOChance())
}

func TestCalculate_Golden(t *testing.T) {
	water := defender(model.TypeWater)

	tests := []struct {
		name    string
		att     model.PokemonBuild
		def     model.PokemonBuild
		move    model.Move
		mods    Modifiers
		wantMax int
	}{
		{"no stab", physicalAttacker(), water, normalHit, Modifiers{}, 73},
		{"stab", physicalAttacker(), water, fightingHit, Modifiers{}, 109},
		{"stab super effective", physicalAttacker(), defender(model.TypeNormal), fightingHit, Modifiers{}, 218},
		{"spread in doubles", physicalAttacker(), water, spreadHit, Modifiers{MultipleTargets: true}, 81},
		{"spread single target", physicalAttacker(), water, spreadHit, Modifiers{}, 109},
		{"spread in singles", physicalAttacker(), water, spreadHit, Modifiers{Singles: true, MultipleTargets: true}, 109},
		{"critical", physicalAttacker(), water, fightingHit, Modifiers{Critical: true}, 163},
		{"reflect in doubles", physicalAttacker(), water, fightingHit, Modifiers{Reflect: true}, 72},
		{"reflect ignored on crit", physicalAttacker(), water, fightingHit, Modifiers{Reflect: true, Critical: true}, 163},
		{"light screen ignores physical", physicalAttacker(), water, fightingHit, Modifiers{LightScreen: true}, 109},
		{"helping hand", physicalAttacker(), water, fightingHit, Modifiers{HelpingHand: true}, 163},
		{"sword of ruin", physicalAttacker(), water, normalHit, Modifiers{SwordOfRuin: true}, 97},
		{"beads of ruin ignores physical", physicalAttacker(), water, normalHit, Modifiers{BeadsOfRuin: true}, 73},
		{"multiscale", physicalAttacker(), water, fightingHit, Modifiers{DefenderAbility: model.Multiscale}, 54},
		{"multiscale broken", physicalAttacker(), water, fightingHit, Modifiers{DefenderAbility: model.Multiscale, DefenderDamaged: true}, 109},
		{"tera shell", physicalAttacker(), defender(model.TypeNormal), fightingHit, Modifiers{DefenderAbility: model.TeraShell}, 54},
		{"tera shell keeps resist", physicalAttacker(), defender(model.TypePoison), fightingHit, Modifiers{DefenderAbility: model.TeraShell}, 54},
		{"tera shell keeps double resist", physicalAttacker(), defender(model.TypePoison, model.TypeFlying), fightingHit, Modifiers{DefenderAbility: model.TeraShell}, 27},
		{"attack drop", physicalAttacker(), water, normalHit, Modifiers{AttackStage: -1}, 49},
		{"crit ignores attack drop", physicalAttacker(), water, fightingHit, Modifiers{AttackStage: -1, Critical: true}, 163},
		{"defense boost", physicalAttacker(), water, normalHit, Modifiers{DefenseStage: 1}, 49},
		{"crit ignores defense boost", physicalAttacker(), water, fightingHit, Modifiers{DefenseStage: 1, Critical: true}, 163},
		{"unaware defender", physicalAttacker(), water, normalHit, Modifiers{AttackStage: 2, DefenderAbility: model.Unaware}, 73},
		{"choice band", physicalAttacker(), water, fightingHit, Modifiers{AttackerItem: model.ChoiceBand}, 162},
		{"burn", physicalAttacker(), water, fightingHit, Modifiers{AttackerBurned: true}, 54},
		{"guts ignores burn", physicalAttacker(), water, fightingHit, Modifiers{AttackerBurned: true, AttackerAbility: model.Guts}, 162},
		{"tera into own type", physicalAttacker(), water, fightingHit, Modifiers{AttackerTera: model.TypeFighting, AttackerTeraActive: true}, 146},
		{"adaptability tera", physicalAttacker(), water, fightingHit, Modifiers{AttackerTera: model.TypeFighting, AttackerTeraActive: true, AttackerAbility: model.Adaptability}, 164},
		{"tera into new type", physicalAttacker(), water, normalHit, Modifiers{AttackerTera: model.TypeNormal, AttackerTeraActive: true}, 109},
		{"original stab kept after tera", physicalAttacker(), water, fightingHit, Modifiers{AttackerTera: model.TypeNormal, AttackerTeraActive: true}, 109},
		{"weak move", physicalAttacker(), water, weakHit, Modifiers{}, 45},
		{"tera raises weak move to 60", physicalAttacker(), water, weakHit, Modifiers{AttackerTera: model.TypeFighting, AttackerTeraActive: true}, 88},
		{"assault vest", specialAttacker(), water, specialHit, Modifiers{DefenderItem: model.AssaultVest}, 49},
		{"psyshock ignores assault vest", specialAttacker(), water, psyshock, Modifiers{DefenderItem: model.AssaultVest}, 73},
		{"multi-hit", physicalAttacker(), water, multiHit, Modifiers{}, 140},
		{"technician multi-hit", physicalAttacker(), water, multiHit, Modifiers{AttackerAbility: model.Technician}, 210},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Calculate(tt.att, tt.def, tt.move, tt.mods)
			if res.MaxDamage != tt.wantMax {
				t.Errorf("MaxDamage = %d, want %d (applied %v)", res.MaxDamage, tt.wantMax, res.Applied)
			}
		})
	}
}

// Rolls below follow the in-game order, where the random factor is applied
// right after the critical hit and before STAB, with round-half-down
// between steps. Without a modifier after that point both orders give the
// same 16 values, so these vectors pin the whole distribution and not only
// the ceiling.
func TestCalculate_GameOrderRolls(t *testing.T) {
	tackle := model.Move{Name: "Tackle", Type: model.TypeNormal, Category: model.Physical, Power: 40}
	water := defender(model.TypeWater)

	tests := []struct {
		name   string
		att    model.PokemonBuild
		move   model.Move
		mods   Modifiers
		want   [RollCount]int
		minPct float64
		maxPct float64
	}{
		{
			name: "critical", att: physicalAttacker(), move: normalHit, mods: Modifiers{Critical: true},
			want:   [RollCount]int{92, 93, 94, 95, 97, 98, 99, 100, 101, 102, 103, 104, 105, 106, 107, 109},
			minPct: 54.1, maxPct: 64.1,
		},
		{
			// 110 Def drops to 82.
			name: "sword of ruin", att: physicalAttacker(), move: normalHit, mods: Modifiers{SwordOfRuin: true},
			want:   [RollCount]int{82, 83, 84, 85, 86, 87, 88, 89, 90, 91, 92, 93, 94, 95, 96, 97},
			minPct: 48.2, maxPct: 57.0,
		},
		{
			name: "defense +1", att: physicalAttacker(), move: normalHit, mods: Modifiers{DefenseStage: 1},
			want:   [RollCount]int{41, 42, 42, 43, 43, 44, 44, 45, 45, 46, 46, 47, 47, 48, 48, 49},
			minPct: 24.1, maxPct: 28.8,
		},
		{
			name: "attack -1", att: physicalAttacker(), move: normalHit, mods: Modifiers{AttackStage: -1},
			want:   [RollCount]int{41, 42, 42, 43, 43, 44, 44, 45, 45, 46, 46, 47, 47, 48, 48, 49},
			minPct: 24.1, maxPct: 28.8,
		},
		{
			name: "assault vest", att: specialAttacker(), move: specialHit, mods: Modifiers{DefenderItem: model.AssaultVest},
			want:   [RollCount]int{41, 42, 42, 43, 43, 44, 44, 45, 45, 46, 46, 47, 47, 48, 48, 49},
			minPct: 24.1, maxPct: 28.8,
		},
		{
			name: "40 bp", att: physicalAttacker(), move: tackle,
			want:   [RollCount]int{25, 25, 26, 26, 26, 27, 27, 27, 27, 28, 28, 28, 29, 29, 29, 30},
			minPct: 14.7, maxPct: 17.6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Calculate(tt.att, water, tt.move, tt.mods)
			assert.Equal(t, tt.want, res.Rolls)
			assert.Equal(t, tt.minPct, res.MinPercent)
			assert.Equal(t, tt.maxPct, res.MaxPercent)
		})
	}
}

func TestCalculate_MultiHitCount(t *testing.T) {
	res := Calculate(physicalAttacker(), defender(model.TypeWater), multiHit, Modifiers{})
	assert.Equal(t, 5, res.HitCount)
	assert.Equal(t, 119, res.MinDamage)

	res = Calculate(physicalAttacker(), defender(model.TypeWater), multiHit, Modifiers{Hits: 3})
	assert.Equal(t, 3, res.HitCount)
	assert.Equal(t, 84, res.MaxDamage)

	res = Calculate(physicalAttacker(), defender(model.TypeWater), multiHit, Modifiers{Hits: 1})
	assert.Equal(t, 2, res.HitCount, "clamped to MinHits")
}

func TestCalculate_RollsFollowMax(t *testing.T) {
	cases := []struct {
		move model.Move
		mods Modifiers
	}{
		{normalHit, Modifiers{}},
		{fightingHit, Modifiers{Critical: true, HelpingHand: true}},
		{spreadHit, Modifiers{MultipleTargets: true, Reflect: true}},
		{multiHit, Modifiers{}},
		{weakHit, Modifiers{DefenderAbility: model.Multiscale, AuroraVeil: true}},
	}
	for _, c := range cases {
		t.Run(c.move.Name, func(t *testing.T) {
			res := Calculate(physicalAttacker(), defender(model.TypeWater, model.TypeSteel), c.move, c.mods)
			maxRoll := res.Rolls[RollCount-1]
			for i, got := range res.Rolls {
				want := max(1, maxRoll*(85+i)/100)
				if got != want {
					t.Errorf("Rolls[%d] = %d, want %d", i, got, want)
				}
				if i > 0 {
					assert.GreaterOrEqual(t, got, res.Rolls[i-1])
				}
			}
		})
	}
}

func TestCalculate_MinimumDamage(t *testing.T) {
	weak := model.NewBuild("weak", stats.BaseStats{HP: 1, Attack: 5, Defense: 5, SpecialAttack: 5, SpecialDefense: 5, Speed: 5}, model.TypeNormal)
	weak.IVs = stats.Spread{}
	wall := defender(model.TypeSteel, model.TypeRock)
	wall.EVs = stats.Spread{HP: 252, Defense: 252}

	res := Calculate(weak, wall, model.Move{Name: "Tap", Type: model.TypeBug, Category: model.Physical, Power: 10}, Modifiers{})
	for i, d := range res.Rolls {
		assert.GreaterOrEqual(t, d, 1, "roll %d", i)
	}
}

func TestCalculate_Immunities(t *testing.T) {
	tests := []struct {
		name       string
		def        model.PokemonBuild
		move       model.Move
		mods       Modifiers
		wantImmune bool
		wantReason string
	}{
		{"levitate", defender(model.TypeWater), groundHit, Modifiers{DefenderAbility: model.Levitate}, true, "levitate"},
		{"mold breaker bypasses levitate", defender(model.TypeWater), groundHit, Modifiers{DefenderAbility: model.Levitate, AttackerAbility: model.MoldBreaker}, false, ""},
		{"air balloon", defender(model.TypeWater), groundHit, Modifiers{DefenderItem: model.AirBalloon}, true, "air-balloon"},
		{"flying type", defender(model.TypeFlying), groundHit, Modifiers{}, true, "type"},
		{"tera flying", defender(model.TypeWater), groundHit, Modifiers{DefenderTera: model.TypeFlying, DefenderTeraActive: true}, true, "type"},
		{"tera stellar keeps types", defender(model.TypeFlying), groundHit, Modifiers{DefenderTera: model.TypeStellar, DefenderTeraActive: true}, true, "type"},
		{"tera removes immunity", defender(model.TypeFlying), groundHit, Modifiers{DefenderTera: model.TypeWater, DefenderTeraActive: true}, false, ""},
		{"ghost", defender(model.TypeGhost), normalHit, Modifiers{}, true, "type"},
		{"scrappy hits ghost", defender(model.TypeGhost), normalHit, Modifiers{AttackerAbility: model.Scrappy}, false, ""},
		{"water absorb", defender(model.TypeGround), model.Move{Name: "Surf", Type: model.TypeWater, Category: model.Special, Power: 90}, Modifiers{DefenderAbility: model.WaterAbsorb}, true, "water-absorb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Calculate(physicalAttacker(), tt.def, tt.move, tt.mods)
			assert.Equal(t, tt.wantImmune, res.Immune)
			assert.Equal(t, tt.wantReason, res.ImmuneReason)
			if tt.wantImmune {
				assert.Zero(t, res.MaxDamage)
				assert.Equal(t, "immune", res.KOChance())
			} else {
				assert.Positive(t, res.MaxDamage)
			}
		})
	}
}

func TestCalculate_ScrappyDamage(t *testing.T) {
	res := Calculate(physicalAttacker(), defender(model.TypeGhost), normalHit, Modifiers{AttackerAbility: model.Scrappy})
	assert.Equal(t, 73, res.MaxDamage)
}

func TestCalculate_StatusMove(t *testing.T) {
	res := Calculate(physicalAttacker(), defender(model.TypeWater), model.Move{Name: "Protect", Category: model.Status}, Modifiers{})
	assert.True(t, res.Status)
	assert.False(t, res.Deals())
	assert.Equal(t, "no damage", res.KOChance())
}

func TestCalculate_RuinHolderUnaffected(t *testing.T) {
	base := Calculate(physicalAttacker(), defender(model.TypeWater), normalHit, Modifiers{})
	holder := Calculate(physicalAttacker(), defender(model.TypeWater), normalHit, Modifiers{SwordOfRuin: true, DefenderAbility: model.SwordOfRuin})
	assert.Equal(t, base.MaxDamage, holder.MaxDamage)

	lowered := Calculate(physicalAttacker(), defender(model.TypeWater), normalHit, Modifiers{TabletsOfRuin: true})
	assert.Less(t, lowered.MaxDamage, base.MaxDamage)
	own := Calculate(physicalAttacker(), defender(model.TypeWater), normalHit, Modifiers{TabletsOfRuin: true, AttackerAbility: model.TabletsOfRuin})
	assert.Equal(t, base.MaxDamage, own.MaxDamage)
}

func TestCalculate_ModifiersFromBuilds(t *testing.T) {
	att := physicalAttacker()
	att.Item = model.ChoiceBand
	def := defender(model.TypeWater)
	def.Ability = model.Multiscale

	res := Calculate(att, def, fightingHit, Modifiers{})
	assert.Equal(t, 81, res.MaxDamage)
	require.Contains(t, res.Applied, "multiscale")
}

func TestRuinFromAbility(t *testing.T) {
	assert.True(t, Modifiers{}.RuinFromAbility(model.SwordOfRuin).SwordOfRuin)
	assert.True(t, Modifiers{}.RuinFromAbility(model.BeadsOfRuin).BeadsOfRuin)
	assert.True(t, Modifiers{}.RuinFromAbility(model.TabletsOfRuin).TabletsOfRuin)
	assert.True(t, Modifiers{}.RuinFromAbility(model.VesselOfRuin).VesselOfRuin)
	assert.Equal(t, Modifiers{}, Modifiers{}.RuinFromAbility(model.Intimidate))
}

func TestKOChance(t *testing.T) {
	rollsFrom := func(maxRoll int) [RollCount]int {
		var r [RollCount]int
		for i := range r {
			r[i] = maxRoll * (85 + i) / 100
		}
		return r
	}
	tests := []struct {
		name    string
		hp      int
		maxRoll int
		want    string
	}{
		{"guaranteed", 80, 100, "guaranteed OHKO"},
		{"partial", 97, 100, "25.0% chance to OHKO"},
		{"guaranteed 3hko", 100, 47, "guaranteed 3HKO"},
		{"possible 2hko", 100, 50, "possible 2HKO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Result{DefenderHP: tt.hp, Rolls: rollsFrom(tt.maxRoll)}.finish()
			assert.Equal(t, tt.want, r.KOChance())
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 42.9, Percent(73, 170))
	assert.Equal(t, 100.0, Percent(170, 170))
	assert.Equal(t, 0.0, Percent(10, 0))
}

func TestParseWeatherTerrain(t *testing.T) {
	w, err := ParseWeather("Sun")
	require.NoError(t, err)
	assert.Equal(t, Sun, w)
	w, err = ParseWeather("")
	require.NoError(t, err)
	assert.Equal(t, WeatherNone, w)
	_, err = ParseWeather("hail storm")
	assert.ErrorIs(t, err, ErrUnknownWeather)

	tr, err := ParseTerrain("psychic-terrain")
	require.NoError(t, err)
	assert.Equal(t, PsychicTerrain, tr)
	_, err = ParseTerrain("lava")
	assert.ErrorIs(t, err, ErrUnknownTerrain)
}
