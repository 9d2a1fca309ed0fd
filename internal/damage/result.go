package damage

import "fmt"

// Result holds the 16 damage rolls of one hit (all hits summed for
// multi-hit moves) and the derived figures.
type Result struct {
	Move       string         `json:"move"`
	Rolls      [RollCount]int `json:"rolls"`
	DefenderHP int            `json:"defender_hp"`
	MinDamage  int            `json:"min_damage"`
	MaxDamage  int            `json:"max_damage"`
	MinPercent float64        `json:"min_percent"`
	MaxPercent float64        `json:"max_percent"`
	// KORolls counts rolls that reach the defender's HP.
	KORolls int `json:"ko_rolls"`

	Immune       bool   `json:"immune,omitempty"`
	ImmuneReason string `json:"immune_reason,omitempty"`
	Status       bool   `json:"status,omitempty"`

	HitCount      int      `json:"hit_count"`
	AttackStat    int      `json:"attack_stat"`
	DefenseStat   int      `json:"defense_stat"`
	Power         int      `json:"power"`
	Effectiveness float64  `json:"effectiveness"`
	Applied       []string `json:"applied,omitempty"`
}

// Percent converts damage into a share of hp with one decimal,
// floor(damage*1000/hp)/10.
func Percent(dmg, hp int) float64 {
	if hp <= 0 {
		return 0
	}
	return float64(dmg*1000/hp) / 10
}

func (r Result) immune(reason string) Result {
	r.Immune = true
	r.ImmuneReason = reason
	return r.finish()
}

func (r Result) finish() Result {
	r.MinDamage, r.MaxDamage = r.Rolls[0], r.Rolls[RollCount-1]
	r.MinPercent = Percent(r.MinDamage, r.DefenderHP)
	r.MaxPercent = Percent(r.MaxDamage, r.DefenderHP)
	r.KORolls = 0
	for _, d := range r.Rolls {
		if d >= r.DefenderHP {
			r.KORolls++
		}
	}
	return r
}

// Deals reports whether the hit does any damage at all.
func (r Result) Deals() bool {
	return !r.Immune && !r.Status
}

// KOChance describes the hit in damage-calc terms.
func (r Result) KOChance() string {
	switch {
	case r.Immune:
		return "immune"
	case r.Status:
		return "no damage"
	case r.KORolls == RollCount:
		return "guaranteed OHKO"
	case r.KORolls > 0:
		return fmt.Sprintf("%.1f%% chance to OHKO", float64(r.KORolls)*100/RollCount)
	}
	if r.MinDamage <= 0 {
		return "no damage"
	}
	hits := (r.DefenderHP + r.MaxDamage - 1) / r.MaxDamage
	worst := (r.DefenderHP + r.MinDamage - 1) / r.MinDamage
	if hits == worst {
		return fmt.Sprintf("guaranteed %dHKO", hits)
	}
	return fmt.Sprintf("possible %dHKO", hits)
}

// String renders "Move: 80-95 (40.2 - 47.7%) -- possible 3HKO".
func (r Result) String() string {
	return fmt.Sprintf("%s: %d-%d (%.1f - %.1f%%) -- %s",
		r.Move, r.MinDamage, r.MaxDamage, r.MinPercent, r.MaxPercent, r.KOChance())
}
