package optimizer

import "github.com/udisondev/vgcspread/internal/stats"

// Bulk-boosting natures come first: the nature is free while Speed EVs
// are cheap. Then offense-keeping +Spe natures, then -Spe natures.
var (
	physicalNatures = []stats.Nature{
		stats.Impish, stats.Careful, stats.Bold, stats.Calm,
		stats.Adamant, stats.Jolly, stats.Timid,
		stats.Brave, stats.Relaxed, stats.Sassy,
	}
	specialNatures = []stats.Nature{
		stats.Bold, stats.Calm, stats.Impish, stats.Careful,
		stats.Modest, stats.Timid, stats.Jolly,
		stats.Quiet, stats.Relaxed, stats.Sassy,
	}
)

// NatureCandidates returns the natures to try, in priority order.
// An explicit nature collapses the list to that nature.
func NatureCandidates(base stats.BaseStats, explicit stats.Nature) []stats.Nature {
	if explicit.Valid() {
		return []stats.Nature{explicit}
	}
	src := physicalNatures
	if base.SpecialAttack > base.Attack {
		src = specialNatures
	}
	out := make([]stats.Nature, len(src))
	copy(out, src)
	return out
}
