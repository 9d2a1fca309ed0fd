package optimizer

import (
	"github.com/udisondev/vgcspread/internal/damage"
	"github.com/udisondev/vgcspread/internal/model"
	"github.com/udisondev/vgcspread/internal/stats"
)

type cacheKey struct {
	threat int
	hp     int
	def    int
	spd    int
	nature stats.Nature
	tera   model.Type
}

// damageCache memoises damage results of one nature evaluation. It is
// owned by a single goroutine and never shared, so it has no lock.
type damageCache struct {
	entries map[cacheKey]damage.Result
	hits    int
	misses  int
}

func newDamageCache() *damageCache {
	return &damageCache{entries: make(map[cacheKey]damage.Result, 256)}
}

func (c *damageCache) get(key cacheKey, compute func() damage.Result) damage.Result {
	if res, ok := c.entries[key]; ok {
		c.hits++
		return res
	}
	c.misses++
	res := compute()
	c.entries[key] = res
	return res
}

func (c *damageCache) size() int {
	return len(c.entries)
}
