package geocode

import (
	"sync"

	"github.com/lysyi3m/event-comb/app/event"
)

// Cache memoizes geocoding results by exact address string for the
// process lifetime. Venue names are low-cardinality, so there is no
// eviction. Constructed once and passed to the geocoder so tests get a
// fresh cache each.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]event.Coords
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]event.Coords)}
}

func (c *Cache) Get(address string) (event.Coords, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coords, ok := c.entries[address]
	return coords, ok
}

func (c *Cache) Set(address string, coords event.Coords) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[address] = coords
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
