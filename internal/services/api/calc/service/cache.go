package service

import (
	"sync"

	"brewprints/internal/services/api/calc/domain"
)

// reportCache memoizes water reports. The pipeline is pure, so a hit is
// byte-identical to recomputation. Keys are content hashes, never recipe
// name fingerprints: two recipes that normalize to the same numbers share
// an entry, two same-named recipes with different numbers never do
type reportCache struct {
	mu    sync.Mutex
	cap   int
	m     map[string]domain.WaterReport
	order []string // insertion order, evicted oldest first
}

func newReportCache(capacity int) *reportCache {
	if capacity <= 0 {
		return &reportCache{}
	}
	return &reportCache{
		cap:   capacity,
		m:     make(map[string]domain.WaterReport, capacity),
		order: make([]string, 0, capacity),
	}
}

func (c *reportCache) get(key string) (domain.WaterReport, bool) {
	if c.cap == 0 {
		return domain.WaterReport{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	rep, ok := c.m[key]
	return rep, ok
}

func (c *reportCache) put(key string, rep domain.WaterReport) {
	if c.cap == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[key]; ok {
		c.m[key] = rep
		return
	}
	if len(c.order) >= c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.m, oldest)
	}
	c.m[key] = rep
	c.order = append(c.order, key)
}

func (c *reportCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
