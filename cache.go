package taxmate

import (
	"sync"
	"time"
)

// StatsCache keeps the waitlist count in memory for ttl so the landing page
// does not hit SQLite on every view.
type StatsCache struct {
	mu       sync.RWMutex
	count    int
	loaded   bool
	fetched  time.Time
	ttl      time.Duration
	capacity int
	store    *Store
}

// NewStatsCache creates a StatsCache backed by the given Store. capacity is
// the number of lifetime-deal spots reported by Stats.
func NewStatsCache(s *Store, ttl time.Duration, capacity int) *StatsCache {
	return &StatsCache{store: s, ttl: ttl, capacity: capacity}
}

func (c *StatsCache) valid() bool {
	return c.loaded && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *StatsCache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
}

// Stats returns the cached waitlist summary, reloading it when stale.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *StatsCache) Stats() (WaitlistStats, error) {
	c.mu.RLock()
	if c.valid() {
		n := c.count
		c.mu.RUnlock()
		return c.summarize(n), nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		n, err := c.store.CountSignups()
		if err != nil {
			return WaitlistStats{}, err
		}
		c.count = n
		c.loaded = true
		c.fetched = time.Now()
	}
	return c.summarize(c.count), nil
}

func (c *StatsCache) summarize(joined int) WaitlistStats {
	left := c.capacity - joined
	if left < 0 {
		left = 0
	}
	return WaitlistStats{Joined: joined, Capacity: c.capacity, SpotsLeft: left}
}
