package prayer

import (
	"context"
	"sync"
	"time"

	"github.com/Umidjon1990/barakalivaqtbot-sub000/internal/domain"
)

// Cache memoizes region lookups per region+date so that many users in the
// same region cost one API call a day. Entries from previous days are dropped
// lazily on access. Coordinate lookups are per-user and are not cached.
type Cache struct {
	next Provider

	mu      sync.Mutex
	day     string // DayKey the cache is valid for
	regions map[string]*Times
}

// NewCache wraps a provider with a per-day region cache.
func NewCache(next Provider) *Cache {
	return &Cache{next: next, regions: make(map[string]*Times)}
}

func (c *Cache) ForRegion(ctx context.Context, region string, date time.Time) (*Times, error) {
	day := domain.DayKey(date)

	c.mu.Lock()
	if c.day != day {
		c.day = day
		c.regions = make(map[string]*Times)
	}
	if t, ok := c.regions[region]; ok {
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	// Fetch outside the lock; a duplicate fetch for the same region is
	// harmless and rare.
	t, err := c.next.ForRegion(ctx, region, date)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.day == day {
		c.regions[region] = t
	}
	c.mu.Unlock()
	return t, nil
}

func (c *Cache) ForCoordinates(ctx context.Context, lat, lon float64, date time.Time) (*Times, error) {
	return c.next.ForCoordinates(ctx, lat, lon, date)
}
