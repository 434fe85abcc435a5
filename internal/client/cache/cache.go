// Package cache keeps the last known value of every statistic the client has
// seen, keyed by statistic key and ordered by first appearance.
package cache

import (
	"sync"

	"github.com/edcasillas/globalstats/internal/client/models"
)

// Statistics is an ordered map from statistic key to its latest value.
// Entries are added or replaced, never removed. It is safe for concurrent use.
type Statistics struct {
	mu     sync.RWMutex
	values []models.StatisticValue
	pos    map[string]int
}

// New returns an empty cache.
func New() *Statistics {
	return &Statistics{pos: make(map[string]int)}
}

// Merge reconciles values into the cache. A value whose key is already present
// replaces the cached one in place; a new key is appended after existing keys.
func (c *Statistics) Merge(values []models.StatisticValue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range values {
		if i, ok := c.pos[v.Key]; ok {
			c.values[i] = v
			continue
		}
		c.pos[v.Key] = len(c.values)
		c.values = append(c.values, v)
	}
}

// Get returns the cached value for key.
func (c *Statistics) Get(key string) (models.StatisticValue, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.pos[key]
	if !ok {
		return models.StatisticValue{}, false
	}
	return c.values[i], true
}

// Snapshot returns a copy of the cached values in order.
func (c *Statistics) Snapshot() []models.StatisticValue {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.StatisticValue, len(c.values))
	copy(out, c.values)
	return out
}

// Len returns the number of cached keys.
func (c *Statistics) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}
