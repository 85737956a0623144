package extract

import (
	"sync"

	"github.com/tomkerrigan/fightstats-scraper/pkg/models"
)

// ProfileCache is a read-through cache in front of a ProfileSource, keyed by
// profile URL. Fighters appear on many cards; when fights are processed
// concurrently the cache keeps each profile to a single fetch. Failed lookups
// are not cached so transient fetch errors can recover on the next fight.
type ProfileCache struct {
	source ProfileSource

	mu       sync.Mutex
	profiles map[string]models.FighterSnapshot
}

// NewProfileCache wraps a profile source with caching.
func NewProfileCache(source ProfileSource) *ProfileCache {
	return &ProfileCache{
		source:   source,
		profiles: make(map[string]models.FighterSnapshot),
	}
}

// Profile returns the cached snapshot for a URL, fetching it on first use.
func (c *ProfileCache) Profile(url string) (models.FighterSnapshot, error) {
	c.mu.Lock()
	snapshot, ok := c.profiles[url]
	c.mu.Unlock()
	if ok {
		return snapshot, nil
	}

	snapshot, err := c.source.Profile(url)
	if err != nil {
		return models.FighterSnapshot{}, err
	}

	c.mu.Lock()
	c.profiles[url] = snapshot
	c.mu.Unlock()
	return snapshot, nil
}

// Len reports how many profiles are cached.
func (c *ProfileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.profiles)
}
