package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// MetadataCache provides safe access to cached provider metadata.
type MetadataCache interface {
	Get(key string) (*Metadata, bool)
	Set(key string, meta *Metadata)
}

// MemoryCache is a MetadataCache that lives for a single run.
type MemoryCache struct {
	store *cache.Cache
}

// NewMemoryCache creates an in-process cache whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{store: cache.New(ttl, 2*ttl)}
}

// Get returns the cached metadata for key.
func (c *MemoryCache) Get(key string) (*Metadata, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	meta, ok := v.(*Metadata)
	return meta, ok
}

// Set stores meta under key with the default expiration.
func (c *MemoryCache) Set(key string, meta *Metadata) {
	c.store.Set(key, meta, cache.DefaultExpiration)
}

// Len reports the number of live entries.
func (c *MemoryCache) Len() int {
	return c.store.ItemCount()
}

// GenerateMetadataKey creates a unique key for caching metadata.
// Show names are compared case-insensitively so "family guy" and "Family Guy"
// share one lookup.
func GenerateMetadataKey(mediaType MediaType, name string, season, episode int) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch mediaType {
	case MediaTypeShow:
		return fmt.Sprintf("show:%s", name)
	case MediaTypeEpisode:
		return fmt.Sprintf("episode:%s:%d:%d", name, season, episode)
	default:
		return ""
	}
}
