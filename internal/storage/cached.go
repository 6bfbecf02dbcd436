package storage

import (
	"log"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedKV is a read-through, write-through LRU in front of another KV.
type CachedKV struct {
	inner KV
	cache *lru.Cache[string, string]
}

func NewCachedKV(inner KV, size int) *CachedKV {
	if size <= 0 {
		size = 64
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	return &CachedKV{inner: inner, cache: c}
}

func (c *CachedKV) Get(key string) (string, error) {
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}
	v, err := c.inner.Get(key)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, v)
	return v, nil
}

func (c *CachedKV) Set(key, value string) error {
	if err := c.inner.Set(key, value); err != nil {
		// the backend may hold either value now
		c.cache.Remove(key)
		return err
	}
	c.cache.Add(key, value)
	return nil
}

func (c *CachedKV) Remove(key string) error {
	c.cache.Remove(key)
	return c.inner.Remove(key)
}

// Len reports how many keys are cached.
func (c *CachedKV) Len() int {
	return c.cache.Len()
}
