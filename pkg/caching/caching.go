package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache stores fetched snapshot HTML on disk, keyed by snapshot URL, with a TTL.
// A nil *Cache is valid and never hits.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a Cache rooted at path. A zero ttl disables caching and
// returns a nil Cache.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		return nil, nil
	}
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// key hashes the snapshot URL into a file name.
func (c *Cache) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.html", hash)
}

// Get returns the cached body for url if present and younger than the TTL.
func (c *Cache) Get(url string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	filePath := filepath.Join(c.path, c.key(url))

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores body for url. It is a no-op on a nil Cache.
func (c *Cache) Set(url string, body []byte) error {
	if c == nil {
		return nil
	}
	filePath := filepath.Join(c.path, c.key(url))
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, body, 0600); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		return fmt.Errorf("failed to commit cache entry: %w", err)
	}
	return nil
}
