// Package cache provides caching for rendered swatches and LUT exports.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/allegro/bigcache/v3"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Config contains cache configuration.
type Config struct {
	SwatchCacheSizeMB int
	SwatchTTL         time.Duration
	LUTCacheSize      int
}

// Manager manages the swatch and LUT caches.
type Manager struct {
	swatchCache *bigcache.BigCache
	lutCache    *lru.Cache[string, []byte]
}

// NewManager creates a new cache manager.
func NewManager(cfg Config) (*Manager, error) {
	swatchCacheConfig := bigcache.Config{
		Shards:             256,
		LifeWindow:         cfg.SwatchTTL,
		CleanWindow:        cfg.SwatchTTL / 2,
		MaxEntriesInWindow: 10000,
		MaxEntrySize:       256 * 1024, // 256KB per swatch
		HardMaxCacheSize:   cfg.SwatchCacheSizeMB,
		Verbose:            false,
	}

	swatchCache, err := bigcache.New(context.Background(), swatchCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create swatch cache: %w", err)
	}

	lutCache, err := lru.New[string, []byte](cfg.LUTCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create LUT cache: %w", err)
	}

	return &Manager{
		swatchCache: swatchCache,
		lutCache:    lutCache,
	}, nil
}

// GetSwatch retrieves a rendered swatch from cache.
func (m *Manager) GetSwatch(key string) ([]byte, bool) {
	data, err := m.swatchCache.Get(key)
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetSwatch stores a rendered swatch in cache.
func (m *Manager) SetSwatch(key string, data []byte) error {
	return m.swatchCache.Set(key, data)
}

// GetLUT retrieves a LUT export from cache.
func (m *Manager) GetLUT(key string) ([]byte, bool) {
	return m.lutCache.Get(key)
}

// SetLUT stores a LUT export in cache.
func (m *Manager) SetLUT(key string, data []byte) {
	m.lutCache.Add(key, data)
}

// SwatchKey generates a cache key for a rendered swatch. Transform
// parameters are hashed in sorted order so the key is stable.
func SwatchKey(name string, params map[string]string) string {
	base := "swatch:" + name
	if len(params) == 0 {
		return base
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(base))
	for _, k := range keys {
		h.Write([]byte(fmt.Sprintf("%s=%s", k, params[k])))
	}
	return base + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}

// LUTKey generates a cache key for a LUT export.
func LUTKey(name string, n int) string {
	return fmt.Sprintf("lut:%s:%d", name, n)
}

// Stats returns cache statistics.
func (m *Manager) Stats() map[string]interface{} {
	return map[string]interface{}{
		"swatch_cache_len": m.swatchCache.Len(),
		"swatch_cache_cap": m.swatchCache.Capacity(),
		"lut_cache_len":    m.lutCache.Len(),
	}
}

// Close closes the cache manager.
func (m *Manager) Close() error {
	return m.swatchCache.Close()
}
