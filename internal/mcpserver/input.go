package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/erraggy/oasgen/config"
	"github.com/erraggy/oasgen/generator"
)

// cacheEntry holds a generator for one configuration file version.
type cacheEntry struct {
	gen       *generator.Generator
	cfg       *config.Config
	expiresAt time.Time
}

// generatorCache keeps generators per session. Entries are keyed by the
// absolute configuration path and its modification time, so an edited
// configuration is reloaded; the TTL bounds how long discovered marker
// files are reused.
type generatorCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

var genCache = &generatorCache{entries: make(map[string]*cacheEntry)}

func (c *generatorCache) get(key string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	return e
}

func (c *generatorCache) put(key string, e *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, old := range c.entries {
		if time.Now().After(old.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = e
}

func (c *generatorCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// loadProject loads the project configuration at path and returns its
// generator. An empty path uses cfg.ConfigFile.
func loadProject(path string) (*generator.Generator, *config.Config, error) {
	if path == "" {
		path = cfg.ConfigFile
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read config: %w", err)
	}
	key := fmt.Sprintf("%s@%d", abs, info.ModTime().UnixNano())
	if cfg.CacheEnabled {
		if e := genCache.get(key); e != nil {
			return e.gen, e.cfg, nil
		}
	}

	pc, err := config.Load(abs)
	if err != nil {
		return nil, nil, err
	}
	gen, err := generator.NewProject(pc)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CacheEnabled {
		genCache.put(key, &cacheEntry{gen: gen, cfg: pc, expiresAt: time.Now().Add(cfg.CacheTTL)})
	}
	return gen, pc, nil
}
