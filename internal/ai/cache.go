package ai

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"

	"adminui/internal/util/logx"
)

// Cache stores summaries on disk keyed by model and prompt, so re-opening the
// summary for an unchanged view does not call the API again.
type Cache struct {
	path string
	mu   sync.Mutex
	m    map[string]string
}

// NewCache opens the cache in the user cache directory.
func NewCache() *Cache {
	dir, _ := os.UserCacheDir()
	if dir == "" {
		dir = os.TempDir()
	}
	return NewCacheAt(filepath.Join(dir, "adminui", "summaries.json"))
}

func NewCacheAt(path string) *Cache {
	c := &Cache{path: path, m: map[string]string{}}
	c.load()
	return c
}

func (c *Cache) key(model, prompt string) string {
	h := fnv.New64a()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return fmt.Sprintf("%x", h.Sum64())
}

func (c *Cache) Get(model, prompt string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.m[c.key(model, prompt)]
	return s, ok
}

func (c *Cache) Put(model, prompt, summary string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[c.key(model, prompt)] = summary
	if err := c.save(); err != nil {
		logx.Warnf("ai: cache save failed: %v", err)
	}
}

func (c *Cache) load() {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(b, &c.m); err != nil {
		logx.Warnf("ai: ignoring unreadable cache %s: %v", c.path, err)
		c.m = map[string]string{}
	}
}

// save writes through a temp file so a crash never leaves a torn cache.
func (c *Cache) save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c.m, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
