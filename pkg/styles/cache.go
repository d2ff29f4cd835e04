package styles

import (
	"runtime"
	"sync"
	"weak"
)

// sheetCache maps template sites to their compiled stylesheet. Keys are weak
// pointers and each tracked template carries a cleanup that evicts its entry,
// so the cache never keeps a template alive.
type sheetCache struct {
	mu      sync.Mutex
	entries map[weak.Pointer[Template]]*StyleSheet
}

var sharedCache = newSheetCache()

func newSheetCache() *sheetCache {
	return &sheetCache{entries: make(map[weak.Pointer[Template]]*StyleSheet)}
}

// resolve returns the cached sheet for tpl unless substituted is set, in which
// case it compiles text and republishes it under the same key. Miss, compile
// and insert happen under one lock.
func (c *sheetCache) resolve(tpl *Template, text string, substituted bool, compiler Compiler) (*StyleSheet, bool, error) {
	key := weak.Make(tpl)

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, tracked := c.entries[key]
	if tracked && !substituted {
		return existing, true, nil
	}

	sheet, err := compiler.Compile(text)
	if err != nil {
		return nil, false, err
	}
	if !tracked {
		runtime.AddCleanup(tpl, c.evict, key)
	}
	c.entries[key] = sheet
	return sheet, false, nil
}

func (c *sheetCache) lookup(tpl *Template) (*StyleSheet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sheet, ok := c.entries[weak.Make(tpl)]
	return sheet, ok
}

func (c *sheetCache) evict(key weak.Pointer[Template]) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *sheetCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *sheetCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// CachedStyleSheet returns the shared stylesheet for a template site, if one
// has been compiled.
func CachedStyleSheet(tpl *Template) (*StyleSheet, bool) {
	if tpl == nil {
		return nil, false
	}
	return sharedCache.lookup(tpl)
}

// CacheLen reports how many template sites currently hold a shared sheet.
func CacheLen() int {
	return sharedCache.len()
}

// ResetCache drops every shared entry. Fragments keep their memoised sheets.
func ResetCache() {
	sharedCache.reset()
}
