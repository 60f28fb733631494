package prakt

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes parse and measurement results. Implementations must be
// safe for concurrent use.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Add(key K, value V)
}

const (
	colorCacheSize   = 1024
	styleCacheSize   = 512
	cellLenCacheSize = 1024

	// Strings shorter than this are measured directly.
	cellLenCacheMin = 8
)

var (
	colorCache   Cache[string, Color] = NewLRUCache[string, Color](colorCacheSize)
	styleCache   Cache[string, Style] = NewLRUCache[string, Style](styleCacheSize)
	cellLenCache Cache[string, int]   = NewLRUCache[string, int](cellLenCacheSize)
)

// NewLRUCache returns a fixed-capacity LRU cache. Sizes below one are
// rounded up to one.
func NewLRUCache[K comparable, V any](size int) Cache[K, V] {
	if size < 1 {
		size = 1
	}
	c, _ := lru.New[K, V](size)
	return lruCache[K, V]{c}
}

type lruCache[K comparable, V any] struct {
	c *lru.Cache[K, V]
}

func (l lruCache[K, V]) Get(key K) (V, bool) { return l.c.Get(key) }

func (l lruCache[K, V]) Add(key K, value V) { l.c.Add(key, value) }

// SetColorCache replaces the cache behind ParseColor. A nil cache disables
// memoization. Swap caches before sharing the package between goroutines.
func SetColorCache(c Cache[string, Color]) { colorCache = c }

// SetStyleCache replaces the cache behind ParseStyle. A nil cache disables
// memoization. Swap caches before sharing the package between goroutines.
func SetStyleCache(c Cache[string, Style]) { styleCache = c }

// SetCellLenCache replaces the cache behind CellLen. A nil cache disables
// memoization. Swap caches before sharing the package between goroutines.
func SetCellLenCache(c Cache[string, int]) { cellLenCache = c }
