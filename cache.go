package viewport

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

type viewportKey struct {
	bounds     BoundingBox
	dimensions Dimensions
	minZoom    int
	maxZoom    int
}

// A ViewportCache memoizes viewport calculations. It is safe for concurrent
// use.
type ViewportCache struct {
	mutex     sync.Mutex
	cacheSize int
	cache     *lru.Cache[viewportKey, *Viewport]
}

// A CacheOption sets an option on a ViewportCache.
type CacheOption func(*ViewportCache)

// NewViewportCache returns a new ViewportCache with the given options.
func NewViewportCache(options ...CacheOption) (*ViewportCache, error) {
	c := &ViewportCache{
		cacheSize: 1024,
	}
	for _, option := range options {
		option(c)
	}

	var err error
	c.cache, err = lru.New[viewportKey, *Viewport](c.cacheSize)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// WithCacheSize sets the maximum number of viewports held.
func WithCacheSize(cacheSize int) CacheOption {
	return func(c *ViewportCache) {
		c.cacheSize = cacheSize
	}
}

// Get returns the viewport for bounds and dimensions, calculating it with
// [New] if it is not already cached. Errors are not cached.
func (c *ViewportCache) Get(bounds BoundingBox, dimensions Dimensions, opts ...Option) (*Viewport, error) {
	o := newOptions(opts...)
	key := viewportKey{
		bounds:     bounds,
		dimensions: dimensions,
		minZoom:    o.minZoom,
		maxZoom:    o.maxZoom,
	}

	if v, ok := c.cache.Get(key); ok {
		viewportCacheHits.Inc()
		return v, nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if v, ok := c.cache.Get(key); ok {
		viewportCacheHits.Inc()
		return v, nil
	}

	viewportCacheMisses.Inc()

	v, err := newViewport(bounds, dimensions, o)
	if err != nil {
		return nil, err
	}

	if eviction := c.cache.Add(key, v); eviction {
		viewportCacheEvictions.Inc()
	}

	return v, nil
}

// Len returns the number of viewports in c.
func (c *ViewportCache) Len() int {
	return c.cache.Len()
}

// Purge removes all viewports from c.
func (c *ViewportCache) Purge() {
	c.cache.Purge()
}
