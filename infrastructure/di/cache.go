package di

import (
	"context"
	"sort"
	"sync"
	"time"

	"coursegraph/application/ports"
	"coursegraph/domain/core/aggregates"
	"coursegraph/domain/core/valueobjects"

	"go.uber.org/zap"
)

// GraphObserver receives graph cache events
type GraphObserver interface {
	ObserveGraphBuild(campus string, took time.Duration)
	ObserveCacheLookup(cache string, hit bool)
}

// GraphCache builds each campus graph on first use and keeps it for the process lifetime.
// Concurrent first requests may each build; the last store wins. Builds are deterministic,
// so every caller sees an equivalent graph.
type GraphCache struct {
	catalog  ports.CourseCatalog
	graphs   sync.Map // valueobjects.Campus -> *aggregates.CampusGraph
	observer GraphObserver
	logger   *zap.Logger
}

// NewGraphCache creates an empty graph cache over catalog. observer may be nil.
func NewGraphCache(catalog ports.CourseCatalog, observer GraphObserver, logger *zap.Logger) *GraphCache {
	return &GraphCache{catalog: catalog, observer: observer, logger: logger}
}

// Get returns the graph of campus, building it when absent
func (c *GraphCache) Get(ctx context.Context, campus valueobjects.Campus) *aggregates.CampusGraph {
	if g, ok := c.graphs.Load(campus); ok {
		c.lookup(true)
		return g.(*aggregates.CampusGraph)
	}
	c.lookup(false)

	start := time.Now()
	g := aggregates.BuildCampusGraph(campus, c.catalog.CampusCourses(campus))
	took := time.Since(start)
	c.graphs.Store(campus, g)

	if c.observer != nil {
		c.observer.ObserveGraphBuild(campus.String(), took)
	}
	stats := g.Stats()
	c.logger.Info("Built campus graph",
		zap.String("campus", campus.String()),
		zap.Int("nodes", stats.NodeCount),
		zap.Int("edges", stats.EdgeCount),
		zap.Duration("took", took),
	)
	return g
}

// Cached reports which campuses already have a graph
func (c *GraphCache) Cached() []valueobjects.Campus {
	var out []valueobjects.Campus
	c.graphs.Range(func(key, _ any) bool {
		out = append(out, key.(valueobjects.Campus))
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Warm builds the graphs of campuses up front
func (c *GraphCache) Warm(ctx context.Context, campuses []valueobjects.Campus) {
	for _, campus := range campuses {
		if ctx.Err() != nil {
			return
		}
		c.Get(ctx, campus)
	}
}

func (c *GraphCache) lookup(hit bool) {
	if c.observer != nil {
		c.observer.ObserveCacheLookup("graph", hit)
	}
}

// ResultCache is a TTL cache for query results
type ResultCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	now   func() time.Time
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// NewResultCache creates a result cache. Expired entries are swept until ctx is done.
func NewResultCache(ctx context.Context) *ResultCache {
	cache := &ResultCache{
		items: make(map[string]cacheItem),
		now:   time.Now,
	}
	go cache.sweep(ctx, time.Minute)
	return cache
}

// Get retrieves a live value
func (c *ResultCache) Get(_ context.Context, key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	if !ok || c.now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

// Set stores a value for ttl seconds
func (c *ResultCache) Set(_ context.Context, key string, value interface{}, ttl int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{
		value:     value,
		expiresAt: c.now().Add(time.Duration(ttl) * time.Second),
	}
	return nil
}

// Delete removes a value
func (c *ResultCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Clear removes all values
func (c *ResultCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]cacheItem)
	return nil
}

func (c *ResultCache) sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *ResultCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}
