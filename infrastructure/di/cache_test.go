package di

import (
	"context"
	"sync"
	"testing"
	"time"

	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"
	"coursegraph/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingObserver struct {
	mu     sync.Mutex
	builds int
	hits   int
	misses int
}

func (o *countingObserver) ObserveGraphBuild(string, time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.builds++
}

func (o *countingObserver) ObserveCacheLookup(_ string, hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func testCatalog(t *testing.T) *memory.Catalog {
	t.Helper()
	mk := func(campus, subject, number string, req entities.RequirementExpression) *entities.Course {
		c, err := entities.NewCourse(campus, subject, number, "", "", "", req)
		require.NoError(t, err)
		return c
	}
	return memory.NewCatalog([]*entities.Course{
		mk("UCD", "ECS", "36A", nil),
		mk("UCD", "ECS", "36B", entities.RequirementExpression{{"ECS36A"}}),
		mk("UCLA", "MATH", "31A", nil),
	})
}

func TestGraphCache_BuildsOnce(t *testing.T) {
	obs := &countingObserver{}
	cache := NewGraphCache(testCatalog(t), obs, zap.NewNop())
	ctx := context.Background()

	first := cache.Get(ctx, "UCD")
	second := cache.Get(ctx, "UCD")

	assert.Same(t, first, second)
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 1, obs.builds)
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
	assert.Equal(t, []valueobjects.Campus{"UCD"}, cache.Cached())
}

func TestGraphCache_UnknownCampusIsEmpty(t *testing.T) {
	cache := NewGraphCache(testCatalog(t), nil, zap.NewNop())

	g := cache.Get(context.Background(), "UCX")

	assert.Zero(t, g.Len())
}

func TestGraphCache_ConcurrentGet(t *testing.T) {
	cache := NewGraphCache(testCatalog(t), &countingObserver{}, zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g := cache.Get(ctx, "UCD")
			assert.Equal(t, 2, g.Len())
		}()
	}
	wg.Wait()

	assert.Equal(t, []valueobjects.Campus{"UCD"}, cache.Cached())
}

func TestGraphCache_Warm(t *testing.T) {
	cache := NewGraphCache(testCatalog(t), nil, zap.NewNop())

	cache.Warm(context.Background(), []valueobjects.Campus{"UCLA", "UCD"})

	assert.Equal(t, []valueobjects.Campus{"UCD", "UCLA"}, cache.Cached())
}

func TestResultCache_Expiry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cache := NewResultCache(ctx)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "k", 1, 10))
	v, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(11 * time.Second)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)

	cache.removeExpired()
	assert.Empty(t, cache.items)
}

func TestResultCache_DeleteAndClear(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cache := NewResultCache(ctx)

	require.NoError(t, cache.Set(ctx, "a", 1, 60))
	require.NoError(t, cache.Set(ctx, "b", 2, 60))
	require.NoError(t, cache.Delete(ctx, "a"))
	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, cache.Clear(ctx))
	_, ok = cache.Get(ctx, "b")
	assert.False(t, ok)
}
