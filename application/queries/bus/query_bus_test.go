package bus

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoQuery struct {
	Value string
}

func (q echoQuery) Validate() error {
	if q.Value == "" {
		return errors.New("value is required")
	}
	return nil
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]interface{}
}

func (c *memoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

type countingMetrics struct {
	counts map[string]int
	timers int
}

type noopTimer struct{ m *countingMetrics }

func (t noopTimer) Stop() { t.m.timers++ }

func (m *countingMetrics) StartTimer(metric, label string) Timer { return noopTimer{m: m} }
func (m *countingMetrics) Increment(metric, label string)      { m.counts[metric+":"+label]++ }

func TestQueryBus_AskDispatchesTypedHandler(t *testing.T) {
	b := NewQueryBus()
	require.NoError(t, b.Register(echoQuery{}, Typed(func(_ context.Context, q echoQuery) (string, error) {
		return "echo " + q.Value, nil
	})))

	result, err := b.Ask(context.Background(), echoQuery{Value: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "echo hi", result)
}

func TestQueryBus_ValidationAndRegistrationErrors(t *testing.T) {
	b := NewQueryBus()
	handler := Typed(func(_ context.Context, q echoQuery) (string, error) { return q.Value, nil })

	_, err := b.Ask(context.Background(), echoQuery{Value: "x"})
	assert.ErrorContains(t, err, "no handler registered")

	require.NoError(t, b.Register(echoQuery{}, handler))
	assert.Error(t, b.Register(echoQuery{}, handler))

	_, err = b.Ask(context.Background(), echoQuery{})
	assert.ErrorContains(t, err, "value is required")
}

func TestQueryBus_HandlerErrorIsWrapped(t *testing.T) {
	sentinel := errors.New("boom")
	b := NewQueryBus()
	require.NoError(t, b.Register(echoQuery{}, Typed(func(_ context.Context, _ echoQuery) (string, error) {
		return "", sentinel
	})))

	_, err := b.Ask(context.Background(), echoQuery{Value: "x"})

	assert.ErrorIs(t, err, sentinel)
}

func TestQueryBus_Middlewares(t *testing.T) {
	calls := 0
	cache := &memoryCache{items: make(map[string]interface{})}
	metrics := &countingMetrics{counts: make(map[string]int)}

	b := NewQueryBus()
	require.NoError(t, b.Register(echoQuery{}, Typed(func(_ context.Context, q echoQuery) (string, error) {
		calls++
		return q.Value, nil
	}), NewMetricsMiddleware(metrics), NewCachingMiddleware(cache, 60)))

	for i := 0; i < 3; i++ {
		result, err := b.Ask(context.Background(), echoQuery{Value: "same"})
		require.NoError(t, err)
		assert.Equal(t, "same", result)
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 3, metrics.counts["query_count:echoQuery"])
	assert.Equal(t, 3, metrics.counts["query_success:echoQuery"])
	assert.Equal(t, 3, metrics.timers)
}
