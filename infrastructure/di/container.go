package di

import (
	"coursegraph/application/ports"
	querybus "coursegraph/application/queries/bus"
	"coursegraph/domain/services"
	"coursegraph/infrastructure/config"
	"coursegraph/infrastructure/persistence/memory"
	pkgerrors "coursegraph/pkg/errors"
	"coursegraph/pkg/observability"
	"coursegraph/pkg/ratelimit"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Catalog      *memory.Catalog
	Canonical    *services.CanonicalMatcher
	Embeddings   ports.EmbeddingStore
	Similarity   ports.SimilarityFinder
	Graphs       *GraphCache
	QueryBus     *querybus.QueryBus
	Cache        ports.Cache
	Collector    *observability.Collector
	Metrics      *observability.Metrics
	Tracer       *observability.Tracer
	ErrorHandler *pkgerrors.ErrorHandler
	RateLimiter  *ratelimit.TokenBucketLimiter
}

// CourseCount returns the number of loaded course rows
func (c *Container) CourseCount() int {
	return c.Catalog.Len()
}

// CanonicalCount returns the number of canonical table rows
func (c *Container) CanonicalCount() int {
	return c.Canonical.Len()
}

// SimilarityEnabled reports whether embeddings were loaded
func (c *Container) SimilarityEnabled() bool {
	return c.Similarity != nil
}
