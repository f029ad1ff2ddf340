//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"coursegraph/application/ports"
	"coursegraph/domain/services"
	"coursegraph/infrastructure/config"
	"coursegraph/infrastructure/persistence/memory"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideS3Client,
	ProvideCloudWatchClient,
	ProvideCatalog,
	wire.Bind(new(ports.CourseCatalog), new(*memory.Catalog)),
	ProvideCanonicalLoader,
	ProvideCanonicalMatcher,
	wire.Bind(new(ports.CanonicalIndex), new(*services.CanonicalMatcher)),
	ProvideEmbeddingStore,
	ProvideSimilarityFinder,
	ProvideCollector,
	ProvideGraphCache,
	wire.Bind(new(ports.GraphCache), new(*GraphCache)),
	ProvideTracer,
	ProvideMetrics,
	ProvideResultCache,
	ProvideErrorHandler,
	ProvideRateLimiter,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
