package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coursegraph/application/ports"
	"coursegraph/application/queries"
	querybus "coursegraph/application/queries/bus"
	queries_handlers "coursegraph/application/queries/handlers"
	domainconfig "coursegraph/domain/config"
	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"
	"coursegraph/domain/services"
	"coursegraph/infrastructure/config"
	"coursegraph/infrastructure/persistence/csv"
	"coursegraph/infrastructure/persistence/dynamodb"
	"coursegraph/infrastructure/persistence/embeddings"
	"coursegraph/infrastructure/persistence/memory"
	pkgerrors "coursegraph/pkg/errors"
	"coursegraph/pkg/observability"
	"coursegraph/pkg/ratelimit"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zcfg.Build()
}

// ProvideDomainConfig derives the engine constants
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return cfg.DomainConfig()
}

// ProvideAWSConfig loads AWS configuration. A failure is logged and yields nil,
// which leaves the S3, DynamoDB and CloudWatch integrations disabled.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) *aws.Config {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		logger.Error("AWS configuration unavailable, AWS-backed sources disabled",
			zap.String("region", cfg.AWSRegion),
			zap.Error(err),
		)
		return nil
	}
	return &awsCfg
}

// ProvideDynamoDBClient creates a DynamoDB client, or nil without AWS configuration
func ProvideDynamoDBClient(awsCfg *aws.Config) *awsdynamodb.Client {
	if awsCfg == nil {
		return nil
	}
	return awsdynamodb.NewFromConfig(*awsCfg)
}

// ProvideS3Client creates an S3 client, or nil without AWS configuration
func ProvideS3Client(awsCfg *aws.Config) *awss3.Client {
	if awsCfg == nil {
		return nil
	}
	return awss3.NewFromConfig(*awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client, or nil without AWS configuration
func ProvideCloudWatchClient(awsCfg *aws.Config) *awscloudwatch.Client {
	if awsCfg == nil {
		return nil
	}
	return awscloudwatch.NewFromConfig(*awsCfg)
}

// ProvideCatalog loads the course dataset. A failed load leaves an empty catalog
// and the service keeps running.
func ProvideCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) *memory.Catalog {
	var loader ports.CourseLoader = csv.NewCourseLoader(cfg.CoursesCSV, logger)
	courses, err := loader.LoadCourses(ctx)
	if err != nil {
		logger.Error("Course dataset unavailable, serving an empty catalog",
			zap.String("path", cfg.CoursesCSV),
			zap.Error(err),
		)
		return memory.NewCatalog(nil)
	}
	return memory.NewCatalog(courses)
}

// ProvideCanonicalLoader picks the canonical table source
func ProvideCanonicalLoader(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ports.CanonicalLoader {
	if cfg.CanonicalSource == config.CanonicalSourceDynamoDB {
		if client == nil {
			return unavailableCanonical{}
		}
		return dynamodb.NewCanonicalLoader(client, cfg.CanonicalTable)
	}
	return csv.NewCanonicalLoader(cfg.CanonicalCSV, logger)
}

// unavailableCanonical stands in for the DynamoDB source when no client could be built
type unavailableCanonical struct{}

func (unavailableCanonical) LoadCanonical(context.Context) ([]*entities.CanonicalCourse, error) {
	return nil, pkgerrors.NewUnavailableError("dynamodb")
}

// ProvideCanonicalMatcher indexes the canonical table. A failed load leaves an empty index.
func ProvideCanonicalMatcher(ctx context.Context, loader ports.CanonicalLoader, logger *zap.Logger) *services.CanonicalMatcher {
	table, err := loader.LoadCanonical(ctx)
	if err != nil {
		logger.Error("Canonical table unavailable, equivalents disabled", zap.Error(err))
		table = []*entities.CanonicalCourse{}
	}
	return services.NewCanonicalMatcher(table)
}

// ProvideEmbeddingStore loads the embedding matrix. It returns nil when the artifact
// cannot be loaded, which disables similarity search.
func ProvideEmbeddingStore(ctx context.Context, cfg *config.Config, client *awss3.Client, logger *zap.Logger) ports.EmbeddingStore {
	var getter embeddings.GetObjectAPI
	if cfg.EmbeddingsS3Bucket != "" && client != nil {
		getter = client
	}

	var loader ports.EmbeddingLoader = embeddings.NewLoader(cfg.EmbeddingsPath, cfg.EmbeddingsS3Bucket, cfg.EmbeddingsS3Key, getter, logger)
	store, err := loader.LoadEmbeddings(ctx)
	if err != nil {
		logger.Warn("Embeddings unavailable, similarity search disabled",
			zap.String("path", cfg.EmbeddingsPath),
			zap.Error(err),
		)
		return nil
	}
	return store
}

// observedSimilarity counts searches on the way through
type observedSimilarity struct {
	search    *services.SimilaritySearch
	collector *observability.Collector
}

func (o observedSimilarity) Search(from valueobjects.Campus, queryRow int) map[string][]services.SimilarityHit {
	o.collector.ObserveSimilaritySearch()
	return o.search.Search(from, queryRow)
}

// ProvideSimilarityFinder returns nil without embeddings
func ProvideSimilarityFinder(
	matcher *services.CanonicalMatcher,
	store ports.EmbeddingStore,
	dc *domainconfig.DomainConfig,
	collector *observability.Collector,
	logger *zap.Logger,
) ports.SimilarityFinder {
	if store == nil {
		return nil
	}
	if store.Rows() < matcher.Len() {
		logger.Warn("Embedding matrix is shorter than the canonical table",
			zap.Int("embedding_rows", store.Rows()),
			zap.Int("canonical_rows", matcher.Len()),
		)
	}
	return observedSimilarity{
		search:    services.NewSimilaritySearch(matcher, store, dc),
		collector: collector,
	}
}

// ProvideCollector creates the Prometheus collector
func ProvideCollector(cfg *config.Config) *observability.Collector {
	return observability.NewCollector(strings.ToLower(cfg.MetricsNamespace))
}

// ProvideGraphCache creates the per-campus graph cache
func ProvideGraphCache(catalog ports.CourseCatalog, collector *observability.Collector, logger *zap.Logger) *GraphCache {
	return NewGraphCache(catalog, collector, logger)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(cfg.ServiceName, cfg.EnableTracing)
}

// ProvideMetrics creates the CloudWatch publisher; it stays silent unless ENABLE_METRICS is set
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment)
	if !cfg.EnableMetrics || client == nil {
		return observability.NewMetrics(namespace, nil, logger)
	}
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideResultCache creates the query result cache
func ProvideResultCache(ctx context.Context) ports.Cache {
	return NewResultCache(ctx)
}

// ProvideErrorHandler creates the HTTP error handler; stack traces are exposed outside production
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, !cfg.IsProduction())
}

// ProvideRateLimiter creates the per-client limiter and starts its janitor
func ProvideRateLimiter(ctx context.Context, cfg *config.Config) *ratelimit.TokenBucketLimiter {
	limiter := ratelimit.NewTokenBucketLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	if limiter.Enabled() {
		go limiter.Run(ctx, 5*time.Minute)
	}
	return limiter
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	cfg *config.Config,
	dc *domainconfig.DomainConfig,
	catalog ports.CourseCatalog,
	graphs ports.GraphCache,
	canonical ports.CanonicalIndex,
	similarity ports.SimilarityFinder,
	cache ports.Cache,
	collector *observability.Collector,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	instrumented := []querybus.Middleware{querybus.NewMetricsMiddleware(collector)}
	if cfg.EnableMetrics {
		instrumented = append(instrumented, querybus.NewMetricsMiddleware(metrics))
	}

	presenter := services.NewPresenter(services.NewLayoutEngine(dc, logger), dc)
	searchHandler := queries_handlers.NewSearchCourseHandler(
		catalog,
		graphs,
		canonical,
		similarity,
		services.NewSubgraphExtractor(),
		presenter,
		tracer,
		logger,
	)
	if err := queryBus.Register(queries.SearchCourseQuery{}, querybus.Typed(searchHandler.Handle), instrumented...); err != nil {
		return nil, err
	}

	statsHandler := queries_handlers.NewGetCampusGraphStatsHandler(catalog, graphs, logger)
	statsMiddlewares := append(instrumented[:len(instrumented):len(instrumented)], querybus.NewCachingMiddleware(cache, cfg.StatsCacheTTL))
	if err := queryBus.Register(queries.GetCampusGraphStatsQuery{}, querybus.Typed(statsHandler.Handle), statsMiddlewares...); err != nil {
		return nil, err
	}

	return queryBus, nil
}
