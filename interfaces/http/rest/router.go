package rest

import (
	"net/http"

	querybus "coursegraph/application/queries/bus"
	"coursegraph/infrastructure/config"
	"coursegraph/interfaces/http/rest/handlers"
	"coursegraph/interfaces/http/rest/middleware"
	"coursegraph/pkg/common"
	pkgerrors "coursegraph/pkg/errors"
	"coursegraph/pkg/observability"
	"coursegraph/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg          *config.Config
	queryBus     *querybus.QueryBus
	status       handlers.DataStatus
	errorHandler *pkgerrors.ErrorHandler
	limiter      *ratelimit.TokenBucketLimiter
	tracer       *observability.Tracer
	collector    *observability.Collector
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	queryBus *querybus.QueryBus,
	status handlers.DataStatus,
	errorHandler *pkgerrors.ErrorHandler,
	limiter *ratelimit.TokenBucketLimiter,
	tracer *observability.Tracer,
	collector *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:          cfg,
		queryBus:     queryBus,
		status:       status,
		errorHandler: errorHandler,
		limiter:      limiter,
		tracer:       tracer,
		collector:    collector,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(common.RequestMetadata)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errorHandler.Middleware)
	router.Use(rt.collector.HTTPMiddleware)
	router.Use(rt.tracer.Middleware)

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", common.RequestIDHeader},
			ExposedHeaders: []string{common.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	health := handlers.NewHealthHandler(rt.status)
	router.Get("/", health.Root)
	router.Get("/health", health.Health)
	router.Get("/ready", health.Ready)
	router.Method(http.MethodGet, "/metrics", rt.collector.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(rt.limiter.Middleware(rt.errorHandler))

		courses := handlers.NewCourseHandler(rt.queryBus, rt.errorHandler, handlers.SearchDefaults{
			Campus:   rt.cfg.DefaultCampus,
			Depth:    rt.cfg.DefaultDepth,
			MaxDepth: rt.cfg.MaxDepth,
		}, rt.logger)

		r.Get("/search", courses.Search)
		r.Get("/campuses/{campus}/graph/stats", courses.GraphStats)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	return router
}
