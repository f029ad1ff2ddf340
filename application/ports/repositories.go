package ports

import (
	"context"

	"coursegraph/domain/core/aggregates"
	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"
	"coursegraph/domain/services"
)

// CourseCatalog is the read-only course dataset, loaded once at startup.
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type CourseCatalog interface {
	// Lookup returns the first loaded row for the course
	Lookup(campus valueobjects.Campus, id valueobjects.CourseID) (*entities.Course, bool)

	// CampusCourses returns every row of a campus in load order
	CampusCourses(campus valueobjects.Campus) []*entities.Course

	// Campuses returns the campuses present in the dataset
	Campuses() []valueobjects.Campus

	// KnownSubjects returns the normalized subject codes of the whole dataset
	KnownSubjects() map[string]struct{}

	// Len returns the number of loaded rows
	Len() int
}

// CourseLoader reads the course dataset
type CourseLoader interface {
	LoadCourses(ctx context.Context) ([]*entities.Course, error)
}

// CanonicalLoader reads the canonical equivalence table in embedding row order
type CanonicalLoader interface {
	LoadCanonical(ctx context.Context) ([]*entities.CanonicalCourse, error)
}

// EmbeddingLoader reads the precomputed embedding matrix
type EmbeddingLoader interface {
	LoadEmbeddings(ctx context.Context) (EmbeddingStore, error)
}

// GraphCache hands out per-campus prerequisite graphs, building them on first use
type GraphCache interface {
	// Get returns the graph of campus; an unknown campus yields an empty graph
	Get(ctx context.Context, campus valueobjects.Campus) *aggregates.CampusGraph

	// Cached reports which campuses already have a graph
	Cached() []valueobjects.Campus
}

// CanonicalIndex resolves courses to equivalence clusters
type CanonicalIndex interface {
	Match(campus valueobjects.Campus, id valueobjects.CourseID) (entities.CanonicalID, bool)
	Record(id entities.CanonicalID) (*entities.CanonicalCourse, bool)
	Row(id entities.CanonicalID) (int, bool)
	Len() int
}

// EmbeddingStore is the read-only embedding matrix
type EmbeddingStore interface {
	services.Embeddings
}

// SimilarityFinder ranks other campuses' courses against an embedding row
type SimilarityFinder interface {
	Search(from valueobjects.Campus, queryRow int) map[string][]services.SimilarityHit
}

// Cache defines the interface for caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache with TTL in seconds
	Set(ctx context.Context, key string, value interface{}, ttl int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}
