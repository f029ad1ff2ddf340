package services

import (
	"math"
	"sort"

	"coursegraph/domain/config"
	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"
)

// Embeddings is a read-only dense matrix with one row per canonical course
type Embeddings interface {
	Rows() int
	Dim() int
	Row(i int) []float32
}

// SimilarityHit is one nearest neighbour on another campus
type SimilarityHit struct {
	CanonicalID entities.CanonicalID `json:"canonical_id"`
	Codes       []string             `json:"codes"`
	Title       string               `json:"title"`
	Score       float64              `json:"score"`
}

// SimilaritySearch ranks other campuses' courses by embedding similarity
type SimilaritySearch struct {
	matcher    *CanonicalMatcher
	embeddings Embeddings
	campuses   []valueobjects.Campus
	topK       int
	scale      float64
}

// NewSimilaritySearch creates a search over embeddings indexed by the matcher's rows
func NewSimilaritySearch(matcher *CanonicalMatcher, embeddings Embeddings, cfg *config.DomainConfig) *SimilaritySearch {
	campuses := make([]valueobjects.Campus, 0, len(cfg.Campuses))
	for _, c := range cfg.Campuses {
		campuses = append(campuses, valueobjects.NormalizeCampus(c))
	}
	return &SimilaritySearch{
		matcher:    matcher,
		embeddings: embeddings,
		campuses:   campuses,
		topK:       cfg.TopK,
		scale:      math.Pow(10, float64(cfg.ScorePrecision)),
	}
}

type scoredRow struct {
	row   int
	score float64
}

// Search returns, for every configured campus other than from, the top matches
// for the query row. A campus without rows maps to an empty list.
// It returns nil when the query row has no embedding.
func (s *SimilaritySearch) Search(from valueobjects.Campus, queryRow int) map[string][]SimilarityHit {
	if queryRow < 0 || queryRow >= s.embeddings.Rows() {
		return nil
	}
	query := s.embeddings.Row(queryRow)

	results := make(map[string][]SimilarityHit, len(s.campuses))
	for _, campus := range s.campuses {
		if campus == from {
			continue
		}

		var scored []scoredRow
		for _, row := range s.matcher.CampusRows(campus) {
			if row < 0 || row >= s.embeddings.Rows() {
				continue
			}
			scored = append(scored, scoredRow{row: row, score: cosine(query, s.embeddings.Row(row))})
		}

		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].score > scored[j].score
		})
		if len(scored) > s.topK {
			scored = scored[:s.topK]
		}

		hits := make([]SimilarityHit, 0, len(scored))
		for _, sr := range scored {
			rec, ok := s.matcher.RecordAt(sr.row)
			if !ok {
				continue
			}
			hits = append(hits, SimilarityHit{
				CanonicalID: rec.ID,
				Codes:       rec.CodeStrings(),
				Title:       rec.Title,
				Score:       math.Round(sr.score*s.scale) / s.scale,
			})
		}
		results[campus.String()] = hits
	}
	return results
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
