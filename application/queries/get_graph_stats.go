package queries

import (
	"coursegraph/domain/core/aggregates"
	"coursegraph/domain/core/valueobjects"
	"coursegraph/pkg/utils"
)

// GetCampusGraphStatsQuery represents a query for the size of a campus graph
type GetCampusGraphStatsQuery struct {
	Campus string `json:"campus" validate:"required,max=16"`
}

// NewGetCampusGraphStatsQuery builds a stats query for campus
func NewGetCampusGraphStatsQuery(campus string) GetCampusGraphStatsQuery {
	return GetCampusGraphStatsQuery{Campus: valueobjects.NormalizeCampus(campus).String()}
}

// Validate validates the query
func (q GetCampusGraphStatsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetCampusGraphStatsResult contains graph statistics
type GetCampusGraphStatsResult struct {
	Campus  string                `json:"campus"`
	Courses int                   `json:"courses"`
	Stats   aggregates.GraphStats `json:"stats"`
	BuiltAt string                `json:"built_at"`
}
