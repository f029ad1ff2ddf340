package config

// DomainConfig holds the tunable constants of the prerequisite graph engine
type DomainConfig struct {
	// Campuses compared by similarity search, in response order
	Campuses []string

	// Subgraph extraction
	DefaultDepth int
	MaxDepth     int

	// Layout engine
	HorizontalStep float64
	VerticalStep   float64
	FallbackSeed   int64
	FallbackIters  int

	// Similarity search
	TopK           int
	ScorePrecision int

	// Display
	LogicLabel string
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		Campuses: []string{"UCD", "UCLA", "UCSC", "UCI"},

		DefaultDepth: 1,
		MaxDepth:     10,

		HorizontalStep: 1.2,
		VerticalStep:   1.5,
		FallbackSeed:   42,
		FallbackIters:  50,

		TopK:           5,
		ScorePrecision: 3,

		LogicLabel: "OR",
	}
}

// IsKnownCampus reports whether campus is one of the configured campuses
func (c *DomainConfig) IsKnownCampus(campus string) bool {
	for _, known := range c.Campuses {
		if known == campus {
			return true
		}
	}
	return false
}
