package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	domainconfig "coursegraph/domain/config"

	"gopkg.in/yaml.v3"
)

// Canonical table sources
const (
	CanonicalSourceCSV      = "csv"
	CanonicalSourceDynamoDB = "dynamodb"
)

// Config holds all application configuration.
// Values come from defaults, then the optional CONFIG_FILE, then the environment.
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`
	ServiceName   string `yaml:"service_name"`

	// AWS configuration
	AWSRegion string `yaml:"aws_region"`

	// Lambda configuration
	IsLambda           bool   `yaml:"is_lambda"`
	LambdaFunctionName string `yaml:"-"`

	// Data artifacts
	CoursesCSV         string `yaml:"courses_csv"`
	CanonicalSource    string `yaml:"canonical_source"`
	CanonicalCSV       string `yaml:"canonical_csv"`
	CanonicalTable     string `yaml:"canonical_table"`
	EmbeddingsPath     string `yaml:"embeddings_path"`
	EmbeddingsS3Bucket string `yaml:"embeddings_s3_bucket"`
	EmbeddingsS3Key    string `yaml:"embeddings_s3_key"`

	// Query behaviour
	Campuses      []string `yaml:"campuses"`
	DefaultCampus string   `yaml:"default_campus"`
	DefaultDepth  int      `yaml:"default_depth"`
	MaxDepth      int      `yaml:"max_depth"`
	StatsCacheTTL int      `yaml:"stats_cache_ttl"` // seconds

	// Rate limiting, per client IP
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int `yaml:"rate_limit_burst"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Feature flags
	EnableMetrics    bool     `yaml:"enable_metrics"`
	MetricsNamespace string   `yaml:"metrics_namespace"`
	EnableTracing    bool     `yaml:"enable_tracing"`
	EnableCORS       bool     `yaml:"enable_cors"`
	CORSOrigins      []string `yaml:"cors_origins"`
}

func defaults() *Config {
	return &Config{
		ServerAddress:      ":8080",
		Environment:        "development",
		ServiceName:        "coursegraph",
		AWSRegion:          "us-west-2",
		CoursesCSV:         "data/combined_CLEAN.csv",
		CanonicalSource:    CanonicalSourceCSV,
		CanonicalCSV:       "data/canonical_CLEAN.csv",
		CanonicalTable:     "uc-canonical-courses",
		EmbeddingsPath:     "data/course_embeddings.npy",
		EmbeddingsS3Key:    "course_embeddings.npy",
		Campuses:           []string{"UCD", "UCLA", "UCSC", "UCI"},
		DefaultCampus:      "UCD",
		DefaultDepth:       1,
		MaxDepth:           10,
		StatsCacheTTL:      300,
		RateLimitPerMinute: 600,
		RateLimitBurst:     50,
		LogLevel:           "info",
		MetricsNamespace:   "CourseGraph",
		EnableCORS:         true,
		CORSOrigins:        []string{"*"},
	}
}

// LoadConfig loads configuration from an optional YAML file and environment variables
func LoadConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.ServiceName = getEnv("SERVICE_NAME", cfg.ServiceName)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)

	// Lambda configuration
	cfg.IsLambda = getEnvBool("IS_LAMBDA", cfg.IsLambda)
	cfg.LambdaFunctionName = getEnv("AWS_LAMBDA_FUNCTION_NAME", "")

	// Data artifacts
	cfg.CoursesCSV = getEnv("COURSES_CSV", cfg.CoursesCSV)
	cfg.CanonicalSource = strings.ToLower(getEnv("CANONICAL_SOURCE", cfg.CanonicalSource))
	cfg.CanonicalCSV = getEnv("CANONICAL_CSV", cfg.CanonicalCSV)
	cfg.CanonicalTable = getEnv("CANONICAL_TABLE", cfg.CanonicalTable)
	cfg.EmbeddingsPath = getEnv("EMBEDDINGS_PATH", cfg.EmbeddingsPath)
	cfg.EmbeddingsS3Bucket = getEnv("EMBEDDINGS_S3_BUCKET", cfg.EmbeddingsS3Bucket)
	cfg.EmbeddingsS3Key = getEnv("EMBEDDINGS_S3_KEY", cfg.EmbeddingsS3Key)

	// Query behaviour
	cfg.Campuses = getEnvList("CAMPUSES", cfg.Campuses)
	cfg.DefaultCampus = strings.ToUpper(getEnv("DEFAULT_CAMPUS", cfg.DefaultCampus))
	cfg.DefaultDepth = getEnvInt("DEFAULT_DEPTH", cfg.DefaultDepth)
	cfg.MaxDepth = getEnvInt("MAX_DEPTH", cfg.MaxDepth)
	cfg.StatsCacheTTL = getEnvInt("STATS_CACHE_TTL", cfg.StatsCacheTTL)
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)

	// Logging and features
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.MetricsNamespace = getEnv("METRICS_NAMESPACE", cfg.MetricsNamespace)
	cfg.EnableTracing = getEnvBool("ENABLE_TRACING", cfg.EnableTracing)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.CanonicalSource {
	case CanonicalSourceCSV:
		if c.CanonicalCSV == "" {
			return fmt.Errorf("CANONICAL_CSV is required when CANONICAL_SOURCE is csv")
		}
	case CanonicalSourceDynamoDB:
		if c.CanonicalTable == "" {
			return fmt.Errorf("CANONICAL_TABLE is required when CANONICAL_SOURCE is dynamodb")
		}
	default:
		return fmt.Errorf("CANONICAL_SOURCE must be one of csv, dynamodb; got %q", c.CanonicalSource)
	}

	if len(c.Campuses) == 0 {
		return fmt.Errorf("CAMPUSES must list at least one campus")
	}
	if c.DefaultCampus == "" {
		return fmt.Errorf("DEFAULT_CAMPUS is required")
	}
	if c.MaxDepth < 0 || c.DefaultDepth < 0 {
		return fmt.Errorf("depth settings must be non-negative")
	}
	if c.DefaultDepth > c.MaxDepth {
		return fmt.Errorf("DEFAULT_DEPTH (%d) exceeds MAX_DEPTH (%d)", c.DefaultDepth, c.MaxDepth)
	}
	if c.EmbeddingsS3Bucket != "" && c.EmbeddingsS3Key == "" {
		return fmt.Errorf("EMBEDDINGS_S3_KEY is required when EMBEDDINGS_S3_BUCKET is set")
	}

	return nil
}

// DomainConfig derives the engine constants from the loaded configuration
func (c *Config) DomainConfig() *domainconfig.DomainConfig {
	dc := domainconfig.DefaultDomainConfig()
	dc.Campuses = make([]string, 0, len(c.Campuses))
	for _, campus := range c.Campuses {
		dc.Campuses = append(dc.Campuses, strings.ToUpper(strings.TrimSpace(campus)))
	}
	dc.DefaultDepth = c.DefaultDepth
	dc.MaxDepth = c.MaxDepth
	return dc
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable with a default value
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
