package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"coursegraph/application/queries"
	"coursegraph/infrastructure/config"
	pkgerrors "coursegraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const coursesFixture = `Campus,Subject_Code,Course_Code,Title,Prerequisite(s),Course Description
UCD,ECS,036A,Intro Programming,,Basics.
UCD,ECS,036B,Software Development,ECS 036A,Data structures.
`

// withoutAWS points the SDK at an empty shared config and a profile it cannot find
func withoutAWS(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	empty := filepath.Join(dir, "aws_config")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	t.Setenv("AWS_CONFIG_FILE", empty)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", empty)
	t.Setenv("AWS_PROFILE", "coursegraph-missing-profile")
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	courses := filepath.Join(dir, "combined.csv")
	require.NoError(t, os.WriteFile(courses, []byte(coursesFixture), 0o600))

	return &config.Config{
		Environment:      "test",
		ServiceName:      "coursegraph",
		AWSRegion:        "us-west-2",
		CoursesCSV:       courses,
		CanonicalSource:  config.CanonicalSourceCSV,
		CanonicalCSV:     filepath.Join(dir, "missing_canonical.csv"),
		CanonicalTable:   "canonical",
		EmbeddingsPath:   filepath.Join(dir, "missing.npy"),
		Campuses:         []string{"UCD", "UCLA"},
		DefaultCampus:    "UCD",
		DefaultDepth:     1,
		MaxDepth:         10,
		StatsCacheTTL:    60,
		LogLevel:         "error",
		MetricsNamespace: "CourseGraphTest",
		EnableMetrics:    true,
	}
}

func TestProvideAWSConfig_FailureYieldsNilClients(t *testing.T) {
	withoutAWS(t)

	awsCfg := ProvideAWSConfig(context.Background(), testConfig(t), zap.NewNop())

	require.Nil(t, awsCfg)
	assert.Nil(t, ProvideDynamoDBClient(awsCfg))
	assert.Nil(t, ProvideS3Client(awsCfg))
	assert.Nil(t, ProvideCloudWatchClient(awsCfg))
}

func TestProvideCanonicalLoader_DynamoDBWithoutClient(t *testing.T) {
	cfg := testConfig(t)
	cfg.CanonicalSource = config.CanonicalSourceDynamoDB

	loader := ProvideCanonicalLoader(cfg, nil, zap.NewNop())
	table, err := loader.LoadCanonical(context.Background())

	assert.Nil(t, table)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeUnavailable))

	matcher := ProvideCanonicalMatcher(context.Background(), loader, zap.NewNop())
	assert.Equal(t, 0, matcher.Len())
}

func TestInitializeContainer_StartsWithoutAWSConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{"csv canonical source", func(*config.Config) {}},
		{"dynamodb canonical source", func(cfg *config.Config) {
			cfg.CanonicalSource = config.CanonicalSourceDynamoDB
		}},
		{"embeddings from s3", func(cfg *config.Config) {
			cfg.EmbeddingsS3Bucket = "artifacts"
			cfg.EmbeddingsS3Key = "course_embeddings.npy"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withoutAWS(t)
			ctx, cancel := context.WithCancel(context.Background())
			t.Cleanup(cancel)

			cfg := testConfig(t)
			tt.mutate(cfg)

			container, err := InitializeContainer(ctx, cfg)
			require.NoError(t, err)

			assert.Equal(t, 2, container.CourseCount())
			assert.Equal(t, 0, container.CanonicalCount())
			assert.False(t, container.SimilarityEnabled())
			assert.NotNil(t, container.Metrics)

			result, err := container.QueryBus.Ask(ctx, queries.NewSearchCourseQuery("UCD", "ECS 036B", 1, false, cfg.MaxDepth))
			require.NoError(t, err)
			res, ok := result.(*queries.SearchCourseResult)
			require.True(t, ok)
			assert.NotNil(t, res.Graph)
			assert.Nil(t, res.Canonical)
			assert.Empty(t, res.Similarity)
		})
	}
}
