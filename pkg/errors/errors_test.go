package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourseNotFoundError(t *testing.T) {
	err := NewCourseNotFoundError("ECS036B", "UCLA")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "Course ECS036B not found in UCLA", err.Message)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, map[string]interface{}{"campus": "UCLA", "course_id": "ECS036B"}, err.Details)
}

func TestGetAppError_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("query handler failed: %w", NewUnavailableError("dynamodb"))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
	assert.True(t, IsType(wrapped, ErrorTypeUnavailable))
	assert.False(t, IsNotFound(wrapped))

	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestDataLoadError_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("open data.csv: no such file")
	err := NewDataLoadError("data.csv", cause)

	assert.True(t, IsDataLoad(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "no such file")
}
