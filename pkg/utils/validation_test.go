package utils

import (
	"testing"

	pkgerrors "coursegraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Campus string `validate:"required,max=8"`
	Depth  int    `validate:"min=0,max=10"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sample{Campus: "UCD", Depth: 3}))

	err := ValidateStruct(sample{Depth: 11})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Contains(t, err.Error(), "campus is required")
	assert.Contains(t, err.Error(), "depth must be at most 10")

	err = ValidateStruct(sample{Campus: "UNIVERSITY", Depth: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campus must be at most 8 characters")
	assert.Contains(t, err.Error(), "depth must be at least 0")
}
