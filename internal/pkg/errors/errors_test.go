package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/venue-finder/internal/pkg/errors"
)

func TestAppError_WithDetailsKeepsSentinelIntact(t *testing.T) {
	detailed := errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{"lat": 200.0})

	assert.Equal(t, 200.0, detailed.Details["lat"])
	assert.Nil(t, errors.ErrInvalidCoordinates.Details)
	assert.Equal(t, http.StatusBadRequest, detailed.StatusCode)
}

func TestAppError_Is(t *testing.T) {
	detailed := errors.ErrEmptyName.WithDetails(map[string]interface{}{"field": "name"})
	wrapped := fmt.Errorf("add venue: %w", detailed)

	assert.True(t, stderrors.Is(wrapped, errors.ErrEmptyName))
	assert.False(t, stderrors.Is(wrapped, errors.ErrInvalidCoordinates))
	assert.Equal(t, "EMPTY_NAME: Venue name must not be empty", detailed.Error())
}
