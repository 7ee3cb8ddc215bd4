package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

func TestErrAnalysisNotFound(t *testing.T) {
	id := uuid.New()
	err := &ErrAnalysisNotFound{ID: id}
	assert.Equal(t, "analysis not found: "+id.String(), err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "text", Message: "is required"}
	assert.Equal(t, "validation error: text - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", &ErrAnalysisNotFound{ID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "f", Message: "m"}, http.StatusBadRequest},
		{"store disabled", &ErrStoreDisabled{}, http.StatusServiceUnavailable},
		{"unsupported format", &ingestion.UnsupportedFormatError{Extension: ".odt"}, http.StatusUnsupportedMediaType},
		{"read error", &ingestion.FileReadError{Path: "cv.pdf", Cause: errors.New("eof")}, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("lookup: %w", &ErrAnalysisNotFound{}), http.StatusNotFound},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
