package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/restaurant-directory/internal/apperror"
)

func TestWriteJSONError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name: "field list",
			err: fmt.Errorf("wrapped: %w", apperror.ValidationErrors{
				{Field: "page", Reason: "must be an integer"},
				{Field: "perPage", Reason: "must be at least 1"},
			}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"errors":[{"field":"page","reason":"must be an integer"},{"field":"perPage","reason":"must be at least 1"}]}`,
		},
		{
			name:       "single validation error",
			err:        apperror.ValidationFailed("id", "Invalid Restaurant ID!"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"errors":[{"field":"id","reason":"Invalid Restaurant ID!"}]}`,
		},
		{
			name:       "storage failure hides details",
			err:        errors.New("sqlite: disk I/O error at /var/lib/db"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeJSONError(rr, logger, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestWriteJSON_NilBody(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	var v any
	require.Error(t, json.Unmarshal(rr.Body.Bytes(), &v), "body should be empty")
}
