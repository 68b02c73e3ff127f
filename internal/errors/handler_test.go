package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trunkreport/internal/pipeline"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleErrorSchemaError(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	w := httptest.NewRecorder()

	err := fmt.Errorf("project input table: %w", &pipeline.SchemaError{
		Missing:   []string{"Profit"},
		Available: []string{"Vendor"},
	})
	h.HandleError(w, r, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeSchema, body["type"])
	assert.Contains(t, body["detail"], "Profit")
	assert.Equal(t, []any{"Profit"}, body["missing_columns"])
}

func TestHandleErrorAPIError(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/reports/x.csv", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, NotFoundError("report"))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, "NOT_FOUND", body["error_code"])
}

func TestHandleErrorContextCancelled(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, context.DeadlineExceeded)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestHandleErrorUnknownErrorIsInternal(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, fmt.Errorf("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// Internal detail must not leak the raw error.
	assert.NotContains(t, body["detail"], "disk on fire")
}

func TestPayloadTooLarge(t *testing.T) {
	apiErr := PayloadTooLarge(1024)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", apiErr.ErrorCode)
}
