package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/observability"
)

func newDebugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestTime_LogsOperationAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.WithValue(context.Background(), chimiddleware.RequestIDKey, "req-1")

	func() {
		var err error
		defer observability.Time(ctx, newDebugLogger(&buf), "routing.Directions")(&err)
	}()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "routing.Directions", entry["op"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.NotNil(t, entry["duration_ms"])
	assert.NotContains(t, entry, "error")
}

func TestTime_LogsError(t *testing.T) {
	var buf bytes.Buffer

	func() {
		err := errors.New("boom")
		defer observability.Time(context.Background(), newDebugLogger(&buf), "op")(&err)
	}()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
}
