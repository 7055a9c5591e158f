package observability

import (
	"context"
	"log/slog"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Time starts timing the named operation and returns a func that logs its
// duration at debug level. Pass a pointer to the named error result so a
// failure is logged with the error:
//
//	defer observability.Time(ctx, log, "routing.Directions")(&err)
func Time(ctx context.Context, log *slog.Logger, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		args := []any{
			"op", name,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
			args = append(args, "request_id", reqID)
		}
		if errp != nil && *errp != nil {
			args = append(args, "error", *errp)
		}
		log.DebugContext(ctx, "operation", args...)
	}
}
