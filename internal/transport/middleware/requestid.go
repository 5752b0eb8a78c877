package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/smartworld/smartdesk/pkg/logger"
)

// TraceID reuses the caller's X-Trace-ID or mints one, binds a logger
// carrying it to the request context and echoes it on the response.
func TraceID(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("X-Trace-ID")
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := logger.NewContext(r.Context(), base.With("trace_id", traceID))
			w.Header().Set("X-Trace-ID", traceID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
