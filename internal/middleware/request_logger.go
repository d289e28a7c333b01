package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-clinic-analytics/internal/platform/logger"
)

// RequestLogger registra cada request; el nivel depende del status (5xx error, 4xx warn).
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := map[string]any{
				"request_id": RequestIDFrom(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
				"bytes":      ww.BytesWritten(),
				"client_ip":  r.RemoteAddr,
			}
			if q := r.URL.RawQuery; q != "" {
				fields["query"] = q
			}

			const msg = "http request"
			switch {
			case status >= 500:
				log.Error(msg, fields)
			case status >= 400:
				log.Warn(msg, fields)
			default:
				log.Info(msg, fields)
			}
		})
	}
}
