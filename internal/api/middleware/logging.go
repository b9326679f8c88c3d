package middleware

import (
	"net/http"
	"time"

	"emphub/pkg/logger"
)

func Logging(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrap(w)

			next.ServeHTTP(rw, r)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_addr": r.RemoteAddr,
			}
			if rw.statusCode >= http.StatusInternalServerError {
				log.WarnContext(r.Context(), "HTTP request", fields)
				return
			}
			log.InfoContext(r.Context(), "HTTP request", fields)
		})
	}
}
