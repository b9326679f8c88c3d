package middleware

import (
	"net/http"
	"strconv"
	"time"

	"emphub/pkg/metrics"
)

// Metrics must wrap the ServeMux directly so the matched route pattern is
// visible on r after the call.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		rw := wrap(w)

		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHttpRequest(r.Method, route, strconv.Itoa(rw.statusCode), time.Since(startTime))
	})
}
