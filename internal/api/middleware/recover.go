package middleware

import (
	"net/http"
	"runtime/debug"

	"emphub/pkg/logger"
)

// Recover turns a handler panic into a 500 response. onPanic writes the body.
func Recover(log logger.Logger, onPanic func(w http.ResponseWriter)) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.ErrorContext(r.Context(), "Panic recovered", map[string]interface{}{
					"panic": rec,
					"stack": string(debug.Stack()),
					"path":  r.URL.Path,
				})
				onPanic(w)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
