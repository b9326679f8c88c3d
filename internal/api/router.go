package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"emphub/internal/api/middleware"
	"emphub/internal/domain"
	"emphub/pkg/logger"
)

type RouterConfig struct {
	Accounts       domain.AccountService
	Employees      domain.EmployeeService
	Checkers       map[string]Checker
	Logger         logger.Logger
	MetricsEnabled bool
	Version        string
}

// NewRouter builds the full HTTP handler with its middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	NewUserHandler(cfg.Accounts, cfg.Logger).RegisterRoutes(mux)
	NewEmployeeHandler(cfg.Employees, cfg.Logger).RegisterRoutes(mux)
	NewHealthHandler(cfg.Checkers, cfg.Version).RegisterRoutes(mux)

	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": msgAPIBanner,
			"status":  true,
		})
	})

	return middleware.Chain(unmatchedAsJSON(mux),
		middleware.RequestID,
		middleware.Tracing,
		middleware.Logging(cfg.Logger),
		middleware.Metrics,
		middleware.Recover(cfg.Logger, writeInternalError),
	)
}

const (
	msgRouteNotFound    = "Route not found"
	msgMethodNotAllowed = "Method not allowed"
)

// unmatchedAsJSON lets the mux answer requests no route matches (404, or 405
// with its Allow header) but renders the answer in the error envelope.
func unmatchedAsJSON(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(&unmatchedWriter{ResponseWriter: w}, r)
	})
}

type unmatchedWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (u *unmatchedWriter) WriteHeader(status int) {
	if u.wroteHeader {
		return
	}
	u.wroteHeader = true

	message := msgRouteNotFound
	if status == http.StatusMethodNotAllowed {
		message = msgMethodNotAllowed
	}
	writeJSON(u.ResponseWriter, status, errorResponse{Status: false, Message: message})
}

// Write drops the mux's plain-text body.
func (u *unmatchedWriter) Write(b []byte) (int, error) {
	if !u.wroteHeader {
		u.WriteHeader(http.StatusNotFound)
	}
	return len(b), nil
}
