package api

import (
	"context"
	"net/http"
	"sort"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	checkers map[string]Checker
	version  string
	now      func() time.Time
}

type HealthResponse struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceHealth `json:"services"`
	Version   string                   `json:"version"`
}

type ServiceHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func NewHealthHandler(checkers map[string]Checker, version string) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		version:  version,
		now:      time.Now,
	}
}

func (h *HealthHandler) run(ctx context.Context) (map[string]ServiceHealth, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	services := make(map[string]ServiceHealth, len(h.checkers))
	healthy := true
	for name, checker := range h.checkers {
		if err := checker.Ping(ctx); err != nil {
			healthy = false
			services[name] = ServiceHealth{Status: "unhealthy", Error: err.Error()}
			continue
		}
		services[name] = ServiceHealth{Status: "healthy"}
	}
	return services, healthy
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	services, healthy := h.run(r.Context())

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Services:  services,
		Version:   h.version,
	}
	status := http.StatusOK
	if !healthy {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, response)
}

func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "alive",
		"timestamp": h.now().UTC(),
	})
}

func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	services, healthy := h.run(r.Context())

	response := map[string]interface{}{
		"timestamp": h.now().UTC(),
	}
	if healthy {
		response["status"] = "ready"
		writeJSON(w, http.StatusOK, response)
		return
	}

	issues := make([]string, 0)
	for name, s := range services {
		if s.Status != "healthy" {
			issues = append(issues, name+": "+s.Error)
		}
	}
	sort.Strings(issues)
	response["status"] = "not_ready"
	response["issues"] = issues
	writeJSON(w, http.StatusServiceUnavailable, response)
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /health/live", h.LivenessCheck)
	mux.HandleFunc("GET /health/ready", h.ReadinessCheck)
}
