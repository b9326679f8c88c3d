package api

import (
	"net/http"

	"emphub/internal/domain"
	"emphub/pkg/logger"
)

type EmployeeHandler struct {
	service domain.EmployeeService
	logger  logger.Logger
}

func NewEmployeeHandler(service domain.EmployeeService, logger logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger,
	}
}

type createEmployeeResponse struct {
	Message    string `json:"message"`
	EmployeeID string `json:"employee_id"`
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListEmployees(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in domain.EmployeeInput
	if err := decodeJSON(r, &in, false); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.service.CreateEmployee(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createEmployeeResponse{Message: msgEmployeeCreated, EmployeeID: id})
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetEmployee(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var patch domain.EmployeePatch
	if err := decodeJSON(r, &patch, true); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.UpdateEmployee(r.Context(), r.PathValue("id"), patch); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msgEmployeeUpdated})
}

// DeleteEmployee takes the id from ?id= or the older ?eid= parameter.
func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	id := query.Get("id")
	if id == "" {
		id = query.Get("eid")
	}

	if err := h.service.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/emp/employees", h.ListEmployees)
	mux.HandleFunc("POST /api/v1/emp/employees", h.CreateEmployee)
	mux.HandleFunc("GET /api/v1/emp/employees/{id}", h.GetEmployee)
	mux.HandleFunc("PUT /api/v1/emp/employees/{id}", h.UpdateEmployee)
	mux.HandleFunc("DELETE /api/v1/emp/employees", h.DeleteEmployee)
}
