package api

import (
	"net/http"

	"emphub/internal/domain"
	"emphub/pkg/logger"
)

type UserHandler struct {
	service domain.AccountService
	logger  logger.Logger
}

func NewUserHandler(service domain.AccountService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

type signupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in domain.SignupInput
	if err := decodeJSON(r, &in, false); err != nil {
		writeError(w, err)
		return
	}

	userID, err := h.service.Signup(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, signupResponse{Message: msgSignupOK, UserID: userID})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginInput
	if err := decodeJSON(r, &in, false); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Login(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msgLoginOK})
}

func (h *UserHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/user/signup", h.Signup)
	mux.HandleFunc("POST /api/v1/user/login", h.Login)
}
