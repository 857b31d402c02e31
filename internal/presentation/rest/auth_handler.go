package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/application/usecase"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	register *usecase.RegisterUser
	login    *usecase.LoginUser
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(register *usecase.RegisterUser, login *usecase.LoginUser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		logger:   logger,
	}
}

// RegisterRoutes registers auth endpoints on the router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/auth/register", h.handleRegister)
	r.Post("/api/v1/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.register.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.login.Execute(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
