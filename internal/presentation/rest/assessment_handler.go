package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/application/usecase"
	"github.com/rishii-05/stroke-prediction-project/pkg/auth"
)

// AssessmentHandler serves the assessment endpoints. Every route is scoped to
// the authenticated user from the JWT claims.
type AssessmentHandler struct {
	assess *usecase.AssessPatient
	get    *usecase.GetAssessment
	list   *usecase.ListAssessments
	stats  *usecase.GetAssessmentStats
	logger *slog.Logger
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(
	assess *usecase.AssessPatient,
	get *usecase.GetAssessment,
	list *usecase.ListAssessments,
	stats *usecase.GetAssessmentStats,
	logger *slog.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		assess: assess,
		get:    get,
		list:   list,
		stats:  stats,
		logger: logger,
	}
}

// RegisterRoutes registers assessment endpoints on the router.
func (h *AssessmentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/assessments", func(r chi.Router) {
		r.Post("/", h.handleAssess)
		r.Get("/", h.handleList)
		r.Get("/stats", h.handleStats)
		r.Get("/{id}", h.handleGet)
	})
}

type listAssessmentsResponse struct {
	Assessments []dto.AssessmentResponse `json:"assessments"`
}

func (h *AssessmentHandler) handleAssess(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	var req dto.AssessPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.assess.Execute(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

func (h *AssessmentHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	assessmentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid assessment id"})
		return
	}

	resp, err := h.get.Execute(r.Context(), userID, assessmentID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *AssessmentHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = v
	}

	resp, err := h.list.Execute(r.Context(), userID, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, listAssessmentsResponse{Assessments: resp})
}

func (h *AssessmentHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	resp, err := h.stats.Execute(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func userIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID, true
}
