package feedback

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"myvet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Group(func(fr chi.Router) {
		fr.Use(middleware.RequireAuth)
		fr.Post("/feedback", submitFeedbackHandler(svc))
		fr.Get("/feedback/mine", listMyFeedbackHandler(svc))
		fr.Get("/feedback/summary", summaryHandler(svc))
	})
}

type submitFeedbackRequest struct {
	Rating     int    `json:"rating"`
	Suggestion string `json:"suggestion"`
}

type feedbackResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Rating     int    `json:"rating"`
	Suggestion string `json:"suggestion,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

type summaryResponse struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// submitFeedbackHandler godoc
// @Summary Calificar la app
// @Tags feedback
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body submitFeedbackRequest true "rating 1..5"
// @Success 201 {object} feedbackResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /feedback [post]
func submitFeedbackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req submitFeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		f, err := svc.Submit(r.Context(), claims.UserID, req.Rating, req.Suggestion)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "rating debe estar entre 1 y 5", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toFeedbackResponse(f))
	}
}

func listMyFeedbackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.Mine(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]feedbackResponse, 0, len(items))
		for _, f := range items {
			out = append(out, toFeedbackResponse(f))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// summaryHandler godoc
// @Summary Promedio de calificaciones
// @Tags feedback
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} summaryResponse
// @Router /feedback/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Summary(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, summaryResponse{
			Avg:   math.Round(s.Avg*100) / 100,
			Count: s.Count,
		})
	}
}

func toFeedbackResponse(f Feedback) feedbackResponse {
	return feedbackResponse{
		ID:         f.ID,
		UserID:     f.UserID,
		Rating:     f.Rating,
		Suggestion: f.Suggestion,
		CreatedAt:  f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
