package triage

import (
	"encoding/json"
	"net/http"

	"myvet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireAuth).Post("/ai/prediagnostico", prediagnosisHandler())
}

type prediagnosisRequest struct {
	Symptoms string `json:"sintomas"`
	Species  string `json:"especie"`
	Age      string `json:"edad"`
	Sex      string `json:"sexo"`
}

type prediagnosisResponse struct {
	Recommendations string `json:"recomendaciones"`
	RedFlags        string `json:"red_flags"`
	Disclaimer      string `json:"disclaimer"`
	Model           string `json:"_model"`
}

// prediagnosisHandler godoc
// @Summary Pre-diagnóstico orientativo
// @Description Reglas por palabra clave. No reemplaza la consulta veterinaria.
// @Tags ai
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body prediagnosisRequest true "sintomas obligatorio"
// @Success 200 {object} prediagnosisResponse
// @Failure 400 {string} string "sintomas es obligatorio"
// @Failure 401 {string} string "unauthorized"
// @Router /ai/prediagnostico [post]
func prediagnosisHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req prediagnosisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := Assess(Input(req))
		if err != nil {
			http.Error(w, "sintomas es obligatorio", http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, prediagnosisResponse(res))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
