package pets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"myvet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

// OwnerNames resuelve el nombre visible de un dueño (lo implementa accounts).
type OwnerNames interface {
	DisplayName(ctx context.Context, userID string) string
}

func RegisterRoutes(r chi.Router, svc *Service, owners OwnerNames, ownerRole, vetRole string) {
	// Mascotas del dueño autenticado
	r.Group(func(or chi.Router) {
		or.Use(middleware.RequireRole(ownerRole))
		or.Get("/owners/me/mascotas", listPetsHandler(svc))
		or.Post("/owners/me/mascotas", createPetHandler(svc))
		or.Get("/owners/me/mascotas/{petID}", getPetHandler(svc))
		or.Put("/owners/me/mascotas/{petID}", updatePetHandler(svc))
		or.Patch("/owners/me/mascotas/{petID}", updatePetHandler(svc))
		or.Delete("/owners/me/mascotas/{petID}", deletePetHandler(svc))
	})

	// Vista del veterinario: todas las mascotas con su dueño
	r.Group(func(vr chi.Router) {
		vr.Use(middleware.RequireRole(vetRole))
		vr.Get("/vet/mascotas", listAllPetsHandler(svc, owners))
	})
}

type createPetRequest struct {
	Name      string `json:"nombre"`
	Species   string `json:"especie"`
	Breed     string `json:"raza"`
	Sex       string `json:"sexo"`
	BirthDate string `json:"fechaNacimiento"` // YYYY-MM-DD opcional
}

type petResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"ownerId"`
	Name        string    `json:"nombre"`
	Species     string    `json:"especie"`
	Breed       string    `json:"raza,omitempty"`
	Sex         string    `json:"sexo,omitempty"`
	BirthDate   string    `json:"fechaNacimiento,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name    *string `json:"nombre"`
	Species *string `json:"especie"`
	Breed   *string `json:"raza"`
	Sex     *string `json:"sexo"`
}

type vetPetResponse struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Species   string `json:"especie"`
	OwnerName string `json:"duenioNombre,omitempty"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea una mascota para el dueño autenticado. Autenticación: `X-Debug-User-ID` + `X-Debug-Role` (dev) o `Authorization: Bearer <token>`.
// @Tags owners
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body createPetRequest true "nombre y especie obligatorios; fechaNacimiento YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /owners/me/mascotas [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(dateLayout, strings.TrimSpace(req.BirthDate))
			if err != nil {
				http.Error(w, "fechaNacimiento must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Sex:       req.Sex,
			BirthDate: bd,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Mis mascotas
// @Tags owners
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /owners/me/mascotas [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Solo se tocan los campos enviados. fechaNacimiento null o "" la borra.
// @Tags owners
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a cambiar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /owners/me/mascotas/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		// Para soportar fechaNacimiento: null, necesitamos detectar presencia del campo.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			Name:    req.Name,
			Species: req.Species,
			Breed:   req.Breed,
			Sex:     req.Sex,
		}
		if v, exists := raw["fechaNacimiento"]; exists {
			var s *string
			if err := json.Unmarshal(v, &s); err != nil {
				http.Error(w, "fechaNacimiento must be YYYY-MM-DD or null", http.StatusBadRequest)
				return
			}
			if s == nil || strings.TrimSpace(*s) == "" {
				in.ClearBirthDate = true
			} else {
				t, err := time.Parse(dateLayout, strings.TrimSpace(*s))
				if err != nil {
					http.Error(w, "fechaNacimiento must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.BirthDate = &t
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Eliminar mascota
// @Tags owners
// @Param Authorization header string false "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /owners/me/mascotas/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listAllPetsHandler godoc
// @Summary Mascotas de todos los dueños
// @Tags vet
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} vetPetResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /vet/mascotas [get]
func listAllPetsHandler(svc *Service, owners OwnerNames) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		names := map[string]string{}
		out := make([]vetPetResponse, 0, len(items))
		for _, p := range items {
			name, ok := names[p.OwnerUserID]
			if !ok {
				name = owners.DisplayName(r.Context(), p.OwnerUserID)
				names[p.OwnerUserID] = name
			}
			out = append(out, vetPetResponse{
				ID:        p.ID,
				Name:      p.Name,
				Species:   p.Species,
				OwnerName: name,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Sex:         p.Sex,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.BirthDate != nil {
		out.BirthDate = p.BirthDate.Format(dateLayout)
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
