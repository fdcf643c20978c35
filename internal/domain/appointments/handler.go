package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"myvet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Directory resuelve nombres para la agenda del veterinario.
type Directory interface {
	PetName(ctx context.Context, petID string) string
	OwnerName(ctx context.Context, userID string) string
}

func RegisterRoutes(r chi.Router, svc *Service, dir Directory, ownerRole, vetRole string) {
	r.Group(func(or chi.Router) {
		or.Use(middleware.RequireRole(ownerRole))
		or.Get("/owners/me/citas", listMyAppointmentsHandler(svc))
		or.Post("/owners/me/citas", createAppointmentHandler(svc))
		or.Put("/owners/me/citas/{citaID}", updateAppointmentHandler(svc))
		or.Patch("/owners/me/citas/{citaID}", updateAppointmentHandler(svc))
		or.Delete("/owners/me/citas/{citaID}", deleteAppointmentHandler(svc))
	})

	r.Group(func(vr chi.Router) {
		vr.Use(middleware.RequireRole(vetRole))
		vr.Get("/vet/citas", listAllAppointmentsHandler(svc, dir))
		vr.Patch("/vet/citas/{citaID}", reviewAppointmentHandler(svc, dir))
	})
}

// createAppointmentRequest es el cuerpo para agendar una cita.
type createAppointmentRequest struct {
	DateTimeISO string `json:"fechaIso"` // RFC3339 o YYYY-MM-DDTHH:MM
	Reason      string `json:"motivo"`
	PetID       string `json:"mascotaId"`
}

type updateAppointmentRequest struct {
	DateTimeISO *string `json:"fechaIso"`
	Reason      *string `json:"motivo"`
	PetID       *string `json:"mascotaId"`
}

type reviewAppointmentRequest struct {
	Status *Status `json:"estado" enums:"pendiente,en_curso,hecha"`
	Notes  *string `json:"notas"`
}

// appointmentResponse representa una cita devuelta por la API.
type appointmentResponse struct {
	ID          string `json:"id"`
	DateTimeISO string `json:"fechaIso"`
	Reason      string `json:"motivo"`
	PetID       string `json:"mascotaId"`
	PetName     string `json:"mascotaNombre,omitempty"`
	OwnerName   string `json:"duenioNombre,omitempty"`
	Status      Status `json:"estado"`
	Notes       string `json:"notas,omitempty"`
}

// createAppointmentHandler godoc
// @Summary Agendar cita
// @Description La mascota debe pertenecer al dueño autenticado. La cita nace en estado `pendiente`.
// @Tags owners
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body createAppointmentRequest true "fechaIso, motivo y mascotaId obligatorios"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / invalid input / mascota no encontrada"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /owners/me/citas [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		at, err := ParseDateTime(req.DateTimeISO)
		if err != nil {
			http.Error(w, "fechaIso inválida", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			ScheduledAt: at,
			Reason:      req.Reason,
			PetID:       req.PetID,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listMyAppointmentsHandler godoc
// @Summary Mis citas
// @Tags owners
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Router /owners/me/citas [get]
func listMyAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateAppointmentHandler godoc
// @Summary Modificar cita
// @Tags owners
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param citaID path string true "ID de la cita"
// @Param payload body updateAppointmentRequest true "Campos a cambiar"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "cita not found"
// @Router /owners/me/citas/{citaID} [put]
func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{Reason: req.Reason, PetID: req.PetID}
		if req.DateTimeISO != nil {
			at, err := ParseDateTime(*req.DateTimeISO)
			if err != nil {
				http.Error(w, "fechaIso inválida", http.StatusBadRequest)
				return
			}
			in.ScheduledAt = &at
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "citaID"), claims.UserID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.Delete(r.Context(), chi.URLParam(r, "citaID"), claims.UserID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listAllAppointmentsHandler godoc
// @Summary Agenda del veterinario
// @Tags vet
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} appointmentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /vet/citas [get]
func listAllAppointmentsHandler(svc *Service, dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, withNames(r.Context(), dir, a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// reviewAppointmentHandler godoc
// @Summary Cambiar estado/notas de una cita
// @Tags vet
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param citaID path string true "ID de la cita"
// @Param payload body reviewAppointmentRequest true "estado y/o notas"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "invalid input"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "cita not found"
// @Router /vet/citas/{citaID} [patch]
func reviewAppointmentHandler(svc *Service, dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reviewAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Review(r.Context(), chi.URLParam(r, "citaID"), ReviewInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, withNames(r.Context(), dir, a))
	}
}

func withNames(ctx context.Context, dir Directory, a Appointment) appointmentResponse {
	out := toAppointmentResponse(a)
	out.PetName = dir.PetName(ctx, a.PetID)
	out.OwnerName = dir.OwnerName(ctx, a.OwnerUserID)
	return out
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		DateTimeISO: a.ScheduledAt.Format(time.RFC3339),
		Reason:      a.Reason,
		PetID:       a.PetID,
		Status:      a.Status,
		Notes:       a.Notes,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownPet):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "cita not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
