// Package vet es el acceso del veterinario: su perfil, su cartera de
// dueños/mascotas y la gestión de citas.
package vet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"myvet/internal/apiclient"
	"myvet/internal/platform/httpclient"
	"myvet/internal/result"
)

// Estados de cita tal como los espera el backend.
const (
	StatusPending    = "pendiente"
	StatusInProgress = "en_curso"
	StatusDone       = "hecha"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Profile struct {
	ID                 string `json:"id,omitempty"`
	Name               string `json:"nombre,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"telefono,omitempty"`
	Address            string `json:"direccion,omitempty"`
	ClinicName         string `json:"clinicName,omitempty"`
	ClinicPhone        string `json:"clinicPhone,omitempty"`
	ClinicAddress      string `json:"clinicAddress,omitempty"`
	Speciality         string `json:"speciality,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
}

type OwnerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
}

type PetSummary struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Species   string `json:"especie"`
	OwnerName string `json:"duenioNombre,omitempty"`
}

type Appointment struct {
	ID          string `json:"id"`
	DateTimeISO string `json:"fechaIso"`
	Reason      string `json:"motivo,omitempty"`
	PetID       string `json:"mascotaId,omitempty"`
	PetName     string `json:"mascotaNombre,omitempty"`
	OwnerName   string `json:"duenioNombre,omitempty"`
	Status      string `json:"estado"`
	Notes       string `json:"notas,omitempty"`
}

type appointmentPatch struct {
	Status *string `json:"estado,omitempty"`
	Notes  *string `json:"notas,omitempty"`
}

type Repository struct {
	client *httpclient.Client
}

func NewRepository(client *httpclient.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Me(ctx context.Context) result.Result[Profile] {
	return apiclient.Call[Profile](ctx, r.client, "vet: me", http.MethodGet, "/api/vet/me", nil)
}

func (r *Repository) SaveProfile(ctx context.Context, p Profile) result.Result[bool] {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return result.Fail[bool](apiclient.Invalid("nombre es obligatorio"))
	}
	// identidad y email no se editan desde el perfil
	p.ID, p.Email = "", ""
	return apiclient.Exec(ctx, r.client, "vet: save profile", http.MethodPost, "/api/vet/me/profile", p)
}

func (r *Repository) Owners(ctx context.Context) result.Result[[]OwnerSummary] {
	return apiclient.Call[[]OwnerSummary](ctx, r.client, "vet: owners", http.MethodGet, "/api/vet/owners", nil)
}

func (r *Repository) Pets(ctx context.Context) result.Result[[]PetSummary] {
	return apiclient.Call[[]PetSummary](ctx, r.client, "vet: pets", http.MethodGet, "/api/vet/mascotas", nil)
}

func (r *Repository) Appointments(ctx context.Context) result.Result[[]Appointment] {
	return apiclient.Call[[]Appointment](ctx, r.client, "vet: appointments", http.MethodGet, "/api/vet/citas", nil)
}

// UpdateAppointment cambia estado y/o notas. Vacío => no se envía.
func (r *Repository) UpdateAppointment(ctx context.Context, id, status, notes string) result.Result[Appointment] {
	id = strings.TrimSpace(id)
	if id == "" {
		return result.Fail[Appointment](apiclient.Invalid("id es obligatorio"))
	}

	var patch appointmentPatch
	if s := strings.TrimSpace(status); s != "" {
		if !ValidStatus(s) {
			return result.Fail[Appointment](apiclient.Invalid(fmt.Sprintf("estado inválido %q (pendiente|en_curso|hecha)", s)))
		}
		patch.Status = &s
	}
	if n := strings.TrimSpace(notes); n != "" {
		patch.Notes = &n
	}
	if patch.Status == nil && patch.Notes == nil {
		return result.Fail[Appointment](apiclient.Invalid("no hay cambios"))
	}

	path := "/api/vet/citas/" + url.PathEscape(id)
	return apiclient.Call[Appointment](ctx, r.client, "vet: update appointment", http.MethodPatch, path, patch)
}
