// Package owner es el acceso del dueño al backend: mascotas, citas y perfil.
package owner

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"myvet/internal/apiclient"
	"myvet/internal/platform/httpclient"
	"myvet/internal/platform/logger"
	"myvet/internal/result"
)

const (
	petsPath         = "/api/owners/me/mascotas"
	appointmentsPath = "/api/owners/me/citas"
	profilePath      = "/api/owners/me/profile"
)

// Repository usa el cliente autenticado. No guarda estado propio.
type Repository struct {
	client *httpclient.Client
	log    logger.Logger
}

func NewRepository(client *httpclient.Client, log logger.Logger) *Repository {
	return &Repository{
		client: client,
		log:    logger.OrNop(log).With(map[string]any{"component": "owner"}),
	}
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(strings.TrimSpace(id))
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apiclient.Invalid("id es obligatorio")
	}
	return nil
}

func (r *Repository) ListPets(ctx context.Context) result.Result[[]Pet] {
	return apiclient.Call[[]Pet](ctx, r.client, "owner: list pets", http.MethodGet, petsPath, nil)
}

func (r *Repository) CreatePet(ctx context.Context, in PetInput) result.Result[Pet] {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return result.Fail[Pet](err)
	}
	return apiclient.Call[Pet](ctx, r.client, "owner: create pet", http.MethodPost, petsPath, in)
}

func (r *Repository) UpdatePet(ctx context.Context, id string, patch PetPatch) result.Result[Pet] {
	if err := requireID(id); err != nil {
		return result.Fail[Pet](err)
	}
	if patch.Empty() {
		return result.Fail[Pet](apiclient.Invalid("no hay cambios"))
	}
	return apiclient.Call[Pet](ctx, r.client, "owner: update pet", http.MethodPut, itemPath(petsPath, id), patch)
}

func (r *Repository) DeletePet(ctx context.Context, id string) result.Result[bool] {
	if err := requireID(id); err != nil {
		return result.Fail[bool](err)
	}
	return apiclient.Exec(ctx, r.client, "owner: delete pet", http.MethodDelete, itemPath(petsPath, id), nil)
}

func (r *Repository) ListAppointments(ctx context.Context) result.Result[[]Appointment] {
	return apiclient.Call[[]Appointment](ctx, r.client, "owner: list appointments", http.MethodGet, appointmentsPath, nil)
}

func (r *Repository) CreateAppointment(ctx context.Context, dateTimeISO, reason, petID string) result.Result[Appointment] {
	req := appointmentRequest{
		DateTimeISO: strings.TrimSpace(dateTimeISO),
		Reason:      strings.TrimSpace(reason),
		PetID:       strings.TrimSpace(petID),
	}
	if req.DateTimeISO == "" || req.Reason == "" || req.PetID == "" {
		return result.Fail[Appointment](apiclient.Invalid("fecha, motivo y mascota son obligatorios"))
	}
	if !ValidDateTime(req.DateTimeISO) {
		return result.Fail[Appointment](apiclient.Invalid("fecha inválida (usa YYYY-MM-DDTHH:MM)"))
	}
	return apiclient.Call[Appointment](ctx, r.client, "owner: create appointment", http.MethodPost, appointmentsPath, req)
}

func (r *Repository) UpdateAppointment(ctx context.Context, id string, patch AppointmentPatch) result.Result[Appointment] {
	if err := requireID(id); err != nil {
		return result.Fail[Appointment](err)
	}
	if patch.DateTimeISO != nil && !ValidDateTime(*patch.DateTimeISO) {
		return result.Fail[Appointment](apiclient.Invalid("fecha inválida (usa YYYY-MM-DDTHH:MM)"))
	}
	return apiclient.Call[Appointment](ctx, r.client, "owner: update appointment", http.MethodPut, itemPath(appointmentsPath, id), patch)
}

func (r *Repository) DeleteAppointment(ctx context.Context, id string) result.Result[bool] {
	if err := requireID(id); err != nil {
		return result.Fail[bool](err)
	}
	return apiclient.Exec(ctx, r.client, "owner: delete appointment", http.MethodDelete, itemPath(appointmentsPath, id), nil)
}

func (r *Repository) SaveProfile(ctx context.Context, in ProfileInput) result.Result[bool] {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" {
		return result.Fail[bool](apiclient.Invalid("nombre es obligatorio"))
	}
	return apiclient.Exec(ctx, r.client, "owner: save profile", http.MethodPost, profilePath, in)
}
