package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrUnknownPet   = errors.New("mascota no encontrada")
)

// Formatos aceptados para fechaIso. El formulario de la app manda la forma corta.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: fechaIso %q", ErrInvalidInput, s)
}

// PetOwners resuelve el dueño de una mascota (lo implementa pets.Service).
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

type Service struct {
	repo Repository
	pets PetOwners
	now  func() time.Time
}

func NewService(repo Repository, pets PetOwners) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

type CreateInput struct {
	ScheduledAt time.Time
	Reason      string
	PetID       string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Appointment, error) {
	if strings.TrimSpace(ownerUserID) == "" || in.ScheduledAt.IsZero() ||
		strings.TrimSpace(in.Reason) == "" || strings.TrimSpace(in.PetID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	petID := strings.TrimSpace(in.PetID)
	if err := s.checkPet(ctx, petID, ownerUserID); err != nil {
		return Appointment{}, err
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		PetID:       petID,
		ScheduledAt: in.ScheduledAt,
		Reason:      strings.TrimSpace(in.Reason),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// UpdateInput es lo que el dueño puede cambiar: nil = no tocar.
type UpdateInput struct {
	ScheduledAt *time.Time
	Reason      *string
	PetID       *string
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Appointment, error) {
	if in.ScheduledAt == nil && in.Reason == nil && in.PetID == nil {
		return Appointment{}, ErrInvalidInput
	}
	a, err := s.owned(ctx, id, ownerUserID)
	if err != nil {
		return Appointment{}, err
	}

	if in.ScheduledAt != nil {
		a.ScheduledAt = *in.ScheduledAt
	}
	if in.Reason != nil {
		if strings.TrimSpace(*in.Reason) == "" {
			return Appointment{}, ErrInvalidInput
		}
		a.Reason = strings.TrimSpace(*in.Reason)
	}
	if in.PetID != nil {
		petID := strings.TrimSpace(*in.PetID)
		if err := s.checkPet(ctx, petID, ownerUserID); err != nil {
			return Appointment{}, err
		}
		a.PetID = petID
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	if _, err := s.owned(ctx, id, ownerUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ReviewInput es lo que el veterinario puede cambiar.
type ReviewInput struct {
	Status *Status
	Notes  *string
}

// Review cambia estado y/o notas. Cualquier transición entre estados válidos
// está permitida; la agenda no impone orden.
func (s *Service) Review(ctx context.Context, id string, in ReviewInput) (Appointment, error) {
	if in.Status == nil && in.Notes == nil {
		return Appointment{}, ErrInvalidInput
	}
	if in.Status != nil && !in.Status.Valid() {
		return Appointment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Appointment{}, err
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Appointment, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) ListAll(ctx context.Context) ([]Appointment, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) checkPet(ctx context.Context, petID, ownerUserID string) error {
	if petID == "" {
		return ErrInvalidInput
	}
	owner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownPet, err)
	}
	if owner != ownerUserID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) owned(ctx context.Context, id, ownerUserID string) (Appointment, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(ownerUserID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.OwnerUserID != ownerUserID {
		return Appointment{}, ErrForbidden
	}
	return a, nil
}
