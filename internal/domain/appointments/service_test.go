package appointments

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID map[string]Appointment
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Appointment{}}
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Appointment) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byID {
		if a.OwnerUserID == ownerUserID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]Appointment, error) {
	out := make([]Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

// petOwners: petID -> ownerUserID
type petOwners map[string]string

func (p petOwners) OwnerOf(ctx context.Context, petID string) (string, error) {
	o, ok := p[petID]
	if !ok {
		return "", errors.New("pet not found")
	}
	return o, nil
}

func newTestService() (*Service, time.Time) {
	svc := NewService(newTestRepo(), petOwners{"pet-1": "owner-1", "pet-2": "owner-2"})
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, now
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_StartsPending(t *testing.T) {
	svc, now := newTestService()
	at := now.Add(48 * time.Hour)

	a, err := svc.Create(context.Background(), "owner-1", CreateInput{
		ScheduledAt: at,
		Reason:      "  Control ",
		PetID:       "pet-1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("expected pendiente, got %s", a.Status)
	}
	if a.Reason != "Control" || !a.ScheduledAt.Equal(at) || a.CreatedAt != now {
		t.Fatalf("unexpected appointment %#v", a)
	}
}

func TestService_Create_PetRules(t *testing.T) {
	svc, now := newTestService()
	in := CreateInput{ScheduledAt: now, Reason: "x", PetID: "pet-2"}

	if _, err := svc.Create(context.Background(), "owner-1", in); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for someone else's pet, got %v", err)
	}

	in.PetID = "nope"
	if _, err := svc.Create(context.Background(), "owner-1", in); !errors.Is(err, ErrUnknownPet) {
		t.Fatalf("expected ErrUnknownPet, got %v", err)
	}

	in.PetID = "pet-1"
	in.Reason = " "
	if _, err := svc.Create(context.Background(), "owner-1", in); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for blank motivo, got %v", err)
	}
}

func TestService_Update_And_Delete_OwnerOnly(t *testing.T) {
	svc, now := newTestService()
	a, err := svc.Create(context.Background(), "owner-1", CreateInput{ScheduledAt: now, Reason: "x", PetID: "pet-1"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	reason := "Vacuna"
	if _, err := svc.Update(context.Background(), a.ID, "owner-2", UpdateInput{Reason: &reason}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), a.ID, "owner-1", UpdateInput{}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty patch, got %v", err)
	}

	later := now.Add(time.Hour)
	svc.now = func() time.Time { return later }
	got, err := svc.Update(context.Background(), a.ID, "owner-1", UpdateInput{Reason: &reason})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Reason != "Vacuna" || got.UpdatedAt != later || got.Status != StatusPending {
		t.Fatalf("unexpected update %#v", got)
	}

	if err := svc.Delete(context.Background(), a.ID, "owner-2"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), a.ID, "owner-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.Update(context.Background(), a.ID, "owner-1", UpdateInput{Reason: &reason}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestService_Review_StatusAndNotes(t *testing.T) {
	svc, now := newTestService()
	a, _ := svc.Create(context.Background(), "owner-1", CreateInput{ScheduledAt: now, Reason: "x", PetID: "pet-1"})

	bad := Status("cancelada")
	if _, err := svc.Review(context.Background(), a.ID, ReviewInput{Status: &bad}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown estado, got %v", err)
	}
	if _, err := svc.Review(context.Background(), a.ID, ReviewInput{}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty review, got %v", err)
	}

	done := StatusDone
	notes := " Todo bien "
	got, err := svc.Review(context.Background(), a.ID, ReviewInput{Status: &done, Notes: &notes})
	if err != nil {
		t.Fatalf("Review error: %v", err)
	}
	if got.Status != StatusDone || got.Notes != "Todo bien" {
		t.Fatalf("unexpected review result %#v", got)
	}

	// Solo notas: el estado se mantiene
	more := "Volver en un año"
	got, err = svc.Review(context.Background(), a.ID, ReviewInput{Notes: &more})
	if err != nil {
		t.Fatalf("Review #2 error: %v", err)
	}
	if got.Status != StatusDone || got.Notes != more {
		t.Fatalf("notes-only review changed status: %#v", got)
	}

	if _, err := svc.Review(context.Background(), "nope", ReviewInput{Notes: &more}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseDateTime(t *testing.T) {
	for _, s := range []string{"2026-06-01T10:30", "2026-06-01T10:30:00", "2026-06-01T10:30:00-04:00"} {
		if _, err := ParseDateTime(s); err != nil {
			t.Fatalf("expected %q to parse, got %v", s, err)
		}
	}
	if _, err := ParseDateTime("01/06/2026"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
