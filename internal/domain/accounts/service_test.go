package accounts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"myvet/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

type testRepo struct {
	users  map[string]User
	owners map[string]OwnerProfile
	vets   map[string]VetProfile
}

func newTestRepo() *testRepo {
	return &testRepo{
		users:  map[string]User{},
		owners: map[string]OwnerProfile{},
		vets:   map[string]VetProfile{},
	}
}

func (r *testRepo) CreateUser(ctx context.Context, u User) error {
	for _, x := range r.users {
		if strings.EqualFold(x.Email, u.Email) {
			return ErrEmailTaken
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *testRepo) UpdateUser(ctx context.Context, u User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *testRepo) GetUserByID(ctx context.Context, id string) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) ListUsersByRole(ctx context.Context, role string) ([]User, error) {
	out := make([]User, 0)
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *testRepo) UpsertOwnerProfile(ctx context.Context, p OwnerProfile) error {
	r.owners[p.UserID] = p
	return nil
}

func (r *testRepo) GetOwnerProfile(ctx context.Context, userID string) (OwnerProfile, error) {
	p, ok := r.owners[userID]
	if !ok {
		return OwnerProfile{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) UpsertVetProfile(ctx context.Context, p VetProfile) error {
	r.vets[p.UserID] = p
	return nil
}

func (r *testRepo) GetVetProfile(ctx context.Context, userID string) (VetProfile, error) {
	p, ok := r.vets[userID]
	if !ok {
		return VetProfile{}, ErrNotFound
	}
	return p, nil
}

// fakeIssuer devuelve "tok:<id>:<role>".
type fakeIssuer struct{}

func (fakeIssuer) Issue(ctx context.Context, c auth.Claims) (string, error) {
	return "tok:" + c.UserID + ":" + c.Role, nil
}

func newTestService() *Service {
	svc := NewService(newTestRepo(), fakeIssuer{})
	svc.cost = bcrypt.MinCost
	svc.now = func() time.Time { return time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_Register_Then_Login(t *testing.T) {
	svc := newTestService()

	s, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ana@Correo.cl ",
		Password: "secreta1",
		Name:     "Ana",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if s.User.Role != RoleOwner {
		t.Fatalf("expected default role owner, got %q", s.User.Role)
	}
	if s.User.Email != "ana@correo.cl" {
		t.Fatalf("expected normalized email, got %q", s.User.Email)
	}
	if s.User.PasswordHash == "secreta1" || s.Token != "tok:"+s.User.ID+":owner" {
		t.Fatalf("unexpected session %#v", s)
	}

	got, err := svc.Login(context.Background(), "ANA@correo.cl", "secreta1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if got.User.ID != s.User.ID {
		t.Fatalf("login returned another user")
	}

	if _, err := svc.Login(context.Background(), "ana@correo.cl", "otra"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nadie@correo.cl", "secreta1"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestService_Register_Validation(t *testing.T) {
	svc := newTestService()
	cases := []RegisterInput{
		{Email: "sin-arroba", Password: "secreta1"},
		{Email: "a@b.com", Password: "corta"},
		{Email: "a@b.com", Password: "secreta1", Role: "admin"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for %#v, got %v", in, err)
		}
	}

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "secreta1"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "A@B.com", Password: "secreta1"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Profiles_RenameAccount(t *testing.T) {
	svc := newTestService()
	owner, _ := svc.Register(context.Background(), RegisterInput{Email: "ana@correo.cl", Password: "secreta1"})
	vet, _ := svc.Register(context.Background(), RegisterInput{Email: "vet@clinica.cl", Password: "secreta1", Role: RoleVet})

	if name := svc.DisplayName(context.Background(), owner.User.ID); name != "ana@correo.cl" {
		t.Fatalf("expected email as display name, got %q", name)
	}
	if _, err := svc.SaveOwnerProfile(context.Background(), owner.User.ID, OwnerProfileInput{Name: " "}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for blank nombre, got %v", err)
	}
	if _, err := svc.SaveOwnerProfile(context.Background(), owner.User.ID, OwnerProfileInput{Name: "Ana Pérez", Phone: "+56 9 1234"}); err != nil {
		t.Fatalf("SaveOwnerProfile error: %v", err)
	}
	if name := svc.DisplayName(context.Background(), owner.User.ID); name != "Ana Pérez" {
		t.Fatalf("expected profile name as display name, got %q", name)
	}

	u, p, err := svc.VetProfile(context.Background(), vet.User.ID)
	if err != nil {
		t.Fatalf("VetProfile error: %v", err)
	}
	if u.Email != "vet@clinica.cl" || p.ClinicName != "" {
		t.Fatalf("expected empty vet profile, got %#v", p)
	}
	if _, err := svc.SaveVetProfile(context.Background(), vet.User.ID, VetProfileInput{Name: "Dra. Soto", ClinicName: "Clínica Sur"}); err != nil {
		t.Fatalf("SaveVetProfile error: %v", err)
	}
	_, p, _ = svc.VetProfile(context.Background(), vet.User.ID)
	if p.ClinicName != "Clínica Sur" || p.Name != "Dra. Soto" {
		t.Fatalf("unexpected vet profile %#v", p)
	}

	owners, _ := svc.Owners(context.Background())
	if len(owners) != 1 || owners[0].ID != owner.User.ID {
		t.Fatalf("expected only the owner in directory, got %#v", owners)
	}
}
