package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"myvet/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

const minPasswordLen = 6

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer
	now    func() time.Time
	cost   int
}

func NewService(repo Repository, issuer auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		issuer: issuer,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
}

// Session es lo que devuelven login y register: token firmado + usuario.
type Session struct {
	Token string
	User  User
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
	Name     string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := normalizeEmail(in.Email)
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = RoleOwner
	}
	if !strings.Contains(email, "@") || len(in.Password) < minPasswordLen || !ValidRole(role) {
		return Session{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Session{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         strings.TrimSpace(in.Name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return Session{}, err
	}
	return s.session(ctx, u)
}

func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidInput
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(ctx, u)
}

func (s *Service) session(ctx context.Context, u User) (Session, error) {
	tok, err := s.issuer.Issue(ctx, auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return Session{}, err
	}
	return Session{Token: tok, User: u}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	return s.repo.GetUserByID(ctx, id)
}

type OwnerProfileInput struct {
	Name    string
	Phone   string
	Address string
}

// SaveOwnerProfile hace upsert del perfil y sincroniza el nombre visible de la cuenta.
func (s *Service) SaveOwnerProfile(ctx context.Context, userID string, in OwnerProfileInput) (OwnerProfile, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(in.Name) == "" {
		return OwnerProfile{}, ErrInvalidInput
	}
	p := OwnerProfile{
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		UpdatedAt: s.now(),
	}
	if err := s.repo.UpsertOwnerProfile(ctx, p); err != nil {
		return OwnerProfile{}, err
	}
	if err := s.rename(ctx, userID, p.Name); err != nil {
		return OwnerProfile{}, err
	}
	return p, nil
}

type VetProfileInput struct {
	Name               string
	Phone              string
	Address            string
	ClinicName         string
	ClinicPhone        string
	ClinicAddress      string
	Speciality         string
	RegistrationNumber string
}

func (s *Service) SaveVetProfile(ctx context.Context, userID string, in VetProfileInput) (VetProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return VetProfile{}, ErrInvalidInput
	}
	p := VetProfile{
		UserID:             userID,
		Name:               strings.TrimSpace(in.Name),
		Phone:              strings.TrimSpace(in.Phone),
		Address:            strings.TrimSpace(in.Address),
		ClinicName:         strings.TrimSpace(in.ClinicName),
		ClinicPhone:        strings.TrimSpace(in.ClinicPhone),
		ClinicAddress:      strings.TrimSpace(in.ClinicAddress),
		Speciality:         strings.TrimSpace(in.Speciality),
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		UpdatedAt:          s.now(),
	}
	if err := s.repo.UpsertVetProfile(ctx, p); err != nil {
		return VetProfile{}, err
	}
	if p.Name != "" {
		if err := s.rename(ctx, userID, p.Name); err != nil {
			return VetProfile{}, err
		}
	}
	return p, nil
}

// OwnerProfile devuelve el perfil guardado o uno con el nombre visible de la cuenta.
func (s *Service) OwnerProfile(ctx context.Context, userID string) (OwnerProfile, error) {
	p, err := s.repo.GetOwnerProfile(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return OwnerProfile{UserID: userID, Name: s.DisplayName(ctx, userID)}, nil
	}
	return p, err
}

// VetProfile devuelve el perfil guardado o uno vacío con el nombre de la cuenta.
func (s *Service) VetProfile(ctx context.Context, userID string) (User, VetProfile, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return User{}, VetProfile{}, err
	}
	p, err := s.repo.GetVetProfile(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return u, VetProfile{UserID: userID, Name: u.Name}, nil
	}
	if err != nil {
		return User{}, VetProfile{}, err
	}
	return u, p, nil
}

// Owners lista las cuentas con rol owner, ordenadas por alta.
func (s *Service) Owners(ctx context.Context) ([]User, error) {
	return s.repo.ListUsersByRole(ctx, RoleOwner)
}

// DisplayName es el nombre visible de la cuenta, o el email si no tiene.
func (s *Service) DisplayName(ctx context.Context, userID string) string {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (s *Service) rename(ctx context.Context, userID, name string) error {
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Name == name {
		return nil
	}
	u.Name = name
	u.UpdatedAt = s.now()
	return s.repo.UpdateUser(ctx, u)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
