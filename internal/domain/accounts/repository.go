package accounts

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email ya registrado")
)

type Repository interface {
	// CreateUser devuelve ErrEmailTaken si el email (case-insensitive) ya existe.
	CreateUser(ctx context.Context, u User) error
	UpdateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsersByRole(ctx context.Context, role string) ([]User, error)

	UpsertOwnerProfile(ctx context.Context, p OwnerProfile) error
	GetOwnerProfile(ctx context.Context, userID string) (OwnerProfile, error)
	UpsertVetProfile(ctx context.Context, p VetProfile) error
	GetVetProfile(ctx context.Context, userID string) (VetProfile, error)
}
