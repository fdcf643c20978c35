package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"myvet/internal/domain/accounts"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation es el SQLSTATE de Postgres para índices únicos.
const uniqueViolation = "23505"

type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

const userColumns = `id, email, password_hash, role, name, created_at, updated_at`

func (r *AccountsRepo) CreateUser(ctx context.Context, u accounts.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, u.ID, u.Email, u.PasswordHash, u.Role, u.Name, u.CreatedAt, u.UpdatedAt)
	return mapUnique(err)
}

func (r *AccountsRepo) UpdateUser(ctx context.Context, u accounts.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET email = $2, password_hash = $3, role = $4, name = $5, updated_at = $6
		WHERE id = $1
	`, u.ID, u.Email, u.PasswordHash, u.Role, u.Name, u.UpdatedAt)
	if err != nil {
		return mapUnique(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

func (r *AccountsRepo) GetUserByID(ctx context.Context, id string) (accounts.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, strings.TrimSpace(id))
	return scanUser(row)
}

func (r *AccountsRepo) GetUserByEmail(ctx context.Context, email string) (accounts.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
	return scanUser(row)
}

func (r *AccountsRepo) ListUsersByRole(ctx context.Context, role string) ([]accounts.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = $1
		ORDER BY created_at ASC
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]accounts.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *AccountsRepo) UpsertOwnerProfile(ctx context.Context, p accounts.OwnerProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO owner_profiles (user_id, name, phone, address, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			updated_at = EXCLUDED.updated_at
	`, p.UserID, p.Name, p.Phone, p.Address, p.UpdatedAt)
	return err
}

func (r *AccountsRepo) GetOwnerProfile(ctx context.Context, userID string) (accounts.OwnerProfile, error) {
	var p accounts.OwnerProfile
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, name, phone, address, updated_at
		FROM owner_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Name, &p.Phone, &p.Address, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return accounts.OwnerProfile{}, accounts.ErrNotFound
	}
	return p, err
}

func (r *AccountsRepo) UpsertVetProfile(ctx context.Context, p accounts.VetProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vet_profiles (
			user_id, name, phone, address,
			clinic_name, clinic_phone, clinic_address,
			speciality, registration_number, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			clinic_name = EXCLUDED.clinic_name,
			clinic_phone = EXCLUDED.clinic_phone,
			clinic_address = EXCLUDED.clinic_address,
			speciality = EXCLUDED.speciality,
			registration_number = EXCLUDED.registration_number,
			updated_at = EXCLUDED.updated_at
	`,
		p.UserID, p.Name, p.Phone, p.Address,
		p.ClinicName, p.ClinicPhone, p.ClinicAddress,
		p.Speciality, p.RegistrationNumber, p.UpdatedAt,
	)
	return err
}

func (r *AccountsRepo) GetVetProfile(ctx context.Context, userID string) (accounts.VetProfile, error) {
	var p accounts.VetProfile
	err := r.db.QueryRowContext(ctx, `
		SELECT
			user_id, name, phone, address,
			clinic_name, clinic_phone, clinic_address,
			speciality, registration_number, updated_at
		FROM vet_profiles
		WHERE user_id = $1
	`, userID).Scan(
		&p.UserID, &p.Name, &p.Phone, &p.Address,
		&p.ClinicName, &p.ClinicPhone, &p.ClinicAddress,
		&p.Speciality, &p.RegistrationNumber, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return accounts.VetProfile{}, accounts.ErrNotFound
	}
	return p, err
}

func scanUser(s scanner) (accounts.User, error) {
	var u accounts.User
	err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return accounts.User{}, accounts.ErrNotFound
	}
	return u, err
}

func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return accounts.ErrEmailTaken
	}
	return err
}
