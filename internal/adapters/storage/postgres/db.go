package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// schema es idempotente; Migrate se puede correr en cada arranque.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))`,
	`CREATE TABLE IF NOT EXISTS owner_profiles (
		user_id    TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vet_profiles (
		user_id             TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		name                TEXT NOT NULL DEFAULT '',
		phone               TEXT NOT NULL DEFAULT '',
		address             TEXT NOT NULL DEFAULT '',
		clinic_name         TEXT NOT NULL DEFAULT '',
		clinic_phone        TEXT NOT NULL DEFAULT '',
		clinic_address      TEXT NOT NULL DEFAULT '',
		speciality          TEXT NOT NULL DEFAULT '',
		registration_number TEXT NOT NULL DEFAULT '',
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id            TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		name          TEXT NOT NULL,
		species       TEXT NOT NULL,
		breed         TEXT NOT NULL DEFAULT '',
		sex           TEXT NOT NULL DEFAULT '',
		birth_date    DATE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_user_id)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id            TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		pet_id        TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		scheduled_at  TIMESTAMPTZ NOT NULL,
		reason        TEXT NOT NULL,
		status        TEXT NOT NULL,
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS appointments_owner_idx ON appointments (owner_user_id, scheduled_at)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		suggestion TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate crea las tablas que faltan.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
