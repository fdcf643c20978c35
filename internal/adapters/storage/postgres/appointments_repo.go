package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"myvet/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `
	id, owner_user_id, pet_id,
	scheduled_at, reason,
	status, notes,
	created_at, updated_at`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID,
		a.OwnerUserID,
		a.PetID,
		a.ScheduledAt,
		a.Reason,
		string(a.Status),
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			pet_id = $2,
			scheduled_at = $3,
			reason = $4,
			status = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1
	`,
		a.ID,
		a.PetID,
		a.ScheduledAt,
		a.Reason,
		string(a.Status),
		a.Notes,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, err
}

func (r *AppointmentsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE owner_user_id = $1
		ORDER BY scheduled_at ASC, id ASC
	`, strings.TrimSpace(ownerUserID))
}

func (r *AppointmentsRepo) ListAll(ctx context.Context) ([]appointments.Appointment, error) {
	return r.query(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY scheduled_at ASC, id ASC`)
}

func (r *AppointmentsRepo) query(ctx context.Context, q string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var status string
	if err := s.Scan(
		&a.ID,
		&a.OwnerUserID,
		&a.PetID,
		&a.ScheduledAt,
		&a.Reason,
		&status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}
	a.Status = appointments.Status(status)
	return a, nil
}
