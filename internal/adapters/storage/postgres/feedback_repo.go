package postgres

import (
	"context"
	"database/sql"

	"myvet/internal/domain/feedback"
)

type FeedbackRepo struct {
	db *sql.DB
}

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

func (r *FeedbackRepo) Create(ctx context.Context, f feedback.Feedback) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (id, user_id, rating, suggestion, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, f.ID, f.UserID, f.Rating, f.Suggestion, f.CreatedAt)
	return err
}

func (r *FeedbackRepo) ListByUser(ctx context.Context, userID string) ([]feedback.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, rating, suggestion, created_at
		FROM feedback
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feedback.Feedback, 0)
	for rows.Next() {
		var f feedback.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Rating, &f.Suggestion, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FeedbackRepo) Summary(ctx context.Context) (feedback.Summary, error) {
	var s feedback.Summary
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*)
		FROM feedback
	`).Scan(&s.Avg, &s.Count)
	return s, err
}
