package feedback

import "context"

type Repository interface {
	Create(ctx context.Context, f Feedback) error
	// ListByUser ordena por CreatedAt desc (lo más reciente primero).
	ListByUser(ctx context.Context, userID string) ([]Feedback, error)
	Summary(ctx context.Context) (Summary, error)
}
