package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"myvet/internal/domain/feedback"
)

type feedbackRepo struct {
	mu    sync.RWMutex
	items []feedback.Feedback
}

func NewFeedbackRepo() feedback.Repository {
	return &feedbackRepo{}
}

func (r *feedbackRepo) Create(ctx context.Context, f feedback.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == "" {
		return errors.New("feedback id required")
	}
	r.items = append(r.items, f)
	return nil
}

func (r *feedbackRepo) ListByUser(ctx context.Context, userID string) ([]feedback.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feedback.Feedback, 0)
	for _, f := range r.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *feedbackRepo) Summary(ctx context.Context) (feedback.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.items) == 0 {
		return feedback.Summary{}, nil
	}
	total := 0
	for _, f := range r.items {
		total += f.Rating
	}
	return feedback.Summary{
		Avg:   float64(total) / float64(len(r.items)),
		Count: len(r.items),
	}, nil
}
