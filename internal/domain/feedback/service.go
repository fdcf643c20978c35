package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

const maxSuggestionLen = 1000

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Submit(ctx context.Context, userID string, rating int, suggestion string) (Feedback, error) {
	if strings.TrimSpace(userID) == "" {
		return Feedback{}, ErrInvalidInput
	}
	if rating < MinRating || rating > MaxRating {
		return Feedback{}, ErrInvalidInput
	}
	suggestion = strings.TrimSpace(suggestion)
	if len(suggestion) > maxSuggestionLen {
		return Feedback{}, ErrInvalidInput
	}

	f := Feedback{
		ID:         uuid.NewString(),
		UserID:     userID,
		Rating:     rating,
		Suggestion: suggestion,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return Feedback{}, err
	}
	return f, nil
}

func (s *Service) Mine(ctx context.Context, userID string) ([]Feedback, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	return s.repo.Summary(ctx)
}
