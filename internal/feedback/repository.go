// Package feedback envía calificaciones de la app y lee el resumen.
package feedback

import (
	"context"
	"net/http"
	"strings"

	"myvet/internal/apiclient"
	"myvet/internal/platform/httpclient"
	"myvet/internal/result"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	ID         string `json:"id"`
	UserID     string `json:"userId,omitempty"`
	Rating     int    `json:"rating"`
	Suggestion string `json:"suggestion,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

type Summary struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

type submitRequest struct {
	Rating     int    `json:"rating"`
	Suggestion string `json:"suggestion,omitempty"`
}

type Repository struct {
	client *httpclient.Client
}

func NewRepository(client *httpclient.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Submit(ctx context.Context, rating int, suggestion string) result.Result[Feedback] {
	if rating < MinRating || rating > MaxRating {
		return result.Fail[Feedback](apiclient.Invalid("la calificación debe estar entre 1 y 5"))
	}
	req := submitRequest{Rating: rating, Suggestion: strings.TrimSpace(suggestion)}
	return apiclient.Call[Feedback](ctx, r.client, "feedback: submit", http.MethodPost, "/api/feedback", req)
}

func (r *Repository) Summary(ctx context.Context) result.Result[Summary] {
	return apiclient.Call[Summary](ctx, r.client, "feedback: summary", http.MethodGet, "/api/feedback/summary", nil)
}

func (r *Repository) Mine(ctx context.Context) result.Result[[]Feedback] {
	return apiclient.Call[[]Feedback](ctx, r.client, "feedback: mine", http.MethodGet, "/api/feedback/mine", nil)
}
