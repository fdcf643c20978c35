package httpclient

import (
	"context"
	"net/http"
	"strings"
)

// TokenSource entrega el token vigente. ok=false => request sin Authorization.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// TokenFunc adapta una función a TokenSource.
type TokenFunc func(ctx context.Context) (string, bool)

func (f TokenFunc) Token(ctx context.Context) (string, bool) { return f(ctx) }

// Bearer agrega "Authorization: Bearer <token>" a cada request saliente.
// El token se lee en cada request (nunca se cachea aquí).
type Bearer struct {
	Next   http.RoundTripper
	Source TokenSource
}

func (b *Bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	next := b.Next
	if next == nil {
		next = http.DefaultTransport
	}
	if b.Source == nil {
		return next.RoundTrip(req)
	}

	token, ok := b.Source.Token(req.Context())
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return next.RoundTrip(req)
	}

	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return next.RoundTrip(out)
}

// StatusHook llama OnStatus cuando la respuesta final tiene Status.
// No altera la respuesta; se usa para el logout forzado ante 401.
type StatusHook struct {
	Next     http.RoundTripper
	Status   int
	OnStatus func(req *http.Request)
}

func (h *StatusHook) RoundTrip(req *http.Request) (*http.Response, error) {
	next := h.Next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(req)
	if err == nil && resp.StatusCode == h.Status && h.OnStatus != nil {
		h.OnStatus(req)
	}
	return resp, err
}
