// Package apiclient arma los clientes HTTP hacia el backend MyVet:
// uno anónimo (login/registro) y uno autenticado (Bearer desde la sesión).
// Ambos pasan por el fallback de prefijo "/api".
package apiclient

import (
	"context"
	"net/http"

	"myvet/internal/platform/httpclient"
	"myvet/internal/platform/logger"
)

type Factory struct {
	BaseURL  string
	Timeouts httpclient.Timeouts
	Log      logger.Logger

	// Base es el transporte de más abajo. nil => httpclient.NewTransport(Timeouts).
	Base http.RoundTripper
}

func NewFactory(baseURL string, timeouts httpclient.Timeouts, log logger.Logger) *Factory {
	return &Factory{
		BaseURL:  baseURL,
		Timeouts: timeouts,
		Log:      logger.OrNop(log).With(map[string]any{"component": "apiclient"}),
	}
}

func (f *Factory) base() http.RoundTripper {
	if f.Base != nil {
		return f.Base
	}
	return httpclient.NewTransport(f.Timeouts)
}

// Anonymous: base URL + JSON + fallback, sin Authorization.
func (f *Factory) Anonymous() (*httpclient.Client, error) {
	tr := httpclient.NewPathFallback(f.base(), f.Log)
	return httpclient.New(f.BaseURL, f.Timeouts, tr)
}

// Authenticated agrega el Bearer leído de tokens en cada request.
// onUnauthorized (opcional) se llama cuando la respuesta final es 401;
// el Auth Controller lo usa para forzar logout.
//
// Orden: hook(bearer(fallback(base))) => el reintento también lleva el token.
func (f *Factory) Authenticated(tokens httpclient.TokenSource, onUnauthorized func(ctx context.Context)) (*httpclient.Client, error) {
	var tr http.RoundTripper = httpclient.NewPathFallback(f.base(), f.Log)
	tr = &httpclient.Bearer{Next: tr, Source: tokens}
	if onUnauthorized != nil {
		tr = &httpclient.StatusHook{
			Next:   tr,
			Status: http.StatusUnauthorized,
			OnStatus: func(req *http.Request) {
				f.Log.Info("unauthorized response", map[string]any{
					"method": req.Method,
					"path":   req.URL.Path,
				})
				onUnauthorized(req.Context())
			},
		}
	}
	return httpclient.New(f.BaseURL, f.Timeouts, tr)
}
