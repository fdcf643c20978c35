package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"myvet/internal/platform/logger"
)

const apiPrefix = "/api"

// AltPath alterna el prefijo "/api":
//   - /api/auth/login -> /auth/login
//   - /api            -> /
//   - /auth/login     -> /api/auth/login
//
// Un path vacío no tiene alternativa y se devuelve igual.
func AltPath(path string) string {
	switch {
	case path == "":
		return path
	case path == apiPrefix:
		return "/"
	case strings.HasPrefix(path, apiPrefix+"/"):
		return strings.TrimPrefix(path, apiPrefix)
	case strings.HasPrefix(path, "/"):
		return apiPrefix + path
	default:
		return apiPrefix + "/" + path
	}
}

// PathFallback reintenta UNA vez con el path alternativo cuando la
// respuesta es 404. Nunca encadena reintentos: si el segundo intento
// también da 404 se devuelve tal cual.
// El reintento es independiente del método; asume que la ruta es idempotente.
type PathFallback struct {
	Next http.RoundTripper
	Log  logger.Logger
}

func NewPathFallback(next http.RoundTripper, log logger.Logger) *PathFallback {
	return &PathFallback{Next: next, Log: logger.OrNop(log)}
}

func (f *PathFallback) RoundTrip(req *http.Request) (*http.Response, error) {
	next := f.Next
	if next == nil {
		next = http.DefaultTransport
	}

	resp, err := next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		return resp, err
	}

	path := req.URL.Path
	alt := AltPath(path)
	if alt == path {
		return resp, nil
	}

	retry, err := cloneWithPath(req, alt)
	if err != nil {
		// Sin body reenviable no podemos reintentar; devolvemos el 404 original.
		logger.OrNop(f.Log).Warn("path fallback skipped", map[string]any{
			"path":  path,
			"error": err,
		})
		return resp, nil
	}

	// cerrar el 404 antes de reintentar para no filtrar conexiones
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	_ = resp.Body.Close()

	logger.OrNop(f.Log).Debug("path fallback retry", map[string]any{
		"method":   req.Method,
		"path":     path,
		"alt_path": alt,
	})

	return next.RoundTrip(retry)
}

func cloneWithPath(req *http.Request, path string) (*http.Request, error) {
	out := req.Clone(req.Context())

	u := *req.URL
	u.Path = path
	if u.RawPath != "" {
		u.RawPath = AltPath(u.RawPath)
	}
	out.URL = &u
	out.Host = req.Host

	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return nil, fmt.Errorf("request body for %s is not replayable", req.URL.Path)
		}
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		out.Body = body
	}
	return out, nil
}
