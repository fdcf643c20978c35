package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"myvet/internal/platform/httpclient"
)

// Kind clasifica una falla para que la capa de presentación decida qué mostrar.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindServer
	KindDecode
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// ErrInvalidInput marca validaciones locales (antes de ir a la red).
var ErrInvalidInput = errors.New("invalid input")

// Invalid arma un error de validación local con mensaje para el usuario.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrInvalidInput) {
		return KindInvalidInput
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		switch {
		case he.StatusCode == http.StatusUnauthorized:
			return KindUnauthorized
		case he.StatusCode == http.StatusForbidden:
			return KindForbidden
		case he.StatusCode == http.StatusNotFound:
			return KindNotFound
		case he.StatusCode >= 400 && he.StatusCode < 500:
			return KindValidation
		case he.StatusCode >= 500:
			return KindServer
		}
		return KindUnknown
	}

	if errors.Is(err, httpclient.ErrTransport) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return KindTransport
	}
	if errors.Is(err, httpclient.ErrDecode) {
		return KindDecode
	}
	return KindUnknown
}

func IsUnauthorized(err error) bool {
	return Classify(err) == KindUnauthorized
}

// Message traduce la falla al texto que ve el usuario.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var he *httpclient.HTTPError
	_ = errors.As(err, &he)

	switch Classify(err) {
	case KindInvalidInput:
		return strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": ")
	case KindTransport:
		return "No se pudo contactar al servidor."
	case KindUnauthorized:
		return "Sesión expirada. Inicia sesión."
	case KindForbidden:
		return "No tienes permisos para esta acción."
	case KindNotFound:
		if he != nil && he.Path != "" {
			return fmt.Sprintf("Endpoint no disponible en el backend: %s %s", he.Method, he.Path)
		}
		return "Endpoint no disponible en el backend."
	case KindValidation:
		return strings.TrimSpace(fmt.Sprintf("HTTP %d %s", he.StatusCode, short(he.Body)))
	case KindServer:
		return fmt.Sprintf("Error del servidor (HTTP %d).", he.StatusCode)
	case KindDecode:
		return "Respuesta inesperada del servidor."
	default:
		return err.Error()
	}
}

func short(s string) string {
	s = strings.TrimSpace(s)
	const max = 200
	if len(s) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "…"
	}
	return s
}
