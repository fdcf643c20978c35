package cli

import (
	"errors"

	"myvet/internal/apiclient"
	"myvet/internal/auth"
)

// Códigos de salida del CLI.
const (
	Success      = 0
	GeneralError = 1
	UsageError   = 2
	AuthError    = 5
	NetworkError = 6
)

// usageError marca errores de flags/argumentos.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func ExitCode(err error) int {
	if err == nil {
		return Success
	}
	var ue usageError
	if errors.As(err, &ue) {
		return UsageError
	}
	if errors.Is(err, ErrNotLoggedIn) || errors.Is(err, ErrWrongRole) {
		return AuthError
	}
	switch apiclient.Classify(err) {
	case apiclient.KindUnauthorized, apiclient.KindForbidden:
		return AuthError
	case apiclient.KindTransport:
		return NetworkError
	case apiclient.KindInvalidInput:
		return UsageError
	}
	return GeneralError
}

// Message es el texto que ve el usuario por stderr.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *auth.StatusError
	switch {
	case errors.As(err, &se):
		// login/registro rechazado: se muestra tal cual viene del backend
		return se.Error()
	case errors.Is(err, ErrNotLoggedIn):
		return "No hay sesión activa. Usa: myvet login"
	case errors.Is(err, ErrWrongRole):
		return "Esta acción no corresponde a tu rol. " + err.Error()
	}
	var ue usageError
	if errors.As(err, &ue) {
		return ue.Error()
	}
	return apiclient.Message(err)
}
