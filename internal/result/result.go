// Package result es el valor etiquetado éxito/falla que devuelven los
// repositorios. La capa de presentación hace match sobre él en vez de
// recibir callbacks.
package result

type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail con err nil sigue siendo falla; se normaliza a ErrUnknown.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnknown
	}
	return Result[T]{err: err}
}

// From arma el resultado desde el par clásico (v, err).
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOk() bool { return r.err == nil }

func (r Result[T]) Err() error { return r.err }

func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }

func (r Result[T]) ValueOr(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Map transforma el valor si es éxito; propaga la falla si no.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}
	return Ok(f(r.value))
}

type unknownError struct{}

func (unknownError) Error() string { return "unknown error" }

var ErrUnknown error = unknownError{}
