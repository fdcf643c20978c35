// Package kvstore es el almacenamiento clave-valor local del cliente
// (equivalente a las preferencias de la app): sesión y cache de mascotas.
package kvstore

import (
	"context"
	"errors"
)

var (
	ErrEmptyKey = errors.New("kvstore: empty key")
	// ErrCorrupt: el documento en disco no es un objeto JSON válido.
	ErrCorrupt = errors.New("kvstore: corrupt file")
)

// Store guarda documentos opacos (normalmente JSON) por clave.
type Store interface {
	// Get devuelve (nil, false, nil) si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete no falla si la clave no existe.
	Delete(ctx context.Context, key string) error
}
