// Package petcache guarda la lista de mascotas del dueño en el almacén local.
// Toda la lista vive serializada bajo una sola clave; cada cambio la lee
// entera, la modifica y la reescribe.
package petcache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"myvet/internal/platform/kvstore"
	"myvet/internal/platform/logger"
)

const DefaultKey = "mascotas_json"

var ErrEmptyID = errors.New("petcache: empty id")

// Cache es genérico sobre el registro; idOf extrae la identidad.
type Cache[T any] struct {
	kv   kvstore.Store
	key  string
	idOf func(T) string
	log  logger.Logger

	mu sync.Mutex
}

func New[T any](kv kvstore.Store, key string, idOf func(T) string, log logger.Logger) *Cache[T] {
	if key == "" {
		key = DefaultKey
	}
	return &Cache[T]{
		kv:   kv,
		key:  key,
		idOf: idOf,
		log:  logger.OrNop(log).With(map[string]any{"component": "petcache"}),
	}
}

// load: documento ausente o corrupto => lista vacía.
func (c *Cache[T]) load(ctx context.Context) []T {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		c.log.Warn("cache read failed", map[string]any{"error": err})
		return []T{}
	}
	if !ok {
		return []T{}
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		c.log.Warn("cache document corrupt, ignoring", map[string]any{"error": err})
		return []T{}
	}
	if list == nil {
		return []T{}
	}
	return list
}

func (c *Cache[T]) save(ctx context.Context, list []T) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, c.key, b)
}

func (c *Cache[T]) List(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Cache[T]) GetByID(ctx context.Context, id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.load(ctx) {
		if c.idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Cache[T]) Add(ctx context.Context, item T) error {
	if c.idOf(item) == "" {
		return ErrEmptyID
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.load(ctx)
	list = append(list, item)
	return c.save(ctx, list)
}

// Update reemplaza por id. Si no existe no hace nada y devuelve false.
func (c *Cache[T]) Update(ctx context.Context, item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.idOf(item)
	list := c.load(ctx)
	for i := range list {
		if c.idOf(list[i]) == id {
			list[i] = item
			return true, c.save(ctx, list)
		}
	}
	return false, nil
}

func (c *Cache[T]) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.load(ctx)
	out := list[:0]
	for _, it := range list {
		if c.idOf(it) != id {
			out = append(out, it)
		}
	}
	return c.save(ctx, out)
}

// Replace pisa la lista completa (refresco desde el backend).
func (c *Cache[T]) Replace(ctx context.Context, all []T) error {
	if all == nil {
		all = []T{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, all)
}
