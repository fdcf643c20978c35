package petcache

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"myvet/internal/platform/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pet struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

func newCache(kv kvstore.Store) *Cache[pet] {
	return New(kv, "", func(p pet) string { return p.ID }, nil)
}

func TestCache_CRUD(t *testing.T) {
	ctx := context.Background()
	c := newCache(kvstore.NewMemory())

	assert.Empty(t, c.List(ctx))

	require.NoError(t, c.Add(ctx, pet{ID: "1", Nombre: "Luna"}))
	require.NoError(t, c.Add(ctx, pet{ID: "2", Nombre: "Toby"}))
	assert.Len(t, c.List(ctx), 2)

	p, ok := c.GetByID(ctx, "2")
	require.True(t, ok)
	assert.Equal(t, "Toby", p.Nombre)

	updated, err := c.Update(ctx, pet{ID: "2", Nombre: "Toby II"})
	require.NoError(t, err)
	assert.True(t, updated)
	p, _ = c.GetByID(ctx, "2")
	assert.Equal(t, "Toby II", p.Nombre)

	updated, err = c.Update(ctx, pet{ID: "99", Nombre: "Nadie"})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Len(t, c.List(ctx), 2)

	require.NoError(t, c.Remove(ctx, "1"))
	assert.Equal(t, []pet{{ID: "2", Nombre: "Toby II"}}, c.List(ctx))

	require.NoError(t, c.Replace(ctx, nil))
	assert.Empty(t, c.List(ctx))

	assert.ErrorIs(t, c.Add(ctx, pet{Nombre: "sin id"}), ErrEmptyID)
}

func TestCache_SingleKeyDocument(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	c := newCache(kv)

	require.NoError(t, c.Add(ctx, pet{ID: "1", Nombre: "Luna"}))

	raw, ok, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"1","nombre":"Luna"}]`, string(raw))
}

func TestCache_CorruptDocumentIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte("not json")))

	c := newCache(kv)
	assert.Empty(t, c.List(ctx))

	require.NoError(t, c.Add(ctx, pet{ID: "1"}))
	assert.Len(t, c.List(ctx), 1)
}

func TestCache_SurvivesRestartOnFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	kv1, err := kvstore.NewFile(path)
	require.NoError(t, err)
	require.NoError(t, newCache(kv1).Add(ctx, pet{ID: "1", Nombre: "Luna"}))

	kv2, err := kvstore.NewFile(path)
	require.NoError(t, err)
	p, ok := newCache(kv2).GetByID(ctx, "1")
	assert.True(t, ok)
	assert.Equal(t, "Luna", p.Nombre)
}

func TestCache_ConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	c := newCache(kvstore.NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, c.Add(ctx, pet{ID: fmt.Sprint(i)}))
		}(i)
	}
	wg.Wait()

	assert.Len(t, c.List(ctx), 20)
}
