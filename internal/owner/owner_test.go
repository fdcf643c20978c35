package owner

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"myvet/internal/apiclient"
	"myvet/internal/petcache"
	"myvet/internal/platform/httpclient"
	"myvet/internal/platform/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

type backend struct {
	mu    sync.Mutex
	calls []call
	reply func(w http.ResponseWriter, r *http.Request)
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	c := call{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &c.Body)
	}
	b.mu.Lock()
	b.calls = append(b.calls, c)
	b.mu.Unlock()
	b.reply(w, r)
}

func (b *backend) Calls() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

func newRepo(t *testing.T, b *backend) (*Repository, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(b)
	t.Cleanup(ts.Close)

	f := apiclient.NewFactory(ts.URL, httpclient.Uniform(2*time.Second), nil)
	c, err := f.Authenticated(httpclient.TokenFunc(func(context.Context) (string, bool) { return "tok", true }), nil)
	require.NoError(t, err)
	return NewRepository(c, nil), ts
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRepository_CreatePetSendsWireNames(t *testing.T) {
	b := &backend{reply: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, Pet{ID: "p1", Name: "Luna", Species: "gato"})
	}}
	repo, _ := newRepo(t, b)

	res := repo.CreatePet(context.Background(), PetInput{Name: " Luna ", Species: "gato", Breed: "  ", Sex: "hembra"})
	require.True(t, res.IsOk(), "%v", res.Err())

	calls := b.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/api/owners/me/mascotas", calls[0].Path)
	assert.Equal(t, "Bearer tok", calls[0].Auth)
	assert.Equal(t, map[string]any{"nombre": "Luna", "especie": "gato", "sexo": "hembra"}, calls[0].Body)
}

func TestRepository_ValidatesBeforeNetwork(t *testing.T) {
	b := &backend{reply: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }}
	repo, _ := newRepo(t, b)
	ctx := context.Background()

	assert.ErrorIs(t, repo.CreatePet(ctx, PetInput{Species: "perro"}).Err(), apiclient.ErrInvalidInput)
	assert.ErrorIs(t, repo.CreatePet(ctx, PetInput{Name: "Toby"}).Err(), apiclient.ErrInvalidInput)
	assert.ErrorIs(t, repo.CreateAppointment(ctx, "mañana", "control", "p1").Err(), apiclient.ErrInvalidInput)
	assert.ErrorIs(t, repo.CreateAppointment(ctx, "2026-05-10T10:00", "", "p1").Err(), apiclient.ErrInvalidInput)
	assert.ErrorIs(t, repo.UpdatePet(ctx, "p1", PetPatch{}).Err(), apiclient.ErrInvalidInput)
	assert.ErrorIs(t, repo.DeletePet(ctx, " ").Err(), apiclient.ErrInvalidInput)
	assert.ErrorIs(t, repo.SaveProfile(ctx, ProfileInput{Phone: "123"}).Err(), apiclient.ErrInvalidInput)

	assert.Empty(t, b.Calls())
}

func TestRepository_AppointmentsRoundTrip(t *testing.T) {
	b := &backend{reply: func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, []Appointment{{ID: "c1", DateTimeISO: "2026-05-10T10:00", Reason: "vacuna", PetID: "p1", Status: "pendiente"}})
		case http.MethodPost, http.MethodPut:
			writeJSON(w, http.StatusOK, Appointment{ID: "c1", DateTimeISO: "2026-05-10T10:00", Reason: "control", PetID: "p1"})
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, true)
		}
	}}
	repo, _ := newRepo(t, b)
	ctx := context.Background()

	list := repo.ListAppointments(ctx)
	require.True(t, list.IsOk())
	assert.Equal(t, "pendiente", list.ValueOr(nil)[0].Status)

	created := repo.CreateAppointment(ctx, "2026-05-10T10:00", "control", "p1")
	require.True(t, created.IsOk(), "%v", created.Err())

	reason := "control anual"
	require.True(t, repo.UpdateAppointment(ctx, "c1", AppointmentPatch{Reason: &reason}).IsOk())
	require.True(t, repo.DeleteAppointment(ctx, "c1").ValueOr(false))

	calls := b.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, map[string]any{"fechaIso": "2026-05-10T10:00", "motivo": "control", "mascotaId": "p1"}, calls[1].Body)
	assert.Equal(t, "PUT /api/owners/me/citas/c1", calls[2].Method+" "+calls[2].Path)
	assert.Equal(t, map[string]any{"motivo": "control anual"}, calls[2].Body)
	assert.Equal(t, "DELETE /api/owners/me/citas/c1", calls[3].Method+" "+calls[3].Path)
}

func TestRepository_ErrorsCarryOperation(t *testing.T) {
	b := &backend{reply: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}}
	repo, _ := newRepo(t, b)

	err := repo.ListPets(context.Background()).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner: list pets")
	assert.Equal(t, apiclient.KindForbidden, apiclient.Classify(err))
}

func TestPetService_DualWriteKeepsLocalPetWhenRemoteFails(t *testing.T) {
	var remoteCalls int32
	b := &backend{reply: func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&remoteCalls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}}
	repo, _ := newRepo(t, b)
	ctx := context.Background()

	svc := NewPetService(repo, kvstore.NewMemory(), ModeDualWrite, nil)
	created := svc.CreatePet(ctx, PetInput{Name: "Luna", Species: "gato"})
	require.True(t, created.IsOk(), "%v", created.Err())
	svc.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&remoteCalls))

	list := svc.ListPets(ctx)
	require.True(t, list.IsOk())
	pets := list.ValueOr(PetList{}).Pets
	require.Len(t, pets, 1)
	assert.Equal(t, "Luna", pets[0].Name)
	assert.NotEmpty(t, pets[0].ID)
	// la lista sale del caché, no del backend
	assert.Equal(t, int32(1), atomic.LoadInt32(&remoteCalls))
}

func TestPetService_DualWriteUpdateAndDelete(t *testing.T) {
	b := &backend{reply: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, true)
	}}
	repo, _ := newRepo(t, b)
	ctx := context.Background()

	svc := NewPetService(repo, kvstore.NewMemory(), ModeDualWrite, nil)
	svc.newID = func() string { return "local-1" }

	require.True(t, svc.CreatePet(ctx, PetInput{Name: "Luna", Species: "gato"}).IsOk())

	name := "Luna Blanca"
	upd := svc.UpdatePet(ctx, "local-1", PetPatch{Name: &name})
	require.True(t, upd.IsOk())
	assert.Equal(t, "Luna Blanca", upd.ValueOr(Pet{}).Name)

	assert.ErrorIs(t, svc.UpdatePet(ctx, "nope", PetPatch{Name: &name}).Err(), ErrPetNotFound)

	require.True(t, svc.DeletePet(ctx, "local-1").IsOk())
	svc.Wait()
	assert.Empty(t, svc.Cached(ctx))
}

func TestPetService_RemoteRefreshesCache(t *testing.T) {
	b := &backend{reply: func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, []Pet{{ID: "p1", Name: "Luna", Species: "gato"}})
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, Pet{ID: "p2", Name: "Toby", Species: "perro"})
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, true)
		}
	}}
	repo, _ := newRepo(t, b)
	ctx := context.Background()
	kv := kvstore.NewMemory()

	svc := NewPetService(repo, kv, ModeRemote, nil)
	list := svc.ListPets(ctx)
	require.True(t, list.IsOk())
	assert.False(t, list.ValueOr(PetList{}).Stale)
	assert.Len(t, svc.Cached(ctx), 1)

	require.True(t, svc.CreatePet(ctx, PetInput{Name: "Toby", Species: "perro"}).IsOk())
	assert.Len(t, svc.Cached(ctx), 2)

	require.True(t, svc.DeletePet(ctx, "p1").IsOk())
	cached := svc.Cached(ctx)
	require.Len(t, cached, 1)
	assert.Equal(t, "p2", cached[0].ID)

	raw, ok, err := kv.Get(ctx, petcache.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"nombre":"Toby"`)
}

func TestPetService_RemoteFallsBackToCacheOnTransportError(t *testing.T) {
	b := &backend{reply: func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []Pet{{ID: "p1", Name: "Luna", Species: "gato"}})
	}}
	repo, ts := newRepo(t, b)
	ctx := context.Background()

	svc := NewPetService(repo, kvstore.NewMemory(), ModeRemote, nil)
	require.True(t, svc.ListPets(ctx).IsOk())

	ts.Close()

	list := svc.ListPets(ctx)
	require.True(t, list.IsOk(), "%v", list.Err())
	got := list.ValueOr(PetList{})
	assert.True(t, got.Stale)
	require.Len(t, got.Pets, 1)
	assert.Equal(t, "Luna", got.Pets[0].Name)

	// sin red, crear falla y el caché no cambia
	assert.Equal(t, apiclient.KindTransport, apiclient.Classify(svc.CreatePet(ctx, PetInput{Name: "Toby", Species: "perro"}).Err()))
	assert.Len(t, svc.Cached(ctx), 1)
}

func TestPetService_RemoteDoesNotMaskServerErrors(t *testing.T) {
	b := &backend{reply: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}}
	repo, _ := newRepo(t, b)

	res := NewPetService(repo, kvstore.NewMemory(), ModeRemote, nil).ListPets(context.Background())
	assert.True(t, apiclient.IsUnauthorized(res.Err()))
}

func TestParseModeAndDateTime(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, m)
	m, err = ParseMode("dual-write")
	require.NoError(t, err)
	assert.Equal(t, ModeDualWrite, m)
	_, err = ParseMode("local")
	assert.Error(t, err)

	assert.True(t, ValidDateTime("2026-05-10T10:00"))
	assert.True(t, ValidDateTime("2026-05-10T10:00:00Z"))
	assert.False(t, ValidDateTime("10/05/2026"))
}
