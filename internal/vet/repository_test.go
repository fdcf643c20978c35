package vet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"myvet/internal/apiclient"
	"myvet/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, h http.HandlerFunc) *Repository {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	f := apiclient.NewFactory(ts.URL, httpclient.Uniform(2*time.Second), nil)
	c, err := f.Authenticated(httpclient.TokenFunc(func(context.Context) (string, bool) { return "vt", true }), nil)
	require.NoError(t, err)
	return NewRepository(c)
}

func TestUpdateAppointment_SendsPatch(t *testing.T) {
	var method, path string
	var body map[string]any
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_ = json.NewEncoder(w).Encode(Appointment{ID: "c1", Status: StatusInProgress, Notes: "fiebre"})
	})

	res := repo.UpdateAppointment(context.Background(), "c1", "en_curso", " fiebre ")
	require.True(t, res.IsOk(), "%v", res.Err())
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/api/vet/citas/c1", path)
	assert.Equal(t, map[string]any{"estado": "en_curso", "notas": "fiebre"}, body)
	assert.Equal(t, StatusInProgress, res.ValueOr(Appointment{}).Status)
}

func TestUpdateAppointment_OnlyNotes(t *testing.T) {
	var body map[string]any
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_ = json.NewEncoder(w).Encode(Appointment{ID: "c1"})
	})

	require.True(t, repo.UpdateAppointment(context.Background(), "c1", "", "ok").IsOk())
	assert.Equal(t, map[string]any{"notas": "ok"}, body)
}

func TestUpdateAppointment_LocalValidation(t *testing.T) {
	called := false
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	ctx := context.Background()

	assert.ErrorIs(t, repo.UpdateAppointment(ctx, "c1", "confirmada", "").Err(), apiclient.ErrInvalidInput)
	assert.ErrorIs(t, repo.UpdateAppointment(ctx, "c1", "", "  ").Err(), apiclient.ErrInvalidInput)
	assert.ErrorIs(t, repo.UpdateAppointment(ctx, "", "hecha", "").Err(), apiclient.ErrInvalidInput)
	assert.False(t, called)
}

func TestListings(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/vet/me":
			_ = json.NewEncoder(w).Encode(Profile{ID: "v1", Name: "Dra. Vera", ClinicName: "Patitas"})
		case "/api/vet/owners":
			_ = json.NewEncoder(w).Encode([]OwnerSummary{{ID: "o1", Name: "Ana", Email: "a@b.com"}})
		case "/api/vet/mascotas":
			_ = json.NewEncoder(w).Encode([]PetSummary{{ID: "p1", Name: "Luna", Species: "gato", OwnerName: "Ana"}})
		case "/api/vet/citas":
			_ = json.NewEncoder(w).Encode([]Appointment{{ID: "c1", Status: StatusPending}})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	assert.Equal(t, "Patitas", repo.Me(ctx).ValueOr(Profile{}).ClinicName)
	assert.Equal(t, "Ana", repo.Owners(ctx).ValueOr(nil)[0].Name)
	assert.Equal(t, "Ana", repo.Pets(ctx).ValueOr(nil)[0].OwnerName)
	assert.Equal(t, StatusPending, repo.Appointments(ctx).ValueOr(nil)[0].Status)
}

func TestMe_MissingEndpointMessage(t *testing.T) {
	repo := newRepo(t, http.NotFound)

	err := repo.Me(context.Background()).Err()
	require.Error(t, err)
	assert.Equal(t, apiclient.KindNotFound, apiclient.Classify(err))
	assert.Contains(t, apiclient.Message(err), "/api/vet/me")
}

func TestSaveProfile(t *testing.T) {
	var body map[string]any
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vet/me/profile", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_, _ = w.Write([]byte("true"))
	})
	ctx := context.Background()

	assert.ErrorIs(t, repo.SaveProfile(ctx, Profile{}).Err(), apiclient.ErrInvalidInput)

	res := repo.SaveProfile(ctx, Profile{ID: "x", Email: "x@y.z", Name: "Dra. Vera", Speciality: "felinos"})
	require.True(t, res.IsOk())
	assert.Equal(t, map[string]any{"nombre": "Dra. Vera", "speciality": "felinos"}, body)
}
