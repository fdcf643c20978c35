package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"myvet/internal/apiclient"
	"myvet/internal/auth"
	"myvet/internal/platform/config"
	"myvet/internal/platform/httpclient"
	"myvet/internal/platform/kvstore"
	"myvet/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func testToken(role string) string {
	claims := `{"exp":` + strconv.FormatInt(now.Add(time.Hour).Unix(), 10) + `,"role":"` + role + `"}`
	return "h." + base64.RawURLEncoding.EncodeToString([]byte(claims)) + ".s"
}

// fakeBackend responde login y mascotas; citas siempre da 401.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "x" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("credenciales inválidas"))
			return
		}
		role := "owner"
		if body.Email == "vet@c.com" {
			role = "veterinario"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": testToken(role),
			"user":  map[string]any{"id": "1", "email": body.Email, "role": role},
		})
	})
	mux.HandleFunc("/api/owners/me/mascotas", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"p1","nombre":"Luna","especie":"gato"}]`))
	})
	mux.HandleFunc("/api/owners/me/citas", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

type harness struct {
	cfg config.Client
	kv  kvstore.Store
}

func newHarness(baseURL string) *harness {
	return &harness{
		cfg: config.Client{
			BaseURL:    baseURL,
			Timeout:    2 * time.Second,
			Store:      config.StoreMemory,
			MissingExp: config.MissingExpExpired,
			PetMode:    config.PetModeRemote,
		},
		kv: kvstore.NewMemory(),
	}
}

func (h *harness) run(args ...string) (code int, stdout, stderr string) {
	var out, errw bytes.Buffer
	code = Execute(context.Background(), args, Options{
		Config: &h.cfg,
		KV:     h.kv,
		Log:    logger.Nop(),
		Clock:  func() time.Time { return now },
		Out:    &out,
		Err:    &errw,
	})
	return code, out.String(), errw.String()
}

func TestCLI_LoginListAndForcedLogout(t *testing.T) {
	h := newHarness(fakeBackend(t).URL)

	code, out, _ := h.run("status")
	require.Equal(t, Success, code)
	assert.Contains(t, out, "login")

	code, _, errOut := h.run("pets", "list")
	assert.Equal(t, AuthError, code)
	assert.Contains(t, errOut, "No hay sesión")

	code, out, errOut = h.run("login", "--email", "ana@correo.cl", "--password", "x")
	require.Equal(t, Success, code, errOut)
	assert.Contains(t, out, "Sesión iniciada: ana@correo.cl (owner)")
	assert.Contains(t, errOut, "→ owner_home")

	code, out, errOut = h.run("pets", "list", "-o", "json")
	require.Equal(t, Success, code, errOut)
	var pets []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &pets))
	assert.Equal(t, "Luna", pets[0]["nombre"])
	assert.NotContains(t, errOut, "→", "same screen must not navigate again")

	code, _, errOut = h.run("citas", "list")
	assert.Equal(t, AuthError, code)
	assert.Contains(t, errOut, "→ login")
	assert.Contains(t, errOut, "Sesión expirada. Inicia sesión.")

	code, out, _ = h.run("status", "-o", "yaml")
	require.Equal(t, Success, code)
	assert.Contains(t, out, "logged_in: false")
}

func TestCLI_LoginRejectedShowsBackendText(t *testing.T) {
	h := newHarness(fakeBackend(t).URL)

	code, _, errOut := h.run("login", "--email", "ana@correo.cl", "--password", "mala")
	assert.Equal(t, AuthError, code)
	assert.Contains(t, errOut, "HTTP 401 credenciales inválidas")
}

func TestCLI_RoleGuardsAndUsage(t *testing.T) {
	h := newHarness(fakeBackend(t).URL)

	code, _, _ := h.run("login", "--email", "vet@c.com", "--password", "x")
	require.Equal(t, Success, code)

	code, _, errOut := h.run("pets", "list")
	assert.Equal(t, AuthError, code)
	assert.Contains(t, errOut, "rol")

	code, _, errOut = h.run("login", "--email", "vet@c.com")
	assert.Equal(t, UsageError, code)
	assert.Contains(t, errOut, "--password")

	code, _, _ = h.run("status", "--no-such-flag")
	assert.Equal(t, UsageError, code)
}

func TestCLI_UnknownOutputRejectedBeforeWrites(t *testing.T) {
	var writes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/owners/me/mascotas", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writes.Add(1)
		}
		_, _ = w.Write([]byte(`{"id":"p1","nombre":"Luna","especie":"gato"}`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	h := newHarness(ts.URL)
	_ = h.kv.Set(context.Background(), "session", mustSession(t))

	code, _, errOut := h.run("pets", "add", "--name", "Luna", "--species", "gato", "-o", "bogus")
	assert.Equal(t, UsageError, code)
	assert.Contains(t, errOut, "bogus")
	assert.Zero(t, writes.Load())

	code, _, _ = h.run("pets", "add", "--name", "Luna", "--species", "gato", "-o", "json")
	require.Equal(t, Success, code)
	assert.Equal(t, int32(1), writes.Load())
}

func mustSession(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]string{"token": testToken("owner"), "role": "owner", "userId": "1"})
	require.NoError(t, err)
	return b
}

func TestCLI_UnreachableBackend(t *testing.T) {
	ts := fakeBackend(t)
	h := newHarness(ts.URL)
	require.Equal(t, Success, func() int { c, _, _ := h.run("login", "--email", "a@b.com", "--password", "x"); return c }())

	// primera lista llena el caché
	code, _, _ := h.run("pets", "list")
	require.Equal(t, Success, code)

	ts.Close()
	code, out, errOut := h.run("pets", "list")
	require.Equal(t, Success, code, errOut)
	assert.Contains(t, errOut, "Sin conexión")
	assert.Contains(t, out, "Luna")

	code, _, errOut = h.run("citas", "list")
	assert.Equal(t, NetworkError, code)
	assert.Contains(t, errOut, "No se pudo contactar al servidor.")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, Success, ExitCode(nil))
	assert.Equal(t, NetworkError, ExitCode(httpclient.ErrTransport))
	assert.Equal(t, AuthError, ExitCode(&httpclient.HTTPError{StatusCode: 403}))
	assert.Equal(t, UsageError, ExitCode(apiclient.Invalid("x")))
	assert.Equal(t, AuthError, ExitCode(&auth.StatusError{Code: 401}))
	assert.Equal(t, GeneralError, ExitCode(errors.New("boom")))
}
