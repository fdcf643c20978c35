package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"myvet/internal/adapters/auth/localjwt"
	"myvet/internal/cli"
	"myvet/internal/platform/config"
	"myvet/internal/platform/kvstore"
	"myvet/internal/platform/logger"
	"myvet/internal/router"
)

func newSandbox(t *testing.T, prefix string) *httptest.Server {
	t.Helper()
	signer := localjwt.New(localjwt.Config{Secret: "test-secret", Issuer: "myvet-test", TTL: time.Hour})
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: signer,
		Issuer:       signer,
		APIPrefix:    prefix,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_OwnerAndVet(t *testing.T) {
	ts := newSandbox(t, router.DefaultAPIPrefix)
	api := ts.URL + "/api"

	// 1) Registro de dueño y veterinario
	ownerToken := register(t, api, "ana@correo.cl", "secreta1", "owner", "Ana")
	vetToken := register(t, api, "vet@clinica.cl", "secreta2", "veterinario", "Dra. Soto")

	// 2) Email repetido => 409 con el texto del backend
	{
		st, body := doReq(t, api, "POST", "/auth/register", "", map[string]any{
			"email": "ANA@correo.cl", "password": "otraclave", "role": "owner",
		})
		if st != http.StatusConflict || !strings.Contains(string(body), "email ya registrado") {
			t.Fatalf("expected 409 duplicate email, got %d body=%s", st, string(body))
		}
	}

	// 3) Login con la clave correcta
	{
		st, body := doReq(t, api, "POST", "/auth/login", "", map[string]any{
			"email": "ana@correo.cl", "password": "secreta1",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
		var out struct {
			Token string `json:"token"`
			User  struct {
				Role string `json:"role"`
			} `json:"user"`
		}
		mustJSON(t, body, &out)
		if out.Token == "" || out.User.Role != "owner" {
			t.Fatalf("unexpected login body=%s", string(body))
		}
		ownerToken = out.Token
	}
	{
		st, _ := doReq(t, api, "POST", "/auth/login", "", map[string]any{
			"email": "ana@correo.cl", "password": "mala",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 wrong password, got %d", st)
		}
	}

	// 4) Dueño registra mascota
	var pet struct {
		ID   string `json:"id"`
		Name string `json:"nombre"`
	}
	{
		st, body := doReq(t, api, "POST", "/owners/me/mascotas", ownerToken, map[string]any{
			"nombre":          "Luna",
			"especie":         "gato",
			"fechaNacimiento": "2020-04-01",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
		}
		mustJSON(t, body, &pet)
	}

	// 5) Veterinario no puede usar rutas de dueño
	{
		st, _ := doReq(t, api, "GET", "/owners/me/mascotas", vetToken, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 vet on owner route, got %d", st)
		}
	}

	// 6) Dueño agenda cita
	var cita struct {
		ID     string `json:"id"`
		Status string `json:"estado"`
	}
	{
		st, body := doReq(t, api, "POST", "/owners/me/citas", ownerToken, map[string]any{
			"fechaIso":  "2026-06-01T10:30",
			"motivo":    "Vacuna anual",
			"mascotaId": pet.ID,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create cita, got %d body=%s", st, string(body))
		}
		mustJSON(t, body, &cita)
		if cita.Status != "pendiente" {
			t.Fatalf("expected new cita pendiente, got %q", cita.Status)
		}
	}

	// 7) Veterinario ve la cita con nombres y la marca como hecha
	{
		st, body := doReq(t, api, "GET", "/vet/citas", vetToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 vet citas, got %d body=%s", st, string(body))
		}
		var list []map[string]any
		mustJSON(t, body, &list)
		if len(list) != 1 || list[0]["mascotaNombre"] != "Luna" || list[0]["duenioNombre"] != "Ana" {
			t.Fatalf("unexpected vet citas body=%s", string(body))
		}
	}
	{
		st, body := doReq(t, api, "PATCH", "/vet/citas/"+cita.ID, vetToken, map[string]any{
			"estado": "cancelada",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown estado, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, api, "PATCH", "/vet/citas/"+cita.ID, vetToken, map[string]any{
			"estado": "hecha",
			"notas":  "Sin novedades",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch cita, got %d body=%s", st, string(body))
		}
	}

	// 8) Dueño ve el nuevo estado
	{
		st, body := doReq(t, api, "GET", "/owners/me/citas", ownerToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 owner citas, got %d body=%s", st, string(body))
		}
		var list []map[string]any
		mustJSON(t, body, &list)
		if len(list) != 1 || list[0]["estado"] != "hecha" || list[0]["notas"] != "Sin novedades" {
			t.Fatalf("owner does not see vet update, body=%s", string(body))
		}
	}

	// 9) Directorio del veterinario
	{
		st, body := doReq(t, api, "GET", "/vet/owners", vetToken, nil)
		if st != http.StatusOK || !strings.Contains(string(body), "ana@correo.cl") {
			t.Fatalf("expected owner in directory, got %d body=%s", st, string(body))
		}
	}

	// 10) Sin token => 401
	{
		st, _ := doReq(t, api, "GET", "/owners/me/citas", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}
}

func TestHTTP_DevHeaders_RoleGuards(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	{
		st, body := devReq(t, ts.URL, "POST", "/owners/me/mascotas", "owner-1", "owner", map[string]any{
			"nombre": "Milo", "especie": "perro",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create pet in dev mode, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := devReq(t, ts.URL, "GET", "/owners/me/mascotas", "owner-1", "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 without role, got %d", st)
		}
	}
	{
		st, body := devReq(t, ts.URL, "GET", "/owners/me/mascotas", "owner-2", "owner", nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty list for other owner, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := devReq(t, ts.URL, "POST", "/ai/prediagnostico", "owner-1", "owner", map[string]any{
			"sintomas": "vomita desde ayer",
		})
		if st != http.StatusOK || !strings.Contains(string(body), "disclaimer") {
			t.Fatalf("expected 200 prediagnostico, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := devReq(t, ts.URL, "POST", "/feedback", "owner-1", "owner", map[string]any{"rating": 9})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 rating out of range, got %d", st)
		}
	}
	{
		st, _ := devReq(t, ts.URL, "GET", "/health", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 health, got %d", st)
		}
	}
}

// El CLI completo contra el sandbox montado en la raíz: cada llamada
// /api/... da 404 y el cliente reintenta sin el prefijo.
func TestCLI_AgainstSandboxWithoutAPIPrefix(t *testing.T) {
	ts := newSandbox(t, "")

	cfg := config.Client{
		BaseURL:    ts.URL,
		Timeout:    2 * time.Second,
		Store:      config.StoreMemory,
		MissingExp: config.MissingExpExpired,
		PetMode:    config.PetModeRemote,
	}
	kv := kvstore.NewMemory()
	run := func(args ...string) (int, string, string) {
		var out, errw bytes.Buffer
		code := cli.Execute(context.Background(), args, cli.Options{
			Config: &cfg,
			KV:     kv,
			Log:    logger.Nop(),
			Out:    &out,
			Err:    &errw,
		})
		return code, out.String(), errw.String()
	}

	if code, _, errOut := run("register", "--email", "ana@correo.cl", "--password", "secreta1", "--name", "Ana"); code != cli.Success {
		t.Fatalf("register exit %d: %s", code, errOut)
	}
	if code, _, errOut := run("pets", "add", "--name", "Luna", "--species", "gato"); code != cli.Success {
		t.Fatalf("pets add exit %d: %s", code, errOut)
	}
	code, out, errOut := run("pets", "list", "-o", "json")
	if code != cli.Success {
		t.Fatalf("pets list exit %d: %s", code, errOut)
	}
	var pets []map[string]any
	mustJSON(t, []byte(out), &pets)
	if len(pets) != 1 || pets[0]["nombre"] != "Luna" {
		t.Fatalf("unexpected pets: %s", out)
	}

	if code, _, _ := run("logout"); code != cli.Success {
		t.Fatalf("logout exit %d", code)
	}
	if code, _, errOut := run("pets", "list"); code != cli.AuthError {
		t.Fatalf("expected auth error after logout, got %d: %s", code, errOut)
	}
}

func register(t *testing.T, baseURL, email, password, role, name string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/auth/register", "", map[string]any{
		"email": email, "password": password, "role": role, "nombre": name,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register %s, got %d body=%s", email, st, string(body))
	}
	var out struct {
		Token string `json:"token"`
	}
	mustJSON(t, body, &out)
	return out.Token
}

func mustJSON(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(b))
	}
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()
	hdr := http.Header{}
	if token != "" {
		hdr.Set("Authorization", "Bearer "+token)
	}
	return send(t, baseURL, method, path, hdr, body)
}

func devReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()
	hdr := http.Header{}
	if debugUserID != "" {
		hdr.Set("X-Debug-User-ID", debugUserID)
	}
	if debugRole != "" {
		hdr.Set("X-Debug-Role", debugRole)
	}
	return send(t, baseURL, method, path, hdr, body)
}

func send(t *testing.T, baseURL, method, path string, hdr http.Header, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header[k] = v
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
