package prediagnosis

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

func TestRequest(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/prediagnostico", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_, _ = w.Write([]byte(`{"recomendaciones":"hidratar","red_flags":"sangre en heces","disclaimer":"no reemplaza consulta","_model":"rules-v1"}`))
	}))
	defer ts.Close()

	c, err := apiclient.NewFactory(ts.URL, httpclient.Uniform(2*time.Second), nil).Anonymous()
	require.NoError(t, err)
	repo := NewRepository(c)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Request(ctx, Request{Symptoms: "   "}).Err(), apiclient.ErrInvalidInput)

	res := repo.Request(ctx, Request{Symptoms: " vómitos ", Species: "perro", Age: ""})
	require.True(t, res.IsOk(), "%v", res.Err())
	assert.Equal(t, map[string]any{"sintomas": "vómitos", "especie": "perro"}, body)

	got := res.ValueOr(Response{})
	assert.Equal(t, "hidratar", got.Recommendations)
	assert.Equal(t, "sangre en heces", got.RedFlags)
	assert.Equal(t, "rules-v1", got.Model)
	assert.NotEmpty(t, got.Disclaimer)
}
