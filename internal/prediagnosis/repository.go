// Package prediagnosis pide al backend una orientación preliminar a partir
// de síntomas. No reemplaza la consulta; la respuesta trae su disclaimer.
package prediagnosis

import (
	"context"
	"net/http"
	"strings"

	"myvet/internal/apiclient"
	"myvet/internal/platform/httpclient"
	"myvet/internal/result"
)

type Request struct {
	Symptoms string `json:"sintomas"`
	Species  string `json:"especie,omitempty"`
	Age      string `json:"edad,omitempty"`
	Sex      string `json:"sexo,omitempty"`
}

type Response struct {
	Recommendations string `json:"recomendaciones"`
	RedFlags        string `json:"red_flags,omitempty"`
	Disclaimer      string `json:"disclaimer"`
	Model           string `json:"_model,omitempty"`
}

type Repository struct {
	client *httpclient.Client
}

func NewRepository(client *httpclient.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Request(ctx context.Context, in Request) result.Result[Response] {
	in = Request{
		Symptoms: strings.TrimSpace(in.Symptoms),
		Species:  strings.TrimSpace(in.Species),
		Age:      strings.TrimSpace(in.Age),
		Sex:      strings.TrimSpace(in.Sex),
	}
	if in.Symptoms == "" {
		return result.Fail[Response](apiclient.Invalid("describe los síntomas"))
	}
	return apiclient.Call[Response](ctx, r.client, "prediagnosis", http.MethodPost, "/api/ai/prediagnostico", in)
}
