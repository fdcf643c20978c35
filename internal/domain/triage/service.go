package triage

import (
	"errors"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	// Model identifica el motor que generó la respuesta.
	Model = "keyword-rules-v1"

	Disclaimer = "Orientación preliminar generada automáticamente. No reemplaza la evaluación de un médico veterinario."

	defaultAdvice = "Observa a tu mascota durante las próximas horas, mantén agua fresca disponible y agenda una consulta si los síntomas persisten."
)

type rule struct {
	keywords []string
	advice   string
	redFlag  bool
}

// Las reglas se evalúan en orden; se aplican todas las que calcen.
var rules = []rule{
	{keywords: []string{"convuls", "desmay", "inconsciente"}, redFlag: true,
		advice: "Acude de inmediato a urgencias veterinarias."},
	{keywords: []string{"sangre", "sangrado", "hemorrag"}, redFlag: true,
		advice: "Si hay sangrado activo aplica presión suave con un paño limpio y acude a urgencias."},
	{keywords: []string{"no respira", "dificultad para respirar", "ahog"}, redFlag: true,
		advice: "La dificultad respiratoria es una urgencia; traslada a tu mascota sin demora."},
	{keywords: []string{"veneno", "intoxic", "chocolate"}, redFlag: true,
		advice: "Ante sospecha de intoxicación no induzcas el vómito sin indicación profesional; consulta de inmediato."},
	{keywords: []string{"vómito", "vomito", "vomita"},
		advice: "Retira la comida por unas horas y ofrece agua en pequeñas cantidades."},
	{keywords: []string{"diarrea"},
		advice: "Mantén la hidratación y ofrece dieta blanda; consulta si dura más de 24 horas."},
	{keywords: []string{"tos", "estornud"},
		advice: "Evita cambios bruscos de temperatura y vigila si aparece fiebre o decaimiento."},
	{keywords: []string{"cojea", "cojera", "pata"},
		advice: "Limita la actividad física y revisa la extremidad en busca de heridas o cuerpos extraños."},
	{keywords: []string{"pica", "rasca", "picazón", "pulga"},
		advice: "Revisa la piel en busca de parásitos y confirma que el tratamiento antipulgas esté al día."},
	{keywords: []string{"no come", "inapetencia", "decaído", "decaido"},
		advice: "Registra cuánto come y bebe; la inapetencia por más de un día requiere consulta."},
}

type Input struct {
	Symptoms string
	Species  string
	Age      string
	Sex      string
}

type Result struct {
	Recommendations string
	RedFlags        string
	Disclaimer      string
	Model           string
}

// Assess aplica las reglas por palabra clave sobre los síntomas. Es determinista.
func Assess(in Input) (Result, error) {
	text := strings.ToLower(strings.TrimSpace(in.Symptoms))
	if text == "" {
		return Result{}, ErrInvalidInput
	}

	var advice, flags []string
	for _, r := range rules {
		if !matches(text, r.keywords) {
			continue
		}
		if r.redFlag {
			flags = append(flags, r.advice)
			continue
		}
		advice = append(advice, r.advice)
	}
	if len(advice) == 0 {
		advice = append(advice, defaultAdvice)
	}
	if isSenior(in.Species, in.Age) {
		advice = append(advice, "Por la edad de tu mascota conviene no postergar la consulta.")
	}

	return Result{
		Recommendations: strings.Join(advice, " "),
		RedFlags:        strings.Join(flags, " "),
		Disclaimer:      Disclaimer,
		Model:           Model,
	}, nil
}

func matches(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// isSenior usa la edad en años si viene como número al inicio ("12", "12 años").
func isSenior(species, age string) bool {
	n := 0
	for _, c := range strings.TrimSpace(age) {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	limit := 8
	if strings.Contains(strings.ToLower(species), "gato") {
		limit = 10
	}
	return n >= limit
}
