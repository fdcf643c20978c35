package owner

import (
	"strings"
	"time"

	"myvet/internal/apiclient"
)

// Pet es la mascota tal como viaja por la red y como se guarda en el caché.
type Pet struct {
	ID        string `json:"id"`
	Name      string `json:"nombre"`
	Species   string `json:"especie"`
	Breed     string `json:"raza,omitempty"`
	BirthDate string `json:"fechaNacimiento,omitempty"`
	Sex       string `json:"sexo,omitempty"`
}

type PetInput struct {
	Name      string `json:"nombre"`
	Species   string `json:"especie"`
	Breed     string `json:"raza,omitempty"`
	BirthDate string `json:"fechaNacimiento,omitempty"`
	Sex       string `json:"sexo,omitempty"`
}

// normalize recorta y deja los opcionales vacíos fuera del JSON.
func (in PetInput) normalize() PetInput {
	return PetInput{
		Name:      strings.TrimSpace(in.Name),
		Species:   strings.TrimSpace(in.Species),
		Breed:     strings.TrimSpace(in.Breed),
		BirthDate: strings.TrimSpace(in.BirthDate),
		Sex:       strings.TrimSpace(in.Sex),
	}
}

func (in PetInput) validate() error {
	if in.Name == "" {
		return apiclient.Invalid("nombre es obligatorio")
	}
	if in.Species == "" {
		return apiclient.Invalid("especie es obligatoria")
	}
	return nil
}

// PetPatch: nil => no se envía.
type PetPatch struct {
	Name      *string `json:"nombre,omitempty"`
	Species   *string `json:"especie,omitempty"`
	Breed     *string `json:"raza,omitempty"`
	BirthDate *string `json:"fechaNacimiento,omitempty"`
	Sex       *string `json:"sexo,omitempty"`
}

func (p PetPatch) Empty() bool {
	return p.Name == nil && p.Species == nil && p.Breed == nil && p.BirthDate == nil && p.Sex == nil
}

// Apply aplica el patch sobre una copia local.
func (p PetPatch) Apply(pet Pet) Pet {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&pet.Name, p.Name)
	set(&pet.Species, p.Species)
	set(&pet.Breed, p.Breed)
	set(&pet.BirthDate, p.BirthDate)
	set(&pet.Sex, p.Sex)
	return pet
}

type Appointment struct {
	ID          string `json:"id"`
	DateTimeISO string `json:"fechaIso"`
	Reason      string `json:"motivo"`
	PetID       string `json:"mascotaId"`
	OwnerName   string `json:"duenioNombre,omitempty"`
	Status      string `json:"estado,omitempty"`
	Notes       string `json:"notas,omitempty"`
}

type appointmentRequest struct {
	DateTimeISO string `json:"fechaIso"`
	Reason      string `json:"motivo"`
	PetID       string `json:"mascotaId"`
}

type AppointmentPatch struct {
	DateTimeISO *string `json:"fechaIso,omitempty"`
	Reason      *string `json:"motivo,omitempty"`
	PetID       *string `json:"mascotaId,omitempty"`
}

type ProfileInput struct {
	Name    string `json:"nombre"`
	Phone   string `json:"telefono,omitempty"`
	Address string `json:"direccion,omitempty"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ValidDateTime acepta RFC3339 o la forma corta "YYYY-MM-DDTHH:MM" del formulario.
func ValidDateTime(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
