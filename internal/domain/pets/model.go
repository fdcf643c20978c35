package pets

import "time"

// Especies más comunes. El backend acepta cualquier texto; estas son las
// que ofrece el formulario de la app.
const (
	SpeciesDog = "perro"
	SpeciesCat = "gato"
)

// Sexo de la mascota.
const (
	SexMale   = "macho"
	SexFemale = "hembra"
)

// Pet representa el perfil básico de una mascota registrada en el sistema.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species string
	Breed   string
	Sex     string

	BirthDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
