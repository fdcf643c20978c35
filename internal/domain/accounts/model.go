package accounts

import "time"

// Roles aceptados por el backend. Coinciden con el claim "role" del token.
const (
	RoleOwner = "owner"
	RoleVet   = "veterinario"
)

func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleVet
}

// User es la cuenta de acceso. PasswordHash es bcrypt.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	Name         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerProfile son los datos de contacto del dueño.
type OwnerProfile struct {
	UserID  string
	Name    string
	Phone   string
	Address string

	UpdatedAt time.Time
}

// VetProfile agrega los datos de la clínica.
type VetProfile struct {
	UserID             string
	Name               string
	Phone              string
	Address            string
	ClinicName         string
	ClinicPhone        string
	ClinicAddress      string
	Speciality         string
	RegistrationNumber string

	UpdatedAt time.Time
}
