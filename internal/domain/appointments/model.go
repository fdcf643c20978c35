package appointments

import "time"

// Status es el estado clínico de la cita. Valores en español porque son
// los que viajan en el JSON.
type Status string

const (
	StatusPending    Status = "pendiente"
	StatusInProgress Status = "en_curso"
	StatusDone       Status = "hecha"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

type Appointment struct {
	ID          string
	OwnerUserID string
	PetID       string

	ScheduledAt time.Time
	Reason      string

	Status Status
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
