package feedback

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	ID         string
	UserID     string
	Rating     int
	Suggestion string
	CreatedAt  time.Time
}

// Summary es el promedio global. Avg es 0 cuando Count es 0.
type Summary struct {
	Avg   float64
	Count int
}
