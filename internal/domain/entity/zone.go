package entity

import "time"

// Zone zona geográfica comercial.
type Zone struct {
	ID          string
	Description string
	CreatedAt   time.Time
}
