package entity

import "time"

// Geolocation punto geográfico (opcionalmente con su dirección).
type Geolocation struct {
	ID        string
	Address   *string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}
