package entity

import "time"

// Provider proveedor de productos.
type Provider struct {
	ID        string
	Name      string
	RIT       string
	City      string
	Country   string
	ImageURL  *string
	Email     string
	Phone     string
	CreatedAt time.Time
}
