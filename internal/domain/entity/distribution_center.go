package entity

import "time"

// DistributionCenter centro de distribución desde donde salen los pedidos.
type DistributionCenter struct {
	ID        string
	Name      string
	Address   string
	City      string
	Country   string
	CreatedAt time.Time
}
