package entity

import "time"

// Route agrupación de pedidos de un mismo centro de distribución para su entrega.
type Route struct {
	ID                   string
	Name                 string
	VehiclePlate         string
	Restrictions         *string
	DeliveryDeadline     time.Time
	DistributionCenterID string
	CreatedAt            time.Time
}
