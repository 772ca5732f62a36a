package dto

import "time"

// DistributionCenterCreateRequest alta de un centro de distribución.
type DistributionCenterCreateRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Address string `json:"address" validate:"required,min=1,max=255"`
	City    string `json:"city" validate:"required,min=1,max=100"`
	Country string `json:"country" validate:"required,min=1,max=100"`
}

// DistributionCenterResponse salida de un centro.
type DistributionCenterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// DistributionCentersResponse listado de centros.
type DistributionCentersResponse struct {
	TotalCount          int                          `json:"total_count"`
	DistributionCenters []DistributionCenterResponse `json:"distribution_centers"`
}
