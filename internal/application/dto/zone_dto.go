package dto

import "time"

// ZoneResponse salida básica de una zona.
type ZoneResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ZoneDetailResponse zona con sus vendedores y planes de venta.
type ZoneDetailResponse struct {
	ZoneResponse
	Sellers      []UserResponse        `json:"sellers"`
	SellingPlans []SellingPlanResponse `json:"selling_plans"`
}

// ZonesResponse listado de zonas.
type ZonesResponse struct {
	TotalCount int            `json:"total_count"`
	Zones      []ZoneResponse `json:"zones"`
}
