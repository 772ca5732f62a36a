package dto

import "time"

// RouteCreateRequest agrupa pedidos de un centro en una ruta.
type RouteCreateRequest struct {
	Name                 string   `json:"name" validate:"required,max=100"`
	VehiclePlate         string   `json:"vehicle_plate" validate:"required,max=20"`
	Restrictions         *string  `json:"restrictions" validate:"omitempty,max=255"`
	DistributionCenterID string   `json:"distribution_center_id" validate:"required,uuid"`
	OrderIDs             []string `json:"order_ids" validate:"required,min=1,dive,required"`
}

// RouteBase campos propios de la ruta.
type RouteBase struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	VehiclePlate     string    `json:"vehicle_plate"`
	Restrictions     *string   `json:"restrictions,omitempty"`
	DeliveryDeadline Date      `json:"delivery_deadline"`
	CreatedAt        time.Time `json:"created_at"`
}

// RouteResponse ruta con su centro y pedidos.
type RouteResponse struct {
	RouteBase
	DistributionCenter DistributionCenterResponse `json:"distribution_center"`
	Orders             []OrderBase                `json:"orders"`
}

// RouteMinimalResponse elemento del listado de rutas.
type RouteMinimalResponse struct {
	RouteBase
	DistributionCenter DistributionCenterResponse `json:"distribution_center"`
}

// RoutesResponse listado de rutas.
type RoutesResponse struct {
	TotalCount int                    `json:"total_count"`
	Routes     []RouteMinimalResponse `json:"routes"`
}

// RouteStop una parada del mapa (un pedido).
type RouteStop struct {
	OrderID       string   `json:"order_id"`
	OrderStatus   string   `json:"order_status"`
	DeliveryDate  Date     `json:"delivery_date"`
	ClientName    string   `json:"client_name"`
	ClientAddress string   `json:"client_address"`
	ClientPhone   string   `json:"client_phone"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// RouteMapResponse ruta con sus paradas.
type RouteMapResponse struct {
	RouteBase
	TotalCount int         `json:"total_count"`
	Stops      []RouteStop `json:"stops"`
}
