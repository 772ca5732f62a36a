package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderProductRequest línea solicitada.
type OrderProductRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// OrderCreateRequest entrada para crear un pedido.
type OrderCreateRequest struct {
	Comments             *string               `json:"comments" validate:"omitempty,max=255"`
	DeliveryDate         Date                  `json:"delivery_date" validate:"required"`
	DistributionCenterID string                `json:"distribution_center_id" validate:"required,uuid"`
	ClientID             *string               `json:"client_id" validate:"omitempty,uuid"`
	Products             []OrderProductRequest `json:"products" validate:"required,min=1,dive"`
}

// OrderStatusUpdateRequest cambio de estado de un pedido.
type OrderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=received preparing in_transit delivered returned"`
}

// OrderBase campos propios del pedido.
type OrderBase struct {
	ID           string    `json:"id"`
	Comments     *string   `json:"comments,omitempty"`
	DeliveryDate Date      `json:"delivery_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderProductDetail línea del pedido con los datos del producto.
type OrderProductDetail struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Store        string          `json:"store"`
	Batch        string          `json:"batch"`
	DueDate      Date            `json:"due_date"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Quantity     int             `json:"quantity"`
	ImageURL     *string         `json:"image_url,omitempty"`
}

// OrderResponse pedido con todas sus relaciones.
type OrderResponse struct {
	OrderBase
	Seller             *UserResponse              `json:"seller,omitempty"`
	Client             *UserResponse              `json:"client,omitempty"`
	DistributionCenter DistributionCenterResponse `json:"distribution_center"`
	Route              *RouteBase                 `json:"route,omitempty"`
	Products           []OrderProductDetail       `json:"products"`
}

// OrderMinimalResponse elemento del listado de pedidos.
type OrderMinimalResponse struct {
	OrderBase
	DistributionCenter DistributionCenterResponse `json:"distribution_center"`
	Route              *RouteBase                 `json:"route,omitempty"`
}

// OrdersResponse listado de pedidos.
type OrdersResponse struct {
	TotalCount int                    `json:"total_count"`
	Orders     []OrderMinimalResponse `json:"orders"`
}

// OrdersQuery filtros opcionales del listado de pedidos.
type OrdersQuery struct {
	DeliveryDate string `query:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	OrderStatus  string `query:"order_status" validate:"omitempty,oneof=received preparing in_transit delivered returned"`
}
