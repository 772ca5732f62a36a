package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCreateRequest entrada para crear un producto.
type ProductCreateRequest struct {
	Name         string          `json:"name" validate:"required,min=3,max=100"`
	Details      string          `json:"details" validate:"required,min=10,max=255"`
	Store        string          `json:"store" validate:"required,min=3,max=100"`
	Batch        string          `json:"batch" validate:"required,min=5,max=50"`
	ImageURL     *string         `json:"image_url" validate:"omitempty,min=10,max=255"`
	DueDate      Date            `json:"due_date" validate:"required"`
	Stock        int             `json:"stock" validate:"gt=0"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"gt=0"`
	ProviderID   string          `json:"provider_id" validate:"required,uuid"`
}

// ProductBulkCreateRequest carga masiva.
type ProductBulkCreateRequest struct {
	Products []ProductCreateRequest `json:"products" validate:"required,dive"`
}

// ProductBulkCreateResponse resultado de la carga masiva (nunca aborta por un producto).
type ProductBulkCreateResponse struct {
	Success       bool     `json:"success"`
	RowsTotal     int      `json:"rows_total"`
	RowsInserted  int      `json:"rows_inserted"`
	Errors        int      `json:"errors"`
	ErrorsDetails []string `json:"errors_details"`
}

// ProductResponse salida básica de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Details      string          `json:"details"`
	Store        string          `json:"store"`
	Batch        string          `json:"batch"`
	ImageURL     *string         `json:"image_url,omitempty"`
	DueDate      Date            `json:"due_date"`
	Stock        int             `json:"stock"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderProductLine línea de pedido tal como se ve desde el producto.
type OrderProductLine struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ProductDetailResponse producto con proveedor, planes de venta y líneas de pedido.
type ProductDetailResponse struct {
	ProductResponse
	Provider      *ProviderResponse     `json:"provider,omitempty"`
	SellingPlans  []SellingPlanResponse `json:"selling_plans"`
	OrderProducts []OrderProductLine    `json:"order_products"`
}

// ProductsResponse listado de productos.
type ProductsResponse struct {
	TotalCount int               `json:"total_count"`
	Products   []ProductResponse `json:"products"`
}

// ProductsQuery límite opcional del listado.
type ProductsQuery struct {
	Limit int `query:"limit" validate:"omitempty,gt=0,lte=1000"`
}

// RecommendedQuery parámetros de recomendados.
type RecommendedQuery struct {
	ClientID string `query:"client_id" validate:"omitempty,uuid"`
	Limit    int    `query:"limit" validate:"omitempty,gt=0,lte=100"`
}
