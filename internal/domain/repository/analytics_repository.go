package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SellerSalesResult resultado crudo de ventas por vendedor.
// Lo produce la DB; el use case lo convierte en DTO.
type SellerSalesResult struct {
	SellerID    string
	SellerName  string
	OrdersCount int
	UnitsSold   int
	Revenue     decimal.Decimal // Suma de quantity * price_per_unit de las líneas
}

// ProductSalesResult resultado crudo de unidades e ingresos por producto.
type ProductSalesResult struct {
	ProductID   string
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// AnalyticsRepository consultas de lectura para el resumen de ventas.
// Las implementaciones son read-only. Los pedidos devueltos no cuentan.
type AnalyticsRepository interface {
	// GetSalesBySeller agrupa pedidos con vendedor en el rango [startDate, endDate] de created_at.
	GetSalesBySeller(ctx context.Context, startDate, endDate time.Time) ([]SellerSalesResult, error)

	// GetTopProducts devuelve los limit productos con más unidades pedidas en el rango.
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]ProductSalesResult, error)
}
