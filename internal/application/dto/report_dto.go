package dto

import "github.com/shopspring/decimal"

// Formatos de exportación del reporte.
const (
	ReportFormatJSON = "json"
	ReportFormatCSV  = "csv"
	ReportFormatPDF  = "pdf"
)

// OrdersReportQuery filtros del reporte de pedidos.
type OrdersReportQuery struct {
	SellerID    string `query:"seller_id" validate:"omitempty,uuid"`
	OrderStatus string `query:"order_status" validate:"omitempty,oneof=received preparing in_transit delivered returned"`
	StartDate   string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Format      string `query:"format" validate:"omitempty,oneof=json csv pdf"`
}

// OrderReportItem pedido del reporte con su vendedor y productos.
type OrderReportItem struct {
	OrderBase
	Seller   UserResponse         `json:"seller"`
	Products []OrderProductDetail `json:"products"`
	Total    decimal.Decimal      `json:"total"`
}

// OrdersReportResponse reporte de pedidos.
type OrdersReportResponse struct {
	TotalCount int               `json:"total_count"`
	Orders     []OrderReportItem `json:"orders"`
}

// SellerSalesDTO ventas agregadas de un vendedor en el periodo.
type SellerSalesDTO struct {
	SellerID    string          `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	OrdersCount int             `json:"orders_count"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// TopProductDTO producto más vendido en el periodo.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// SalesSummaryResponse resumen de ventas por vendedor y top de productos.
type SalesSummaryResponse struct {
	StartDate   Date             `json:"start_date"`
	EndDate     Date             `json:"end_date"`
	TotalOrders int              `json:"total_orders"`
	TotalUnits  int              `json:"total_units"`
	Revenue     decimal.Decimal  `json:"revenue"`
	Sellers     []SellerSalesDTO `json:"sellers"`
	TopProducts []TopProductDTO  `json:"top_products"`
}

// SalesSummaryQuery rango del resumen de ventas.
type SalesSummaryQuery struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `query:"limit" validate:"omitempty,gt=0,lte=50"`
}
