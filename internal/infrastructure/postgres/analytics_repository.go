package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el resumen de ventas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesBySeller agrupa pedidos, unidades e ingresos por vendedor.
// Ingreso de línea: quantity × price_per_unit vigente del producto. Los pedidos devueltos no cuentan.
func (r *AnalyticsRepo) GetSalesBySeller(
	ctx context.Context,
	startDate, endDate time.Time,
) ([]repository.SellerSalesResult, error) {
	const query = `
	SELECT
	    u.id                                  AS seller_id,
	    u.full_name                           AS seller_name,
	    COUNT(DISTINCT o.id)                  AS orders_count,
	    COALESCE(SUM(op.quantity), 0)         AS units_sold,
	    COALESCE(SUM(op.quantity * p.price_per_unit), 0) AS revenue
	FROM orders o
	JOIN users               u  ON u.id        = o.seller_id
	JOIN order_products      op ON op.order_id = o.id
	JOIN products            p  ON p.id        = op.product_id
	WHERE o.created_at BETWEEN $1 AND $2
	  AND o.status <> $3
	GROUP BY u.id, u.full_name
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, startDate, endDate, entity.OrderStatusReturned)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesBySeller: %w", err)
	}
	defer rows.Close()

	results := make([]repository.SellerSalesResult, 0)
	for rows.Next() {
		var row repository.SellerSalesResult
		if err := rows.Scan(
			&row.SellerID,
			&row.SellerName,
			&row.OrdersCount,
			&row.UnitsSold,
			&row.Revenue,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetSalesBySeller scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts devuelve los `limit` productos con más unidades pedidas en el período.
func (r *AnalyticsRepo) GetTopProducts(
	ctx context.Context,
	startDate, endDate time.Time,
	limit int,
) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT
	    p.id                               AS product_id,
	    p.name                             AS product_name,
	    SUM(op.quantity)                   AS units_sold,
	    SUM(op.quantity * p.price_per_unit) AS revenue
	FROM order_products op
	JOIN orders   o ON o.id = op.order_id
	JOIN products p ON p.id = op.product_id
	WHERE o.created_at BETWEEN $1 AND $2
	  AND o.status <> $3
	GROUP BY p.id, p.name
	ORDER BY units_sold DESC, revenue DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, startDate, endDate, entity.OrderStatusReturned, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	results := make([]repository.ProductSalesResult, 0)
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
