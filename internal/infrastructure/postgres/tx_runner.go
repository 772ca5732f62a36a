package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/medisupply-api/internal/application/logistics"
	"github.com/jhoicas/medisupply-api/internal/application/order"
	"github.com/jhoicas/medisupply-api/internal/application/visit"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

// Ensure TxRunner implements los TxRunner de pedidos, rutas y visitas.
var (
	_ order.TxRunner     = (*TxRunner)(nil)
	_ logistics.TxRunner = (*TxRunner)(nil)
	_ visit.TxRunner     = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder repos de productos y pedidos atados a la tx (descuento de stock + alta del pedido).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	products repository.ProductRepository,
	orders repository.OrderRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewOrderRepository(tx))
	})
}

// RunRoute repos de rutas y pedidos atados a la tx (alta de ruta + asignación).
func (r *TxRunner) RunRoute(ctx context.Context, fn func(
	routes repository.RouteRepository,
	orders repository.OrderRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewRouteRepository(tx), NewOrderRepository(tx))
	})
}

// RunVisit repos de geolocalizaciones y visitas atados a la tx (reporte de visita).
func (r *TxRunner) RunVisit(ctx context.Context, fn func(
	geolocations repository.GeolocationRepository,
	visits repository.VisitRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewGeolocationRepository(tx), NewVisitRepository(tx))
	})
}
