package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.RouteRepository = (*RouteRepo)(nil)

const routeColumns = `id, name, vehicle_plate, restrictions, delivery_deadline, distribution_center_id, created_at`

// RouteRepo rutas de entrega en PostgreSQL.
type RouteRepo struct {
	q Querier
}

// NewRouteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRouteRepository(q Querier) *RouteRepo {
	return &RouteRepo{q: q}
}

func scanRoute(row pgx.Row) (*entity.Route, error) {
	var rt entity.Route
	err := row.Scan(&rt.ID, &rt.Name, &rt.VehiclePlate, &rt.Restrictions, &rt.DeliveryDeadline, &rt.DistributionCenterID, &rt.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RouteRepo) Create(ctx context.Context, rt *entity.Route) error {
	_, err := r.q.Exec(ctx, `INSERT INTO routes (`+routeColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rt.ID, rt.Name, rt.VehiclePlate, rt.Restrictions, rt.DeliveryDeadline, rt.DistributionCenterID, rt.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

func (r *RouteRepo) GetByID(ctx context.Context, id string) (*entity.Route, error) {
	rt, err := scanRoute(r.q.QueryRow(ctx, `SELECT `+routeColumns+` FROM routes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get route: %w", err)
	}
	return rt, nil
}

func (r *RouteRepo) List(ctx context.Context) ([]*entity.Route, error) {
	rows, err := r.q.Query(ctx, `SELECT `+routeColumns+` FROM routes ORDER BY delivery_deadline, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return scanAll(rows, scanRoute)
}
