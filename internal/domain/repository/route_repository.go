package repository

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// RouteRepository persistencia de rutas de entrega.
type RouteRepository interface {
	Create(ctx context.Context, route *entity.Route) error
	GetByID(ctx context.Context, id string) (*entity.Route, error)
	List(ctx context.Context) ([]*entity.Route, error)
}
