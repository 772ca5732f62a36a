package repository

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// DistributionCenterRepository persistencia de centros de distribución.
type DistributionCenterRepository interface {
	Create(ctx context.Context, dc *entity.DistributionCenter) error
	GetByID(ctx context.Context, id string) (*entity.DistributionCenter, error)
	List(ctx context.Context) ([]*entity.DistributionCenter, error)
}
