package repository

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// ZoneRepository persistencia de zonas.
type ZoneRepository interface {
	Create(ctx context.Context, zone *entity.Zone) error
	GetByID(ctx context.Context, id string) (*entity.Zone, error)
	List(ctx context.Context) ([]*entity.Zone, error)
	Random(ctx context.Context) (*entity.Zone, error)
}
