package repository

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// ProviderRepository persistencia de proveedores.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id string) (*entity.Provider, error)
	ExistsByEmailOrRIT(ctx context.Context, email, rit string) (bool, error)
	List(ctx context.Context) ([]*entity.Provider, error)
}
