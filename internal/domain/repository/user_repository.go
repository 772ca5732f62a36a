package repository

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ExistsByEmailOrDOI indica si ya hay un usuario con ese email o documento.
	ExistsByEmailOrDOI(ctx context.Context, email, doi string) (bool, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	ListByZone(ctx context.Context, zoneID, role string) ([]*entity.User, error)
	// ListClientsBySeller clientes institucionales asignados al vendedor.
	ListClientsBySeller(ctx context.Context, sellerID string) ([]*entity.User, error)
	// RandomByRole devuelve un usuario al azar con ese rol o nil si no hay.
	RandomByRole(ctx context.Context, role string) (*entity.User, error)
}
