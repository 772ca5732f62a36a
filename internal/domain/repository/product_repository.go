package repository

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// ProductFilter criterios del listado de productos.
type ProductFilter struct {
	OnlyInStock bool
	Limit       int // 0 = sin límite
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); sólo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	DecrementStock(ctx context.Context, id string, quantity int) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Ranked productos con stock ordenados por cantidad pedida y última compra.
	// clientID vacío = ranking global.
	Ranked(ctx context.Context, clientID string, limit int) ([]*entity.Product, error)
}
