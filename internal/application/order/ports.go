package order

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el descuento de stock y la inserción del pedido sean atómicos.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		products repository.ProductRepository,
		orders repository.OrderRepository,
	) error) error
}
