package logistics

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

// TxRunner crea la ruta y asigna sus pedidos en una misma transacción.
type TxRunner interface {
	RunRoute(ctx context.Context, fn func(
		routes repository.RouteRepository,
		orders repository.OrderRepository,
	) error) error
}
