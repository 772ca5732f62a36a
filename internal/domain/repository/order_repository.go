package repository

import (
	"context"
	"time"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// OrderFilter alcance del listado; campos vacíos no filtran.
type OrderFilter struct {
	SellerID     string
	ClientID     string
	RouteID      string
	Status       string
	DeliveryDate *time.Time
}

// OrderReportFilter filtros del reporte de pedidos (sólo pedidos con vendedor).
type OrderReportFilter struct {
	SellerID  string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// GetByID y List devuelven los pedidos con Products cargado.
type OrderRepository interface {
	// Create inserta el pedido y sus líneas.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Order, error)
	ListLinesByProduct(ctx context.Context, productID string) ([]entity.OrderProduct, error)
	AssignRoute(ctx context.Context, orderIDs []string, routeID string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Report(ctx context.Context, filter OrderReportFilter) ([]*entity.Order, error)
}
