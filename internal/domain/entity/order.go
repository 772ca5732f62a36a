package entity

import "time"

// Estados de Order.
const (
	OrderStatusReceived  = "received"
	OrderStatusPreparing = "preparing"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusReturned  = "returned"
)

// OrderStatuses lista los estados válidos en orden de ciclo de vida.
var OrderStatuses = []string{
	OrderStatusReceived, OrderStatusPreparing, OrderStatusInTransit,
	OrderStatusDelivered, OrderStatusReturned,
}

var orderTransitions = map[string][]string{
	OrderStatusReceived:  {OrderStatusPreparing},
	OrderStatusPreparing: {OrderStatusInTransit},
	OrderStatusInTransit: {OrderStatusDelivered, OrderStatusReturned},
}

// CanTransition indica si el pedido puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Order pedido de un cliente institucional, opcionalmente gestionado por un vendedor.
type Order struct {
	ID                   string
	Comments             *string
	DeliveryDate         time.Time
	Status               string
	SellerID             *string
	ClientID             string
	DistributionCenterID string
	RouteID              *string
	CreatedAt            time.Time
	Products             []OrderProduct
}

// OrderProduct línea de un pedido.
type OrderProduct struct {
	OrderID   string
	ProductID string
	Quantity  int
}
