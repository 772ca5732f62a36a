package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

// Repos lecturas que necesita el caso de uso fuera de la transacción.
type Repos struct {
	Orders              repository.OrderRepository
	Products            repository.ProductRepository
	Users               repository.UserRepository
	DistributionCenters repository.DistributionCenterRepository
	Routes              repository.RouteRepository
}

// UseCase creación, consulta y ciclo de vida de pedidos.
type UseCase struct {
	tx    TxRunner
	repos Repos
	log   *logger.Logger
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, repos Repos, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, repos: repos, log: log.Component("orders"), now: time.Now}
}

// ListQuery filtros opcionales del listado.
type ListQuery struct {
	DeliveryDate *time.Time
	Status       string
}

// Create registra un pedido.
// Comercial: pide para uno de sus clientes institucionales (client_id obligatorio).
// Institucional: pide para sí mismo.
// Dentro de la transacción bloquea cada producto, valida stock, descuenta e inserta; cualquier error revierte todo.
func (uc *UseCase) Create(ctx context.Context, caller *entity.User, in dto.OrderCreateRequest) (*dto.OrderResponse, error) {
	clientID := caller.ID
	var sellerID *string
	if caller.Role == entity.RoleCommercial {
		if in.ClientID == nil || *in.ClientID == "" {
			return nil, domain.BadRequest("Client ID must be provided for commercial users")
		}
		clientID = *in.ClientID
		id := caller.ID
		sellerID = &id
	}

	if dups := domain.DuplicatedIDs(productIDs(in.Products)); len(dups) > 0 {
		return nil, domain.BadRequest("Duplicated product IDs in order: %s", strings.Join(dups, ", "))
	}

	dc, err := uc.repos.DistributionCenters.GetByID(ctx, in.DistributionCenterID)
	if err != nil {
		return nil, err
	}
	client, err := uc.repos.Users.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client != nil && sellerID != nil && !client.IsClientOf(*sellerID) {
		client = nil
	}
	if dc == nil || client == nil {
		return nil, domain.NotFound("Distribution center or client not found")
	}

	order := &entity.Order{
		ID:                   uuid.New().String(),
		Comments:             in.Comments,
		DeliveryDate:         in.DeliveryDate.Time,
		Status:               entity.OrderStatusReceived,
		SellerID:             sellerID,
		ClientID:             clientID,
		DistributionCenterID: dc.ID,
		CreatedAt:            uc.now(),
	}
	locked := make(map[string]*entity.Product, len(in.Products))

	err = uc.tx.RunOrder(ctx, func(products repository.ProductRepository, orders repository.OrderRepository) error {
		// Filas bloqueadas siempre en orden de id.
		ids := productIDs(in.Products)
		sort.Strings(ids)
		for _, id := range ids {
			p, err := products.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p != nil {
				locked[id] = p
			}
		}
		for _, item := range in.Products {
			p, ok := locked[item.ProductID]
			if !ok {
				return domain.NotFound("Product '%s' not found", item.ProductID)
			}
			if !p.HasStock(item.Quantity) {
				return domain.Conflict("Insufficient stock for product '%s'. Available: %d, requested: %d", p.Name, p.Stock, item.Quantity)
			}
		}
		for _, item := range in.Products {
			if err := products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			locked[item.ProductID].Stock -= item.Quantity
			order.Products = append(order.Products, entity.OrderProduct{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		if _, ok := domain.AsError(err); !ok {
			uc.log.Error().Err(err).Str("client_id", clientID).Msg("error creando pedido")
		}
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("client_id", clientID).Int("lines", len(order.Products)).Msg("pedido creado")

	var seller *entity.User
	if sellerID != nil {
		seller = caller
	}
	return uc.buildResponse(ctx, order, seller, client, dc, locked)
}

// List pedidos visibles para el usuario: admin todos, comercial los que gestiona, institucional los propios.
func (uc *UseCase) List(ctx context.Context, caller *entity.User, q ListQuery) (*dto.OrdersResponse, error) {
	filter := scope(caller)
	filter.Status = q.Status
	filter.DeliveryDate = q.DeliveryDate
	orders, err := uc.repos.Orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	dcs := map[string]*entity.DistributionCenter{}
	routes := map[string]*entity.Route{}
	out := &dto.OrdersResponse{TotalCount: len(orders), Orders: make([]dto.OrderMinimalResponse, 0, len(orders))}
	for _, o := range orders {
		dc, err := uc.distributionCenter(ctx, o.DistributionCenterID, dcs)
		if err != nil {
			return nil, err
		}
		item := dto.OrderMinimalResponse{OrderBase: dto.NewOrderBase(o)}
		if dc != nil {
			item.DistributionCenter = dto.NewDistributionCenterResponse(dc)
		}
		if item.Route, err = uc.route(ctx, o.RouteID, routes); err != nil {
			return nil, err
		}
		out.Orders = append(out.Orders, item)
	}
	return out, nil
}

// GetByID pedido con relaciones, con el mismo alcance que List.
func (uc *UseCase) GetByID(ctx context.Context, caller *entity.User, id string) (*dto.OrderResponse, error) {
	o, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || !visible(caller, o) {
		return nil, domain.NotFound("Order not found")
	}
	return uc.load(ctx, o)
}

// UpdateStatus avanza el pedido en su ciclo de vida; Conflict si la transición no es válida.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	o, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("Order not found")
	}
	if !entity.CanTransition(o.Status, status) {
		return nil, domain.Conflict("Cannot change order status from '%s' to '%s'", o.Status, status)
	}
	if err := uc.repos.Orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("from", o.Status).Str("to", status).Msg("estado de pedido actualizado")
	o.Status = status
	return uc.load(ctx, o)
}

func (uc *UseCase) load(ctx context.Context, o *entity.Order) (*dto.OrderResponse, error) {
	var seller *entity.User
	if o.SellerID != nil {
		s, err := uc.repos.Users.GetByID(ctx, *o.SellerID)
		if err != nil {
			return nil, err
		}
		seller = s
	}
	client, err := uc.repos.Users.GetByID(ctx, o.ClientID)
	if err != nil {
		return nil, err
	}
	dc, err := uc.repos.DistributionCenters.GetByID(ctx, o.DistributionCenterID)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(o.Products))
	for _, line := range o.Products {
		p, err := uc.repos.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			products[p.ID] = p
		}
	}
	return uc.buildResponse(ctx, o, seller, client, dc, products)
}

func (uc *UseCase) buildResponse(
	ctx context.Context,
	o *entity.Order,
	seller, client *entity.User,
	dc *entity.DistributionCenter,
	products map[string]*entity.Product,
) (*dto.OrderResponse, error) {
	out := &dto.OrderResponse{OrderBase: dto.NewOrderBase(o), Products: make([]dto.OrderProductDetail, 0, len(o.Products))}
	if seller != nil {
		s := dto.NewUserResponse(seller)
		out.Seller = &s
	}
	if client != nil {
		c := dto.NewUserResponse(client)
		out.Client = &c
	}
	if dc != nil {
		out.DistributionCenter = dto.NewDistributionCenterResponse(dc)
	}
	route, err := uc.route(ctx, o.RouteID, map[string]*entity.Route{})
	if err != nil {
		return nil, err
	}
	out.Route = route
	for _, line := range o.Products {
		p, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("orders: producto %s del pedido %s no cargado", line.ProductID, o.ID)
		}
		out.Products = append(out.Products, dto.NewOrderProductDetail(p, line.Quantity))
	}
	return out, nil
}

func (uc *UseCase) distributionCenter(ctx context.Context, id string, cache map[string]*entity.DistributionCenter) (*entity.DistributionCenter, error) {
	if dc, ok := cache[id]; ok {
		return dc, nil
	}
	dc, err := uc.repos.DistributionCenters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = dc
	return dc, nil
}

func (uc *UseCase) route(ctx context.Context, id *string, cache map[string]*entity.Route) (*dto.RouteBase, error) {
	if id == nil {
		return nil, nil
	}
	r, ok := cache[*id]
	if !ok {
		var err error
		if r, err = uc.repos.Routes.GetByID(ctx, *id); err != nil {
			return nil, err
		}
		cache[*id] = r
	}
	if r == nil {
		return nil, nil
	}
	base := dto.NewRouteBase(r)
	return &base, nil
}

// scope filtro de visibilidad según el rol.
func scope(caller *entity.User) repository.OrderFilter {
	switch caller.Role {
	case entity.RoleAdmin:
		return repository.OrderFilter{}
	case entity.RoleCommercial:
		return repository.OrderFilter{SellerID: caller.ID}
	default:
		return repository.OrderFilter{ClientID: caller.ID}
	}
}

func visible(caller *entity.User, o *entity.Order) bool {
	switch caller.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleCommercial:
		return o.SellerID != nil && *o.SellerID == caller.ID
	default:
		return o.ClientID == caller.ID
	}
}

func productIDs(items []dto.OrderProductRequest) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}
