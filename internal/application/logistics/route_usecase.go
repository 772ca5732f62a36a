package logistics

import (
	"context"
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

// Repos lecturas del caso de uso de rutas.
type Repos struct {
	Routes              repository.RouteRepository
	Orders              repository.OrderRepository
	DistributionCenters repository.DistributionCenterRepository
	Users               repository.UserRepository
	Geolocations        repository.GeolocationRepository
}

// RouteUseCase agrupa pedidos de un centro de distribución en rutas de entrega.
type RouteUseCase struct {
	tx    TxRunner
	repos Repos
	log   *logger.Logger
	now   func() time.Time
}

// NewRouteUseCase construye el caso de uso.
func NewRouteUseCase(tx TxRunner, repos Repos, log *logger.Logger) *RouteUseCase {
	return &RouteUseCase{tx: tx, repos: repos, log: log.Component("routes"), now: time.Now}
}

// Create valida los pedidos y crea la ruta. La fecha límite es la menor fecha de entrega de los pedidos.
func (uc *RouteUseCase) Create(ctx context.Context, in dto.RouteCreateRequest) (*dto.RouteResponse, error) {
	if dups := domain.DuplicatedIDs(in.OrderIDs); len(dups) > 0 {
		return nil, domain.BadRequest("Duplicated order IDs in route: %s", strings.Join(dups, ", "))
	}

	orders, err := uc.repos.Orders.ListByIDs(ctx, in.OrderIDs)
	if err != nil {
		return nil, err
	}
	if missing := missingIDs(in.OrderIDs, orders); len(missing) > 0 {
		return nil, domain.NotFound("Orders not found: %s", strings.Join(missing, ", "))
	}

	dc, err := uc.repos.DistributionCenters.GetByID(ctx, in.DistributionCenterID)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, domain.NotFound("Distribution center not found")
	}

	var deadline time.Time
	for _, o := range orders {
		if o.DistributionCenterID != dc.ID {
			return nil, domain.BadRequest("Order ID %s does not belong to the specified distribution center", o.ID)
		}
		if o.RouteID != nil {
			return nil, domain.Conflict("Order ID %s is already assigned to a route", o.ID)
		}
		if deadline.IsZero() || o.DeliveryDate.Before(deadline) {
			deadline = o.DeliveryDate
		}
	}

	route := &entity.Route{
		ID:                   uuid.New().String(),
		Name:                 in.Name,
		VehiclePlate:         in.VehiclePlate,
		Restrictions:         in.Restrictions,
		DeliveryDeadline:     deadline,
		DistributionCenterID: dc.ID,
		CreatedAt:            uc.now(),
	}
	err = uc.tx.RunRoute(ctx, func(routes repository.RouteRepository, txOrders repository.OrderRepository) error {
		if err := routes.Create(ctx, route); err != nil {
			return err
		}
		return txOrders.AssignRoute(ctx, in.OrderIDs, route.ID)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("route_id", route.ID).Int("orders", len(orders)).Msg("ruta creada")

	out := &dto.RouteResponse{
		RouteBase:          dto.NewRouteBase(route),
		DistributionCenter: dto.NewDistributionCenterResponse(dc),
		Orders:             make([]dto.OrderBase, 0, len(orders)),
	}
	for _, o := range orders {
		out.Orders = append(out.Orders, dto.NewOrderBase(o))
	}
	return out, nil
}

// List todas las rutas con su centro.
func (uc *RouteUseCase) List(ctx context.Context) (*dto.RoutesResponse, error) {
	routes, err := uc.repos.Routes.List(ctx)
	if err != nil {
		return nil, err
	}
	dcs := map[string]*entity.DistributionCenter{}
	out := &dto.RoutesResponse{TotalCount: len(routes), Routes: make([]dto.RouteMinimalResponse, 0, len(routes))}
	for _, r := range routes {
		dc, ok := dcs[r.DistributionCenterID]
		if !ok {
			if dc, err = uc.repos.DistributionCenters.GetByID(ctx, r.DistributionCenterID); err != nil {
				return nil, err
			}
			dcs[r.DistributionCenterID] = dc
		}
		item := dto.RouteMinimalResponse{RouteBase: dto.NewRouteBase(r)}
		if dc != nil {
			item.DistributionCenter = dto.NewDistributionCenterResponse(dc)
		}
		out.Routes = append(out.Routes, item)
	}
	return out, nil
}

// GetByID ruta con su centro y pedidos.
func (uc *RouteUseCase) GetByID(ctx context.Context, id string) (*dto.RouteResponse, error) {
	route, err := uc.getRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	dc, err := uc.repos.DistributionCenters.GetByID(ctx, route.DistributionCenterID)
	if err != nil {
		return nil, err
	}
	orders, err := uc.repos.Orders.List(ctx, repository.OrderFilter{RouteID: id})
	if err != nil {
		return nil, err
	}
	out := &dto.RouteResponse{RouteBase: dto.NewRouteBase(route), Orders: make([]dto.OrderBase, 0, len(orders))}
	if dc != nil {
		out.DistributionCenter = dto.NewDistributionCenterResponse(dc)
	}
	for _, o := range orders {
		out.Orders = append(out.Orders, dto.NewOrderBase(o))
	}
	return out, nil
}

// Map una parada por pedido con los datos y coordenadas del cliente.
func (uc *RouteUseCase) Map(ctx context.Context, id string) (*dto.RouteMapResponse, error) {
	route, err := uc.getRoute(ctx, id)
	if err != nil {
		return nil, err
	}
	orders, err := uc.repos.Orders.List(ctx, repository.OrderFilter{RouteID: id})
	if err != nil {
		return nil, err
	}
	out := &dto.RouteMapResponse{RouteBase: dto.NewRouteBase(route), Stops: make([]dto.RouteStop, 0, len(orders))}
	for _, o := range orders {
		client, err := uc.repos.Users.GetByID(ctx, o.ClientID)
		if err != nil {
			return nil, err
		}
		stop := dto.RouteStop{
			OrderID:      o.ID,
			OrderStatus:  o.Status,
			DeliveryDate: dto.NewDate(o.DeliveryDate),
		}
		if client != nil {
			stop.ClientName = client.FullName
			stop.ClientPhone = client.Phone
			if client.Address != nil {
				stop.ClientAddress = *client.Address
			}
			if client.GeolocationID != nil {
				g, err := uc.repos.Geolocations.GetByID(ctx, *client.GeolocationID)
				if err != nil {
					return nil, err
				}
				if g != nil {
					lat, lng := g.Latitude, g.Longitude
					stop.Latitude, stop.Longitude = &lat, &lng
				}
			}
		}
		out.Stops = append(out.Stops, stop)
	}
	out.TotalCount = len(out.Stops)
	return out, nil
}

func (uc *RouteUseCase) getRoute(ctx context.Context, id string) (*entity.Route, error) {
	route, err := uc.repos.Routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, domain.NotFound("Route not found")
	}
	return route, nil
}

func missingIDs(requested []string, found []*entity.Order) []string {
	have := make(map[string]struct{}, len(found))
	for _, o := range found {
		have[o.ID] = struct{}{}
	}
	var missing []string
	for _, id := range requested {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}
