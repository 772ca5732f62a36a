package logistics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medisupply-api/internal/application/apptest"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/logistics"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

func newUseCase(s *apptest.Store) *logistics.RouteUseCase {
	return logistics.NewRouteUseCase(apptest.TxRunner{S: s}, logistics.Repos{
		Routes:              s.RouteRepo(),
		Orders:              s.OrderRepo(),
		DistributionCenters: s.DistributionCenterRepo(),
		Users:               s.UserRepo(),
		Geolocations:        s.GeolocationRepo(),
	}, logger.Nop())
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate_AgrupaPedidosYCalculaDeadline(t *testing.T) {
	s := apptest.NewStore()
	dc := s.AddCenter(&entity.DistributionCenter{Name: "CD Cali"})
	o1 := s.AddOrder(&entity.Order{DeliveryDate: day(20), Status: entity.OrderStatusReceived, DistributionCenterID: dc.ID})
	o2 := s.AddOrder(&entity.Order{DeliveryDate: day(12), Status: entity.OrderStatusReceived, DistributionCenterID: dc.ID})

	out, err := newUseCase(s).Create(context.Background(), dto.RouteCreateRequest{
		Name:                 "Ruta sur",
		VehiclePlate:         "ABC123",
		DistributionCenterID: dc.ID,
		OrderIDs:             []string{o1.ID, o2.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, day(12), out.DeliveryDeadline.Time)
	assert.Equal(t, dc.ID, out.DistributionCenter.ID)
	assert.Len(t, out.Orders, 2)
	for _, id := range []string{o1.ID, o2.ID} {
		routeID := s.Order(id).RouteID
		require.NotNil(t, routeID)
		assert.Equal(t, out.ID, *routeID)
	}
}

func TestCreate_Validaciones(t *testing.T) {
	s := apptest.NewStore()
	dc := s.AddCenter(&entity.DistributionCenter{Name: "CD Cali"})
	otherDC := s.AddCenter(&entity.DistributionCenter{Name: "CD Medellín"})
	free := s.AddOrder(&entity.Order{DeliveryDate: day(5), DistributionCenterID: dc.ID})
	foreign := s.AddOrder(&entity.Order{DeliveryDate: day(5), DistributionCenterID: otherDC.ID})
	routeID := "route-1"
	assigned := s.AddOrder(&entity.Order{DeliveryDate: day(5), DistributionCenterID: dc.ID, RouteID: &routeID})
	missing := "00000000-0000-0000-0000-00000000dead"

	tests := []struct {
		name   string
		dcID   string
		orders []string
		kind   error
		msg    string
	}{
		{"duplicados", dc.ID, []string{free.ID, free.ID}, domain.ErrBadRequest, "Duplicated order IDs in route: " + free.ID},
		{"pedido inexistente", dc.ID, []string{free.ID, missing}, domain.ErrNotFound, "Orders not found: " + missing},
		{"centro inexistente", missing, []string{free.ID}, domain.ErrNotFound, "Distribution center not found"},
		{"pedido de otro centro", dc.ID, []string{foreign.ID}, domain.ErrBadRequest, "Order ID " + foreign.ID + " does not belong to the specified distribution center"},
		{"pedido ya en ruta", dc.ID, []string{assigned.ID}, domain.ErrConflict, "Order ID " + assigned.ID + " is already assigned to a route"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(s).Create(context.Background(), dto.RouteCreateRequest{
				Name: "Ruta", VehiclePlate: "XYZ987", DistributionCenterID: tt.dcID, OrderIDs: tt.orders,
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
			assert.Equal(t, tt.msg, err.Error())
		})
	}
	assert.Empty(t, s.Routes)
	assert.Nil(t, s.Order(free.ID).RouteID)
}

func TestMap_ParadasConCoordenadasDelCliente(t *testing.T) {
	s := apptest.NewStore()
	ctx := context.Background()
	dc := s.AddCenter(&entity.DistributionCenter{Name: "CD Bogotá"})
	g := s.AddGeolocation(&entity.Geolocation{Latitude: 4.65, Longitude: -74.05})
	address := "Calle 100 # 15-20"
	withGeo := s.AddUser(&entity.User{FullName: "Hospital Central", Phone: "3001234567", Address: &address, GeolocationID: &g.ID, Role: entity.RoleInstitutional})
	withoutGeo := s.AddUser(&entity.User{FullName: "Farmacia 24h", Phone: "3007654321", Role: entity.RoleInstitutional})
	o1 := s.AddOrder(&entity.Order{DeliveryDate: day(3), Status: entity.OrderStatusPreparing, ClientID: withGeo.ID, DistributionCenterID: dc.ID})
	o2 := s.AddOrder(&entity.Order{DeliveryDate: day(4), Status: entity.OrderStatusReceived, ClientID: withoutGeo.ID, DistributionCenterID: dc.ID})

	uc := newUseCase(s)
	route, err := uc.Create(ctx, dto.RouteCreateRequest{Name: "Ruta norte", VehiclePlate: "JKL456", DistributionCenterID: dc.ID, OrderIDs: []string{o1.ID, o2.ID}})
	require.NoError(t, err)

	m, err := uc.Map(ctx, route.ID)
	require.NoError(t, err)
	require.Equal(t, 2, m.TotalCount)

	stops := map[string]dto.RouteStop{}
	for _, st := range m.Stops {
		stops[st.OrderID] = st
	}
	first := stops[o1.ID]
	assert.Equal(t, "Hospital Central", first.ClientName)
	assert.Equal(t, address, first.ClientAddress)
	require.NotNil(t, first.Latitude)
	assert.InDelta(t, 4.65, *first.Latitude, 1e-9)
	assert.InDelta(t, -74.05, *first.Longitude, 1e-9)
	assert.Nil(t, stops[o2.ID].Latitude)

	detail, err := uc.GetByID(ctx, route.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Orders, 2)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)
	assert.Equal(t, "CD Bogotá", list.Routes[0].DistributionCenter.Name)
}

func TestGetByID_RutaInexistente(t *testing.T) {
	_, err := newUseCase(apptest.NewStore()).GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// staleOrders devuelve los pedidos como estaban antes de que otra ruta los tomara.
type staleOrders struct {
	repository.OrderRepository
	snapshot []*entity.Order
}

func (s staleOrders) ListByIDs(context.Context, []string) ([]*entity.Order, error) {
	return s.snapshot, nil
}

func TestCreate_PedidoAsignadoPorOtraRutaConcurrente(t *testing.T) {
	s := apptest.NewStore()
	dc := s.AddCenter(&entity.DistributionCenter{Name: "CD Cali"})
	o1 := s.AddOrder(&entity.Order{DeliveryDate: day(5), DistributionCenterID: dc.ID})
	o2 := s.AddOrder(&entity.Order{DeliveryDate: day(6), DistributionCenterID: dc.ID})
	snap1, snap2 := s.Order(o1.ID), s.Order(o2.ID)
	before := []*entity.Order{&snap1, &snap2}

	other := "route-ganadora"
	winner := s.Order(o2.ID)
	winner.RouteID = &other
	s.Orders[o2.ID] = winner

	uc := logistics.NewRouteUseCase(apptest.TxRunner{S: s}, logistics.Repos{
		Routes:              s.RouteRepo(),
		Orders:              staleOrders{OrderRepository: s.OrderRepo(), snapshot: before},
		DistributionCenters: s.DistributionCenterRepo(),
		Users:               s.UserRepo(),
		Geolocations:        s.GeolocationRepo(),
	}, logger.Nop())

	_, err := uc.Create(context.Background(), dto.RouteCreateRequest{
		Name:                 "Ruta tardía",
		VehiclePlate:         "XYZ987",
		DistributionCenterID: dc.ID,
		OrderIDs:             []string{o1.ID, o2.ID},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, "One or more orders are already assigned to a route", err.Error())
	assert.Nil(t, s.Order(o1.ID).RouteID)
	assert.Equal(t, other, *s.Order(o2.ID).RouteID)
}
