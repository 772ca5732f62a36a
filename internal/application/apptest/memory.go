// Package apptest repositorios y adaptadores en memoria para probar los casos de uso sin PostgreSQL.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu           sync.Mutex
	Users        map[string]entity.User
	OTPs         map[string]entity.OTP
	Zones        map[string]entity.Zone
	Geolocations map[string]entity.Geolocation
	Providers    map[string]entity.Provider
	Products     map[string]entity.Product
	Plans        map[string]entity.SellingPlan
	Centers      map[string]entity.DistributionCenter
	Orders       map[string]entity.Order
	Routes       map[string]entity.Route
	Visits       map[string]entity.Visit

	// Locks ids de producto en el orden en que se pidieron con GetForUpdate.
	Locks []string
}

// NewStore store vacío.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.Users = map[string]entity.User{}
	s.OTPs = map[string]entity.OTP{}
	s.Zones = map[string]entity.Zone{}
	s.Geolocations = map[string]entity.Geolocation{}
	s.Providers = map[string]entity.Provider{}
	s.Products = map[string]entity.Product{}
	s.Plans = map[string]entity.SellingPlan{}
	s.Centers = map[string]entity.DistributionCenter{}
	s.Orders = map[string]entity.Order{}
	s.Routes = map[string]entity.Route{}
	s.Visits = map[string]entity.Visit{}
}

func cloneMap[T any](m map[string]T) map[string]T {
	out := make(map[string]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// snapshot copia del estado para revertir una transacción fallida.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Store{
		Users:        cloneMap(s.Users),
		OTPs:         cloneMap(s.OTPs),
		Zones:        cloneMap(s.Zones),
		Geolocations: cloneMap(s.Geolocations),
		Providers:    cloneMap(s.Providers),
		Products:     cloneMap(s.Products),
		Plans:        cloneMap(s.Plans),
		Centers:      cloneMap(s.Centers),
		Orders:       cloneMap(s.Orders),
		Routes:       cloneMap(s.Routes),
		Visits:       cloneMap(s.Visits),
	}
}

func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users, s.OTPs, s.Zones, s.Geolocations = snap.Users, snap.OTPs, snap.Zones, snap.Geolocations
	s.Providers, s.Products, s.Plans, s.Centers = snap.Providers, snap.Products, snap.Plans, snap.Centers
	s.Orders, s.Routes, s.Visits = snap.Orders, snap.Routes, snap.Visits
}

// ──────────────────────────────────────────────────────────────────────────────
// Seeds
// ──────────────────────────────────────────────────────────────────────────────

// AddUser inserta (o reemplaza) un usuario.
func (s *Store) AddUser(u *entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	s.Users[u.ID] = *u
	return u
}

// AddProduct inserta un producto.
func (s *Store) AddProduct(p *entity.Product) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.Products[p.ID] = *p
	return p
}

// AddCenter inserta un centro de distribución.
func (s *Store) AddCenter(dc *entity.DistributionCenter) *entity.DistributionCenter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dc.ID == "" {
		dc.ID = uuid.New().String()
	}
	s.Centers[dc.ID] = *dc
	return dc
}

// AddOrder inserta un pedido con sus líneas.
func (s *Store) AddOrder(o *entity.Order) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	s.Orders[o.ID] = *o
	return o
}

// AddGeolocation inserta una geolocalización.
func (s *Store) AddGeolocation(g *entity.Geolocation) *entity.Geolocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	s.Geolocations[g.ID] = *g
	return g
}

// AddVisit inserta una visita.
func (s *Store) AddVisit(v *entity.Visit) *entity.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	s.Visits[v.ID] = *v
	return v
}

// AddZone inserta una zona.
func (s *Store) AddZone(z *entity.Zone) *entity.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	if z.ID == "" {
		z.ID = uuid.New().String()
	}
	s.Zones[z.ID] = *z
	return z
}

// AddProvider inserta un proveedor.
func (s *Store) AddProvider(p *entity.Provider) *entity.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.Providers[p.ID] = *p
	return p
}

// Product lectura directa para aserciones.
func (s *Store) Product(id string) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Products[id]
}

// Order lectura directa para aserciones.
func (s *Store) Order(id string) entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Orders[id]
}

// Visit lectura directa para aserciones.
func (s *Store) Visit(id string) entity.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Visits[id]
}

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = UserRepo{}

func (s *Store) UserRepo() UserRepo { return UserRepo{s} }

func (r UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.Users {
		if strings.EqualFold(existing.Email, u.Email) || existing.DOI == u.DOI {
			return domain.Conflict("User with this email or DOI already exists")
		}
	}
	r.s.Users[u.ID] = *u
	return nil
}

func (r UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.Users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r UserRepo) ExistsByEmailOrDOI(_ context.Context, email, doi string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if strings.EqualFold(u.Email, email) || u.DOI == doi {
			return true, nil
		}
	}
	return false, nil
}

func (r UserRepo) filter(keep func(entity.User) bool) []*entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.User{}
	for _, u := range r.s.Users {
		if keep(u) {
			u := u
			out = append(out, &u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r UserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	return r.filter(func(u entity.User) bool { return u.Role == role }), nil
}

func (r UserRepo) ListByZone(_ context.Context, zoneID, role string) ([]*entity.User, error) {
	return r.filter(func(u entity.User) bool {
		return u.Role == role && u.ZoneID != nil && *u.ZoneID == zoneID
	}), nil
}

func (r UserRepo) ListClientsBySeller(_ context.Context, sellerID string) ([]*entity.User, error) {
	return r.filter(func(u entity.User) bool { return u.IsClientOf(sellerID) }), nil
}

// RandomByRole determinista: el primero por nombre.
func (r UserRepo) RandomByRole(ctx context.Context, role string) (*entity.User, error) {
	users, _ := r.ListByRole(ctx, role)
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// OTPs
// ──────────────────────────────────────────────────────────────────────────────

// OTPRepo implementa repository.OTPRepository.
type OTPRepo struct{ s *Store }

var _ repository.OTPRepository = OTPRepo{}

func (s *Store) OTPRepo() OTPRepo { return OTPRepo{s} }

func (r OTPRepo) Create(_ context.Context, otp *entity.OTP) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.OTPs[otp.ID] = *otp
	return nil
}

func (r OTPRepo) Redeem(_ context.Context, userID, code string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	redeemed := false
	for id, o := range r.s.OTPs {
		if o.UserID == userID && o.Code == code && o.Valid(now) {
			o.IsUsed = true
			r.s.OTPs[id] = o
			redeemed = true
		}
	}
	return redeemed, nil
}

// Latest último OTP emitido para el usuario (para leer el código en los tests).
func (r OTPRepo) Latest(userID string) *entity.OTP {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *entity.OTP
	for _, o := range r.s.OTPs {
		if o.UserID == userID && (found == nil || o.CreatedAt.After(found.CreatedAt)) {
			o := o
			found = &o
		}
	}
	return found
}

// ──────────────────────────────────────────────────────────────────────────────
// Zones, geolocations, providers, distribution centers
// ──────────────────────────────────────────────────────────────────────────────

// ZoneRepo implementa repository.ZoneRepository.
type ZoneRepo struct{ s *Store }

var _ repository.ZoneRepository = ZoneRepo{}

func (s *Store) ZoneRepo() ZoneRepo { return ZoneRepo{s} }

func (r ZoneRepo) Create(_ context.Context, z *entity.Zone) error {
	r.s.AddZone(z)
	return nil
}

func (r ZoneRepo) GetByID(_ context.Context, id string) (*entity.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if z, ok := r.s.Zones[id]; ok {
		return &z, nil
	}
	return nil, nil
}

func (r ZoneRepo) List(_ context.Context) ([]*entity.Zone, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Zone{}
	for _, z := range r.s.Zones {
		z := z
		out = append(out, &z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out, nil
}

func (r ZoneRepo) Random(ctx context.Context) (*entity.Zone, error) {
	zones, _ := r.List(ctx)
	if len(zones) == 0 {
		return nil, nil
	}
	return zones[0], nil
}

// GeolocationRepo implementa repository.GeolocationRepository.
type GeolocationRepo struct{ s *Store }

var _ repository.GeolocationRepository = GeolocationRepo{}

func (s *Store) GeolocationRepo() GeolocationRepo { return GeolocationRepo{s} }

func (r GeolocationRepo) Create(_ context.Context, g *entity.Geolocation) error {
	r.s.AddGeolocation(g)
	return nil
}

func (r GeolocationRepo) GetByID(_ context.Context, id string) (*entity.Geolocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g, ok := r.s.Geolocations[id]; ok {
		return &g, nil
	}
	return nil, nil
}

// ProviderRepo implementa repository.ProviderRepository.
type ProviderRepo struct{ s *Store }

var _ repository.ProviderRepository = ProviderRepo{}

func (s *Store) ProviderRepo() ProviderRepo { return ProviderRepo{s} }

func (r ProviderRepo) Create(_ context.Context, p *entity.Provider) error {
	r.s.AddProvider(p)
	return nil
}

func (r ProviderRepo) GetByID(_ context.Context, id string) (*entity.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.Providers[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r ProviderRepo) ExistsByEmailOrRIT(_ context.Context, email, rit string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.Providers {
		if strings.EqualFold(p.Email, email) || p.RIT == rit {
			return true, nil
		}
	}
	return false, nil
}

func (r ProviderRepo) List(_ context.Context) ([]*entity.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Provider{}
	for _, p := range r.s.Providers {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DistributionCenterRepo implementa repository.DistributionCenterRepository.
type DistributionCenterRepo struct{ s *Store }

var _ repository.DistributionCenterRepository = DistributionCenterRepo{}

func (s *Store) DistributionCenterRepo() DistributionCenterRepo { return DistributionCenterRepo{s} }

func (r DistributionCenterRepo) Create(_ context.Context, dc *entity.DistributionCenter) error {
	r.s.AddCenter(dc)
	return nil
}

func (r DistributionCenterRepo) GetByID(_ context.Context, id string) (*entity.DistributionCenter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if dc, ok := r.s.Centers[id]; ok {
		return &dc, nil
	}
	return nil, nil
}

func (r DistributionCenterRepo) List(_ context.Context) ([]*entity.DistributionCenter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.DistributionCenter{}
	for _, dc := range r.s.Centers {
		dc := dc
		out = append(out, &dc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Products & selling plans
// ──────────────────────────────────────────────────────────────────────────────

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = ProductRepo{}

func (s *Store) ProductRepo() ProductRepo { return ProductRepo{s} }

func (r ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.AddProduct(p)
	return nil
}

func (r ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.Products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	r.s.Locks = append(r.s.Locks, id)
	r.s.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r ProductRepo) DecrementStock(_ context.Context, id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[id]
	if !ok || p.Stock < quantity {
		return domain.Conflict("Insufficient stock for product '%s'", id)
	}
	p.Stock -= quantity
	r.s.Products[id] = p
	return nil
}

func (r ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Product{}
	for _, p := range r.s.Products {
		if filter.OnlyInStock && p.Stock <= 0 {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Ranked productos con stock por cantidad pedida (desc) y última compra (desc).
func (r ProductRepo) Ranked(_ context.Context, clientID string, limit int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	qty := map[string]int{}
	last := map[string]time.Time{}
	for _, o := range r.s.Orders {
		if clientID != "" && o.ClientID != clientID {
			continue
		}
		for _, line := range o.Products {
			qty[line.ProductID] += line.Quantity
			if o.CreatedAt.After(last[line.ProductID]) {
				last[line.ProductID] = o.CreatedAt
			}
		}
	}
	out := []*entity.Product{}
	for id := range qty {
		p, ok := r.s.Products[id]
		if !ok || p.Stock <= 0 {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].ID, out[j].ID
		if qty[a] != qty[b] {
			return qty[a] > qty[b]
		}
		return last[a].After(last[b])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SellingPlanRepo implementa repository.SellingPlanRepository.
type SellingPlanRepo struct{ s *Store }

var _ repository.SellingPlanRepository = SellingPlanRepo{}

func (s *Store) SellingPlanRepo() SellingPlanRepo { return SellingPlanRepo{s} }

func (r SellingPlanRepo) Create(_ context.Context, sp *entity.SellingPlan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Plans[sp.ID] = *sp
	return nil
}

func (r SellingPlanRepo) GetByID(_ context.Context, id string) (*entity.SellingPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sp, ok := r.s.Plans[id]; ok {
		return &sp, nil
	}
	return nil, nil
}

func (r SellingPlanRepo) Exists(_ context.Context, period, productID, zoneID, sellerID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sp := range r.s.Plans {
		if sp.Period == period && sp.ProductID == productID && sp.ZoneID == zoneID && sp.SellerID == sellerID {
			return true, nil
		}
	}
	return false, nil
}

func (r SellingPlanRepo) List(_ context.Context, f repository.SellingPlanFilter) ([]*entity.SellingPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.SellingPlan{}
	for _, sp := range r.s.Plans {
		if (f.ProductID != "" && sp.ProductID != f.ProductID) ||
			(f.ZoneID != "" && sp.ZoneID != f.ZoneID) ||
			(f.SellerID != "" && sp.SellerID != f.SellerID) {
			continue
		}
		sp := sp
		out = append(out, &sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Orders & routes
// ──────────────────────────────────────────────────────────────────────────────

// OrderRepo implementa repository.OrderRepository.
type OrderRepo struct{ s *Store }

var _ repository.OrderRepository = OrderRepo{}

func (s *Store) OrderRepo() OrderRepo { return OrderRepo{s} }

func (r OrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.AddOrder(o)
	return nil
}

func (r OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.Orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r OrderRepo) where(keep func(entity.Order) bool) []*entity.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Order{}
	for _, o := range r.s.Orders {
		if keep(o) {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	return r.where(func(o entity.Order) bool {
		switch {
		case f.SellerID != "" && (o.SellerID == nil || *o.SellerID != f.SellerID):
			return false
		case f.ClientID != "" && o.ClientID != f.ClientID:
			return false
		case f.RouteID != "" && (o.RouteID == nil || *o.RouteID != f.RouteID):
			return false
		case f.Status != "" && o.Status != f.Status:
			return false
		case f.DeliveryDate != nil && !sameDay(o.DeliveryDate, *f.DeliveryDate):
			return false
		}
		return true
	}), nil
}

func (r OrderRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Order, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return r.where(func(o entity.Order) bool { return want[o.ID] }), nil
}

func (r OrderRepo) ListLinesByProduct(_ context.Context, productID string) ([]entity.OrderProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.OrderProduct{}
	for _, o := range r.s.Orders {
		for _, line := range o.Products {
			if line.ProductID == productID {
				out = append(out, line)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

func (r OrderRepo) AssignRoute(_ context.Context, orderIDs []string, routeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range orderIDs {
		if o, ok := r.s.Orders[id]; !ok || o.RouteID != nil {
			return domain.Conflict("One or more orders are already assigned to a route")
		}
	}
	for _, id := range orderIDs {
		o := r.s.Orders[id]
		rid := routeID
		o.RouteID = &rid
		r.s.Orders[id] = o
	}
	return nil
}

func (r OrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o := r.s.Orders[id]
	o.Status = status
	r.s.Orders[id] = o
	return nil
}

func (r OrderRepo) Report(_ context.Context, f repository.OrderReportFilter) ([]*entity.Order, error) {
	return r.where(func(o entity.Order) bool {
		switch {
		case o.SellerID == nil:
			return false
		case f.SellerID != "" && *o.SellerID != f.SellerID:
			return false
		case f.Status != "" && o.Status != f.Status:
			return false
		case f.StartDate != nil && o.CreatedAt.Before(*f.StartDate):
			return false
		case f.EndDate != nil && o.CreatedAt.After(*f.EndDate):
			return false
		}
		return true
	}), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// RouteRepo implementa repository.RouteRepository.
type RouteRepo struct{ s *Store }

var _ repository.RouteRepository = RouteRepo{}

func (s *Store) RouteRepo() RouteRepo { return RouteRepo{s} }

func (r RouteRepo) Create(_ context.Context, route *entity.Route) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Routes[route.ID] = *route
	return nil
}

func (r RouteRepo) GetByID(_ context.Context, id string) (*entity.Route, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if route, ok := r.s.Routes[id]; ok {
		return &route, nil
	}
	return nil, nil
}

func (r RouteRepo) List(_ context.Context) ([]*entity.Route, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Route{}
	for _, route := range r.s.Routes {
		route := route
		out = append(out, &route)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Visits
// ──────────────────────────────────────────────────────────────────────────────

// VisitRepo implementa repository.VisitRepository.
type VisitRepo struct{ s *Store }

var _ repository.VisitRepository = VisitRepo{}

func (s *Store) VisitRepo() VisitRepo { return VisitRepo{s} }

func (r VisitRepo) Create(_ context.Context, v *entity.Visit) error {
	r.s.AddVisit(v)
	return nil
}

func (r VisitRepo) GetByID(_ context.Context, id string) (*entity.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.Visits[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r VisitRepo) List(_ context.Context, f repository.VisitFilter) ([]*entity.Visit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Visit{}
	for _, v := range r.s.Visits {
		switch {
		case f.SellerID != "" && v.SellerID != f.SellerID:
			continue
		case f.ClientID != "" && v.ClientID != f.ClientID:
			continue
		case f.Status != "" && v.Status != f.Status:
			continue
		case f.ExpectedDate != nil && !sameDay(v.ExpectedDate, *f.ExpectedDate):
			continue
		}
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpectedDate.Before(out[j].ExpectedDate) })
	return out, nil
}

func (r VisitRepo) SaveReport(_ context.Context, v *entity.Visit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.Visits[v.ID]
	if !ok || current.Status != entity.VisitStatusPending {
		return domain.NotFound("Visit not found or already reported")
	}
	r.s.Visits[v.ID] = *v
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner transacción en memoria: si fn falla se restaura el estado previo.
type TxRunner struct{ S *Store }

func (t TxRunner) run(fn func() error) error {
	snap := t.S.snapshot()
	if err := fn(); err != nil {
		t.S.restore(snap)
		return err
	}
	return nil
}

func (t TxRunner) RunOrder(_ context.Context, fn func(repository.ProductRepository, repository.OrderRepository) error) error {
	return t.run(func() error { return fn(t.S.ProductRepo(), t.S.OrderRepo()) })
}

func (t TxRunner) RunRoute(_ context.Context, fn func(repository.RouteRepository, repository.OrderRepository) error) error {
	return t.run(func() error { return fn(t.S.RouteRepo(), t.S.OrderRepo()) })
}

func (t TxRunner) RunVisit(_ context.Context, fn func(repository.GeolocationRepository, repository.VisitRepository) error) error {
	return t.run(func() error { return fn(t.S.GeolocationRepo(), t.S.VisitRepo()) })
}
