package dto

import "github.com/jhoicas/medisupply-api/internal/domain/entity"

// Conversores entidad -> DTO compartidos por los casos de uso.

func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		DOI:       u.DOI,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

func NewZoneResponse(z *entity.Zone) ZoneResponse {
	return ZoneResponse{ID: z.ID, Description: z.Description, CreatedAt: z.CreatedAt}
}

func NewSellerResponse(u *entity.User, zone *entity.Zone) SellerResponse {
	out := SellerResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		DOI:       u.DOI,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
	if zone != nil {
		z := NewZoneResponse(zone)
		out.Zone = &z
	}
	return out
}

func NewProviderResponse(p *entity.Provider) ProviderResponse {
	return ProviderResponse{
		ID:        p.ID,
		Name:      p.Name,
		RIT:       p.RIT,
		City:      p.City,
		Country:   p.Country,
		ImageURL:  p.ImageURL,
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}

func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Details:      p.Details,
		Store:        p.Store,
		Batch:        p.Batch,
		ImageURL:     p.ImageURL,
		DueDate:      NewDate(p.DueDate),
		Stock:        p.Stock,
		PricePerUnit: p.PricePerUnit,
		CreatedAt:    p.CreatedAt,
	}
}

func NewProductResponses(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

func NewSellingPlanResponse(sp *entity.SellingPlan) SellingPlanResponse {
	return SellingPlanResponse{ID: sp.ID, Period: sp.Period, Goal: sp.Goal, CreatedAt: sp.CreatedAt}
}

func NewSellingPlanResponses(plans []*entity.SellingPlan) []SellingPlanResponse {
	out := make([]SellingPlanResponse, 0, len(plans))
	for _, sp := range plans {
		out = append(out, NewSellingPlanResponse(sp))
	}
	return out
}

func NewDistributionCenterResponse(dc *entity.DistributionCenter) DistributionCenterResponse {
	return DistributionCenterResponse{
		ID:        dc.ID,
		Name:      dc.Name,
		Address:   dc.Address,
		City:      dc.City,
		Country:   dc.Country,
		CreatedAt: dc.CreatedAt,
	}
}

func NewOrderBase(o *entity.Order) OrderBase {
	return OrderBase{
		ID:           o.ID,
		Comments:     o.Comments,
		DeliveryDate: NewDate(o.DeliveryDate),
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}

func NewOrderProductDetail(p *entity.Product, quantity int) OrderProductDetail {
	return OrderProductDetail{
		ID:           p.ID,
		Name:         p.Name,
		Store:        p.Store,
		Batch:        p.Batch,
		DueDate:      NewDate(p.DueDate),
		PricePerUnit: p.PricePerUnit,
		Quantity:     quantity,
		ImageURL:     p.ImageURL,
	}
}

func NewRouteBase(r *entity.Route) RouteBase {
	return RouteBase{
		ID:               r.ID,
		Name:             r.Name,
		VehiclePlate:     r.VehiclePlate,
		Restrictions:     r.Restrictions,
		DeliveryDeadline: NewDate(r.DeliveryDeadline),
		CreatedAt:        r.CreatedAt,
	}
}

func NewGeolocationResponse(g *entity.Geolocation) *GeolocationResponse {
	if g == nil {
		return nil
	}
	return &GeolocationResponse{
		ID:        g.ID,
		Address:   g.Address,
		Latitude:  g.Latitude,
		Longitude: g.Longitude,
		CreatedAt: g.CreatedAt,
	}
}
