package usecase

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

// ZoneUseCase consultas de zonas.
type ZoneUseCase struct {
	zones repository.ZoneRepository
	users repository.UserRepository
	plans repository.SellingPlanRepository
}

// NewZoneUseCase construye el caso de uso.
func NewZoneUseCase(zones repository.ZoneRepository, users repository.UserRepository, plans repository.SellingPlanRepository) *ZoneUseCase {
	return &ZoneUseCase{zones: zones, users: users, plans: plans}
}

// List devuelve todas las zonas.
func (uc *ZoneUseCase) List(ctx context.Context) (*dto.ZonesResponse, error) {
	zones, err := uc.zones.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ZonesResponse{TotalCount: len(zones), Zones: make([]dto.ZoneResponse, 0, len(zones))}
	for _, z := range zones {
		out.Zones = append(out.Zones, dto.NewZoneResponse(z))
	}
	return out, nil
}

// GetByID devuelve la zona con sus vendedores y planes de venta.
func (uc *ZoneUseCase) GetByID(ctx context.Context, id string) (*dto.ZoneDetailResponse, error) {
	zone, err := uc.zones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.NotFound("Zone not found")
	}
	sellers, err := uc.users.ListByZone(ctx, id, entity.RoleCommercial)
	if err != nil {
		return nil, err
	}
	plans, err := uc.plans.List(ctx, repository.SellingPlanFilter{ZoneID: id})
	if err != nil {
		return nil, err
	}
	return &dto.ZoneDetailResponse{
		ZoneResponse: dto.NewZoneResponse(zone),
		Sellers:      dto.NewUserResponses(sellers),
		SellingPlans: dto.NewSellingPlanResponses(plans),
	}, nil
}
