package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

// SellingPlanUseCase metas de venta por producto, zona, vendedor y periodo.
type SellingPlanUseCase struct {
	plans    repository.SellingPlanRepository
	products repository.ProductRepository
	zones    repository.ZoneRepository
	users    repository.UserRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewSellingPlanUseCase construye el caso de uso.
func NewSellingPlanUseCase(
	plans repository.SellingPlanRepository,
	products repository.ProductRepository,
	zones repository.ZoneRepository,
	users repository.UserRepository,
	log *logger.Logger,
) *SellingPlanUseCase {
	return &SellingPlanUseCase{plans: plans, products: products, zones: zones, users: users, log: log.Component("selling_plans"), now: time.Now}
}

// Create registra el plan. El duplicado se revisa antes que las referencias.
func (uc *SellingPlanUseCase) Create(ctx context.Context, in dto.SellingPlanCreateRequest) (*dto.SellingPlanResponse, error) {
	exists, err := uc.plans.Exists(ctx, in.Period, in.ProductID, in.ZoneID, in.SellerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("A selling plan with the same period, product, zone, and seller already exists")
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Unprocessable("Product with the given ID does not exist")
	}
	zone, err := uc.zones.GetByID(ctx, in.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.Unprocessable("Zone with the given ID does not exist")
	}
	seller, err := uc.users.GetByID(ctx, in.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil || seller.Role != entity.RoleCommercial {
		return nil, domain.Unprocessable("Seller with the given ID does not exist")
	}

	sp := &entity.SellingPlan{
		ID:        uuid.New().String(),
		Period:    in.Period,
		Goal:      in.Goal,
		ProductID: in.ProductID,
		ZoneID:    in.ZoneID,
		SellerID:  in.SellerID,
		CreatedAt: uc.now(),
	}
	if err := uc.plans.Create(ctx, sp); err != nil {
		return nil, err
	}
	uc.log.Info().Str("selling_plan_id", sp.ID).Str("period", sp.Period).Msg("plan de venta creado")
	return uc.withRelations(sp, product, zone, seller), nil
}

// List devuelve todos los planes con sus relaciones.
func (uc *SellingPlanUseCase) List(ctx context.Context) (*dto.SellingPlansResponse, error) {
	plans, err := uc.plans.List(ctx, repository.SellingPlanFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.SellingPlansResponse{TotalCount: len(plans), SellingPlans: make([]dto.SellingPlanResponse, 0, len(plans))}
	for _, sp := range plans {
		resp, err := uc.load(ctx, sp)
		if err != nil {
			return nil, err
		}
		out.SellingPlans = append(out.SellingPlans, *resp)
	}
	return out, nil
}

// GetByID obtiene un plan con sus relaciones.
func (uc *SellingPlanUseCase) GetByID(ctx context.Context, id string) (*dto.SellingPlanResponse, error) {
	sp, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.NotFound("Selling plan not found")
	}
	return uc.load(ctx, sp)
}

func (uc *SellingPlanUseCase) load(ctx context.Context, sp *entity.SellingPlan) (*dto.SellingPlanResponse, error) {
	product, err := uc.products.GetByID(ctx, sp.ProductID)
	if err != nil {
		return nil, err
	}
	zone, err := uc.zones.GetByID(ctx, sp.ZoneID)
	if err != nil {
		return nil, err
	}
	seller, err := uc.users.GetByID(ctx, sp.SellerID)
	if err != nil {
		return nil, err
	}
	return uc.withRelations(sp, product, zone, seller), nil
}

func (uc *SellingPlanUseCase) withRelations(sp *entity.SellingPlan, product *entity.Product, zone *entity.Zone, seller *entity.User) *dto.SellingPlanResponse {
	out := dto.NewSellingPlanResponse(sp)
	if product != nil {
		p := dto.NewProductResponse(product)
		out.Product = &p
	}
	if zone != nil {
		z := dto.NewZoneResponse(zone)
		out.Zone = &z
	}
	if seller != nil {
		s := dto.NewSellerResponse(seller, nil)
		out.Seller = &s
	}
	return &out
}
