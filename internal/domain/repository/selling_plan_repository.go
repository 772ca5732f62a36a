package repository

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// SellingPlanFilter filtro por relación; campos vacíos no filtran.
type SellingPlanFilter struct {
	ProductID string
	ZoneID    string
	SellerID  string
}

// SellingPlanRepository persistencia de planes de venta.
type SellingPlanRepository interface {
	Create(ctx context.Context, plan *entity.SellingPlan) error
	GetByID(ctx context.Context, id string) (*entity.SellingPlan, error)
	Exists(ctx context.Context, period, productID, zoneID, sellerID string) (bool, error)
	List(ctx context.Context, filter SellingPlanFilter) ([]*entity.SellingPlan, error)
}
