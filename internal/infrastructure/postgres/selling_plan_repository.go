package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.SellingPlanRepository = (*SellingPlanRepo)(nil)

const sellingPlanColumns = `id, period, goal, product_id, zone_id, seller_id, created_at`

// SellingPlanRepo planes de venta en PostgreSQL.
type SellingPlanRepo struct {
	q Querier
}

// NewSellingPlanRepository construye el adaptador.
func NewSellingPlanRepository(q Querier) *SellingPlanRepo {
	return &SellingPlanRepo{q: q}
}

func scanSellingPlan(row pgx.Row) (*entity.SellingPlan, error) {
	var sp entity.SellingPlan
	var zoneID, sellerID *string
	if err := row.Scan(&sp.ID, &sp.Period, &sp.Goal, &sp.ProductID, &zoneID, &sellerID, &sp.CreatedAt); err != nil {
		return nil, err
	}
	if zoneID != nil {
		sp.ZoneID = *zoneID
	}
	if sellerID != nil {
		sp.SellerID = *sellerID
	}
	return &sp, nil
}

func (r *SellingPlanRepo) Create(ctx context.Context, sp *entity.SellingPlan) error {
	_, err := r.q.Exec(ctx, `INSERT INTO selling_plans (`+sellingPlanColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sp.ID, sp.Period, sp.Goal, sp.ProductID, sp.ZoneID, sp.SellerID, sp.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("A selling plan with the same period, product, zone, and seller already exists")
		}
		return fmt.Errorf("insert selling plan: %w", err)
	}
	return nil
}

func (r *SellingPlanRepo) GetByID(ctx context.Context, id string) (*entity.SellingPlan, error) {
	sp, err := scanSellingPlan(r.q.QueryRow(ctx, `SELECT `+sellingPlanColumns+` FROM selling_plans WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get selling plan: %w", err)
	}
	return sp, nil
}

func (r *SellingPlanRepo) Exists(ctx context.Context, period, productID, zoneID, sellerID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM selling_plans
			WHERE period = $1 AND product_id = $2 AND zone_id = $3 AND seller_id = $4
		)`, period, productID, zoneID, sellerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists selling plan: %w", err)
	}
	return exists, nil
}

// List planes filtrados por producto, zona y/o vendedor.
func (r *SellingPlanRepo) List(ctx context.Context, filter repository.SellingPlanFilter) ([]*entity.SellingPlan, error) {
	var where []string
	var args []any
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		where = append(where, column+" = $"+strconv.Itoa(len(args)))
	}
	add("product_id", filter.ProductID)
	add("zone_id", filter.ZoneID)
	add("seller_id", filter.SellerID)

	query := `SELECT ` + sellingPlanColumns + ` FROM selling_plans`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY period DESC, created_at`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list selling plans: %w", err)
	}
	return scanAll(rows, scanSellingPlan)
}
