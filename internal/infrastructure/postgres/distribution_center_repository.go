package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.DistributionCenterRepository = (*DistributionCenterRepo)(nil)

const distributionCenterColumns = `id, name, address, city, country, created_at`

// DistributionCenterRepo centros de distribución en PostgreSQL.
type DistributionCenterRepo struct {
	q Querier
}

// NewDistributionCenterRepository construye el adaptador.
func NewDistributionCenterRepository(q Querier) *DistributionCenterRepo {
	return &DistributionCenterRepo{q: q}
}

func scanDistributionCenter(row pgx.Row) (*entity.DistributionCenter, error) {
	var dc entity.DistributionCenter
	if err := row.Scan(&dc.ID, &dc.Name, &dc.Address, &dc.City, &dc.Country, &dc.CreatedAt); err != nil {
		return nil, err
	}
	return &dc, nil
}

func (r *DistributionCenterRepo) Create(ctx context.Context, dc *entity.DistributionCenter) error {
	_, err := r.q.Exec(ctx, `INSERT INTO distribution_centers (`+distributionCenterColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		dc.ID, dc.Name, dc.Address, dc.City, dc.Country, dc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert distribution center: %w", err)
	}
	return nil
}

func (r *DistributionCenterRepo) GetByID(ctx context.Context, id string) (*entity.DistributionCenter, error) {
	dc, err := scanDistributionCenter(r.q.QueryRow(ctx, `SELECT `+distributionCenterColumns+` FROM distribution_centers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distribution center: %w", err)
	}
	return dc, nil
}

func (r *DistributionCenterRepo) List(ctx context.Context) ([]*entity.DistributionCenter, error) {
	rows, err := r.q.Query(ctx, `SELECT `+distributionCenterColumns+` FROM distribution_centers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list distribution centers: %w", err)
	}
	return scanAll(rows, scanDistributionCenter)
}
