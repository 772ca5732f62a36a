package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

const providerColumns = `id, name, rit, city, country, image_url, email, phone, created_at`

// ProviderRepo proveedores en PostgreSQL.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var p entity.Provider
	if err := row.Scan(&p.ID, &p.Name, &p.RIT, &p.City, &p.Country, &p.ImageURL, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste el proveedor; email y RIT son únicos.
func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	_, err := r.q.Exec(ctx, `INSERT INTO providers (`+providerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.RIT, p.City, p.Country, p.ImageURL, p.Email, p.Phone, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Provider with this email or RIT already exists")
		}
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	p, err := scanProvider(r.q.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

func (r *ProviderRepo) ExistsByEmailOrRIT(ctx context.Context, email, rit string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM providers WHERE email = $1 OR rit = $2)`, email, rit).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists provider: %w", err)
	}
	return exists, nil
}

func (r *ProviderRepo) List(ctx context.Context) ([]*entity.Provider, error) {
	rows, err := r.q.Query(ctx, `SELECT `+providerColumns+` FROM providers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return scanAll(rows, scanProvider)
}
