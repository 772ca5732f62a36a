package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.ZoneRepository = (*ZoneRepo)(nil)

// ZoneRepo zonas comerciales en PostgreSQL.
type ZoneRepo struct {
	q Querier
}

// NewZoneRepository construye el adaptador.
func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

func scanZone(row pgx.Row) (*entity.Zone, error) {
	var z entity.Zone
	if err := row.Scan(&z.ID, &z.Description, &z.CreatedAt); err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *ZoneRepo) Create(ctx context.Context, z *entity.Zone) error {
	_, err := r.q.Exec(ctx, `INSERT INTO zones (id, description, created_at) VALUES ($1, $2, $3)`,
		z.ID, z.Description, z.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}

func (r *ZoneRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Zone, error) {
	z, err := scanZone(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return z, nil
}

func (r *ZoneRepo) GetByID(ctx context.Context, id string) (*entity.Zone, error) {
	return r.getOne(ctx, `SELECT id, description, created_at FROM zones WHERE id = $1`, id)
}

func (r *ZoneRepo) List(ctx context.Context) ([]*entity.Zone, error) {
	rows, err := r.q.Query(ctx, `SELECT id, description, created_at FROM zones ORDER BY description`)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return scanAll(rows, scanZone)
}

// Random zona al azar para asignar a un vendedor nuevo.
func (r *ZoneRepo) Random(ctx context.Context) (*entity.Zone, error) {
	return r.getOne(ctx, `SELECT id, description, created_at FROM zones ORDER BY random() LIMIT 1`)
}
