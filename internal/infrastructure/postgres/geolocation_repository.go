package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.GeolocationRepository = (*GeolocationRepo)(nil)

// GeolocationRepo puntos geográficos en PostgreSQL.
type GeolocationRepo struct {
	q Querier
}

// NewGeolocationRepository construye el adaptador.
func NewGeolocationRepository(q Querier) *GeolocationRepo {
	return &GeolocationRepo{q: q}
}

func (r *GeolocationRepo) Create(ctx context.Context, g *entity.Geolocation) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO geolocations (id, address, latitude, longitude, created_at) VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.Address, g.Latitude, g.Longitude, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert geolocation: %w", err)
	}
	return nil
}

func (r *GeolocationRepo) GetByID(ctx context.Context, id string) (*entity.Geolocation, error) {
	var g entity.Geolocation
	err := r.q.QueryRow(ctx,
		`SELECT id, address, latitude, longitude, created_at FROM geolocations WHERE id = $1`, id,
	).Scan(&g.ID, &g.Address, &g.Latitude, &g.Longitude, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get geolocation: %w", err)
	}
	return &g, nil
}
