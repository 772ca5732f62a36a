package repository

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// GeolocationRepository persistencia de puntos geográficos.
type GeolocationRepository interface {
	Create(ctx context.Context, g *entity.Geolocation) error
	GetByID(ctx context.Context, id string) (*entity.Geolocation, error)
}
