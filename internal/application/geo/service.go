package geo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

// PrecisionRooftop único tipo de ubicación aceptado para una dirección.
const PrecisionRooftop = "ROOFTOP"

// Service valida direcciones contra el geocoder y persiste la geolocalización resultante.
type Service struct {
	geocoder ports.Geocoder
	now      func() time.Time
}

// NewService construye el servicio. geocoder puede ser nil (sin API key configurada).
func NewService(geocoder ports.Geocoder) *Service {
	return &Service{geocoder: geocoder, now: time.Now}
}

// Enabled indica si hay geocoder configurado.
func (s *Service) Enabled() bool {
	return s != nil && s.geocoder != nil
}

// FromAddress geocodifica la dirección (sólo ROOFTOP) y la guarda con repo.
func (s *Service) FromAddress(ctx context.Context, repo repository.GeolocationRepository, address string) (*entity.Geolocation, error) {
	address = strings.TrimSpace(address)
	if len(address) < 5 {
		return nil, domain.BadRequest("Address is too short or empty.")
	}
	if !s.Enabled() {
		return nil, fmt.Errorf("geo: geocoder no configurado")
	}
	res, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("geo: geocode: %w", err)
	}
	if res == nil {
		return nil, domain.BadRequest("Address not found. Please provide a valid and complete address.")
	}
	if res.LocationType != PrecisionRooftop {
		return nil, domain.BadRequest("Address is not precise enough (type: %s). Please provide a more specific address.", res.LocationType)
	}
	formatted := res.FormattedAddress
	g := &entity.Geolocation{
		ID:        uuid.New().String(),
		Address:   &formatted,
		Latitude:  res.Latitude,
		Longitude: res.Longitude,
		CreatedAt: s.now(),
	}
	if err := repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// FromCoordinates guarda un punto sin dirección.
func (s *Service) FromCoordinates(ctx context.Context, repo repository.GeolocationRepository, lat, lng float64) (*entity.Geolocation, error) {
	g := &entity.Geolocation{
		ID:        uuid.New().String(),
		Latitude:  lat,
		Longitude: lng,
		CreatedAt: s.now(),
	}
	if err := repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
