package visit

import (
	"context"

	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

// TxRunner guarda la geolocalización del reporte y la visita en una misma transacción.
type TxRunner interface {
	RunVisit(ctx context.Context, fn func(
		geolocations repository.GeolocationRepository,
		visits repository.VisitRepository,
	) error) error
}
