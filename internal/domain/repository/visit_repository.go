package repository

import (
	"context"
	"time"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// VisitFilter alcance y filtros del listado de visitas.
type VisitFilter struct {
	SellerID     string
	ClientID     string
	ExpectedDate *time.Time
	Status       string
}

// VisitRepository persistencia de visitas.
type VisitRepository interface {
	Create(ctx context.Context, visit *entity.Visit) error
	GetByID(ctx context.Context, id string) (*entity.Visit, error)
	List(ctx context.Context, filter VisitFilter) ([]*entity.Visit, error)
	// SaveReport guarda los campos del reporte de la visita (fecha, observaciones, evidencia, estado).
	SaveReport(ctx context.Context, visit *entity.Visit) error
}
