package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

// DistributionCenterUseCase centros de distribución.
type DistributionCenterUseCase struct {
	repo repository.DistributionCenterRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewDistributionCenterUseCase construye el caso de uso.
func NewDistributionCenterUseCase(repo repository.DistributionCenterRepository, log *logger.Logger) *DistributionCenterUseCase {
	return &DistributionCenterUseCase{repo: repo, log: log.Component("distribution_centers"), now: time.Now}
}

// Create registra un centro.
func (uc *DistributionCenterUseCase) Create(ctx context.Context, in dto.DistributionCenterCreateRequest) (*dto.DistributionCenterResponse, error) {
	dc := &entity.DistributionCenter{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		Country:   in.Country,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, dc); err != nil {
		return nil, err
	}
	uc.log.Info().Str("distribution_center_id", dc.ID).Str("name", dc.Name).Msg("centro de distribución creado")
	out := dto.NewDistributionCenterResponse(dc)
	return &out, nil
}

// List devuelve todos los centros.
func (uc *DistributionCenterUseCase) List(ctx context.Context) (*dto.DistributionCentersResponse, error) {
	centers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.DistributionCentersResponse{
		TotalCount:          len(centers),
		DistributionCenters: make([]dto.DistributionCenterResponse, 0, len(centers)),
	}
	for _, dc := range centers {
		out.DistributionCenters = append(out.DistributionCenters, dto.NewDistributionCenterResponse(dc))
	}
	return out, nil
}

// GetByID obtiene un centro.
func (uc *DistributionCenterUseCase) GetByID(ctx context.Context, id string) (*dto.DistributionCenterResponse, error) {
	dc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, domain.NotFound("Distribution center not found")
	}
	out := dto.NewDistributionCenterResponse(dc)
	return &out, nil
}
