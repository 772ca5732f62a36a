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

// ProviderUseCase alta y consulta de proveedores.
type ProviderUseCase struct {
	repo repository.ProviderRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewProviderUseCase construye el caso de uso.
func NewProviderUseCase(repo repository.ProviderRepository, log *logger.Logger) *ProviderUseCase {
	return &ProviderUseCase{repo: repo, log: log.Component("providers"), now: time.Now}
}

// Create registra un proveedor. Conflict si el email o el RIT ya existen.
func (uc *ProviderUseCase) Create(ctx context.Context, in dto.ProviderCreateRequest) (*dto.ProviderResponse, error) {
	exists, err := uc.repo.ExistsByEmailOrRIT(ctx, in.Email, in.RIT)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("Provider with this email or RIT already exists")
	}
	p := &entity.Provider{
		ID:        uuid.New().String(),
		Name:      in.Name,
		RIT:       in.RIT,
		City:      in.City,
		Country:   in.Country,
		ImageURL:  in.ImageURL,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("provider_id", p.ID).Str("name", p.Name).Msg("proveedor creado")
	out := dto.NewProviderResponse(p)
	return &out, nil
}

// List devuelve todos los proveedores.
func (uc *ProviderUseCase) List(ctx context.Context) (*dto.ProvidersResponse, error) {
	providers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ProvidersResponse{TotalCount: len(providers), Providers: make([]dto.ProviderResponse, 0, len(providers))}
	for _, p := range providers {
		out.Providers = append(out.Providers, dto.NewProviderResponse(p))
	}
	return out, nil
}

// GetByID obtiene un proveedor.
func (uc *ProviderUseCase) GetByID(ctx context.Context, id string) (*dto.ProviderResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("Provider not found")
	}
	out := dto.NewProviderResponse(p)
	return &out, nil
}
