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

// DefaultRecommendationLimit cantidad de recomendaciones cuando no se indica limit.
const DefaultRecommendationLimit = 10

// ProductUseCase catálogo de productos y recomendaciones.
type ProductUseCase struct {
	products  repository.ProductRepository
	providers repository.ProviderRepository
	plans     repository.SellingPlanRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	providers repository.ProviderRepository,
	plans repository.SellingPlanRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		products:  products,
		providers: providers,
		plans:     plans,
		orders:    orders,
		users:     users,
		log:       log.Component("products"),
		now:       time.Now,
	}
}

// Create crea un producto. Unprocessable si el proveedor no existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductCreateRequest) (*dto.ProductResponse, error) {
	provider, err := uc.providers.GetByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, domain.Unprocessable("Provider with the given ID does not exist")
	}
	p := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Details:      in.Details,
		Store:        in.Store,
		Batch:        in.Batch,
		ImageURL:     in.ImageURL,
		DueDate:      in.DueDate.Time,
		Stock:        in.Stock,
		PricePerUnit: in.PricePerUnit,
		ProviderID:   in.ProviderID,
		CreatedAt:    uc.now(),
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("producto creado")
	out := dto.NewProductResponse(p)
	return &out, nil
}

// CreateBulk crea cada producto por separado; los fallos se acumulan y nunca abortan el lote.
func (uc *ProductUseCase) CreateBulk(ctx context.Context, in dto.ProductBulkCreateRequest) *dto.ProductBulkCreateResponse {
	out := &dto.ProductBulkCreateResponse{RowsTotal: len(in.Products), ErrorsDetails: []string{}}
	for _, item := range in.Products {
		if _, err := uc.Create(ctx, item); err != nil {
			if appErr, ok := domain.AsError(err); ok {
				out.ErrorsDetails = append(out.ErrorsDetails, "Error for product '"+item.Name+"': "+appErr.Message)
			} else {
				uc.log.Error().Err(err).Str("name", item.Name).Msg("carga masiva: error inesperado")
				out.ErrorsDetails = append(out.ErrorsDetails, "Unexpected error for product '"+item.Name+"': "+err.Error())
			}
			continue
		}
		out.RowsInserted++
	}
	out.Errors = out.RowsTotal - out.RowsInserted
	out.Success = out.Errors == 0
	return out
}

// List productos ordenados por nombre; quien no es admin sólo ve los que tienen stock.
func (uc *ProductUseCase) List(ctx context.Context, role string, limit int) (*dto.ProductsResponse, error) {
	products, err := uc.products.List(ctx, repository.ProductFilter{
		OnlyInStock: role != entity.RoleAdmin,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductsResponse{TotalCount: len(products), Products: dto.NewProductResponses(products)}, nil
}

// GetByID producto con proveedor, planes de venta y líneas de pedido.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("Product not found")
	}
	out := &dto.ProductDetailResponse{ProductResponse: dto.NewProductResponse(p)}
	provider, err := uc.providers.GetByID(ctx, p.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		pr := dto.NewProviderResponse(provider)
		out.Provider = &pr
	}
	plans, err := uc.plans.List(ctx, repository.SellingPlanFilter{ProductID: id})
	if err != nil {
		return nil, err
	}
	out.SellingPlans = dto.NewSellingPlanResponses(plans)
	lines, err := uc.orders.ListLinesByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out.OrderProducts = make([]dto.OrderProductLine, 0, len(lines))
	for _, l := range lines {
		out.OrderProducts = append(out.OrderProducts, dto.OrderProductLine{OrderID: l.OrderID, ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out, nil
}

// Recommended recomienda productos para un cliente.
// Orden de preferencia: ranking de compras del cliente, ranking global y listado simple.
func (uc *ProductUseCase) Recommended(ctx context.Context, caller *entity.User, clientID string, limit int) (*dto.ProductsResponse, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if clientID == "" && caller.Role == entity.RoleInstitutional {
		clientID = caller.ID
	}
	if clientID == "" {
		return nil, domain.NotFound("Client not found")
	}
	client, err := uc.users.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || (caller.Role == entity.RoleCommercial && !client.IsClientOf(caller.ID)) {
		return nil, domain.NotFound("Client not found")
	}

	products, err := uc.products.Ranked(ctx, clientID, limit)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		if products, err = uc.products.Ranked(ctx, "", limit); err != nil {
			return nil, err
		}
	}
	if len(products) == 0 {
		if products, err = uc.products.List(ctx, repository.ProductFilter{OnlyInStock: caller.Role != entity.RoleAdmin, Limit: limit}); err != nil {
			return nil, err
		}
	}
	return &dto.ProductsResponse{TotalCount: len(products), Products: dto.NewProductResponses(products)}, nil
}
