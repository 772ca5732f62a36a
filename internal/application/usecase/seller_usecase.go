package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
	"github.com/jhoicas/medisupply-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const (
	temporaryPasswordLength  = 8
	temporaryPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@#$-_!"
	welcomeEmailSubject      = "¡Bienvenido a MediSupply! - Tu contraseña temporal"
)

// SellerUseCase alta y consulta de vendedores (usuarios comerciales) y sus clientes.
type SellerUseCase struct {
	users     repository.UserRepository
	zones     repository.ZoneRepository
	mailer    ports.Mailer
	templates ports.TemplateRenderer
	loginURL  string
	log       *logger.Logger
	now       func() time.Time
}

// NewSellerUseCase construye el caso de uso.
func NewSellerUseCase(
	users repository.UserRepository,
	zones repository.ZoneRepository,
	mailer ports.Mailer,
	templates ports.TemplateRenderer,
	loginURL string,
	log *logger.Logger,
) *SellerUseCase {
	return &SellerUseCase{
		users:     users,
		zones:     zones,
		mailer:    mailer,
		templates: templates,
		loginURL:  loginURL,
		log:       log.Component("sellers"),
		now:       time.Now,
	}
}

// Create registra un vendedor con contraseña temporal y se la envía por correo.
func (uc *SellerUseCase) Create(ctx context.Context, in dto.SellerCreateRequest) (*dto.SellerResponse, error) {
	exists, err := uc.users.ExistsByEmailOrDOI(ctx, in.Email, in.DOI)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("Seller with this email or DOI already exists")
	}
	zone, err := uc.zones.GetByID(ctx, in.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.Unprocessable("Zone with the given ID does not exist")
	}

	password, err := generateTemporaryPassword()
	if err != nil {
		return nil, fmt.Errorf("sellers: generar contraseña: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("sellers: hash password: %w", err)
	}
	zoneID := zone.ID
	user := &entity.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		DOI:          in.DOI,
		Role:         entity.RoleCommercial,
		ZoneID:       &zoneID,
		CreatedAt:    uc.now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("vendedor creado")

	html, err := uc.templates.Render(ports.TemplateTemporaryPassword, map[string]any{
		"FullName":          user.FullName,
		"TemporaryPassword": password,
		"Email":             user.Email,
		"LoginURL":          uc.loginURL,
	})
	if err != nil {
		return nil, fmt.Errorf("sellers: render plantilla: %w", err)
	}
	if err := uc.mailer.Send(ctx, ports.Email{To: user.Email, Subject: welcomeEmailSubject, HTML: html}); err != nil {
		return nil, fmt.Errorf("sellers: enviar contraseña temporal: %w", err)
	}

	out := dto.NewSellerResponse(user, zone)
	return &out, nil
}

// List devuelve todos los vendedores.
func (uc *SellerUseCase) List(ctx context.Context) (*dto.SellersResponse, error) {
	sellers, err := uc.users.ListByRole(ctx, entity.RoleCommercial)
	if err != nil {
		return nil, err
	}
	zones := map[string]*entity.Zone{}
	out := &dto.SellersResponse{TotalCount: len(sellers), Sellers: make([]dto.SellerResponse, 0, len(sellers))}
	for _, s := range sellers {
		zone, err := uc.zoneOf(ctx, s, zones)
		if err != nil {
			return nil, err
		}
		out.Sellers = append(out.Sellers, dto.NewSellerResponse(s, zone))
	}
	return out, nil
}

// GetByID devuelve un vendedor; NotFound si no existe o no es comercial.
func (uc *SellerUseCase) GetByID(ctx context.Context, id string) (*dto.SellerResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleCommercial {
		return nil, domain.NotFound("Seller not found")
	}
	zone, err := uc.zoneOf(ctx, user, map[string]*entity.Zone{})
	if err != nil {
		return nil, err
	}
	out := dto.NewSellerResponse(user, zone)
	return &out, nil
}

// Clients clientes institucionales asignados al vendedor.
func (uc *SellerUseCase) Clients(ctx context.Context, sellerID string) (*dto.ClientsResponse, error) {
	clients, err := uc.users.ListClientsBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &dto.ClientsResponse{TotalCount: len(clients), Clients: dto.NewUserResponses(clients)}, nil
}

func (uc *SellerUseCase) zoneOf(ctx context.Context, u *entity.User, cache map[string]*entity.Zone) (*entity.Zone, error) {
	if u.ZoneID == nil {
		return nil, nil
	}
	if z, ok := cache[*u.ZoneID]; ok {
		return z, nil
	}
	z, err := uc.zones.GetByID(ctx, *u.ZoneID)
	if err != nil {
		return nil, err
	}
	cache[*u.ZoneID] = z
	return z, nil
}

func generateTemporaryPassword() (string, error) {
	buf := make([]byte, temporaryPasswordLength)
	limit := big.NewInt(int64(len(temporaryPasswordCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = temporaryPasswordCharset[n.Int64()]
	}
	return string(buf), nil
}
