package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/geo"
	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
	"github.com/jhoicas/medisupply-api/pkg/jwt"
	"github.com/jhoicas/medisupply-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const otpEmailSubject = "Tu código de verificación para MediSupply"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config parámetros del login con segundo factor.
type Config struct {
	JWT                  JWTConfig
	OTPExpirationMinutes int
}

// Deps puertos que usa el caso de uso de auth.
type Deps struct {
	Users        repository.UserRepository
	OTPs         repository.OTPRepository
	Zones        repository.ZoneRepository
	Geolocations repository.GeolocationRepository
	Geo          *geo.Service
	Mailer       ports.Mailer
	Templates    ports.TemplateRenderer
	Limiter      ports.LoginLimiter
}

// AuthUseCase casos de uso de autenticación: registro, login con OTP y verificación.
type AuthUseCase struct {
	deps Deps
	cfg  Config
	log  *logger.Logger
	now  func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(deps Deps, cfg Config, log *logger.Logger) *AuthUseCase {
	if deps.Limiter == nil {
		deps.Limiter = ports.NoopLimiter{}
	}
	if cfg.OTPExpirationMinutes <= 0 {
		cfg.OTPExpirationMinutes = 1
	}
	return &AuthUseCase{deps: deps, cfg: cfg, log: log.Component("auth"), now: time.Now}
}

// Register crea un usuario institucional o comercial.
// Al institucional se le geocodifica la dirección (si hay geocoder) y se le asigna un vendedor al azar;
// al comercial una zona al azar.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.UserCreateRequest) (*dto.UserResponse, error) {
	exists, err := uc.deps.Users.ExistsByEmailOrDOI(ctx, in.Email, in.DOI)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("User with this email or DOI already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	address := in.Address
	user := &entity.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		DOI:          in.DOI,
		Address:      &address,
		Role:         in.Role,
		CreatedAt:    uc.now(),
	}

	switch in.Role {
	case entity.RoleInstitutional:
		if uc.deps.Geo.Enabled() {
			g, err := uc.deps.Geo.FromAddress(ctx, uc.deps.Geolocations, in.Address)
			if err != nil {
				return nil, err
			}
			user.GeolocationID = &g.ID
		}
		seller, err := uc.deps.Users.RandomByRole(ctx, entity.RoleCommercial)
		if err != nil {
			return nil, err
		}
		if seller != nil {
			user.SellerID = &seller.ID
			user.ZoneID = seller.ZoneID
		}
	case entity.RoleCommercial:
		zone, err := uc.deps.Zones.Random(ctx)
		if err != nil {
			return nil, err
		}
		if zone != nil {
			user.ZoneID = &zone.ID
		}
	}

	if err := uc.deps.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("email", user.Email).Str("role", user.Role).Msg("usuario registrado")
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Login valida credenciales, genera un OTP y lo envía por correo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	blocked, err := uc.deps.Limiter.Blocked(ctx, in.Email)
	if err != nil {
		uc.log.Warn().Err(err).Msg("limiter no disponible; se permite el intento")
	}
	if blocked {
		return nil, domain.TooManyRequests("Too many failed login attempts. Please try again later.")
	}

	user, err := uc.deps.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		if ferr := uc.deps.Limiter.RegisterFailure(ctx, in.Email); ferr != nil {
			uc.log.Warn().Err(ferr).Msg("no se pudo registrar el intento fallido")
		}
		return nil, domain.Unauthorized("Invalid email or password")
	}
	if rerr := uc.deps.Limiter.Reset(ctx, in.Email); rerr != nil {
		uc.log.Warn().Err(rerr).Msg("no se pudo reiniciar el contador de intentos")
	}

	otp, err := uc.createOTP(ctx, user)
	if err != nil {
		return nil, err
	}
	html, err := uc.deps.Templates.Render(ports.TemplateOTP, map[string]any{
		"FullName":             user.FullName,
		"OTPCode":              otp.Code,
		"OTPExpirationMinutes": otp.ExpirationMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: render otp: %w", err)
	}
	if err := uc.deps.Mailer.Send(ctx, ports.Email{To: user.Email, Subject: otpEmailSubject, HTML: html}); err != nil {
		return nil, fmt.Errorf("auth: enviar otp: %w", err)
	}
	return &dto.LoginResponse{
		Message:              "OTP generated successfully",
		OTPExpirationMinutes: otp.ExpirationMinutes,
	}, nil
}

// VerifyOTP canjea el código y emite el JWT.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, in dto.VerifyOTPRequest) (*dto.VerifyOTPResponse, error) {
	user, err := uc.deps.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Unauthorized("Invalid or expired OTP")
	}
	if err := uc.verifyOTP(ctx, user, in.OTPCode); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.cfg.JWT.Secret, user.ID, user.Role, uc.cfg.JWT.Issuer, uc.cfg.JWT.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	return &dto.VerifyOTPResponse{
		Message:     "OTP verified successfully",
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.NewUserResponse(user),
	}, nil
}

// CurrentUser resuelve el usuario del token; Unauthorized si ya no existe.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Unauthorized("Could not validate credentials")
	}
	return user, nil
}
