package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/auth"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
)

// AuthHandler maneja registro, login con OTP y permisos.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	perms *Permissions
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, perms *Permissions) *AuthHandler {
	return &AuthHandler{uc: uc, perms: perms}
}

// Register godoc
// @Summary      Registrar usuario institucional o comercial
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UserCreateRequest  true  "datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.UserCreateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión (envía OTP por correo)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// VerifyOTP godoc
// @Summary      Verificar OTP y obtener token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyOTPRequest  true  "email, otp_code"
// @Success      200   {object}  dto.VerifyOTPResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var in dto.VerifyOTPRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.VerifyOTP(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Permissions godoc
// @Summary      Rutas permitidas para el usuario actual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PermissionsResponse
// @Router       /api/v1/auth/permissions [get]
func (h *AuthHandler) Permissions(c *fiber.Ctx) error {
	user := GetUser(c)
	return c.JSON(dto.PermissionsResponse{
		User:      dto.NewUserResponse(user),
		Endpoints: h.perms.For(user.Role),
	})
}
