package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
)

// ProviderHandler proveedores.
type ProviderHandler struct {
	uc *usecase.ProviderUseCase
}

// NewProviderHandler construye el handler.
func NewProviderHandler(uc *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ProviderCreateRequest  true  "datos del proveedor"
// @Success      201   {object}  dto.ProviderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/providers [post]
func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var in dto.ProviderCreateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProvidersResponse
// @Router       /api/v1/providers [get]
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor
// @Tags         providers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del proveedor"
// @Success      200  {object}  dto.ProviderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/providers/{id} [get]
func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
