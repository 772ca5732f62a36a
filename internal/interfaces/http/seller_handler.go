package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
)

// SellerHandler vendedores y sus clientes.
type SellerHandler struct {
	uc *usecase.SellerUseCase
}

// NewSellerHandler construye el handler.
func NewSellerHandler(uc *usecase.SellerUseCase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear vendedor (envía contraseña temporal)
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SellerCreateRequest  true  "datos del vendedor"
// @Success      201   {object}  dto.SellerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/sellers [post]
func (h *SellerHandler) Create(c *fiber.Ctx) error {
	var in dto.SellerCreateRequest
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
// @Summary      Listar vendedores
// @Tags         sellers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SellersResponse
// @Router       /api/v1/sellers [get]
func (h *SellerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener vendedor
// @Tags         sellers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del vendedor"
// @Success      200  {object}  dto.SellerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/sellers/{id} [get]
func (h *SellerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Clients godoc
// @Summary      Clientes asignados al vendedor autenticado
// @Tags         sellers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ClientsResponse
// @Router       /api/v1/sellers/clients [get]
func (h *SellerHandler) Clients(c *fiber.Ctx) error {
	out, err := h.uc.Clients(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
