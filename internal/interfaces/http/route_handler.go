package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/logistics"
)

// RouteHandler rutas de entrega.
type RouteHandler struct {
	uc *logistics.RouteUseCase
}

// NewRouteHandler construye el handler de rutas.
func NewRouteHandler(uc *logistics.RouteUseCase) *RouteHandler {
	return &RouteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ruta agrupando pedidos de un centro de distribución
// @Tags         routes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RouteCreateRequest  true  "ruta"
// @Success      201   {object}  dto.RouteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/routes [post]
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	var in dto.RouteCreateRequest
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
// @Summary      Listar rutas
// @Tags         routes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RoutesResponse
// @Router       /api/v1/routes [get]
func (h *RouteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ruta con sus pedidos
// @Tags         routes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID de la ruta"
// @Success      200  {object}  dto.RouteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/routes/{id} [get]
func (h *RouteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Map godoc
// @Summary      Paradas de la ruta con coordenadas del cliente
// @Tags         routes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID de la ruta"
// @Success      200  {object}  dto.RouteMapResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/routes/{id}/map [get]
func (h *RouteHandler) Map(c *fiber.Ctx) error {
	out, err := h.uc.Map(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
