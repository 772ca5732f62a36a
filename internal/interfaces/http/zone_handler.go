package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
)

// ZoneHandler lectura de zonas.
type ZoneHandler struct {
	uc *usecase.ZoneUseCase
}

// NewZoneHandler construye el handler.
func NewZoneHandler(uc *usecase.ZoneUseCase) *ZoneHandler {
	return &ZoneHandler{uc: uc}
}

// List godoc
// @Summary      Listar zonas
// @Tags         zones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ZonesResponse
// @Router       /api/v1/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Zona con vendedores y planes de venta
// @Tags         zones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID de la zona"
// @Success      200  {object}  dto.ZoneDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/zones/{id} [get]
func (h *ZoneHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
