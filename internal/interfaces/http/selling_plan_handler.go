package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
)

// SellingPlanHandler planes de venta.
type SellingPlanHandler struct {
	uc *usecase.SellingPlanUseCase
}

// NewSellingPlanHandler construye el handler.
func NewSellingPlanHandler(uc *usecase.SellingPlanUseCase) *SellingPlanHandler {
	return &SellingPlanHandler{uc: uc}
}

// Create godoc
// @Summary      Crear plan de venta
// @Tags         selling-plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SellingPlanCreateRequest  true  "periodo, meta, producto, zona, vendedor"
// @Success      201   {object}  dto.SellingPlanResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/selling-plans [post]
func (h *SellingPlanHandler) Create(c *fiber.Ctx) error {
	var in dto.SellingPlanCreateRequest
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
// @Summary      Listar planes de venta
// @Tags         selling-plans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SellingPlansResponse
// @Router       /api/v1/selling-plans [get]
func (h *SellingPlanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener plan de venta
// @Tags         selling-plans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del plan"
// @Success      200  {object}  dto.SellingPlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/selling-plans/{id} [get]
func (h *SellingPlanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
