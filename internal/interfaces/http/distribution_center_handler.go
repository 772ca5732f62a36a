package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
)

// DistributionCenterHandler centros de distribución.
type DistributionCenterHandler struct {
	uc *usecase.DistributionCenterUseCase
}

// NewDistributionCenterHandler construye el handler.
func NewDistributionCenterHandler(uc *usecase.DistributionCenterUseCase) *DistributionCenterHandler {
	return &DistributionCenterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear centro de distribución
// @Tags         distribution-centers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DistributionCenterCreateRequest  true  "nombre, dirección, ciudad, país"
// @Success      201   {object}  dto.DistributionCenterResponse
// @Router       /api/v1/distribution-centers [post]
func (h *DistributionCenterHandler) Create(c *fiber.Ctx) error {
	var in dto.DistributionCenterCreateRequest
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
// @Summary      Listar centros de distribución
// @Tags         distribution-centers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DistributionCentersResponse
// @Router       /api/v1/distribution-centers [get]
func (h *DistributionCenterHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener centro de distribución
// @Tags         distribution-centers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del centro"
// @Success      200  {object}  dto.DistributionCenterResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/distribution-centers/{id} [get]
func (h *DistributionCenterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
