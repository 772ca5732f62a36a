package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/order"
)

// OrderHandler pedidos.
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Bloquea cada producto, valida y descuenta stock en una sola transacción.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.OrderCreateRequest  true  "pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderCreateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos visibles para el usuario
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        delivery_date  query  string  false  "YYYY-MM-DD"
// @Param        order_status   query  string  false  "estado"
// @Success      200  {object}  dto.OrdersResponse
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrdersQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	lq := order.ListQuery{Status: q.OrderStatus}
	if q.DeliveryDate != "" {
		d, _ := time.Parse(dto.DateLayout, q.DeliveryDate)
		lq.DeliveryDate = &d
	}
	out, err := h.uc.List(c.UserContext(), GetUser(c), lq)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.OrderStatusUpdateRequest  true  "nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.OrderStatusUpdateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
