package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
)

// ProductHandler catálogo de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ProductCreateRequest  true  "datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductCreateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBulk godoc
// @Summary      Carga masiva de productos
// @Description  Cada producto se crea por separado; los errores se acumulan sin abortar la carga.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ProductBulkCreateRequest  true  "productos"
// @Success      201   {object}  dto.ProductBulkCreateResponse
// @Router       /api/v1/products/bulk [post]
func (h *ProductHandler) CreateBulk(c *fiber.Ctx) error {
	var in dto.ProductBulkCreateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(h.uc.CreateBulk(c.UserContext(), in))
}

// List godoc
// @Summary      Listar productos
// @Description  Los no administradores sólo ven productos con stock.
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "máximo de productos"
// @Success      200  {object}  dto.ProductsResponse
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductsQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetRole(c), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Recommended godoc
// @Summary      Productos recomendados para un cliente
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query  string  false  "ID del cliente"
// @Param        limit      query  int     false  "máximo (por defecto 10)"
// @Success      200  {object}  dto.ProductsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/recommended [get]
func (h *ProductHandler) Recommended(c *fiber.Ctx) error {
	var q dto.RecommendedQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.Recommended(c.UserContext(), GetUser(c), q.ClientID, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Producto con proveedor, planes de venta y líneas de pedido
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
