package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/report"
)

// ReportHandler reportes de pedidos y ventas.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Orders godoc
// @Summary      Reporte de pedidos con vendedor
// @Description  format=json (por defecto), csv o pdf; csv y pdf se descargan como adjunto.
// @Tags         reports
// @Produce      json
// @Produce      text/csv
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        seller_id     query  string  false  "ID del vendedor"
// @Param        order_status  query  string  false  "estado"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        format        query  string  false  "json | csv | pdf"
// @Success      200  {object}  dto.OrdersReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/orders [get]
func (h *ReportHandler) Orders(c *fiber.Ctx) error {
	var q dto.OrdersReportQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	if q.Format == "" || q.Format == dto.ReportFormatJSON {
		out, err := h.uc.OrdersReport(c.UserContext(), q)
		if err != nil {
			return err
		}
		return c.JSON(out)
	}
	exp, err := h.uc.ExportOrdersReport(c.UserContext(), q)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, exp.ContentType)
	c.Attachment(exp.Filename)
	return c.Send(exp.Content)
}

// SalesSummary godoc
// @Summary      Resumen de ventas por vendedor y productos más vendidos
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query  string  false  "YYYY-MM-DD (por defecto hace 30 días)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Param        limit       query  int     false  "productos en el top (por defecto 5)"
// @Success      200  {object}  dto.SalesSummaryResponse
// @Router       /api/v1/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	var q dto.SalesSummaryQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.SalesSummary(c.UserContext(), optionalDate(q.StartDate), optionalDate(q.EndDate), q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// optionalDate fecha YYYY-MM-DD ya validada; nil si viene vacía.
func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
