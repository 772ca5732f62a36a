package report

import "github.com/jhoicas/medisupply-api/internal/application/dto"

// PDFGenerator genera el PDF del reporte de pedidos.
type PDFGenerator interface {
	OrdersReport(report *dto.OrdersReportResponse, q dto.OrdersReportQuery) ([]byte, error)
}
