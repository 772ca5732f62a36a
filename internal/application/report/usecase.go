package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
	"github.com/jhoicas/medisupply-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// DefaultSummaryDays periodo del resumen de ventas cuando no se indican fechas.
const DefaultSummaryDays = 30

// Repos lecturas del caso de uso de reportes.
type Repos struct {
	Orders    repository.OrderRepository
	Products  repository.ProductRepository
	Users     repository.UserRepository
	Analytics repository.AnalyticsRepository
}

// Export archivo listo para descargar.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

// UseCase reportes de pedidos y resumen de ventas.
type UseCase struct {
	repos Repos
	pdf   PDFGenerator
	log   *logger.Logger
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos Repos, pdf PDFGenerator, log *logger.Logger) *UseCase {
	return &UseCase{repos: repos, pdf: pdf, log: log.Component("reports"), now: time.Now}
}

// OrdersReport pedidos con vendedor, filtrados por vendedor, estado y rango de creación.
func (uc *UseCase) OrdersReport(ctx context.Context, q dto.OrdersReportQuery) (*dto.OrdersReportResponse, error) {
	filter := repository.OrderReportFilter{SellerID: q.SellerID, Status: q.OrderStatus}
	if q.StartDate != "" {
		d, err := dto.ParseDate(q.StartDate)
		if err != nil {
			return nil, domain.BadRequest("Invalid start_date")
		}
		filter.StartDate = &d.Time
	}
	if q.EndDate != "" {
		d, err := dto.ParseDate(q.EndDate)
		if err != nil {
			return nil, domain.BadRequest("Invalid end_date")
		}
		// Fin del día inclusive.
		end := d.Time.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, domain.BadRequest("end_date cannot be before start_date")
	}

	orders, err := uc.repos.Orders.Report(ctx, filter)
	if err != nil {
		return nil, err
	}
	sellers := map[string]*entity.User{}
	products := map[string]*entity.Product{}
	out := &dto.OrdersReportResponse{TotalCount: len(orders), Orders: make([]dto.OrderReportItem, 0, len(orders))}
	for _, o := range orders {
		item := dto.OrderReportItem{OrderBase: dto.NewOrderBase(o), Products: make([]dto.OrderProductDetail, 0, len(o.Products)), Total: decimal.Zero}
		if o.SellerID != nil {
			seller, err := uc.user(ctx, *o.SellerID, sellers)
			if err != nil {
				return nil, err
			}
			if seller != nil {
				item.Seller = dto.NewUserResponse(seller)
			}
		}
		for _, line := range o.Products {
			p, err := uc.product(ctx, line.ProductID, products)
			if err != nil {
				return nil, err
			}
			if p == nil {
				continue
			}
			item.Products = append(item.Products, dto.NewOrderProductDetail(p, line.Quantity))
			item.Total = item.Total.Add(p.PricePerUnit.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		out.Orders = append(out.Orders, item)
	}
	return out, nil
}

// ExportOrdersReport genera el reporte en CSV o PDF.
func (uc *UseCase) ExportOrdersReport(ctx context.Context, q dto.OrdersReportQuery) (*Export, error) {
	rep, err := uc.OrdersReport(ctx, q)
	if err != nil {
		return nil, err
	}
	stamp := uc.now().Format("20060102_150405")
	switch q.Format {
	case dto.ReportFormatCSV:
		content, err := ordersCSV(rep)
		if err != nil {
			return nil, fmt.Errorf("reports: csv: %w", err)
		}
		return &Export{Filename: "orders_report_" + stamp + ".csv", ContentType: "text/csv", Content: content}, nil
	case dto.ReportFormatPDF:
		content, err := uc.pdf.OrdersReport(rep, q)
		if err != nil {
			return nil, fmt.Errorf("reports: pdf: %w", err)
		}
		return &Export{Filename: "orders_report_" + stamp + ".pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, domain.BadRequest("Unsupported report format: %s", q.Format)
	}
}

// SalesSummary ventas por vendedor y top de productos; por defecto los últimos DefaultSummaryDays días.
func (uc *UseCase) SalesSummary(ctx context.Context, start, end *time.Time, limit int) (*dto.SalesSummaryResponse, error) {
	endDate := uc.now()
	if end != nil {
		endDate = end.Add(24*time.Hour - time.Nanosecond)
	}
	startDate := endDate.AddDate(0, 0, -DefaultSummaryDays)
	if start != nil {
		startDate = *start
	}
	if endDate.Before(startDate) {
		return nil, domain.BadRequest("end_date cannot be before start_date")
	}
	if limit <= 0 {
		limit = 5
	}

	sellers, err := uc.repos.Analytics.GetSalesBySeller(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	top, err := uc.repos.Analytics.GetTopProducts(ctx, startDate, endDate, limit)
	if err != nil {
		return nil, err
	}

	out := &dto.SalesSummaryResponse{
		StartDate:   dto.NewDate(startDate),
		EndDate:     dto.NewDate(endDate),
		Revenue:     decimal.Zero,
		Sellers:     make([]dto.SellerSalesDTO, 0, len(sellers)),
		TopProducts: make([]dto.TopProductDTO, 0, len(top)),
	}
	for _, s := range sellers {
		out.TotalOrders += s.OrdersCount
		out.TotalUnits += s.UnitsSold
		out.Revenue = out.Revenue.Add(s.Revenue)
		out.Sellers = append(out.Sellers, dto.SellerSalesDTO{
			SellerID:    s.SellerID,
			SellerName:  s.SellerName,
			OrdersCount: s.OrdersCount,
			UnitsSold:   s.UnitsSold,
			Revenue:     s.Revenue,
		})
	}
	for _, p := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			UnitsSold:   p.UnitsSold,
			Revenue:     p.Revenue,
		})
	}
	return out, nil
}

func (uc *UseCase) user(ctx context.Context, id string, cache map[string]*entity.User) (*entity.User, error) {
	if u, ok := cache[id]; ok {
		return u, nil
	}
	u, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = u
	return u, nil
}

func (uc *UseCase) product(ctx context.Context, id string, cache map[string]*entity.Product) (*entity.Product, error) {
	if p, ok := cache[id]; ok {
		return p, nil
	}
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = p
	return p, nil
}
