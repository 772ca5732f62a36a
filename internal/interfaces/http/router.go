package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medisupply-api/internal/application/auth"
	"github.com/jhoicas/medisupply-api/internal/application/logistics"
	"github.com/jhoicas/medisupply-api/internal/application/order"
	"github.com/jhoicas/medisupply-api/internal/application/report"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
	"github.com/jhoicas/medisupply-api/internal/application/visit"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// APIPrefix prefijo de todas las rutas de negocio.
const APIPrefix = "/api/v1"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC               *auth.AuthUseCase
	ZoneUC               *usecase.ZoneUseCase
	SellerUC             *usecase.SellerUseCase
	ProviderUC           *usecase.ProviderUseCase
	ProductUC            *usecase.ProductUseCase
	SellingPlanUC        *usecase.SellingPlanUseCase
	DistributionCenterUC *usecase.DistributionCenterUseCase
	OrderUC              *order.UseCase
	RouteUC              *logistics.RouteUseCase
	VisitUC              *visit.UseCase
	ReportUC             *report.UseCase
	JWTSecret            string
}

var (
	public            []string
	adminOnly         = []string{entity.RoleAdmin}
	commercialOnly    = []string{entity.RoleCommercial}
	institutionalOnly = []string{entity.RoleInstitutional}
	allRoles          = []string{entity.RoleAdmin, entity.RoleCommercial, entity.RoleInstitutional}
	adminCommercial   = []string{entity.RoleAdmin, entity.RoleCommercial}
	customerRoles     = []string{entity.RoleCommercial, entity.RoleInstitutional}
)

// Router registra las rutas de la API y devuelve el registro de permisos.
func Router(app *fiber.App, deps RouterDeps) *Permissions {
	perms := NewPermissions()
	api := app.Group(APIPrefix)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, perms)
	authGroup := routeGroup{router: api.Group("/auth"), prefix: "/auth", perms: perms}
	authGroup.post("/register", public, authHandler.Register)
	authGroup.post("/login", public, authHandler.Login)
	authGroup.post("/verify-otp", public, authHandler.VerifyOTP)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	r := routeGroup{router: protected, perms: perms}

	r.get("/auth/permissions", allRoles, authHandler.Permissions)

	zones := NewZoneHandler(deps.ZoneUC)
	r.get("/zones", adminOnly, zones.List)
	r.get("/zones/:id", adminOnly, zones.GetByID)

	sellers := NewSellerHandler(deps.SellerUC)
	r.post("/sellers", adminOnly, sellers.Create)
	r.get("/sellers", adminOnly, sellers.List)
	r.get("/sellers/clients", commercialOnly, sellers.Clients)
	r.get("/sellers/:id", adminOnly, sellers.GetByID)
	r.get("/clients", commercialOnly, sellers.Clients)

	providers := NewProviderHandler(deps.ProviderUC)
	r.post("/providers", adminOnly, providers.Create)
	r.get("/providers", adminOnly, providers.List)
	r.get("/providers/:id", adminOnly, providers.GetByID)

	products := NewProductHandler(deps.ProductUC)
	r.post("/products", adminOnly, products.Create)
	r.post("/products/bulk", adminOnly, products.CreateBulk)
	r.get("/products", allRoles, products.List)
	r.get("/products/recommended", customerRoles, products.Recommended)
	r.get("/products/:id", adminOnly, products.GetByID)

	plans := NewSellingPlanHandler(deps.SellingPlanUC)
	r.post("/selling-plans", adminOnly, plans.Create)
	r.get("/selling-plans", adminOnly, plans.List)
	r.get("/selling-plans/:id", adminOnly, plans.GetByID)

	centers := NewDistributionCenterHandler(deps.DistributionCenterUC)
	r.post("/distribution-centers", adminOnly, centers.Create)
	r.get("/distribution-centers", adminCommercial, centers.List)
	r.get("/distribution-centers/:id", adminCommercial, centers.GetByID)

	orders := NewOrderHandler(deps.OrderUC)
	r.post("/orders", customerRoles, orders.Create)
	r.get("/orders", allRoles, orders.List)
	r.get("/orders/:id", allRoles, orders.GetByID)
	r.patch("/orders/:id/status", adminOnly, orders.UpdateStatus)

	routes := NewRouteHandler(deps.RouteUC)
	r.post("/routes", adminOnly, routes.Create)
	r.get("/routes", adminOnly, routes.List)
	r.get("/routes/:id", adminOnly, routes.GetByID)
	r.get("/routes/:id/map", adminOnly, routes.Map)

	visits := NewVisitHandler(deps.VisitUC)
	r.post("/visits", institutionalOnly, visits.Create)
	r.get("/visits", customerRoles, visits.List)
	r.get("/visits/:id", customerRoles, visits.GetByID)
	r.patch("/visits/:id/report", commercialOnly, visits.Report)

	reports := NewReportHandler(deps.ReportUC)
	r.get("/reports/orders", adminOnly, reports.Orders)
	r.get("/reports/sales-summary", adminOnly, reports.SalesSummary)

	return perms
}
