package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/medisupply-api/internal/application/apptest"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "se esperaba %v, llegó %v", kind, err)
}

func productRequest(name, providerID string) dto.ProductCreateRequest {
	return dto.ProductCreateRequest{
		Name:         name,
		Details:      "Caja x 20 tabletas",
		Store:        "Bodega central",
		Batch:        "LOTE-001",
		DueDate:      dto.NewDate(time.Now().AddDate(1, 0, 0)),
		Stock:        100,
		PricePerUnit: decimal.RequireFromString("2500.75"),
		ProviderID:   providerID,
	}
}

func newProductUC(s *apptest.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(s.ProductRepo(), s.ProviderRepo(), s.SellingPlanRepo(), s.OrderRepo(), s.UserRepo(), logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate(t *testing.T) {
	s := apptest.NewStore()
	provider := s.AddProvider(&entity.Provider{Name: "Genfar", Email: "g@genfar.com", RIT: "1"})
	uc := newProductUC(s)

	out, err := uc.Create(context.Background(), productRequest("Acetaminofén", provider.ID))
	require.NoError(t, err)
	assert.Equal(t, "Acetaminofén", out.Name)
	assert.True(t, out.PricePerUnit.Equal(decimal.RequireFromString("2500.75")))
	assert.Equal(t, 100, s.Product(out.ID).Stock)

	_, err = uc.Create(context.Background(), productRequest("Huérfano", "no-existe"))
	requireKind(t, err, domain.ErrUnprocessable)
	assert.Equal(t, "Provider with the given ID does not exist", err.Error())
}

func TestProductCreateBulk_AcumulaErrores(t *testing.T) {
	s := apptest.NewStore()
	provider := s.AddProvider(&entity.Provider{Name: "Genfar", Email: "g@genfar.com", RIT: "1"})
	uc := newProductUC(s)

	out := uc.CreateBulk(context.Background(), dto.ProductBulkCreateRequest{Products: []dto.ProductCreateRequest{
		productRequest("Amoxicilina", provider.ID),
		productRequest("Sin proveedor", "no-existe"),
		productRequest("Loratadina", provider.ID),
	}})

	assert.False(t, out.Success)
	assert.Equal(t, 3, out.RowsTotal)
	assert.Equal(t, 2, out.RowsInserted)
	assert.Equal(t, 1, out.Errors)
	require.Len(t, out.ErrorsDetails, 1)
	assert.Equal(t, "Error for product 'Sin proveedor': Provider with the given ID does not exist", out.ErrorsDetails[0])
	assert.Len(t, s.Products, 2)
}

func TestProductList_SoloAdminVeSinStock(t *testing.T) {
	s := apptest.NewStore()
	s.AddProduct(&entity.Product{Name: "B con stock", Stock: 3})
	s.AddProduct(&entity.Product{Name: "A agotado", Stock: 0})
	uc := newProductUC(s)

	admin, err := uc.List(context.Background(), entity.RoleAdmin, 0)
	require.NoError(t, err)
	require.Equal(t, 2, admin.TotalCount)
	assert.Equal(t, "A agotado", admin.Products[0].Name)

	client, err := uc.List(context.Background(), entity.RoleInstitutional, 0)
	require.NoError(t, err)
	require.Equal(t, 1, client.TotalCount)
	assert.Equal(t, "B con stock", client.Products[0].Name)

	limited, err := uc.List(context.Background(), entity.RoleAdmin, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, limited.TotalCount)
}

func TestProductGetByID_ConRelaciones(t *testing.T) {
	s := apptest.NewStore()
	provider := s.AddProvider(&entity.Provider{Name: "Genfar"})
	p := s.AddProduct(&entity.Product{Name: "Paracetamol", Stock: 5, ProviderID: provider.ID})
	s.AddOrder(&entity.Order{ClientID: "c1", Products: []entity.OrderProduct{{ProductID: p.ID, Quantity: 2}}})
	uc := newProductUC(s)

	out, err := uc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, out.Provider)
	assert.Equal(t, "Genfar", out.Provider.Name)
	require.Len(t, out.OrderProducts, 1)
	assert.Equal(t, 2, out.OrderProducts[0].Quantity)
	assert.NotNil(t, out.SellingPlans)

	_, err = uc.GetByID(context.Background(), "no-existe")
	requireKind(t, err, domain.ErrNotFound)
}

func TestProductRecommended(t *testing.T) {
	s := apptest.NewStore()
	seller := s.AddUser(&entity.User{FullName: "Vendedor", Role: entity.RoleCommercial})
	client := s.AddUser(&entity.User{FullName: "Clínica", Role: entity.RoleInstitutional, SellerID: &seller.ID})
	other := s.AddUser(&entity.User{FullName: "Hospital", Role: entity.RoleInstitutional})
	a := s.AddProduct(&entity.Product{Name: "A", Stock: 10})
	b := s.AddProduct(&entity.Product{Name: "B", Stock: 10})
	c := s.AddProduct(&entity.Product{Name: "C", Stock: 10})
	uc := newProductUC(s)
	ctx := context.Background()

	// Sin historial: listado simple por nombre.
	out, err := uc.Recommended(ctx, client, "", 2)
	require.NoError(t, err)
	require.Equal(t, 2, out.TotalCount)
	assert.Equal(t, "A", out.Products[0].Name)

	// Sólo otro cliente compró: ranking global.
	s.AddOrder(&entity.Order{ClientID: other.ID, CreatedAt: time.Now(), Products: []entity.OrderProduct{{ProductID: c.ID, Quantity: 9}}})
	out, err = uc.Recommended(ctx, client, "", 0)
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalCount)
	assert.Equal(t, c.ID, out.Products[0].ID)

	// Historial propio: gana sobre el global.
	s.AddOrder(&entity.Order{ClientID: client.ID, CreatedAt: time.Now(), Products: []entity.OrderProduct{{ProductID: b.ID, Quantity: 1}, {ProductID: a.ID, Quantity: 4}}})
	out, err = uc.Recommended(ctx, seller, client.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 2, out.TotalCount)
	assert.Equal(t, a.ID, out.Products[0].ID)
	assert.Equal(t, b.ID, out.Products[1].ID)
}

func TestProductRecommended_ClienteFueraDeAlcance(t *testing.T) {
	s := apptest.NewStore()
	seller := s.AddUser(&entity.User{FullName: "Vendedor", Role: entity.RoleCommercial})
	foreign := s.AddUser(&entity.User{FullName: "Ajeno", Role: entity.RoleInstitutional})
	uc := newProductUC(s)
	ctx := context.Background()

	_, err := uc.Recommended(ctx, seller, foreign.ID, 0)
	requireKind(t, err, domain.ErrNotFound)
	_, err = uc.Recommended(ctx, seller, "", 0)
	requireKind(t, err, domain.ErrNotFound)
	_, err = uc.Recommended(ctx, seller, "no-existe", 0)
	requireKind(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vendedores
// ──────────────────────────────────────────────────────────────────────────────

func TestSellerCreate_EnviaContrasenaTemporal(t *testing.T) {
	s := apptest.NewStore()
	zone := s.AddZone(&entity.Zone{Description: "Bogotá Norte"})
	mailer := &apptest.Mailer{}
	uc := usecase.NewSellerUseCase(s.UserRepo(), s.ZoneRepo(), mailer, apptest.Templates{}, "https://app.medisupply.test/login", logger.Nop())

	out, err := uc.Create(context.Background(), dto.SellerCreateRequest{
		FullName: "Laura Gómez",
		DOI:      "52000111",
		Email:    "laura@medisupply.com",
		Phone:    "+573001112233",
		ZoneID:   zone.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, out.Zone)
	assert.Equal(t, "Bogotá Norte", out.Zone.Description)

	mail := mailer.Last()
	require.NotNil(t, mail)
	assert.Equal(t, "laura@medisupply.com", mail.To)
	require.True(t, strings.HasPrefix(mail.HTML, ports.TemplateTemporaryPassword+"|"))
	assert.Contains(t, mail.HTML, "LoginURL=https://app.medisupply.test/login")

	var password string
	for _, kv := range strings.Split(strings.TrimPrefix(mail.HTML, ports.TemplateTemporaryPassword+"|"), ";") {
		if v, ok := strings.CutPrefix(kv, "TemporaryPassword="); ok {
			password = v
		}
	}
	require.Len(t, password, 8)

	saved, err := s.UserRepo().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCommercial, saved.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte(password)))
}

func TestSellerCreate_Validaciones(t *testing.T) {
	s := apptest.NewStore()
	zone := s.AddZone(&entity.Zone{Description: "Sur"})
	s.AddUser(&entity.User{FullName: "Existente", Email: "dup@medisupply.com", DOI: "1", Role: entity.RoleCommercial})
	mailer := &apptest.Mailer{}
	uc := usecase.NewSellerUseCase(s.UserRepo(), s.ZoneRepo(), mailer, apptest.Templates{}, "", logger.Nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.SellerCreateRequest{FullName: "X", DOI: "2", Email: "dup@medisupply.com", ZoneID: zone.ID})
	requireKind(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, dto.SellerCreateRequest{FullName: "X", DOI: "3", Email: "nuevo@medisupply.com", ZoneID: "no-existe"})
	requireKind(t, err, domain.ErrUnprocessable)
	assert.Empty(t, mailer.Sent)
}

func TestSellerListGetAndClients(t *testing.T) {
	s := apptest.NewStore()
	zone := s.AddZone(&entity.Zone{Description: "Centro"})
	seller := s.AddUser(&entity.User{FullName: "Vendedor", Role: entity.RoleCommercial, ZoneID: &zone.ID})
	client := s.AddUser(&entity.User{FullName: "Clínica", Role: entity.RoleInstitutional, SellerID: &seller.ID})
	s.AddUser(&entity.User{FullName: "Sin vendedor", Role: entity.RoleInstitutional})
	uc := usecase.NewSellerUseCase(s.UserRepo(), s.ZoneRepo(), &apptest.Mailer{}, apptest.Templates{}, "", logger.Nop())
	ctx := context.Background()

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.TotalCount)
	require.NotNil(t, list.Sellers[0].Zone)
	assert.Equal(t, zone.ID, list.Sellers[0].Zone.ID)

	got, err := uc.GetByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vendedor", got.FullName)

	_, err = uc.GetByID(ctx, client.ID)
	requireKind(t, err, domain.ErrNotFound)

	clients, err := uc.Clients(ctx, seller.ID)
	require.NoError(t, err)
	require.Equal(t, 1, clients.TotalCount)
	assert.Equal(t, client.ID, clients.Clients[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Planes de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestSellingPlanCreate(t *testing.T) {
	s := apptest.NewStore()
	zone := s.AddZone(&entity.Zone{Description: "Norte"})
	seller := s.AddUser(&entity.User{FullName: "Vendedor", Role: entity.RoleCommercial})
	client := s.AddUser(&entity.User{FullName: "Clínica", Role: entity.RoleInstitutional})
	product := s.AddProduct(&entity.Product{Name: "Paracetamol", Stock: 1})
	uc := usecase.NewSellingPlanUseCase(s.SellingPlanRepo(), s.ProductRepo(), s.ZoneRepo(), s.UserRepo(), logger.Nop())
	ctx := context.Background()
	in := dto.SellingPlanCreateRequest{Period: "2025Q1", Goal: 500, ProductID: product.ID, ZoneID: zone.ID, SellerID: seller.ID}

	out, err := uc.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, out.Product)
	require.NotNil(t, out.Zone)
	require.NotNil(t, out.Seller)
	assert.Equal(t, 500, out.Goal)

	_, err = uc.Create(ctx, in)
	requireKind(t, err, domain.ErrConflict)

	bad := in
	bad.Period = "2025Q2"
	bad.SellerID = client.ID
	_, err = uc.Create(ctx, bad)
	requireKind(t, err, domain.ErrUnprocessable)
	assert.Equal(t, "Seller with the given ID does not exist", err.Error())

	bad = in
	bad.Period = "2025Q3"
	bad.ProductID = "no-existe"
	_, err = uc.Create(ctx, bad)
	requireKind(t, err, domain.ErrUnprocessable)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025Q1", got.Period)
	_, err = uc.GetByID(ctx, "no-existe")
	requireKind(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores, zonas y centros de distribución
// ──────────────────────────────────────────────────────────────────────────────

func TestProviderCreate_Duplicado(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewProviderUseCase(s.ProviderRepo(), logger.Nop())
	ctx := context.Background()
	in := dto.ProviderCreateRequest{Name: "Genfar", RIT: "800-1", City: "Cali", Country: "Colombia", Email: "ventas@genfar.com", Phone: "+5724440000"}

	out, err := uc.Create(ctx, in)
	require.NoError(t, err)

	_, err = uc.Create(ctx, in)
	requireKind(t, err, domain.ErrConflict)

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "800-1", got.RIT)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)
}

func TestZoneGetByID_ConVendedoresYPlanes(t *testing.T) {
	s := apptest.NewStore()
	zone := s.AddZone(&entity.Zone{Description: "Occidente"})
	seller := s.AddUser(&entity.User{FullName: "Vendedor", Role: entity.RoleCommercial, ZoneID: &zone.ID})
	product := s.AddProduct(&entity.Product{Name: "Paracetamol", Stock: 1})
	plans := usecase.NewSellingPlanUseCase(s.SellingPlanRepo(), s.ProductRepo(), s.ZoneRepo(), s.UserRepo(), logger.Nop())
	_, err := plans.Create(context.Background(), dto.SellingPlanCreateRequest{Period: "2025", Goal: 10, ProductID: product.ID, ZoneID: zone.ID, SellerID: seller.ID})
	require.NoError(t, err)
	uc := usecase.NewZoneUseCase(s.ZoneRepo(), s.UserRepo(), s.SellingPlanRepo())

	out, err := uc.GetByID(context.Background(), zone.ID)
	require.NoError(t, err)
	require.Len(t, out.Sellers, 1)
	assert.Equal(t, seller.ID, out.Sellers[0].ID)
	assert.Len(t, out.SellingPlans, 1)

	_, err = uc.GetByID(context.Background(), "no-existe")
	requireKind(t, err, domain.ErrNotFound)
}

func TestDistributionCenterCRUD(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewDistributionCenterUseCase(s.DistributionCenterRepo(), logger.Nop())
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.DistributionCenterCreateRequest{Name: "CD Bogotá", Address: "Av. 68 # 13-50", City: "Bogotá", Country: "Colombia"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "CD Bogotá", got.Name)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.TotalCount)

	_, err = uc.GetByID(ctx, "no-existe")
	requireKind(t, err, domain.ErrNotFound)
}
