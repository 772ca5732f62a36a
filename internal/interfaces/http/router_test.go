package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/medisupply-api/internal/application/apptest"
	"github.com/jhoicas/medisupply-api/internal/application/auth"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/geo"
	"github.com/jhoicas/medisupply-api/internal/application/logistics"
	"github.com/jhoicas/medisupply-api/internal/application/order"
	"github.com/jhoicas/medisupply-api/internal/application/report"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
	"github.com/jhoicas/medisupply-api/internal/application/visit"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	apphttp "github.com/jhoicas/medisupply-api/internal/interfaces/http"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

// api aplicación completa sobre repositorios en memoria.
type api struct {
	app     *fiber.App
	store   *apptest.Store
	storage *apptest.Storage
	admin   *entity.User
	seller  *entity.User
	client  *entity.User
	center  *entity.DistributionCenter
	product *entity.Product
}

func newAPI(t *testing.T) *api {
	t.Helper()
	s := apptest.NewStore()
	a := &api{store: s, storage: apptest.NewStorage()}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	home := s.AddGeolocation(&entity.Geolocation{Latitude: 4.6, Longitude: -74.1})
	a.admin = s.AddUser(&entity.User{ID: adminID, FullName: "Admin", Email: "admin@medisupply.com", PasswordHash: string(hash), DOI: "1", Role: entity.RoleAdmin})
	a.seller = s.AddUser(&entity.User{ID: commercialID, FullName: "Vendedor", Email: "seller@medisupply.com", DOI: "2", Role: entity.RoleCommercial})
	a.client = s.AddUser(&entity.User{ID: institutionalID, FullName: "Clínica", Email: "client@medisupply.com", DOI: "3", Role: entity.RoleInstitutional, SellerID: &a.seller.ID, GeolocationID: &home.ID})
	a.center = s.AddCenter(&entity.DistributionCenter{Name: "CD Bogotá", City: "Bogotá", Country: "Colombia"})
	a.product = s.AddProduct(&entity.Product{Name: "Paracetamol", Stock: 10, PricePerUnit: decimal.NewFromInt(1500), DueDate: time.Now().AddDate(1, 0, 0)})

	tx := apptest.TxRunner{S: s}
	geoSvc := geo.NewService(&apptest.Geocoder{})
	log := logger.Nop()
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(auth.Deps{
			Users:        s.UserRepo(),
			OTPs:         s.OTPRepo(),
			Zones:        s.ZoneRepo(),
			Geolocations: s.GeolocationRepo(),
			Geo:          geoSvc,
			Mailer:       &apptest.Mailer{},
			Templates:    apptest.Templates{},
		}, auth.Config{JWT: auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, OTPExpirationMinutes: 1}, log),
		ZoneUC:               usecase.NewZoneUseCase(s.ZoneRepo(), s.UserRepo(), s.SellingPlanRepo()),
		SellerUC:             usecase.NewSellerUseCase(s.UserRepo(), s.ZoneRepo(), &apptest.Mailer{}, apptest.Templates{}, "", log),
		ProviderUC:           usecase.NewProviderUseCase(s.ProviderRepo(), log),
		ProductUC:            usecase.NewProductUseCase(s.ProductRepo(), s.ProviderRepo(), s.SellingPlanRepo(), s.OrderRepo(), s.UserRepo(), log),
		SellingPlanUC:        usecase.NewSellingPlanUseCase(s.SellingPlanRepo(), s.ProductRepo(), s.ZoneRepo(), s.UserRepo(), log),
		DistributionCenterUC: usecase.NewDistributionCenterUseCase(s.DistributionCenterRepo(), log),
		OrderUC: order.NewUseCase(tx, order.Repos{
			Orders:              s.OrderRepo(),
			Products:            s.ProductRepo(),
			Users:               s.UserRepo(),
			DistributionCenters: s.DistributionCenterRepo(),
			Routes:              s.RouteRepo(),
		}, log),
		RouteUC: logistics.NewRouteUseCase(tx, logistics.Repos{
			Routes:              s.RouteRepo(),
			Orders:              s.OrderRepo(),
			DistributionCenters: s.DistributionCenterRepo(),
			Users:               s.UserRepo(),
			Geolocations:        s.GeolocationRepo(),
		}, log),
		VisitUC: visit.NewUseCase(tx, visit.Repos{
			Visits:       s.VisitRepo(),
			Users:        s.UserRepo(),
			Geolocations: s.GeolocationRepo(),
		}, geoSvc, a.storage, 0, log),
		ReportUC: report.NewUseCase(report.Repos{
			Orders:    s.OrderRepo(),
			Products:  s.ProductRepo(),
			Users:     s.UserRepo(),
			Analytics: &apptest.Analytics{},
		}, apptest.PDF{}, log),
		JWTSecret: testJWTSecret,
	}

	a.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(a.app, deps)
	return a
}

func (a *api) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouter_LoginConOTPyPermisos(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "admin@medisupply.com", Password: "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	assert.Equal(t, 1, login.OTPExpirationMinutes)

	otp := a.store.OTPRepo().Latest(a.admin.ID)
	require.NotNil(t, otp)
	resp = a.do(t, http.MethodPost, "/api/v1/auth/verify-otp", "", dto.VerifyOTPRequest{Email: "admin@medisupply.com", OTPCode: otp.Code})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	verified := decode[dto.VerifyOTPResponse](t, resp)
	require.NotEmpty(t, verified.AccessToken)

	resp = a.do(t, http.MethodGet, "/api/v1/auth/permissions", "Bearer "+verified.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	perms := decode[dto.PermissionsResponse](t, resp)
	assert.Equal(t, a.admin.ID, perms.User.ID)
	paths := map[string]bool{}
	for _, ep := range perms.Endpoints {
		paths[ep.Path] = true
	}
	assert.True(t, paths["/auth/login"])
	assert.True(t, paths["/providers"])
	assert.False(t, paths["/visits"], "las visitas no son del admin")
}

func TestRouter_PermisosDelComercial(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodGet, "/api/v1/auth/permissions", tokenFor(t, commercialID, entity.RoleCommercial), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	perms := decode[dto.PermissionsResponse](t, resp)
	paths := map[string][]string{}
	for _, ep := range perms.Endpoints {
		paths[ep.Path] = append(paths[ep.Path], ep.Methods...)
	}
	assert.Contains(t, paths, "/visits/:id/report")
	assert.ElementsMatch(t, []string{http.MethodGet, http.MethodPost}, paths["/orders"])
	assert.NotContains(t, paths, "/providers")
}

func TestRouter_RegistroInvalidoRetorna422(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":     "no-es-email",
		"full_name": "Nuevo",
		"doi":       "99",
		"address":   "Calle 1",
		"phone":     "3001234567",
		"role":      "admin",
		"password":  "secreto1",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.ValidationErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	locs := map[string]string{}
	for _, d := range body.Detail {
		locs[strings.Join(d.Loc, ".")] = d.Type
	}
	assert.Equal(t, "email", locs["body.email"])
	assert.Equal(t, "oneof", locs["body.role"])
}

func TestRouter_LoginBodyMalformado(t *testing.T) {
	a := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.ValidationErrorResponse](t, resp)
	require.Len(t, body.Detail, 1)
	assert.Equal(t, "json_invalid", body.Detail[0].Type)
}

func TestRouter_RecommendedNoChocaConID(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodGet, "/api/v1/products/recommended", tokenFor(t, institutionalID, entity.RoleInstitutional), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductsResponse](t, resp)
	require.Equal(t, 1, out.TotalCount)
	assert.Equal(t, a.product.ID, out.Products[0].ID)

	resp = a.do(t, http.MethodGet, "/api/v1/products/"+a.product.ID, tokenFor(t, institutionalID, entity.RoleInstitutional), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_PedidoDeInstitucionalYCambioDeEstado(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodPost, "/api/v1/orders", tokenFor(t, institutionalID, entity.RoleInstitutional), map[string]any{
		"delivery_date":          "2030-01-15",
		"distribution_center_id": a.center.ID,
		"products":               []map[string]any{{"product_id": a.product.ID, "quantity": 4}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[map[string]any](t, resp)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "received", created["status"])
	assert.Equal(t, 6, a.store.Product(a.product.ID).Stock)

	resp = a.do(t, http.MethodPatch, "/api/v1/orders/"+id+"/status", tokenFor(t, adminID, entity.RoleAdmin), dto.OrderStatusUpdateRequest{Status: entity.OrderStatusDelivered})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = a.do(t, http.MethodPatch, "/api/v1/orders/"+id+"/status", tokenFor(t, adminID, entity.RoleAdmin), dto.OrderStatusUpdateRequest{Status: entity.OrderStatusPreparing})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/v1/orders?order_status=preparing", tokenFor(t, institutionalID, entity.RoleInstitutional), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[map[string]any](t, resp)
	assert.EqualValues(t, 1, list["total_count"])
}

func TestRouter_PedidoSinStockRetorna409(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodPost, "/api/v1/orders", tokenFor(t, institutionalID, entity.RoleInstitutional), map[string]any{
		"delivery_date":          "2030-01-15",
		"distribution_center_id": a.center.ID,
		"products":               []map[string]any{{"product_id": a.product.ID, "quantity": 11}},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "CONFLICT", body.Code)
	assert.Equal(t, "Insufficient stock for product 'Paracetamol'. Available: 10, requested: 11", body.Message)
}

func TestRouter_ReporteDeVisitaMultipart(t *testing.T) {
	a := newAPI(t)
	v := a.store.AddVisit(&entity.Visit{
		ExpectedDate:          time.Now().UTC().AddDate(0, 0, -1),
		Status:                entity.VisitStatusPending,
		ExpectedGeolocationID: *a.client.GeolocationID,
		ClientID:              a.client.ID,
		SellerID:              a.seller.ID,
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("latitude", "4.65"))
	require.NoError(t, w.WriteField("longitude", "-74.05"))
	require.NoError(t, w.WriteField("observations", "Todo en orden"))
	part, err := w.CreateFormFile("visual_evidence", "evidencia.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/visits/"+v.ID+"/report", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, tokenFor(t, commercialID, entity.RoleCommercial))
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.VisitResponse](t, resp)
	assert.Equal(t, entity.VisitStatusCompleted, out.Status)
	require.NotNil(t, out.VisualEvidenceURL)
	path := visit.EvidencePath(a.seller.ID, v.ID, "png")
	assert.Equal(t, []byte("png-bytes"), a.storage.Objects[path])
}

type trackedFile struct {
	multipart.File
	closed *int
}

func (f trackedFile) Close() error {
	*f.closed++
	return f.File.Close()
}

func TestRouter_ReporteDeVisitaCierraEvidencia(t *testing.T) {
	closed := 0
	original := *apphttp.OpenFormFile
	*apphttp.OpenFormFile = func(fh *multipart.FileHeader) (multipart.File, error) {
		f, err := original(fh)
		if err != nil {
			return nil, err
		}
		return trackedFile{File: f, closed: &closed}, nil
	}
	t.Cleanup(func() { *apphttp.OpenFormFile = original })

	a := newAPI(t)
	v := a.store.AddVisit(&entity.Visit{
		ExpectedDate:          time.Now().UTC().AddDate(0, 0, -1),
		Status:                entity.VisitStatusPending,
		ExpectedGeolocationID: *a.client.GeolocationID,
		ClientID:              a.client.ID,
		SellerID:              a.seller.ID,
	})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("latitude", "4.65"))
	require.NoError(t, w.WriteField("longitude", "-74.05"))
	part, err := w.CreateFormFile("visual_evidence", "evidencia.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("mp4-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/visits/"+v.ID+"/report", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, tokenFor(t, commercialID, entity.RoleCommercial))
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, closed)

	// Un segundo reporte falla en el caso de uso y el archivo también se cierra.
	buf.Reset()
	w = multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("latitude", "4.65"))
	require.NoError(t, w.WriteField("longitude", "-74.05"))
	part, err = w.CreateFormFile("visual_evidence", "evidencia.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("mp4-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/visits/"+v.ID+"/report", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, tokenFor(t, commercialID, entity.RoleCommercial))
	resp, err = a.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 2, closed)
}

func TestRouter_ReporteDeVisitaSinCoordenadas(t *testing.T) {
	a := newAPI(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("latitude", "norte"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/visits/cualquiera/report", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, tokenFor(t, commercialID, entity.RoleCommercial))
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[dto.ValidationErrorResponse](t, resp)
	types := map[string]string{}
	for _, d := range body.Detail {
		types[strings.Join(d.Loc, ".")] = d.Type
	}
	assert.Equal(t, "float_parsing", types["body.latitude"])
	assert.Equal(t, "missing", types["body.longitude"])
}

func TestRouter_ReporteDePedidosCSV(t *testing.T) {
	a := newAPI(t)
	a.store.AddOrder(&entity.Order{
		Status: entity.OrderStatusReceived, SellerID: &a.seller.ID, ClientID: a.client.ID,
		DistributionCenterID: a.center.ID, DeliveryDate: time.Now(), CreatedAt: time.Now(),
		Products: []entity.OrderProduct{{ProductID: a.product.ID, Quantity: 2}},
	})

	resp := a.do(t, http.MethodGet, "/api/v1/reports/orders?format=csv", tokenFor(t, adminID, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "3000.00")

	resp = a.do(t, http.MethodGet, "/api/v1/reports/orders?format=xlsx", tokenFor(t, adminID, entity.RoleAdmin), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", apphttp.Health("medisupply-api", pinger{}))
	app.Get("/down", apphttp.Health("medisupply-api", pinger{err: errors.New("sin conexión")}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "medisupply-api", body["service"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/down", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
