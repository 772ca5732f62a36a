package visit_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medisupply-api/internal/application/apptest"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/geo"
	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/internal/application/visit"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

const (
	rooftopAddress = "Carrera 7 # 71-21, Bogotá"
	vagueAddress   = "Bogotá"
)

type fixture struct {
	store   *apptest.Store
	storage *apptest.Storage
	uc      *visit.UseCase
	seller  *entity.User
	client  *entity.User
	home    *entity.Geolocation
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := apptest.NewStore()
	f := &fixture{store: s, storage: apptest.NewStorage()}
	f.home = s.AddGeolocation(&entity.Geolocation{Latitude: 4.6, Longitude: -74.1})
	f.seller = s.AddUser(&entity.User{FullName: "Vendedor", Role: entity.RoleCommercial})
	f.client = s.AddUser(&entity.User{FullName: "Clínica", Role: entity.RoleInstitutional, SellerID: &f.seller.ID, GeolocationID: &f.home.ID})

	geocoder := &apptest.Geocoder{Results: map[string]*ports.GeocodeResult{
		rooftopAddress: {FormattedAddress: "Cra. 7 #71-21, Bogotá, Colombia", Latitude: 4.657, Longitude: -74.055, LocationType: geo.PrecisionRooftop},
		vagueAddress:   {FormattedAddress: "Bogotá, Colombia", Latitude: 4.7, Longitude: -74.07, LocationType: "APPROXIMATE"},
	}}
	f.uc = visit.NewUseCase(apptest.TxRunner{S: s}, visit.Repos{
		Visits:       s.VisitRepo(),
		Users:        s.UserRepo(),
		Geolocations: s.GeolocationRepo(),
	}, geo.NewService(geocoder), f.storage, visit.DefaultSignedURLExpiry, logger.Nop())
	return f
}

func tomorrow() dto.Date {
	return dto.NewDate(time.Now().AddDate(0, 0, 1))
}

func (f *fixture) pendingVisit(expected time.Time) *entity.Visit {
	return f.store.AddVisit(&entity.Visit{
		ExpectedDate:          expected,
		Status:                entity.VisitStatusPending,
		ExpectedGeolocationID: f.home.ID,
		ClientID:              f.client.ID,
		SellerID:              f.seller.ID,
	})
}

func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "se esperaba %v, llegó %v", kind, err)
}

func TestCreate_SinDireccionUsaGeolocalizacionDelCliente(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), f.client, dto.VisitCreateRequest{ExpectedDate: tomorrow()})
	require.NoError(t, err)

	assert.Equal(t, entity.VisitStatusPending, out.Status)
	require.NotNil(t, out.ExpectedGeolocation)
	assert.Equal(t, f.home.ID, out.ExpectedGeolocation.ID)
	require.NotNil(t, out.Seller)
	assert.Equal(t, f.seller.ID, out.Seller.ID)
	assert.Nil(t, out.Client, "el institucional no se ve a sí mismo como cliente")
}

func TestCreate_ConDireccionGeocodifica(t *testing.T) {
	f := newFixture(t)
	address := rooftopAddress

	out, err := f.uc.Create(context.Background(), f.client, dto.VisitCreateRequest{ExpectedDate: tomorrow(), Address: &address})
	require.NoError(t, err)
	require.NotNil(t, out.ExpectedGeolocation.Address)
	assert.Equal(t, "Cra. 7 #71-21, Bogotá, Colombia", *out.ExpectedGeolocation.Address)
	assert.InDelta(t, 4.657, out.ExpectedGeolocation.Latitude, 1e-9)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.client, dto.VisitCreateRequest{ExpectedDate: dto.NewDate(time.Now().AddDate(0, 0, -1))})
	requireKind(t, err, domain.ErrBadRequest)
	assert.Equal(t, "Expected date cannot be in the past", err.Error())

	vague := vagueAddress
	_, err = f.uc.Create(ctx, f.client, dto.VisitCreateRequest{ExpectedDate: tomorrow(), Address: &vague})
	requireKind(t, err, domain.ErrBadRequest)
	assert.Contains(t, err.Error(), "APPROXIMATE")

	unknown := "Dirección que no existe 123"
	_, err = f.uc.Create(ctx, f.client, dto.VisitCreateRequest{ExpectedDate: tomorrow(), Address: &unknown})
	requireKind(t, err, domain.ErrBadRequest)

	orphan := f.store.AddUser(&entity.User{FullName: "Sin vendedor", Role: entity.RoleInstitutional})
	_, err = f.uc.Create(ctx, orphan, dto.VisitCreateRequest{ExpectedDate: tomorrow()})
	requireKind(t, err, domain.ErrBadRequest)
	assert.Equal(t, "The client has no assigned seller", err.Error())

	noGeo := f.store.AddUser(&entity.User{FullName: "Sin ubicación", Role: entity.RoleInstitutional, SellerID: &f.seller.ID})
	_, err = f.uc.Create(ctx, noGeo, dto.VisitCreateRequest{ExpectedDate: tomorrow()})
	requireKind(t, err, domain.ErrBadRequest)
}

func TestList_AlcancePorRol(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.pendingVisit(time.Now())
	otherSeller := f.store.AddUser(&entity.User{FullName: "Otro", Role: entity.RoleCommercial})
	f.store.AddVisit(&entity.Visit{ExpectedDate: time.Now(), Status: entity.VisitStatusPending, ExpectedGeolocationID: f.home.ID, ClientID: "otro-cliente", SellerID: otherSeller.ID})

	mine, err := f.uc.List(ctx, f.seller, visit.ListQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, mine.TotalCount)
	require.NotNil(t, mine.Visits[0].Client)
	assert.Nil(t, mine.Visits[0].Seller)

	own, err := f.uc.List(ctx, f.client, visit.ListQuery{Status: entity.VisitStatusPending})
	require.NoError(t, err)
	assert.Equal(t, 1, own.TotalCount)

	done, err := f.uc.List(ctx, f.client, visit.ListQuery{Status: entity.VisitStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 0, done.TotalCount)
}

func TestGetByID_FueraDeAlcance(t *testing.T) {
	f := newFixture(t)
	v := f.pendingVisit(time.Now())
	stranger := f.store.AddUser(&entity.User{FullName: "Otro vendedor", Role: entity.RoleCommercial})

	_, err := f.uc.GetByID(context.Background(), stranger, v.ID)
	requireKind(t, err, domain.ErrNotFound)
}

func TestReport_ConEvidencia(t *testing.T) {
	f := newFixture(t)
	v := f.pendingVisit(time.Now().AddDate(0, 0, -1))
	obs := "Cliente satisfecho"

	out, err := f.uc.Report(context.Background(), f.seller, v.ID, dto.VisitReportRequest{
		Observations: &obs,
		Latitude:     4.61,
		Longitude:    -74.08,
		Evidence: &dto.EvidenceFile{
			Filename:    "foto.JPG",
			ContentType: "image/jpeg",
			Size:        5,
			Content:     strings.NewReader("jpeg!"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.VisitStatusCompleted, out.Status)
	require.NotNil(t, out.ReportGeolocation)
	assert.InDelta(t, 4.61, out.ReportGeolocation.Latitude, 1e-9)
	require.NotNil(t, out.VisualEvidenceURL)
	path := visit.EvidencePath(f.seller.ID, v.ID, "jpg")
	assert.Contains(t, *out.VisualEvidenceURL, path)
	assert.Equal(t, []byte("jpeg!"), f.storage.Objects[path])

	saved := f.store.Visit(v.ID)
	require.NotNil(t, saved.VisitDate)
	assert.Equal(t, &obs, saved.Observations)
}

func TestReport_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	future := f.pendingVisit(time.Now().AddDate(0, 0, 5))
	_, err := f.uc.Report(ctx, f.seller, future.ID, dto.VisitReportRequest{Latitude: 1, Longitude: 1})
	requireKind(t, err, domain.ErrBadRequest)
	assert.Equal(t, "Visit date cannot be before expected date", err.Error())

	today := f.pendingVisit(time.Now().UTC())
	_, err = f.uc.Report(ctx, f.seller, today.ID, dto.VisitReportRequest{
		Latitude: 1, Longitude: 1,
		Evidence: &dto.EvidenceFile{Filename: "informe.pdf", Size: 10, Content: strings.NewReader("x")},
	})
	requireKind(t, err, domain.ErrBadRequest)
	assert.Contains(t, err.Error(), "Allowed formats: avi, bmp, jpeg, jpg, mkv, mov, mp4, png")

	_, err = f.uc.Report(ctx, f.seller, today.ID, dto.VisitReportRequest{
		Latitude: 1, Longitude: 1,
		Evidence: &dto.EvidenceFile{Filename: "video.mp4", Size: (visit.MaxEvidenceSizeMB + 1) * 1024 * 1024, Content: strings.NewReader("x")},
	})
	requireKind(t, err, domain.ErrBadRequest)
	assert.Equal(t, entity.VisitStatusPending, f.store.Visit(today.ID).Status)
	assert.Empty(t, f.storage.Objects)

	_, err = f.uc.Report(ctx, f.seller, today.ID, dto.VisitReportRequest{Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	_, err = f.uc.Report(ctx, f.seller, today.ID, dto.VisitReportRequest{Latitude: 1, Longitude: 1})
	requireKind(t, err, domain.ErrNotFound)
	assert.Equal(t, "Visit not found or already reported", err.Error())
}
