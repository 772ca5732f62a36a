package auth_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/medisupply-api/internal/application/apptest"
	"github.com/jhoicas/medisupply-api/internal/application/auth"
	"github.com/jhoicas/medisupply-api/internal/application/dto"
	"github.com/jhoicas/medisupply-api/internal/application/geo"
	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/pkg/jwt"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

const (
	secret  = "test-secret"
	address = "Calle 100 # 19-61, Bogotá"
)

type fixture struct {
	store   *apptest.Store
	mailer  *apptest.Mailer
	limiter *apptest.Limiter
	uc      *auth.AuthUseCase
}

func newFixture(t *testing.T, withGeocoder bool) *fixture {
	t.Helper()
	s := apptest.NewStore()
	f := &fixture{store: s, mailer: &apptest.Mailer{}, limiter: apptest.NewLimiter(3)}
	var geocoder ports.Geocoder
	if withGeocoder {
		geocoder = &apptest.Geocoder{Results: map[string]*ports.GeocodeResult{
			address: {FormattedAddress: "Cl. 100 #19-61, Bogotá, Colombia", Latitude: 4.68, Longitude: -74.05, LocationType: geo.PrecisionRooftop},
		}}
	}
	f.uc = auth.NewAuthUseCase(auth.Deps{
		Users:        s.UserRepo(),
		OTPs:         s.OTPRepo(),
		Zones:        s.ZoneRepo(),
		Geolocations: s.GeolocationRepo(),
		Geo:          geo.NewService(geocoder),
		Mailer:       f.mailer,
		Templates:    apptest.Templates{},
		Limiter:      f.limiter,
	}, auth.Config{
		JWT:                  auth.JWTConfig{Secret: secret, ExpMinutes: 30, Issuer: "medisupply-test"},
		OTPExpirationMinutes: 5,
	}, logger.Nop())
	return f
}

func (f *fixture) addUser(t *testing.T, email, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return f.store.AddUser(&entity.User{FullName: "Usuario " + role, Email: email, PasswordHash: string(hash), DOI: email, Role: role})
}

func registration(email, doi, role string) dto.UserCreateRequest {
	return dto.UserCreateRequest{
		Email:    email,
		FullName: "Nuevo usuario",
		DOI:      doi,
		Address:  address,
		Phone:    "+573001234567",
		Role:     role,
		Password: "secreto1",
	}
}

func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "se esperaba %v, llegó %v", kind, err)
}

func TestRegister_InstitucionalRecibeVendedorYGeolocalizacion(t *testing.T) {
	f := newFixture(t, true)
	zone := f.store.AddZone(&entity.Zone{Description: "Norte"})
	seller := f.store.AddUser(&entity.User{FullName: "Vendedor", Email: "v@medisupply.com", DOI: "v", Role: entity.RoleCommercial, ZoneID: &zone.ID})

	out, err := f.uc.Register(context.Background(), registration("clinica@example.com", "900123", entity.RoleInstitutional))
	require.NoError(t, err)
	assert.Equal(t, entity.RoleInstitutional, out.Role)

	saved, err := f.store.UserRepo().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.SellerID)
	assert.Equal(t, seller.ID, *saved.SellerID)
	require.NotNil(t, saved.ZoneID)
	assert.Equal(t, zone.ID, *saved.ZoneID)
	require.NotNil(t, saved.GeolocationID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("secreto1")))
}

func TestRegister_ComercialRecibeZona(t *testing.T) {
	f := newFixture(t, false)
	zone := f.store.AddZone(&entity.Zone{Description: "Sur"})

	out, err := f.uc.Register(context.Background(), registration("vendedor@example.com", "1010", entity.RoleCommercial))
	require.NoError(t, err)

	saved, err := f.store.UserRepo().GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, saved.ZoneID)
	assert.Equal(t, zone.ID, *saved.ZoneID)
	assert.Nil(t, saved.SellerID)
}

func TestRegister_Duplicado(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	_, err := f.uc.Register(ctx, registration("a@example.com", "1", entity.RoleCommercial))
	require.NoError(t, err)

	_, err = f.uc.Register(ctx, registration("A@example.com", "2", entity.RoleCommercial))
	requireKind(t, err, domain.ErrConflict)
	_, err = f.uc.Register(ctx, registration("b@example.com", "1", entity.RoleCommercial))
	requireKind(t, err, domain.ErrConflict)
}

func TestRegister_DireccionImprecisa(t *testing.T) {
	f := newFixture(t, true)
	in := registration("c@example.com", "3", entity.RoleInstitutional)
	in.Address = "Dirección desconocida"

	_, err := f.uc.Register(context.Background(), in)
	requireKind(t, err, domain.ErrBadRequest)
	assert.Empty(t, f.store.Users)
}

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestLoginYVerifyOTP(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	user := f.addUser(t, "admin@medisupply.com", "admin123", entity.RoleAdmin)

	login, err := f.uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "OTP generated successfully", login.Message)
	assert.Equal(t, 5, login.OTPExpirationMinutes)

	otp := f.store.OTPRepo().Latest(user.ID)
	require.NotNil(t, otp)
	assert.Regexp(t, sixDigits, otp.Code)

	mail := f.mailer.Last()
	require.NotNil(t, mail)
	assert.Equal(t, user.Email, mail.To)
	assert.Contains(t, mail.HTML, ports.TemplateOTP)
	assert.Contains(t, mail.HTML, "OTPCode="+otp.Code)

	out, err := f.uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: user.Email, OTPCode: otp.Code})
	require.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, user.ID, out.User.ID)

	sub, role, err := jwt.Parse(secret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)
	assert.Equal(t, entity.RoleAdmin, role)

	// Un código sólo se canjea una vez.
	_, err = f.uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: user.Email, OTPCode: otp.Code})
	requireKind(t, err, domain.ErrUnauthorized)
}

func TestVerifyOTP_CanjeConcurrente(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	user := f.addUser(t, "admin@medisupply.com", "admin123", entity.RoleAdmin)
	_, err := f.uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "admin123"})
	require.NoError(t, err)
	otp := f.store.OTPRepo().Latest(user.ID)
	require.NotNil(t, otp)

	const attempts = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
		denied  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: user.Email, OTPCode: otp.Code})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				granted++
			} else if errors.Is(err, domain.ErrUnauthorized) {
				denied++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, granted)
	assert.Equal(t, attempts-1, denied)
	assert.True(t, f.store.OTPs[otp.ID].IsUsed)
}

func TestVerifyOTP_Invalido(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	user := f.addUser(t, "seller@medisupply.com", "seller1", entity.RoleCommercial)
	_, err := f.uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "seller1"})
	require.NoError(t, err)
	otp := f.store.OTPRepo().Latest(user.ID)
	require.NotNil(t, otp)

	wrong := "000000"
	if otp.Code == wrong {
		wrong = "111111"
	}
	_, err = f.uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: user.Email, OTPCode: wrong})
	requireKind(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "Invalid or expired OTP", err.Error())

	_, err = f.uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: "nadie@medisupply.com", OTPCode: otp.Code})
	requireKind(t, err, domain.ErrUnauthorized)

	expired := *otp
	expired.ExpiresAt = time.Now().Add(-time.Second)
	f.store.OTPs[otp.ID] = expired
	_, err = f.uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: user.Email, OTPCode: otp.Code})
	requireKind(t, err, domain.ErrUnauthorized)
}

func TestLogin_CredencialesInvalidasYBloqueo(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	user := f.addUser(t, "inst@medisupply.com", "inst123", entity.RoleInstitutional)

	_, err := f.uc.Login(ctx, dto.LoginRequest{Email: "nadie@medisupply.com", Password: "inst123"})
	requireKind(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", err.Error())

	for i := 0; i < 3; i++ {
		_, err = f.uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "malo12"})
		requireKind(t, err, domain.ErrUnauthorized)
	}
	_, err = f.uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "inst123"})
	requireKind(t, err, domain.ErrTooManyRequests)
	assert.Nil(t, f.mailer.Last())
}

func TestLogin_ExitoReiniciaIntentos(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	user := f.addUser(t, "inst@medisupply.com", "inst123", entity.RoleInstitutional)

	for i := 0; i < 2; i++ {
		_, err := f.uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "malo12"})
		requireKind(t, err, domain.ErrUnauthorized)
	}
	_, err := f.uc.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "inst123"})
	require.NoError(t, err)

	blocked, err := f.limiter.Blocked(ctx, user.Email)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLogin_FallaReinicioDeIntentosSoloSeRegistra(t *testing.T) {
	var buf bytes.Buffer
	f := newFixture(t, false)
	f.limiter.ResetErr = errors.New("redis caído")
	uc := auth.NewAuthUseCase(auth.Deps{
		Users:     f.store.UserRepo(),
		OTPs:      f.store.OTPRepo(),
		Zones:     f.store.ZoneRepo(),
		Geo:       geo.NewService(nil),
		Mailer:    f.mailer,
		Templates: apptest.Templates{},
		Limiter:   f.limiter,
	}, auth.Config{JWT: auth.JWTConfig{Secret: secret, ExpMinutes: 30}, OTPExpirationMinutes: 5},
		logger.FromZerolog(zerolog.New(&buf)))
	user := f.addUser(t, "inst@medisupply.com", "inst123", entity.RoleInstitutional)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "inst123"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "redis caído")
}

func TestLogin_FallaEnvioCorreo(t *testing.T) {
	f := newFixture(t, false)
	f.mailer.Err = errors.New("smtp caído")
	user := f.addUser(t, "inst@medisupply.com", "inst123", entity.RoleInstitutional)

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "inst123"})
	require.Error(t, err)
	_, isDomain := domain.AsError(err)
	assert.False(t, isDomain)
}

func TestCurrentUser(t *testing.T) {
	f := newFixture(t, false)
	user := f.addUser(t, "x@medisupply.com", "x12345", entity.RoleCommercial)

	got, err := f.uc.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = f.uc.CurrentUser(context.Background(), "no-existe")
	requireKind(t, err, domain.ErrUnauthorized)
}
