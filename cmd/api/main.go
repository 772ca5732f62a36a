package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	_ "github.com/jhoicas/medisupply-api/docs"
	"github.com/jhoicas/medisupply-api/internal/application/auth"
	"github.com/jhoicas/medisupply-api/internal/application/geo"
	"github.com/jhoicas/medisupply-api/internal/application/logistics"
	"github.com/jhoicas/medisupply-api/internal/application/order"
	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/internal/application/report"
	"github.com/jhoicas/medisupply-api/internal/application/usecase"
	"github.com/jhoicas/medisupply-api/internal/application/visit"
	"github.com/jhoicas/medisupply-api/internal/infrastructure/cache"
	"github.com/jhoicas/medisupply-api/internal/infrastructure/email"
	"github.com/jhoicas/medisupply-api/internal/infrastructure/geocoding"
	infrapdf "github.com/jhoicas/medisupply-api/internal/infrastructure/pdf"
	"github.com/jhoicas/medisupply-api/internal/infrastructure/postgres"
	"github.com/jhoicas/medisupply-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/medisupply-api/internal/interfaces/http"
	"github.com/jhoicas/medisupply-api/pkg/config"
	"github.com/jhoicas/medisupply-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const bodyLimit = (visit.MaxEvidenceSizeMB + 2) * 1024 * 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Precios como número JSON, no string.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.DB.RunMigrations {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	otpRepo := postgres.NewOTPRepository(pool)
	zoneRepo := postgres.NewZoneRepository(pool)
	geoRepo := postgres.NewGeolocationRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	planRepo := postgres.NewSellingPlanRepository(pool)
	dcRepo := postgres.NewDistributionCenterRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	routeRepo := postgres.NewRouteRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis es opcional: sin él no hay límite de logins ni caché de geocodificación.
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr()).Msg("redis no disponible; se continúa sin caché")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var limiter ports.LoginLimiter
	if redisClient != nil {
		limiter = cache.NewLoginLimiter(redisClient, cfg.Auth.MaxFailedLogins, time.Duration(cfg.Auth.FailedLoginWindow)*time.Minute)
	}

	var geocoder ports.Geocoder
	if cfg.Geocoding.GoogleMapsAPIKey != "" {
		gm, err := geocoding.NewGoogleMapsGeocoder(cfg.Geocoding.GoogleMapsAPIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente de Google Maps")
		}
		geocoder = gm
		if redisClient != nil {
			geocoder = cache.NewCachedGeocoder(gm, redisClient, time.Duration(cfg.Geocoding.CacheTTLHours)*time.Hour, log)
		}
	} else {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY vacío; direcciones sin geocodificar")
	}
	geoSvc := geo.NewService(geocoder)

	var fileStorage ports.FileStorage
	if cfg.Storage.Bucket != "" {
		s3, err := storage.NewS3Storage(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		fileStorage = s3
	} else {
		log.Warn().Msg("S3_BUCKET vacío; los reportes de visita no aceptan evidencias")
	}

	var mailer ports.Mailer
	if cfg.SMTP.Enabled() {
		mailer = email.NewSMTPMailer(cfg.SMTP)
	} else {
		mailer = email.NewLogMailer(log)
	}
	templates, err := email.NewTemplates()
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas de correo")
	}

	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:        userRepo,
		OTPs:         otpRepo,
		Zones:        zoneRepo,
		Geolocations: geoRepo,
		Geo:          geoSvc,
		Mailer:       mailer,
		Templates:    templates,
		Limiter:      limiter,
	}, auth.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		OTPExpirationMinutes: cfg.Auth.OTPExpirationMinutes,
	}, log)

	zoneUC := usecase.NewZoneUseCase(zoneRepo, userRepo, planRepo)
	sellerUC := usecase.NewSellerUseCase(userRepo, zoneRepo, mailer, templates, cfg.Auth.LoginURL, log)
	providerUC := usecase.NewProviderUseCase(providerRepo, log)
	productUC := usecase.NewProductUseCase(productRepo, providerRepo, planRepo, orderRepo, userRepo, log)
	planUC := usecase.NewSellingPlanUseCase(planRepo, productRepo, zoneRepo, userRepo, log)
	dcUC := usecase.NewDistributionCenterUseCase(dcRepo, log)
	orderUC := order.NewUseCase(txRunner, order.Repos{
		Orders:              orderRepo,
		Products:            productRepo,
		Users:               userRepo,
		DistributionCenters: dcRepo,
		Routes:              routeRepo,
	}, log)
	routeUC := logistics.NewRouteUseCase(txRunner, logistics.Repos{
		Routes:              routeRepo,
		Orders:              orderRepo,
		DistributionCenters: dcRepo,
		Users:               userRepo,
		Geolocations:        geoRepo,
	}, log)
	visitUC := visit.NewUseCase(txRunner, visit.Repos{
		Visits:       visitRepo,
		Users:        userRepo,
		Geolocations: geoRepo,
	}, geoSvc, fileStorage, time.Duration(cfg.Storage.SignedURLMinutes)*time.Minute, log)
	reportUC := report.NewUseCase(report.Repos{
		Orders:    orderRepo,
		Products:  productRepo,
		Users:     userRepo,
		Analytics: analyticsRepo,
	}, infrapdf.NewMarotoPDFGenerator(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log))

	metrics := httpRouter.NewMetrics(prometheus.DefaultRegisterer, "medisupply")
	app.Use(metrics.Middleware())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MediSupply API",
	}))

	app.Get("/health", httpRouter.Health(cfg.App.Name, pool))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:               authUC,
		ZoneUC:               zoneUC,
		SellerUC:             sellerUC,
		ProviderUC:           providerUC,
		ProductUC:            productUC,
		SellingPlanUC:        planUC,
		DistributionCenterUC: dcUC,
		OrderUC:              orderUC,
		RouteUC:              routeUC,
		VisitUC:              visitUC,
		ReportUC:             reportUC,
		JWTSecret:            cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
