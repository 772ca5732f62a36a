// seed carga los datos base de MediSupply: zonas, centros de distribución y el usuario administrador.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL / DB_*). El administrador se crea con
// SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD. Es idempotente: no duplica lo que ya existe.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/infrastructure/postgres"
	"github.com/jhoicas/medisupply-api/pkg/config"
	"github.com/jhoicas/medisupply-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

var zones = []string{
	"Bogotá D.C.",
	"Antioquia",
	"Valle del Cauca",
	"Atlántico",
	"Santander",
}

var centers = []entity.DistributionCenter{
	{Name: "CD Bogotá Norte", Address: "Calle 170 # 54-20", City: "Bogotá", Country: "Colombia"},
	{Name: "CD Medellín", Address: "Carrera 48 # 10-45", City: "Medellín", Country: "Colombia"},
	{Name: "CD Cali", Address: "Avenida 3N # 24-60", City: "Cali", Country: "Colombia"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := seedZones(ctx, postgres.NewZoneRepository(pool)); err != nil {
		log.Fatal().Err(err).Msg("zonas")
	}
	if err := seedCenters(ctx, postgres.NewDistributionCenterRepository(pool)); err != nil {
		log.Fatal().Err(err).Msg("centros de distribución")
	}
	created, err := seedAdmin(ctx, postgres.NewUserRepository(pool), cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("administrador")
	}
	log.Info().Bool("admin_created", created).Msg("seed completado")
}

func seedZones(ctx context.Context, repo *postgres.ZoneRepo) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, desc := range zones {
		if err := repo.Create(ctx, &entity.Zone{ID: uuid.New().String(), Description: desc, CreatedAt: time.Now().UTC()}); err != nil {
			return fmt.Errorf("zona %q: %w", desc, err)
		}
	}
	return nil
}

func seedCenters(ctx context.Context, repo *postgres.DistributionCenterRepo) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, dc := range centers {
		dc.ID = uuid.New().String()
		dc.CreatedAt = time.Now().UTC()
		if err := repo.Create(ctx, &dc); err != nil {
			return fmt.Errorf("centro %q: %w", dc.Name, err)
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, repo *postgres.UserRepo, email, password string) (bool, error) {
	u, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if u != nil {
		return false, nil
	}
	if len(password) < 6 {
		return false, fmt.Errorf("SEED_ADMIN_PASSWORD debe tener al menos 6 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		FullName:     "Administrador MediSupply",
		Email:        email,
		PasswordHash: string(hash),
		Phone:        "3000000000",
		DOI:          "900000000",
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	return true, repo.Create(ctx, admin)
}
