package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Auth      AuthConfig
	SMTP      SMTPConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Geocoding GeocodingConfig
	Seed      SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL   string
	Host          string
	Port          int
	User          string
	Password      string
	DBName        string
	SSLMode       string
	RunMigrations bool

	MaxConns               int
	MinConns               int
	MaxConnLifetimeMinutes int
	MaxConnIdleMinutes     int

	// ForceIPv4 resuelve el host a IPv4 antes de conectar; FallbackDNS (host:puerto) se usa si el resolver del sistema falla.
	ForceIPv4   bool
	FallbackDNS string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig parámetros del segundo factor y del alta de vendedores.
type AuthConfig struct {
	OTPExpirationMinutes int
	MaxFailedLogins      int // intentos fallidos por email antes de bloquear
	FailedLoginWindow    int // minutos
	LoginURL             string
}

// SMTPConfig servidor de correo saliente.
type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

// Enabled indica si hay credenciales SMTP configuradas.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Sender != ""
}

// StorageConfig bucket S3 (o compatible) para evidencias de visitas.
type StorageConfig struct {
	Bucket           string
	Region           string
	Endpoint         string // opcional: MinIO / LocalStack
	AccessKeyID      string
	SecretAccessKey  string
	SignedURLMinutes int
}

// RedisConfig conexión a Redis; vacío = sin caché.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled indica si Redis está configurado.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Addr devuelve host:port.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GeocodingConfig credenciales de Google Maps.
type GeocodingConfig struct {
	GoogleMapsAPIKey string
	CacheTTLHours    int
}

// SeedConfig credenciales del administrador que crea cmd/seed.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "medisupply-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL:   getString(v, "DATABASE_URL", ""),
			Host:          getString(v, "DB_HOST", "localhost"),
			Port:          getInt(v, "DB_PORT", 5432),
			User:          getString(v, "DB_USER", "postgres"),
			Password:      getString(v, "DB_PASSWORD", ""),
			DBName:        getString(v, "DB_NAME", "medisupply"),
			SSLMode:       getString(v, "DB_SSLMODE", "disable"),
			RunMigrations: getBool(v, "DB_RUN_MIGRATIONS", true),

			MaxConns:               getInt(v, "DB_MAX_CONNS", 10),
			MinConns:               getInt(v, "DB_MIN_CONNS", 1),
			MaxConnLifetimeMinutes: getInt(v, "DB_MAX_CONN_LIFETIME_MINUTES", 60),
			MaxConnIdleMinutes:     getInt(v, "DB_MAX_CONN_IDLE_MINUTES", 30),
			ForceIPv4:              getBool(v, "DB_FORCE_IPV4", false),
			FallbackDNS:            getString(v, "DB_FALLBACK_DNS", ""),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "medisupply"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Auth: AuthConfig{
			OTPExpirationMinutes: getInt(v, "OTP_EXPIRATION_MINUTES", 1),
			MaxFailedLogins:      getInt(v, "LOGIN_MAX_FAILED_ATTEMPTS", 5),
			FailedLoginWindow:    getInt(v, "LOGIN_FAILED_WINDOW_MINUTES", 15),
			LoginURL:             getString(v, "LOGIN_URL", "http://localhost:4200/login"),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", "smtp.gmail.com"),
			Port:     getInt(v, "SMTP_PORT", 465),
			Sender:   getString(v, "EMAIL_SENDER", ""),
			Password: getString(v, "EMAIL_API_KEY", ""),
		},
		Storage: StorageConfig{
			Bucket:           getString(v, "S3_BUCKET", ""),
			Region:           getString(v, "S3_REGION", "us-east-1"),
			Endpoint:         getString(v, "S3_ENDPOINT", ""),
			AccessKeyID:      getString(v, "S3_ACCESS_KEY_ID", ""),
			SecretAccessKey:  getString(v, "S3_SECRET_ACCESS_KEY", ""),
			SignedURLMinutes: getInt(v, "S3_SIGNED_URL_MINUTES", 5),
		},
		Redis: RedisConfig{
			Host:     getString(v, "REDIS_HOST", ""),
			Port:     getInt(v, "REDIS_PORT", 6379),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Geocoding: GeocodingConfig{
			GoogleMapsAPIKey: getString(v, "GOOGLE_MAPS_API_KEY", ""),
			CacheTTLHours:    getInt(v, "GEOCODING_CACHE_TTL_HOURS", 24),
		},
		Seed: SeedConfig{
			AdminEmail:    getString(v, "SEED_ADMIN_EMAIL", "admin@medisupply.com"),
			AdminPassword: getString(v, "SEED_ADMIN_PASSWORD", ""),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
