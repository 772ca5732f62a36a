package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/medisupply-api/pkg/config"
)

// NewPool crea el pool de PostgreSQL con los límites de DBConfig y comprueba la conexión.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := poolConfigFor(cfg, newIPv4Resolver(cfg.FallbackDNS))
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolConfigFor arma la configuración del pool sin abrir conexiones.
// Con ForceIPv4 el host se resuelve a IPv4 antes de parsear y también en cada dial.
func poolConfigFor(cfg config.DBConfig, resolve resolveFunc) (*pgxpool.Config, error) {
	dsn := cfg.ConnectionString()
	if cfg.ForceIPv4 {
		dsn = dsnWithIPv4(cfg, resolve)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.ForceIPv4 {
		poolConfig.ConnConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{}
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			if ipv4, err := resolve(host); err == nil {
				return dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ipv4, port))
			}
			return dialer.DialContext(ctx, network, addr)
		}
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns >= 0 && cfg.MinConns <= int(poolConfig.MaxConns) {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetimeMinutes > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetimeMinutes) * time.Minute
	}
	if cfg.MaxConnIdleMinutes > 0 {
		poolConfig.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleMinutes) * time.Minute
	}
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC <-> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

// resolveFunc devuelve la IPv4 de un host.
type resolveFunc func(host string) (string, error)

// dsnWithIPv4 DSN con el host reemplazado por su IPv4; si no resuelve se deja el original.
func dsnWithIPv4(cfg config.DBConfig, resolve resolveFunc) string {
	if cfg.DatabaseURL != "" {
		return databaseURLWithIPv4(cfg.DatabaseURL, resolve)
	}
	if ipv4, err := resolve(cfg.Host); err == nil {
		cfg.Host = ipv4
	}
	return cfg.DSN()
}

// databaseURLWithIPv4 reemplaza el hostname de la URL por su IPv4 (entornos sin IPv6, p. ej. Docker).
func databaseURLWithIPv4(databaseURL string, resolve resolveFunc) string {
	u, err := url.Parse(databaseURL)
	if err != nil || u.Hostname() == "" {
		return databaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ipv4, err := resolve(u.Hostname())
	if err != nil {
		return databaseURL
	}
	u.Host = net.JoinHostPort(ipv4, port)
	return u.String()
}

// newIPv4Resolver usa el resolver del sistema y, si se configuró, un DNS alternativo (host:puerto).
func newIPv4Resolver(fallbackDNS string) resolveFunc {
	return func(host string) (string, error) {
		if ip := net.ParseIP(host); ip != nil {
			if ip.To4() != nil {
				return host, nil
			}
			return "", fmt.Errorf("%s es IPv6", host)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ipv4, err := lookupIPv4(ctx, net.DefaultResolver, host)
		if err == nil || fallbackDNS == "" {
			return ipv4, err
		}
		fallback := &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
				d := net.Dialer{}
				return d.DialContext(ctx, "udp", fallbackDNS)
			},
		}
		return lookupIPv4(ctx, fallback, host)
	}
}

func lookupIPv4(ctx context.Context, r *net.Resolver, host string) (string, error) {
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", fmt.Errorf("%s sin IPv4", host)
}
