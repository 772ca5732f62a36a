package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"github.com/jhoicas/medisupply-api/pkg/logger"
)

var _ ports.Geocoder = (*CachedGeocoder)(nil)

const geocodePrefix = "geocode:"

// CachedGeocoder decorador de ports.Geocoder que guarda en Redis los resultados encontrados.
// Las direcciones sin resultado no se cachean.
type CachedGeocoder struct {
	next  ports.Geocoder
	redis *RedisClient
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedGeocoder envuelve next.
func NewCachedGeocoder(next ports.Geocoder, redis *RedisClient, ttl time.Duration, log *logger.Logger) *CachedGeocoder {
	return &CachedGeocoder{next: next, redis: redis, ttl: ttl, log: log.Component("geocode_cache")}
}

func geocodeKey(address string) string {
	return geocodePrefix + strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// Geocode consulta la caché y, si falla o no está, delega. Un error de Redis nunca corta la geocodificación.
func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	key := geocodeKey(address)
	if raw, ok, err := c.redis.Get(ctx, key); err != nil {
		c.log.Warn().Err(err).Msg("cache de geocoding no disponible")
	} else if ok {
		var res ports.GeocodeResult
		if err := json.Unmarshal([]byte(raw), &res); err == nil {
			return &res, nil
		}
	}

	res, err := c.next.Geocode(ctx, address)
	if err != nil || res == nil {
		return res, err
	}
	if raw, err := json.Marshal(res); err == nil {
		if err := c.redis.Set(ctx, key, string(raw), c.ttl); err != nil {
			c.log.Warn().Err(err).Msg("no se pudo cachear la geocodificación")
		}
	}
	return res, nil
}
