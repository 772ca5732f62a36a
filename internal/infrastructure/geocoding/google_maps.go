// Package geocoding adapta la Geocoding API de Google Maps al puerto ports.Geocoder.
package geocoding

import (
	"context"
	"fmt"

	"github.com/jhoicas/medisupply-api/internal/application/ports"
	"googlemaps.github.io/maps"
)

var _ ports.Geocoder = (*GoogleMapsGeocoder)(nil)

// GoogleMapsGeocoder cliente de geocodificación.
type GoogleMapsGeocoder struct {
	client *maps.Client
}

// NewGoogleMapsGeocoder construye el cliente con la API key.
func NewGoogleMapsGeocoder(apiKey string) (*GoogleMapsGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google maps client: %w", err)
	}
	return &GoogleMapsGeocoder{client: client}, nil
}

// Geocode devuelve el primer resultado o nil si la dirección no existe.
func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	r := results[0]
	return &ports.GeocodeResult{
		FormattedAddress: r.FormattedAddress,
		Latitude:         r.Geometry.Location.Lat,
		Longitude:        r.Geometry.Location.Lng,
		LocationType:     r.Geometry.LocationType,
	}, nil
}
