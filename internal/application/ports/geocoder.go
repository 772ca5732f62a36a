package ports

import "context"

// GeocodeResult coordenadas de una dirección.
type GeocodeResult struct {
	FormattedAddress string
	Latitude         float64
	Longitude        float64
	LocationType     string // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
}

// Geocoder traduce direcciones a coordenadas.
// Devuelve (nil, nil) cuando la dirección no tiene resultados.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
}
