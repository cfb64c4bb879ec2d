package ports

import "context"

// GeocodeResult is a resolved geographic point.
type GeocodeResult struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
	City             string
	Zipcode          string
	Country          string
}

// Geocoder resolves a free-form query (address or zipcode) to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*GeocodeResult, error)
}
