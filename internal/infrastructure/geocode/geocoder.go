// Package geocode adapts the geo-golang OpenStreetMap provider to the
// Geocoder port.
package geocode

import (
	"context"
	"fmt"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type Geocoder struct {
	provider geo.Geocoder
}

// New returns a Geocoder backed by the OpenStreetMap Nominatim service.
func New() *Geocoder {
	return &Geocoder{provider: openstreetmap.Geocoder()}
}

func (g *Geocoder) Geocode(_ context.Context, query string) (*ports.GeocodeResult, error) {
	loc, err := g.provider.Geocode(query)
	if err != nil {
		return nil, fmt.Errorf("%w: geocode: %v", domain.ErrUpstream, err)
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: no result for %q", domain.ErrUpstream, query)
	}

	result := &ports.GeocodeResult{Lat: loc.Lat, Lng: loc.Lng}

	if addr, err := g.provider.ReverseGeocode(loc.Lat, loc.Lng); err == nil && addr != nil {
		result.FormattedAddress = addr.FormattedAddress
		result.City = addr.City
		result.Zipcode = addr.Postcode
		result.Country = addr.Country
	}

	return result, nil
}
