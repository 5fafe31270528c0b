package geocoding

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// GoogleProvider implements Provider on top of the Google Maps Geocoding
// API.  It requires an API key and is suitable when Nominatim's fair-use
// limits are too tight.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
}

// GoogleAPIClient is the subset of the Google Maps client used here,
// extracted so tests can substitute a mock.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider wraps an existing Google Maps API client.
func NewGoogleProvider(client GoogleAPIClient) *GoogleProvider {
	return &GoogleProvider{client: client}
}

// Geocode resolves a place description through the Google Maps Geocoding
// API.  Zero results map to ErrNoResults; API failures are wrapped.  Only
// the first result's location is used.
func (gp *GoogleProvider) Geocode(ctx context.Context, place string) (*Coordinates, error) {
	req := maps.GeocodingRequest{Address: place}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode place: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	loc := results[0].Geometry.Location
	return &Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
