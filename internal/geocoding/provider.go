// Package geocoding resolves free-text place descriptions to geographic
// coordinates through an external lookup service.  Providers perform a
// single bounded request per call; there is no retry and no caching, so a
// failed lookup fails the caller's whole operation.
package geocoding

import (
	"context"
	"errors"
)

// Coordinates is a resolved latitude/longitude pair in signed degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Provider is the interface implemented by every geocoding backend.
// Geocode resolves the given place text to coordinates.  When the service
// answers but knows no such place, the error is ErrNoResults; any other
// error means the service itself failed.
type Provider interface {
	Geocode(ctx context.Context, place string) (*Coordinates, error)
}

// ErrNoResults is returned when the provider responded successfully but
// found nothing for the query.  Callers treat this as bad input rather
// than a service failure.
var ErrNoResults = errors.New("geocoder returned no results")
