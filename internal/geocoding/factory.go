package geocoding

import (
	"errors"
	"fmt"

	"googlemaps.github.io/maps"
)

// ProviderType identifies a geocoding backend.
type ProviderType string

const (
	// ProviderTypeNominatim selects the OpenStreetMap Nominatim API (free, no API key).
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeGoogle selects the Google Maps Geocoding API (requires an API key).
	ProviderTypeGoogle ProviderType = "google"
)

// NewProvider creates a geocoding provider for the given type.  It returns
// an error for unknown types or when a required API key is missing, so that
// misconfiguration is caught at startup rather than on the first request.
func NewProvider(providerType ProviderType, apiKey string) (Provider, error) {
	switch providerType {
	case ProviderTypeNominatim:
		return NewNominatimProvider(), nil
	case ProviderTypeGoogle:
		if apiKey == "" {
			return nil, errors.New("API key is required for the google provider")
		}
		client, err := maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
		}
		return NewGoogleProvider(client), nil
	default:
		return nil, fmt.Errorf("unsupported geocoding provider type: %s", providerType)
	}
}
