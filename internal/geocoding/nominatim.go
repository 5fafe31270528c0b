package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// NominatimProvider implements Provider using OpenStreetMap's Nominatim API.
// It is free to use (no API key) but subject to the fair-use limit of one
// request per second.
type NominatimProvider struct {
	client  HTTPClient // HTTP client for making requests
	baseURL string     // Base URL for the Nominatim API
	// userAgent is required by the Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResult represents one entry of the JSON response from Nominatim.
type nominatimResult struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// NewNominatimProvider creates a Nominatim provider backed by the public
// API endpoint with a bounded request timeout.
func NewNominatimProvider() *NominatimProvider {
	const timeout = 10 * time.Second
	return &NominatimProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: nominatimBaseURL,
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: "cinemap/1.0 (https://github.com/davidrios/cinemap)",
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom
// HTTP client.  Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient) *NominatimProvider {
	p := NewNominatimProvider()
	p.client = client
	return p
}

// Geocode resolves a place description with a single Nominatim lookup.
// Only the first result is used (limit=1).  An empty result list maps to
// ErrNoResults; transport failures, non-200 statuses and malformed bodies
// surface as wrapped errors.
func (np *NominatimProvider) Geocode(ctx context.Context, place string) (*Coordinates, error) {
	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", place)
	query.Set("format", "json")
	query.Set("limit", "1") // Only need the top result
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var results []nominatimResult
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim returned invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim returned invalid longitude %q: %w", results[0].Lon, err)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
