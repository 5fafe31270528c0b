package geocoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderNominatim(t *testing.T) {
	p, err := NewProvider(ProviderTypeNominatim, "")
	require.NoError(t, err)
	assert.IsType(t, &NominatimProvider{}, p)
}

func TestNewProviderGoogle(t *testing.T) {
	p, err := NewProvider(ProviderTypeGoogle, "test-api-key")
	require.NoError(t, err)
	assert.IsType(t, &GoogleProvider{}, p)
}

func TestNewProviderGoogleRequiresKey(t *testing.T) {
	_, err := NewProvider(ProviderTypeGoogle, "")
	assert.Error(t, err)
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(ProviderType("bing"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}
