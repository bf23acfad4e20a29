package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferLocation_StructuredMatch(t *testing.T) {
	location := InferLocation("Coverage in Seattle is rough", nil, "")
	require.NotNil(t, location)
	assert.Equal(t, "Seattle", location.City)
	assert.Equal(t, "WA", location.State)
	assert.Equal(t, "USA", location.Country)
	assert.Equal(t, "seattle", location.Raw)
	assert.InDelta(t, 47.6062, location.Latitude, 1e-4)
}

func TestInferLocation_FirstMatchWins(t *testing.T) {
	// Dallas precedes Chicago in the gazetteer, so it wins even though both
	// appear in the text.
	location := InferLocation("Flew from Chicago to Dallas yesterday", nil, "")
	require.NotNil(t, location)
	assert.Equal(t, "Dallas", location.City)
}

func TestInferLocation_HintsContribute(t *testing.T) {
	location := InferLocation("Signal keeps dropping", []string{"Houston resident"}, "")
	require.NotNil(t, location)
	assert.Equal(t, "Houston", location.City)
}

func TestInferLocation_CallerHintFallback(t *testing.T) {
	location := InferLocation("No city mentioned here", nil, "Plano, TX")
	require.NotNil(t, location)
	assert.Empty(t, location.City)
	assert.Equal(t, "Plano, TX", location.Raw)
}

func TestInferLocation_CallerHintCanMatchGazetteer(t *testing.T) {
	location := InferLocation("No city mentioned here", nil, "Miami, FL")
	require.NotNil(t, location)
	assert.Equal(t, "Miami", location.City)
}

func TestInferLocation_NoMatchNoHint(t *testing.T) {
	assert.Nil(t, InferLocation("No city mentioned here", nil, ""))
}
