package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
)

func TestParseCoordinates_LatLonOrder(t *testing.T) {
	got, err := domain.ParseCoordinates("40.7,-74.0")

	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: -74.0, Lat: 40.7}, got)
}

func TestParseCoordinates_LonLatOrder(t *testing.T) {
	got, err := domain.ParseCoordinates("-80.19,25.76")

	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: -80.19, Lat: 25.76}, got)
}

// Both orders of the same point normalize to the same pair when the
// latitude is at most 30 in magnitude.
func TestParseCoordinates_BothOrdersAgree(t *testing.T) {
	a, err := domain.ParseCoordinates("25.76,-80.19")
	require.NoError(t, err)
	b, err := domain.ParseCoordinates("-80.19,25.76")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, []float64{-80.19, 25.76}, a.CoordsToList())
}

// When both values exceed 30 the pair is always read as "lat,lon", so a
// "lon,lat" input north of 30 degrees comes back swapped. Known limitation.
func TestParseCoordinates_LonLatAboveThirtyReadAsLatLon(t *testing.T) {
	got, err := domain.ParseCoordinates("-74.0,40.7")

	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: 40.7, Lat: -74.0}, got)
}

func TestParseCoordinates_TrimsWhitespace(t *testing.T) {
	got, err := domain.ParseCoordinates(" 34.05 , -118.24 ")

	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: -118.24, Lat: 34.05}, got)
}

// Near the equator a "lon,lat" pair with a small longitude is read as
// "lat,lon". This is the known limitation of the heuristic.
func TestParseCoordinates_AmbiguousNearEquator(t *testing.T) {
	got, err := domain.ParseCoordinates("10.0,5.0")

	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: 5.0, Lat: 10.0}, got)
}

// Exactly 30 is not "greater than 30", so the lat,lon branch applies.
func TestParseCoordinates_BoundaryAtThirty(t *testing.T) {
	got, err := domain.ParseCoordinates("30,10")

	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: 10, Lat: 30}, got)
}

func TestParseCoordinates_Invalid(t *testing.T) {
	cases := map[string]string{
		"one token":    "40.7",
		"three tokens": "40.7,-74.0,12",
		"not a number": "abc,-74.0",
		"empty":        "",
		"empty token":  "40.7,",
		"nan":          "NaN,1",
		"inf":          "1,Inf",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := domain.ParseCoordinates(in)

			assert.ErrorIs(t, err, domain.ErrParseCoordinates)
		})
	}
}
