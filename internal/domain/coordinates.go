package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrParseCoordinates is returned by ParseCoordinates for any input that is
// not exactly two finite comma-separated numbers.
var ErrParseCoordinates = errors.New("invalid coordinates")

// latitudeCutoff is the magnitude above which the first token of a pair is
// taken to be a longitude.
const latitudeCutoff = 30.0

// Coordinates is a geographic point. The routing API expects [lon, lat].
type Coordinates struct {
	Lon float64
	Lat float64
}

// CoordsToList returns the point as [lon, lat] for the routing request body.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// ParseCoordinates turns "a,b" into a point, guessing the axis order:
// if |a| > 30 and |b| <= 30 the input is read as "lon,lat", otherwise as
// "lat,lon".
//
// The guess is lossy. Near the equator, or anywhere both values are small
// or both are large, "lon,lat" input is silently read as "lat,lon". Callers
// that need certainty should geocode instead.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("%w: %q: expected two comma-separated numbers", ErrParseCoordinates, s)
	}

	vals := make([]float64, 2)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Coordinates{}, fmt.Errorf("%w: %q: %q is not a number", ErrParseCoordinates, s, strings.TrimSpace(p))
		}
		vals[i] = v
	}

	if math.Abs(vals[0]) > latitudeCutoff && math.Abs(vals[1]) <= latitudeCutoff {
		return Coordinates{Lon: vals[0], Lat: vals[1]}, nil
	}
	return Coordinates{Lon: vals[1], Lat: vals[0]}, nil
}
