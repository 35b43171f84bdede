package geotag

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// A query is coordinate-shaped when, after stripping whitespace, it is
// nothing but numeric-looking tokens around a single comma. Shaped queries
// never fall through to geocoding: they either parse or fail as invalid
// coordinates.
var coordShape = regexp.MustCompile(`^-?[0-9.]+,-?[0-9.]*$`)

// The pair grammar proper: decimal degrees with an explicit fractional part
// of 1..15 digits on each side.
var coordPair = regexp.MustCompile(`^-?[0-9]{1,2}\.[0-9]{1,15},-?[0-9]{1,3}\.[0-9]{1,15}$`)

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func looksLikeCoordinates(q string) bool {
	return coordShape.MatchString(stripSpace(q))
}

// parseCoordinatePair validates and parses a coordinate-shaped query into
// a latitude/longitude pair in degrees.
func parseCoordinatePair(q string) (float64, float64, error) {
	s := stripSpace(q)
	if !coordPair.MatchString(s) {
		return 0, 0, errors.New("pair does not match the latitude,longitude grammar")
	}
	latStr, lngStr, _ := strings.Cut(s, ",")
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("longitude: %w", err)
	}
	if lat < -90 || lat > 90 {
		return 0, 0, errors.New("latitude must be in [-90,90]")
	}
	if lng < -180 || lng > 180 {
		return 0, 0, errors.New("longitude must be in [-180,180]")
	}
	return lat, lng, nil
}
