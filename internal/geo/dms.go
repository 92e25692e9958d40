package geo

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// ErrInvalidInput marks malformed coordinates, radii or geometries.
var ErrInvalidInput = errors.New("invalid input")

// Accepts `45°27'55"N`, `45 27 55N`, `-45 27 55.5` and unicode prime marks.
var dmsRe = regexp.MustCompile(`^(-?\d+)[°\s]+(\d+)['′\s]+(\d+(?:\.\d+)?)["″\s]*([NSEWnsew])?$`)

// ParseDMS converts a degrees-minutes-seconds coordinate to decimal degrees.
// A leading minus or a S/W hemisphere suffix makes the result negative.
func ParseDMS(s string) (float64, error) {
	m := dmsRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: malformed DMS coordinate %q", ErrInvalidInput, s)
	}

	deg, _ := strconv.ParseFloat(m[1], 64)
	min, _ := strconv.ParseFloat(m[2], 64)
	sec, _ := strconv.ParseFloat(m[3], 64)

	if min >= 60 || sec >= 60 {
		return 0, fmt.Errorf("%w: minutes and seconds must be below 60 in %q", ErrInvalidInput, s)
	}

	dec := math.Abs(deg) + min/60 + sec/3600

	dir := strings.ToUpper(m[4])
	if deg < 0 || dir == "S" || dir == "W" {
		dec = -dec
	}

	return dec, nil
}

// ParsePoint builds a lon/lat reference point from DMS latitude and
// longitude strings, validating the geographic ranges.
func ParsePoint(latDMS, lonDMS string) (orb.Point, error) {
	lat, err := ParseDMS(latDMS)
	if err != nil {
		return orb.Point{}, err
	}

	lon, err := ParseDMS(lonDMS)
	if err != nil {
		return orb.Point{}, err
	}

	if lat < -90 || lat > 90 {
		return orb.Point{}, fmt.Errorf("%w: latitude %g out of range [-90, 90]", ErrInvalidInput, lat)
	}
	if lon < -180 || lon > 180 {
		return orb.Point{}, fmt.Errorf("%w: longitude %g out of range [-180, 180]", ErrInvalidInput, lon)
	}

	return orb.Point{lon, lat}, nil
}
