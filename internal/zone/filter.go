// Package zone implements selection, comparison and interactive session
// logic over loaded UAS zone collections.
package zone

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"github.com/woozymasta/uaszones/internal/ed269"
	"github.com/woozymasta/uaszones/internal/geo"
)

// Filter returns the subset of c whose zones intersect a circle of radiusKm
// around center. Feature order is preserved and c is never mutated. A zero
// radius selects only zones containing the exact center point.
func Filter(c *ed269.Collection, center orb.Point, radiusKm float64) (*ed269.Collection, error) {
	if radiusKm < 0 {
		return nil, fmt.Errorf("%w: radius %g km must not be negative", geo.ErrInvalidInput, radiusKm)
	}
	if lat := center.Lat(); lat < -90 || lat > 90 {
		return nil, fmt.Errorf("%w: latitude %g out of range [-90, 90]", geo.ErrInvalidInput, lat)
	}
	if lon := center.Lon(); lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: longitude %g out of range [-180, 180]", geo.ErrInvalidInput, lon)
	}

	matched := make([]ed269.Feature, 0, len(c.Features))

	for i := range c.Features {
		f := &c.Features[i]
		for _, vol := range f.Geometry {
			if geo.IntersectsCircle(vol.Projection(), center, radiusKm) {
				matched = append(matched, f.Clone())
				break
			}
		}
	}

	return c.WithFeatures(matched), nil
}

// rcCompatNote replaces date-bounded applicability windows that remote
// controller imports cannot digest.
const rcCompatNote = "[Date/Time removed for RC compatibility]"

// StripDateApplicability removes the applicability attribute from every
// feature whose windows carry start or end date-times and marks the feature
// description accordingly. It returns the number of features changed.
func StripDateApplicability(c *ed269.Collection) int {
	stripped := 0

	for i := range c.Features {
		f := &c.Features[i]

		raw, ok := f.Properties.Get("applicability")
		if !ok {
			continue
		}

		var windows []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &windows); err != nil {
			continue
		}

		for _, w := range windows {
			_, hasStart := w["startDateTime"]
			_, hasEnd := w["endDateTime"]
			if hasStart || hasEnd {
				f.Properties.Delete("applicability")
				f.Properties.SetString("description", rcCompatNote)
				stripped++
				break
			}
		}
	}

	return stripped
}

// Annotate rewrites the dataset title and description the way the authority
// tooling labels a cropped export, embedding per-reason zone counts.
func Annotate(c *ed269.Collection) {
	if t := c.Title(); t != "" {
		c.SetTitle(t + " - cropped")
	}

	d := c.Description()
	if d == "" {
		return
	}

	var atm09, nfz, notam int
	for i := range c.Features {
		reason, _ := c.Features[i].Properties.GetString("otherReasonInfo")
		switch reason {
		case "ATM09":
			atm09++
		case "NFZ":
			nfz++
		case "NOTAM":
			notam++
		}
	}

	base := strings.TrimSpace(strings.SplitN(d, " - GeoZones", 2)[0])
	c.SetDescription(fmt.Sprintf(
		"%s - cropped - GeoZones[%d] - ATM09[%d]/NFZ[%d]/NOTAM[%d]",
		base, len(c.Features), atm09, nfz, notam,
	))
}
