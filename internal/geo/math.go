// Package geo provides great-circle math and coordinate parsing for
// geographic zone geometries.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// EarthRadiusKm is the mean Earth radius of the spherical approximation.
const EarthRadiusKm = 6371.0

const degToRad = math.Pi / 180.0

// DistanceKm returns the haversine great-circle distance in kilometers
// between two lon/lat points.
func DistanceKm(a, b orb.Point) float64 {
	latA := a.Lat() * degToRad
	latB := b.Lat() * degToRad
	dLat := (b.Lat() - a.Lat()) * degToRad
	dLon := (b.Lon() - a.Lon()) * degToRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// IntersectsCircle reports whether the geometry intersects a circle of
// radiusKm around center. A zone matches when any of its vertices lies
// within the radius, when its boundary passes through the circle, or when
// the center itself is inside the zone. A zero radius matches only
// geometries containing the exact center point.
func IntersectsCircle(g orb.Geometry, center orb.Point, radiusKm float64) bool {
	if g == nil || radiusKm < 0 {
		return false
	}

	switch geom := g.(type) {
	case orb.Point:
		if radiusKm == 0 {
			return geom == center
		}
		return DistanceKm(geom, center) <= radiusKm

	case orb.MultiPoint:
		for _, p := range geom {
			if IntersectsCircle(p, center, radiusKm) {
				return true
			}
		}

	case orb.LineString:
		return polylineWithin(geom, center, radiusKm)

	case orb.MultiLineString:
		for _, ls := range geom {
			if polylineWithin(ls, center, radiusKm) {
				return true
			}
		}

	case orb.Ring:
		return IntersectsCircle(orb.Polygon{geom}, center, radiusKm)

	case orb.Polygon:
		if planar.PolygonContains(geom, center) {
			return true
		}
		if radiusKm == 0 {
			return false
		}
		for _, ring := range geom {
			if polylineWithin(orb.LineString(ring), center, radiusKm) {
				return true
			}
		}

	case orb.MultiPolygon:
		for _, poly := range geom {
			if IntersectsCircle(poly, center, radiusKm) {
				return true
			}
		}

	case orb.Collection:
		for _, sub := range geom {
			if IntersectsCircle(sub, center, radiusKm) {
				return true
			}
		}
	}

	return false
}

// polylineWithin reports whether any point of the polyline lies within
// radiusKm of center, checking both vertices and edge segments.
func polylineWithin(ls orb.LineString, center orb.Point, radiusKm float64) bool {
	for i, p := range ls {
		if DistanceKm(p, center) <= radiusKm {
			return true
		}
		if i > 0 && segmentDistanceKm(ls[i-1], p, center) <= radiusKm {
			return true
		}
	}

	return false
}

// segmentDistanceKm returns the distance from p to the segment a-b using a
// local equirectangular projection around p. The flat-plane approximation
// is accurate at the radii used for zone selection (tens of kilometers).
func segmentDistanceKm(a, b, p orb.Point) float64 {
	cosLat := math.Cos(p.Lat() * degToRad)

	ax := (a.Lon() - p.Lon()) * cosLat
	ay := a.Lat() - p.Lat()
	bx := (b.Lon() - p.Lon()) * cosLat
	by := b.Lat() - p.Lat()

	dx := bx - ax
	dy := by - ay

	t := 0.0
	if l2 := dx*dx + dy*dy; l2 > 0 {
		t = -(ax*dx + ay*dy) / l2
		t = math.Max(0, math.Min(1, t))
	}

	nx := ax + t*dx
	ny := ay + t*dy

	return math.Sqrt(nx*nx+ny*ny) * degToRad * EarthRadiusKm
}
