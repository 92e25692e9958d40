package zone

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/uaszones/internal/ed269"
	"github.com/woozymasta/uaszones/internal/geo"
)

// milanCenter is 45°27′55″N 9°11′20″E in decimal degrees.
var milanCenter = orb.Point{9.0 + 11.0/60 + 20.0/3600, 45.0 + 27.0/60 + 55.0/3600}

func mustCollection(t *testing.T, doc string) *ed269.Collection {
	t.Helper()

	c, err := ed269.Decode([]byte(doc))
	require.NoError(t, err)
	return c
}

func zonesDoc() string {
	return `{"title":"Italy UAS GeoZones","description":"Italy - GeoZones[3]","features":[` +
		// polygon containing the Milan reference point
		`{"identifier":"IT-MI01","name":"Milano CTR","otherReasonInfo":"NFZ","geometry":[{"lowerLimit":0,"lowerVerticalReference":"AGL","upperLimit":500,"upperVerticalReference":"AMSL","horizontalProjection":{"type":"Polygon","coordinates":[[[9.1,45.4],[9.3,45.4],[9.3,45.6],[9.1,45.6],[9.1,45.4]]]}}]},` +
		// point zone near Rome, ~480 km away
		`{"identifier":"IT-RM01","name":"Roma heliport","otherReasonInfo":"ATM09","geometry":[{"lowerLimit":25,"lowerVerticalReference":"AMSL","upperLimit":120,"upperVerticalReference":"AMSL","horizontalProjection":{"type":"Point","coordinates":[12.5,41.9]}}]},` +
		// polygon whose nearest vertex is ~21 km north of the reference point
		`{"identifier":"IT-MI02","name":"Bergamo strip","otherReasonInfo":"NOTAM","geometry":[{"lowerLimit":45,"lowerVerticalReference":"AMSL","upperLimit":300,"upperVerticalReference":"AMSL","horizontalProjection":{"type":"Polygon","coordinates":[[[9.2,45.66],[9.5,45.66],[9.5,45.9],[9.2,45.9],[9.2,45.66]]]}}]}` +
		`]}`
}

func featureIDs(c *ed269.Collection) []string {
	ids := make([]string, 0, len(c.Features))
	for i := range c.Features {
		ids = append(ids, c.Features[i].Identifier)
	}
	return ids
}

func TestFilterByRadius(t *testing.T) {
	c := mustCollection(t, zonesDoc())

	filtered, err := Filter(c, milanCenter, 30)
	require.NoError(t, err)

	assert.Equal(t, []string{"IT-MI01", "IT-MI02"}, featureIDs(filtered))

	// input stays intact
	assert.Len(t, c.Features, 3)
	assert.Equal(t, "Italy UAS GeoZones", c.Title())
}

func TestFilterPreservesOrder(t *testing.T) {
	c := mustCollection(t, zonesDoc())

	// a radius matching the first and third zone but not the second
	filtered, err := Filter(c, milanCenter, 30)
	require.NoError(t, err)

	assert.Equal(t, []string{"IT-MI01", "IT-MI02"}, featureIDs(filtered))
}

func TestFilterIsIdempotent(t *testing.T) {
	c := mustCollection(t, zonesDoc())

	once, err := Filter(c, milanCenter, 30)
	require.NoError(t, err)

	twice, err := Filter(once, milanCenter, 30)
	require.NoError(t, err)

	assert.Equal(t, featureIDs(once), featureIDs(twice))
}

func TestFilterSmallRadiusExcludesVertexZones(t *testing.T) {
	c := mustCollection(t, zonesDoc())

	filtered, err := Filter(c, milanCenter, 15)
	require.NoError(t, err)

	// only the polygon containing the center survives
	assert.Equal(t, []string{"IT-MI01"}, featureIDs(filtered))
}

func TestFilterZeroRadius(t *testing.T) {
	doc := `{"features":[` +
		`{"identifier":"PT","geometry":[{"lowerLimit":0,"upperLimit":10,"horizontalProjection":{"type":"Point","coordinates":[9.2,45.5]}}]},` +
		`{"identifier":"PG","geometry":[{"lowerLimit":0,"upperLimit":10,"horizontalProjection":{"type":"Polygon","coordinates":[[[12.3,41.7],[12.6,41.7],[12.6,42.0],[12.3,42.0],[12.3,41.7]]]}}]}` +
		`]}`
	c := mustCollection(t, doc)

	filtered, err := Filter(c, orb.Point{9.2, 45.5}, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"PT"}, featureIDs(filtered))
}

func TestFilterInvalidInput(t *testing.T) {
	c := mustCollection(t, zonesDoc())

	_, err := Filter(c, milanCenter, -1)
	assert.ErrorIs(t, err, geo.ErrInvalidInput)

	_, err = Filter(c, orb.Point{9.2, 95}, 10)
	assert.ErrorIs(t, err, geo.ErrInvalidInput)

	_, err = Filter(c, orb.Point{185, 45.5}, 10)
	assert.ErrorIs(t, err, geo.ErrInvalidInput)
}

func TestStripDateApplicability(t *testing.T) {
	doc := `{"features":[` +
		`{"identifier":"A","applicability":[{"startDateTime":"2024-01-01T00:00:00Z","endDateTime":"2024-02-01T00:00:00Z"}],"geometry":[{"lowerLimit":0,"upperLimit":10,"horizontalProjection":{"type":"Point","coordinates":[9.2,45.5]}}]},` +
		`{"identifier":"B","applicability":[{"permanent":"YES"}],"geometry":[{"lowerLimit":0,"upperLimit":10,"horizontalProjection":{"type":"Point","coordinates":[9.3,45.5]}}]}` +
		`]}`
	c := mustCollection(t, doc)

	n := StripDateApplicability(c)
	assert.Equal(t, 1, n)

	a := &c.Features[0]
	assert.False(t, a.Properties.Has("applicability"))
	desc, _ := a.Properties.GetString("description")
	assert.Equal(t, "[Date/Time removed for RC compatibility]", desc)

	// permanent windows stay untouched
	assert.True(t, c.Features[1].Properties.Has("applicability"))
}

func TestAnnotate(t *testing.T) {
	c := mustCollection(t, zonesDoc())

	filtered, err := Filter(c, milanCenter, 1000)
	require.NoError(t, err)

	Annotate(filtered)

	assert.Equal(t, "Italy UAS GeoZones - cropped", filtered.Title())
	assert.Equal(t, "Italy - cropped - GeoZones[3] - ATM09[1]/NFZ[1]/NOTAM[1]", filtered.Description())

	// the source collection keeps its labels
	assert.Equal(t, "Italy UAS GeoZones", c.Title())
}
