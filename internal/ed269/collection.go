// Package ed269 models UAS geographical zone datasets in the ED-269
// exchange format and reads and writes them as GeoJSON-style documents.
package ed269

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/woozymasta/uaszones/internal/geo"
)

// Volume is one airspace volume of a zone: an altitude band plus its
// horizontal projection on the ground.
type Volume struct {
	UomDimensions          string            `json:"uomDimensions,omitempty"`
	LowerLimit             float64           `json:"lowerLimit"`
	LowerVerticalReference string            `json:"lowerVerticalReference,omitempty"`
	UpperLimit             float64           `json:"upperLimit"`
	UpperVerticalReference string            `json:"upperVerticalReference,omitempty"`
	HorizontalProjection   *geojson.Geometry `json:"horizontalProjection,omitempty"`
}

// Projection returns the volume footprint as an orb geometry, nil when the
// volume has none.
func (v Volume) Projection() orb.Geometry {
	if v.HorizontalProjection == nil {
		return nil
	}
	return v.HorizontalProjection.Geometry()
}

// Feature is one zone record. Identifier and Geometry are decoded views of
// the corresponding attributes; Properties holds every attribute of the
// source object verbatim and in order, so untouched features round-trip
// byte-for-byte. Features are treated as immutable once loaded.
type Feature struct {
	Identifier string
	Geometry   []Volume
	Properties Properties
}

// Name returns the zone display name, or a placeholder.
func (f *Feature) Name() string {
	if name, ok := f.Properties.GetString("name"); ok && name != "" {
		return name
	}
	return "Unnamed zone"
}

// Clone returns an independent copy safe to annotate without touching the
// source collection.
func (f *Feature) Clone() Feature {
	c := Feature{
		Identifier: f.Identifier,
		Geometry:   make([]Volume, len(f.Geometry)),
		Properties: f.Properties.Clone(),
	}
	copy(c.Geometry, f.Geometry)

	return c
}

// Equal reports whether two features carry identical attributes, geometry
// included.
func (f *Feature) Equal(o *Feature) bool {
	return f.Properties.Equal(&o.Properties)
}

// UnmarshalJSON decodes the feature object, keeping all attributes in the
// ordered bag and materializing the identifier and geometry views.
func (f *Feature) UnmarshalJSON(data []byte) error {
	if err := f.Properties.UnmarshalJSON(data); err != nil {
		return err
	}

	if raw, ok := f.Properties.Get("identifier"); ok {
		// identifiers are strings in ED-269; tolerate anything else as absent
		_ = json.Unmarshal(raw, &f.Identifier)
	}

	if raw, ok := f.Properties.Get("geometry"); ok {
		if err := json.Unmarshal(raw, &f.Geometry); err != nil {
			return fmt.Errorf("%w: zone %q geometry: %v", geo.ErrInvalidInput, f.Identifier, err)
		}
	}

	return nil
}

// MarshalJSON writes the feature exactly as loaded, attribute order intact.
func (f Feature) MarshalJSON() ([]byte, error) {
	return f.Properties.MarshalJSON()
}

// Collection is an ordered set of zone features plus dataset-level
// metadata. Filtering produces new collections; a loaded collection is
// never mutated in place.
type Collection struct {
	Meta     Properties // top-level keys except "features", in order
	Features []Feature

	featuresPos int // position of the "features" key in the source object
}

// WithFeatures returns a new collection carrying the given features and a
// copy of this collection's metadata.
func (c *Collection) WithFeatures(features []Feature) *Collection {
	return &Collection{
		Meta:        c.Meta.Clone(),
		Features:    features,
		featuresPos: c.featuresPos,
	}
}

// Title returns the dataset title attribute, empty when absent.
func (c *Collection) Title() string {
	s, _ := c.Meta.GetString("title")
	return s
}

// SetTitle updates the dataset title attribute.
func (c *Collection) SetTitle(s string) {
	c.Meta.SetString("title", s)
}

// Description returns the dataset description attribute, empty when absent.
func (c *Collection) Description() string {
	s, _ := c.Meta.GetString("description")
	return s
}

// SetDescription updates the dataset description attribute.
func (c *Collection) SetDescription(s string) {
	c.Meta.SetString("description", s)
}

// UnmarshalJSON decodes the dataset object, splitting the features array
// from the remaining metadata while remembering where it sat.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var bag Properties
	if err := bag.UnmarshalJSON(data); err != nil {
		return err
	}

	raw, ok := bag.Get("features")
	if !ok {
		return fmt.Errorf("missing \"features\" member")
	}

	c.featuresPos = 0
	for i, k := range bag.Keys() {
		if k == "features" {
			c.featuresPos = i
			break
		}
	}
	bag.Delete("features")
	c.Meta = bag

	c.Features = nil
	if err := json.Unmarshal(raw, &c.Features); err != nil {
		return err
	}

	return nil
}

// MarshalJSON writes the dataset with metadata in source order and the
// features array back at its original position.
func (c Collection) MarshalJSON() ([]byte, error) {
	features, err := json.Marshal(c.Features)
	if err != nil {
		return nil, err
	}

	keys := c.Meta.Keys()
	pos := c.featuresPos
	if pos > len(keys) {
		pos = len(keys)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	wrote := 0
	writeSep := func() {
		if wrote > 0 {
			buf.WriteByte(',')
		}
		wrote++
	}

	for i := 0; i <= len(keys); i++ {
		if i == pos {
			writeSep()
			buf.WriteString(`"features":`)
			buf.Write(features)
		}
		if i == len(keys) {
			break
		}

		writeSep()
		kb, err := json.Marshal(keys[i])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		raw, _ := c.Meta.Get(keys[i])
		buf.Write(raw)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
