// Package mapgen renders zone collections as self-contained interactive
// Leaflet documents.
package mapgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/woozymasta/uaszones/assets"
	"github.com/woozymasta/uaszones/internal/ed269"
	"github.com/woozymasta/uaszones/internal/geo"
)

// Options control the rendered document.
type Options struct {
	Title       string
	TileURL     string
	Attribution string
	Zoom        int
	Interactive bool
}

// overlay is one drawn volume: a zone footprint with its altitude band.
type overlay struct {
	Name     string            `json:"name"`
	Geometry *geojson.Geometry `json:"geometry"`
	Lower    float64           `json:"lower"`
	LowerRef string            `json:"lowerRef"`
	Upper    float64           `json:"upper"`
	UpperRef string            `json:"upperRef"`
	Color    string            `json:"color"`
}

type pageData struct {
	Title       string
	TileURL     string
	Attribution string
	Zoom        int
	CenterLat   float64
	CenterLon   float64
	Zones       template.JS
	Interactive bool
}

var mapTpl = template.Must(template.New("map").Parse(assets.MapTemplate))

// Render produces the minified HTML map document for the collection.
func Render(c *ed269.Collection, opts Options) ([]byte, error) {
	overlays := collectOverlays(c)
	if len(overlays) == 0 {
		return nil, fmt.Errorf("%w: no drawable zone geometry", geo.ErrInvalidInput)
	}

	// higher zones first so the low, more restrictive ones end up on top
	sort.SliceStable(overlays, func(i, j int) bool {
		return overlays[i].Lower > overlays[j].Lower
	})

	center := viewCenter(overlays)

	zonesJSON, err := json.Marshal(overlays)
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		if title = c.Title(); title == "" {
			title = "UAS zones"
		}
	}
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 10
	}

	var buf bytes.Buffer
	err = mapTpl.Execute(&buf, pageData{
		Title:       title,
		TileURL:     opts.TileURL,
		Attribution: opts.Attribution,
		Zoom:        zoom,
		CenterLat:   center.Lat(),
		CenterLon:   center.Lon(),
		Zones:       template.JS(zonesJSON),
		Interactive: opts.Interactive,
	})
	if err != nil {
		return nil, err
	}

	return minifyDocument(buf.Bytes())
}

func collectOverlays(c *ed269.Collection) []overlay {
	var overlays []overlay

	for i := range c.Features {
		f := &c.Features[i]
		for _, vol := range f.Geometry {
			if vol.HorizontalProjection == nil {
				continue
			}
			overlays = append(overlays, overlay{
				Name:     f.Name(),
				Geometry: vol.HorizontalProjection,
				Lower:    vol.LowerLimit,
				LowerRef: vol.LowerVerticalReference,
				Upper:    vol.UpperLimit,
				UpperRef: vol.UpperVerticalReference,
				Color:    colorFor(vol.LowerLimit, vol.LowerVerticalReference),
			})
		}
	}

	return overlays
}

// colorFor maps the lower altitude limit to the display color used by the
// authority map conventions.
func colorFor(lower float64, lowerRef string) string {
	switch {
	case lowerRef == "AGL" && lower == 0:
		return "red"
	case lower == 25:
		return "orange"
	case lower == 45:
		return "yellow"
	case lower == 60:
		return "lightblue"
	default:
		return "purple"
	}
}

// viewCenter returns the center of the bounding box of all overlays.
func viewCenter(overlays []overlay) orb.Point {
	bound := overlays[0].Geometry.Geometry().Bound()
	for _, o := range overlays[1:] {
		bound = bound.Union(o.Geometry.Geometry().Bound())
	}

	return bound.Center()
}

// minifyDocument squeezes the rendered page, inline script and style
// included, the same way the asset pipeline does.
func minifyDocument(src []byte) ([]byte, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", minhtml.Minify)
	m.AddFunc("text/javascript", js.Minify)

	return m.Bytes("text/html", src)
}
