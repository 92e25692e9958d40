// Package assets embeds the static resources of the rendered map document.
package assets

import _ "embed"

// MapTemplate is the HTML template of the self-contained zone map.
//
//go:embed map.html.tpl
var MapTemplate string
