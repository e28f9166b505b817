// Package fonts provides the embedded fonts used for raster and PDF output.
//
// SVG output leaves font selection to the viewer. PNG and PDF output must
// embed real glyphs, so a CSS font-family list is resolved to one of the Go
// font families shipped with golang.org/x/image. The fonts are compiled into
// the binary, making output identical on every machine.
package fonts

import (
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Set is one family in its regular and bold weights (TTF data).
type Set struct {
	Name    string
	Regular []byte
	Bold    []byte
}

// Embedded families.
var (
	Sans = Set{Name: "Go", Regular: goregular.TTF, Bold: gobold.TTF}
	Mono = Set{Name: "Go Mono", Regular: gomono.TTF, Bold: gomonobold.TTF}
)

// BoldWeight is the lowest CSS font-weight drawn with the bold face.
const BoldWeight = 600

var byName = map[string]Set{
	"go":           Sans,
	"sans-serif":   Sans,
	"system-ui":    Sans,
	"go mono":      Mono,
	"monospace":    Mono,
	"ui-monospace": Mono,
}

// Lookup resolves a CSS font-family list such as "'Go Mono', monospace" to
// the first embedded family it names. Unknown or empty lists resolve to Sans.
func Lookup(family string) Set {
	for _, name := range strings.Split(family, ",") {
		name = strings.ToLower(strings.Trim(strings.TrimSpace(name), `"'`))
		if s, ok := byName[name]; ok {
			return s
		}
	}
	return Sans
}
