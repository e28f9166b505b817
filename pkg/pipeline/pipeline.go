// Package pipeline turns a chart description into output documents.
//
// The CLI and the HTTP server both go through a [Runner] so that axis
// resolution, sink options, caching and observability behave the same on
// every entry point:
//
//	runner := pipeline.NewRunner(cache, logger)
//	res, err := runner.Execute(ctx, chart, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	png := res.Artifacts[pipeline.FormatPNG]
package pipeline

import (
	"strings"

	"github.com/matzehuels/baseline/pkg/errors"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// DefaultScale is the raster scale used when Options.Scale is zero.
const DefaultScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG: "image/svg+xml",
	FormatPNG: "image/png",
	FormatPDF: "application/pdf",
}

// Options controls a single Execute call.
type Options struct {
	// Formats to produce. Empty means svg.
	Formats []string

	// Scale is the PNG scale factor. Zero means DefaultScale.
	Scale float64

	// Strict turns baselines on unknown axes into an AXIS_NOT_FOUND error
	// instead of silently drawing nothing for them.
	Strict bool

	// Refresh skips cache reads; results are still written back.
	Refresh bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	return nil
}

// ParseFormats splits a comma-separated format list. An empty string means svg.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

// ValidateFormat checks that format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be svg, png or pdf)", format)
	}
	return nil
}

// ValidateFormats checks every format in the list.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Result holds the documents produced by Execute.
type Result struct {
	// Artifacts maps each requested format to its document.
	Artifacts map[string][]byte

	// Baselines is the number of baselines drawn.
	Baselines int

	// Unresolved lists axis IDs referenced by baselines but not defined
	// by the chart.
	Unresolved []string

	// CacheHits lists the formats served from the cache.
	CacheHits []string
}

// Cached reports whether format was served from the cache.
func (r *Result) Cached(format string) bool {
	for _, f := range r.CacheHits {
		if f == format {
			return true
		}
	}
	return false
}
