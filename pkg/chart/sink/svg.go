package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/baseline/pkg/chart/draw"
)

// Option configures a frame shared by every sink.
type Option func(*frame)

type frame struct {
	margin     float64
	background string
	title      string
	scale      float64
}

// WithMargin pads the plotting area on every side.
func WithMargin(m float64) Option { return func(f *frame) { f.margin = max(0, m) } }

// WithBackground fills the document with a CSS color before drawing.
func WithBackground(color string) Option { return func(f *frame) { f.background = color } }

// WithTitle sets the document title (SVG <title>, PDF metadata).
func WithTitle(title string) Option { return func(f *frame) { f.title = title } }

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
// It has no effect on SVG and PDF output.
func WithScale(s float64) Option {
	return func(f *frame) {
		if s > 0 {
			f.scale = s
		}
	}
}

func newFrame(opts ...Option) frame {
	f := frame{scale: 2.0}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f frame) size(width, height float64) (float64, float64) {
	return width + 2*f.margin, height + 2*f.margin
}

// RenderSVG wraps groups in a standalone SVG document. width and height are
// the plotting area; the document grows by the margin on every side.
func RenderSVG(width, height float64, groups []*draw.Group, opts ...Option) []byte {
	f := newFrame(opts...)
	w, h := f.size(width, height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		draw.FormatNumber(w), draw.FormatNumber(h), draw.FormatNumber(w), draw.FormatNumber(h))

	if f.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", draw.EscapeXML(f.title))
	}
	if f.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", draw.EscapeXML(f.background))
	}

	plot := &draw.Group{Class: "plot", Translate: draw.Point{X: f.margin, Y: f.margin}}
	for _, g := range groups {
		plot.Add(g)
	}
	plot.WriteSVG(&buf)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
