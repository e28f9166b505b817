// Package sink turns rendered chart groups into output documents.
//
// # Overview
//
// A "sink" takes the [draw.Group] values produced by the chart packages and
// writes a complete document around them. This package provides:
//
//   - SVG: a standalone document embedding the groups verbatim
//   - PNG: a raster image drawn with tdewolff/canvas
//   - PDF: a single-page vector document drawn with tdewolff/canvas
//
// The width and height passed to every sink are the plotting area. Margins
// are added around it, so a group translated to (0, y) lands at
// (margin, margin+y) in the document.
//
// Basic usage:
//
//	groups := row.Render(specs)
//	svg := sink.RenderSVG(row.Width, row.Height, groups,
//	    sink.WithMargin(10),
//	    sink.WithTitle("Price"),
//	)
//
// # Options
//
//   - [WithMargin]: Pad the plotting area on every side
//   - [WithBackground]: Fill the document before drawing
//   - [WithTitle]: Document title
//   - [WithScale]: Raster scale factor (PNG only)
//
// # Raster Output
//
// [RenderPNG] and [RenderPDF] walk the same element tree as the SVG encoder
// and draw it with github.com/tdewolff/canvas. Text uses the Go fonts
// (golang.org/x/image/font/gofont); weights of 600 and above use the bold
// face, everything lighter uses the regular one.
//
// [draw.Group]: github.com/matzehuels/baseline/pkg/chart/draw.Group
package sink
