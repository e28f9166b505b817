package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/baseline/pkg/chart/draw"
	"github.com/matzehuels/baseline/pkg/errors"
	"github.com/matzehuels/baseline/pkg/fonts"
)

// One canvas unit is one CSS pixel; font faces are sized in points.
const ptPerUnit = 72.0 / 25.4

var (
	familyMu sync.Mutex
	families = map[string]*canvas.FontFamily{}
)

// family loads the canvas family for a CSS font-family list once.
func family(cssFamily string) (*canvas.FontFamily, error) {
	set := fonts.Lookup(cssFamily)

	familyMu.Lock()
	defer familyMu.Unlock()
	if f, ok := families[set.Name]; ok {
		return f, nil
	}
	f := canvas.NewFontFamily(set.Name)
	if err := f.LoadFont(set.Regular, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load %s regular: %w", set.Name, err)
	}
	if err := f.LoadFont(set.Bold, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("load %s bold: %w", set.Name, err)
	}
	families[set.Name] = f
	return f, nil
}

// RenderPNG rasterises groups at the frame scale (default 2x).
func RenderPNG(width, height float64, groups []*draw.Group, opts ...Option) ([]byte, error) {
	f := newFrame(opts...)
	c, err := paint(width, height, groups, f)
	if err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPMM(f.scale), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF renders groups as a single-page PDF sized to the frame.
func RenderPDF(width, height float64, groups []*draw.Group, opts ...Option) ([]byte, error) {
	f := newFrame(opts...)
	c, err := paint(width, height, groups, f)
	if err != nil {
		return nil, err
	}

	w, h := f.size(width, height)
	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	writer.SetInfo(f.title, "", "", "", "baseline")
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func paint(width, height float64, groups []*draw.Group, f frame) (*canvas.Canvas, error) {
	w, h := f.size(width, height)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	if f.background != "" {
		bg, err := parseColor(f.background, 1)
		if err != nil {
			return nil, err
		}
		ctx.SetFillColor(bg)
		ctx.SetStrokeColor(color.RGBA{})
		ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
	}

	origin := draw.Point{X: f.margin, Y: f.margin}
	for _, g := range groups {
		var drawErr error
		g.Walk(func(e draw.Element, off draw.Point) {
			if drawErr != nil {
				return
			}
			off = draw.Point{X: off.X + origin.X, Y: off.Y + origin.Y}
			switch el := e.(type) {
			case *draw.Polyline:
				drawErr = drawPolyline(ctx, el, off)
			case *draw.Text:
				drawErr = drawText(ctx, el, off)
			}
		})
		if drawErr != nil {
			return nil, drawErr
		}
	}
	return c, nil
}

func drawPolyline(ctx *canvas.Context, p *draw.Polyline, off draw.Point) error {
	if len(p.Points) < 2 {
		return nil
	}
	stroke, err := parseColor(p.Style.Stroke, p.Style.StrokeOpacity)
	if err != nil {
		return err
	}
	dashes, err := p.Style.Dashes()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "line style")
	}
	width := p.Style.StrokeWidth
	if width <= 0 {
		width = 1
	}

	path := &canvas.Path{}
	first := p.Points[0]
	path.MoveTo(0, 0)
	for _, pt := range p.Points[1:] {
		path.LineTo(pt.X-first.X, pt.Y-first.Y)
	}

	ctx.SetFillColor(color.RGBA{})
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(width)
	ctx.SetDashes(0, dashes...)
	ctx.DrawPath(off.X+first.X, off.Y+first.Y, path)
	ctx.SetDashes(0)
	return nil
}

func drawText(ctx *canvas.Context, t *draw.Text, off draw.Point) error {
	fam, err := family(t.Style.FontFamily)
	if err != nil {
		return err
	}
	fill, err := parseColor(t.Style.Fill, t.Style.Opacity)
	if err != nil {
		return err
	}
	size := t.Style.FontSize
	if size <= 0 {
		size = 11
	}

	style := canvas.FontRegular
	if t.Style.FontWeight >= fonts.BoldWeight {
		style = canvas.FontBold
	}
	face := fam.Face(size*ptPerUnit, fill, style, canvas.FontNormal)

	var x float64
	if t.X != nil {
		x = *t.X
	}
	line := canvas.NewTextLine(face, t.Content, textAlign(t.Anchor))
	ctx.DrawText(off.X+x, off.Y+t.Y, line)
	return nil
}

func textAlign(a draw.Anchor) canvas.TextAlign {
	switch a {
	case draw.AnchorMiddle:
		return canvas.Center
	case draw.AnchorEnd:
		return canvas.Right
	default:
		return canvas.Left
	}
}

// parseColor resolves a CSS hex or named color. An empty color is black,
// "none" is transparent. A positive opacity scales the result.
func parseColor(s string, opacity float64) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if err := errors.ValidateColor(s); err != nil {
		return color.RGBA{}, err
	}

	var c color.RGBA
	switch {
	case s == "":
		c = color.RGBA{A: 0xff}
	case s == "none" || s == "transparent":
		return color.RGBA{}, nil
	case strings.HasPrefix(s, "#"):
		c = canvas.Hex(s)
	default:
		named, ok := colornames.Map[s]
		if !ok {
			return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "unknown color name: %q", s)
		}
		c = named
	}

	if opacity > 0 && opacity < 1 {
		c = color.RGBA{
			R: uint8(float64(c.R) * opacity),
			G: uint8(float64(c.G) * opacity),
			B: uint8(float64(c.B) * opacity),
			A: uint8(float64(c.A) * opacity),
		}
	}
	return c, nil
}
