package draw

import (
	"fmt"
	"strconv"
	"strings"
)

// TextStyle is the inline style of a label. Zero fields are unset: they are
// not emitted and do not override anything when merged. A numeric field can
// therefore not be overridden to 0; a label is hidden by leaving its text
// empty, not with Opacity 0.
type TextStyle struct {
	Fill          string  `toml:"fill" json:"fill,omitempty"`
	FontFamily    string  `toml:"font_family" json:"fontFamily,omitempty"`
	FontSize      float64 `toml:"font_size" json:"fontSize,omitempty"`
	FontWeight    int     `toml:"font_weight" json:"fontWeight,omitempty"`
	Opacity       float64 `toml:"opacity" json:"opacity,omitempty"`
	PointerEvents string  `toml:"pointer_events" json:"pointerEvents,omitempty"`
}

// LineStyle is the inline style of a stroked path. Zero fields are unset,
// as for TextStyle: StrokeWidth or StrokeOpacity 0 keeps the base value
// when merged. Use Stroke "none" to hide the line.
type LineStyle struct {
	Stroke          string  `toml:"stroke" json:"stroke,omitempty"`
	StrokeWidth     float64 `toml:"stroke_width" json:"strokeWidth,omitempty"`
	StrokeDasharray string  `toml:"stroke_dasharray" json:"strokeDasharray,omitempty"`
	StrokeOpacity   float64 `toml:"stroke_opacity" json:"strokeOpacity,omitempty"`
	PointerEvents   string  `toml:"pointer_events" json:"pointerEvents,omitempty"`
}

// Merge returns s with every set field of o applied on top.
func (s TextStyle) Merge(o TextStyle) TextStyle {
	return TextStyle{
		Fill:          pick(s.Fill, o.Fill),
		FontFamily:    pick(s.FontFamily, o.FontFamily),
		FontSize:      pick(s.FontSize, o.FontSize),
		FontWeight:    pick(s.FontWeight, o.FontWeight),
		Opacity:       pick(s.Opacity, o.Opacity),
		PointerEvents: pick(s.PointerEvents, o.PointerEvents),
	}
}

// Merge returns s with every set field of o applied on top.
func (s LineStyle) Merge(o LineStyle) LineStyle {
	return LineStyle{
		Stroke:          pick(s.Stroke, o.Stroke),
		StrokeWidth:     pick(s.StrokeWidth, o.StrokeWidth),
		StrokeDasharray: pick(s.StrokeDasharray, o.StrokeDasharray),
		StrokeOpacity:   pick(s.StrokeOpacity, o.StrokeOpacity),
		PointerEvents:   pick(s.PointerEvents, o.PointerEvents),
	}
}

func pick[T comparable](base, override T) T {
	var zero T
	if override == zero {
		return base
	}
	return override
}

// CSS renders the set fields as an inline style declaration list.
func (s TextStyle) CSS() string {
	var d decls
	d.add("fill", s.Fill)
	d.add("font-family", s.FontFamily)
	if s.FontSize != 0 {
		d.add("font-size", FormatNumber(s.FontSize)+"px")
	}
	if s.FontWeight != 0 {
		d.add("font-weight", strconv.Itoa(s.FontWeight))
	}
	if s.Opacity != 0 {
		d.add("opacity", FormatNumber(s.Opacity))
	}
	d.add("pointer-events", s.PointerEvents)
	return d.String()
}

// CSS renders the set fields as an inline style declaration list.
func (s LineStyle) CSS() string {
	var d decls
	d.add("stroke", s.Stroke)
	if s.StrokeWidth != 0 {
		d.add("stroke-width", FormatNumber(s.StrokeWidth))
	}
	d.add("stroke-dasharray", s.StrokeDasharray)
	if s.StrokeOpacity != 0 {
		d.add("stroke-opacity", FormatNumber(s.StrokeOpacity))
	}
	d.add("pointer-events", s.PointerEvents)
	return d.String()
}

// Dashes parses StrokeDasharray into dash and gap lengths. An empty or
// "none" dash array yields a solid line.
func (s LineStyle) Dashes() ([]float64, error) {
	raw := strings.TrimSpace(s.StrokeDasharray)
	if raw == "" || raw == "none" {
		return nil, nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	dashes := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid stroke-dasharray %q", s.StrokeDasharray)
		}
		dashes = append(dashes, v)
	}
	return dashes, nil
}

type decls []string

func (d *decls) add(prop, value string) {
	if value == "" {
		return
	}
	*d = append(*d, prop+":"+value)
}

func (d decls) String() string { return strings.Join(d, ";") }

// FormatNumber formats v in its shortest round-trip decimal form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
