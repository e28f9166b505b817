package draw

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// SVG encodes g as an SVG fragment.
func (g *Group) SVG() []byte {
	var buf bytes.Buffer
	g.WriteSVG(&buf)
	return buf.Bytes()
}

// WriteSVG appends the SVG fragment for g to buf.
func (g *Group) WriteSVG(buf *bytes.Buffer) {
	g.writeSVG(buf, 0)
}

func (g *Group) writeSVG(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	buf.WriteString("<g")
	attr(buf, "class", g.Class)
	attr(buf, "transform", g.TransformAttr())
	if len(g.Children) == 0 {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">\n")
	for _, child := range g.Children {
		child.writeSVG(buf, depth+1)
	}
	indent(buf, depth)
	buf.WriteString("</g>\n")
}

// TransformAttr is the transform attribute value.
func (g *Group) TransformAttr() string {
	return fmt.Sprintf("translate(%s %s)", FormatNumber(g.Translate.X), FormatNumber(g.Translate.Y))
}

func (p *Polyline) writeSVG(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	buf.WriteString("<polyline")
	attr(buf, "points", p.PointsAttr())
	attr(buf, "style", p.Style.CSS())
	buf.WriteString("/>\n")
}

// PointsAttr is the points attribute value: "x0 y0 x1 y1 ...".
func (p *Polyline) PointsAttr() string {
	parts := make([]string, 0, 2*len(p.Points))
	for _, pt := range p.Points {
		parts = append(parts, FormatNumber(pt.X), FormatNumber(pt.Y))
	}
	return strings.Join(parts, " ")
}

func (t *Text) writeSVG(buf *bytes.Buffer, depth int) {
	indent(buf, depth)
	buf.WriteString("<text")
	if t.X != nil {
		attr(buf, "x", FormatNumber(*t.X))
	}
	attr(buf, "y", FormatNumber(t.Y))
	attr(buf, "text-anchor", string(t.Anchor))
	attr(buf, "style", t.Style.CSS())
	buf.WriteString(">")
	buf.WriteString(EscapeXML(t.Content))
	buf.WriteString("</text>\n")
}

func attr(buf *bytes.Buffer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(buf, ` %s="%s"`, name, EscapeXML(value))
}

func indent(buf *bytes.Buffer, depth int) {
	for range depth + 1 {
		buf.WriteString("  ")
	}
}

// EscapeXML escapes s for use in text content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
