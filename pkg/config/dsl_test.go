package config

import (
	"testing"

	"github.com/matzehuels/baseline/pkg/errors"
)

func TestParseLine(t *testing.T) {
	b, err := ParseLine(`axis=price value=100 label="Avg" cell="$100" position=right line.stroke=#ff0000`)
	if err != nil {
		t.Fatalf("ParseLine() error: %v", err)
	}
	if b.Axis != "price" || b.Value != 100 || b.ValueLabel != "Avg" || b.CellLabel != "$100" || b.Position != "right" {
		t.Errorf("baseline = %+v", b)
	}
	if b.Style.Line.Stroke != "#ff0000" {
		t.Errorf("line stroke = %q, want #ff0000", b.Style.Line.Stroke)
	}
}

func TestParseLineStyles(t *testing.T) {
	b, err := ParseLine(`axis=cpu value=-2.5e1 line.width=2 line.dash=4,2 line.opacity=0.5 ` +
		`label.fill=steelblue label.size=12 label.weight=700 cell.family="Go Mono" cell.opacity=.8`)
	if err != nil {
		t.Fatalf("ParseLine() error: %v", err)
	}
	if b.Value != -25 {
		t.Errorf("Value = %v, want -25", b.Value)
	}
	l := b.Style.Line
	if l.StrokeWidth != 2 || l.StrokeDasharray != "4,2" || l.StrokeOpacity != 0.5 {
		t.Errorf("line style = %+v", l)
	}
	v := b.Style.ValueLabel
	if v.Fill != "steelblue" || v.FontSize != 12 || v.FontWeight != 700 {
		t.Errorf("value label style = %+v", v)
	}
	c := b.Style.CellLabel
	if c.FontFamily != "Go Mono" || c.Opacity != 0.8 {
		t.Errorf("cell label style = %+v", c)
	}
}

func TestParseLineDefaults(t *testing.T) {
	b, err := ParseLine(`axis=price`)
	if err != nil {
		t.Fatalf("ParseLine() error: %v", err)
	}
	s, err := b.Spec()
	if err != nil {
		t.Fatalf("Spec() error: %v", err)
	}
	if s.Value != 0 || s.Position != "left" {
		t.Errorf("spec = %+v", s)
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		code errors.Code
	}{
		{"syntax", `axis=`, errors.ErrCodeInvalidExpression},
		{"bad token", `axis=price value=@`, errors.ErrCodeInvalidExpression},
		{"unknown key", `axis=price colour=red`, errors.ErrCodeInvalidExpression},
		{"unknown group", `axis=price grid.fill=red`, errors.ErrCodeInvalidExpression},
		{"unknown text prop", `axis=price label.bogus=1`, errors.ErrCodeInvalidExpression},
		{"value not number", `axis=price value=high`, errors.ErrCodeInvalidExpression},
		{"weight not integer", `axis=price label.weight=1.5`, errors.ErrCodeInvalidExpression},
		{"missing axis", `value=3`, errors.ErrCodeInvalidAxis},
		{"bad position", `axis=price position=top`, errors.ErrCodeInvalidPosition},
		{"bad color", `axis=price line.stroke=notacolor!`, errors.ErrCodeInvalidExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.expr)
			if !errors.Is(err, tt.code) {
				t.Errorf("ParseLine(%q) error = %v, want code %v", tt.expr, err, tt.code)
			}
		})
	}
}
