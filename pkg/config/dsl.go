package config

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/baseline/pkg/chart/draw"
	"github.com/matzehuels/baseline/pkg/errors"
)

var (
	lineLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{4}|[0-9A-Fa-f]{3})\b`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:[eE][-+]?\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[.=,]`},
	})

	lineParser = participle.MustBuild[lineExpr](
		participle.Lexer(lineLexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
	)
)

// lineExpr is a whitespace separated list of key=value assignments.
type lineExpr struct {
	Fields []*assignment `parser:"@@*"`
}

type assignment struct {
	Pos   lexer.Position
	Key   []string `parser:"@Ident ( '.' @Ident )*"`
	Value *literal `parser:"'=' @@"`
}

type literal struct {
	Numbers []float64 `parser:"  @Number ( ',' @Number )*"`
	Color   *string   `parser:"| @Color"`
	String  *string   `parser:"| @String"`
	Ident   *string   `parser:"| @Ident"`
}

func (l *literal) text() string {
	switch {
	case l.String != nil:
		return *l.String
	case l.Ident != nil:
		return *l.Ident
	case l.Color != nil:
		return *l.Color
	}
	parts := make([]string, len(l.Numbers))
	for i, n := range l.Numbers {
		parts[i] = draw.FormatNumber(n)
	}
	return strings.Join(parts, ",")
}

func (l *literal) number() (float64, bool) {
	if len(l.Numbers) == 1 {
		return l.Numbers[0], true
	}
	return 0, false
}

// ParseLine parses a one-line baseline expression:
//
//	axis=price value=100 label="Avg" cell="$100" position=right line.stroke=#ff0000
//
// Keys: axis, value, label (value_label), cell (cell_label), position,
// line.{stroke,width,dash,opacity} and {label,cell}.{fill,size,weight,family,opacity}.
// The result is validated like a baseline from a chart file.
func ParseLine(expr string) (Baseline, error) {
	ast, err := lineParser.ParseString("", expr)
	if err != nil {
		return Baseline{}, errors.Wrap(errors.ErrCodeInvalidExpression, err, "parse %q", expr)
	}

	var b Baseline
	for _, a := range ast.Fields {
		if err := b.assign(a); err != nil {
			return Baseline{}, err
		}
	}
	if err := b.Validate(); err != nil {
		return Baseline{}, err
	}
	return b, nil
}

func (b *Baseline) assign(a *assignment) error {
	key := strings.ToLower(strings.Join(a.Key, "."))
	v := a.Value

	bad := func(want string) error {
		return errors.New(errors.ErrCodeInvalidExpression, "%s: %s expects %s, got %q", a.Pos, key, want, v.text())
	}
	num := func(dst *float64) error {
		n, ok := v.number()
		if !ok {
			return bad("a number")
		}
		*dst = n
		return nil
	}

	switch key {
	case "axis":
		b.Axis = v.text()
	case "value":
		return num(&b.Value)
	case "label", "value_label":
		b.ValueLabel = v.text()
	case "cell", "cell_label":
		b.CellLabel = v.text()
	case "position":
		b.Position = v.text()
	case "line.stroke":
		b.Style.Line.Stroke = v.text()
	case "line.width":
		return num(&b.Style.Line.StrokeWidth)
	case "line.dash":
		b.Style.Line.StrokeDasharray = v.text()
	case "line.opacity":
		return num(&b.Style.Line.StrokeOpacity)
	default:
		part, prop, ok := strings.Cut(key, ".")
		if !ok {
			return unknownKey(a.Pos, key)
		}
		var ts *draw.TextStyle
		switch part {
		case "label":
			ts = &b.Style.ValueLabel
		case "cell":
			ts = &b.Style.CellLabel
		default:
			return unknownKey(a.Pos, key)
		}
		return assignText(ts, prop, v, bad)
	}
	return nil
}

func assignText(ts *draw.TextStyle, prop string, v *literal, bad func(string) error) error {
	switch prop {
	case "fill":
		ts.Fill = v.text()
	case "family":
		ts.FontFamily = v.text()
	case "size":
		n, ok := v.number()
		if !ok {
			return bad("a number")
		}
		ts.FontSize = n
	case "weight":
		n, ok := v.number()
		if !ok || n != float64(int(n)) {
			return bad("an integer")
		}
		ts.FontWeight = int(n)
	case "opacity":
		n, ok := v.number()
		if !ok {
			return bad("a number")
		}
		ts.Opacity = n
	default:
		return errors.New(errors.ErrCodeInvalidExpression, "unknown text property %s", strconv.Quote(prop))
	}
	return nil
}

func unknownKey(pos lexer.Position, key string) error {
	return errors.New(errors.ErrCodeInvalidExpression, "%s: unknown key %q", pos, key)
}
