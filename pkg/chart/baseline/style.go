package baseline

import "github.com/matzehuels/baseline/pkg/chart/draw"

const (
	labelColor = "#8B7E7E"
	lineColor  = "#626262"
)

// Style holds the per-part style overrides of a baseline.
type Style struct {
	ValueLabel draw.TextStyle `toml:"value_label" json:"valueLabel,omitzero"`
	CellLabel  draw.TextStyle `toml:"cell_label" json:"cellLabel,omitzero"`
	Line       draw.LineStyle `toml:"line" json:"line,omitzero"`
}

// DefaultStyle returns the built-in styles: light muted-grey labels and a
// dashed grey line, none of which capture pointer events.
func DefaultStyle() Style {
	label := draw.TextStyle{
		Fill:          labelColor,
		FontWeight:    100,
		FontSize:      11,
		PointerEvents: "none",
	}
	return Style{
		ValueLabel: label,
		CellLabel:  label,
		Line: draw.LineStyle{
			Stroke:          lineColor,
			StrokeWidth:     1,
			StrokeDasharray: "5,3",
			PointerEvents:   "none",
		},
	}
}

// Merge returns s with the set fields of o applied part by part.
func (s Style) Merge(o Style) Style {
	return Style{
		ValueLabel: s.ValueLabel.Merge(o.ValueLabel),
		CellLabel:  s.CellLabel.Merge(o.CellLabel),
		Line:       s.Line.Merge(o.Line),
	}
}

// Resolve merges overrides over the defaults.
func Resolve(overrides Style) Style {
	return DefaultStyle().Merge(overrides)
}
