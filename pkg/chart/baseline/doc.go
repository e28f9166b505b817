// Package baseline draws a horizontal reference line at a value on a chart.
//
// A baseline marks a fixed data value (a mean, a threshold, a target) across
// the full width of a chart row, with an optional value label and cell label
// at its left or right end:
//
//	s := baseline.New("price")
//	s.Value = series.Avg()
//	s.ValueLabel = "Avg"
//	s.Position = baseline.Right
//	s.YScale = axis.Map // injected by the row layout
//	s.Width = 800       // injected by the row layout
//	g := baseline.Render(s)
//
// The vertical scale and width are not authored by the caller; the row layout
// resolves [Spec.AxisID] to a scale and fills them in before rendering.
//
// # Rendering
//
// [Render] is a pure function. The whole drawing is translated to
// (0, YScale(Value)); inside that space the line runs from (0,0) to (Width,0)
// and both labels sit 3px above it. Labels on the left are start-anchored 5px
// from the edge, labels on the right end-anchored 5px from the other edge. When
// a cell label is present the value label moves 30px further left so the two
// do not overlap.
//
// Without a scale, or with a NaN or infinite value, Render returns nil and
// nothing is drawn.
//
// # Styles
//
// Each part has built-in defaults ([DefaultStyle]). [Spec.Style] overrides
// them field by field; unset fields keep the default.
package baseline
