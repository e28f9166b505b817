package baseline

import (
	"math"
	"strings"

	"github.com/matzehuels/baseline/pkg/chart/draw"
	"github.com/matzehuels/baseline/pkg/errors"
)

const (
	// ClassName is the class of the root group.
	ClassName = "baseline"

	labelInset   = 5.0  // label distance from the row edge
	cellLabelGap = 30.0 // extra value-label shift when a cell label is shown
	labelOffsetY = -3.0 // label baseline relative to the line
)

// Position selects the row edge the labels are anchored to.
type Position string

const (
	Left  Position = "left"
	Right Position = "right"
)

// ParsePosition parses "left" or "right" (case-insensitive). An empty string
// yields the default, Left.
func ParsePosition(s string) (Position, error) {
	switch p := Position(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Left, nil
	case Left, Right:
		return p, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidPosition, "invalid position: %q (must be 'left' or 'right')", s)
	}
}

// Valid reports whether p is Left, Right or unset. Unset means Left.
func (p Position) Valid() bool { return p == "" || p == Left || p == Right }

// ScaleFunc maps a data value to a vertical pixel coordinate.
type ScaleFunc func(float64) float64

// Spec configures a single baseline render.
type Spec struct {
	AxisID     string
	Value      float64
	ValueLabel string
	CellLabel  string
	Position   Position
	Style      Style

	// YScale and Width are injected by the row layout.
	YScale ScaleFunc
	Width  float64
}

// New returns a Spec for the given axis with every default applied.
func New(axisID string) Spec {
	return Spec{
		AxisID:   axisID,
		Position: Left,
	}
}

// Validate checks the caller-authored fields.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.AxisID) == "" {
		return errors.New(errors.ErrCodeInvalidAxis, "baseline axis is required")
	}
	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "baseline value must be finite, got %v", s.Value)
	}
	if !s.Position.Valid() {
		return errors.New(errors.ErrCodeInvalidPosition, "invalid position: %q (must be 'left' or 'right')", s.Position)
	}
	if s.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be non-negative, got %v", s.Width)
	}
	return nil
}

// Render draws the baseline described by s. It returns nil when there is no
// scale or the value is not a finite number.
//
// An unrecognised Position leaves the text anchor and x of both labels unset;
// callers that take positions from users go through ParsePosition or
// Validate first.
func Render(s Spec) *draw.Group {
	if s.YScale == nil || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return nil
	}

	style := Resolve(s.Style)
	anchor, x := anchorFor(s.Position, s.Width)

	g := &draw.Group{
		Class:     ClassName,
		Translate: draw.Point{Y: s.YScale(s.Value)},
	}
	g.Add(&draw.Polyline{
		Points: []draw.Point{{X: 0, Y: 0}, {X: s.Width, Y: 0}},
		Style:  style.Line,
	})

	if s.ValueLabel != "" {
		valueX := x
		if x != nil && s.CellLabel != "" {
			valueX = draw.Ptr(*x - cellLabelGap)
		}
		g.Add(&draw.Text{
			X:       valueX,
			Y:       labelOffsetY,
			Anchor:  anchor,
			Style:   style.ValueLabel,
			Content: s.ValueLabel,
		})
	}
	if s.CellLabel != "" {
		g.Add(&draw.Text{
			X:       x,
			Y:       labelOffsetY,
			Anchor:  anchor,
			Style:   style.CellLabel,
			Content: s.CellLabel,
		})
	}
	return g
}

func anchorFor(p Position, width float64) (draw.Anchor, *float64) {
	switch p {
	case Left, "":
		return draw.AnchorStart, draw.Ptr(labelInset)
	case Right:
		return draw.AnchorEnd, draw.Ptr(width - labelInset)
	default:
		return draw.AnchorUnset, nil
	}
}
