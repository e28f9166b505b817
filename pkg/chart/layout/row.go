// Package layout arranges chart elements inside a chart row.
//
// A [Row] owns the named vertical axes of one chart row and its plotting
// width. It is the collaborator that supplies baselines with their scale
// function and width: [Row.Place] resolves a spec's axis ID and injects both,
// [Row.Render] does so for a list of specs and draws them.
package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/baseline/pkg/chart/baseline"
	"github.com/matzehuels/baseline/pkg/chart/draw"
	"github.com/matzehuels/baseline/pkg/chart/scale"
	"github.com/matzehuels/baseline/pkg/errors"
)

// Row is the plotting area of one chart row.
type Row struct {
	Width  float64
	Height float64

	axes  map[string]scale.Scale
	order []string
}

// NewRow creates an empty row of the given plotting size.
func NewRow(width, height float64) *Row {
	return &Row{
		Width:  width,
		Height: height,
		axes:   make(map[string]scale.Scale),
	}
}

// AddAxis registers a vertical axis under id.
func (r *Row) AddAxis(id string, s scale.Scale) error {
	if err := errors.ValidateAxisID(id); err != nil {
		return err
	}
	if s == nil {
		return errors.New(errors.ErrCodeInvalidScale, "axis %q has no scale", id)
	}
	if _, dup := r.axes[id]; dup {
		return errors.New(errors.ErrCodeInvalidAxis, "duplicate axis id: %s", id)
	}
	r.axes[id] = s
	r.order = append(r.order, id)
	return nil
}

// Axis returns the scale registered under id.
func (r *Row) Axis(id string) (scale.Scale, bool) {
	s, ok := r.axes[id]
	return s, ok
}

// Axes returns the registered axis IDs in insertion order.
func (r *Row) Axes() []string {
	return slices.Clone(r.order)
}

// Place returns s with the row's width and the scale of its axis injected.
// When the axis is unknown YScale stays nil, so the baseline renders nothing.
func (r *Row) Place(s baseline.Spec) baseline.Spec {
	s.Width = r.Width
	s.YScale = nil
	if axis, ok := r.axes[s.AxisID]; ok {
		s.YScale = axis.Map
	}
	return s
}

// Render places and draws every spec, skipping those that draw nothing.
// Values the axis cannot map (zero on a log axis) are skipped as well.
func (r *Row) Render(specs []baseline.Spec) []*draw.Group {
	groups := make([]*draw.Group, 0, len(specs))
	for _, s := range specs {
		g := baseline.Render(r.Place(s))
		if g == nil || math.IsNaN(g.Translate.Y) || math.IsInf(g.Translate.Y, 0) {
			continue
		}
		groups = append(groups, g)
	}
	return groups
}

// Unresolved returns the distinct axis IDs referenced by specs that the row
// does not know, in first-seen order.
func (r *Row) Unresolved(specs []baseline.Spec) []string {
	var missing []string
	for _, s := range specs {
		if _, ok := r.axes[s.AxisID]; ok || slices.Contains(missing, s.AxisID) {
			continue
		}
		missing = append(missing, s.AxisID)
	}
	return missing
}

// CheckAxes returns an AXIS_NOT_FOUND error for the first spec whose axis
// the row does not know.
func (r *Row) CheckAxes(specs []baseline.Spec) error {
	if missing := r.Unresolved(specs); len(missing) > 0 {
		return errors.New(errors.ErrCodeAxisNotFound, "unknown axis %q (known: %v)", missing[0], r.order)
	}
	return nil
}
