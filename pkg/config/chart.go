// Package config loads chart descriptions.
//
// Charts are described in TOML: a plotting size, the vertical axes of the row
// and the baselines drawn against them. Single baselines can also be written
// as one-line expressions (see [ParseLine]), which is how the CLI's --line
// flag and quick experiments add them.
//
//	width = 800
//	height = 200
//
//	[[axis]]
//	id = "price"
//	min = 0
//	max = 200
//
//	[[baseline]]
//	axis = "price"
//	value = 100
//	value_label = "Avg"
//	position = "right"
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/baseline/pkg/chart/baseline"
	"github.com/matzehuels/baseline/pkg/chart/layout"
	"github.com/matzehuels/baseline/pkg/chart/scale"
	"github.com/matzehuels/baseline/pkg/errors"
)

// Defaults applied to charts that leave the plotting size out.
const (
	DefaultWidth  = 800
	DefaultHeight = 200
)

// Chart is a decoded chart file.
type Chart struct {
	Title      string     `toml:"title"`
	Width      float64    `toml:"width"`
	Height     float64    `toml:"height"`
	Margin     float64    `toml:"margin"`
	Background string     `toml:"background"`
	Axes       []Axis     `toml:"axis"`
	Baselines  []Baseline `toml:"baseline"`
}

// Axis describes one vertical axis of the row.
type Axis struct {
	ID   string  `toml:"id"`
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Type string  `toml:"type"`
}

// Baseline is the file form of a baseline.Spec.
type Baseline struct {
	Axis       string         `toml:"axis"`
	Value      float64        `toml:"value"`
	ValueLabel string         `toml:"value_label"`
	CellLabel  string         `toml:"cell_label"`
	Position   string         `toml:"position"`
	Style      baseline.Style `toml:"style"`
}

// Load reads and validates the chart file at path.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file %s", path)
	}
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return c, nil
}

// Parse decodes and validates a TOML chart description.
func Parse(data []byte) (*Chart, error) {
	var c Chart
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidChart, err, "decode chart")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidChart, "unknown chart key: %s", undecoded[0].String())
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Chart) applyDefaults() {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
}

// Validate checks the chart and every baseline in it.
func (c *Chart) Validate() error {
	if c.Width < 0 || c.Height < 0 || c.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidChart, "width, height and margin must be non-negative")
	}
	if err := errors.ValidateColor(c.Background); err != nil {
		return err
	}
	for i, b := range c.Baselines {
		if err := b.Validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "baseline %d", i+1)
		}
	}
	if _, err := c.Row(); err != nil {
		return err
	}
	return nil
}

// Validate checks a single baseline description.
func (b Baseline) Validate() error {
	if err := errors.ValidateAxisID(b.Axis); err != nil {
		return err
	}
	if _, err := baseline.ParsePosition(b.Position); err != nil {
		return err
	}
	for _, label := range []string{b.ValueLabel, b.CellLabel} {
		if err := errors.ValidateLabel(label); err != nil {
			return err
		}
	}
	for _, col := range []string{b.Style.ValueLabel.Fill, b.Style.CellLabel.Fill, b.Style.Line.Stroke} {
		if err := errors.ValidateColor(col); err != nil {
			return err
		}
	}
	if _, err := b.Style.Line.Dashes(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "line style")
	}
	spec, err := b.Spec()
	if err != nil {
		return err
	}
	return spec.Validate()
}

// Spec converts b to a baseline.Spec. Scale and width are left for the row.
func (b Baseline) Spec() (baseline.Spec, error) {
	pos, err := baseline.ParsePosition(b.Position)
	if err != nil {
		return baseline.Spec{}, err
	}
	s := baseline.New(b.Axis)
	s.Value = b.Value
	s.ValueLabel = b.ValueLabel
	s.CellLabel = b.CellLabel
	s.Position = pos
	s.Style = b.Style
	return s, nil
}

// Specs converts every baseline of the chart.
func (c *Chart) Specs() ([]baseline.Spec, error) {
	specs := make([]baseline.Spec, 0, len(c.Baselines))
	for _, b := range c.Baselines {
		s, err := b.Spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

// Row builds the chart row with every axis registered.
func (c *Chart) Row() (*layout.Row, error) {
	row := layout.NewRow(c.Width, c.Height)
	for _, a := range c.Axes {
		s, err := scale.New(a.Type, a.Min, a.Max, c.Height)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "axis %q", a.ID)
		}
		if err := row.AddAxis(a.ID, s); err != nil {
			return nil, err
		}
	}
	return row, nil
}
