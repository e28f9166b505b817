// Package scale maps data values to pixel coordinates along a chart axis.
//
// Vertical axes map the domain [Min, Max] onto [Height, 0] so that larger
// values are drawn higher, matching SVG's downward y axis.
package scale

import (
	"math"
	"strings"

	"github.com/matzehuels/baseline/pkg/errors"
)

// Scale types accepted by New.
const (
	TypeLinear = "linear"
	TypeLog    = "log"
)

// Scale maps a data value to a pixel coordinate.
type Scale interface {
	Map(v float64) float64
}

// Linear maps Domain onto Range proportionally.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// Map returns the pixel coordinate of v. Values outside the domain
// extrapolate.
func (l Linear) Map(v float64) float64 {
	d0, d1 := l.Domain[0], l.Domain[1]
	r0, r1 := l.Range[0], l.Range[1]
	if d0 == d1 {
		return (r0 + r1) / 2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Log maps the base-10 logarithm of Domain onto Range. Non-positive values
// map to NaN.
type Log struct {
	Domain [2]float64
	Range  [2]float64
}

// Map returns the pixel coordinate of v.
func (l Log) Map(v float64) float64 {
	if v <= 0 {
		return math.NaN()
	}
	lin := Linear{
		Domain: [2]float64{math.Log10(l.Domain[0]), math.Log10(l.Domain[1])},
		Range:  l.Range,
	}
	return lin.Map(math.Log10(v))
}

// New returns a vertical scale of the given type mapping [min, max] onto
// [height, 0]. An empty type means linear.
func New(typ string, min, max, height float64) (Scale, error) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil, errors.New(errors.ErrCodeInvalidScale, "axis bounds must be finite")
	}
	if min == max {
		return nil, errors.New(errors.ErrCodeInvalidScale, "axis min and max must differ (both %v)", min)
	}
	if height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidScale, "axis height must be non-negative, got %v", height)
	}

	rng := [2]float64{height, 0}
	switch strings.ToLower(typ) {
	case "", TypeLinear:
		return Linear{Domain: [2]float64{min, max}, Range: rng}, nil
	case TypeLog:
		if min <= 0 || max <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidScale, "log axis bounds must be positive (got %v..%v)", min, max)
		}
		return Log{Domain: [2]float64{min, max}, Range: rng}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidScale, "unknown scale type: %s (must be 'linear' or 'log')", typ)
	}
}
