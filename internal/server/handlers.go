package server

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/baseline/pkg/chart/baseline"
	"github.com/matzehuels/baseline/pkg/config"
	"github.com/matzehuels/baseline/pkg/errors"
)

// queryAxis is the ID of the single axis built from query parameters.
const queryAxis = "y"

type renderRequest struct {
	chart  *config.Chart
	scale  float64
	strict bool
}

// handleBaseline renders one baseline against a single axis:
//
//	GET /v1/baseline/png?min=0&max=200&value=100&label=Avg&position=right
func (s *Server) handleBaseline(w http.ResponseWriter, r *http.Request) {
	req, err := baselineRequest(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, req)
}

// handleChart renders a TOML chart from the request body. Extra baselines
// may be given as repeated line= expressions.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read chart body"))
		return
	}
	c, err := config.Parse(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	for _, expr := range q["line"] {
		b, err := config.ParseLine(expr)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		c.Baselines = append(c.Baselines, b)
	}
	scale, err := floatParam(q, "scale", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, renderRequest{chart: c, scale: scale, strict: true})
}

func baselineRequest(q url.Values) (renderRequest, error) {
	var (
		req renderRequest
		c   = &config.Chart{}
		ax  = config.Axis{ID: queryAxis, Type: q.Get("type")}
		b   = config.Baseline{
			Axis:       queryAxis,
			ValueLabel: q.Get("label"),
			CellLabel:  q.Get("cell"),
			Position:   q.Get("position"),
		}
	)

	floats := []struct {
		name string
		def  float64
		dst  *float64
	}{
		{"width", config.DefaultWidth, &c.Width},
		{"height", config.DefaultHeight, &c.Height},
		{"margin", 0, &c.Margin},
		{"min", 0, &ax.Min},
		{"max", 100, &ax.Max},
		{"value", 0, &b.Value},
		{"scale", 0, &req.scale},
	}
	for _, f := range floats {
		v, err := floatParam(q, f.name, f.def)
		if err != nil {
			return req, err
		}
		*f.dst = v
	}

	if _, err := baseline.ParsePosition(b.Position); err != nil {
		return req, err
	}
	b.Style.Line.Stroke = q.Get("stroke")
	b.Style.Line.StrokeDasharray = q.Get("dash")
	c.Background = q.Get("background")
	c.Title = q.Get("title")
	c.Axes = []config.Axis{ax}
	c.Baselines = []config.Baseline{b}

	if err := c.Validate(); err != nil {
		return req, err
	}
	req.chart = c
	return req, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a number", name, raw)
	}
	return v, nil
}
