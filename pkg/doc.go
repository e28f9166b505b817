// Package pkg provides the libraries behind the baseline renderer.
//
// # Overview
//
// A baseline is a horizontal reference line drawn across a chart row at a
// given value (an average, a target, a threshold), optionally labelled with
// the value and with a cell annotation. The pkg directory is organized as:
//
//  1. [chart] - Drawing: primitives, scales, the row layout, the baseline
//     renderer and the output sinks
//  2. [config] - Chart files (TOML) and one-line baseline expressions
//  3. [pipeline] - Orchestration (chart → baselines → SVG/PNG/PDF) with caching
//  4. [cache], [fonts], [errors], [observability], [buildinfo] - Support
//
// # Architecture
//
//	chart.toml / --line expressions
//	         ↓
//	    [config] (decode + validate)
//	         ↓
//	    [chart/layout] (resolve axis → scale, inject width)
//	         ↓
//	    [chart/baseline] (one <g> per baseline)
//	         ↓
//	    [chart/sink] → SVG / PNG / PDF
//
// # Quick Start
//
//	row := layout.NewRow(400, 100)
//	price, _ := scale.New(scale.TypeLinear, 0, 200, row.Height)
//	_ = row.AddAxis("price", price)
//
//	spec := baseline.New("price")
//	spec.Value = 100
//	spec.ValueLabel = "Avg"
//	spec.Position = baseline.Right
//
//	svg := sink.RenderSVG(row.Width, row.Height, row.Render([]baseline.Spec{spec}))
package pkg
