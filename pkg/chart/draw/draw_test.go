package draw

import (
	"strings"
	"testing"
)

func TestTextStyleMerge(t *testing.T) {
	base := TextStyle{Fill: "#8B7E7E", FontWeight: 100, FontSize: 11, PointerEvents: "none"}

	got := base.Merge(TextStyle{Fill: "red", FontSize: 14})
	want := TextStyle{Fill: "red", FontWeight: 100, FontSize: 14, PointerEvents: "none"}
	if got != want {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}

	if got := base.Merge(TextStyle{}); got != base {
		t.Errorf("Merge(zero) = %+v, want %+v", got, base)
	}
	if base.Fill != "#8B7E7E" {
		t.Error("Merge() must not modify the receiver")
	}
}

func TestLineStyleMerge(t *testing.T) {
	base := LineStyle{Stroke: "#626262", StrokeWidth: 1, StrokeDasharray: "5,3", PointerEvents: "none"}
	got := base.Merge(LineStyle{Stroke: "#ff0000"})
	want := LineStyle{Stroke: "#ff0000", StrokeWidth: 1, StrokeDasharray: "5,3", PointerEvents: "none"}
	if got != want {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}
}

func TestMergeZeroKeepsBase(t *testing.T) {
	line := LineStyle{Stroke: "#626262", StrokeWidth: 1, StrokeOpacity: 0.5}
	if got := line.Merge(LineStyle{StrokeWidth: 0, StrokeOpacity: 0}); got != line {
		t.Errorf("zero width and opacity should not override: got %+v", got)
	}
	if got := line.Merge(LineStyle{Stroke: "none"}).CSS(); !strings.HasPrefix(got, "stroke:none;") {
		t.Errorf("stroke none should override: got %q", got)
	}

	text := TextStyle{FontWeight: 100, Opacity: 0.8}
	if got := text.Merge(TextStyle{FontWeight: 0, Opacity: 0}); got != text {
		t.Errorf("zero weight and opacity should not override: got %+v", got)
	}
}

func TestCSS(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "text",
			got:  TextStyle{Fill: "#8B7E7E", FontSize: 11, FontWeight: 100, PointerEvents: "none"}.CSS(),
			want: "fill:#8B7E7E;font-size:11px;font-weight:100;pointer-events:none",
		},
		{
			name: "line",
			got:  LineStyle{Stroke: "#626262", StrokeWidth: 1, StrokeDasharray: "5,3", PointerEvents: "none"}.CSS(),
			want: "stroke:#626262;stroke-width:1;stroke-dasharray:5,3;pointer-events:none",
		},
		{
			name: "fractional",
			got:  LineStyle{StrokeWidth: 0.5, StrokeOpacity: 0.25}.CSS(),
			want: "stroke-width:0.5;stroke-opacity:0.25",
		},
		{
			name: "empty",
			got:  TextStyle{}.CSS(),
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("CSS() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestDashes(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{in: "5,3", want: []float64{5, 3}},
		{in: "4 2 1", want: []float64{4, 2, 1}},
		{in: "", want: nil},
		{in: "none", want: nil},
		{in: "5,x", wantErr: true},
		{in: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := LineStyle{StrokeDasharray: tt.in}.Dashes()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Dashes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Dashes() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Dashes()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGroupSVG(t *testing.T) {
	g := &Group{Class: "marker", Translate: Point{Y: 12.5}}
	g.Add(
		&Polyline{Points: []Point{{0, 0}, {100, 0}}, Style: LineStyle{Stroke: "black"}},
		&Text{X: Ptr(5), Y: -3, Anchor: AnchorStart, Content: "a < b & c"},
		&Text{Y: -3, Content: "no x"},
	)

	out := string(g.SVG())
	for _, want := range []string{
		`<g class="marker" transform="translate(0 12.5)">`,
		`<polyline points="0 0 100 0" style="stroke:black"/>`,
		`<text x="5" y="-3" text-anchor="start">a &lt; b &amp; c</text>`,
		`<text y="-3">no x</text>`,
		`</g>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG() missing %q\nGot: %s", want, out)
		}
	}
}

func TestGroupSVGEmpty(t *testing.T) {
	out := string((&Group{}).SVG())
	if !strings.Contains(out, `<g transform="translate(0 0)"/>`) {
		t.Errorf("SVG() = %q, want self-closing group", out)
	}
}

func TestWalk(t *testing.T) {
	inner := &Group{Translate: Point{X: 10, Y: 20}}
	text := &Text{Content: "x"}
	inner.Add(text)
	outer := &Group{Translate: Point{X: 1, Y: 2}}
	outer.Add(inner)

	var offsets []Point
	var sawText bool
	outer.Walk(func(e Element, off Point) {
		offsets = append(offsets, off)
		if e == Element(text) {
			sawText = true
			if off != (Point{X: 11, Y: 22}) {
				t.Errorf("text offset = %+v, want {11 22}", off)
			}
		}
	})
	if !sawText {
		t.Error("Walk() did not visit the text")
	}
	if len(offsets) != 3 {
		t.Errorf("Walk() visited %d elements, want 3", len(offsets))
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		395:      "395",
		-3:       "-3",
		50.25:    "50.25",
		1.0 / 4:  "0.25",
		123456.0: "123456",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
