package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/baseline/pkg/cache"
	"github.com/matzehuels/baseline/pkg/config"
	"github.com/matzehuels/baseline/pkg/errors"
	"github.com/matzehuels/baseline/pkg/observability"
)

const chartTOML = `
width = 200
height = 100

[[axis]]
id = "price"
min = 0
max = 200

[[baseline]]
axis = "price"
value = 100
value_label = "Avg"
position = "right"

[[baseline]]
axis = "volume"
value = 3
`

func testChart(t *testing.T) *config.Chart {
	t.Helper()
	c, err := config.Parse([]byte(chartTOML))
	if err != nil {
		t.Fatalf("parse chart: %v", err)
	}
	return c
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", true},
		{"SVG", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg, PNG,pdf", []string{"svg", "png", "pdf"}},
		{"svg,,pdf", []string{"svg", "pdf"}},
	}

	for _, tt := range tests {
		got := ParseFormats(tt.input)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG || o.Scale != DefaultScale {
		t.Errorf("defaults = %+v", o)
	}

	bad := Options{Scale: -1}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative scale error = %v", err)
	}
}

func TestExecuteSVG(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	res, err := r.Execute(context.Background(), testChart(t), Options{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	svg := string(res.Artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("svg output = %q", svg)
	}
	for _, want := range []string{
		`<g class="baseline" transform="translate(0 50)">`,
		`<polyline points="0 0 200 0"`,
		`text-anchor="end"`,
		`>Avg</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q:\n%s", want, svg)
		}
	}
	if res.Baselines != 1 {
		t.Errorf("Baselines = %d, want 1", res.Baselines)
	}
	if len(res.Unresolved) != 1 || res.Unresolved[0] != "volume" {
		t.Errorf("Unresolved = %v, want [volume]", res.Unresolved)
	}
}

func TestExecuteStrict(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	_, err := r.Execute(context.Background(), testChart(t), Options{Strict: true})
	if !errors.Is(err, errors.ErrCodeAxisNotFound) {
		t.Errorf("Execute(strict) error = %v, want %v", err, errors.ErrCodeAxisNotFound)
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	_, err := r.Execute(context.Background(), testChart(t), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute(gif) error = %v", err)
	}
}

func TestExecuteCachesRaster(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	hooks := &recordingHooks{}
	observability.SetCacheHooks(hooks)
	observability.SetRenderHooks(hooks)
	defer observability.Reset()

	r := NewRunner(store, quietLogger())
	opts := Options{Formats: []string{FormatSVG, FormatPNG}, Scale: 1}

	first, err := r.Execute(ctx, testChart(t), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.Cached(FormatPNG) {
		t.Error("first render should not be cached")
	}
	if !bytes.HasPrefix(first.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Fatal("png output missing signature")
	}

	second, err := r.Execute(ctx, testChart(t), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.Cached(FormatPNG) || second.Cached(FormatSVG) {
		t.Errorf("CacheHits = %v, want [png]", second.CacheHits)
	}
	if !bytes.Equal(first.Artifacts[FormatPNG], second.Artifacts[FormatPNG]) {
		t.Error("cached png differs from rendered png")
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("cache hooks hits=%d misses=%d sets=%d, want 1/1/1", hooks.hits, hooks.misses, hooks.sets)
	}
	if hooks.renders["png"] != 1 {
		t.Errorf("png rendered %d times, want 1", hooks.renders["png"])
	}
}

func TestExecuteRefresh(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(store, quietLogger())
	opts := Options{Formats: []string{FormatPDF}}

	if _, err := r.Execute(ctx, testChart(t), opts); err != nil {
		t.Fatal(err)
	}
	opts.Refresh = true
	res, err := r.Execute(ctx, testChart(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached(FormatPDF) {
		t.Error("refresh should bypass the cache")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPDF], []byte("%PDF")) {
		t.Error("pdf output missing header")
	}
}

type recordingHooks struct {
	observability.NoopCacheHooks
	observability.NoopRenderHooks

	mu                 sync.Mutex
	hits, misses, sets int
	renders            map[string]int
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *recordingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.renders == nil {
		h.renders = make(map[string]int)
	}
	h.renders[format]++
}
