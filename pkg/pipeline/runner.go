package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/baseline/pkg/cache"
	"github.com/matzehuels/baseline/pkg/chart/draw"
	"github.com/matzehuels/baseline/pkg/chart/sink"
	"github.com/matzehuels/baseline/pkg/config"
	"github.com/matzehuels/baseline/pkg/observability"
)

// Runner renders charts with caching of raster output.
//
// The Runner holds no per-chart state, so one instance can serve
// concurrent Execute calls as long as its cache can.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// logger means log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger, TTL: cache.DefaultTTL}
}

// Execute draws every baseline of c and encodes the requested formats.
func (r *Runner) Execute(ctx context.Context, c *config.Chart, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	row, err := c.Row()
	if err != nil {
		return nil, err
	}
	specs, err := c.Specs()
	if err != nil {
		return nil, err
	}
	if opts.Strict {
		if err := row.CheckAxes(specs); err != nil {
			return nil, err
		}
	}

	groups := row.Render(specs)
	res := &Result{
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
		Baselines:  len(groups),
		Unresolved: row.Unresolved(specs),
	}
	for _, id := range res.Unresolved {
		r.Logger.Warn("baseline references unknown axis", "axis", id)
	}
	r.Logger.Debug("drew baselines", "count", len(groups), "specs", len(specs))

	sinkOpts := []sink.Option{
		sink.WithMargin(c.Margin),
		sink.WithBackground(c.Background),
		sink.WithTitle(c.Title),
		sink.WithScale(opts.Scale),
	}
	svg := r.encode(ctx, FormatSVG, func() ([]byte, error) {
		return sink.RenderSVG(c.Width, c.Height, groups, sinkOpts...), nil
	})

	for _, format := range opts.Formats {
		if _, done := res.Artifacts[format]; done {
			continue
		}
		if format == FormatSVG {
			data, err := svg()
			if err != nil {
				return nil, err
			}
			res.Artifacts[format] = data
			continue
		}

		doc, err := svg()
		if err != nil {
			return nil, err
		}
		key := cache.RenderKey(format, opts.Scale, doc)
		if !opts.Refresh {
			if data, ok := r.lookup(ctx, format, key); ok {
				res.Artifacts[format] = data
				res.CacheHits = append(res.CacheHits, format)
				continue
			}
		}

		data, err := r.encode(ctx, format, func() ([]byte, error) {
			return rasterize(format, c.Width, c.Height, groups, sinkOpts)
		})()
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		r.store(ctx, format, key, data)
		res.Artifacts[format] = data
	}
	return res, nil
}

func rasterize(format string, width, height float64, groups []*draw.Group, opts []sink.Option) ([]byte, error) {
	switch format {
	case FormatPNG:
		return sink.RenderPNG(width, height, groups, opts...)
	case FormatPDF:
		return sink.RenderPDF(width, height, groups, opts...)
	}
	return nil, ValidateFormat(format)
}

// encode wraps fn with render hooks and memoises its result.
func (r *Runner) encode(ctx context.Context, format string, fn func() ([]byte, error)) func() ([]byte, error) {
	var (
		data []byte
		err  error
		done bool
	)
	return func() ([]byte, error) {
		if done {
			return data, err
		}
		hooks := observability.Render()
		hooks.OnRenderStart(ctx, format)
		start := time.Now()
		data, err = fn()
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		done = true
		return data, err
	}
}

func (r *Runner) lookup(ctx context.Context, format, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "err", err)
		hit = false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, format)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, format)
	r.Logger.Debug("cache hit", "format", format, "bytes", len(data))
	return data, true
}

func (r *Runner) store(ctx context.Context, format, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
