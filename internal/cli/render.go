package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/baseline/pkg/config"
	"github.com/matzehuels/baseline/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file, base path for several formats, or "-" for stdout
	formats []string // svg, png, pdf
	lines   []string // extra baselines as one-line expressions
	scale   float64  // PNG scale factor
	strict  bool     // fail on baselines whose axis is not defined
	refresh bool     // ignore cached output
	cache   cacheOpts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render <chart.toml>",
		Short: "Render a chart's baselines to SVG, PNG or PDF",
		Example: `  baseline render chart.toml
  baseline render chart.toml -f png,pdf -o out/price
  baseline render chart.toml --line 'axis=price value=120 label="Target" position=right'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = pipeline.ParseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.output == "-" && len(opts.formats) != 1 {
				return fmt.Errorf("-o - needs exactly one format, got %d", len(opts.formats))
			}
			return c.runRender(cmd.Context(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (several), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringArrayVar(&opts.lines, "line", nil, "add a baseline, e.g. 'axis=price value=100 label=Avg' (repeatable)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when a baseline references an unknown axis")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when output is cached")
	opts.cache.register(cmd)
	registerChartCompletion(cmd)

	return cmd
}

// loadChart reads a chart file and appends the baselines given as
// one-line expressions.
func loadChart(path string, lines []string) (*config.Chart, error) {
	chart, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	for _, expr := range lines {
		b, err := config.ParseLine(expr)
		if err != nil {
			return nil, fmt.Errorf("--line %q: %w", expr, err)
		}
		chart.Baselines = append(chart.Baselines, b)
	}
	return chart, nil
}

func (c *CLI) runRender(ctx context.Context, status io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	chart, err := loadChart(input, opts.lines)
	if err != nil {
		return err
	}
	logger.Debug("loaded chart", "file", input, "axes", len(chart.Axes), "baselines", len(chart.Baselines))

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *spinner
	if needsRaster(opts.formats) && opts.output != "-" {
		spin = newSpinner(ctx, status, spinnerMessage(opts.formats, opts.scale))
		spin.Start()
	}
	res, err := runner.Execute(ctx, chart, pipeline.Options{
		Formats: opts.formats,
		Scale:   opts.scale,
		Strict:  opts.strict,
		Refresh: opts.refresh,
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	for _, id := range res.Unresolved {
		printWarning("No axis %q; its baselines were skipped", id)
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(res.Artifacts[opts.formats[0]])
		return err
	}

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := writeFile(path, res.Artifacts[format]); err != nil {
			return err
		}
		printFile(path, res.Cached(format))
	}
	prog.done(fmt.Sprintf("Rendered %d baseline(s)", res.Baselines))
	return nil
}

func needsRaster(formats []string) bool {
	for _, f := range formats {
		if f != pipeline.FormatSVG {
			return true
		}
	}
	return false
}

// outputPath derives the file for format. Without -o the input's name is
// reused; with several formats -o is a base path and a known extension on
// it is replaced.
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = input
	}
	if ext := filepath.Ext(base); ext == ".toml" || pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
