package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/baseline/pkg/chart/draw"
	"github.com/matzehuels/baseline/pkg/config"
)

// inspectCommand prints where each baseline of a chart lands.
func (c *CLI) inspectCommand() *cobra.Command {
	var lines []string

	cmd := &cobra.Command{
		Use:   "inspect <chart.toml>",
		Short: "Show the resolved position of every baseline in a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], lines)
		},
	}
	cmd.Flags().StringArrayVar(&lines, "line", nil, "add a baseline expression (repeatable)")
	registerChartCompletion(cmd)
	return cmd
}

func runInspect(ctx context.Context, input string, lines []string) error {
	chart, err := loadChart(input, lines)
	if err != nil {
		return err
	}
	rows, err := inspectRows(chart)
	if err != nil {
		return err
	}

	loggerFromContext(ctx).Debug("inspected chart", "file", input, "baselines", len(rows))
	printKeyValue("Chart", input)
	printKeyValue("Size", fmt.Sprintf("%s × %s", draw.FormatNumber(chart.Width), draw.FormatNumber(chart.Height)))
	printKeyValue("Axes", fmt.Sprint(len(chart.Axes)))
	printNewline()
	fmt.Println(baselineTable(rows))
	return nil
}

// inspectRow is one line of the inspect table.
type inspectRow struct {
	Axis, Value, Y, Position, ValueLabel, CellLabel, Status string
}

const (
	statusDrawn       = "drawn"
	statusUnknownAxis = "unknown axis"
	statusOffScale    = "off scale"
)

func inspectRows(chart *config.Chart) ([]inspectRow, error) {
	row, err := chart.Row()
	if err != nil {
		return nil, err
	}
	specs, err := chart.Specs()
	if err != nil {
		return nil, err
	}

	out := make([]inspectRow, 0, len(specs))
	for _, s := range specs {
		placed := row.Place(s)
		r := inspectRow{
			Axis:       s.AxisID,
			Value:      draw.FormatNumber(s.Value),
			Y:          "-",
			Position:   string(s.Position),
			ValueLabel: s.ValueLabel,
			CellLabel:  s.CellLabel,
			Status:     statusUnknownAxis,
		}
		if placed.YScale != nil {
			y := placed.YScale(s.Value)
			r.Status = statusOffScale
			if !math.IsNaN(y) && !math.IsInf(y, 0) {
				r.Y = draw.FormatNumber(math.Round(y*100) / 100)
				r.Status = statusDrawn
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func baselineTable(rows []inspectRow) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("AXIS", "VALUE", "Y", "POSITION", "VALUE LABEL", "CELL LABEL", "STATUS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			if col == 6 && rows[row].Status != statusDrawn {
				return StyleWarning.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, r := range rows {
		t.Row(r.Axis, r.Value, r.Y, r.Position, r.ValueLabel, r.CellLabel, r.Status)
	}
	return t.String()
}
