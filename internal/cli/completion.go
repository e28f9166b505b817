package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/baseline/pkg/pipeline"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(*cobra.Command, *cobra.Command) error{
	"bash":       func(root, out *cobra.Command) error { return root.GenBashCompletionV2(out.OutOrStdout(), true) },
	"zsh":        func(root, out *cobra.Command) error { return root.GenZshCompletion(out.OutOrStdout()) },
	"fish":       func(root, out *cobra.Command) error { return root.GenFishCompletion(out.OutOrStdout(), true) },
	"powershell": func(root, out *cobra.Command) error { return root.GenPowerShellCompletionWithDesc(out.OutOrStdout()) },
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for baseline.

Besides commands and flags, the scripts complete chart files (*.toml),
--format values (comma lists included) and the keys of --line expressions.`,
		Example: `  source <(baseline completion bash)
  baseline completion zsh > "${fpath[1]}/_baseline"
  baseline completion fish > ~/.config/fish/completions/baseline.fish
  baseline completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd)
		},
	}
}

// lineKeys are offered for --line. Completing one key at a time keeps
// the expression in a single shell word.
var lineKeys = []string{
	"axis=", "value=", "label=", "cell=", "position=left", "position=right",
	"line.stroke=", "line.width=", "line.dash=", "line.opacity=",
	"label.fill=", "label.size=", "label.weight=", "label.family=",
	"cell.fill=", "cell.size=", "cell.weight=", "cell.family=",
}

// registerChartCompletion completes the chart file argument and the value
// flags cmd defines.
func registerChartCompletion(cmd *cobra.Command) {
	cmd.ValidArgsFunction = completeChartFile
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
	if cmd.Flags().Lookup("line") != nil {
		_ = cmd.RegisterFlagCompletionFunc("line", completeLineKeys)
	}
}

func completeChartFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the last entry of a comma-separated format
// list, skipping formats already listed.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	used := map[string]bool{}
	for _, f := range strings.Split(prefix, ",") {
		used[strings.TrimSpace(f)] = true
	}

	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF} {
		if !used[f] {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completeLineKeys(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Complete the key after the last space of a partly typed expression.
	head := ""
	if i := strings.LastIndex(toComplete, " "); i >= 0 {
		head = toComplete[:i+1]
	}
	out := make([]string, 0, len(lineKeys))
	for _, k := range lineKeys {
		out = append(out, head+k)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
