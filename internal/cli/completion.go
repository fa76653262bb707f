package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/resloader/pkg/res"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script. Resource names complete from the
project's symbol table, so "resloader string app_<TAB>" works offline.

  $ source <(resloader completion bash)
  $ resloader completion zsh > "${fpath[1]}/_resloader"
  $ resloader completion fish | source
  PS> resloader completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// completeNames completes the first argument with the names of typ in the
// application symbol table. Resources are not loaded.
func (c *CLI) completeNames(typ res.Type) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		symbols, err := res.LoadSymbols(cfg.Symbols, cfg.Package)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var names []string
		symbols.Each(func(t res.Type, entry string, _ int) {
			if t == typ && strings.HasPrefix(entry, toComplete) {
				names = append(names, entry)
			}
		})
		sort.Strings(names)
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
