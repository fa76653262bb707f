package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/resloader/pkg/sdk"
)

// sdkCommand creates the sdk command.
func (c *CLI) sdkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sdk",
		Short: "Show where the platform resources are found",
		Long: `Run every step of the SDK discovery chain and show what each one found.
The first step that yields a directory is the one the engine uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store := c.newCache()
			defer store.Close()

			locator := c.newLocator(cfg, store)
			probes := locator.ProbeAll(cmd.Context())
			w := cmd.OutOrStdout()
			printProbes(w, probes)

			for _, p := range probes {
				if p.Found {
					fmt.Fprintln(w)
					printSuccess("Using %s", p.ResourceDir)
					printDetail("via %s, SDK version %d", p.Step, cfg.SDKVersion)
					return nil
				}
			}
			fmt.Fprintln(w)
			printWarning("No platform resources found; set ANDROID_HOME or sdk_path")
			return nil
		},
	}
}

func printProbes(w io.Writer, probes []sdk.Probe) {
	rows := make([][]string, len(probes))
	for i, p := range probes {
		status := iconError
		detail := p.ResourceDir
		switch {
		case p.Found:
			status = iconSuccess
		case p.Err != nil:
			detail = p.Err.Error()
		case detail == "":
			detail = "not set"
		}
		rows[i] = []string{status, p.Step, detail}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Step", "Result").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= len(probes) {
				return base
			}
			if probes[row].Found {
				return base.Foreground(colorGreen)
			}
			if col == 0 {
				return base.Foreground(colorRed)
			}
			return base.Foreground(colorDim)
		})

	fmt.Fprintln(w, t.Render())
}
