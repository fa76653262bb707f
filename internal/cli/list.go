package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/resloader/pkg/res"
)

// maxValueWidth truncates long values in the list table.
const maxValueWidth = 60

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var types []string
	var plain bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loaded resources",
		Long: `List every loaded value resource and drawable with its id and resolved value,
followed by the loaded layout, menu and preference documents.`,
		Example: `  resloader list
  resloader list --type string,color
  resloader list --type layout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.initProject(cmd.Context())
			if err != nil {
				return err
			}
			defer p.Close()

			entries, err := p.engine.Entries()
			if err != nil {
				return err
			}
			entries = filterEntries(entries, types)
			for _, typ := range []res.Type{res.TypeLayout, res.TypeMenu, res.TypeXML} {
				if wantType(types, typ) {
					for _, key := range p.engine.Documents(typ) {
						entries = append(entries, res.Entry{Type: typ, Name: key})
					}
				}
			}

			w := cmd.OutOrStdout()
			if plain {
				printEntriesPlain(w, entries)
				return nil
			}
			printEntriesTable(w, entries)
			printStats(w, p.engine.Index().Len(), len(entries))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "resource type(s) to list, e.g. string,color,layout")
	cmd.Flags().BoolVar(&plain, "plain", false, "tab-separated output without styling")

	return cmd
}

func wantType(types []string, typ res.Type) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == typ {
			return true
		}
	}
	return false
}

func filterEntries(entries []res.Entry, types []string) []res.Entry {
	if len(types) == 0 {
		return entries
	}
	out := entries[:0]
	for _, e := range entries {
		if wantType(types, e.Type) {
			out = append(out, e)
		}
	}
	return out
}

func formatID(id int) string {
	if id == 0 {
		return ""
	}
	return fmt.Sprintf("0x%08x", id)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

func printEntriesPlain(w io.Writer, entries []res.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Type, formatID(e.ID), e.Name, e.Value)
	}
}

func printEntriesTable(w io.Writer, entries []res.Entry) {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Type, formatID(e.ID), e.Name, truncate(e.Value, maxValueWidth)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "ID", "Name", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case 0:
				return base.Foreground(colorGray)
			case 1:
				return base.Foreground(colorDim)
			case 2:
				return base.Foreground(colorCyan)
			}
			if row < len(entries) && strings.HasPrefix(entries[row].Value, "!") {
				return base.Foreground(colorRed)
			}
			return base.Foreground(colorWhite)
		})

	fmt.Fprintln(w, t.Render())
}
