package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/resloader/pkg/render"
	"github.com/matzehuels/resloader/pkg/res"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DocumentListModel - Interactive document selection
// =============================================================================

// DocumentListModel is the bubbletea model for picking a loaded document.
// Typing filters the list by substring.
type DocumentListModel struct {
	Title    string
	Keys     []string
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewDocumentListModel creates a picker over keys.
func NewDocumentListModel(title string, keys []string) DocumentListModel {
	return DocumentListModel{Title: title, Keys: keys, Height: 15}
}

// visible returns the keys matching the filter.
func (m DocumentListModel) visible() []string {
	if m.Filter == "" {
		return m.Keys
	}
	var out []string
	for _, k := range m.Keys {
		if strings.Contains(k, m.Filter) {
			out = append(out, k)
		}
	}
	return out
}

func (m DocumentListModel) Init() tea.Cmd {
	return nil
}

func (m DocumentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keys := m.visible()
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(keys)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if len(keys) > 0 {
				m.Selected = keys[m.Cursor]
				return m, tea.Quit
			}
		case tea.KeyBackspace:
			if m.Filter != "" {
				r := []rune(m.Filter)
				m.Filter = string(r[:len(r)-1])
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DocumentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString(StyleHighlight.Render("/" + m.Filter))
	}
	b.WriteString("\n\n")

	keys := m.visible()
	end := m.Offset + m.Height
	if end > len(keys) {
		end = len(keys)
	}
	for i := m.Offset; i < end; i++ {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + keys[i]))
		} else {
			b.WriteString(listNormalStyle.Render("  " + keys[i]))
		}
		b.WriteString("\n")
	}
	if len(keys) == 0 {
		b.WriteString(listDimStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(keys)), len(keys))))
	return b.String()
}

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var attrs bool
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick a layout interactively and print its view tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.initProject(cmd.Context())
			if err != nil {
				return err
			}
			defer p.Close()

			keys := p.engine.Documents(res.TypeLayout)
			if len(keys) == 0 {
				printWarning("No layouts loaded from %s", p.cfg.ResourceDir)
				return nil
			}

			prog := tea.NewProgram(NewDocumentListModel("Select Layout", keys), tea.WithContext(cmd.Context()))
			final, err := prog.Run()
			if err != nil {
				return err
			}
			key := final.(DocumentListModel).Selected
			if key == "" {
				return nil
			}

			root, err := inflateLayout(p.engine, key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(key))
			fmt.Fprint(cmd.OutOrStdout(), render.Tree(root, render.Options{Attrs: attrs}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&attrs, "attrs", false, "include attributes")
	return cmd
}
