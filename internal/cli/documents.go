package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/resloader/pkg/errors"
	"github.com/matzehuels/resloader/pkg/render"
	"github.com/matzehuels/resloader/pkg/render/nodelink"
	"github.com/matzehuels/resloader/pkg/res"
)

// Output formats of the layout command.
const (
	formatText = "text"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPNG  = "png"
	formatPDF  = "pdf"
)

var layoutFormats = []string{formatText, formatDOT, formatSVG, formatPNG, formatPDF}

// layoutOpts holds the flags of the layout command.
type layoutOpts struct {
	qualifiers []string // layout qualifiers tried before the plain layout dir
	format     string   // one of layoutFormats
	output     string   // output file; stdout when empty
	attrs      bool     // include attributes in text and DOT output
	scale      float64  // PNG scale factor
}

func validateFormat(format string) error {
	for _, f := range layoutFormats {
		if f == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid format %q: must be one of %s", format, strings.Join(layoutFormats, ", "))
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOpts{format: formatText, scale: 2}

	cmd := &cobra.Command{
		Use:   "layout <name|id>",
		Short: "Inflate a layout and print its view tree",
		Long: `Inflate a layout with includes expanded and merge roots resolved, then print
the resulting view tree as text or render it as a Graphviz diagram.`,
		Example: `  resloader layout main
  resloader layout main --qualifier land
  resloader layout main --format svg -o main.svg`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNames(res.TypeLayout),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			p, err := c.initProject(cmd.Context())
			if err != nil {
				return err
			}
			defer p.Close()

			if len(opts.qualifiers) > 0 {
				p.engine.SetLayoutQualifierSearchPath(opts.qualifiers...)
			}

			root, err := inflateLayout(p.engine, args[0])
			if err != nil {
				return err
			}
			data, err := renderLayout(root, opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, data)
		},
	}

	cmd.Flags().StringSliceVar(&opts.qualifiers, "qualifier", nil, "layout qualifier(s) to search first, e.g. land (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(layoutFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.attrs, "attrs", true, "include attributes")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// inflateLayout inflates a layout given by name, id or raw key
// ("layout-land/main", "android:layout/simple_list_item_1").
func inflateLayout(e *res.Engine, arg string) (*res.Node, error) {
	id, err := resourceID(e, arg, res.TypeLayout)
	if err != nil {
		if node := e.LayoutNode(arg); node != nil {
			return node, nil
		}
		return nil, err
	}
	return e.InflateView(id, nil)
}

func renderLayout(root *res.Node, opts layoutOpts) ([]byte, error) {
	if opts.format == formatText {
		return []byte(render.Tree(root, render.Options{Attrs: opts.attrs})), nil
	}

	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: opts.attrs})
	switch opts.format {
	case formatSVG:
		return nodelink.RenderSVG(dot)
	case formatPNG:
		return nodelink.RenderPNG(dot, opts.scale)
	case formatPDF:
		return nodelink.RenderPDF(dot)
	}
	return []byte(dot), nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// menuCommand creates the menu command.
func (c *CLI) menuCommand() *cobra.Command {
	return c.typedCommand("menu", "Inflate a menu and print its items", res.TypeMenu,
		func(cmd *cobra.Command, e *res.Engine, id int) error {
			menu := &res.MenuTree{}
			if err := e.InflateMenu(id, menu); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Menu(menu))
			return nil
		})
}

// prefsCommand creates the prefs command.
func (c *CLI) prefsCommand() *cobra.Command {
	return c.typedCommand("prefs", "Inflate a preference screen and print its hierarchy", res.TypeXML,
		func(cmd *cobra.Command, e *res.Engine, id int) error {
			prefs, err := e.InflatePreferences(id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Preferences(prefs))
			return nil
		})
}

// rawCommand creates the raw command.
func (c *CLI) rawCommand() *cobra.Command {
	var output string
	cmd := c.typedCommand("raw", "Copy a raw resource to stdout or a file", res.TypeRaw,
		func(cmd *cobra.Command, e *res.Engine, id int) error {
			rc, err := e.OpenRaw(id)
			if err != nil {
				return err
			}
			if rc == nil {
				name, _ := e.NameForID(id)
				return errors.NotFound("raw", id, name)
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		})
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
