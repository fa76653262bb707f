package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/resloader/pkg/errors"
	"github.com/matzehuels/resloader/pkg/res"
)

// resourceID turns a command argument into a resource id. Accepted forms
// are a hex or decimal id ("0x7f040000", "2130968576"), a reference
// ("@string/app_name", "android:color/black") and, when typ is set, a bare
// entry name ("app_name").
func resourceID(e *res.Engine, arg string, typ res.Type) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "resource name is required")
	}

	if strings.HasPrefix(arg, "0x") || strings.HasPrefix(arg, "0X") {
		id, err := strconv.ParseUint(arg[2:], 16, 32)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid resource id %q", arg)
		}
		return int(id), nil
	}
	if id, err := strconv.Atoi(arg); err == nil {
		return id, nil
	}

	ref := strings.TrimPrefix(arg, "@")
	if !strings.Contains(ref, "/") {
		if typ == "" {
			return 0, errors.New(errors.ErrCodeInvalidInput, "%q needs a type, e.g. string/%s", arg, arg)
		}
		ref = typ + "/" + ref
	}
	id, ok := e.IDForName(ref)
	if !ok {
		return 0, errors.New(errors.ErrCodeNotFound, "unknown resource %s", ref)
	}
	return id, nil
}

// resolveValue renders the value of id according to its registered type.
func resolveValue(e *res.Engine, id int, quantity int) (res.Name, string, error) {
	n, err := e.Index().Name(id)
	if err != nil {
		return res.Name{}, "", err
	}

	switch n.Type {
	case res.TypeString:
		s, err := e.String(id)
		return n, s, err
	case res.TypePlurals:
		s, err := e.Plural(id, quantity)
		return n, s, err
	case res.TypeArray:
		items, err := e.StringArray(id)
		return n, strings.Join(items, "\n"), err
	case res.TypeColor:
		c, err := e.Color(id)
		if err != nil {
			return n, "", err
		}
		if c == res.ColorMissing {
			return n, "", errors.NotFound("color", id, n.String())
		}
		return n, fmt.Sprintf("#%08X", uint32(c)), nil
	case res.TypeAttr:
		f, err := e.Attr(id)
		if err != nil {
			return n, "", err
		}
		return n, attrSummary(f), nil
	case res.TypeDrawable:
		d := e.Drawable(id)
		if d == nil {
			return n, "", errors.NotFound("drawable", id, n.String())
		}
		return n, drawableSummary(d), nil
	case res.TypeAnim:
		if d := e.AnimDrawable(id); d != nil {
			return n, drawableSummary(d), nil
		}
	}
	return n, "", errors.New(errors.ErrCodeInvalidInput, "%s cannot be resolved to a value; try the %s command", n, commandForType(n.Type))
}

func commandForType(typ res.Type) string {
	switch typ {
	case res.TypeLayout:
		return "layout"
	case res.TypeMenu:
		return "menu"
	case res.TypeXML:
		return "prefs"
	case res.TypeRaw:
		return "raw"
	}
	return "list"
}

func attrSummary(f *res.AttrFormat) string {
	s := strings.Join(f.Formats, "|")
	for _, c := range append(append([]res.AttrConstant(nil), f.Enums...), f.Flags...) {
		s += fmt.Sprintf("\n%s=%d", c.Name, c.Value)
	}
	return s
}

func drawableSummary(d *res.Drawable) string {
	switch {
	case d.Color != "":
		return d.Kind.String() + " " + d.Color
	case len(d.Frames) > 0:
		frames := make([]string, len(d.Frames))
		for i, f := range d.Frames {
			frames[i] = fmt.Sprintf("%s %dms", f.Drawable, f.Duration)
		}
		return d.Kind.String() + "\n" + strings.Join(frames, "\n")
	case d.Path != "":
		return d.Kind.String() + " " + d.Path
	}
	return d.Kind.String()
}

// printResolved writes "name = value" for single-line values and a
// headed block otherwise.
func printResolved(w io.Writer, n res.Name, value string) {
	if strings.Contains(value, "\n") {
		fmt.Fprintln(w, StyleTitle.Render(n.String()))
		for _, line := range strings.Split(value, "\n") {
			fmt.Fprintln(w, "  "+StyleValue.Render(line))
		}
		return
	}
	fmt.Fprintln(w, StyleHighlight.Render(n.String())+" "+StyleDim.Render("=")+" "+StyleValue.Render(value))
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var quantity int
	cmd := &cobra.Command{
		Use:   "resolve <name|id>",
		Short: "Resolve any value resource",
		Example: `  resloader resolve @string/app_name
  resloader resolve 0x7f040000
  resloader resolve android:color/black`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.initProject(cmd.Context())
			if err != nil {
				return err
			}
			defer p.Close()

			id, err := resourceID(p.engine, args[0], "")
			if err != nil {
				return err
			}
			n, value, err := resolveValue(p.engine, id, quantity)
			if err != nil {
				return err
			}
			printResolved(cmd.OutOrStdout(), n, value)
			return nil
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity for plurals")
	return cmd
}

// typedCommand creates a lookup command for one resource type.
func (c *CLI) typedCommand(use, short string, typ res.Type, run func(*cobra.Command, *res.Engine, int) error) *cobra.Command {
	return &cobra.Command{
		Use:               use + " <name|id>",
		Short:             short,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNames(typ),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.initProject(cmd.Context())
			if err != nil {
				return err
			}
			defer p.Close()

			id, err := resourceID(p.engine, args[0], typ)
			if err != nil {
				return err
			}
			return run(cmd, p.engine, id)
		},
	}
}

func (c *CLI) stringCommand() *cobra.Command {
	return c.typedCommand("string", "Print a string resource", res.TypeString,
		func(cmd *cobra.Command, e *res.Engine, id int) error {
			s, err := e.String(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		})
}

func (c *CLI) pluralCommand() *cobra.Command {
	var quantity int
	var all bool
	cmd := c.typedCommand("plural", "Print the plural form for a quantity", res.TypePlurals,
		func(cmd *cobra.Command, e *res.Engine, id int) error {
			w := cmd.OutOrStdout()
			if all {
				forms, err := e.Plurals(id)
				if err != nil {
					return err
				}
				for _, q := range []string{res.QuantityZero, res.QuantityOne, res.QuantityTwo, res.QuantityFew, res.QuantityMany, res.QuantityOther} {
					if s, ok := forms[q]; ok {
						fmt.Fprintf(w, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-5s", q)), s)
					}
				}
				return nil
			}
			s, err := e.Plural(id, quantity)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, s)
			return nil
		})
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to select the form for")
	cmd.Flags().BoolVar(&all, "all", false, "print every defined form")
	return cmd
}

func (c *CLI) arrayCommand() *cobra.Command {
	return c.typedCommand("array", "Print the items of a string array", res.TypeArray,
		func(cmd *cobra.Command, e *res.Engine, id int) error {
			items, err := e.StringArray(id)
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintln(cmd.OutOrStdout(), item)
			}
			return nil
		})
}

func (c *CLI) colorCommand() *cobra.Command {
	return c.typedCommand("color", "Print a color as #AARRGGBB", res.TypeColor,
		func(cmd *cobra.Command, e *res.Engine, id int) error {
			color, err := e.Color(id)
			if err != nil {
				return err
			}
			if color == res.ColorMissing {
				return errors.NotFound("color", id, "")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%08X\n", uint32(color))
			return nil
		})
}
