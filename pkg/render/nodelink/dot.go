// Package nodelink renders view trees as node-link diagrams with Graphviz.
//
// Convert an inflated tree to DOT, then render it to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// Included layouts are already expanded by the engine, so an <include> shows
// up as the subtree it pulled in.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/resloader/pkg/render"
	"github.com/matzehuels/resloader/pkg/res"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the element attributes to node labels. When false only
	// the tag and the android:id are shown.
	Detailed bool
}

// ToDOT converts a view tree to Graphviz DOT source. Nodes are numbered in
// document order ("n0" is the root).
func ToDOT(root *res.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	if root != nil {
		buf.WriteString("\n")
		var edges []string
		next := 0
		var visit func(n *res.Node) string
		visit = func(n *res.Node) string {
			id := "n" + strconv.Itoa(next)
			next++
			fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
			for _, c := range n.Children {
				edges = append(edges, fmt.Sprintf("  %q -> %q;\n", id, visit(c)))
			}
			return id
		}
		visit(root)

		buf.WriteString("\n")
		for _, e := range edges {
			buf.WriteString(e)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *res.Node, detailed bool) string {
	if !detailed {
		if id := n.AttrValue("android:id"); id != "" {
			return n.Tag + "\n" + id
		}
		return n.Tag
	}

	parts := []string{n.Tag}
	for _, a := range n.Attrs {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.TrimPrefix(a.Name, "android:"), a.Value))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *res.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if len(n.Children) > 0 {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> header with one whose width
// and height match the viewBox, so the diagram scales cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPNG renders DOT source to PNG via SVG conversion.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

// RenderPDF renders DOT source to PDF via SVG conversion.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}
