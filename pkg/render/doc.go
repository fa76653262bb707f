// Package render turns inflated resource trees into something a person can
// look at.
//
// # Overview
//
// Views, menus and preference screens are inflated by [res.Engine] into
// plain trees. This package prints them:
//
//   - Indented text for views ([Tree]), menus ([Menu]) and preference
//     screens ([Preferences])
//   - Graphviz diagrams of view trees (in [nodelink] subpackage)
//   - Format conversion of SVG output to PDF and PNG ([ToPDF], [ToPNG])
//
// # Text Trees
//
//	root, err := engine.InflateView(id, nil)
//	fmt.Print(render.Tree(root, render.Options{Attrs: true}))
//
// Attributes are printed in document order. Enum and flag values appear
// already coerced to their numeric form.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg):
//
//	svg, err := nodelink.RenderSVG(nodelink.ToDOT(root, nodelink.Options{}))
//	png, err := render.ToPNG(svg, 2.0)
//
// [res.Engine]: github.com/matzehuels/resloader/pkg/res.Engine
// [nodelink]: github.com/matzehuels/resloader/pkg/render/nodelink
package render
