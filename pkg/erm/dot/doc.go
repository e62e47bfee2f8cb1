// Package dot exports a diagram's tables and relationships as a Graphviz
// graph.
//
// # Overview
//
// Tables become nodes and relationships become edges from the source table
// to the target table. No layout is computed: every node is pinned to the
// position and size stored in the diagram file, so the output matches what
// the diagram editor shows.
//
//	src, err := dot.ToDOT(d, dot.Options{Columns: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz] with the neato engine,
// which honors pinned positions. The DOT source can also be written out and
// handed to an external Graphviz install.
package dot
