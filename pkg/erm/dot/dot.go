package dot

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ermview/pkg/erm"
	"github.com/matzehuels/ermview/pkg/erm/entity"
	"github.com/matzehuels/ermview/pkg/observability"
)

// pointsPerInch converts canvas pixels to Graphviz inches.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Columns lists each table's columns, with groups expanded, under the
	// table name.
	Columns bool
	// Logical labels tables and columns with their logical names where the
	// file has them.
	Logical bool
}

// ToDOT converts d to Graphviz DOT source.
//
// Relationships whose source or target table is not in the diagram are
// left out. An unresolved column group is an error when Columns is set.
func ToDOT(d *entity.Diagram, opts Options) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plaintext, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=9, arrowhead=none];\n")
	buf.WriteString("\n")

	known := make(map[string]bool, len(d.DiagramWalkers.Tables))
	for _, t := range d.DiagramWalkers.Tables {
		known[t.PhysicalName] = true

		label, err := fmtLabel(d, t, opts)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", t.PhysicalName, strings.Join(fmtAttrs(t, label), ", "))
	}

	buf.WriteString("\n")
	for _, t := range d.DiagramWalkers.Tables {
		for _, r := range t.Connections.Relationships {
			src, dst := r.SourceTable(), r.TargetTable()
			if !known[src] || !known[dst] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", src, dst, strings.Join(fmtEdge(r), ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtLabel(d *entity.Diagram, t entity.Table, opts Options) (string, error) {
	var b strings.Builder
	b.WriteString(`<<TABLE BORDER="1" CELLBORDER="0" CELLSPACING="0" CELLPADDING="3">`)
	fmt.Fprintf(&b, `<TR><TD BGCOLOR="%s"><B>%s</B></TD></TR>`, hexColor(t.Color), html.EscapeString(tableName(t, opts.Logical)))

	if opts.Columns {
		cols, err := erm.ExpandColumns(d, t)
		if err != nil {
			return "", err
		}
		for _, c := range cols {
			name := columnName(c.NormalColumn, opts.Logical)
			if c.PrimaryKey {
				name = "<U>" + html.EscapeString(name) + "</U>"
			} else {
				name = html.EscapeString(name)
			}
			fmt.Fprintf(&b, `<TR><TD ALIGN="LEFT">%s</TD></TR>`, name)
		}
	}

	b.WriteString(`</TABLE>>`)
	return b.String(), nil
}

// fmtAttrs pins the node center to the table's stored geometry. Canvas y
// grows downward, Graphviz y grows upward.
func fmtAttrs(t entity.Table, label string) []string {
	w := float64(t.Width) / pointsPerInch
	h := float64(t.Height) / pointsPerInch
	x := (float64(t.X) + float64(t.Width)/2) / pointsPerInch
	y := -(float64(t.Y) + float64(t.Height)/2) / pointsPerInch

	return []string{
		"label=" + label,
		fmt.Sprintf("pos=\"%.3f,%.3f!\"", x, y),
		fmt.Sprintf("width=%.3f", w),
		fmt.Sprintf("height=%.3f", h),
	}
}

func fmtEdge(r entity.Relationship) []string {
	return []string{
		fmt.Sprintf("taillabel=%q", string(r.ParentCardinality)),
		fmt.Sprintf("headlabel=%q", string(r.ChildCardinality)),
		fmt.Sprintf("tooltip=%q", r.Name),
	}
}

func tableName(t entity.Table, logical bool) string {
	if logical && t.LogicalName != "" {
		return t.LogicalName
	}
	return t.PhysicalName
}

func columnName(c entity.NormalColumn, logical bool) string {
	if logical && c.LogicalName != nil && *c.LogicalName != "" {
		return *c.LogicalName
	}
	return c.PhysicalName
}

func hexColor(c entity.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RenderSVG renders DOT source to SVG with the neato engine so pinned
// positions are kept.
func RenderSVG(ctx context.Context, dot string) (svg []byte, err error) {
	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, "neato")
	defer func() {
		hooks.OnRenderComplete(ctx, "neato", len(svg), time.Since(start), err)
	}()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

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

// normalizeViewBox replaces the root svg tag so the drawing scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
