package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ermview/pkg/erm/dot"
	"github.com/matzehuels/ermview/pkg/erm/entity"
	"github.com/matzehuels/ermview/pkg/errors"
)

const (
	formatDOT = "dot" // Graphviz source
	formatSVG = "svg" // rendered in-process with neato
)

var renderFormats = []string{formatDOT, formatSVG}

type renderOpts struct {
	output  string
	format  string
	columns bool
	logical bool
}

// renderCommand writes the diagram as DOT or SVG with every table pinned to
// its stored canvas position.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file.erm>",
		Short: "Render a diagram to DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("format") {
				opts.format = c.Config.Render.Format
			}
			if !flags.Changed("columns") {
				opts.columns = c.Config.Render.Columns
			}
			if !flags.Changed("logical") {
				opts.logical = c.Config.Output.Logical
			}
			if err := errors.ValidateFormat(opts.format, renderFormats...); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.columns, "columns", true, "list columns inside each table")
	cmd.Flags().BoolVar(&opts.logical, "logical", false, "label with logical names")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	r, err := c.load(path)
	if err != nil {
		return err
	}

	data, err := renderDiagram(ctx, r.Diagram, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + opts.format
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", out)
	}
	logger.Debug("rendered", "format", opts.format, "bytes", len(data))

	printSuccess(cmd.OutOrStdout(), "Rendered %d tables", len(r.Diagram.DiagramWalkers.Tables))
	printFile(cmd.OutOrStdout(), out)
	return nil
}

// renderDiagram produces the bytes for opts.format. SVG rendering can take a
// moment on first use, so a spinner runs on status while it works.
func renderDiagram(ctx context.Context, d *entity.Diagram, opts renderOpts, status io.Writer) ([]byte, error) {
	src, err := dot.ToDOT(d, dot.Options{Columns: opts.columns, Logical: opts.logical})
	if err != nil {
		return nil, err
	}
	if opts.format == formatDOT {
		return []byte(src), nil
	}

	s := newSpinner(ctx, status, "Rendering SVG...")
	s.start()
	svg, err := dot.RenderSVG(ctx, src)
	s.stop()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	return svg, nil
}
