package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ermview/pkg/erm"
	"github.com/matzehuels/ermview/pkg/erm/dto"
	"github.com/matzehuels/ermview/pkg/errors"
)

// openCommand prints a diagram in its transport shape, the same value a
// host application receives from erm.LoadDiagram.
func (c *CLI) openCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "open <file.erm>",
		Short: "Print a diagram as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateDiagramPath(args[0]); err != nil {
				return err
			}
			d, err := erm.LoadDiagram(args[0])
			if err != nil {
				return err
			}
			data, err := marshalDiagram(d, c.Config.Output.Indent)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
			}
			printSuccess(cmd.OutOrStdout(), "Wrote %s diagram with %d tables", d.DiagramSettings.Database, len(d.DiagramWalkers.Tables))
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file instead of stdout")
	return cmd
}

func marshalDiagram(d *dto.Diagram, indent int) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent > 0 {
		data, err = json.MarshalIndent(d, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(d)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode diagram")
	}
	return append(data, '\n'), nil
}

// infoCommand summarizes a diagram.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.erm>",
		Short: "Summarize a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.load(args[0])
			if err != nil {
				return err
			}
			s := summarize(r)

			w := cmd.OutOrStdout()
			printTitle(w, args[0])
			printKeyValue(w, "database", s.database)
			printKeyValue(w, "revision", s.revision)
			printKeyValue(w, "tables", fmt.Sprint(s.tables))
			printKeyValue(w, "columns", fmt.Sprint(s.columns))
			printKeyValue(w, "groups", fmt.Sprint(s.groups))
			printKeyValue(w, "relationships", fmt.Sprint(s.relationships))
			printKeyValue(w, "indexes", fmt.Sprint(s.indexes))
			printKeyValue(w, "unique keys", fmt.Sprint(s.uniqueKeys))
			return nil
		},
	}
}

type summary struct {
	database      string
	revision      string
	tables        int
	columns       int
	groups        int
	relationships int
	indexes       int
	uniqueKeys    int
}

// summarize counts columns after group expansion, so a group used by three
// tables adds its columns three times.
func summarize(r *erm.Report) summary {
	d := r.Diagram
	s := summary{
		database: d.DiagramSettings.Database,
		revision: r.Revision.String(),
		tables:   len(d.DiagramWalkers.Tables),
		groups:   len(d.ColumnGroups.Groups),
	}
	for _, t := range d.DiagramWalkers.Tables {
		if cols, err := erm.ExpandColumns(d, t); err == nil {
			s.columns += len(cols)
		}
		s.relationships += len(t.Connections.Relationships)
		if t.Indexes != nil {
			s.indexes += len(t.Indexes.Indexes)
		}
		if t.CompoundUniqueKeys != nil {
			s.uniqueKeys += len(t.CompoundUniqueKeys.Keys)
		}
	}
	return s
}
