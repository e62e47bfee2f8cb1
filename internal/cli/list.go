package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ermview/pkg/erm"
	"github.com/matzehuels/ermview/pkg/erm/entity"
)

func (c *CLI) tablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <file.erm>",
		Short: "List the tables of a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.load(args[0])
			if err != nil {
				return err
			}
			rows, err := tableRows(r.Diagram, c.Config.Output.Logical)
			if err != nil {
				return err
			}
			t := newTable([]string{"Table", "Description", "Columns", "Relationships", "Position"}, rows, nil)
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func tableRows(d *entity.Diagram, logical bool) ([][]string, error) {
	rows := make([][]string, 0, len(d.DiagramWalkers.Tables))
	for _, t := range d.DiagramWalkers.Tables {
		cols, err := erm.ExpandColumns(d, t)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []string{
			tableLabel(t, logical),
			t.Description,
			fmt.Sprint(len(cols)),
			fmt.Sprint(len(erm.Relationships(d, t.PhysicalName))),
			fmt.Sprintf("%d,%d %dx%d", t.X, t.Y, t.Width, t.Height),
		})
	}
	return rows, nil
}

func (c *CLI) columnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <file.erm> <table>",
		Short: "List a table's columns with groups expanded",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, t, err := c.loadTable(args[0], args[1])
			if err != nil {
				return err
			}
			cols, err := erm.ExpandColumns(d, t)
			if err != nil {
				return err
			}

			rows := columnRows(cols, c.Config.Output.Logical)
			tbl := newTable([]string{"Column", "Type", "PK", "NN", "UQ", "AI", "Default", "References", "Group"}, rows,
				func(row, col int) lipgloss.Style {
					switch {
					case col == 0 && row < len(cols) && cols[row].PrimaryKey:
						return StyleKey
					case col == 7:
						return StyleRef
					case col == 8:
						return StyleGroup
					}
					return lipgloss.NewStyle()
				})

			w := cmd.OutOrStdout()
			printTitle(w, tableLabel(t, c.Config.Output.Logical))
			fmt.Fprintln(w, tbl.Render())
			return nil
		},
	}
}

func columnRows(cols []erm.ExpandedColumn, logical bool) [][]string {
	rows := make([][]string, 0, len(cols))
	for _, c := range cols {
		rows = append(rows, []string{
			columnLabel(c.NormalColumn, logical),
			columnType(c.NormalColumn),
			mark(c.PrimaryKey),
			mark(c.NotNull),
			mark(c.UniqueKey),
			mark(c.AutoIncrement),
			deref(c.DefaultValue),
			deref(c.ReferredColumn),
			c.Group,
		})
	}
	return rows
}

func (c *CLI) relationshipsCommand() *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "relationships <file.erm>",
		Short: "List foreign-key relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.load(args[0])
			if err != nil {
				return err
			}

			var rels []entity.Relationship
			if only != "" {
				rels = erm.Relationships(r.Diagram, only)
			} else {
				for _, t := range r.Diagram.DiagramWalkers.Tables {
					rels = append(rels, t.Connections.Relationships...)
				}
			}

			tbl := newTable([]string{"Name", "Source", "Target", "Cardinality", "FK Columns", "On Delete", "On Update"},
				relationshipRows(rels), nil)
			fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&only, "table", "", "only relationships touching this table")
	return cmd
}

func relationshipRows(rels []entity.Relationship) [][]string {
	rows := make([][]string, 0, len(rels))
	for _, r := range rels {
		fks := make([]string, len(r.FkColumns.FkColumn))
		for i, fk := range r.FkColumns.FkColumn {
			fks[i] = fk.FkColumnName
		}
		rows = append(rows, []string{
			r.Name,
			r.SourceTable(),
			r.TargetTable(),
			string(r.ParentCardinality) + " " + iconArrow + " " + string(r.ChildCardinality),
			strings.Join(fks, ", "),
			string(r.OnDeleteAction),
			string(r.OnUpdateAction),
		})
	}
	return rows
}

// =============================================================================
// Formatting helpers
// =============================================================================

func tableLabel(t entity.Table, logical bool) string {
	if logical && t.LogicalName != "" {
		return t.LogicalName
	}
	return t.PhysicalName
}

func columnLabel(c entity.NormalColumn, logical bool) string {
	if logical && c.LogicalName != nil && *c.LogicalName != "" {
		return *c.LogicalName
	}
	return c.PhysicalName
}

// columnType renders a type with its size, e.g. "varchar(64)" or
// "decimal(10, 2)".
//
// The editor writes parameterized types with placeholders, such as
// "varchar(n)" or "decimal(p,s)". The placeholder count says which sizes the
// type takes; missing sizes print as 0. Types without placeholders get
// whatever sizes the column carries.
func columnType(c entity.NormalColumn) string {
	if c.ColumnType == nil {
		return ""
	}
	label, params := splitTypeParams(*c.ColumnType)

	var length, decimal *uint16
	switch params {
	case 0:
		length, decimal = c.Length, c.Decimal
		if length == nil && decimal != nil {
			length = new(uint16)
		}
	case 1:
		length = orZero(c.Length)
	default:
		length, decimal = orZero(c.Length), orZero(c.Decimal)
	}

	typ := label
	switch {
	case length != nil && decimal != nil:
		typ += fmt.Sprintf("(%d, %d)", *length, *decimal)
	case length != nil:
		typ += fmt.Sprintf("(%d)", *length)
	}
	if c.Unsigned {
		typ += " unsigned"
	}
	return typ
}

// splitTypeParams splits "decimal(p,s)" into "decimal" and 2. A token
// without a trailing parameter list comes back unchanged with 0.
func splitTypeParams(token string) (string, int) {
	token = strings.TrimSpace(token)
	open := strings.IndexByte(token, '(')
	if open <= 0 || !strings.HasSuffix(token, ")") {
		return token, 0
	}
	inner := strings.TrimSpace(token[open+1 : len(token)-1])
	if inner == "" {
		return strings.TrimSpace(token[:open]), 0
	}
	return strings.TrimSpace(token[:open]), strings.Count(inner, ",") + 1
}

func orZero(n *uint16) *uint16 {
	if n == nil {
		return new(uint16)
	}
	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
