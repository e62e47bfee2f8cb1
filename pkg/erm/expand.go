package erm

import (
	"github.com/matzehuels/ermview/pkg/erm/entity"
	"github.com/matzehuels/ermview/pkg/errors"
)

// ExpandedColumn is one concrete column of a table after group references
// have been spliced in. Group names the column group it came from and is
// empty for columns declared on the table itself.
type ExpandedColumn struct {
	entity.NormalColumn
	Group string
}

// ExpandColumns returns the columns of t in display order, replacing each
// group reference with that group's columns. A reference to a group missing
// from d is an UNRESOLVED_GROUP error; a nil item is INVALID_VALUE.
func ExpandColumns(d *entity.Diagram, t entity.Table) ([]ExpandedColumn, error) {
	groups := make(map[string][]entity.NormalColumn, len(d.ColumnGroups.Groups))
	for _, g := range d.ColumnGroups.Groups {
		groups[g.ColumnGroupName] = g.Columns
	}

	out := make([]ExpandedColumn, 0, len(t.Columns.Items))
	for i, item := range t.Columns.Items {
		v, ok := entity.AsValue(item)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidValue, "table %s: column item %d is %T", t.PhysicalName, i+1, item)
		}
		switch c := v.(type) {
		case entity.NormalColumn:
			out = append(out, ExpandedColumn{NormalColumn: c})
		case entity.GroupRef:
			cols, ok := groups[c.Name]
			if !ok {
				return nil, errors.New(errors.ErrCodeUnresolvedGroup, "table %s: column group %q is not defined", t.PhysicalName, c.Name)
			}
			for _, col := range cols {
				out = append(out, ExpandedColumn{NormalColumn: col, Group: c.Name})
			}
		}
	}
	return out, nil
}

// FindTable returns the table with the given physical name.
func FindTable(d *entity.Diagram, physicalName string) (entity.Table, bool) {
	for _, t := range d.DiagramWalkers.Tables {
		if t.PhysicalName == physicalName {
			return t, true
		}
	}
	return entity.Table{}, false
}

// Relationships returns every relationship in d that touches the named
// table, either as source or as target, in table then file order.
func Relationships(d *entity.Diagram, physicalName string) []entity.Relationship {
	var out []entity.Relationship
	for _, t := range d.DiagramWalkers.Tables {
		for _, r := range t.Connections.Relationships {
			if r.SourceTable() == physicalName || r.TargetTable() == physicalName {
				out = append(out, r)
			}
		}
	}
	return out
}
