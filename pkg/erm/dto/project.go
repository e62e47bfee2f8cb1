package dto

import (
	"fmt"

	"github.com/matzehuels/ermview/pkg/erm/entity"
)

// FromEntity projects a canonical diagram into its transport shape. It is
// pure: the result shares no memory with d.
func FromEntity(d *entity.Diagram) *Diagram {
	if d == nil {
		return nil
	}
	return &Diagram{
		DiagramSettings: DiagramSettings{Database: d.DiagramSettings.Database},
		DiagramWalkers:  DiagramWalkers{Tables: mapSlice(d.DiagramWalkers.Tables, fromTable)},
		ColumnGroups:    ColumnGroups{ColumnGroups: mapSlice(d.ColumnGroups.Groups, fromColumnGroup)},
	}
}

// ToEntity maps a DTO back onto the canonical model. For any decoded
// diagram d, ToEntity(FromEntity(d)) equals d.
func ToEntity(d *Diagram) *entity.Diagram {
	if d == nil {
		return nil
	}
	return &entity.Diagram{
		DiagramSettings: entity.DiagramSettings{Database: d.DiagramSettings.Database},
		DiagramWalkers:  entity.DiagramWalkers{Tables: mapSlice(d.DiagramWalkers.Tables, toTable)},
		ColumnGroups:    entity.ColumnGroups{Groups: mapSlice(d.ColumnGroups.ColumnGroups, toColumnGroup)},
	}
}

// mapSlice always returns a non-nil slice.
func mapSlice[S, D any](in []S, f func(S) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func fromColumnGroup(g entity.ColumnGroup) ColumnGroup {
	return ColumnGroup{
		ColumnGroupName: g.ColumnGroupName,
		Columns:         mapSlice(g.Columns, fromNormalColumn),
	}
}

func toColumnGroup(g ColumnGroup) entity.ColumnGroup {
	return entity.ColumnGroup{
		ColumnGroupName: g.ColumnGroupName,
		Columns:         mapSlice(g.Columns, toNormalColumn),
	}
}

func fromTable(t entity.Table) Table {
	out := Table{
		PhysicalName:    t.PhysicalName,
		LogicalName:     t.LogicalName,
		Description:     t.Description,
		X:               t.X,
		Y:               t.Y,
		Width:           t.Width,
		Height:          t.Height,
		FontName:        t.FontName,
		FontSize:        t.FontSize,
		Color:           Color{R: t.Color.R, G: t.Color.G, B: t.Color.B},
		Connections:     Connections{Relationships: mapSlice(t.Connections.Relationships, fromRelationship)},
		Columns:         Columns{Items: mapSlice(t.Columns.Items, fromColumnItem)},
		PrimaryKeyName:  clone(t.PrimaryKeyName),
		TableConstraint: clone(t.TableConstraint),
	}
	if k := t.CompoundUniqueKeys; k != nil {
		out.CompoundUniqueKeyList = &CompoundUniqueKeyList{CompoundUniqueKeys: mapSlice(k.Keys, fromCompoundKey)}
	}
	if i := t.Indexes; i != nil {
		out.Indexes = &IndexList{Indexes: mapSlice(i.Indexes, fromIndex)}
	}
	return out
}

func toTable(t Table) entity.Table {
	out := entity.Table{
		PhysicalName:    t.PhysicalName,
		LogicalName:     t.LogicalName,
		Description:     t.Description,
		X:               t.X,
		Y:               t.Y,
		Width:           t.Width,
		Height:          t.Height,
		FontName:        t.FontName,
		FontSize:        t.FontSize,
		Color:           entity.Color{R: t.Color.R, G: t.Color.G, B: t.Color.B},
		Connections:     entity.Connections{Relationships: mapSlice(t.Connections.Relationships, toRelationship)},
		Columns:         entity.Columns{Items: mapSlice(t.Columns.Items, toColumnItem)},
		PrimaryKeyName:  clone(t.PrimaryKeyName),
		TableConstraint: clone(t.TableConstraint),
	}
	if k := t.CompoundUniqueKeyList; k != nil {
		out.CompoundUniqueKeys = &entity.CompoundUniqueKeyList{Keys: mapSlice(k.CompoundUniqueKeys, toCompoundKey)}
	}
	if i := t.Indexes; i != nil {
		out.Indexes = &entity.IndexList{Indexes: mapSlice(i.Indexes, toIndex)}
	}
	return out
}

func fromRelationship(r entity.Relationship) Relationship {
	return Relationship{
		Name:   r.Name,
		Source: r.Source,
		Target: r.Target,
		FkColumns: FkColumns{FkColumn: mapSlice(r.FkColumns.FkColumn, func(c entity.FkColumn) FkColumn {
			return FkColumn{FkColumnName: c.FkColumnName}
		})},
		ParentCardinality: string(r.ParentCardinality),
		ChildCardinality:  string(r.ChildCardinality),
		ReferenceForPK:    r.ReferenceForPK,
		OnDeleteAction:    string(r.OnDeleteAction),
		OnUpdateAction:    string(r.OnUpdateAction),
	}
}

func toRelationship(r Relationship) entity.Relationship {
	return entity.Relationship{
		Name:   r.Name,
		Source: r.Source,
		Target: r.Target,
		FkColumns: entity.FkColumns{FkColumn: mapSlice(r.FkColumns.FkColumn, func(c FkColumn) entity.FkColumn {
			return entity.FkColumn{FkColumnName: c.FkColumnName}
		})},
		ParentCardinality: entity.Cardinality(r.ParentCardinality),
		ChildCardinality:  entity.Cardinality(r.ChildCardinality),
		ReferenceForPK:    r.ReferenceForPK,
		OnDeleteAction:    entity.ReferentialAction(r.OnDeleteAction),
		OnUpdateAction:    entity.ReferentialAction(r.OnUpdateAction),
	}
}

// fromColumnItem panics on a nil item: a table's item list never holds one
// once decoded.
func fromColumnItem(item entity.ColumnItem) ColumnItem {
	v, ok := entity.AsValue(item)
	if !ok {
		panic(fmt.Sprintf("dto: invalid column item %T", item))
	}
	switch c := v.(type) {
	case entity.NormalColumn:
		return fromNormalColumn(c)
	case entity.GroupRef:
		return GroupRef(c.Name)
	}
	panic(fmt.Sprintf("dto: unknown column item %T", item))
}

func toColumnItem(item ColumnItem) entity.ColumnItem {
	v, ok := asValue(item)
	if !ok {
		panic(fmt.Sprintf("dto: invalid column item %T", item))
	}
	switch c := v.(type) {
	case NormalColumn:
		return toNormalColumn(c)
	case GroupRef:
		return entity.GroupRef{Name: string(c)}
	}
	panic(fmt.Sprintf("dto: unknown column item %T", item))
}

func fromNormalColumn(c entity.NormalColumn) NormalColumn {
	return NormalColumn{
		PhysicalName:   c.PhysicalName,
		LogicalName:    clone(c.LogicalName),
		Description:    clone(c.Description),
		ColumnType:     clone(c.ColumnType),
		DefaultValue:   clone(c.DefaultValue),
		Length:         clone(c.Length),
		Decimal:        clone(c.Decimal),
		Unsigned:       c.Unsigned,
		NotNull:        c.NotNull,
		UniqueKey:      c.UniqueKey,
		PrimaryKey:     c.PrimaryKey,
		AutoIncrement:  c.AutoIncrement,
		ReferredColumn: clone(c.ReferredColumn),
		Relationship:   clone(c.Relationship),
	}
}

func toNormalColumn(c NormalColumn) entity.NormalColumn {
	return entity.NormalColumn{
		PhysicalName:   c.PhysicalName,
		LogicalName:    clone(c.LogicalName),
		Description:    clone(c.Description),
		ColumnType:     clone(c.ColumnType),
		DefaultValue:   clone(c.DefaultValue),
		Length:         clone(c.Length),
		Decimal:        clone(c.Decimal),
		Unsigned:       c.Unsigned,
		NotNull:        c.NotNull,
		UniqueKey:      c.UniqueKey,
		PrimaryKey:     c.PrimaryKey,
		AutoIncrement:  c.AutoIncrement,
		ReferredColumn: clone(c.ReferredColumn),
		Relationship:   clone(c.Relationship),
	}
}

func fromCompoundKey(k entity.CompoundUniqueKey) CompoundUniqueKey {
	return CompoundUniqueKey{
		Name: k.Name,
		Columns: mapSlice(k.Columns, func(c entity.ColumnRef) ColumnRef {
			return ColumnRef{ColumnID: c.ColumnID}
		}),
	}
}

func toCompoundKey(k CompoundUniqueKey) entity.CompoundUniqueKey {
	return entity.CompoundUniqueKey{
		Name: k.Name,
		Columns: mapSlice(k.Columns, func(c ColumnRef) entity.ColumnRef {
			return entity.ColumnRef{ColumnID: c.ColumnID}
		}),
	}
}

func fromIndex(i entity.Index) Index {
	return Index{
		Name:        i.Name,
		IndexType:   clone(i.IndexType),
		Description: clone(i.Description),
		FullText:    i.FullText,
		NonUnique:   i.NonUnique,
		Columns: mapSlice(i.Columns, func(c entity.IndexColumn) IndexColumn {
			return IndexColumn{ColumnID: c.ColumnID, Desc: c.Desc}
		}),
	}
}

func toIndex(i Index) entity.Index {
	return entity.Index{
		Name:        i.Name,
		IndexType:   clone(i.IndexType),
		Description: clone(i.Description),
		FullText:    i.FullText,
		NonUnique:   i.NonUnique,
		Columns: mapSlice(i.Columns, func(c IndexColumn) entity.IndexColumn {
			return entity.IndexColumn{ColumnID: c.ColumnID, Desc: c.Desc}
		}),
	}
}
