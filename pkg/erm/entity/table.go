package entity

// Table is a table node ("diagram walker") on the canvas.
type Table struct {
	// PhysicalName identifies the table within the diagram and is never empty.
	// Relationships refer to it as "table.<PhysicalName>".
	PhysicalName string
	LogicalName  string
	Description  string

	X      uint16
	Y      uint16
	Width  uint16
	Height uint16

	FontName string
	FontSize uint16
	Color    Color

	// Connections holds the relationships for which this table is the
	// subject node. The counterpart table carries no mirror entry.
	Connections Connections
	Columns     Columns

	PrimaryKeyName     *string
	TableConstraint    *string
	CompoundUniqueKeys *CompoundUniqueKeyList
	Indexes            *IndexList
}

// Color is an RGB fill color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// Connections is the ordered list of a table's outgoing relationships.
type Connections struct {
	Relationships []Relationship
}

// Relationship is a directed foreign-key edge between two tables.
type Relationship struct {
	Name   string
	Source string
	Target string

	FkColumns FkColumns

	ParentCardinality Cardinality
	ChildCardinality  Cardinality
	ReferenceForPK    bool
	OnDeleteAction    ReferentialAction
	OnUpdateAction    ReferentialAction
}

// FkColumns lists the foreign-key columns of a relationship.
type FkColumns struct {
	FkColumn []FkColumn
}

// FkColumn names one foreign-key column.
type FkColumn struct {
	FkColumnName string
}

// CompoundUniqueKeyList holds a table's compound unique keys.
type CompoundUniqueKeyList struct {
	Keys []CompoundUniqueKey
}

// CompoundUniqueKey is a named set of columns that are jointly unique.
type CompoundUniqueKey struct {
	Name    string
	Columns []ColumnRef
}

// ColumnRef points at a column by id ("table.<TABLE>.<COLUMN>").
type ColumnRef struct {
	ColumnID string
}

// IndexList holds a table's secondary indexes.
type IndexList struct {
	Indexes []Index
}

// Index is a secondary index on a table.
type Index struct {
	Name        string
	IndexType   *string
	Description *string
	FullText    bool
	NonUnique   bool
	Columns     []IndexColumn
}

// IndexColumn is one column of an [Index] with its sort direction.
type IndexColumn struct {
	ColumnID string
	Desc     bool
}
