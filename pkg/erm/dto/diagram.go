package dto

// Diagram mirrors [entity.Diagram].
type Diagram struct {
	DiagramSettings DiagramSettings `json:"diagramSettings"`
	DiagramWalkers  DiagramWalkers  `json:"diagramWalkers"`
	ColumnGroups    ColumnGroups    `json:"columnGroups"`
}

// DiagramSettings mirrors [entity.DiagramSettings].
type DiagramSettings struct {
	Database string `json:"database"`
}

// DiagramWalkers mirrors [entity.DiagramWalkers].
type DiagramWalkers struct {
	Tables []Table `json:"tables"`
}

// ColumnGroups mirrors [entity.ColumnGroups].
type ColumnGroups struct {
	ColumnGroups []ColumnGroup `json:"columnGroups"`
}

// ColumnGroup mirrors [entity.ColumnGroup].
type ColumnGroup struct {
	ColumnGroupName string         `json:"columnGroupName"`
	Columns         []NormalColumn `json:"columns"`
}

// Table mirrors [entity.Table].
type Table struct {
	PhysicalName string `json:"physicalName"`
	LogicalName  string `json:"logicalName"`
	Description  string `json:"description"`

	X      uint16 `json:"x"`
	Y      uint16 `json:"y"`
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`

	FontName string `json:"fontName"`
	FontSize uint16 `json:"fontSize"`
	Color    Color  `json:"color"`

	Connections Connections `json:"connections"`
	Columns     Columns     `json:"columns"`

	PrimaryKeyName        *string                `json:"primaryKeyName,omitempty"`
	TableConstraint       *string                `json:"tableConstraint,omitempty"`
	CompoundUniqueKeyList *CompoundUniqueKeyList `json:"compoundUniqueKeyList,omitempty"`
	Indexes               *IndexList             `json:"indexes,omitempty"`
}

// Color mirrors [entity.Color].
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Connections mirrors [entity.Connections].
type Connections struct {
	Relationships []Relationship `json:"relationships"`
}

// Relationship mirrors [entity.Relationship]. Cardinalities and actions are
// plain strings on the wire.
type Relationship struct {
	Name              string    `json:"name"`
	Source            string    `json:"source"`
	Target            string    `json:"target"`
	FkColumns         FkColumns `json:"fkColumns"`
	ParentCardinality string    `json:"parentCardinality"`
	ChildCardinality  string    `json:"childCardinality"`
	ReferenceForPK    bool      `json:"referenceForPk"`
	OnDeleteAction    string    `json:"onDeleteAction"`
	OnUpdateAction    string    `json:"onUpdateAction"`
}

// FkColumns mirrors [entity.FkColumns].
type FkColumns struct {
	FkColumn []FkColumn `json:"fkColumn"`
}

// FkColumn mirrors [entity.FkColumn].
type FkColumn struct {
	FkColumnName string `json:"fkColumnName"`
}

// CompoundUniqueKeyList mirrors [entity.CompoundUniqueKeyList].
type CompoundUniqueKeyList struct {
	CompoundUniqueKeys []CompoundUniqueKey `json:"compoundUniqueKeys"`
}

// CompoundUniqueKey mirrors [entity.CompoundUniqueKey].
type CompoundUniqueKey struct {
	Name    string      `json:"name"`
	Columns []ColumnRef `json:"columns"`
}

// ColumnRef mirrors [entity.ColumnRef].
type ColumnRef struct {
	ColumnID string `json:"columnId"`
}

// IndexList mirrors [entity.IndexList].
type IndexList struct {
	Indexes []Index `json:"indexes"`
}

// Index mirrors [entity.Index].
type Index struct {
	Name        string        `json:"name"`
	IndexType   *string       `json:"indexType,omitempty"`
	Description *string       `json:"description,omitempty"`
	FullText    bool          `json:"fullText"`
	NonUnique   bool          `json:"nonUnique"`
	Columns     []IndexColumn `json:"columns"`
}

// IndexColumn mirrors [entity.IndexColumn].
type IndexColumn struct {
	ColumnID string `json:"columnId"`
	Desc     bool   `json:"desc"`
}
