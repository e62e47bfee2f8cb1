package entity

// Columns is a table's ordered column list. Order is significant: it is the
// rendering order once group references are expanded.
type Columns struct {
	Items []ColumnItem
}

// ColumnItem is one entry of a table's column list. It is either a
// [NormalColumn] or a [GroupRef]. Pointers to either also satisfy the
// interface; consumers pass items through [AsValue] before switching on them.
type ColumnItem interface {
	columnItem()
}

// AsValue returns item with a pointer variant dereferenced, so callers only
// switch over NormalColumn and GroupRef. It reports false for a nil item or a
// nil pointer.
func AsValue(item ColumnItem) (ColumnItem, bool) {
	switch c := item.(type) {
	case NormalColumn, GroupRef:
		return c, true
	case *NormalColumn:
		if c != nil {
			return *c, true
		}
	case *GroupRef:
		if c != nil {
			return *c, true
		}
	}
	return nil, false
}

// NormalColumn is a concrete column.
type NormalColumn struct {
	PhysicalName string

	LogicalName  *string
	Description  *string
	ColumnType   *string
	DefaultValue *string
	Length       *uint16
	Decimal      *uint16

	Unsigned      bool
	NotNull       bool
	UniqueKey     bool
	PrimaryKey    bool
	AutoIncrement bool

	// ReferredColumn is set when the column is a foreign key, in the form
	// "table.<TABLE>.<COLUMN>"; Relationship names the owning relationship.
	ReferredColumn *string
	Relationship   *string
}

// GroupRef splices the columns of the named [ColumnGroup] in at this position.
type GroupRef struct {
	Name string
}

func (NormalColumn) columnItem() {}
func (GroupRef) columnItem()     {}
