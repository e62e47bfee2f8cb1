package entity

// Diagram is one complete ER diagram document.
type Diagram struct {
	DiagramSettings DiagramSettings
	DiagramWalkers  DiagramWalkers
	ColumnGroups    ColumnGroups
}

// DiagramSettings holds document-wide settings.
//
// The file also carries presentation-only settings (capitalization,
// notation style, view mode); those are read past and not modeled.
type DiagramSettings struct {
	// Database is the target dialect name, e.g. "MySQL".
	Database string
}

// DiagramWalkers is the set of table nodes placed on the canvas, in file order.
type DiagramWalkers struct {
	Tables []Table
}

// ColumnGroups is the diagram-level table of reusable column groups.
type ColumnGroups struct {
	Groups []ColumnGroup
}

// ColumnGroup is a named, ordered list of columns that tables splice in
// through a [GroupRef]. Names are unique within a diagram.
type ColumnGroup struct {
	ColumnGroupName string
	Columns         []NormalColumn
}
