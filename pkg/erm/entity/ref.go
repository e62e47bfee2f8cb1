package entity

import "strings"

// TableRefPrefix starts every table and column reference in a diagram.
const TableRefPrefix = "table."

// SplitRef splits a reference such as "table.MEMBERS.MEMBER_ID" into its
// table and column parts. Column is empty for a plain table reference.
// ok is false when ref does not start with [TableRefPrefix].
func SplitRef(ref string) (table, column string, ok bool) {
	rest, ok := strings.CutPrefix(ref, TableRefPrefix)
	if !ok || rest == "" {
		return "", "", false
	}
	table, column, _ = strings.Cut(rest, ".")
	return table, column, true
}

// SourceTable returns the physical name of the relationship's source table.
func (r Relationship) SourceTable() string {
	t, _, _ := SplitRef(r.Source)
	return t
}

// TargetTable returns the physical name of the relationship's target table.
func (r Relationship) TargetTable() string {
	t, _, _ := SplitRef(r.Target)
	return t
}
