// Package entity defines the canonical in-memory model of one ER diagram.
//
// # Overview
//
// The diagram editor's exchange file has gone through several incompatible
// on-disk revisions. Every revision is normalized into the types in this
// package by [github.com/matzehuels/ermview/pkg/erm/decode]; nothing outside
// the decoder needs to know which revision a file was written in.
//
// The types are plain values. A [Diagram] owns the whole tree below it and
// nothing is shared by pointer between tables. Cross references inside a
// document (table names in [Relationship.Source] and [Relationship.Target],
// group names in [GroupRef], relationship names in
// [NormalColumn.Relationship]) are kept as strings and resolved by lookup.
//
// # Optional Fields
//
// A pointer field is optional: nil means the source file did not carry the
// tag at all, which is different from an explicitly empty value. Plain string
// fields are not optional and hold "" when the tag is missing.
//
// # Column Items
//
// A table's column list interleaves concrete columns and references to
// diagram-level column groups. [ColumnItem] is a closed union with exactly
// two variants, [NormalColumn] and [GroupRef], kept in file order. The
// decoder stores values; [AsValue] folds pointer variants built by hand onto
// the same two cases:
//
//	for _, item := range table.Columns.Items {
//	    v, _ := entity.AsValue(item)
//	    switch c := v.(type) {
//	    case entity.NormalColumn:
//	        fmt.Println("column", c.PhysicalName)
//	    case entity.GroupRef:
//	        fmt.Println("group", c.Name)
//	    }
//	}
package entity
