package decode

// field maps one canonical field to the raw tags that may carry it. The first
// tag is what current files write; later tags are spellings used by other
// revisions of the format. Any tag not listed here is ignored.
type field struct {
	name string
	tags []string
}

// Element tags that only structure the document.
const (
	tagDiagram          = "diagram"
	tagDiagramSettings  = "diagram_settings"
	tagDiagramWalkers   = "diagram_walkers"
	tagTable            = "table"
	tagColor            = "color"
	tagConnections      = "connections"
	tagRelationship     = "relationship"
	tagFkColumns        = "fk_columns"
	tagFkColumn         = "fk_column"
	tagColumns          = "columns"
	tagNormalColumn     = "normal_column"
	tagColumnGroup      = "column_group"
	tagColumnGroups     = "column_groups"
	tagCompoundKeyList  = "compound_unique_key_list"
	tagCompoundKey      = "compound_unique_key"
	tagIndexes          = "indexes"
	tagIndex            = "index"
	tagColumn           = "column"
	tagPrimaryKeyName   = "primary_key_name"
	tagTableConstraint  = "table_constraint"
	tagColumnGroupName  = "column_group_name"
	tagReferredColumn   = "referred_column"
	tagRelationshipName = "relationship"
)

// DiagramSettings fields.
var fDatabase = field{"database", []string{"database"}}

// Table fields.
var (
	fTablePhysicalName = field{"physical_name", []string{"physical_name"}}
	fTableLogicalName  = field{"logical_name", []string{"logical_name"}}
	fTableDescription  = field{"description", []string{"description"}}
	fX                 = field{"x", []string{"x"}}
	fY                 = field{"y", []string{"y"}}
	fWidth             = field{"width", []string{"width"}}
	fHeight            = field{"height", []string{"height"}}
	fFontName          = field{"font_name", []string{"font_name"}}
	fFontSize          = field{"font_size", []string{"font_size"}}
	fPrimaryKeyName    = field{"primary_key_name", []string{tagPrimaryKeyName}}
	fTableConstraint   = field{"table_constraint", []string{tagTableConstraint}}
)

// Color fields.
var (
	fRed   = field{"r", []string{"r"}}
	fGreen = field{"g", []string{"g"}}
	fBlue  = field{"b", []string{"b"}}
)

// Relationship fields.
var (
	fRelName           = field{"name", []string{"name"}}
	fRelSource         = field{"source", []string{"source"}}
	fRelTarget         = field{"target", []string{"target"}}
	fParentCardinality = field{"parent_cardinality", []string{"parent_cardinality"}}
	fChildCardinality  = field{"child_cardinality", []string{"child_cardinality"}}
	fReferenceForPK    = field{"reference_for_pk", []string{"reference_for_pk"}}
	fOnDeleteAction    = field{"on_delete_action", []string{"on_delete_action"}}
	fOnUpdateAction    = field{"on_update_action", []string{"on_update_action"}}
	fFkColumnName      = field{"fk_column_name", []string{"fk_column_name"}}
)

// NormalColumn fields. The column type is written as <type> by the editor.
var (
	fColPhysicalName    = field{"physical_name", []string{"physical_name"}}
	fColLogicalName     = field{"logical_name", []string{"logical_name"}}
	fColDescription     = field{"description", []string{"description"}}
	fColumnType         = field{"column_type", []string{"type", "column_type"}}
	fDefaultValue       = field{"default_value", []string{"default_value"}}
	fLength             = field{"length", []string{"length"}}
	fDecimal            = field{"decimal", []string{"decimal"}}
	fUnsigned           = field{"unsigned", []string{"unsigned"}}
	fNotNull            = field{"not_null", []string{"not_null"}}
	fUniqueKey          = field{"unique_key", []string{"unique_key"}}
	fPrimaryKey         = field{"primary_key", []string{"primary_key"}}
	fAutoIncrement      = field{"auto_increment", []string{"auto_increment"}}
	fReferredColumn     = field{"referred_column", []string{tagReferredColumn}}
	fColumnRelationship = field{"relationship", []string{tagRelationshipName}}
)

// ColumnGroup fields.
var fColumnGroupName = field{"column_group_name", []string{tagColumnGroupName}}

// CompoundUniqueKey and Index fields.
var (
	fKeyName          = field{"name", []string{"name"}}
	fColumnID         = field{"column_id", []string{"column_id"}}
	fIndexName        = field{"name", []string{"name"}}
	fIndexType        = field{"index_type", []string{"type", "index_type"}}
	fIndexDescription = field{"description", []string{"description"}}
	fFullText         = field{"full_text", []string{"full_text"}}
	fNonUnique        = field{"non_unique", []string{"non_unique"}}
	fDesc             = field{"desc", []string{"desc"}}
)
