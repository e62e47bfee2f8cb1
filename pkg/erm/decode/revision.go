package decode

import "github.com/matzehuels/ermview/pkg/erm/xmltree"

// Revision identifies an on-disk shape of the diagram file.
type Revision int

// Known revisions, oldest first. Each one is a superset of the previous.
const (
	// RevisionFlat files hold tables with normal columns only and no
	// relationships.
	RevisionFlat Revision = iota + 1
	// RevisionForeignKeys files add per-table <connections>.
	RevisionForeignKeys
	// RevisionGrouped files add diagram-level column groups referenced from
	// table column lists, compound unique keys, indexes, primary key names
	// and table constraints.
	RevisionGrouped
)

// String returns a short name for the revision.
func (r Revision) String() string {
	switch r {
	case RevisionFlat:
		return "flat"
	case RevisionForeignKeys:
		return "foreign-keys"
	case RevisionGrouped:
		return "grouped"
	}
	return "unknown"
}

// groupedMarkers are tags that only exist from RevisionGrouped on.
var groupedMarkers = []string{
	tagColumnGroups,
	tagColumnGroup,
	tagCompoundKeyList,
	tagIndexes,
	tagPrimaryKeyName,
	tagTableConstraint,
}

// DetectRevision inspects which tags the document uses and returns the
// newest revision they imply.
func DetectRevision(root *xmltree.Element) Revision {
	walkers := root.Child(tagDiagramWalkers)
	if root.Has(tagColumnGroups) {
		return RevisionGrouped
	}
	for _, t := range walkers.ChildrenNamed(tagTable) {
		for _, m := range groupedMarkers {
			if t.Has(m) || t.Child(tagColumns).Has(m) {
				return RevisionGrouped
			}
		}
	}
	for _, t := range walkers.ChildrenNamed(tagTable) {
		if t.Has(tagConnections) {
			return RevisionForeignKeys
		}
	}
	return RevisionFlat
}
