package entity

// Cardinality is the multiplicity at one end of a relationship.
type Cardinality string

// Cardinalities written by the diagram editor.
const (
	CardinalityOne     Cardinality = "1"
	CardinalityZeroOne Cardinality = "0..1"
	CardinalityOneN    Cardinality = "1..n"
	CardinalityZeroN   Cardinality = "0..n"
)

// Cardinalities lists every valid cardinality.
var Cardinalities = []Cardinality{
	CardinalityOne,
	CardinalityZeroOne,
	CardinalityOneN,
	CardinalityZeroN,
}

// Valid reports whether c is one of [Cardinalities].
func (c Cardinality) Valid() bool {
	switch c {
	case CardinalityOne, CardinalityZeroOne, CardinalityOneN, CardinalityZeroN:
		return true
	}
	return false
}

// ReferentialAction is an ON DELETE / ON UPDATE policy token. The set is
// dialect dependent, so unknown tokens are kept as written.
type ReferentialAction string

// Actions common to the supported dialects.
const (
	ActionRestrict   ReferentialAction = "RESTRICT"
	ActionCascade    ReferentialAction = "CASCADE"
	ActionSetNull    ReferentialAction = "SET NULL"
	ActionSetDefault ReferentialAction = "SET DEFAULT"
	ActionNoAction   ReferentialAction = "NO ACTION"
)
