// Package dto is the transport shape of a diagram handed to presentation
// code: the canonical [entity] model with camelCase JSON names.
//
// Every entity type has exactly one DTO type and every entity field maps to
// exactly one DTO field. [FromEntity] never fails and drops nothing;
// [ToEntity] is its inverse.
//
// # List Policy
//
// List fields are always materialized. A diagram with no relationships,
// columns, keys or groups marshals those lists as [] rather than null or a
// missing key, so two DTOs compare equal whenever their diagrams do,
// regardless of whether a list was nil or empty on the entity side.
//
// Optional scalars are pointers tagged omitempty: an absent value is a
// missing key, an explicitly empty one is "". The optional sub-objects
// compoundUniqueKeyList and indexes follow the same rule.
//
// # Column Items
//
// Items in [Columns] marshal by variant: a [GroupRef] is a bare JSON string
// holding the group name and a [NormalColumn] is an object.
//
//	"items": [
//	  {"physicalName": "MEMBER_ID", "primaryKey": true, ...},
//	  "COMMON"
//	]
package dto
