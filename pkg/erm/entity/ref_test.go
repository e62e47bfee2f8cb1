package entity

import "testing"

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref           string
		table, column string
		ok            bool
	}{
		{"table.MEMBERS", "MEMBERS", "", true},
		{"table.MEMBERS.MEMBER_ID", "MEMBERS", "MEMBER_ID", true},
		{"MEMBERS", "", "", false},
		{"table.", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			table, column, ok := SplitRef(tt.ref)
			if table != tt.table || column != tt.column || ok != tt.ok {
				t.Errorf("SplitRef(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.ref, table, column, ok, tt.table, tt.column, tt.ok)
			}
		})
	}
}

func TestRelationshipTables(t *testing.T) {
	r := Relationship{Source: "table.MEMBERS", Target: "table.MEMBER_PROFILES"}
	if got := r.SourceTable(); got != "MEMBERS" {
		t.Errorf("SourceTable() = %q", got)
	}
	if got := r.TargetTable(); got != "MEMBER_PROFILES" {
		t.Errorf("TargetTable() = %q", got)
	}
}
