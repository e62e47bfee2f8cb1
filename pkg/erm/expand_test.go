package erm

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ermview/pkg/erm/entity"
	"github.com/matzehuels/ermview/pkg/errors"
)

func TestExpandColumns(t *testing.T) {
	d, err := Open(membersPath)
	if err != nil {
		t.Fatal(err)
	}
	members, _ := FindTable(d, "MEMBERS")

	cols, err := ExpandColumns(d, members)
	if err != nil {
		t.Fatalf("ExpandColumns: %v", err)
	}

	type row struct{ Name, Group string }
	var got []row
	for _, c := range cols {
		got = append(got, row{c.PhysicalName, c.Group})
	}
	want := []row{
		{"MEMBER_ID", ""},
		{"LAST_NAME", ""},
		{"CREATED_AT", "COMMON"},
		{"UPDATED_AT", "COMMON"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("expanded columns mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandColumnsUnresolved(t *testing.T) {
	d := &entity.Diagram{}
	tbl := entity.Table{
		PhysicalName: "T",
		Columns:      entity.Columns{Items: []entity.ColumnItem{entity.GroupRef{Name: "COMMON"}}},
	}
	_, err := ExpandColumns(d, tbl)
	if !errors.Is(err, errors.ErrCodeUnresolvedGroup) {
		t.Errorf("err = %v, want UNRESOLVED_GROUP", err)
	}
}

func TestExpandColumnsPointerItems(t *testing.T) {
	d := &entity.Diagram{ColumnGroups: entity.ColumnGroups{Groups: []entity.ColumnGroup{{
		ColumnGroupName: "COMMON",
		Columns:         []entity.NormalColumn{{PhysicalName: "CREATED_AT"}},
	}}}}
	tbl := entity.Table{PhysicalName: "T", Columns: entity.Columns{Items: []entity.ColumnItem{
		&entity.NormalColumn{PhysicalName: "ID"},
		&entity.GroupRef{Name: "COMMON"},
	}}}

	cols, err := ExpandColumns(d, tbl)
	if err != nil {
		t.Fatalf("ExpandColumns: %v", err)
	}
	if len(cols) != 2 || cols[0].PhysicalName != "ID" || cols[1].Group != "COMMON" {
		t.Errorf("unexpected columns %+v", cols)
	}

	tbl.Columns.Items = append(tbl.Columns.Items, (*entity.NormalColumn)(nil))
	if _, err := ExpandColumns(d, tbl); !errors.Is(err, errors.ErrCodeInvalidValue) {
		t.Errorf("nil item err = %v, want INVALID_VALUE", err)
	}
}

func TestExpandColumnsEmptyGroup(t *testing.T) {
	d := &entity.Diagram{ColumnGroups: entity.ColumnGroups{Groups: []entity.ColumnGroup{{ColumnGroupName: "EMPTY"}}}}
	tbl := entity.Table{Columns: entity.Columns{Items: []entity.ColumnItem{
		entity.NormalColumn{PhysicalName: "A"},
		entity.GroupRef{Name: "EMPTY"},
	}}}
	cols, err := ExpandColumns(d, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 1 {
		t.Errorf("got %d columns, want 1", len(cols))
	}
}

func TestFindTable(t *testing.T) {
	d, err := Open(membersPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := FindTable(d, "MEMBERS"); !ok {
		t.Error("MEMBERS not found")
	}
	if _, ok := FindTable(d, "members"); ok {
		t.Error("lookup should be case sensitive")
	}
}

func TestRelationships(t *testing.T) {
	d, err := Open(membersPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"MEMBERS", "MEMBER_PROFILES"} {
		rels := Relationships(d, name)
		if len(rels) != 1 || rels[0].Name != "FK_MEMBER_PROFILES_MEMBERS" {
			t.Errorf("Relationships(%s) = %+v", name, rels)
		}
	}
	if rels := Relationships(d, "NOBODY"); len(rels) != 0 {
		t.Errorf("Relationships(NOBODY) = %+v, want none", rels)
	}
}
