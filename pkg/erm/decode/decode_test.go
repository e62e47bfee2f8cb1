package decode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ermview/pkg/erm/entity"
	"github.com/matzehuels/ermview/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func decodeFile(t *testing.T, name string) *entity.Diagram {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	d, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode(%s): %v", name, err)
	}
	return d
}

// table wraps column and connection markup in a table with valid geometry.
func table(name, inner string) string {
	return `<table>
		<physical_name>` + name + `</physical_name>
		<x>1</x><y>2</y><width>3</width><height>4</height>
		<font_size>9</font_size>
		<color><r>1</r><g>2</g><b>3</b></color>
		` + inner + `
	</table>`
}

func diagram(groups string, tables ...string) string {
	return `<diagram>
	<diagram_settings><database>MySQL</database></diagram_settings>
	` + groups + `
	<diagram_walkers>` + strings.Join(tables, "\n") + `</diagram_walkers>
</diagram>`
}

func TestDecodeMembers(t *testing.T) {
	d := decodeFile(t, "members.erm")

	if d.DiagramSettings.Database != "MySQL" {
		t.Errorf("Database = %q, want %q", d.DiagramSettings.Database, "MySQL")
	}

	tables := d.DiagramWalkers.Tables
	if len(tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(tables))
	}
	if tables[0].PhysicalName != "MEMBERS" || tables[1].PhysicalName != "MEMBER_PROFILES" {
		t.Errorf("tables = [%s %s], want [MEMBERS MEMBER_PROFILES]", tables[0].PhysicalName, tables[1].PhysicalName)
	}

	members := tables[0]
	if n := len(members.Connections.Relationships); n != 0 {
		t.Errorf("MEMBERS has %d relationships, want 0", n)
	}
	wantHeader := entity.Table{
		PhysicalName: "MEMBERS",
		LogicalName:  "members",
		Description:  "registered members",
		X:            120,
		Y:            80,
		Width:        220,
		Height:       140,
		FontName:     "Meiryo UI",
		FontSize:     9,
		Color:        entity.Color{R: 128, G: 128, B: 192},
	}
	ignore := cmpIgnoreBody()
	if diff := cmp.Diff(wantHeader, members, ignore); diff != "" {
		t.Errorf("MEMBERS header mismatch (-want +got):\n%s", diff)
	}

	wantItems := []entity.ColumnItem{
		entity.NormalColumn{
			PhysicalName:  "MEMBER_ID",
			LogicalName:   ptr("member id"),
			ColumnType:    ptr("bigint"),
			NotNull:       true,
			PrimaryKey:    true,
			AutoIncrement: true,
			Unsigned:      true,
		},
		entity.NormalColumn{
			PhysicalName: "LAST_NAME",
			LogicalName:  ptr("last name"),
			ColumnType:   ptr("varchar(n)"),
			Length:       ptr[uint16](64),
			NotNull:      true,
		},
		entity.GroupRef{Name: "COMMON"},
	}
	if diff := cmp.Diff(wantItems, members.Columns.Items); diff != "" {
		t.Errorf("MEMBERS columns mismatch (-want +got):\n%s", diff)
	}

	if members.PrimaryKeyName == nil || *members.PrimaryKeyName != "PK_MEMBERS" {
		t.Errorf("PrimaryKeyName = %v, want PK_MEMBERS", members.PrimaryKeyName)
	}
	if members.TableConstraint != nil {
		t.Errorf("TableConstraint = %q, want absent", *members.TableConstraint)
	}

	wantKeys := &entity.CompoundUniqueKeyList{Keys: []entity.CompoundUniqueKey{{
		Name: "UQ_MEMBERS_NAME",
		Columns: []entity.ColumnRef{
			{ColumnID: "table.MEMBERS.LAST_NAME"},
			{ColumnID: "table.MEMBERS.MEMBER_ID"},
		},
	}}}
	if diff := cmp.Diff(wantKeys, members.CompoundUniqueKeys); diff != "" {
		t.Errorf("compound keys mismatch (-want +got):\n%s", diff)
	}

	wantIndexes := &entity.IndexList{Indexes: []entity.Index{{
		Name:      "IX_MEMBERS_LAST_NAME",
		IndexType: ptr("BTREE"),
		NonUnique: true,
		Columns:   []entity.IndexColumn{{ColumnID: "table.MEMBERS.LAST_NAME"}},
	}}}
	if diff := cmp.Diff(wantIndexes, members.Indexes); diff != "" {
		t.Errorf("indexes mismatch (-want +got):\n%s", diff)
	}

	profiles := tables[1]
	wantRel := []entity.Relationship{{
		Name:              "FK_MEMBER_PROFILES_MEMBERS",
		Source:            "table.MEMBERS",
		Target:            "table.MEMBER_PROFILES",
		FkColumns:         entity.FkColumns{FkColumn: []entity.FkColumn{{FkColumnName: "MEMBER_ID"}}},
		ParentCardinality: entity.CardinalityOne,
		ChildCardinality:  entity.CardinalityZeroOne,
		ReferenceForPK:    true,
		OnDeleteAction:    entity.ActionRestrict,
		OnUpdateAction:    entity.ActionRestrict,
	}}
	if diff := cmp.Diff(wantRel, profiles.Connections.Relationships); diff != "" {
		t.Errorf("MEMBER_PROFILES relationships mismatch (-want +got):\n%s", diff)
	}

	fk, ok := profiles.Columns.Items[0].(entity.NormalColumn)
	if !ok {
		t.Fatalf("first MEMBER_PROFILES item is %T, want NormalColumn", profiles.Columns.Items[0])
	}
	if fk.ReferredColumn == nil || *fk.ReferredColumn != "table.MEMBERS.MEMBER_ID" {
		t.Errorf("ReferredColumn = %v, want table.MEMBERS.MEMBER_ID", fk.ReferredColumn)
	}
	if fk.ColumnType != nil {
		t.Errorf("ColumnType = %q, want absent", *fk.ColumnType)
	}

	bio := profiles.Columns.Items[1].(entity.NormalColumn)
	if bio.DefaultValue == nil || *bio.DefaultValue != "" {
		t.Errorf("DefaultValue = %v, want pointer to empty string", bio.DefaultValue)
	}
	if bio.Length != nil {
		t.Errorf("Length = %d, want absent", *bio.Length)
	}
	if profiles.TableConstraint == nil || *profiles.TableConstraint != "CHECK (MEMBER_ID > 0)" {
		t.Errorf("TableConstraint = %v, want CHECK (MEMBER_ID > 0)", profiles.TableConstraint)
	}
	if profiles.CompoundUniqueKeys != nil || profiles.Indexes != nil {
		t.Error("MEMBER_PROFILES should have no key or index lists")
	}

	groups := d.ColumnGroups.Groups
	if len(groups) != 1 || groups[0].ColumnGroupName != "COMMON" {
		t.Fatalf("groups = %+v, want one COMMON group", groups)
	}
	if n := len(groups[0].Columns); n != 2 {
		t.Errorf("COMMON has %d columns, want 2", n)
	}
}

// cmpIgnoreBody compares only the header fields of a table.
func cmpIgnoreBody() cmp.Option {
	return cmp.FilterPath(func(p cmp.Path) bool {
		switch p.String() {
		case "Connections", "Columns", "PrimaryKeyName", "TableConstraint", "CompoundUniqueKeys", "Indexes":
			return true
		}
		return false
	}, cmp.Ignore())
}

func TestDecodeLegacyFlat(t *testing.T) {
	d := decodeFile(t, "legacy_flat.erm")

	if d.DiagramSettings.Database != "PostgreSQL" {
		t.Errorf("Database = %q", d.DiagramSettings.Database)
	}
	if d.ColumnGroups.Groups == nil || len(d.ColumnGroups.Groups) != 0 {
		t.Errorf("Groups = %#v, want empty slice", d.ColumnGroups.Groups)
	}

	for _, tbl := range d.DiagramWalkers.Tables {
		if tbl.Connections.Relationships == nil {
			t.Errorf("%s: Relationships is nil, want empty slice", tbl.PhysicalName)
		}
		if tbl.Columns.Items == nil {
			t.Errorf("%s: Items is nil, want empty slice", tbl.PhysicalName)
		}
	}

	audit := d.DiagramWalkers.Tables[1]
	if audit.LogicalName != "" || audit.FontName != "" {
		t.Errorf("missing free text should read as empty, got %q / %q", audit.LogicalName, audit.FontName)
	}
	if len(audit.Columns.Items) != 0 {
		t.Errorf("AUDIT_LOG has %d columns, want 0", len(audit.Columns.Items))
	}
}

func TestDecodeLegacyForeignKeys(t *testing.T) {
	d := decodeFile(t, "legacy_fk.erm")

	orders := d.DiagramWalkers.Tables[0]
	col := orders.Columns.Items[0].(entity.NormalColumn)
	want := entity.NormalColumn{
		PhysicalName: "ORDER_ID",
		ColumnType:   ptr("number"),
		Length:       ptr[uint16](10),
		Decimal:      ptr[uint16](0),
	}
	if diff := cmp.Diff(want, col); diff != "" {
		t.Errorf("ORDER_ID mismatch (-want +got):\n%s", diff)
	}

	rels := d.DiagramWalkers.Tables[1].Connections.Relationships
	if len(rels) != 2 {
		t.Fatalf("got %d relationships, want 2", len(rels))
	}
	if rels[0].OnUpdateAction != entity.ActionNoAction {
		t.Errorf("OnUpdateAction = %q, want %q", rels[0].OnUpdateAction, entity.ActionNoAction)
	}
	self := rels[1]
	if len(self.FkColumns.FkColumn) != 0 || self.FkColumns.FkColumn == nil {
		t.Errorf("FkColumn = %#v, want empty slice", self.FkColumns.FkColumn)
	}
	if self.OnDeleteAction != "" || self.ReferenceForPK {
		t.Errorf("defaults not applied: %+v", self)
	}
}

func TestDecodeRelationshipCardinality(t *testing.T) {
	rel := func(name string) string {
		return `<relationship>
			<name>` + name + `</name>
			<source>table.A</source><target>table.B</target>
			<parent_cardinality>1</parent_cardinality>
			<child_cardinality>0..n</child_cardinality>
		</relationship>`
	}

	tests := []struct {
		name  string
		inner string
		want  int
	}{
		{"absent", ``, 0},
		{"empty connections", `<connections/>`, 0},
		{"one", `<connections>` + rel("R1") + `</connections>`, 1},
		{"many", `<connections>` + rel("R1") + rel("R2") + rel("R3") + `</connections>`, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(strings.NewReader(diagram("", table("A", tt.inner))))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			got := d.DiagramWalkers.Tables[0].Connections.Relationships
			if got == nil {
				t.Fatal("Relationships is nil")
			}
			if len(got) != tt.want {
				t.Errorf("got %d relationships, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDecodeColumnOrder(t *testing.T) {
	groups := `<column_groups>
		<column_group><column_group_name>G1</column_group_name></column_group>
		<column_group><column_group_name>G2</column_group_name></column_group>
	</column_groups>`
	cols := `<columns>
		<column_group>G2</column_group>
		<normal_column><physical_name>A</physical_name></normal_column>
		<column_group>G1</column_group>
		<normal_column><physical_name>B</physical_name></normal_column>
		<normal_column><physical_name>C</physical_name></normal_column>
		<column_group>G2</column_group>
	</columns>`

	d, err := Decode(strings.NewReader(diagram(groups, table("T", cols))))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []entity.ColumnItem{
		entity.GroupRef{Name: "G2"},
		entity.NormalColumn{PhysicalName: "A"},
		entity.GroupRef{Name: "G1"},
		entity.NormalColumn{PhysicalName: "B"},
		entity.NormalColumn{PhysicalName: "C"},
		entity.GroupRef{Name: "G2"},
	}
	if diff := cmp.Diff(want, d.DiagramWalkers.Tables[0].Columns.Items); diff != "" {
		t.Errorf("column order mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	colorless := `<table>
		<physical_name>T</physical_name>
		<x>1</x><y>2</y><width>3</width><height>4</height><font_size>9</font_size>
	</table>`

	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{
			name: "not xml",
			doc:  `<diagram><diagram_settings>`,
			code: errors.ErrCodeMalformedXML,
		},
		{
			name: "wrong root",
			doc:  `<project/>`,
			code: errors.ErrCodeInvalidSchema,
		},
		{
			name: "missing settings",
			doc:  `<diagram><diagram_walkers/></diagram>`,
			code: errors.ErrCodeMissingField,
		},
		{
			name: "empty database",
			doc:  `<diagram><diagram_settings><database></database></diagram_settings></diagram>`,
			code: errors.ErrCodeMissingField,
		},
		{
			name: "missing diagram walkers",
			doc:  `<diagram><diagram_settings><database>MySQL</database></diagram_settings></diagram>`,
			code: errors.ErrCodeMissingField,
		},
		{
			name: "missing physical name",
			doc: diagram("", `<table>
				<x>1</x><y>2</y><width>3</width><height>4</height><font_size>9</font_size>
				<color><r>1</r><g>2</g><b>3</b></color>
			</table>`),
			code: errors.ErrCodeMissingField,
		},
		{
			name: "empty physical name",
			doc:  diagram("", table("", "")),
			code: errors.ErrCodeMissingField,
		},
		{
			name: "missing color",
			doc:  diagram("", colorless),
			code: errors.ErrCodeMissingField,
		},
		{
			name: "color channel out of range",
			doc: diagram("", strings.Replace(table("T", ""),
				"<r>1</r>", "<r>256</r>", 1)),
			code: errors.ErrCodeInvalidValue,
		},
		{
			name: "non numeric geometry",
			doc:  diagram("", strings.Replace(table("T", ""), "<x>1</x>", "<x>left</x>", 1)),
			code: errors.ErrCodeInvalidValue,
		},
		{
			name: "negative geometry",
			doc:  diagram("", strings.Replace(table("T", ""), "<y>2</y>", "<y>-2</y>", 1)),
			code: errors.ErrCodeInvalidValue,
		},
		{
			name: "bad boolean",
			doc: diagram("", table("T", `<columns><normal_column>
				<physical_name>A</physical_name><not_null>yes please</not_null>
			</normal_column></columns>`)),
			code: errors.ErrCodeInvalidValue,
		},
		{
			name: "bad length",
			doc: diagram("", table("T", `<columns><normal_column>
				<physical_name>A</physical_name><length>70000</length>
			</normal_column></columns>`)),
			code: errors.ErrCodeInvalidValue,
		},
		{
			name: "unknown cardinality",
			doc: diagram("", table("T", `<connections><relationship>
				<name>R</name><source>table.A</source><target>table.T</target>
				<parent_cardinality>many</parent_cardinality>
				<child_cardinality>1</child_cardinality>
			</relationship></connections>`)),
			code: errors.ErrCodeInvalidValue,
		},
		{
			name: "relationship without target",
			doc: diagram("", table("T", `<connections><relationship>
				<name>R</name><source>table.A</source>
				<parent_cardinality>1</parent_cardinality>
				<child_cardinality>1</child_cardinality>
			</relationship></connections>`)),
			code: errors.ErrCodeMissingField,
		},
		{
			name: "unresolved group",
			doc: diagram(`<column_groups/>`, table("T",
				`<columns><column_group>COMMON</column_group></columns>`)),
			code: errors.ErrCodeUnresolvedGroup,
		},
		{
			name: "duplicate group",
			doc: diagram(`<column_groups>
				<column_group><column_group_name>G</column_group_name></column_group>
				<column_group><column_group_name>G</column_group_name></column_group>
			</column_groups>`),
			code: errors.ErrCodeInvalidSchema,
		},
		{
			name: "group column without name",
			doc: diagram(`<column_groups><column_group>
				<column_group_name>G</column_group_name>
				<columns><normal_column><type>int</type></normal_column></columns>
			</column_group></column_groups>`),
			code: errors.ErrCodeMissingField,
		},
		{
			name: "index without name",
			doc:  diagram("", table("T", `<indexes><index><type>BTREE</type></index></indexes>`)),
			code: errors.ErrCodeMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatalf("Decode succeeded, want %s", tt.code)
			}
			if d != nil {
				t.Error("Decode returned a partial diagram alongside an error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestDecodeErrorLocation(t *testing.T) {
	doc := diagram("", table("A", ""), table("B", ""), `<table><x>1</x></table>`)
	_, err := Decode(strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := errors.UserMessage(err)
	if !strings.Contains(msg, "table[3]") || !strings.Contains(msg, "physical_name") {
		t.Errorf("message %q should name table[3] and physical_name", msg)
	}
}

func TestDecodeIgnoresUnknownTags(t *testing.T) {
	doc := diagram("", table("T", `<page_setting><size>A4</size></page_setting>
		<columns><normal_column>
			<physical_name>A</physical_name>
			<word_id>42</word_id>
		</normal_column></columns>`))
	d, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n := len(d.DiagramWalkers.Tables[0].Columns.Items); n != 1 {
		t.Errorf("got %d items, want 1", n)
	}
}

func TestDecodeTableConstraint(t *testing.T) {
	tests := []struct {
		name  string
		inner string
		want  *string
	}{
		{"alongside connections", `<connections/><table_constraint>CHECK (x)</table_constraint>`, ptr("CHECK (x)")},
		{"empty", `<connections/><table_constraint></table_constraint>`, ptr("")},
		{"absent", `<connections/>`, nil},
		{"other spelling is not a constraint", `<connections/><constraint>CHECK (x)</constraint>`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(strings.NewReader(diagram("", table("T", tt.inner))))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, d.DiagramWalkers.Tables[0].TableConstraint); diff != "" {
				t.Errorf("TableConstraint mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeDeterministic(t *testing.T) {
	first := decodeFile(t, "members.erm")
	for i := 0; i < 3; i++ {
		again := decodeFile(t, "members.erm")
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}
