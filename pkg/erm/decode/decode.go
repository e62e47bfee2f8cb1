// Package decode turns a diagram exchange document into the canonical
// [entity.Diagram].
//
// The file format has several on-disk revisions (see [Revision]). Decoding
// first detects the revision from the tags present, then runs that
// revision's normalization. All revisions produce the same entity shape.
//
// Decoding is all or nothing: any error aborts and no partial diagram is
// returned. Errors carry a code from [errors]:
//
//   - MALFORMED_XML: the bytes are not well-formed XML
//   - MISSING_FIELD: a required tag is absent or empty
//   - INVALID_VALUE: a value does not fit its type (non-numeric geometry,
//     color channel above 255, unknown cardinality)
//   - UNRESOLVED_GROUP: a table references a column group that does not exist
//   - INVALID_SCHEMA: the document is not a diagram, or group names collide
package decode

import (
	"io"

	"github.com/matzehuels/ermview/pkg/erm/entity"
	"github.com/matzehuels/ermview/pkg/erm/xmltree"
	"github.com/matzehuels/ermview/pkg/errors"
)

// Decode reads one diagram document from r.
func Decode(r io.Reader) (*entity.Diagram, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, err
	}
	return DecodeElement(root)
}

// DecodeElement normalizes an already parsed document.
func DecodeElement(root *xmltree.Element) (*entity.Diagram, error) {
	if root == nil || root.Name != tagDiagram {
		name := ""
		if root != nil {
			name = root.Name
		}
		return nil, errors.New(errors.ErrCodeInvalidSchema, "root element is <%s>, want <%s>", name, tagDiagram)
	}

	d := &decoder{rev: DetectRevision(root)}
	return d.diagram(root)
}

// tableFunc normalizes one <table> element.
type tableFunc func(d *decoder, el *xmltree.Element) (entity.Table, error)

var tableDecoders = map[Revision]tableFunc{
	RevisionFlat:        (*decoder).tableFlat,
	RevisionForeignKeys: (*decoder).tableForeignKeys,
	RevisionGrouped:     (*decoder).tableGrouped,
}

// decoder holds per-document state. groups is the name lookup for column
// groups; it lives only as long as one decode.
type decoder struct {
	rev    Revision
	groups map[string]int
}

func (d *decoder) diagram(root *xmltree.Element) (*entity.Diagram, error) {
	settings, err := d.settings(root)
	if err != nil {
		return nil, err
	}

	groups, err := d.columnGroups(root.Child(tagColumnGroups))
	if err != nil {
		return nil, err
	}

	walkersEl, err := requiredElement(root, tagDiagramWalkers)
	if err != nil {
		return nil, err
	}

	decodeTable := tableDecoders[d.rev]
	walkers := entity.DiagramWalkers{Tables: []entity.Table{}}
	for _, el := range walkersEl.ChildrenNamed(tagTable) {
		t, err := decodeTable(d, el)
		if err != nil {
			return nil, err
		}
		walkers.Tables = append(walkers.Tables, t)
	}

	return &entity.Diagram{
		DiagramSettings: settings,
		DiagramWalkers:  walkers,
		ColumnGroups:    groups,
	}, nil
}

func (d *decoder) settings(root *xmltree.Element) (entity.DiagramSettings, error) {
	el, err := requiredElement(root, tagDiagramSettings)
	if err != nil {
		return entity.DiagramSettings{}, err
	}
	db, err := requiredName(el, fDatabase)
	if err != nil {
		return entity.DiagramSettings{}, err
	}
	return entity.DiagramSettings{Database: db}, nil
}

// columnGroups decodes the diagram-level group table and builds the name
// lookup used to validate table references.
func (d *decoder) columnGroups(el *xmltree.Element) (entity.ColumnGroups, error) {
	out := entity.ColumnGroups{Groups: []entity.ColumnGroup{}}
	d.groups = make(map[string]int)

	for _, g := range el.ChildrenNamed(tagColumnGroup) {
		name, err := requiredName(g, fColumnGroupName)
		if err != nil {
			return out, err
		}
		if _, dup := d.groups[name]; dup {
			return out, errors.New(errors.ErrCodeInvalidSchema, "%s (line %d): duplicate column group %q", g.Path(), g.Line, name)
		}

		cols := []entity.NormalColumn{}
		for _, c := range g.Child(tagColumns).ChildrenNamed(tagNormalColumn) {
			col, err := normalColumn(c)
			if err != nil {
				return out, err
			}
			cols = append(cols, col)
		}

		d.groups[name] = len(out.Groups)
		out.Groups = append(out.Groups, entity.ColumnGroup{ColumnGroupName: name, Columns: cols})
	}
	return out, nil
}

// tableFlat handles the oldest shape: header fields and normal columns.
func (d *decoder) tableFlat(el *xmltree.Element) (entity.Table, error) {
	t, err := tableHeader(el)
	if err != nil {
		return t, err
	}
	items := []entity.ColumnItem{}
	for _, c := range el.Child(tagColumns).ChildrenNamed(tagNormalColumn) {
		col, err := normalColumn(c)
		if err != nil {
			return t, err
		}
		items = append(items, col)
	}
	t.Columns = entity.Columns{Items: items}
	return t, nil
}

// tableForeignKeys adds relationships on top of the flat shape.
func (d *decoder) tableForeignKeys(el *xmltree.Element) (entity.Table, error) {
	t, err := d.tableFlat(el)
	if err != nil {
		return t, err
	}
	t.Connections, err = connections(el.Child(tagConnections))
	return t, err
}

// tableGrouped handles the current shape: column lists interleave normal
// columns and group references, and tables carry keys and indexes.
func (d *decoder) tableGrouped(el *xmltree.Element) (entity.Table, error) {
	t, err := tableHeader(el)
	if err != nil {
		return t, err
	}
	if t.Connections, err = connections(el.Child(tagConnections)); err != nil {
		return t, err
	}
	if t.Columns, err = d.columnItems(el.Child(tagColumns)); err != nil {
		return t, err
	}

	t.PrimaryKeyName = optText(el, fPrimaryKeyName)
	t.TableConstraint = optText(el, fTableConstraint)

	if keys := el.Child(tagCompoundKeyList); keys != nil {
		list, err := compoundKeys(keys)
		if err != nil {
			return t, err
		}
		t.CompoundUniqueKeys = &list
	}
	if idx := el.Child(tagIndexes); idx != nil {
		list, err := indexes(idx)
		if err != nil {
			return t, err
		}
		t.Indexes = &list
	}
	return t, nil
}

// columnItems keeps the file order of normal columns and group references.
// The variant comes from the element name alone.
func (d *decoder) columnItems(el *xmltree.Element) (entity.Columns, error) {
	items := []entity.ColumnItem{}
	if el == nil {
		return entity.Columns{Items: items}, nil
	}
	for _, c := range el.Children {
		switch c.Name {
		case tagNormalColumn:
			col, err := normalColumn(c)
			if err != nil {
				return entity.Columns{}, err
			}
			items = append(items, col)
		case tagColumnGroup:
			if c.Text == "" {
				return entity.Columns{}, errors.New(errors.ErrCodeMissingField, "%s (line %d): empty column group reference", c.Path(), c.Line)
			}
			if _, ok := d.groups[c.Text]; !ok {
				return entity.Columns{}, errors.New(errors.ErrCodeUnresolvedGroup, "%s (line %d): column group %q is not defined", c.Path(), c.Line, c.Text)
			}
			items = append(items, entity.GroupRef{Name: c.Text})
		}
	}
	return entity.Columns{Items: items}, nil
}

func tableHeader(el *xmltree.Element) (entity.Table, error) {
	var (
		t   entity.Table
		err error
	)
	if t.PhysicalName, err = requiredName(el, fTablePhysicalName); err != nil {
		return t, err
	}
	t.LogicalName = text(el, fTableLogicalName)
	t.Description = text(el, fTableDescription)
	t.FontName = text(el, fFontName)

	for _, n := range []struct {
		dst *uint16
		f   field
	}{
		{&t.X, fX},
		{&t.Y, fY},
		{&t.Width, fWidth},
		{&t.Height, fHeight},
		{&t.FontSize, fFontSize},
	} {
		if *n.dst, err = requiredUint16(el, n.f); err != nil {
			return t, err
		}
	}

	if t.Color, err = color(el); err != nil {
		return t, err
	}
	t.Connections = entity.Connections{Relationships: []entity.Relationship{}}
	t.Columns = entity.Columns{Items: []entity.ColumnItem{}}
	return t, nil
}

func color(table *xmltree.Element) (entity.Color, error) {
	var (
		c   entity.Color
		err error
	)
	el, err := requiredElement(table, tagColor)
	if err != nil {
		return c, err
	}
	if c.R, err = requiredUint8(el, fRed); err != nil {
		return c, err
	}
	if c.G, err = requiredUint8(el, fGreen); err != nil {
		return c, err
	}
	if c.B, err = requiredUint8(el, fBlue); err != nil {
		return c, err
	}
	return c, nil
}

func connections(el *xmltree.Element) (entity.Connections, error) {
	out := entity.Connections{Relationships: []entity.Relationship{}}
	for _, r := range el.ChildrenNamed(tagRelationship) {
		rel, err := relationship(r)
		if err != nil {
			return out, err
		}
		out.Relationships = append(out.Relationships, rel)
	}
	return out, nil
}

func relationship(el *xmltree.Element) (entity.Relationship, error) {
	var (
		r   entity.Relationship
		err error
	)
	if r.Name, err = requiredName(el, fRelName); err != nil {
		return r, err
	}
	if r.Source, err = requiredName(el, fRelSource); err != nil {
		return r, err
	}
	if r.Target, err = requiredName(el, fRelTarget); err != nil {
		return r, err
	}
	if r.ParentCardinality, err = cardinality(el, fParentCardinality); err != nil {
		return r, err
	}
	if r.ChildCardinality, err = cardinality(el, fChildCardinality); err != nil {
		return r, err
	}
	if r.ReferenceForPK, err = flag(el, fReferenceForPK); err != nil {
		return r, err
	}
	r.OnDeleteAction = entity.ReferentialAction(text(el, fOnDeleteAction))
	r.OnUpdateAction = entity.ReferentialAction(text(el, fOnUpdateAction))

	r.FkColumns = entity.FkColumns{FkColumn: []entity.FkColumn{}}
	for _, c := range el.Child(tagFkColumns).ChildrenNamed(tagFkColumn) {
		name, err := requiredName(c, fFkColumnName)
		if err != nil {
			return r, err
		}
		r.FkColumns.FkColumn = append(r.FkColumns.FkColumn, entity.FkColumn{FkColumnName: name})
	}
	return r, nil
}

func cardinality(el *xmltree.Element, f field) (entity.Cardinality, error) {
	s, err := requiredName(el, f)
	if err != nil {
		return "", err
	}
	c := entity.Cardinality(s)
	if !c.Valid() {
		return "", invalid(lookup(el, f), nil, "unknown cardinality %q", s)
	}
	return c, nil
}

func normalColumn(el *xmltree.Element) (entity.NormalColumn, error) {
	var (
		c   entity.NormalColumn
		err error
	)
	if c.PhysicalName, err = requiredName(el, fColPhysicalName); err != nil {
		return c, err
	}
	c.LogicalName = optText(el, fColLogicalName)
	c.Description = optText(el, fColDescription)
	c.ColumnType = optText(el, fColumnType)
	c.DefaultValue = optText(el, fDefaultValue)
	c.ReferredColumn = optText(el, fReferredColumn)
	c.Relationship = optText(el, fColumnRelationship)

	if c.Length, err = optUint16(el, fLength); err != nil {
		return c, err
	}
	if c.Decimal, err = optUint16(el, fDecimal); err != nil {
		return c, err
	}

	for _, b := range []struct {
		dst *bool
		f   field
	}{
		{&c.Unsigned, fUnsigned},
		{&c.NotNull, fNotNull},
		{&c.UniqueKey, fUniqueKey},
		{&c.PrimaryKey, fPrimaryKey},
		{&c.AutoIncrement, fAutoIncrement},
	} {
		if *b.dst, err = flag(el, b.f); err != nil {
			return c, err
		}
	}
	return c, nil
}

func compoundKeys(el *xmltree.Element) (entity.CompoundUniqueKeyList, error) {
	out := entity.CompoundUniqueKeyList{Keys: []entity.CompoundUniqueKey{}}
	for _, k := range el.ChildrenNamed(tagCompoundKey) {
		name, err := requiredName(k, fKeyName)
		if err != nil {
			return out, err
		}
		key := entity.CompoundUniqueKey{Name: name, Columns: []entity.ColumnRef{}}
		for _, c := range k.Child(tagColumns).ChildrenNamed(tagColumn) {
			id, err := requiredName(c, fColumnID)
			if err != nil {
				return out, err
			}
			key.Columns = append(key.Columns, entity.ColumnRef{ColumnID: id})
		}
		out.Keys = append(out.Keys, key)
	}
	return out, nil
}

func indexes(el *xmltree.Element) (entity.IndexList, error) {
	out := entity.IndexList{Indexes: []entity.Index{}}
	for _, i := range el.ChildrenNamed(tagIndex) {
		var (
			idx entity.Index
			err error
		)
		if idx.Name, err = requiredName(i, fIndexName); err != nil {
			return out, err
		}
		idx.IndexType = optText(i, fIndexType)
		idx.Description = optText(i, fIndexDescription)
		if idx.FullText, err = flag(i, fFullText); err != nil {
			return out, err
		}
		if idx.NonUnique, err = flag(i, fNonUnique); err != nil {
			return out, err
		}

		idx.Columns = []entity.IndexColumn{}
		for _, c := range i.Child(tagColumns).ChildrenNamed(tagColumn) {
			id, err := requiredName(c, fColumnID)
			if err != nil {
				return out, err
			}
			desc, err := flag(c, fDesc)
			if err != nil {
				return out, err
			}
			idx.Columns = append(idx.Columns, entity.IndexColumn{ColumnID: id, Desc: desc})
		}
		out.Indexes = append(out.Indexes, idx)
	}
	return out, nil
}
