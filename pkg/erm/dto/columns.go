package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Columns mirrors [entity.Columns].
type Columns struct {
	Items []ColumnItem `json:"items"`
}

// ColumnItem mirrors [entity.ColumnItem]: either a [NormalColumn] or a
// [GroupRef]. Pointers to either are accepted by [ToEntity].
type ColumnItem interface {
	columnItem()
}

// asValue dereferences pointer variants; see [entity.AsValue].
func asValue(item ColumnItem) (ColumnItem, bool) {
	switch c := item.(type) {
	case NormalColumn, GroupRef:
		return c, true
	case *NormalColumn:
		if c != nil {
			return *c, true
		}
	case *GroupRef:
		if c != nil {
			return *c, true
		}
	}
	return nil, false
}

// NormalColumn mirrors [entity.NormalColumn].
type NormalColumn struct {
	PhysicalName string  `json:"physicalName"`
	LogicalName  *string `json:"logicalName,omitempty"`
	Description  *string `json:"description,omitempty"`
	ColumnType   *string `json:"columnType,omitempty"`
	DefaultValue *string `json:"defaultValue,omitempty"`
	Length       *uint16 `json:"length,omitempty"`
	Decimal      *uint16 `json:"decimal,omitempty"`

	Unsigned      bool `json:"unsigned"`
	NotNull       bool `json:"notNull"`
	UniqueKey     bool `json:"uniqueKey"`
	PrimaryKey    bool `json:"primaryKey"`
	AutoIncrement bool `json:"autoIncrement"`

	ReferredColumn *string `json:"referredColumn,omitempty"`
	Relationship   *string `json:"relationship,omitempty"`
}

// GroupRef mirrors [entity.GroupRef]. It marshals as the bare group name.
type GroupRef string

func (NormalColumn) columnItem() {}
func (GroupRef) columnItem()     {}

// UnmarshalJSON picks the item variant from the JSON value kind: strings are
// group references and objects are normal columns.
func (c *Columns) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Items = make([]ColumnItem, 0, len(raw.Items))
	for i, msg := range raw.Items {
		switch first(msg) {
		case '"':
			var g GroupRef
			if err := json.Unmarshal(msg, &g); err != nil {
				return err
			}
			c.Items = append(c.Items, g)
		case '{':
			var n NormalColumn
			if err := json.Unmarshal(msg, &n); err != nil {
				return err
			}
			c.Items = append(c.Items, n)
		default:
			return fmt.Errorf("columns.items[%d]: want string or object, got %s", i, msg)
		}
	}
	return nil
}

func first(msg json.RawMessage) byte {
	msg = bytes.TrimLeft(msg, " \t\r\n")
	if len(msg) == 0 {
		return 0
	}
	return msg[0]
}
