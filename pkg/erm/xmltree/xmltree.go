// Package xmltree builds a generic element tree from an XML token stream.
//
// The diagram decoder inspects which tags are present before choosing how to
// normalize a document, so it works on a tree instead of unmarshaling into
// fixed structs. Only element structure and character data are kept;
// attributes, comments and processing instructions are dropped because the
// diagram format does not use them.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	ermerrors "github.com/matzehuels/ermview/pkg/errors"
)

// Element is one XML element.
type Element struct {
	// Name is the local element name (namespace prefixes are dropped).
	Name string
	// Text is the element's character data with surrounding whitespace trimmed.
	Text string
	// Line is the 1-based line of the start tag.
	Line int
	// Children holds child elements in document order.
	Children []*Element

	parent *Element
	index  int // 1-based position among same-named siblings
}

// Parse reads a complete document from r and returns its root element.
//
// Malformed input is reported as an error with code MALFORMED_XML carrying
// the line where the decoder gave up.
func Parse(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)

	var (
		root  *Element
		stack []*Element
		text  []*strings.Builder
	)

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, _ := d.InputPos()
			return nil, ermerrors.Wrap(ermerrors.ErrCodeMalformedXML, err, "line %d", line)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := d.InputPos()
			el := &Element{Name: t.Name.Local, Line: line}
			if n := len(stack); n > 0 {
				parent := stack[n-1]
				el.parent = parent
				el.index = len(parent.ChildrenNamed(el.Name)) + 1
				parent.Children = append(parent.Children, el)
			} else if root != nil {
				return nil, ermerrors.New(ermerrors.ErrCodeMalformedXML, "line %d: more than one root element", line)
			} else {
				root = el
			}
			stack = append(stack, el)
			text = append(text, &strings.Builder{})

		case xml.CharData:
			if n := len(text); n > 0 {
				text[n-1].Write(t)
			}

		case xml.EndElement:
			n := len(stack)
			stack[n-1].Text = strings.TrimSpace(text[n-1].String())
			stack, text = stack[:n-1], text[:n-1]
		}
	}

	if root == nil {
		return nil, ermerrors.New(ermerrors.ErrCodeMalformedXML, "document has no root element")
	}
	return root, nil
}

// Child returns the first child named name, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child named name in document order. A missing tag
// and a single tag both come back as a slice, so callers never branch on
// how many elements the file happened to contain.
func (e *Element) ChildrenNamed(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Has reports whether e has a direct child named name.
func (e *Element) Has(name string) bool {
	return e.Child(name) != nil
}

// Find reports whether any descendant of e (at any depth) is named name.
func (e *Element) Find(name string) bool {
	if e == nil {
		return false
	}
	for _, c := range e.Children {
		if c.Name == name || c.Find(name) {
			return true
		}
	}
	return false
}

// Path returns a slash-separated location such as
// "diagram/diagram_walkers/table[2]/columns/normal_column[1]". The
// position suffix is only added when the element has same-named siblings.
func (e *Element) Path() string {
	if e == nil {
		return ""
	}
	seg := e.Name
	if e.parent != nil && len(e.parent.ChildrenNamed(e.Name)) > 1 {
		seg += "[" + strconv.Itoa(e.index) + "]"
	}
	if e.parent == nil {
		return seg
	}
	return e.parent.Path() + "/" + seg
}

// String implements fmt.Stringer for debugging.
func (e *Element) String() string {
	return fmt.Sprintf("<%s> (line %d)", e.Path(), e.Line)
}
