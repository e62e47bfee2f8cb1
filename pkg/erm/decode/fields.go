package decode

import (
	"strconv"

	"github.com/matzehuels/ermview/pkg/erm/xmltree"
	"github.com/matzehuels/ermview/pkg/errors"
)

// lookup returns the first child of el carrying f, or nil.
func lookup(el *xmltree.Element, f field) *xmltree.Element {
	for _, tag := range f.tags {
		if c := el.Child(tag); c != nil {
			return c
		}
	}
	return nil
}

func missing(el *xmltree.Element, f field) error {
	return errors.New(errors.ErrCodeMissingField, "%s (line %d): missing <%s>", el.Path(), el.Line, f.tags[0])
}

func invalid(el *xmltree.Element, cause error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInvalidValue, cause, "%s (line %d): "+format, append([]any{el.Path(), el.Line}, args...)...)
}

// requiredName reads an identifier that must be present and non-empty.
func requiredName(el *xmltree.Element, f field) (string, error) {
	c := lookup(el, f)
	if c == nil {
		return "", missing(el, f)
	}
	if c.Text == "" {
		return "", errors.New(errors.ErrCodeMissingField, "%s (line %d): <%s> is empty", c.Path(), c.Line, c.Name)
	}
	return c.Text, nil
}

// text reads a non-optional free-text field; a missing tag reads as "".
func text(el *xmltree.Element, f field) string {
	if c := lookup(el, f); c != nil {
		return c.Text
	}
	return ""
}

// optText reads an optional string. A missing tag is nil; a present but
// empty tag is a pointer to "".
func optText(el *xmltree.Element, f field) *string {
	c := lookup(el, f)
	if c == nil {
		return nil
	}
	s := c.Text
	return &s
}

// flag reads a boolean that defaults to false when missing or empty.
func flag(el *xmltree.Element, f field) (bool, error) {
	c := lookup(el, f)
	if c == nil || c.Text == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(c.Text)
	if err != nil {
		return false, invalid(c, err, "%q is not a boolean", c.Text)
	}
	return b, nil
}

// requiredUint16 reads a mandatory unsigned 16-bit number.
func requiredUint16(el *xmltree.Element, f field) (uint16, error) {
	c := lookup(el, f)
	if c == nil {
		return 0, missing(el, f)
	}
	return parseUint16(c)
}

// optUint16 reads an optional unsigned 16-bit number. Missing and empty
// tags are both absent; the decoder never substitutes zero.
func optUint16(el *xmltree.Element, f field) (*uint16, error) {
	c := lookup(el, f)
	if c == nil || c.Text == "" {
		return nil, nil
	}
	n, err := parseUint16(c)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseUint16(c *xmltree.Element) (uint16, error) {
	n, err := strconv.ParseUint(c.Text, 10, 16)
	if err != nil {
		return 0, invalid(c, err, "%q is not an integer in 0..65535", c.Text)
	}
	return uint16(n), nil
}

// requiredUint8 reads a mandatory byte, such as a color channel.
func requiredUint8(el *xmltree.Element, f field) (uint8, error) {
	c := lookup(el, f)
	if c == nil {
		return 0, missing(el, f)
	}
	n, err := strconv.ParseUint(c.Text, 10, 8)
	if err != nil {
		return 0, invalid(c, err, "%q is not an integer in 0..255", c.Text)
	}
	return uint8(n), nil
}

// requiredElement returns the mandatory structural child named tag.
func requiredElement(el *xmltree.Element, tag string) (*xmltree.Element, error) {
	c := el.Child(tag)
	if c == nil {
		return nil, errors.New(errors.ErrCodeMissingField, "%s (line %d): missing <%s>", el.Path(), el.Line, tag)
	}
	return c, nil
}
