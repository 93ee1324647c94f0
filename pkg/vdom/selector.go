package vdom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelector is wrapped by every selector parse error.
var ErrInvalidSelector = errors.New("vdom: invalid selector")

// attrMatch is one [name] or [name="value"] condition.
type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// compound is a run of simple selectors with no combinator between them.
type compound struct {
	tag   string
	id    string
	attrs []attrMatch
}

// Selector is a parsed selector: compounds joined by descendant combinators.
type Selector struct {
	source string
	parts  []compound
}

// String returns the selector source.
func (s Selector) String() string { return s.source }

// ParseSelector parses compound selectors made of an optional tag or *,
// #id, [attr] and [attr="value"], separated by whitespace. Classes,
// pseudo-classes, comma lists and combinators other than descendant are
// rejected.
func ParseSelector(source string) (Selector, error) {
	src := strings.TrimSpace(source)
	if src == "" {
		return Selector{}, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}

	sel := Selector{source: source}
	i := 0
	for i < len(src) {
		for i < len(src) && src[i] == ' ' {
			i++
		}
		if i >= len(src) {
			break
		}
		c, next, err := parseCompound(src, i)
		if err != nil {
			return Selector{}, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, source, err)
		}
		sel.parts = append(sel.parts, c)
		i = next
	}
	return sel, nil
}

// MustParseSelector is ParseSelector that panics on error.
func MustParseSelector(source string) Selector {
	sel, err := ParseSelector(source)
	if err != nil {
		panic(err)
	}
	return sel
}

// AttrSelector builds the [name] selector for a marker attribute.
func AttrSelector(name string) string {
	return "[" + name + "]"
}

// ValidAttrName reports whether name is a bare attribute name made only of
// letters, digits, '-' and '_'.
func ValidAttrName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isIdentChar(name[i]) {
			return false
		}
	}
	return true
}

func parseCompound(src string, i int) (compound, int, error) {
	var c compound
	start := i
	for i < len(src) && src[i] != ' ' {
		switch ch := src[i]; {
		case ch == '#':
			name, next := readIdent(src, i+1)
			if name == "" {
				return c, i, fmt.Errorf("empty id at offset %d", i)
			}
			c.id = name
			i = next
		case ch == '[':
			m, next, err := readAttr(src, i+1)
			if err != nil {
				return c, i, err
			}
			c.attrs = append(c.attrs, m)
			i = next
		case ch == '*' && i == start:
			c.tag = "*"
			i++
		case isIdentChar(ch) && i == start:
			name, next := readIdent(src, i)
			c.tag = strings.ToLower(name)
			i = next
		default:
			return c, i, fmt.Errorf("unsupported character %q at offset %d", ch, i)
		}
	}
	return c, i, nil
}

func readIdent(src string, i int) (string, int) {
	start := i
	for i < len(src) && isIdentChar(src[i]) {
		i++
	}
	return src[start:i], i
}

func readAttr(src string, i int) (attrMatch, int, error) {
	var m attrMatch
	name, i := readIdent(src, i)
	if name == "" {
		return m, i, fmt.Errorf("empty attribute name at offset %d", i)
	}
	m.name = name
	if i >= len(src) {
		return m, i, errors.New("unterminated attribute selector")
	}
	if src[i] == ']' {
		return m, i + 1, nil
	}
	if src[i] != '=' {
		return m, i, fmt.Errorf("unsupported attribute operator %q", src[i])
	}
	i++
	if i >= len(src) {
		return m, i, errors.New("unterminated attribute selector")
	}
	if q := src[i]; q == '"' || q == '\'' {
		end := strings.IndexByte(src[i+1:], q)
		if end < 0 {
			return m, i, errors.New("unterminated attribute value")
		}
		m.value = src[i+1 : i+1+end]
		i = i + 1 + end + 1
	} else {
		m.value, i = readIdent(src, i)
	}
	m.hasValue = true
	if i >= len(src) || src[i] != ']' {
		return m, i, errors.New("unterminated attribute selector")
	}
	return m, i + 1, nil
}

func isIdentChar(ch byte) bool {
	return ch == '-' || ch == '_' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func (c compound) matches(n *VNode) bool {
	if n == nil || n.Kind != KindElement {
		return false
	}
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(n.Tag, c.tag) {
		return false
	}
	if c.id != "" && n.ID() != c.id {
		return false
	}
	for _, a := range c.attrs {
		v, ok := n.Attr(a.name)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// Matches reports whether n matches the selector.
func (s Selector) Matches(n *VNode) bool {
	if len(s.parts) == 0 {
		return false
	}
	last := len(s.parts) - 1
	if !s.parts[last].matches(n) {
		return false
	}
	idx := last - 1
	for a := n.parent; a != nil && idx >= 0; a = a.parent {
		if s.parts[idx].matches(a) {
			idx--
		}
	}
	return idx < 0
}

// QuerySelectorAll returns the descendants of v matching selector, in
// document order. v itself is never included.
func (v *VNode) QuerySelectorAll(selector string) ([]*VNode, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return v.Query(sel), nil
}

// QuerySelector returns the first descendant of v matching selector.
func (v *VNode) QuerySelector(selector string) (*VNode, error) {
	matches, err := v.QuerySelectorAll(selector)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

// Query returns the descendants of v matching a parsed selector.
func (v *VNode) Query(sel Selector) []*VNode {
	var out []*VNode
	v.Walk(func(n *VNode) bool {
		if n != v && sel.Matches(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Closest returns v or its nearest ancestor matching sel, or nil.
func (v *VNode) Closest(sel Selector) *VNode {
	for n := v; n != nil; n = n.parent {
		if sel.Matches(n) {
			return n
		}
	}
	return nil
}
