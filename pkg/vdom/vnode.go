package vdom

import (
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node in the host tree.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText and KindRaw

	parent    *VNode
	doc       *Document
	listeners listenerSet
}

// Props holds attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// IsElement reports whether v is an element node.
func (v *VNode) IsElement() bool {
	return v != nil && v.Kind == KindElement
}

// ID returns the element's id attribute, or "" when absent.
func (v *VNode) ID() string {
	id, _ := v.Attr("id")
	return id
}

// Attr returns the string form of an attribute and whether it is present.
// Boolean attributes are present with an empty value when true and absent
// when false.
func (v *VNode) Attr(key string) (string, bool) {
	if v == nil || v.Props == nil {
		return "", false
	}
	raw, ok := v.Props[key]
	if !ok {
		return "", false
	}
	return attrString(raw)
}

// HasAttr reports whether an attribute is present.
func (v *VNode) HasAttr(key string) bool {
	_, ok := v.Attr(key)
	return ok
}

// SetAttr sets an attribute and records an attribute mutation when the node
// is connected and the value changed.
func (v *VNode) SetAttr(key, value string) {
	if v == nil || v.Kind != KindElement {
		return
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	if old, ok := v.Attr(key); ok && old == value {
		return
	}
	v.Props[key] = value
	v.record(Mutation{Op: PatchSetAttr, Target: v, Key: key, Value: value})
}

// RemoveAttr removes an attribute.
func (v *VNode) RemoveAttr(key string) {
	if v == nil || v.Props == nil {
		return
	}
	if _, ok := v.Props[key]; !ok {
		return
	}
	delete(v.Props, key)
	v.record(Mutation{Op: PatchRemoveAttr, Target: v, Key: key})
}

// Parent returns the parent node, or nil for a detached or root node.
func (v *VNode) Parent() *VNode {
	if v == nil {
		return nil
	}
	return v.parent
}

// Document returns the document the node is connected to, or nil.
func (v *VNode) Document() *Document {
	if v == nil {
		return nil
	}
	return v.doc
}

// IsConnected reports whether the node is attached to a document.
func (v *VNode) IsConnected() bool {
	return v != nil && v.doc != nil
}

// Contains reports whether other is v or one of its descendants.
func (v *VNode) Contains(other *VNode) bool {
	for n := other; n != nil; n = n.parent {
		if n == v {
			return true
		}
	}
	return false
}

// Walk visits v and its descendants in document (pre-)order. Returning
// false from fn skips the node's children.
func (v *VNode) Walk(fn func(*VNode) bool) {
	if v == nil {
		return
	}
	stack := []*VNode{v}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// TextContent returns the concatenated text of all descendant text nodes.
func (v *VNode) TextContent() string {
	var sb strings.Builder
	v.Walk(func(n *VNode) bool {
		if n.Kind == KindText {
			sb.WriteString(n.Text)
		}
		return true
	})
	return sb.String()
}

// IsInteractive returns true if this node has event listeners.
func (v *VNode) IsInteractive() bool {
	return v != nil && v.Kind == KindElement && v.listeners.len() > 0
}

func (v *VNode) record(m Mutation) {
	if v.doc != nil {
		v.doc.record(m)
	}
}
