package tree

// Node is one node of a hierarchy.
type Node struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	Type     string  `json:"type,omitempty" yaml:"type,omitempty"`
	Icon     string  `json:"icon,omitempty" yaml:"icon,omitempty"`
	Metadata string  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Expanded bool    `json:"expanded,omitempty" yaml:"expanded,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewNode creates a collapsed node.
func NewNode(id, label string, children ...*Node) *Node {
	return &Node{ID: id, Label: label, Children: children}
}

// Expand marks n expanded and returns it.
func (n *Node) Expand() *Node {
	n.Expanded = true
	return n
}

// WithIcon sets the icon and returns n.
func (n *Node) WithIcon(icon string) *Node {
	n.Icon = icon
	return n
}

// WithType sets the node type and returns n.
func (n *Node) WithType(typ string) *Node {
	n.Type = typ
	return n
}

// WithMetadata sets the metadata badge and returns n.
func (n *Node) WithMetadata(meta string) *Node {
	n.Metadata = meta
	return n
}

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// FlatNode is one row of a flattened hierarchy.
type FlatNode struct {
	ID          string `json:"id"`
	Depth       int    `json:"depth"`
	ParentID    string `json:"parent_id,omitempty"`
	HasChildren bool   `json:"has_children"`
	Expanded    bool   `json:"expanded"`
	Source      *Node  `json:"-"`
}

// Label returns the source node's label.
func (f FlatNode) Label() string {
	if f.Source == nil {
		return ""
	}
	return f.Source.Label
}
