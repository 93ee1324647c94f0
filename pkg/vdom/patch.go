package vdom

// PatchOp is the type of a recorded mutation.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01 // Update text content
	PatchSetAttr     PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchInsertNode  PatchOp = 0x04 // Insert new node
	PatchRemoveNode  PatchOp = 0x05 // Remove node
	PatchReplaceNode PatchOp = 0x07 // Replace a node's children wholesale
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchReplaceNode:
		return "ReplaceNode"
	default:
		return "Unknown"
	}
}

// IsChildList reports whether the op changes a node's child list.
func (op PatchOp) IsChildList() bool {
	return op == PatchInsertNode || op == PatchRemoveNode || op == PatchReplaceNode
}

// IsAttribute reports whether the op changes an attribute.
func (op PatchOp) IsAttribute() bool {
	return op == PatchSetAttr || op == PatchRemoveAttr
}

// Mutation is one recorded change to a connected tree.
type Mutation struct {
	Op     PatchOp // Operation type
	Target *VNode  // Node whose children or attributes changed
	Node   *VNode  // Inserted or removed node
	Key    string  // Attribute key (for SetAttr/RemoveAttr)
	Value  string  // New attribute value
	Index  int     // Child position for InsertNode/RemoveNode
}
