package vdom

// AppendChild appends child (or a fragment's children) to v.
func (v *VNode) AppendChild(child *VNode) {
	v.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref. A nil or foreign ref appends.
// Fragments are expanded in place; a child that already has a parent is
// moved.
func (v *VNode) InsertBefore(child, ref *VNode) {
	if v == nil || child == nil || child == v || child.Contains(v) {
		return
	}
	if child.Kind == KindFragment {
		kids := child.Children
		child.Children = nil
		for _, k := range kids {
			k.parent = nil
			v.InsertBefore(k, ref)
		}
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}

	index := len(v.Children)
	for i, c := range v.Children {
		if c == ref {
			index = i
			break
		}
	}

	v.Children = append(v.Children, nil)
	copy(v.Children[index+1:], v.Children[index:])
	v.Children[index] = child
	child.parent = v
	child.adopt(v.doc)

	v.record(Mutation{Op: PatchInsertNode, Target: v, Node: child, Index: index})
}

// RemoveChild detaches child from v. It reports whether child was found.
func (v *VNode) RemoveChild(child *VNode) bool {
	if v == nil || child == nil {
		return false
	}
	for i, c := range v.Children {
		if c != child {
			continue
		}
		v.Children = append(v.Children[:i], v.Children[i+1:]...)
		child.parent = nil
		v.record(Mutation{Op: PatchRemoveNode, Target: v, Node: child, Index: i})
		child.adopt(nil)
		return true
	}
	return false
}

// Remove detaches v from its parent.
func (v *VNode) Remove() {
	if v != nil && v.parent != nil {
		v.parent.RemoveChild(v)
	}
}

// ReplaceChildren removes every child of v and appends the given nodes.
// It records a single ReplaceNode mutation on v.
func (v *VNode) ReplaceChildren(children ...*VNode) {
	if v == nil {
		return
	}
	for _, c := range v.Children {
		c.parent = nil
		c.adopt(nil)
	}
	v.Children = v.Children[:0]

	for _, c := range flattenChildren(children) {
		if c.parent != nil {
			c.parent.RemoveChild(c)
		}
		v.Children = append(v.Children, c)
		c.parent = v
		c.adopt(v.doc)
	}
	v.record(Mutation{Op: PatchReplaceNode, Target: v})
}

// adopt sets the owning document of v and its subtree.
func (v *VNode) adopt(doc *Document) {
	v.Walk(func(n *VNode) bool {
		n.doc = doc
		return true
	})
}

func flattenChildren(children []*VNode) []*VNode {
	out := make([]*VNode, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Kind == KindFragment {
			out = append(out, flattenChildren(c.Children)...)
			continue
		}
		out = append(out, c)
	}
	return out
}
