package tree

type frame struct {
	node     *Node
	depth    int
	parentID string
}

// Flatten returns the pre-order sequence of roots, descending only into
// expanded nodes. Nil nodes are ignored. The traversal uses an explicit
// stack, so deep hierarchies cannot overflow the goroutine stack.
func Flatten(roots []*Node) []FlatNode {
	if len(roots) == 0 {
		return nil
	}

	out := make([]FlatNode, 0, len(roots))
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: roots[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node
		if n == nil {
			continue
		}

		out = append(out, FlatNode{
			ID:          n.ID,
			Depth:       f.depth,
			ParentID:    f.parentID,
			HasChildren: n.HasChildren(),
			Expanded:    n.Expanded,
			Source:      n,
		})

		if !n.Expanded {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: n.Children[i], depth: f.depth + 1, parentID: n.ID})
		}
	}
	return out
}

// walk visits every node in pre-order regardless of expand flags, stopping
// when fn returns false. path holds the ancestors of each visited node.
func walk(roots []*Node, fn func(n *Node, path []*Node) bool) {
	type item struct {
		node  *Node
		depth int
	}
	stack := make([]item, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{node: roots[i]})
	}

	var path []*Node
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.node == nil {
			continue
		}
		path = path[:it.depth]
		if !fn(it.node, path) {
			return
		}
		path = append(path, it.node)
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: it.node.Children[i], depth: it.depth + 1})
		}
	}
}

// Find returns the first node with id, searching collapsed subtrees too.
func Find(roots []*Node, id string) *Node {
	var found *Node
	walk(roots, func(n *Node, _ []*Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// PathTo returns the chain of nodes from a root down to the node with id,
// or nil if there is none.
func PathTo(roots []*Node, id string) []*Node {
	var out []*Node
	walk(roots, func(n *Node, path []*Node) bool {
		if n.ID != id {
			return true
		}
		out = make([]*Node, 0, len(path)+1)
		out = append(out, path...)
		out = append(out, n)
		return false
	})
	return out
}

// Toggle flips the expand flag of the node with id. It reports whether the
// node was found.
func Toggle(roots []*Node, id string) bool {
	n := Find(roots, id)
	if n == nil {
		return false
	}
	n.Expanded = !n.Expanded
	return true
}

// SetExpanded sets the expand flag of the node with id. It reports whether
// the node was found.
func SetExpanded(roots []*Node, id string, expanded bool) bool {
	n := Find(roots, id)
	if n == nil {
		return false
	}
	n.Expanded = expanded
	return true
}

// Reveal expands every ancestor of the node with id so it appears in the
// flattened sequence. It reports whether the node was found.
func Reveal(roots []*Node, id string) bool {
	path := PathTo(roots, id)
	if path == nil {
		return false
	}
	for _, n := range path[:len(path)-1] {
		n.Expanded = true
	}
	return true
}

// ExpandAll expands every node that has children.
func ExpandAll(roots []*Node) {
	walk(roots, func(n *Node, _ []*Node) bool {
		if n.HasChildren() {
			n.Expanded = true
		}
		return true
	})
}

// CollapseAll collapses every node.
func CollapseAll(roots []*Node) {
	walk(roots, func(n *Node, _ []*Node) bool {
		n.Expanded = false
		return true
	})
}

// Count returns the number of nodes, expanded or not.
func Count(roots []*Node) int {
	count := 0
	walk(roots, func(*Node, []*Node) bool {
		count++
		return true
	})
	return count
}
