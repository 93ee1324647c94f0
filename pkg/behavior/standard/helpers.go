package standard

import (
	"strconv"
	"strings"

	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/vdom"
)

const (
	stateOpen   = "open"
	stateClosed = "closed"
)

func stateName(open bool) string {
	if open {
		return stateOpen
	}
	return stateClosed
}

func attrString(n *vdom.VNode, key, def string) string {
	if v, ok := n.Attr(key); ok && v != "" {
		return v
	}
	return def
}

func attrFloat(n *vdom.VNode, key string, def float64) float64 {
	v, ok := n.Attr(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

func attrInt(n *vdom.VNode, key string, def int) int {
	v, ok := n.Attr(key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func percent(p float64) string {
	return formatFloat(p) + "%"
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// withAttr returns the descendants of root (root included) whose attribute
// key equals value.
func withAttr(root *vdom.VNode, key, value string) []*vdom.VNode {
	var out []*vdom.VNode
	root.Walk(func(n *vdom.VNode) bool {
		if v, ok := n.Attr(key); ok && v == value {
			out = append(out, n)
		}
		return true
	})
	return out
}

// closestAttr returns n or its nearest ancestor carrying key.
func closestAttr(n *vdom.VNode, key string) *vdom.VNode {
	for ; n != nil; n = n.Parent() {
		if n.HasAttr(key) {
			return n
		}
	}
	return nil
}

// within returns the descendants of root carrying key.
func within(root *vdom.VNode, key string) []*vdom.VNode {
	var out []*vdom.VNode
	root.Walk(func(n *vdom.VNode) bool {
		if n != root && n.HasAttr(key) {
			out = append(out, n)
		}
		return true
	})
	return out
}

func first(root *vdom.VNode, key string) *vdom.VNode {
	if nodes := within(root, key); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

func detail(ev *vdom.Event) bus.Detail {
	return bus.Detail(ev.Detail)
}

func setBool(n *vdom.VNode, key string, v bool) {
	n.SetAttr(key, strconv.FormatBool(v))
}
