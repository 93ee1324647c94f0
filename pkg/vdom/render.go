package vdom

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// RenderConfig configures HTML output.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used per level in pretty mode. Defaults to two spaces.
	Indent string
}

// RenderToString renders node as HTML.
func RenderToString(node *VNode, config RenderConfig) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, node, config); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render streams node as HTML to w. Attributes are written in sorted order
// so output is stable.
func Render(w io.Writer, node *VNode, config RenderConfig) error {
	if config.Indent == "" {
		config.Indent = "  "
	}
	r := &renderer{w: w, config: config}
	return r.node(node, 0)
}

type renderer struct {
	w      io.Writer
	config RenderConfig
}

func (r *renderer) node(n *VNode, depth int) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindElement:
		return r.element(n, depth)
	case KindText:
		_, err := io.WriteString(r.w, escapeHTML(n.Text))
		return err
	case KindRaw:
		_, err := io.WriteString(r.w, n.Text)
		return err
	case KindFragment:
		for _, c := range n.Children {
			if err := r.node(c, depth); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown node kind: %d", n.Kind)
	}
}

func (r *renderer) element(n *VNode, depth int) error {
	if r.config.Pretty && depth > 0 {
		r.indent(depth)
	}
	if _, err := fmt.Fprintf(r.w, "<%s", n.Tag); err != nil {
		return err
	}

	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, ok := attrString(n.Props[k])
		if !ok {
			continue
		}
		if _, isBool := n.Props[k].(bool); isBool {
			fmt.Fprintf(r.w, " %s", k)
			continue
		}
		fmt.Fprintf(r.w, ` %s="%s"`, k, escapeAttr(v))
	}

	if _, err := io.WriteString(r.w, ">"); err != nil {
		return err
	}
	if IsVoidElement(n.Tag) {
		if r.config.Pretty {
			io.WriteString(r.w, "\n")
		}
		return nil
	}

	block := r.config.Pretty && hasElementChild(n)
	if block {
		io.WriteString(r.w, "\n")
	}
	for _, c := range n.Children {
		if err := r.node(c, depth+1); err != nil {
			return err
		}
	}
	if block {
		r.indent(depth)
	}
	if _, err := fmt.Fprintf(r.w, "</%s>", n.Tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(r.w, "\n")
	}
	return nil
}

func (r *renderer) indent(depth int) {
	io.WriteString(r.w, strings.Repeat(r.config.Indent, depth))
}

func hasElementChild(n *VNode) bool {
	for _, c := range n.Children {
		if c.Kind == KindElement {
			return true
		}
	}
	return false
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }
