// Package fixture loads YAML descriptions of documents and hierarchies for
// the canon command line.
//
//	body:
//	  - tag: button
//	    attrs: {data-modal-trigger: dlg}
//	    text: Open
//	  - tag: div
//	    id: dlg
//	    markers: [modal]
//	tree:
//	  - id: src
//	    label: src
//	    expanded: true
//	    children:
//	      - {id: main, label: main.go}
//	list:
//	  total: 10000
//	  window: {item_height: 36, viewport_height: 600, overscan: 5}
package fixture

import (
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/tree"
	"github.com/canonui/canon/pkg/vdom"
	"github.com/canonui/canon/pkg/window"
)

// Element describes one element of the document body.
type Element struct {
	Tag   string            `yaml:"tag"`
	ID    string            `yaml:"id,omitempty"`
	Attrs map[string]string `yaml:"attrs,omitempty"`

	// Markers are valueless data-* attributes without the data- prefix.
	Markers []string `yaml:"markers,omitempty"`

	Text     string    `yaml:"text,omitempty"`
	Children []Element `yaml:"children,omitempty"`
}

// List describes a virtualized list.
type List struct {
	Total  int            `yaml:"total"`
	Window *window.Config `yaml:"window,omitempty"`
}

// Fixture is a parsed fixture file.
type Fixture struct {
	Body []Element    `yaml:"body"`
	Tree []*tree.Node `yaml:"tree,omitempty"`
	List *List        `yaml:"list,omitempty"`

	// AutoIDs lists attributes whose elements get a generated id when the
	// fixture leaves it out.
	AutoIDs []string `yaml:"auto_ids,omitempty"`

	path string
}

// Load reads and parses the fixture at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeConfigNotFound).Wrap(err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

// Parse decodes and validates a fixture.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse fixture: " + err.Error())
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Path returns the file the fixture was loaded from.
func (f *Fixture) Path() string {
	return f.path
}

// Validate checks that every element has a tag and that ids are unique.
func (f *Fixture) Validate() error {
	seen := make(map[string]bool)
	var check func(els []Element, where string) error
	check = func(els []Element, where string) error {
		for i, el := range els {
			if strings.TrimSpace(el.Tag) == "" {
				return errors.InvalidConfig("fixture: %s[%d] has no tag", where, i)
			}
			if el.ID != "" {
				if seen[el.ID] {
					return errors.InvalidConfig("fixture: duplicate id %q", el.ID)
				}
				seen[el.ID] = true
			}
			if err := check(el.Children, where+"["+el.Tag+"]"); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(f.Body, "body"); err != nil {
		return err
	}
	if f.List != nil {
		if f.List.Total < 0 {
			return errors.InvalidConfig("fixture: list.total must not be negative")
		}
		if f.List.Window != nil {
			if err := f.List.Window.Validate(); err != nil {
				return errors.InvalidConfig("fixture: list.window: %v", err)
			}
		}
	}
	return nil
}

// Nodes builds the body elements. Ids generated for AutoIDs are
// "auto-1", "auto-2", ... in document order.
func (f *Fixture) Nodes() []*vdom.VNode {
	nodes := make([]*vdom.VNode, 0, len(f.Body))
	for _, el := range f.Body {
		nodes = append(nodes, el.Node())
	}
	if len(f.AutoIDs) > 0 {
		gen := vdom.NewIDGenerator("auto-")
		for _, n := range nodes {
			vdom.EnsureIDs(n, gen, f.AutoIDs...)
		}
	}
	return nodes
}

// Document builds a new document from the body elements.
func (f *Fixture) Document() *vdom.Document {
	args := make([]any, 0, len(f.Body))
	for _, n := range f.Nodes() {
		args = append(args, n)
	}
	return vdom.NewDocument(args...)
}

// Apply replaces the children of doc's body with the fixture's elements.
// The replacement is recorded as child-list mutations.
func (f *Fixture) Apply(doc *vdom.Document) error {
	body := doc.Body()
	if body == nil {
		return errors.ElementNotFound("body")
	}
	body.ReplaceChildren(f.Nodes()...)
	return nil
}

// ListConfig returns the list geometry, falling back to def.
func (f *Fixture) ListConfig(def window.Config) (window.Config, int) {
	if f.List == nil {
		return def, 0
	}
	if f.List.Window != nil {
		return *f.List.Window, f.List.Total
	}
	return def, f.List.Total
}

// Node builds the element and its descendants.
func (e Element) Node() *vdom.VNode {
	args := make([]any, 0, len(e.Attrs)+len(e.Markers)+len(e.Children)+2)
	if e.ID != "" {
		args = append(args, vdom.ID(e.ID))
	}
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, vdom.AttrKV(k, e.Attrs[k]))
	}
	for _, m := range e.Markers {
		args = append(args, vdom.Marker(strings.TrimPrefix(m, "data-")))
	}
	if e.Text != "" {
		args = append(args, vdom.Text(e.Text))
	}
	for _, c := range e.Children {
		args = append(args, c.Node())
	}
	return vdom.El(e.Tag, args...)
}
