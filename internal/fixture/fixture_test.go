package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/tree"
	"github.com/canonui/canon/pkg/vdom"
	"github.com/canonui/canon/pkg/window"
)

const page = `
body:
  - tag: button
    id: open
    attrs: {data-modal-trigger: dlg}
    text: Open
  - tag: div
    id: dlg
    markers: [modal, data-state-sync]
    children:
      - tag: p
        text: Hello
tree:
  - id: src
    label: src
    expanded: true
    children:
      - {id: main, label: main.go}
      - id: pkg
        label: pkg
        children:
          - {id: util, label: util.go}
list:
  total: 250
  window: {item_height: 20, viewport_height: 200, overscan: 1}
`

func TestParseDocument(t *testing.T) {
	f, err := Parse([]byte(page))
	require.NoError(t, err)

	doc := f.Document()
	dlg := doc.GetElementByID("dlg")
	require.NotNil(t, dlg)
	assert.True(t, dlg.HasAttr("data-modal"))
	assert.True(t, dlg.HasAttr("data-state-sync"))
	assert.Equal(t, "Hello", dlg.TextContent())

	btn := doc.GetElementByID("open")
	require.NotNil(t, btn)
	v, _ := btn.Attr("data-modal-trigger")
	assert.Equal(t, "dlg", v)
	assert.Equal(t, "button", btn.Tag)
}

func TestParseTreeAndList(t *testing.T) {
	f, err := Parse([]byte(page))
	require.NoError(t, err)

	flat := tree.Flatten(f.Tree)
	ids := make([]string, len(flat))
	for i, n := range flat {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"src", "main", "pkg"}, ids)

	cfg, total := f.ListConfig(window.DefaultConfig())
	assert.Equal(t, 250, total)
	assert.Equal(t, window.Config{ItemHeight: 20, ViewportHeight: 200, Overscan: 1}, cfg)
}

func TestListConfigDefaults(t *testing.T) {
	f, err := Parse([]byte("list: {total: 5}\n"))
	require.NoError(t, err)
	cfg, total := f.ListConfig(window.DefaultConfig())
	assert.Equal(t, window.DefaultConfig(), cfg)
	assert.Equal(t, 5, total)

	f, err = Parse([]byte("body: []\n"))
	require.NoError(t, err)
	_, total = f.ListConfig(window.DefaultConfig())
	assert.Zero(t, total)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":       "body: [",
		"missing tag":  "body:\n  - id: a\n",
		"nested tag":   "body:\n  - tag: div\n    children:\n      - text: hi\n",
		"duplicate id": "body:\n  - {tag: div, id: a}\n  - {tag: span, id: a}\n",
		"total":        "list: {total: -1}\n",
		"window":       "list: {total: 1, window: {item_height: 0, viewport_height: 10}}\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			require.Error(t, err)
			assert.ErrorIs(t, err, canonerrors.ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())
	assert.Len(t, f.Body, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyTriggersRescan(t *testing.T) {
	doc := vdom.NewDocument(vdom.Div(vdom.ID("old"), vdom.Marker("modal")))
	reg := behavior.NewRegistry(nil)
	var attached []string
	reg.RegisterFunc("data-modal", func(ctx behavior.AttachContext) error {
		attached = append(attached, ctx.ElementID)
		return nil
	})
	sc := behavior.NewScanner(reg, doc)
	require.NoError(t, sc.Start(context.Background()))
	defer sc.Dispose()

	f, err := Parse([]byte(page))
	require.NoError(t, err)
	require.NoError(t, f.Apply(doc))
	doc.Flush()

	assert.Equal(t, []string{"old", "dlg"}, attached)
	assert.Nil(t, doc.GetElementByID("old"))
}

func TestApplyWithoutBody(t *testing.T) {
	doc := vdom.NewDocumentFromRoot(vdom.Html())
	f := &Fixture{}
	assert.ErrorIs(t, f.Apply(doc), canonerrors.ErrElementNotFound)
}

func TestAutoIDs(t *testing.T) {
	f, err := Parse([]byte(`
auto_ids: [data-collapsible]
body:
  - tag: div
    markers: [collapsible]
  - tag: section
    children:
      - tag: div
        markers: [collapsible]
      - tag: div
        id: named
        markers: [collapsible]
  - tag: div
    markers: [modal]
`))
	require.NoError(t, err)

	doc := f.Document()
	assert.NotNil(t, doc.GetElementByID("auto-1"))
	assert.NotNil(t, doc.GetElementByID("auto-2"))
	assert.NotNil(t, doc.GetElementByID("named"))
	assert.Nil(t, doc.GetElementByID("auto-3"))
}
