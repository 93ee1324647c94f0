package vdom

import "testing"

func TestNewDocumentStructure(t *testing.T) {
	doc := NewDocument(Div(ID("x")))

	if doc.DocumentElement() == nil || doc.DocumentElement().Tag != "html" {
		t.Fatal("Expected html root")
	}
	body := doc.Body()
	if body == nil {
		t.Fatal("Expected body")
	}
	x := doc.GetElementByID("x")
	if x == nil {
		t.Fatal("Expected element x")
	}
	if x.Parent() != body {
		t.Error("Expected x to be a child of body")
	}
	if !x.IsConnected() || x.Document() != doc {
		t.Error("Expected x to be connected to the document")
	}
}

func TestDocumentWithoutBody(t *testing.T) {
	doc := NewDocumentFromRoot(Html(Head()))
	if doc.Body() != nil {
		t.Error("Expected no body")
	}
}

func TestAppendAndRemoveChild(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()

	child := Div(ID("c"), Span(ID("inner")))
	body.AppendChild(child)

	if doc.GetElementByID("inner") == nil {
		t.Fatal("Expected inner to be reachable after append")
	}
	if !child.Children[0].IsConnected() {
		t.Error("Expected subtree to be adopted")
	}

	if !body.RemoveChild(child) {
		t.Fatal("Expected RemoveChild to report success")
	}
	if child.IsConnected() || child.Children[0].IsConnected() {
		t.Error("Expected removed subtree to be detached")
	}
	if doc.GetElementByID("inner") != nil {
		t.Error("Expected inner to be gone")
	}
}

func TestInsertBeforeAndMove(t *testing.T) {
	doc := NewDocument(Div(ID("a")), Div(ID("c")))
	body := doc.Body()
	c := doc.GetElementByID("c")

	b := Div(ID("b"))
	body.InsertBefore(b, c)
	if got := childIDs(body); got != "a,b,c" {
		t.Errorf("Expected a,b,c, got %s", got)
	}

	// Moving an attached node detaches it from its old position.
	body.AppendChild(doc.GetElementByID("a"))
	if got := childIDs(body); got != "b,c,a" {
		t.Errorf("Expected b,c,a, got %s", got)
	}
}

func TestFragmentsAreExpanded(t *testing.T) {
	doc := NewDocument(Fragment(Div(ID("a")), Div(ID("b"))))
	if got := childIDs(doc.Body()); got != "a,b" {
		t.Errorf("Expected a,b, got %s", got)
	}

	doc.Body().AppendChild(Fragment(Div(ID("c"))))
	if got := childIDs(doc.Body()); got != "a,b,c" {
		t.Errorf("Expected a,b,c, got %s", got)
	}
}

func TestReplaceChildren(t *testing.T) {
	doc := NewDocument(Div(ID("old")))
	old := doc.GetElementByID("old")

	doc.Body().ReplaceChildren(Div(ID("new1")), nil, Div(ID("new2")))

	if old.IsConnected() {
		t.Error("Expected old child to be detached")
	}
	if got := childIDs(doc.Body()); got != "new1,new2" {
		t.Errorf("Expected new1,new2, got %s", got)
	}
}

func TestAttributes(t *testing.T) {
	n := Div(Marker("modal"), Data("state", "closed"), AttrKV("data-count", 3), AttrKV("hidden", false))

	if v, ok := n.Attr("data-modal"); !ok || v != "" {
		t.Errorf("Expected present empty marker, got %q %v", v, ok)
	}
	if v, _ := n.Attr("data-count"); v != "3" {
		t.Errorf("Expected 3, got %q", v)
	}
	if n.HasAttr("hidden") {
		t.Error("Expected false boolean attribute to be absent")
	}

	n.SetAttr("data-state", "open")
	if v, _ := n.Attr("data-state"); v != "open" {
		t.Errorf("Expected open, got %q", v)
	}
	n.RemoveAttr("data-state")
	if n.HasAttr("data-state") {
		t.Error("Expected data-state removed")
	}
}

func TestTextContent(t *testing.T) {
	n := Div(Span("Hello"), Text(", "), Span(Textf("%s!", "world")))
	if got := n.TextContent(); got != "Hello, world!" {
		t.Errorf("Expected 'Hello, world!', got %q", got)
	}
}

func TestEnsureIDs(t *testing.T) {
	doc := NewDocument(
		Div(Marker("modal")),
		Div(ID("keep"), Marker("modal")),
		Div(Marker("other")),
	)

	n := EnsureIDs(doc.Body(), NewIDGenerator("auto-"), "data-modal")
	if n != 1 {
		t.Fatalf("Expected 1 id assigned, got %d", n)
	}
	if doc.GetElementByID("auto-1") == nil {
		t.Error("Expected auto-1 to exist")
	}
	if doc.GetElementByID("keep") == nil {
		t.Error("Expected existing id to be kept")
	}
}

func childIDs(n *VNode) string {
	ids := ""
	for i, c := range n.Children {
		if i > 0 {
			ids += ","
		}
		ids += c.ID()
	}
	return ids
}
