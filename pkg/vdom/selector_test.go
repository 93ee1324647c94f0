package vdom

import (
	"errors"
	"testing"
)

func sampleDoc() *Document {
	return NewDocument(
		Div(ID("modal-1"), Marker("modal"),
			Div(Marker("modal-overlay"), ID("overlay-1")),
			Button(Data("modal-trigger", "modal-1"), ID("trigger-1")),
		),
		Ul(ID("list"),
			Li(ID("a"), Marker("item")),
			Li(ID("b"), Marker("item"), Data("state", "open")),
			Li(Marker("item")),
		),
	)
}

func TestQuerySelectorAllAttribute(t *testing.T) {
	doc := sampleDoc()

	items, err := doc.QuerySelectorAll("[data-item]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].ID() != "a" || items[1].ID() != "b" || items[2].ID() != "" {
		t.Errorf("Expected document order a, b, <no id>; got %q %q %q", items[0].ID(), items[1].ID(), items[2].ID())
	}
}

func TestQuerySelectorAttributeValue(t *testing.T) {
	doc := sampleDoc()

	trigger, err := doc.QuerySelector(`[data-modal-trigger="modal-1"]`)
	if err != nil || trigger == nil {
		t.Fatalf("Expected trigger, got %v (err %v)", trigger, err)
	}
	if trigger.ID() != "trigger-1" {
		t.Errorf("Expected trigger-1, got %s", trigger.ID())
	}

	open, _ := doc.QuerySelectorAll("li[data-state=open]")
	if len(open) != 1 || open[0].ID() != "b" {
		t.Errorf("Expected only b to match, got %d matches", len(open))
	}
}

func TestQuerySelectorDescendant(t *testing.T) {
	doc := sampleDoc()

	overlay, err := doc.QuerySelector("#modal-1 [data-modal-overlay]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overlay == nil || overlay.ID() != "overlay-1" {
		t.Fatalf("Expected overlay-1, got %v", overlay)
	}

	none, _ := doc.QuerySelectorAll("#list [data-modal-overlay]")
	if len(none) != 0 {
		t.Errorf("Expected no matches, got %d", len(none))
	}
}

func TestQuerySelectorScoped(t *testing.T) {
	doc := sampleDoc()
	list := doc.GetElementByID("list")

	items, _ := list.QuerySelectorAll("li")
	if len(items) != 3 {
		t.Errorf("Expected 3 li under list, got %d", len(items))
	}

	self, _ := list.QuerySelectorAll("#list")
	if len(self) != 0 {
		t.Error("QuerySelectorAll must not include the scope node itself")
	}
}

func TestParseSelectorErrors(t *testing.T) {
	bad := []string{"", "   ", "[data-x", "[=x]", "div > p", "a:hover", ".open", "li.open", "div, p", "**", "li*", "[data-x~=y]", `[data-x="y]`, "#"}
	for _, src := range bad {
		if _, err := ParseSelector(src); !errors.Is(err, ErrInvalidSelector) {
			t.Errorf("ParseSelector(%q): expected ErrInvalidSelector, got %v", src, err)
		}
	}
}

func TestUniversalSelector(t *testing.T) {
	doc := sampleDoc()

	all, err := doc.QuerySelectorAll("#list *")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 list items, got %d", len(all))
	}

	open, _ := doc.QuerySelectorAll("*[data-state=open]")
	if len(open) != 1 || open[0].ID() != "b" {
		t.Errorf("Expected only b to match, got %d matches", len(open))
	}
}

func TestValidAttrName(t *testing.T) {
	for _, name := range []string{"data-modal", "x", "x-tooltip", "data_x1"} {
		if !ValidAttrName(name) {
			t.Errorf("ValidAttrName(%q) = false", name)
		}
	}
	for _, name := range []string{"", `x="y"`, "data-a data-b", "[data-a]", "a:b"} {
		if ValidAttrName(name) {
			t.Errorf("ValidAttrName(%q) = true", name)
		}
	}
}

func TestAttrSelector(t *testing.T) {
	if got := AttrSelector("data-modal"); got != "[data-modal]" {
		t.Errorf("Expected [data-modal], got %s", got)
	}
}

func TestClosest(t *testing.T) {
	doc := NewDocument(
		Div(ID("menu"), Marker("menu"),
			Ul(Li(ID("item"), Span(ID("label")))),
		),
	)
	label := doc.GetElementByID("label")

	if got := label.Closest(MustParseSelector("[data-menu]")); got == nil || got.ID() != "menu" {
		t.Errorf("Expected #menu, got %v", got)
	}
	if got := label.Closest(MustParseSelector("span")); got != label {
		t.Error("Expected Closest to include the node itself")
	}
	if got := label.Closest(MustParseSelector("[data-missing]")); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}
