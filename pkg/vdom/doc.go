// Package vdom provides the DOM-like host tree the behaviour runtime runs
// against.
//
// It is a small, in-process stand-in for a browser document: element nodes
// with attributes and children, id lookup, attribute selectors, bubbling
// events and a mutation observer. Widgets and tests build trees with the
// element factories:
//
//	doc := vdom.NewDocument(
//	    vdom.Div(vdom.ID("menu"), vdom.Data("dropdown", ""),
//	        vdom.Button(vdom.Data("dropdown-trigger", ""), vdom.Text("Open")),
//	    ),
//	)
//
// # Mutations
//
// Structural changes made through AppendChild, InsertBefore, RemoveChild and
// ReplaceChildren on a connected node are recorded as Mutation values using
// the same PatchOp vocabulary a renderer would emit. Attribute changes are
// recorded too. Records are queued per observer and delivered in one batch
// per observer when the host calls Document.Flush, which stands in for the
// browser delivering observer callbacks after the DOM settles.
//
// # Selectors
//
// QuerySelectorAll understands tag names, #id, [attr] and [attr="value"]
// compound selectors joined by the descendant combinator. Matches are
// returned in document order.
//
// # Events
//
// Every node and the Document itself are EventTargets. Events dispatched on
// a node bubble to its ancestors and then to the Document unless stopped.
package vdom
