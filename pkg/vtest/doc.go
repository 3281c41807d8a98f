// Package vtest provides testing helpers for code that renders with vtree.
//
// # Harness
//
// A Harness owns a document, a container and a renderer. Every Render also
// replays the pass's mutations onto a mirror document through the wire
// codec, the way a remote client would, and fails the test if the mirror
// drifts from the document.
//
//	func TestTodoList(t *testing.T) {
//	    h := vtest.New(t)
//	    h.Render(TodoList(items))
//	    h.ExpectHTML(`<ul><li>milk</li></ul>`)
//
//	    stats := h.Render(TodoList(append(items, "eggs")))
//	    if stats.Creates != 2 {
//	        t.Errorf("creates = %d, want 2", stats.Creates)
//	    }
//	    h.ExpectNoop(TodoList(append(items, "eggs")))
//	}
//
// # One-Liner Shorthand
//
// For a quick look at output, without lifecycle:
//
//	html := vtest.RenderToString(MyComponent())
//
// # Render Assertions
//
//	vtest.ExpectContains(t, node, "Welcome Admin")
//	vtest.ExpectNotContains(t, node, "Login")
//	vtest.ExpectElement(t, node, "button")
//	vtest.ExpectAttribute(t, node, "class", "btn-primary")
package vtest
