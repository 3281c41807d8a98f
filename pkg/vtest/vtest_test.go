package vtest_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
	. "github.com/vango-dev/vtree/pkg/vdom"
	"github.com/vango-dev/vtree/pkg/vtest"
)

func keyedItems(keys []string) *VNode {
	items := make([]*VNode, len(keys))
	for i, k := range keys {
		items[i] = Li(Key(k), k)
	}
	return Ul(items)
}

func wantHTML(keys []string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, k := range keys {
		b.WriteString("<li>" + k + "</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func nodesByText(doc *host.Document, ul host.NodeID) map[string]host.NodeID {
	out := make(map[string]host.NodeID)
	for _, li := range doc.ChildNodes(ul) {
		out[doc.Text(doc.FirstChild(li))] = li
	}
	return out
}

// Random keyed lists: output always matches, surviving keys keep their
// nodes, and re-rendering the same list changes nothing.
func TestRandomKeyedSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := strings.Split("a b c d e f g h i j k l", " ")
	h := vtest.New(t)

	var prev map[string]host.NodeID
	for round := 0; round < 200; round++ {
		keys := append([]string(nil), pool...)
		rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		keys = keys[:rng.Intn(len(keys)+1)]

		h.Render(keyedItems(keys))
		h.ExpectHTML(wantHTML(keys))

		ul := h.Document().FirstChild(h.Container())
		cur := nodesByText(h.Document(), ul)
		for k, n := range cur {
			if old, ok := prev[k]; ok && old != n {
				t.Fatalf("round %d: key %q moved to a new node", round, k)
			}
		}
		prev = cur

		h.ExpectNoop(keyedItems(keys))
	}
}

func TestMixedChildren(t *testing.T) {
	h := vtest.New(t)

	h.Render(Div(
		"head",
		Fragment(Span("x"), nil, Span("y")),
		If(false, P("hidden")),
		Li(Key("k"), "keyed"),
	))
	h.ExpectHTML("<div>head<span>x</span><span>y</span><li>keyed</li></div>")

	h.Render(Div(
		Li(Key("k"), "keyed"),
		Fragment(Span("y")),
		If(true, P("shown")),
	))
	h.ExpectHTML("<div><li>keyed</li><span>y</span><p>shown</p></div>")

	h.Unmount()
	h.ExpectHTML("")
}

func TestComponentLifecycle(t *testing.T) {
	var events []string
	item := &ComponentType{
		Name:   "Item",
		Render: func(c *Instance) any { return Li(c.Props["label"]) },
		DidMount: func(c *Instance) {
			events = append(events, "mount "+c.Props["label"].(string))
		},
		WillUnmount: func(c *Instance) {
			events = append(events, "unmount "+c.Props["label"].(string))
		},
	}

	h := vtest.New(t)
	h.Render(Ul(C(item, Key("1"), Prop("label", "one")), C(item, Key("2"), Prop("label", "two"))))
	h.Render(Ul(C(item, Key("2"), Prop("label", "two"))))

	// DidMount runs most recently created first.
	want := []string{"mount two", "mount one", "unmount one"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", events, want)
	}
	h.ExpectHTML("<ul><li>two</li></ul>")
}

func TestRenderAssertions(t *testing.T) {
	node := Div(Class("card"), Button("Save"))

	vtest.ExpectContains(t, node, "Save")
	vtest.ExpectNotContains(t, node, "Cancel")
	vtest.ExpectElement(t, node, "button")
	vtest.ExpectAttribute(t, node, "class", "card")

	if got := vtest.RenderToString(Text("a < b")); got != "a &lt; b" {
		t.Errorf("RenderToString = %q", got)
	}
}
