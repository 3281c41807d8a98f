package reconcile

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func setup(t *testing.T, opts ...Option) (*host.Document, host.NodeID, *Renderer) {
	t.Helper()
	doc := host.NewDocument()
	root := doc.CreateElement("div", "")
	return doc, root, New(doc, opts...)
}

// textOf returns the concatenated text below n.
func textOf(doc *host.Document, n host.NodeID) string {
	if doc.Type(n) == host.TextNode {
		return doc.Text(n)
	}
	var sb strings.Builder
	for _, c := range doc.ChildNodes(n) {
		sb.WriteString(textOf(doc, c))
	}
	return sb.String()
}

func childTexts(doc *host.Document, parent host.NodeID) []string {
	var out []string
	for _, c := range doc.ChildNodes(parent) {
		out = append(out, textOf(doc, c))
	}
	return out
}

func keyedList(keys ...string) *vdom.VNode {
	items := make([]any, len(keys))
	for i, k := range keys {
		items[i] = vdom.Li(vdom.Key(k), k)
	}
	return vdom.Ul(items...)
}

func render(t *testing.T, r *Renderer, content any, container host.NodeID) host.Stats {
	t.Helper()
	doc := r.Document()
	doc.ResetStats()
	require.NoError(t, r.Render(context.Background(), content, container))
	return doc.Stats()
}

func TestRenderInitial(t *testing.T) {
	doc, root, r := setup(t)

	stats := render(t, r, keyedList("a", "b", "c"), root)

	ul := doc.FirstChild(root)
	assert.Equal(t, "ul", doc.Tag(ul))
	assert.Equal(t, []string{"a", "b", "c"}, childTexts(doc, ul))
	assert.Equal(t, 7, stats.Creates)
	assert.Equal(t, 0, stats.Removes)
}

func TestKeyedSwapReusesNodes(t *testing.T) {
	doc, root, r := setup(t)
	render(t, r, keyedList("a", "b"), root)
	ul := doc.FirstChild(root)
	before := doc.ChildNodes(ul)

	stats := render(t, r, keyedList("b", "a"), root)

	assert.Equal(t, []host.NodeID{before[1], before[0]}, doc.ChildNodes(ul))
	assert.Equal(t, 0, stats.Creates)
	assert.Equal(t, 0, stats.Removes)
	assert.Equal(t, 0, stats.TextSets)
	assert.Equal(t, 1, stats.Placements())
}

func TestKeyedReorderPreservesIdentity(t *testing.T) {
	doc, root, r := setup(t)
	render(t, r, keyedList("a", "b", "c", "d"), root)
	ul := doc.FirstChild(root)
	ids := make(map[string]host.NodeID)
	for _, n := range doc.ChildNodes(ul) {
		ids[textOf(doc, n)] = n
	}

	stats := render(t, r, keyedList("d", "b", "a", "c"), root)

	assert.Equal(t, []string{"d", "b", "a", "c"}, childTexts(doc, ul))
	for _, n := range doc.ChildNodes(ul) {
		assert.Equal(t, ids[textOf(doc, n)], n)
	}
	assert.Equal(t, 0, stats.Creates)
	assert.Equal(t, 0, stats.Removes)
}

func TestReverseBoundedPlacements(t *testing.T) {
	const n = 10
	doc, root, r := setup(t)
	keys := make([]string, n)
	reversed := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%d", i)
		reversed[n-1-i] = keys[i]
	}
	render(t, r, keyedList(keys...), root)

	stats := render(t, r, keyedList(reversed...), root)

	assert.Equal(t, reversed, childTexts(doc, doc.FirstChild(root)))
	assert.LessOrEqual(t, stats.Placements(), n)
	assert.Equal(t, 0, stats.Creates)
	assert.Equal(t, 0, stats.Removes)
}

func TestRemovedChildIsUnmountedOnce(t *testing.T) {
	unmounts := make(map[string]int)
	item := vdom.Func("Item", func(c *vdom.Instance) any {
		return vdom.Li(c.Props["name"])
	})
	item.WillUnmount = func(c *vdom.Instance) {
		unmounts[c.Props["name"].(string)]++
	}
	list := func(names ...string) *vdom.VNode {
		items := make([]any, len(names))
		for i, name := range names {
			items[i] = vdom.C(item, vdom.Key(name), vdom.Prop("name", name))
		}
		return vdom.Ul(items...)
	}

	doc, root, r := setup(t)
	render(t, r, list("a", "b", "c"), root)
	ul := doc.FirstChild(root)
	b := doc.ChildNodes(ul)[1]

	stats := render(t, r, list("a", "c"), root)

	assert.Equal(t, []string{"a", "c"}, childTexts(doc, ul))
	assert.Equal(t, map[string]int{"b": 1}, unmounts)
	assert.False(t, doc.Valid(b))
	assert.Equal(t, 1, stats.Removes)
	assert.Equal(t, 0, stats.Placements())
}

func TestSecondRenderIsNoop(t *testing.T) {
	label := vdom.Func("Label", func(c *vdom.Instance) any {
		return []any{vdom.Span("x"), nil, "y"}
	})
	build := func() any {
		return []any{
			keyedList("a", "b", "c"),
			vdom.Fragment(vdom.P("p"), nil, vdom.Text("t")),
			vdom.C(label),
			vdom.Div(vdom.Class("box"), vdom.Prop("hidden", false), 42),
		}
	}

	doc, root, r := setup(t)
	render(t, r, build(), root)
	want := childTexts(doc, root)

	stats := render(t, r, build(), root)

	assert.Equal(t, 0, stats.Total(), "second pass over an identical tree mutated the document")
	assert.Equal(t, want, childTexts(doc, root))
}

func TestRerenderSameDescriptor(t *testing.T) {
	doc, root, r := setup(t)
	tree := vdom.Div(vdom.Span("a"), vdom.Fragment("b", vdom.P("c")))
	render(t, r, tree, root)

	stats := render(t, r, tree, root)

	assert.Equal(t, 0, stats.Total())
	assert.Equal(t, []string{"abc"}, childTexts(doc, root))
}

func TestStatefulComponentNotReusedAcrossPositions(t *testing.T) {
	counter := vdom.Stateful("Counter", func(c *vdom.Instance) any { return vdom.Span("n") })
	unmounted := 0
	counter.WillUnmount = func(*vdom.Instance) { unmounted++ }

	_, root, r := setup(t)
	render(t, r, []any{vdom.C(counter)}, root)
	first := r.Root(root).Children[0].Instance

	render(t, r, []any{vdom.Text("x"), vdom.C(counter)}, root)
	second := r.Root(root).Children[1].Instance

	assert.NotSame(t, first, second)
	assert.True(t, first.Unmounted())
	assert.Equal(t, 1, unmounted)
}

func TestFunctionComponentReusedAcrossPositions(t *testing.T) {
	label := vdom.Func("Label", func(c *vdom.Instance) any { return vdom.Span("n") })

	doc, root, r := setup(t)
	render(t, r, []any{vdom.C(label)}, root)
	first := r.Root(root).Children[0].Instance
	span := doc.FirstChild(root)

	render(t, r, []any{vdom.Text("x"), vdom.C(label)}, root)
	second := r.Root(root).Children[1].Instance

	assert.Same(t, first, second)
	assert.Equal(t, 2, second.Renders)
	assert.Equal(t, []string{"x", "n"}, childTexts(doc, root))
	assert.Equal(t, span, doc.LastChild(root))
}

func TestFragmentChildrenStayInOrder(t *testing.T) {
	doc, root, r := setup(t)
	render(t, r, []any{
		vdom.P("a"),
		vdom.Fragment(vdom.P("b"), vdom.P("c")),
		vdom.P("d"),
	}, root)

	stats := render(t, r, []any{
		vdom.P("a"),
		vdom.Fragment(vdom.P("b"), vdom.P("c"), vdom.P("e")),
		vdom.P("d"),
	}, root)

	assert.Equal(t, []string{"a", "b", "c", "e", "d"}, childTexts(doc, root))
	assert.Equal(t, 2, stats.Creates) // p and its text
	assert.Equal(t, 1, stats.Inserts)
	assert.Equal(t, 0, stats.Removes)
}

func TestFragmentShrinks(t *testing.T) {
	doc, root, r := setup(t)
	render(t, r, []any{
		vdom.Fragment(vdom.P(vdom.Key("x"), "x"), vdom.P(vdom.Key("y"), "y")),
		vdom.P("z"),
	}, root)

	stats := render(t, r, []any{
		vdom.Fragment(vdom.P(vdom.Key("y"), "y")),
		vdom.P("z"),
	}, root)

	assert.Equal(t, []string{"y", "z"}, childTexts(doc, root))
	assert.Equal(t, 1, stats.Removes)
	assert.Equal(t, 0, stats.Creates)
}

func TestMultiNodeComponentBetweenSiblings(t *testing.T) {
	rows := vdom.Func("Rows", func(c *vdom.Instance) any {
		n := c.Props["n"].(int)
		out := make([]any, n)
		for i := range out {
			out[i] = vdom.Li(vdom.Key(i), fmt.Sprintf("r%d", i))
		}
		return out
	})
	tree := func(n int) any {
		return vdom.Ul(vdom.Li("a"), vdom.C(rows, vdom.Prop("n", n)), vdom.Li("b"))
	}

	doc, root, r := setup(t)
	render(t, r, tree(2), root)
	ul := doc.FirstChild(root)
	assert.Equal(t, []string{"a", "r0", "r1", "b"}, childTexts(doc, ul))

	render(t, r, tree(3), root)
	assert.Equal(t, []string{"a", "r0", "r1", "r2", "b"}, childTexts(doc, ul))

	render(t, r, tree(0), root)
	assert.Equal(t, []string{"a", "b"}, childTexts(doc, ul))

	render(t, r, tree(1), root)
	assert.Equal(t, []string{"a", "r0", "b"}, childTexts(doc, ul))
}

func TestPlaceholderKeepsSiblingPositions(t *testing.T) {
	tree := func(show bool) any {
		return []any{vdom.P("a"), vdom.If(show, vdom.Span("b")), vdom.Div("c")}
	}

	doc, root, r := setup(t)
	render(t, r, tree(false), root)
	p, div := doc.FirstChild(root), doc.LastChild(root)

	stats := render(t, r, tree(true), root)
	assert.Equal(t, []string{"a", "b", "c"}, childTexts(doc, root))
	assert.Equal(t, 1, stats.Inserts)
	assert.Equal(t, 0, stats.Removes)
	assert.Equal(t, p, doc.FirstChild(root))
	assert.Equal(t, div, doc.LastChild(root))

	stats = render(t, r, tree(false), root)
	assert.Equal(t, []string{"a", "c"}, childTexts(doc, root))
	assert.Equal(t, 1, stats.Removes)
	assert.Equal(t, 0, stats.Placements())
}

func TestKeyedTypeChangeReplacesNode(t *testing.T) {
	doc, root, r := setup(t)
	render(t, r, vdom.Ul(vdom.Li(vdom.Key("a"), "x")), root)
	ul := doc.FirstChild(root)
	li := doc.FirstChild(ul)

	render(t, r, vdom.Ul(vdom.Div(vdom.Key("a"), "x")), root)

	assert.False(t, doc.Valid(li))
	assert.Equal(t, "div", doc.Tag(doc.FirstChild(ul)))
	assert.Len(t, doc.ChildNodes(ul), 1)
}

func TestTextAndAttributeUpdates(t *testing.T) {
	doc, root, r := setup(t)
	render(t, r, vdom.Div(vdom.Class("a"), vdom.ID("x"), "one"), root)
	div := doc.FirstChild(root)

	stats := render(t, r, vdom.Div(vdom.Class("b"), "two"), root)

	assert.Equal(t, div, doc.FirstChild(root))
	assert.Equal(t, "two", textOf(doc, div))
	v, ok := doc.Attr(div, "class")
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	_, ok = doc.Attr(div, "id")
	assert.False(t, ok)
	assert.Equal(t, 1, stats.TextSets)
	assert.Equal(t, 1, stats.AttrSets)
	assert.Equal(t, 1, stats.AttrRemoves)
	assert.Equal(t, 3, stats.Total())
}

func TestSVGNamespace(t *testing.T) {
	doc, root, r := setup(t)
	render(t, r, vdom.Div(
		vdom.Svg(
			vdom.Circle(vdom.Prop("r", 4)),
			vdom.H("foreignObject", vdom.Div()),
		),
	), root)

	div := doc.FirstChild(root)
	svg := doc.FirstChild(div)
	circle := doc.FirstChild(svg)
	fo := doc.NextSibling(circle)
	inner := doc.FirstChild(fo)

	assert.Equal(t, "", doc.Namespace(div))
	assert.Equal(t, host.SVGNamespace, doc.Namespace(svg))
	assert.Equal(t, host.SVGNamespace, doc.Namespace(circle))
	assert.Equal(t, host.SVGNamespace, doc.Namespace(fo))
	assert.Equal(t, "", doc.Namespace(inner))
}

func TestHydrateAdoptsExistingNodes(t *testing.T) {
	doc, root, r := setup(t)
	p := doc.CreateElement("p", "")
	require.NoError(t, doc.SetAttr(p, "class", "stale"))
	require.NoError(t, doc.AppendChild(p, doc.CreateText("old")))
	stray := doc.CreateText("stray")
	span := doc.CreateElement("span", "")
	require.NoError(t, doc.SetAttr(span, "id", "s"))
	for _, n := range []host.NodeID{p, stray, span} {
		require.NoError(t, doc.AppendChild(root, n))
	}
	doc.ResetStats()

	err := r.Hydrate(context.Background(), []any{vdom.P("new"), vdom.Span(vdom.ID("s"))}, root)
	require.NoError(t, err)

	stats := doc.Stats()
	assert.Equal(t, []host.NodeID{p, span}, doc.ChildNodes(root))
	assert.Equal(t, "new", textOf(doc, p))
	assert.False(t, doc.Valid(stray))
	assert.Equal(t, 0, stats.Creates)
	assert.Equal(t, 1, stats.TextSets)
	assert.Equal(t, 1, stats.AttrRemoves)
	assert.Equal(t, 0, stats.AttrSets)
	assert.Equal(t, 1, stats.Removes)

	// Later renders diff against the hydrated tree.
	stats = render(t, r, []any{vdom.P("newer"), vdom.Span(vdom.ID("s"))}, root)
	assert.Equal(t, 1, stats.TextSets)
	assert.Equal(t, 1, stats.Total())
}

func TestHydrateCreatesMissingNodes(t *testing.T) {
	doc, root, r := setup(t)
	require.NoError(t, doc.AppendChild(root, doc.CreateElement("p", "")))

	err := r.Hydrate(context.Background(), vdom.Div("x"), root)
	require.NoError(t, err)

	require.Len(t, doc.ChildNodes(root), 1)
	assert.Equal(t, "div", doc.Tag(doc.FirstChild(root)))
}

func TestComponentLifecycle(t *testing.T) {
	var events []string
	child := &vdom.ComponentType{
		Name:        "Child",
		Render:      func(c *vdom.Instance) any { return "child" },
		Init:        func(*vdom.Instance) { events = append(events, "child:init") },
		DidMount:    func(*vdom.Instance) { events = append(events, "child:mount") },
		WillUnmount: func(*vdom.Instance) { events = append(events, "child:unmount") },
	}
	parent := &vdom.ComponentType{
		Name:        "Parent",
		Stateful:    true,
		Render:      func(c *vdom.Instance) any { return vdom.Div(vdom.C(child)) },
		Init:        func(*vdom.Instance) { events = append(events, "parent:init") },
		DidMount:    func(*vdom.Instance) { events = append(events, "parent:mount") },
		WillUnmount: func(*vdom.Instance) { events = append(events, "parent:unmount") },
	}

	doc, root, r := setup(t)
	render(t, r, vdom.C(parent), root)
	assert.Equal(t, []string{"parent:init", "child:init", "child:mount", "parent:mount"}, events)

	events = nil
	render(t, r, vdom.C(parent), root)
	assert.Empty(t, events, "re-render must not re-run mount hooks")

	events = nil
	require.NoError(t, r.Unmount(context.Background(), root))
	assert.Equal(t, []string{"parent:unmount", "child:unmount"}, events)
	assert.Empty(t, doc.ChildNodes(root))
	assert.Nil(t, r.Root(root))
}

func TestChildContext(t *testing.T) {
	theme := &vdom.ComponentType{
		Name:   "Theme",
		Render: func(c *vdom.Instance) any { return c.Content },
		ChildContext: func(c *vdom.Instance) map[string]any {
			return map[string]any{"theme": c.Props["value"]}
		},
	}
	label := vdom.Func("Label", func(c *vdom.Instance) any {
		return vdom.Span(c.Context["theme"])
	})

	doc, root, r := setup(t)
	render(t, r, vdom.C(theme, vdom.Prop("value", "dark"), vdom.Div(vdom.C(label))), root)

	assert.Equal(t, []string{"dark"}, childTexts(doc, root))
}

func TestRenderPanicBecomesError(t *testing.T) {
	boom := vdom.Func("Boom", func(*vdom.Instance) any { panic("kaboom") })

	_, root, r := setup(t)
	err := r.Render(context.Background(), vdom.Div(vdom.C(boom)), root)

	require.Error(t, err)
	assert.ErrorIs(t, err, verrors.New("E200"))
	assert.Contains(t, err.Error(), "Boom")
	assert.Contains(t, err.Error(), "kaboom")
}

func TestFailedPassStopsAtFailingChild(t *testing.T) {
	fail := true
	mounts := 0
	flaky := &vdom.ComponentType{
		Name:     "Flaky",
		Stateful: true,
		Render: func(*vdom.Instance) any {
			if fail {
				panic("not ready")
			}
			return "b"
		},
		DidMount: func(*vdom.Instance) { mounts++ },
	}
	content := func() any { return []any{vdom.Span("a"), vdom.C(flaky), vdom.P("c")} }

	doc, root, r := setup(t)
	err := r.Render(context.Background(), content(), root)
	assert.ErrorIs(t, err, verrors.New("E200"))
	assert.Equal(t, []string{"a"}, childTexts(doc, root), "siblings before the failure stay, later ones never run")
	assert.Equal(t, 0, mounts)

	fail = false
	render(t, r, content(), root)
	assert.Equal(t, []string{"a", "b", "c"}, childTexts(doc, root))
	assert.Equal(t, 1, mounts, "instance kept from the failed pass mounts once it renders")

	render(t, r, content(), root)
	assert.Equal(t, 1, mounts)
}

func TestFailedPassKeepsUnreachedChildren(t *testing.T) {
	fail := true
	boom := vdom.Func("Boom", func(*vdom.Instance) any {
		if fail {
			panic("kaboom")
		}
		return nil
	})

	doc, root, r := setup(t)
	render(t, r, []any{"a", vdom.Span("b"), vdom.P("c")}, root)

	err := r.Render(context.Background(), []any{vdom.C(boom), vdom.Span("b"), vdom.P("c")}, root)
	assert.ErrorIs(t, err, verrors.New("E200"))
	assert.Equal(t, []string{"a", "b", "c"}, childTexts(doc, root))

	fail = false
	render(t, r, []any{"x"}, root)
	assert.Equal(t, []string{"x"}, childTexts(doc, root))
	assert.Len(t, doc.ChildNodes(root), 1)

	stats := render(t, r, []any{"x"}, root)
	assert.Equal(t, 0, stats.Total())
}

func TestFailedPassMountsEarlierSiblingLater(t *testing.T) {
	fail := true
	mounts := 0
	counter := &vdom.ComponentType{
		Name:     "Counter",
		Stateful: true,
		Render:   func(*vdom.Instance) any { return vdom.Span("0") },
		DidMount: func(*vdom.Instance) { mounts++ },
	}
	bad := vdom.Func("Bad", func(*vdom.Instance) any {
		if fail {
			panic("bad")
		}
		return "ok"
	})

	doc, root, r := setup(t)
	content := func() any { return []any{vdom.C(counter), vdom.C(bad)} }
	require.Error(t, r.Render(context.Background(), content(), root))
	assert.Equal(t, 0, mounts)

	fail = false
	render(t, r, content(), root)
	assert.Equal(t, 1, mounts)
	assert.Equal(t, []string{"0", "ok"}, childTexts(doc, root))
}

func TestHydrateUnmountsPreviousTree(t *testing.T) {
	unmounts := 0
	counter := &vdom.ComponentType{
		Name:        "Counter",
		Stateful:    true,
		Render:      func(*vdom.Instance) any { return vdom.Span("count") },
		WillUnmount: func(*vdom.Instance) { unmounts++ },
	}

	doc, root, r := setup(t)
	render(t, r, vdom.C(counter), root)
	span := doc.FirstChild(root)

	require.NoError(t, r.Hydrate(context.Background(), vdom.Div("other"), root))
	assert.Equal(t, 1, unmounts)
	assert.Equal(t, []string{"other"}, childTexts(doc, root))
	assert.False(t, doc.Valid(span))
}

func TestHydrateOverRenderedTreeAdoptsNodes(t *testing.T) {
	doc, root, r := setup(t)
	render(t, r, vdom.Span("keep"), root)
	span := doc.FirstChild(root)

	doc.ResetStats()
	require.NoError(t, r.Hydrate(context.Background(), vdom.Span("keep"), root))
	assert.Equal(t, 0, doc.Stats().Total())
	assert.Equal(t, []host.NodeID{span}, doc.ChildNodes(root))

	stats := render(t, r, vdom.Span("keep"), root)
	assert.Equal(t, 0, stats.Total())
}

func TestReentrantRenderRejected(t *testing.T) {
	var inner error
	_, root, r := setup(t)
	nested := vdom.Func("Nested", func(*vdom.Instance) any {
		inner = r.Render(context.Background(), "x", root)
		return nil
	})

	require.NoError(t, r.Render(context.Background(), vdom.C(nested), root))
	assert.ErrorIs(t, inner, verrors.New("E201"))
}

func TestRenderIntoOtherContainerFromComponent(t *testing.T) {
	doc, root, r := setup(t)
	portal := doc.CreateElement("aside", "")
	mirror := vdom.Func("Mirror", func(c *vdom.Instance) any {
		if err := r.Render(context.Background(), vdom.P("mirrored"), portal); err != nil {
			return err.Error()
		}
		return "main"
	})

	render(t, r, vdom.C(mirror), root)

	assert.Equal(t, []string{"main"}, childTexts(doc, root))
	assert.Equal(t, []string{"mirrored"}, childTexts(doc, portal))
}

func TestRenderInvalidContainer(t *testing.T) {
	doc, _, r := setup(t)
	text := doc.CreateText("t")

	err := r.Render(context.Background(), "x", text)
	assert.ErrorIs(t, err, verrors.New("E101"))

	err = r.Render(context.Background(), "x", host.NodeID(999))
	assert.ErrorIs(t, err, host.ErrUnknownNode)
}

func TestFirstRenderLeavesForeignChildren(t *testing.T) {
	doc, root, r := setup(t)
	foreign := doc.CreateElement("b", "")
	require.NoError(t, doc.AppendChild(root, foreign))

	render(t, r, vdom.P("x"), root)

	nodes := doc.ChildNodes(root)
	require.Len(t, nodes, 2)
	assert.Equal(t, foreign, nodes[0])
}

type recordingObserver struct {
	starts []PassInfo
	stats  []PassStats
	errs   []error
}

func (o *recordingObserver) PassStart(ctx context.Context, info PassInfo) context.Context {
	o.starts = append(o.starts, info)
	return ctx
}

func (o *recordingObserver) PassEnd(_ context.Context, _ PassInfo, stats PassStats, err error) {
	o.stats = append(o.stats, stats)
	o.errs = append(o.errs, err)
}

func TestObserverReceivesPassStats(t *testing.T) {
	obs := &recordingObserver{}
	_, root, r := setup(t, WithObserver(obs))

	render(t, r, keyedList("a", "b"), root)
	render(t, r, keyedList("b", "a"), root)

	require.Len(t, obs.starts, 2)
	assert.Equal(t, PassRender, obs.starts[1].Kind)
	assert.Equal(t, root, obs.starts[1].Container)

	last := obs.stats[1]
	assert.Equal(t, 3, last.Matches[MatchIndex]) // ul and both texts
	assert.Equal(t, 2, last.Matches[MatchKey])
	assert.Equal(t, 0, last.Matches[MatchNone])
	assert.Equal(t, 1, last.Mutations.Placements())
	assert.NoError(t, obs.errs[1])
}

func TestScanWindow(t *testing.T) {
	p := &pass{scanRatio: DefaultScanRatio}
	assert.Equal(t, 0, p.window(0))
	assert.Equal(t, 1, p.window(1))
	assert.Equal(t, 2, p.window(3))
	assert.Equal(t, 2, p.window(4))

	_, _, r := setup(t, WithScanRatio(1), WithScanRatio(7))
	assert.Equal(t, 1.0, r.scanRatio)
}
