package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
	. "github.com/vango-dev/vtree/pkg/vdom"
)

func TestParseInto(t *testing.T) {
	doc := host.NewDocument()
	root := doc.CreateElement("div", "")

	markup := `
		<ul class="items">
			<li data-id="1">one</li>
			<!-- note -->
			<li>two &amp; more</li>
		</ul>
		<svg viewBox="0 0 10 10"><circle r="4"></circle></svg>`
	if err := render.ParseInto(doc, root, strings.NewReader(markup)); err != nil {
		t.Fatalf("ParseInto: %v", err)
	}

	kids := doc.ChildNodes(root)
	if len(kids) != 2 {
		t.Fatalf("got %d top-level nodes, want 2", len(kids))
	}
	ul, svg := kids[0], kids[1]
	if doc.Tag(ul) != "ul" || len(doc.ChildNodes(ul)) != 2 {
		t.Fatalf("ul children = %d, want 2 (whitespace and comments dropped)", len(doc.ChildNodes(ul)))
	}
	li := doc.FirstChild(ul)
	if v, _ := doc.Attr(li, "data-id"); v != "1" {
		t.Errorf("data-id = %q, want 1", v)
	}
	if got := doc.Text(doc.FirstChild(doc.NextSibling(li))); got != "two & more" {
		t.Errorf("text = %q, want entity decoded", got)
	}
	if doc.Namespace(svg) != host.SVGNamespace {
		t.Errorf("svg namespace = %q", doc.Namespace(svg))
	}
	if doc.Namespace(doc.FirstChild(svg)) != host.SVGNamespace {
		t.Errorf("circle namespace = %q", doc.Namespace(doc.FirstChild(svg)))
	}
}

func TestParseIntoKeepOptions(t *testing.T) {
	doc := host.NewDocument()
	root := doc.CreateElement("div", "")

	opts := render.ParseOptions{KeepWhitespace: true, KeepComments: true}
	if err := render.ParseIntoWithOptions(doc, root, strings.NewReader("<p>a</p> <!--c-->"), opts); err != nil {
		t.Fatal(err)
	}
	kids := doc.ChildNodes(root)
	if len(kids) != 3 {
		t.Fatalf("got %d nodes, want 3", len(kids))
	}
	if doc.Type(kids[2]) != host.CommentNode {
		t.Errorf("last node is %s, want comment", doc.Type(kids[2]))
	}
}

func TestParseIntoRejectsTextContainer(t *testing.T) {
	doc := host.NewDocument()
	txt := doc.CreateText("x")
	if err := render.ParseInto(doc, txt, strings.NewReader("<p></p>")); err == nil {
		t.Fatal("expected error for text container")
	}
}

// Markup rendered on one document and parsed into another must be adopted
// by a hydrating pass without any mutations.
func TestServerMarkupHydratesWithoutMutations(t *testing.T) {
	tree := func() *VNode {
		return Section(
			ID("main"),
			Ul(Class("items"),
				Li(Key("1"), "one"),
				Li(Key("2"), "two & more"),
			),
			Svg(Circle(Prop("r", "4"))),
		)
	}

	server := host.NewDocument()
	serverRoot := server.CreateElement("div", "")
	if err := reconcile.New(server).Render(context.Background(), tree(), serverRoot); err != nil {
		t.Fatalf("server render: %v", err)
	}
	markup, err := render.NewRenderer(render.RendererConfig{}).InnerHTML(server, serverRoot)
	if err != nil {
		t.Fatal(err)
	}

	client := host.NewDocument()
	clientRoot := client.CreateElement("div", "")
	if err := render.ParseInto(client, clientRoot, strings.NewReader(markup)); err != nil {
		t.Fatal(err)
	}
	client.ResetStats()

	if err := reconcile.New(client).Hydrate(context.Background(), tree(), clientRoot); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if stats := client.Stats(); stats.Total() != 0 {
		t.Errorf("hydrate produced %d mutations: %+v", stats.Total(), stats)
	}

	again, err := render.NewRenderer(render.RendererConfig{}).InnerHTML(client, clientRoot)
	if err != nil {
		t.Fatal(err)
	}
	if again != markup {
		t.Errorf("markup changed after hydrate:\n got %s\nwant %s", again, markup)
	}
}
