// Package render converts between host documents and HTML.
//
// Renderer serializes a subtree of a host.Document to HTML, escaping text
// and attribute values. ParseInto goes the other way: it parses HTML and
// appends the resulting nodes to a container, which is how server-rendered
// markup is loaded before a hydrating pass adopts it.
//
//	doc := host.NewDocument()
//	root := doc.CreateElement("div", "")
//	if err := render.ParseInto(doc, root, strings.NewReader(page)); err != nil {
//	    return err
//	}
//	err := renderer.Hydrate(ctx, tree, root)
//
//	html, err := render.NewRenderer(render.RendererConfig{}).InnerHTML(doc, root)
package render
