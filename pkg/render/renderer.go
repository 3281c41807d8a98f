package render

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/vango-dev/vtree/pkg/host"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Inline elements and text stay on
	// one line, so pretty output does not round-trip through ParseInto
	// without whitespace text nodes being dropped.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer serializes host nodes to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders n and its subtree to a string.
func (r *Renderer) RenderToString(doc *host.Document, n host.NodeID) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, doc, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InnerHTML renders the children of n, without n itself.
func (r *Renderer) InnerHTML(doc *host.Document, n host.NodeID) (string, error) {
	if err := doc.Check(n); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	for _, c := range doc.ChildNodes(n) {
		r.renderNode(bw, doc, c, 0)
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams n and its subtree to w.
func (r *Renderer) RenderToWriter(w io.Writer, doc *host.Document, n host.NodeID) error {
	if err := doc.Check(n); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	r.renderNode(bw, doc, n, 0)
	return bw.Flush()
}

func (r *Renderer) renderNode(w *bufio.Writer, doc *host.Document, n host.NodeID, depth int) {
	switch doc.Type(n) {
	case host.ElementNode:
		r.renderElement(w, doc, n, depth)
	case host.TextNode:
		w.WriteString(escapeHTML(doc.Text(n)))
	case host.CommentNode:
		w.WriteString("<!--")
		w.WriteString(strings.ReplaceAll(doc.Text(n), "--", "- -"))
		w.WriteString("-->")
	}
}

func (r *Renderer) renderElement(w *bufio.Writer, doc *host.Document, n host.NodeID, depth int) {
	tag := doc.Tag(n)

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteByte('<')
	w.WriteString(tag)
	for _, key := range doc.AttrKeys(n) {
		value, _ := doc.Attr(n, key)
		w.WriteByte(' ')
		w.WriteString(key)
		if value != "" {
			w.WriteString(`="`)
			w.WriteString(escapeAttr(value))
			w.WriteByte('"')
		}
	}
	w.WriteByte('>')

	if doc.Namespace(n) == "" && isVoidElement(tag) {
		if r.config.Pretty {
			w.WriteByte('\n')
		}
		return
	}

	children := doc.ChildNodes(n)
	block := r.config.Pretty && len(children) > 0 && !isInlineElement(tag) && hasElementChild(doc, children)
	if block {
		w.WriteByte('\n')
	}
	for _, c := range children {
		if block && doc.Type(c) != host.ElementNode {
			r.writeIndent(w, depth+1)
			r.renderNode(w, doc, c, depth+1)
			w.WriteByte('\n')
			continue
		}
		childDepth := depth + 1
		if !block {
			childDepth = 0
		}
		r.renderNode(w, doc, c, childDepth)
	}
	if block {
		r.writeIndent(w, depth)
	}

	w.WriteString("</")
	w.WriteString(tag)
	w.WriteByte('>')
	if r.config.Pretty && depth > 0 {
		w.WriteByte('\n')
	}
}

func hasElementChild(doc *host.Document, children []host.NodeID) bool {
	for _, c := range children {
		if doc.Type(c) == host.ElementNode {
			return true
		}
	}
	return false
}

func (r *Renderer) writeIndent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}
