package render

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
)

// ParseOptions controls how markup is loaded into a document.
type ParseOptions struct {
	// KeepWhitespace keeps text nodes that contain only whitespace.
	// They are dropped by default, since formatting between tags would
	// otherwise show up as excess children during hydration.
	KeepWhitespace bool

	// KeepComments keeps comment nodes.
	KeepComments bool
}

// ParseInto parses an HTML fragment from r and appends the resulting nodes
// to parent, which must be an element of doc.
func ParseInto(doc *host.Document, parent host.NodeID, r io.Reader) error {
	return ParseIntoWithOptions(doc, parent, r, ParseOptions{})
}

// ParseIntoWithOptions is ParseInto with explicit options.
func ParseIntoWithOptions(doc *host.Document, parent host.NodeID, r io.Reader, opts ParseOptions) error {
	if err := doc.Check(parent); err != nil {
		return err
	}
	if doc.Type(parent) != host.ElementNode {
		return errors.New("E101").
			WithDetailf("node %s is a %s", parent, doc.Type(parent))
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return errors.New("E400").Wrap(err)
	}

	p := parser{doc: doc, opts: opts}
	for _, n := range nodes {
		if err := p.load(parent, n); err != nil {
			return err
		}
	}
	return nil
}

type parser struct {
	doc  *host.Document
	opts ParseOptions
}

func (p *parser) load(parent host.NodeID, n *html.Node) error {
	var id host.NodeID
	switch n.Type {
	case html.ElementNode:
		ns := ""
		if n.Namespace == "svg" {
			ns = host.SVGNamespace
		}
		id = p.doc.CreateElement(n.Data, ns)
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			if err := p.doc.SetAttr(id, key, a.Val); err != nil {
				return err
			}
		}
	case html.TextNode:
		if !p.opts.KeepWhitespace && strings.TrimSpace(n.Data) == "" {
			return nil
		}
		id = p.doc.CreateText(n.Data)
	case html.CommentNode:
		if !p.opts.KeepComments {
			return nil
		}
		id = p.doc.CreateComment(n.Data)
	default:
		// Doctype and raw document nodes have no host equivalent.
		return nil
	}

	if err := p.doc.AppendChild(parent, id); err != nil {
		return err
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := p.load(id, c); err != nil {
			return err
		}
	}
	return nil
}
