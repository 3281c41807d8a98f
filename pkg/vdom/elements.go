package vdom

import "fmt"

// svgTags are elements whose descendants use the SVG namespace.
var svgTags = map[string]bool{
	"svg": true,
}

// IsSVGRoot reports whether tag starts an SVG subtree.
func IsSVGRoot(tag string) bool {
	return svgTags[tag]
}

// build splits variadic arguments into attributes and content.
// Arguments can be: Attr, []Attr, Props, or anything accepted by
// ToChildArray. nil arguments are kept as placeholder slots.
func build(node *VNode, args []any) *VNode {
	var content []any
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case Props:
			for k, val := range v {
				node.setAttr(Attr{Key: k, Value: val})
			}
		default:
			content = append(content, arg)
		}
	}
	if content != nil {
		node.Content = content
	}
	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		v.Key = fmt.Sprintf("%v", a.Value)
		return
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	v.Props[a.Key] = a.Value
}

// H creates an element descriptor.
//
//	H("ul", Class("list"),
//	    H("li", Key("a"), "first"),
//	    nil,
//	    H("li", Key("b"), "second"),
//	)
func H(tag string, args ...any) *VNode {
	return build(&VNode{Kind: KindElement, Tag: tag}, args)
}

// C creates a component descriptor. Attributes become the instance's
// props; other arguments become its Content.
func C(t *ComponentType, args ...any) *VNode {
	return build(&VNode{Kind: KindComponent, Comp: t}, args)
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return build(&VNode{Kind: KindFragment}, children)
}

func Div(args ...any) *VNode     { return H("div", args...) }
func Span(args ...any) *VNode    { return H("span", args...) }
func P(args ...any) *VNode       { return H("p", args...) }
func Ul(args ...any) *VNode      { return H("ul", args...) }
func Ol(args ...any) *VNode      { return H("ol", args...) }
func Li(args ...any) *VNode      { return H("li", args...) }
func A(args ...any) *VNode       { return H("a", args...) }
func Button(args ...any) *VNode  { return H("button", args...) }
func Section(args ...any) *VNode { return H("section", args...) }
func Table(args ...any) *VNode   { return H("table", args...) }
func Tr(args ...any) *VNode      { return H("tr", args...) }
func Td(args ...any) *VNode      { return H("td", args...) }
func Svg(args ...any) *VNode     { return H("svg", args...) }
func Circle(args ...any) *VNode  { return H("circle", args...) }

// Key sets the reconciliation key. The value is converted with %v.
func Key(key any) Attr { return Attr{Key: "key", Value: key} }

// ID sets the id attribute.
func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class sets the class attribute.
func Class(class string) Attr { return Attr{Key: "class", Value: class} }

// Href sets the href attribute.
func Href(url string) Attr { return Attr{Key: "href", Value: url} }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return Attr{Key: "data-" + key, Value: value} }

// Prop sets an arbitrary attribute.
func Prop(key string, value any) Attr { return Attr{Key: key, Value: value} }
