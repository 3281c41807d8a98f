package vdom

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/host"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <li>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Component (function or stateful)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is a child descriptor: a data-only description of one virtual child.
//
// Kind, Tag, Text, Comp, Key, Props and Content are set by whoever builds the
// descriptor and are treated as immutable. Children, Host, LastHost and
// Instance are render state owned by the reconciler.
type VNode struct {
	Kind    VKind          // Node type
	Tag     string         // Element tag name (e.g., "div")
	Text    string         // For KindText
	Comp    *ComponentType // For KindComponent
	Key     string         // Reconciliation key ("" means unkeyed)
	Props   Props          // Attributes
	Content any            // Raw, possibly nested, children payload

	// Children is the flattened child sequence, memoized across renders.
	// A nil entry is a placeholder slot.
	Children []*VNode

	// Host is the first host node this descriptor produced.
	Host host.NodeID

	// LastHost is the last host node produced by a fragment or component.
	// It stays None for elements and texts.
	LastHost host.NodeID

	// Instance is the component instance for KindComponent.
	Instance *Instance
}

// Props holds attributes.
type Props map[string]any

// HasKey reports whether the descriptor carries a key.
func (v *VNode) HasKey() bool {
	return v != nil && v.Key != ""
}

// SameType reports whether v and o have the same type identity: same tag
// for elements, same component type for components. All texts share one
// type, as do all fragments.
func (v *VNode) SameType(o *VNode) bool {
	if v == nil || o == nil || v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindElement:
		return v.Tag == o.Tag
	case KindComponent:
		return v.Comp == o.Comp
	default:
		return true
	}
}

// MultiNode reports whether the descriptor renders its children directly
// into its parent instead of producing a single host node of its own.
func (v *VNode) MultiNode() bool {
	return v != nil && (v.Kind == KindFragment || v.Kind == KindComponent)
}

// Mounted reports whether the descriptor carries render state from a
// previous pass.
func (v *VNode) Mounted() bool {
	return v != nil && (v.Host != host.None || v.Instance != nil || v.Children != nil)
}

// Clone returns a shallow copy of v without render state.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	return &VNode{
		Kind:    v.Kind,
		Tag:     v.Tag,
		Text:    v.Text,
		Comp:    v.Comp,
		Key:     v.Key,
		Props:   v.Props,
		Content: v.Content,
	}
}

// TypeName returns a short label for logs and metrics.
func (v *VNode) TypeName() string {
	if v == nil {
		return "placeholder"
	}
	switch v.Kind {
	case KindElement:
		return v.Tag
	case KindText:
		return "#text"
	case KindFragment:
		return "#fragment"
	case KindComponent:
		if v.Comp != nil && v.Comp.Name != "" {
			return v.Comp.Name
		}
		return "#component"
	default:
		return "#unknown"
	}
}

// String returns a compact description, e.g. li[key=a].
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	if v.Kind == KindText {
		return fmt.Sprintf("%q", v.Text)
	}
	if v.Key != "" {
		return fmt.Sprintf("%s[key=%s]", v.TypeName(), v.Key)
	}
	return v.TypeName()
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}
