// Package vdom provides the child descriptors rendered by vtree.
//
// A descriptor (VNode) is a lightweight, data-only description of one
// virtual child: an element, a text, a fragment or a component. Descriptors
// are built fresh on every render and absorb identity (host node, nested
// children, component instance) from the previous render's descriptor when
// the reconciler matches them.
//
// # Core Types
//
// VNode is the descriptor. VKind is the tagged variant over the four kinds.
// ComponentType identifies a component kind and states whether its instances
// keep state across renders. Instance is a mounted component.
//
// # Building Descriptors
//
//	Ul(Class("todo"),
//	    Li(Key("a"), "first"),
//	    nil,                   // placeholder slot
//	    []any{Li(Key("b"), "second"), false},
//	)
//
// # Flattening
//
// ToChildArray normalizes a nested, possibly sparse children payload into one
// flat sequence where each hole becomes a nil placeholder. Placeholders keep
// the index-based fast match stable when a conditional child toggles.
//
// # Tree Documents
//
// Decode reads the JSON tree format used by the vtree CLI and playground
// server.
package vdom
