// Package host provides the mutable tree that descriptors are rendered into.
//
// A Document is an arena of nodes addressed by NodeID handles. Descriptors
// never own host nodes: they hold a handle, and the Document decides whether
// the handle is still usable. Once a node is released every mutation through
// its handle fails with ErrStaleNode, so an unmounted descriptor cannot
// mutate the tree by accident.
//
// # Primitives
//
// The reconciler touches the tree only through a handful of DOM-like calls:
//
//	doc.AppendChild(parent, node)
//	doc.InsertBefore(parent, node, ref)
//	doc.RemoveNode(node)
//	doc.NextSibling(node)
//
// plus node creation and attribute/text updates performed by the single-node
// diff routine.
//
// # Mutation Log
//
// Every structural or content mutation is reported to observers as a
// Mutation and counted in Stats. A Recorder collects mutations so they can be
// encoded (see pkg/protocol) or asserted on in tests.
package host
