// Package reconcile implements keyed children reconciliation: it brings the
// children of a host node in line with a new child descriptor sequence,
// reusing host nodes and component instances from the previous render.
//
// # Algorithm
//
// A pass walks the new flat child sequence once, left to right. For each
// position it:
//
//  1. Matches the new descriptor against the previous sequence (Pool.Match):
//     same index first, then a scan by key or, for unkeyed descriptors, by
//     type. Stateful components are never adopted by an unkeyed scan match.
//  2. Diffs the pair, updating or creating the host node and recursing into
//     its children.
//  3. Leaves the node where it is if it already sits at the cursor or a few
//     siblings ahead of it, and moves it before the cursor otherwise.
//
// Old descriptors that nothing claimed are unmounted at the end of the pass,
// as are unclaimed pre-existing nodes when hydrating.
//
// Cost is one forward pass plus a bounded lookahead: the "already in place"
// search looks at most ceil(len(old) * ScanRatio) siblings ahead.
//
// # Usage
//
//	doc := host.NewDocument()
//	root := doc.CreateElement("div", "")
//	r := reconcile.New(doc, reconcile.WithLogger(logger))
//
//	err := r.Render(ctx, vdom.Ul(items...), root)
//
// A Renderer is single-threaded. Render may be called from inside a
// component's Render for a different container; calling it for a container
// whose pass is still running fails with E201.
package reconcile
