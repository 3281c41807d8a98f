package reconcile

import (
	"math"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// cursor is the placement position inside one parent host node.
type cursor struct {
	// next is the reference node: the next new node belongs right before
	// it. None means "append".
	next host.NodeID

	// tail is the last node this pass (or an enclosing one sharing the
	// parent) put in its final position. None if nothing has been placed.
	tail host.NodeID
}

// diffChildren reconciles newParent's children against oldParent's inside
// the host node parent.
//
// Elements and the root start a fresh cursor (at == nil) from the first
// previous child node, or the first pre-existing node when hydrating.
// Fragments and components share their parent's host node, so they start at
// the enclosing cursor and hand back where they stopped.
func (p *pass) diffChildren(parent host.NodeID, newParent, oldParent *vdom.VNode, ctx map[string]any, svg bool, excess *Excess, ancestor *vdom.Instance, at *cursor) (cursor, error) {
	if newParent.Kind != vdom.KindComponent {
		newParent.Children = vdom.ToChildArray(newParent.Content, nil, p.coerce, false)
	}
	newChildren := newParent.Children

	var oldChildren []*vdom.VNode
	if oldParent != nil {
		oldChildren = oldParent.Children
	}
	pool := NewPool(oldChildren)
	window := p.window(len(oldChildren))

	var c cursor
	if at != nil {
		c = *at
	} else {
		for _, o := range oldChildren {
			if o != nil && o.Host != host.None {
				c.next = o.Host
				break
			}
		}
		if excess != nil {
			if first := excess.First(); first != host.None {
				c.next = first
			}
		}
	}
	p.repair(parent, &c, host.None)

	for i, v := range newChildren {
		if v == nil {
			// Placeholders hold their slot without moving the cursor, as in
			// the Preact reconciler, so a repeated pass over the same
			// sequence stays mutation-free.
			continue
		}
		// A descriptor rendered before (at this spot or another) keeps its
		// render state on the old tree's side.
		if v.Mounted() {
			v = v.Clone()
			newChildren[i] = v
		}

		old, kind := pool.Match(v, i)
		p.stats.Matches[kind]++

		nextDom := p.doc.NextSibling(c.next)
		newDom, inner, err := p.diff(parent, v, old, ctx, svg, excess, ancestor, c)
		if err != nil {
			p.abandon(newParent, i, pool, excess)
			return c, err
		}

		if v.MultiNode() {
			c = inner
			continue
		}
		if newDom == host.None {
			continue
		}

		p.repair(parent, &c, nextDom)
		if newDom != c.next || !p.doc.IsChildOf(newDom, parent) {
			if err := p.place(parent, newDom, c.next, window); err != nil {
				p.abandon(newParent, i, pool, excess)
				return c, err
			}
		}
		c.tail = newDom
		c.next = p.doc.NextSibling(newDom)
	}

	p.dropExcess(newParent, excess)

	for _, o := range pool.Remaining() {
		p.unmount(o, ancestor, false)
	}

	p.repair(parent, &c, host.None)
	return c, nil
}

// abandon is the failure path of diffChildren. The pass stops at position
// reached, so the children list keeps what was reconciled up to and
// including it, followed by the previous children nobody claimed. The
// stored tree then still owns every live host node and the next pass can
// match or unmount them.
func (p *pass) abandon(newParent *vdom.VNode, reached int, pool *Pool, excess *Excess) {
	end := reached + 1
	newParent.Children = append(newParent.Children[:end:end], pool.Unclaimed()...)
	p.dropExcess(newParent, excess)
}

// dropExcess releases pre-existing nodes nothing adopted. Fragments and
// components share their parent's excess set, so only its owner (an
// element or the root) releases the leftovers.
func (p *pass) dropExcess(newParent *vdom.VNode, excess *Excess) {
	if excess == nil || (newParent != p.root && newParent.Kind != vdom.KindElement) {
		return
	}
	for _, n := range excess.Leftovers() {
		p.doc.Release(n)
		p.stats.Excess++
	}
}

// place puts node right before ref, unless node already sits within the
// lookahead window after ref. A None or detached ref appends.
func (p *pass) place(parent, node, ref host.NodeID, window int) error {
	if ref == host.None || !p.doc.IsChildOf(ref, parent) {
		return p.doc.AppendChild(parent, node)
	}
	sib := ref
	for j := 0; j < window; j++ {
		sib = p.doc.NextSibling(sib)
		if sib == host.None {
			break
		}
		if sib == node {
			return nil
		}
	}
	return p.doc.InsertBefore(parent, node, ref)
}

// repair re-anchors a cursor whose reference node was detached by an
// unmount. It prefers nextDom, then the node after the tail, then the
// parent's first child.
func (p *pass) repair(parent host.NodeID, c *cursor, nextDom host.NodeID) {
	if c.next == host.None || p.doc.IsChildOf(c.next, parent) {
		return
	}
	switch {
	case nextDom != host.None && p.doc.IsChildOf(nextDom, parent):
		c.next = nextDom
	case c.tail != host.None && p.doc.IsChildOf(c.tail, parent):
		c.next = p.doc.NextSibling(c.tail)
	default:
		c.next = p.doc.FirstChild(parent)
	}
}

// window returns how many siblings after the cursor place inspects.
func (p *pass) window(oldLen int) int {
	return int(math.Ceil(float64(oldLen) * p.scanRatio))
}

// setRange records the first and last host node a multi-node descriptor
// produced.
func setRange(v *vdom.VNode) {
	v.Host, v.LastHost = host.None, host.None
	for _, c := range v.Children {
		if c == nil || c.Host == host.None {
			continue
		}
		if v.Host == host.None {
			v.Host = c.Host
		}
		if c.MultiNode() {
			v.LastHost = c.LastHost
		} else {
			v.LastHost = c.Host
		}
	}
}
