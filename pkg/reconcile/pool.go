package reconcile

import "github.com/vango-dev/vtree/pkg/vdom"

// MatchKind records how a new descriptor found its previous counterpart.
type MatchKind uint8

const (
	MatchNone       MatchKind = iota // No previous descriptor; created fresh
	MatchIndex                       // Same index, same key or same type
	MatchKey                         // Found by key during the scan
	MatchStructural                  // Found by type during the scan
)

// String returns the string representation of the MatchKind.
func (k MatchKind) String() string {
	switch k {
	case MatchNone:
		return "none"
	case MatchIndex:
		return "index"
	case MatchKey:
		return "key"
	case MatchStructural:
		return "structural"
	default:
		return "unknown"
	}
}

// Pool holds the previous flat child sequence during a pass. Each old
// descriptor can be claimed at most once; claimed and placeholder slots
// are invisible to later matches.
type Pool struct {
	old     []*vdom.VNode
	claimed []bool
}

// NewPool creates a pool over old. The slice is not modified.
func NewPool(old []*vdom.VNode) *Pool {
	return &Pool{
		old:     old,
		claimed: make([]bool, len(old)),
	}
}

// Len returns the length of the old sequence, placeholders included.
func (p *Pool) Len() int {
	return len(p.old)
}

// At returns the unclaimed descriptor at i, or nil.
func (p *Pool) At(i int) *vdom.VNode {
	if i < 0 || i >= len(p.old) || p.claimed[i] {
		return nil
	}
	return p.old[i]
}

// Claimed reports whether the slot at i has been claimed.
func (p *Pool) Claimed(i int) bool {
	return i >= 0 && i < len(p.claimed) && p.claimed[i]
}

// Match finds and claims the old descriptor for v at position i.
func (p *Pool) Match(v *vdom.VNode, i int) (*vdom.VNode, MatchKind) {
	if v == nil {
		return nil, MatchNone
	}

	if o := p.At(i); o != nil && sameIdentity(v, o) {
		p.claimed[i] = true
		return o, MatchIndex
	}

	for j := range p.old {
		o := p.At(j)
		if o == nil {
			continue
		}
		if v.HasKey() || o.HasKey() {
			if v.Key == o.Key {
				p.claimed[j] = true
				return o, MatchKey
			}
			continue
		}
		if structuralMatch(v, o) {
			p.claimed[j] = true
			return o, MatchStructural
		}
	}

	return nil, MatchNone
}

// Remaining returns the unclaimed old descriptors in reverse index order.
func (p *Pool) Remaining() []*vdom.VNode {
	var out []*vdom.VNode
	for i := len(p.old) - 1; i >= 0; i-- {
		if o := p.At(i); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Unclaimed returns the unclaimed old descriptors in index order.
func (p *Pool) Unclaimed() []*vdom.VNode {
	var out []*vdom.VNode
	for i := range p.old {
		if o := p.At(i); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// sameIdentity is the same-index rule: equal keys, or both unkeyed with
// the same type.
func sameIdentity(v, o *vdom.VNode) bool {
	if !v.HasKey() && !o.HasKey() {
		return v.SameType(o)
	}
	return v.Key == o.Key
}

// structuralMatch is the unkeyed scan rule. A stateful component instance
// is never adopted away from its own index.
func structuralMatch(v, o *vdom.VNode) bool {
	if !v.SameType(o) {
		return false
	}
	if v.Kind == vdom.KindComponent {
		return v.Comp.ReusableByStructure()
	}
	return true
}
