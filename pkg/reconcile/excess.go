package reconcile

import "github.com/vango-dev/vtree/pkg/host"

// Excess is the ordered set of pre-existing host nodes a hydrating pass may
// claim instead of creating new ones. Nodes never claimed are removed by
// the pass that owns the set.
type Excess struct {
	nodes   []host.NodeID
	claimed []bool
}

// NewExcess creates a set over nodes.
func NewExcess(nodes []host.NodeID) *Excess {
	return &Excess{
		nodes:   nodes,
		claimed: make([]bool, len(nodes)),
	}
}

// First returns the first unclaimed node, or None.
func (e *Excess) First() host.NodeID {
	for i, n := range e.nodes {
		if !e.claimed[i] {
			return n
		}
	}
	return host.None
}

// Claim claims and returns the first unclaimed node accepted by match.
func (e *Excess) Claim(match func(host.NodeID) bool) host.NodeID {
	for i, n := range e.nodes {
		if !e.claimed[i] && match(n) {
			e.claimed[i] = true
			return n
		}
	}
	return host.None
}

// Leftovers returns the unclaimed nodes in reverse order and marks them
// claimed so they are handed out only once.
func (e *Excess) Leftovers() []host.NodeID {
	var out []host.NodeID
	for i := len(e.nodes) - 1; i >= 0; i-- {
		if !e.claimed[i] {
			e.claimed[i] = true
			out = append(out, e.nodes[i])
		}
	}
	return out
}
