package reconcile

import "github.com/vango-dev/vtree/pkg/vdom"

// MountQueue collects component instances created during a pass. Their
// DidMount callbacks run once the pass has finished placing host nodes.
type MountQueue struct {
	items []*vdom.Instance
}

// Push queues inst.
func (q *MountQueue) Push(inst *vdom.Instance) {
	q.items = append(q.items, inst)
}

// Len returns the number of queued instances.
func (q *MountQueue) Len() int {
	return len(q.items)
}

// Flush runs DidMount for every queued instance, most recently created
// first (children before parents), and empties the queue. Instances torn
// down during the same pass are skipped.
func (q *MountQueue) Flush() int {
	n := 0
	for len(q.items) > 0 {
		last := len(q.items) - 1
		inst := q.items[last]
		q.items = q.items[:last]
		if inst.Unmounted() || inst.Mounted() {
			continue
		}
		inst.MarkMounted()
		n++
		if inst.Type != nil && inst.Type.DidMount != nil {
			inst.Type.DidMount(inst)
		}
	}
	return n
}
