package host

import (
	"fmt"
	"sort"

	"github.com/vango-dev/vtree/internal/errors"
)

// NodeID is a non-owning handle to a node in a Document.
// The zero value is None and never refers to a node.
type NodeID uint32

// None is the absent node.
const None NodeID = 0

// String returns the handle as "#n", or "#none".
func (id NodeID) String() string {
	if id == None {
		return "#none"
	}
	return fmt.Sprintf("#%d", uint32(id))
}

// NodeType is the kind of host node.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// SVGNamespace is the namespace given to svg elements and their descendants.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Sentinel errors. Returned errors carry extra detail but match these
// under errors.Is.
var (
	ErrStaleNode   error = errors.New("E100")
	ErrNotAChild   error = errors.New("E101")
	ErrCycle       error = errors.New("E102")
	ErrUnknownNode error = errors.New("E103")
)

type node struct {
	typ      NodeType
	tag      string
	ns       string
	text     string
	attrs    map[string]string
	parent   NodeID
	first    NodeID
	last     NodeID
	prev     NodeID
	next     NodeID
	released bool
}

// Document is a mutable tree of host nodes. It is not safe for concurrent
// use; one reconciliation pass owns it at a time.
type Document struct {
	nodes     []node
	observers []func(Mutation)
	stats     Stats
}

// NewDocument creates an empty Document.
func NewDocument() *Document {
	return &Document{
		// Slot 0 backs None.
		nodes: make([]node, 1, 64),
	}
}

// Observe registers fn to be called for every mutation.
func (d *Document) Observe(fn func(Mutation)) {
	d.observers = append(d.observers, fn)
}

// Stats returns the mutation counters.
func (d *Document) Stats() Stats {
	return d.stats
}

// ResetStats zeroes the mutation counters.
func (d *Document) ResetStats() {
	d.stats = Stats{}
}

// Len returns the number of nodes ever created, released ones included.
func (d *Document) Len() int {
	return len(d.nodes) - 1
}

func (d *Document) emit(m Mutation) {
	d.stats.count(m.Op)
	for _, fn := range d.observers {
		fn(m)
	}
}

// lookup returns the live node for id.
func (d *Document) lookup(id NodeID) (*node, error) {
	if id == None || int(id) >= len(d.nodes) {
		return nil, errors.New("E103").WithDetailf("node %s", id)
	}
	n := &d.nodes[id]
	if n.released {
		return nil, errors.New("E100").WithDetailf("node %s", id)
	}
	return n, nil
}

// Check returns nil if n refers to a live node, and E103 or E100 otherwise.
func (d *Document) Check(n NodeID) error {
	_, err := d.lookup(n)
	return err
}

// get returns the live node for id, or nil.
func (d *Document) get(id NodeID) *node {
	if id == None || int(id) >= len(d.nodes) {
		return nil
	}
	n := &d.nodes[id]
	if n.released {
		return nil
	}
	return n
}

// =============================================================================
// Creation
// =============================================================================

// CreateElement creates a detached element. An empty ns means HTML.
func (d *Document) CreateElement(tag, ns string) NodeID {
	d.nodes = append(d.nodes, node{typ: ElementNode, tag: tag, ns: ns})
	id := NodeID(len(d.nodes) - 1)
	d.emit(Mutation{Op: OpCreateElement, Node: id, Name: tag, Value: ns})
	return id
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) NodeID {
	d.nodes = append(d.nodes, node{typ: TextNode, text: text})
	id := NodeID(len(d.nodes) - 1)
	d.emit(Mutation{Op: OpCreateText, Node: id, Value: text})
	return id
}

// CreateComment creates a detached comment node. Comments only come from
// parsed markup; they are not recorded as mutations.
func (d *Document) CreateComment(text string) NodeID {
	d.nodes = append(d.nodes, node{typ: CommentNode, text: text})
	return NodeID(len(d.nodes) - 1)
}

// =============================================================================
// Structure
// =============================================================================

// AppendChild moves child to the end of parent's children.
func (d *Document) AppendChild(parent, child NodeID) error {
	if err := d.checkInsert(parent, child); err != nil {
		return err
	}
	d.detach(child)
	d.link(parent, child, None)
	d.emit(Mutation{Op: OpAppendChild, Node: child, Parent: parent})
	return nil
}

// InsertBefore moves child immediately before ref. A None ref appends.
// Inserting a node before itself is a no-op.
func (d *Document) InsertBefore(parent, child, ref NodeID) error {
	if ref == None {
		return d.AppendChild(parent, child)
	}
	if err := d.checkInsert(parent, child); err != nil {
		return err
	}
	r, err := d.lookup(ref)
	if err != nil {
		return err
	}
	if r.parent != parent {
		return errors.New("E101").WithDetailf("insertBefore(%s, %s, %s)", parent, child, ref)
	}
	if child == ref {
		return nil
	}
	d.detach(child)
	d.link(parent, child, ref)
	d.emit(Mutation{Op: OpInsertBefore, Node: child, Parent: parent, Ref: ref})
	return nil
}

// RemoveNode detaches n from its parent. Removing a detached node is a no-op.
func (d *Document) RemoveNode(n NodeID) error {
	nd, err := d.lookup(n)
	if err != nil {
		return err
	}
	if nd.parent == None {
		return nil
	}
	d.detach(n)
	d.emit(Mutation{Op: OpRemoveNode, Node: n})
	return nil
}

// Release detaches n and invalidates the handles of n and its whole subtree.
// Releasing a stale handle is a no-op.
func (d *Document) Release(n NodeID) {
	nd := d.get(n)
	if nd == nil {
		return
	}
	if nd.parent != None {
		d.detach(n)
		d.emit(Mutation{Op: OpRemoveNode, Node: n})
	}
	d.releaseTree(n)
}

func (d *Document) releaseTree(n NodeID) {
	for c := d.nodes[n].first; c != None; {
		next := d.nodes[c].next
		d.releaseTree(c)
		c = next
	}
	nd := &d.nodes[n]
	*nd = node{typ: nd.typ, released: true}
}

func (d *Document) checkInsert(parent, child NodeID) error {
	p, err := d.lookup(parent)
	if err != nil {
		return err
	}
	if _, err := d.lookup(child); err != nil {
		return err
	}
	if p.typ != ElementNode {
		return errors.New("E101").WithDetailf("%s is a %s node and cannot have children", parent, p.typ)
	}
	for a := parent; a != None; a = d.nodes[a].parent {
		if a == child {
			return errors.New("E102").WithDetailf("insert %s into %s", child, parent)
		}
	}
	return nil
}

// link inserts a detached child before ref (or at the end when ref is None).
func (d *Document) link(parent, child, ref NodeID) {
	p := &d.nodes[parent]
	c := &d.nodes[child]
	c.parent = parent
	if ref == None {
		c.prev = p.last
		c.next = None
		if p.last != None {
			d.nodes[p.last].next = child
		} else {
			p.first = child
		}
		p.last = child
		return
	}
	r := &d.nodes[ref]
	c.prev = r.prev
	c.next = ref
	if r.prev != None {
		d.nodes[r.prev].next = child
	} else {
		p.first = child
	}
	r.prev = child
}

// detach unlinks n from its parent without emitting a mutation.
func (d *Document) detach(n NodeID) {
	c := &d.nodes[n]
	if c.parent == None {
		return
	}
	p := &d.nodes[c.parent]
	if c.prev != None {
		d.nodes[c.prev].next = c.next
	} else {
		p.first = c.next
	}
	if c.next != None {
		d.nodes[c.next].prev = c.prev
	} else {
		p.last = c.prev
	}
	c.parent, c.prev, c.next = None, None, None
}

// =============================================================================
// Content
// =============================================================================

// SetAttr sets an attribute on an element.
func (d *Document) SetAttr(n NodeID, key, value string) error {
	nd, err := d.lookup(n)
	if err != nil {
		return err
	}
	if nd.attrs == nil {
		nd.attrs = make(map[string]string)
	}
	nd.attrs[key] = value
	d.emit(Mutation{Op: OpSetAttr, Node: n, Name: key, Value: value})
	return nil
}

// RemoveAttr removes an attribute. Removing a missing attribute is a no-op.
func (d *Document) RemoveAttr(n NodeID, key string) error {
	nd, err := d.lookup(n)
	if err != nil {
		return err
	}
	if _, ok := nd.attrs[key]; !ok {
		return nil
	}
	delete(nd.attrs, key)
	d.emit(Mutation{Op: OpRemoveAttr, Node: n, Name: key})
	return nil
}

// SetText replaces the content of a text node.
func (d *Document) SetText(n NodeID, text string) error {
	nd, err := d.lookup(n)
	if err != nil {
		return err
	}
	nd.text = text
	d.emit(Mutation{Op: OpSetText, Node: n, Value: text})
	return nil
}

// =============================================================================
// Reads
// =============================================================================

// Valid reports whether n refers to a live node.
func (d *Document) Valid(n NodeID) bool {
	return d.get(n) != nil
}

// Type returns the node type, or 0 for stale handles.
func (d *Document) Type(n NodeID) NodeType {
	if nd := d.get(n); nd != nil {
		return nd.typ
	}
	return 0
}

// Tag returns the element tag name.
func (d *Document) Tag(n NodeID) string {
	if nd := d.get(n); nd != nil {
		return nd.tag
	}
	return ""
}

// Namespace returns the element namespace ("" for HTML).
func (d *Document) Namespace(n NodeID) string {
	if nd := d.get(n); nd != nil {
		return nd.ns
	}
	return ""
}

// Text returns the content of a text or comment node.
func (d *Document) Text(n NodeID) string {
	if nd := d.get(n); nd != nil {
		return nd.text
	}
	return ""
}

// Attr returns the value of an attribute.
func (d *Document) Attr(n NodeID, key string) (string, bool) {
	if nd := d.get(n); nd != nil {
		v, ok := nd.attrs[key]
		return v, ok
	}
	return "", false
}

// Attrs returns a copy of the node's attributes.
func (d *Document) Attrs(n NodeID) map[string]string {
	nd := d.get(n)
	if nd == nil || len(nd.attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(nd.attrs))
	for k, v := range nd.attrs {
		out[k] = v
	}
	return out
}

// AttrKeys returns the attribute keys in sorted order.
func (d *Document) AttrKeys(n NodeID) []string {
	nd := d.get(n)
	if nd == nil {
		return nil
	}
	keys := make([]string, 0, len(nd.attrs))
	for k := range nd.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParentNode returns the parent of n, or None.
func (d *Document) ParentNode(n NodeID) NodeID {
	if nd := d.get(n); nd != nil {
		return nd.parent
	}
	return None
}

// NextSibling returns the sibling after n, or None.
func (d *Document) NextSibling(n NodeID) NodeID {
	if nd := d.get(n); nd != nil {
		return nd.next
	}
	return None
}

// PreviousSibling returns the sibling before n, or None.
func (d *Document) PreviousSibling(n NodeID) NodeID {
	if nd := d.get(n); nd != nil {
		return nd.prev
	}
	return None
}

// FirstChild returns the first child of n, or None.
func (d *Document) FirstChild(n NodeID) NodeID {
	if nd := d.get(n); nd != nil {
		return nd.first
	}
	return None
}

// LastChild returns the last child of n, or None.
func (d *Document) LastChild(n NodeID) NodeID {
	if nd := d.get(n); nd != nil {
		return nd.last
	}
	return None
}

// ChildNodes returns the children of n in sibling order.
func (d *Document) ChildNodes(n NodeID) []NodeID {
	var out []NodeID
	for c := d.FirstChild(n); c != None; c = d.nodes[c].next {
		out = append(out, c)
	}
	return out
}

// IsChildOf reports whether n is a direct child of parent.
func (d *Document) IsChildOf(n, parent NodeID) bool {
	nd := d.get(n)
	return nd != nil && parent != None && nd.parent == parent
}
