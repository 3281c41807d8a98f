package host

import "fmt"

// MutationOp is the type of host mutation.
type MutationOp uint8

const (
	OpCreateElement MutationOp = 0x01 // New detached element
	OpCreateText    MutationOp = 0x02 // New detached text node
	OpAppendChild   MutationOp = 0x03 // Append (or move) node to end of parent
	OpInsertBefore  MutationOp = 0x04 // Insert (or move) node before Ref
	OpRemoveNode    MutationOp = 0x05 // Detach node from its parent
	OpSetAttr       MutationOp = 0x06 // Set/update attribute
	OpRemoveAttr    MutationOp = 0x07 // Remove attribute
	OpSetText       MutationOp = 0x08 // Update text content
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpAppendChild:
		return "AppendChild"
	case OpInsertBefore:
		return "InsertBefore"
	case OpRemoveNode:
		return "RemoveNode"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetText:
		return "SetText"
	default:
		return "Unknown"
	}
}

// Mutation describes a single change applied to a Document.
type Mutation struct {
	Op     MutationOp
	Node   NodeID // Target node
	Parent NodeID // For AppendChild/InsertBefore
	Ref    NodeID // For InsertBefore
	Name   string // Tag (CreateElement) or attribute key
	Value  string // Text or attribute value; namespace for CreateElement
}

// String returns a compact, human readable form of the mutation.
func (m Mutation) String() string {
	switch m.Op {
	case OpCreateElement:
		return fmt.Sprintf("create %s <%s>", m.Node, m.Name)
	case OpCreateText:
		return fmt.Sprintf("create %s %q", m.Node, m.Value)
	case OpAppendChild:
		return fmt.Sprintf("append %s -> %s", m.Node, m.Parent)
	case OpInsertBefore:
		return fmt.Sprintf("insert %s -> %s before %s", m.Node, m.Parent, m.Ref)
	case OpRemoveNode:
		return fmt.Sprintf("remove %s", m.Node)
	case OpSetAttr:
		return fmt.Sprintf("attr %s %s=%q", m.Node, m.Name, m.Value)
	case OpRemoveAttr:
		return fmt.Sprintf("unattr %s %s", m.Node, m.Name)
	case OpSetText:
		return fmt.Sprintf("text %s %q", m.Node, m.Value)
	default:
		return "unknown"
	}
}

// Stats counts mutations applied to a Document.
type Stats struct {
	Creates     int
	Appends     int
	Inserts     int
	Removes     int
	AttrSets    int
	AttrRemoves int
	TextSets    int
}

// Placements returns the number of append and insert-before calls. Each of
// them either attaches a fresh node or moves an existing one.
func (s Stats) Placements() int {
	return s.Appends + s.Inserts
}

// Total returns the number of recorded mutations.
func (s Stats) Total() int {
	return s.Creates + s.Appends + s.Inserts + s.Removes +
		s.AttrSets + s.AttrRemoves + s.TextSets
}

// Sub returns s minus o, field by field.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		Creates:     s.Creates - o.Creates,
		Appends:     s.Appends - o.Appends,
		Inserts:     s.Inserts - o.Inserts,
		Removes:     s.Removes - o.Removes,
		AttrSets:    s.AttrSets - o.AttrSets,
		AttrRemoves: s.AttrRemoves - o.AttrRemoves,
		TextSets:    s.TextSets - o.TextSets,
	}
}

func (s *Stats) count(op MutationOp) {
	switch op {
	case OpCreateElement, OpCreateText:
		s.Creates++
	case OpAppendChild:
		s.Appends++
	case OpInsertBefore:
		s.Inserts++
	case OpRemoveNode:
		s.Removes++
	case OpSetAttr:
		s.AttrSets++
	case OpRemoveAttr:
		s.AttrRemoves++
	case OpSetText:
		s.TextSets++
	}
}

// Recorder collects the mutations of a Document.
type Recorder struct {
	muts []Mutation
}

// NewRecorder creates a Recorder and registers it with doc.
func NewRecorder(doc *Document) *Recorder {
	r := &Recorder{}
	doc.Observe(r.record)
	return r
}

func (r *Recorder) record(m Mutation) {
	r.muts = append(r.muts, m)
}

// Mutations returns the mutations recorded since the last Take.
func (r *Recorder) Mutations() []Mutation {
	return r.muts
}

// Take returns the recorded mutations and clears the recorder.
func (r *Recorder) Take() []Mutation {
	muts := r.muts
	r.muts = nil
	return muts
}
