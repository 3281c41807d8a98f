package protocol

import (
	"fmt"
	"math"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
)

// MutationsFrame is the batch of mutations produced by one pass.
type MutationsFrame struct {
	Seq       uint64
	Mutations []host.Mutation
}

// EncodeMutations encodes a mutations frame to bytes.
func EncodeMutations(mf *MutationsFrame) []byte {
	e := NewEncoderWithCap(16 + 8*len(mf.Mutations))
	EncodeMutationsTo(e, mf)
	return e.Bytes()
}

// EncodeMutationsTo encodes a mutations frame using the provided encoder.
func EncodeMutationsTo(e *Encoder, mf *MutationsFrame) {
	e.WriteUvarint(mf.Seq)
	e.WriteUvarint(uint64(len(mf.Mutations)))
	for i := range mf.Mutations {
		encodeMutation(e, &mf.Mutations[i])
	}
}

func encodeMutation(e *Encoder, m *host.Mutation) {
	e.WriteByte(byte(m.Op))
	e.WriteUvarint(uint64(m.Node))

	switch m.Op {
	case host.OpCreateElement:
		e.WriteString(m.Name)
		e.WriteString(m.Value)

	case host.OpCreateText, host.OpSetText:
		e.WriteString(m.Value)

	case host.OpAppendChild:
		e.WriteUvarint(uint64(m.Parent))

	case host.OpInsertBefore:
		e.WriteUvarint(uint64(m.Parent))
		e.WriteUvarint(uint64(m.Ref))

	case host.OpRemoveNode:
		// Node is enough

	case host.OpSetAttr:
		e.WriteString(m.Name)
		e.WriteString(m.Value)

	case host.OpRemoveAttr:
		e.WriteString(m.Name)
	}
}

// DecodeMutations decodes a mutations frame from bytes. Failures are E500
// errors wrapping the underlying cause.
func DecodeMutations(data []byte) (*MutationsFrame, error) {
	mf, err := DecodeMutationsFrom(NewDecoder(data))
	if err != nil {
		return nil, errors.New("E500").Wrap(err)
	}
	return mf, nil
}

// DecodeMutationsFrom decodes a mutations frame from a decoder.
func DecodeMutationsFrom(d *Decoder) (*MutationsFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	// Smallest mutation is two bytes (op and node).
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	mutations := make([]host.Mutation, count)
	for i := range mutations {
		if err := decodeMutation(d, &mutations[i]); err != nil {
			return nil, fmt.Errorf("mutation %d: %w", i, err)
		}
	}
	if !d.EOF() {
		return nil, fmt.Errorf("%d trailing bytes", d.Remaining())
	}

	return &MutationsFrame{Seq: seq, Mutations: mutations}, nil
}

func decodeMutation(d *Decoder, m *host.Mutation) error {
	op, err := d.ReadByte()
	if err != nil {
		return err
	}
	m.Op = host.MutationOp(op)

	if m.Node, err = readNodeID(d); err != nil {
		return err
	}

	switch m.Op {
	case host.OpCreateElement:
		if m.Name, err = d.ReadString(); err != nil {
			return err
		}
		m.Value, err = d.ReadString()

	case host.OpCreateText, host.OpSetText:
		m.Value, err = d.ReadString()

	case host.OpAppendChild:
		m.Parent, err = readNodeID(d)

	case host.OpInsertBefore:
		if m.Parent, err = readNodeID(d); err != nil {
			return err
		}
		m.Ref, err = readNodeID(d)

	case host.OpRemoveNode:
		// No additional data

	case host.OpSetAttr:
		if m.Name, err = d.ReadString(); err != nil {
			return err
		}
		m.Value, err = d.ReadString()

	case host.OpRemoveAttr:
		m.Name, err = d.ReadString()

	default:
		// Fields are op-specific, so an unknown op cannot be skipped.
		return fmt.Errorf("unknown mutation op 0x%02x", op)
	}
	return err
}

func readNodeID(d *Decoder) (host.NodeID, error) {
	v, err := d.ReadUvarint()
	if err != nil {
		return host.None, err
	}
	if v > math.MaxUint32 {
		return host.None, ErrVarintOverflow
	}
	return host.NodeID(v), nil
}

// Apply replays mf onto doc. Nodes must be created in the same order on
// both sides: a created handle that differs from the recorded one means
// the mirror is out of sync and yields an E500 error.
func Apply(doc *host.Document, mf *MutationsFrame) error {
	for i, m := range mf.Mutations {
		if err := apply(doc, m); err != nil {
			return errors.New("E500").
				WithDetailf("seq %d, mutation %d (%s)", mf.Seq, i, m).
				Wrap(err)
		}
	}
	return nil
}

func apply(doc *host.Document, m host.Mutation) error {
	switch m.Op {
	case host.OpCreateElement:
		return expectHandle(m.Node, doc.CreateElement(m.Name, m.Value))
	case host.OpCreateText:
		return expectHandle(m.Node, doc.CreateText(m.Value))
	case host.OpAppendChild:
		return doc.AppendChild(m.Parent, m.Node)
	case host.OpInsertBefore:
		return doc.InsertBefore(m.Parent, m.Node, m.Ref)
	case host.OpRemoveNode:
		if err := doc.Check(m.Node); err != nil {
			return err
		}
		doc.Release(m.Node)
		return nil
	case host.OpSetAttr:
		return doc.SetAttr(m.Node, m.Name, m.Value)
	case host.OpRemoveAttr:
		return doc.RemoveAttr(m.Node, m.Name)
	case host.OpSetText:
		return doc.SetText(m.Node, m.Value)
	default:
		return fmt.Errorf("unknown mutation op %s", m.Op)
	}
}

func expectHandle(want, got host.NodeID) error {
	if want != got {
		return fmt.Errorf("created %s, expected %s", got, want)
	}
	return nil
}
