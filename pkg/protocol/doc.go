// Package protocol is the binary wire format a live session uses to ship
// host mutations to a remote mirror of the document.
//
// # Frames
//
// Every message is one frame with a 6-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (4 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
//   - FrameHello (0x00): Server → Client, sent once after connect
//   - FrameTree (0x01): Client → Server, a JSON tree document to render
//   - FrameMutations (0x02): Server → Client, the mutations of one pass
//   - FrameError (0x05): Server → Client, a failed pass or bad frame
//
// # Encoding
//
// Integers are varints, strings are varint length prefixed, node handles
// are the uvarint of host.NodeID. A mutations payload is:
//
//	[Seq: varint][Count: varint] then per mutation:
//	[Op: byte][Node: varint][op-specific fields]
//
// # Usage
//
//	rec := host.NewRecorder(doc)
//	_ = renderer.Render(ctx, tree, root)
//
//	payload := protocol.EncodeMutations(&protocol.MutationsFrame{
//	    Seq:       seq,
//	    Mutations: rec.Take(),
//	})
//	frame := protocol.NewFrame(protocol.FrameMutations, payload)
//	conn.WriteMessage(websocket.BinaryMessage, frame.Encode())
//
// On the other end, Apply replays a MutationsFrame onto a Document, which
// keeps a mirror in sync as long as node handles are allocated in the same
// order on both sides.
package protocol
