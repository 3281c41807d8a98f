package protocol

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
)

// FuzzDecodeFrame tests that decoding arbitrary bytes doesn't panic.
func FuzzDecodeFrame(f *testing.F) {
	f.Add(NewFrame(FrameTree, []byte(`{"type":"text","text":"x"}`)).Encode())
	f.Add(NewFrameWithFlags(FrameMutations, FlagSequenced, []byte{1, 0}).Encode())

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = DecodeFrame(data)
	})
}

// FuzzDecodeMutations tests that decoding arbitrary bytes doesn't panic
// and that whatever decodes re-encodes to the same bytes.
func FuzzDecodeMutations(f *testing.F) {
	f.Add(EncodeMutations(&MutationsFrame{
		Seq: 1,
		Mutations: []host.Mutation{
			{Op: host.OpCreateElement, Node: 2, Name: "p"},
			{Op: host.OpAppendChild, Node: 2, Parent: 1},
			{Op: host.OpSetAttr, Node: 2, Name: "id", Value: "x"},
		},
	}))
	f.Add([]byte{0x00, 0x00})

	f.Fuzz(func(t *testing.T, data []byte) {
		mf, err := DecodeMutations(data)
		if err != nil {
			return
		}
		// Re-decoding the canonical encoding must agree with the first decode.
		again, err := DecodeMutations(EncodeMutations(mf))
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		if len(again.Mutations) != len(mf.Mutations) || again.Seq != mf.Seq {
			t.Fatalf("re-decode mismatch: %+v vs %+v", again, mf)
		}
	})
}
