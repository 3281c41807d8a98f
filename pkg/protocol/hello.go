package protocol

import "github.com/vango-dev/vtree/pkg/host"

// Version is a protocol version as major.minor.
type Version struct {
	Major uint8
	Minor uint8
}

// CurrentVersion is the current protocol version.
var CurrentVersion = Version{Major: 1, Minor: 0}

// Hello is the first frame of a live session. It names the container the
// session renders into, so the client can create its mirror root.
type Hello struct {
	Version   Version
	SessionID string
	Container host.NodeID
	NextSeq   uint64
}

// EncodeHello encodes a Hello to bytes.
func EncodeHello(h *Hello) []byte {
	e := NewEncoder()
	e.WriteByte(h.Version.Major)
	e.WriteByte(h.Version.Minor)
	e.WriteString(h.SessionID)
	e.WriteUvarint(uint64(h.Container))
	e.WriteUvarint(h.NextSeq)
	return e.Bytes()
}

// DecodeHello decodes a Hello from bytes.
func DecodeHello(data []byte) (*Hello, error) {
	d := NewDecoder(data)
	h := &Hello{}

	major, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	minor, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	h.Version = Version{Major: major, Minor: minor}

	if h.SessionID, err = d.ReadString(); err != nil {
		return nil, err
	}
	container, err := readNodeID(d)
	if err != nil {
		return nil, err
	}
	h.Container = container

	if h.NextSeq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	return h, nil
}
