package protocol

import (
	"errors"
	"io"
	"testing"
)

func TestEncoderDecoder(t *testing.T) {
	e := NewEncoder()
	e.WriteByte(0x42)
	e.WriteUvarint(12345)
	e.WriteString("hello world")
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteUint32(0x12345678)

	d := NewDecoder(e.Bytes())

	b, err := d.ReadByte()
	if err != nil || b != 0x42 {
		t.Errorf("ReadByte() = %x, %v; want 0x42, nil", b, err)
	}
	uv, err := d.ReadUvarint()
	if err != nil || uv != 12345 {
		t.Errorf("ReadUvarint() = %d, %v; want 12345, nil", uv, err)
	}
	s, err := d.ReadString()
	if err != nil || s != "hello world" {
		t.Errorf("ReadString() = %q, %v; want %q, nil", s, err, "hello world")
	}
	bt, err := d.ReadBool()
	if err != nil || !bt {
		t.Errorf("ReadBool() = %v, %v; want true, nil", bt, err)
	}
	bf, err := d.ReadBool()
	if err != nil || bf {
		t.Errorf("ReadBool() = %v, %v; want false, nil", bf, err)
	}
	u32, err := d.ReadUint32()
	if err != nil || u32 != 0x12345678 {
		t.Errorf("ReadUint32() = %x, %v; want 0x12345678, nil", u32, err)
	}
	if !d.EOF() {
		t.Errorf("EOF() = false with %d bytes left", d.Remaining())
	}
}

func TestUvarintLengths(t *testing.T) {
	tests := []struct {
		value uint64
		bytes int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{1 << 28, 5},
		{^uint64(0), 10},
	}

	for _, tc := range tests {
		e := NewEncoder()
		e.WriteUvarint(tc.value)
		if e.Len() != tc.bytes {
			t.Errorf("WriteUvarint(%d) = %d bytes, want %d", tc.value, e.Len(), tc.bytes)
		}
		got, err := NewDecoder(e.Bytes()).ReadUvarint()
		if err != nil || got != tc.value {
			t.Errorf("ReadUvarint() = %d, %v; want %d", got, err, tc.value)
		}
	}
}

func TestDecoderTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(d *Decoder) error
	}{
		{"byte", nil, func(d *Decoder) error { _, err := d.ReadByte(); return err }},
		{"varint", []byte{0x80}, func(d *Decoder) error { _, err := d.ReadUvarint(); return err }},
		{"string", []byte{0x05, 'a'}, func(d *Decoder) error { _, err := d.ReadString(); return err }},
		{"uint32", []byte{0x00, 0x01}, func(d *Decoder) error { _, err := d.ReadUint32(); return err }},
		{"count", []byte{0x03, 0x00}, func(d *Decoder) error { _, err := d.ReadCollectionCount(); return err }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read(NewDecoder(tc.data))
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("err = %v, want io.ErrUnexpectedEOF", err)
			}
		})
	}
}

func TestDecoderVarintOverflow(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	_, err := NewDecoder(data).ReadUvarint()
	if !errors.Is(err, ErrVarintOverflow) {
		t.Errorf("err = %v, want ErrVarintOverflow", err)
	}
}

func TestDecoderCollectionLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxCollectionCount + 1)
	_, err := NewDecoder(e.Bytes()).ReadCollectionCount()
	if !errors.Is(err, ErrCollectionTooLarge) {
		t.Errorf("err = %v, want ErrCollectionTooLarge", err)
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoderWithCap(4)
	e.WriteString("abc")
	e.Reset()
	if e.Len() != 0 {
		t.Fatalf("Len() after Reset = %d", e.Len())
	}
	e.WriteByte(1)
	if got := e.Bytes(); len(got) != 1 || got[0] != 1 {
		t.Errorf("Bytes() = %v", got)
	}
}
