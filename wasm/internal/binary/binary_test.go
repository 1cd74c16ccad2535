package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestWriterU32(t *testing.T) {
	tests := []struct {
		value uint32
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
		{0xFFFFFFFF, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}

	for _, tt := range tests {
		w := NewWriter()
		w.WriteU32(tt.value)
		if !bytes.Equal(w.Bytes(), tt.want) {
			t.Errorf("WriteU32(%d) = %v, want %v", tt.value, w.Bytes(), tt.want)
		}
	}
}

func TestWriterName(t *testing.T) {
	w := NewWriter()
	w.WriteName("memory")
	want := append([]byte{0x06}, []byte("memory")...)
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("WriteName = %v, want %v", w.Bytes(), want)
	}
}

func TestWriterU32LE(t *testing.T) {
	w := NewWriter()
	w.WriteU32LE(0x6D736100)
	if !bytes.Equal(w.Bytes(), []byte{0x00, 0x61, 0x73, 0x6D}) {
		t.Errorf("WriteU32LE = %v", w.Bytes())
	}
	if w.Len() != 4 {
		t.Errorf("Len = %d, want 4", w.Len())
	}
}

func TestReaderReadU32(t *testing.T) {
	tests := []struct {
		encoded []byte
		want    uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		r := NewReader(bytes.NewReader(tt.encoded))
		got, err := r.ReadU32()
		if err != nil {
			t.Errorf("ReadU32(%v): %v", tt.encoded, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ReadU32(%v) = %d, want %d", tt.encoded, got, tt.want)
		}
	}
}

func TestReaderReadU32Overflow(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}))
	_, err := r.ReadU32()
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU32LE(0x6D736100)
	w.WriteU32(300)
	w.WriteName("e")
	w.Byte(0x60)

	r := NewReader(bytes.NewReader(w.Bytes()))
	if v, _ := r.ReadU32LE(); v != 0x6D736100 {
		t.Errorf("ReadU32LE = %#x", v)
	}
	if v, _ := r.ReadU32(); v != 300 {
		t.Errorf("ReadU32 = %d", v)
	}
	if s, _ := r.ReadName(); s != "e" {
		t.Errorf("ReadName = %q", s)
	}
	if b, _ := r.ReadByte(); b != 0x60 {
		t.Errorf("ReadByte = %#x", b)
	}
	if _, err := r.ReadByte(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
	if r.Position() != w.Len() {
		t.Errorf("Position = %d, want %d", r.Position(), w.Len())
	}
}

func TestReaderInvalidName(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x02, 0xff, 0xfe}))
	if _, err := r.ReadName(); err == nil {
		t.Error("expected invalid UTF-8 error")
	}
}
