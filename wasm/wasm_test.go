package wasm

import (
	"bytes"
	"reflect"
	"testing"
)

func shimModule(params, results []ValType) *Module {
	return &Module{
		Types:   []FuncType{{Params: params, Results: results}},
		Imports: []Import{{Module: "e", Name: "f", TypeIdx: 0}},
		Exports: []Export{{Name: "f", Kind: KindFunc, Idx: 0}},
	}
}

func TestEncodeShimByteExact(t *testing.T) {
	m := shimModule([]ValType{ValI32}, nil)

	want := []byte{
		0x00, 0x61, 0x73, 0x6D, // magic
		0x01, 0x00, 0x00, 0x00, // version
		0x01, 0x05, 0x01, 0x60, 0x01, 0x7F, 0x00, // type: (i32) -> ()
		0x02, 0x07, 0x01, 0x01, 'e', 0x01, 'f', 0x00, 0x00, // import e.f func 0
		0x07, 0x05, 0x01, 0x01, 'f', 0x00, 0x00, // export f func 0
	}
	got := m.Encode()
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = % x\nwant       % x", got, want)
	}
}

func TestEncodeFreshPerSignature(t *testing.T) {
	a := shimModule([]ValType{ValI32}, []ValType{ValI32}).Encode()
	b := shimModule([]ValType{ValI64}, []ValType{ValI32}).Encode()
	if bytes.Equal(a, b) {
		t.Error("modules for distinct signatures must differ in their type section")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		mod  *Module
	}{
		{"nullary", shimModule(nil, nil)},
		{"unary i32", shimModule([]ValType{ValI32}, nil)},
		{"mixed", shimModule([]ValType{ValI32, ValF64, ValI64, ValF32}, []ValType{ValI64})},
		{
			"memory export",
			&Module{
				Memories: []Limits{{Min: 2}},
				Exports:  []Export{{Name: "memory", Kind: KindMemory, Idx: 0}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.mod.Encode())
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(got, tt.mod) {
				t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, tt.mod)
			}
		})
	}
}

func TestDecodeMemoryWithMax(t *testing.T) {
	max := uint32(16)
	m := &Module{Memories: []Limits{{Min: 1, Max: &max}}}
	got, err := Decode(m.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Memories) != 1 || got.Memories[0].Max == nil || *got.Memories[0].Max != 16 {
		t.Errorf("limits round trip failed: %+v", got.Memories)
	}
}

func TestDecodeRejectsBadHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", []byte{0x00, 0x61, 0x73, 0x00, 0x01, 0x00, 0x00, 0x00}},
		{"bad version", []byte{0x00, 0x61, 0x73, 0x6D, 0x02, 0x00, 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); err == nil {
				t.Error("Decode should fail")
			}
		})
	}
}

func TestDecodeSkipsUnknownSections(t *testing.T) {
	data := shimModule(nil, nil).Encode()
	// Append a custom section (id 0) with a 3-byte payload.
	data = append(data, 0x00, 0x03, 0xAA, 0xBB, 0xCC)
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode with trailing custom section: %v", err)
	}
	if len(got.Imports) != 1 || got.Imports[0].Module != "e" {
		t.Errorf("decoded module lost its import: %+v", got.Imports)
	}
}
