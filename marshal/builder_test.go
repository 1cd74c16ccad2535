package marshal

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/dh0er/wasm-ffi/abi"
)

func TestInvokerScalarConversions(t *testing.T) {
	mem := newFakeMemory(16)
	call := &fakeCallable{results: []uint64{api.EncodeI32(-5)}}

	inv := NewBuilder(abi.Int32, abi.Int32, abi.Double)(call, mem)
	got, err := inv(context.Background(), int64(7), 3.5)
	if err != nil {
		t.Fatal(err)
	}

	if len(call.gotParams) != 2 {
		t.Fatalf("host saw %d params, want 2", len(call.gotParams))
	}
	if call.gotParams[0] != api.EncodeI32(7) {
		t.Errorf("param 0 = %#x, want EncodeI32(7)", call.gotParams[0])
	}
	if call.gotParams[1] != api.EncodeF64(3.5) {
		t.Errorf("param 1 = %#x, want EncodeF64(3.5)", call.gotParams[1])
	}
	if got != int64(-5) {
		t.Errorf("result = %v (%T), want int64(-5)", got, got)
	}
}

func TestInvokerPointerArgumentLowersToAddress(t *testing.T) {
	mem := newFakeMemory(64)
	call := &fakeCallable{results: []uint64{0}}

	p := abi.FromAddressIn(mem, abi.Uint8, 24)
	inv := NewBuilder(abi.Void, abi.Ptr(abi.Uint8))(call, mem)
	if _, err := inv(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if call.gotParams[0] != 24 {
		t.Errorf("pointer lowered to %d, want its address 24", call.gotParams[0])
	}
}

func TestInvokerPointerReturnReconstructs(t *testing.T) {
	mem := newFakeMemory(64)
	call := &fakeCallable{results: []uint64{16}}

	inv := NewBuilder(abi.Ptr(abi.Int32))(call, mem)
	got, err := inv(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	p, ok := got.(abi.Pointer)
	if !ok {
		t.Fatalf("result type %T, want abi.Pointer", got)
	}
	if p.Address() != 16 {
		t.Errorf("reconstructed address = %d, want 16", p.Address())
	}
	if p.Memory() != mem {
		t.Error("pointer return must be bound to the invoker's region")
	}
	if p.Type().String() != "Pointer<Int32>" {
		t.Errorf("reconstructed tag = %s, want Pointer<Int32>", p.Type())
	}
}

func TestInvokerVoidReturn(t *testing.T) {
	call := &fakeCallable{}
	inv := NewBuilder(abi.Void)(call, newFakeMemory(8))
	got, err := inv(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("void call returned %v", got)
	}
}

func TestInvokerArgumentCountMismatch(t *testing.T) {
	inv := NewBuilder(abi.Void, abi.Int32)(&fakeCallable{}, newFakeMemory(8))
	if _, err := inv(context.Background()); err == nil {
		t.Error("missing argument should fail")
	}
	if _, err := inv(context.Background(), int64(1), int64(2)); err == nil {
		t.Error("extra argument should fail")
	}
}

func TestLowerWidths(t *testing.T) {
	tests := []struct {
		typ  abi.Type
		in   any
		want uint64
	}{
		{abi.Int8, int64(-1), api.EncodeI32(-1)},
		{abi.Uint8, int64(0x1FF), 0xFF},
		{abi.Uint32, int64(-1), 0xFFFFFFFF},
		{abi.Int64, int64(-1), api.EncodeI64(-1)},
		{abi.Uint64, uint64(1) << 63, uint64(1) << 63},
		{abi.Float, float32(1.5), api.EncodeF32(1.5)},
		{abi.Bool, true, 1},
		{abi.Bool, false, 0},
	}
	for _, tt := range tests {
		got, err := Lower(tt.typ, tt.in)
		if err != nil {
			t.Errorf("Lower(%s, %v): %v", tt.typ, tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lower(%s, %v) = %#x, want %#x", tt.typ, tt.in, got, tt.want)
		}
	}
}

func TestLowerRejectsWrongGoType(t *testing.T) {
	if _, err := Lower(abi.Int32, "nope"); err == nil {
		t.Error("string for Int32 should fail")
	}
	if _, err := Lower(abi.Double, true); err == nil {
		t.Error("bool for Double should fail")
	}
	if _, err := Lower(abi.Void, int64(1)); err == nil {
		t.Error("value of unsized tag should fail")
	}
}

func TestLiftWidthsAndSignedness(t *testing.T) {
	mem := newFakeMemory(8)
	tests := []struct {
		typ  abi.Type
		raw  uint64
		want any
	}{
		{abi.Int8, 0xFF, int64(-1)},
		{abi.Int16, 0x8000, int64(-32768)},
		{abi.Int32, api.EncodeI32(-7), int64(-7)},
		{abi.Uint8, 0x1FF, uint64(0xFF)},
		{abi.Uint64, ^uint64(0), ^uint64(0)},
		{abi.Bool, 1, true},
		{abi.Bool, 0, false},
		{abi.Double, api.EncodeF64(2.25), 2.25},
		{abi.Float, api.EncodeF32(0.5), float32(0.5)},
	}
	for _, tt := range tests {
		got, err := Lift(tt.typ, tt.raw, mem)
		if err != nil {
			t.Errorf("Lift(%s, %#x): %v", tt.typ, tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lift(%s, %#x) = %v (%T), want %v (%T)", tt.typ, tt.raw, got, got, tt.want, tt.want)
		}
	}
}
