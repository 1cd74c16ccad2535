package abi

import (
	"sync"

	wasmffi "github.com/dh0er/wasm-ffi"
	"github.com/dh0er/wasm-ffi/errors"
)

// Pointer is an immutable native-style pointer: an address bound to a
// linear memory region, tagged with a native type. Lifetime is tied to
// the bound region; pointers are never individually destroyed.
type Pointer struct {
	addr uint64
	mem  wasmffi.Memory
	typ  Type
}

// Null is the distinguished null pointer: address 0, bound to a
// sentinel memory that fails every byte access.
var Null = Pointer{addr: 0, mem: nullMemory{}, typ: Ptr(Void)}

var (
	defaultMu  sync.RWMutex
	defaultMem wasmffi.Memory
)

// SetDefaultMemory installs the process-wide default memory used by
// FromAddress when no explicit region is supplied.
func SetDefaultMemory(m wasmffi.Memory) {
	defaultMu.Lock()
	defaultMem = m
	defaultMu.Unlock()
}

// DefaultMemory returns the process-wide default memory, if set.
func DefaultMemory() (wasmffi.Memory, bool) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultMem == nil {
		return nil, false
	}
	return defaultMem, true
}

// FromAddressIn constructs a pointer bound to an explicit memory region.
func FromAddressIn(mem wasmffi.Memory, typ Type, addr uint64) Pointer {
	return Pointer{addr: addr, mem: mem, typ: typ}
}

// FromAddress constructs a pointer bound to the process-wide default
// memory. It fails with a binding error when no default is set.
func FromAddress(typ Type, addr uint64) (Pointer, error) {
	mem, ok := DefaultMemory()
	if !ok {
		return Pointer{}, errors.Binding(errors.PhaseAddress, "no memory region supplied and no process default set")
	}
	return FromAddressIn(mem, typ, addr), nil
}

// Address returns the pointer's address.
func (p Pointer) Address() uint64 {
	return p.addr
}

// Type returns the pointer's type tag.
func (p Pointer) Type() Type {
	return p.typ
}

// Memory returns the bound memory region.
func (p Pointer) Memory() wasmffi.Memory {
	return p.mem
}

// Equal reports pointer equality. Identity is address-only: the bound
// region and type tag do not participate.
func (p Pointer) Equal(q Pointer) bool {
	return p.addr == q.addr
}

// IsNull reports whether the pointer has address 0.
func (p Pointer) IsNull() bool {
	return p.addr == 0
}

// Cast reinterprets the pointer's type tag without changing address or
// bound region.
func (p Pointer) Cast(typ Type) Pointer {
	return Pointer{addr: p.addr, mem: p.mem, typ: typ}
}

// ElementAt returns a pointer offset by i elements of the tag's width.
// Unsized tags do not support address arithmetic.
func (p Pointer) ElementAt(i int64) (Pointer, error) {
	w, ok := p.typ.Size(PointerWidth())
	if !ok {
		return Pointer{}, errors.Unsupported(errors.PhaseAddress, p.typ.String(), "element offset on unsized type")
	}
	addr := uint64(int64(p.addr) + i*int64(w))
	return Pointer{addr: addr, mem: p.mem, typ: p.typ}, nil
}

// ViewAt returns a raw byte window of the tag's width at address +
// i*width within the bound region. The window aliases linear memory,
// so writes through it are visible to the guest.
func (p Pointer) ViewAt(i int64) ([]byte, error) {
	w, ok := p.typ.Size(PointerWidth())
	if !ok {
		return nil, errors.Unsupported(errors.PhaseAddress, p.typ.String(), "byte view on unsized type")
	}
	offset := uint64(int64(p.addr) + i*int64(w))
	return p.mem.Read(uint32(offset), w)
}

// nullMemory is the sentinel region bound to Null. Every access fails.
type nullMemory struct{}

func (nullMemory) err() error {
	return errors.Binding(errors.PhaseAddress, "null pointer dereference")
}

func (n nullMemory) Read(uint32, uint32) ([]byte, error) { return nil, n.err() }
func (n nullMemory) Write(uint32, []byte) error          { return n.err() }
func (n nullMemory) ReadU8(uint32) (uint8, error)        { return 0, n.err() }
func (n nullMemory) ReadU16(uint32) (uint16, error)      { return 0, n.err() }
func (n nullMemory) ReadU32(uint32) (uint32, error)      { return 0, n.err() }
func (n nullMemory) ReadU64(uint32) (uint64, error)      { return 0, n.err() }
func (n nullMemory) WriteU8(uint32, uint8) error         { return n.err() }
func (n nullMemory) WriteU16(uint32, uint16) error       { return n.err() }
func (n nullMemory) WriteU32(uint32, uint32) error       { return n.err() }
func (n nullMemory) WriteU64(uint32, uint64) error       { return n.err() }
func (n nullMemory) Buffer() ([]byte, error)             { return nil, n.err() }
func (nullMemory) Size() uint32                          { return 0 }
