// Package wasmffi emulates a native foreign-function interface on top
// of a WebAssembly host: pointers over linear memory, statically typed
// wrappers around host callables, and native function pointers exposed
// through an indirect function table.
//
// The root package defines only the host collaborator contracts. The
// engine package implements them on wazero; abi, marshal and exports
// build the marshalling layer on top of these interfaces.
package wasmffi

import "context"

// Memory is a byte-addressable linear memory region. Pointers are
// meaningless without a bound Memory.
//
// Read returns a window that aliases the underlying buffer, so writes
// through the returned slice land in linear memory.
type Memory interface {
	Read(offset, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU16(offset uint32) (uint16, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU16(offset uint32, value uint16) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error

	// Buffer returns the whole region as a single aliasing window.
	Buffer() ([]byte, error)

	// Size returns the current size of the region in bytes.
	Size() uint32
}

// Callable is a host function reachable from the marshalling layer.
// Parameters and results use the raw stack value convention: every
// value is carried in a uint64 regardless of its declared width.
// wazero's api.Function satisfies this interface directly.
type Callable interface {
	Call(ctx context.Context, params ...uint64) ([]uint64, error)
}

// Table is an indirect function table: a host-managed array of
// callables addressed by integer index. Function pointers handed to
// the guest are indexes into this table.
type Table interface {
	// Length returns the current number of slots.
	Length() uint32

	// Grow appends n empty slots and returns the index of the first
	// new slot.
	Grow(n uint32) (uint32, error)

	// Set stores a callable at an existing slot index.
	Set(index uint32, fn Callable) error

	// Get returns the callable at index, or false if the slot is
	// out of range or empty.
	Get(index uint32) (Callable, bool)
}

// Instance is an instantiated module exposing its exports by name.
type Instance interface {
	// Export returns the exported function with the given name, or
	// nil if the module exports no such function.
	Export(name string) Callable

	Close(ctx context.Context) error
}

// Instantiator compiles and instantiates raw module bytes, resolving
// each imported function from the supplied map keyed by import field
// name. Instantiation is synchronous; the modules passed through this
// interface are tiny by construction.
type Instantiator interface {
	Instantiate(ctx context.Context, code []byte, imports map[string]Callable) (Instance, error)
}
