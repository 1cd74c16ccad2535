// Package abi models native-style addressing and type tags over a
// WebAssembly linear memory region.
//
// # Type tags
//
// A Type is a marker describing a native value shape (width, signedness,
// pointer-ness) with no runtime payload:
//
//	abi.Int32             // 32-bit signed integer
//	abi.Double            // 64-bit float
//	abi.Ptr(abi.Uint8)    // Pointer<Uint8>
//	abi.Void              // unsized
//
// Unsized tags (Void, NativeFunc) have no byte width; address arithmetic
// and byte-view access on them fail with an unsupported-operation error.
//
// # Pointers
//
// A Pointer is an immutable (address, memory, type) triple. Identity is
// address-only: two pointers are equal iff their addresses are equal,
// regardless of bound memory or type tag. All transforms (Cast,
// ElementAt) return new values; a Pointer is never mutated.
//
// The distinguished Null pointer has address 0 and is bound to a
// sentinel memory that fails every byte access.
//
// # Signature registry
//
// Init(pointerWidthBytes) builds the process-wide mapping from type tag
// names to one-character host value-type codes ('i', 'j', 'f', 'd', 'v')
// exactly once. Names absent from the mapping resolve to 'i'; this
// permissive fallback is deliberate and load-bearing for forward
// compatibility with unrecognized markers.
package abi
