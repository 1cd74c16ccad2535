// Package wasm encodes and decodes the minimal WebAssembly binary
// modules this library synthesizes on the fly.
//
// Two module shapes exist: a function-pointer shim (one function type,
// one import of that type under a fixed two-part name, one export of
// the imported function) and a scratch memory module (one memory, one
// export). The encoder produces the byte-exact layout the host
// compiler requires: the fixed 8-byte magic/version header followed by
// type, import, memory and export sections in ID order. The decoder
// reads the same subset back and skips anything else by section
// length.
//
// Anything beyond this subset, in particular code sections, is out of
// scope here; these modules exist only to obtain table-insertable
// callables and scratch memories from the host compiler.
package wasm
