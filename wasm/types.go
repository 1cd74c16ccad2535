package wasm

// ValType is a WebAssembly value type encoding.
type ValType byte

// FuncType describes a function signature.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// Import is an imported function: a two-part name plus a type index.
// Only function imports are representable; the modules this package
// builds import nothing else.
type Import struct {
	Module  string
	Name    string
	TypeIdx uint32
}

// Export names a definition by kind and index.
type Export struct {
	Name string
	Kind byte
	Idx  uint32
}

// Limits bounds a memory in 64KiB pages.
type Limits struct {
	Min uint32
	Max *uint32
}

// Module is the subset of a WebAssembly module needed to synthesize
// function-pointer shims and scratch memories: function types, function
// imports, memories, and exports.
type Module struct {
	Types    []FuncType
	Imports  []Import
	Memories []Limits
	Exports  []Export
}
