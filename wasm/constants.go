package wasm

// WebAssembly binary format magic number and version.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100

	// Version is the supported WebAssembly binary format version.
	Version uint32 = 0x01
)

// Section IDs for the module sections this package handles. Sections
// must appear in increasing order by ID.
const (
	SectionType   byte = 1 // Type section (function signatures)
	SectionImport byte = 2 // Import section
	SectionMemory byte = 5 // Memory section
	SectionExport byte = 7 // Export section
)

// Import/Export descriptor kinds.
const (
	KindFunc   byte = 0 // Function import/export
	KindTable  byte = 1 // Table import/export
	KindMemory byte = 2 // Memory import/export
	KindGlobal byte = 3 // Global import/export
)

// FuncTypeByte prefixes every function type in the type section.
const FuncTypeByte byte = 0x60

// Value type encodings as defined in the WebAssembly binary format.
const (
	ValI32 ValType = 0x7F // 32-bit integer
	ValI64 ValType = 0x7E // 64-bit integer
	ValF32 ValType = 0x7D // 32-bit float
	ValF64 ValType = 0x7C // 64-bit float
)

// LimitsHasMax flags a limits encoding that carries a maximum.
const LimitsHasMax byte = 0x01
