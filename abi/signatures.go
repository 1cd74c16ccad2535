package abi

import (
	"strings"
	"sync"

	"github.com/dh0er/wasm-ffi/errors"
)

// Host value-type codes.
const (
	CodeI32         byte   = 'i'
	CodeI64         byte   = 'j'
	CodeF32         byte   = 'f'
	CodeF64         byte   = 'd'
	CodeVoid        byte   = 'v'
	DefaultPtrWidth uint32 = 4
)

// Signatures maps canonical type tag names to one-character host
// value-type codes for a fixed pointer width. Built once, read-only
// thereafter.
type Signatures struct {
	width uint32
	codes map[string]byte
}

// NewSignatures builds the fixed name-to-code mapping for the given
// pointer width in bytes (4 for wasm32, 8 for wasm64).
func NewSignatures(pointerWidthBytes uint32) *Signatures {
	wide := CodeI32
	if pointerWidthBytes > 4 {
		wide = CodeI64
	}

	codes := map[string]byte{
		"Float":  CodeF32,
		"Double": CodeF64,

		"Int8":   CodeI32,
		"Int16":  CodeI32,
		"Int32":  CodeI32,
		"Uint8":  CodeI32,
		"Uint16": CodeI32,
		"Uint32": CodeI32,
		"Bool":   CodeI32,
		"Utf8":   CodeI32,

		"Int64":  CodeI64,
		"Uint64": CodeI64,

		"IntPtr": wide,
		"Handle": wide,

		"void": CodeVoid,
	}

	return &Signatures{width: pointerWidthBytes, codes: codes}
}

// PointerWidth returns the configured pointer width in bytes.
func (s *Signatures) PointerWidth() uint32 {
	return s.width
}

// CodeOf resolves a canonical tag name to its value-type code. Pointer
// tags resolve at pointer width. Unknown names fall back to 'i'; the
// fallback is deliberate and must not become an error.
func (s *Signatures) CodeOf(name string) byte {
	if strings.HasPrefix(name, "Pointer<") {
		return s.codes["IntPtr"]
	}
	if c, ok := s.codes[name]; ok {
		return c
	}
	return CodeI32
}

// CodeOfType resolves a tag to its value-type code.
func (s *Signatures) CodeOfType(t Type) byte {
	switch t.Kind {
	case KindPtr:
		return s.codes["IntPtr"]
	case KindVoid:
		return CodeVoid
	default:
		return s.CodeOf(t.String())
	}
}

// SignatureOf renders the value-type code string for a function,
// return code first, then one code per parameter ("vij").
func (s *Signatures) SignatureOf(ret Type, params ...Type) string {
	var b strings.Builder
	b.WriteByte(s.CodeOfType(ret))
	for _, p := range params {
		b.WriteByte(s.CodeOfType(p))
	}
	return b.String()
}

var (
	initMu   sync.Mutex
	procSigs *Signatures
)

// Init builds the process-wide signature registry. It must be called
// exactly once before any signature resolution; a second call is a
// registration error.
func Init(pointerWidthBytes uint32) error {
	initMu.Lock()
	defer initMu.Unlock()
	if procSigs != nil {
		return errors.Registration(errors.PhaseSignature, "signature registry already initialized")
	}
	procSigs = NewSignatures(pointerWidthBytes)
	return nil
}

// Default returns the process-wide signature registry, if initialized.
func Default() (*Signatures, bool) {
	initMu.Lock()
	defer initMu.Unlock()
	if procSigs == nil {
		return nil, false
	}
	return procSigs, true
}

// PointerWidth returns the process pointer width in bytes, or the
// wasm32 default when Init has not run.
func PointerWidth() uint32 {
	if s, ok := Default(); ok {
		return s.PointerWidth()
	}
	return DefaultPtrWidth
}
