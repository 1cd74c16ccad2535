package exports

import "github.com/dh0er/wasm-ffi/abi"

// Func describes a native-style callable to be synthesized into a
// table entry. The *Func pointer is the identity the synthesizer
// caches on: the same pointer maps to the same table index for the
// lifetime of the process.
type Func struct {
	// Params are the declared parameter tags, one per argument.
	Params []abi.Type

	// Ret is the declared return tag. Use abi.Void for no result.
	Ret abi.Type

	// Call receives arguments already lifted to host representation
	// and returns the raw result to be lowered. For a Void return the
	// result is ignored.
	Call func(args ...any) any

	// ExceptionalReturn is substituted as the result when Call
	// panics. It must be lowerable under Ret; for a Void return it
	// may be nil.
	ExceptionalReturn any
}
