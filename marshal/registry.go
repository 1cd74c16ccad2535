package marshal

import (
	"context"
	"sync"

	wasmffi "github.com/dh0er/wasm-ffi"
	"github.com/dh0er/wasm-ffi/abi"
)

// Invoker is a statically typed wrapper around a host callable. It
// converts each argument to its host representation, performs the
// synchronous call, and converts the result back.
type Invoker func(ctx context.Context, args ...any) (any, error)

// Builder produces an Invoker for a host callable bound to a memory
// region. Builders run no host calls themselves; side effects begin at
// invocation time.
type Builder func(call wasmffi.Callable, mem wasmffi.Memory) Invoker

// Registry maps canonical signature strings to builders. Mutation is
// rare (registration at startup) relative to lookup, so a single
// registry-wide lock guards it.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates an empty wrapper registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register stores a builder keyed by the canonicalized signature.
// Re-registering a signature overwrites the previous builder.
func (r *Registry) Register(signature string, b Builder) {
	key := abi.CanonicalizeSignature(signature)
	r.mu.Lock()
	r.builders[key] = b
	r.mu.Unlock()
}

// RegisterSignature parses a signature string and registers the
// standard conversion builder for it. This is the entry point used by
// generated registration code.
func (r *Registry) RegisterSignature(signature string) error {
	ret, params, err := abi.ParseSignature(signature)
	if err != nil {
		return err
	}
	r.Register(signature, NewBuilder(ret, params...))
	return nil
}

// Resolve invokes the builder registered for the signature, if any.
// A missing builder is reported as a miss, not an error; the caller
// decides whether that is fatal.
func (r *Registry) Resolve(signature string, call wasmffi.Callable, mem wasmffi.Memory) (Invoker, bool) {
	key := abi.CanonicalizeSignature(signature)
	r.mu.RLock()
	b, ok := r.builders[key]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return b(call, mem), true
}

// Len returns the number of registered signatures.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.builders)
}

// std is the process-wide registry populated at startup by generated
// registration routines.
var std = NewRegistry()

// Std returns the process-wide registry.
func Std() *Registry {
	return std
}

// Register stores a builder in the process-wide registry.
func Register(signature string, b Builder) {
	std.Register(signature, b)
}

// RegisterSignature registers the standard builder for a signature in
// the process-wide registry.
func RegisterSignature(signature string) error {
	return std.RegisterSignature(signature)
}

// Resolve looks a signature up in the process-wide registry.
func Resolve(signature string, call wasmffi.Callable, mem wasmffi.Memory) (Invoker, bool) {
	return std.Resolve(signature, call, mem)
}
