package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	wasmffi "github.com/dh0er/wasm-ffi"
	"github.com/dh0er/wasm-ffi/errors"
	"github.com/dh0er/wasm-ffi/wasm"
)

// Instantiate compiles raw module bytes in a fresh child runtime,
// resolving each function import from the supplied map by field name.
// Implements the Instantiator interface.
func (e *Engine) Instantiate(ctx context.Context, code []byte, imports map[string]wasmffi.Callable) (wasmffi.Instance, error) {
	mod, err := wasm.Decode(code)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidData, err, "decoding module")
	}

	// Interpreter config: the modules that flow through here carry no
	// code of their own, so compilation would be pure overhead.
	child := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())

	builders := make(map[string]wazero.HostModuleBuilder)
	for _, imp := range mod.Imports {
		if int(imp.TypeIdx) >= len(mod.Types) {
			child.Close(ctx)
			return nil, errors.InvalidData(errors.PhaseHost, "import type index out of range")
		}
		fn, ok := imports[imp.Name]
		if !ok {
			child.Close(ctx)
			return nil, errors.NotFound(errors.PhaseHost, "import", imp.Name)
		}
		ft := mod.Types[imp.TypeIdx]

		b, ok := builders[imp.Module]
		if !ok {
			b = child.NewHostModuleBuilder(imp.Module)
			builders[imp.Module] = b
		}
		b.NewFunctionBuilder().
			WithGoModuleFunction(hostAdapter(fn, len(ft.Params), len(ft.Results)), valueTypes(ft.Params), valueTypes(ft.Results)).
			Export(imp.Name)
	}
	for name, b := range builders {
		if _, err := b.Instantiate(ctx); err != nil {
			child.Close(ctx)
			return nil, errors.New(errors.PhaseHost, errors.KindInstantiation).
				Cause(err).
				Detail("host module %q", name).
				Build()
		}
	}

	m, err := child.Instantiate(ctx, code)
	if err != nil {
		child.Close(ctx)
		return nil, errors.Instantiation(err)
	}
	if err := e.adopt(child); err != nil {
		child.Close(ctx)
		return nil, err
	}
	debugf("instantiated %d-byte module with %d imports", len(code), len(mod.Imports))
	return &instance{runtime: child, mod: m}, nil
}

// hostAdapter bridges a Callable into a wazero host function. A
// Callable error becomes a trap via panic, which wazero converts into
// an error on the guest-side call.
func hostAdapter(fn wasmffi.Callable, nParams, nResults int) api.GoModuleFunc {
	return func(ctx context.Context, _ api.Module, stack []uint64) {
		params := make([]uint64, nParams)
		copy(params, stack)
		results, err := fn.Call(ctx, params...)
		if err != nil {
			panic(err)
		}
		for i := 0; i < nResults && i < len(results); i++ {
			stack[i] = results[i]
		}
	}
}

func valueTypes(vts []wasm.ValType) []api.ValueType {
	if len(vts) == 0 {
		return nil
	}
	out := make([]api.ValueType, len(vts))
	for i, vt := range vts {
		switch vt {
		case wasm.ValI64:
			out[i] = api.ValueTypeI64
		case wasm.ValF32:
			out[i] = api.ValueTypeF32
		case wasm.ValF64:
			out[i] = api.ValueTypeF64
		default:
			out[i] = api.ValueTypeI32
		}
	}
	return out
}

type instance struct {
	runtime wazero.Runtime
	mod     api.Module
}

func (i *instance) Export(name string) wasmffi.Callable {
	fn := i.mod.ExportedFunction(name)
	if fn == nil {
		return nil
	}
	return fn
}

func (i *instance) Close(ctx context.Context) error {
	return i.runtime.Close(ctx)
}
