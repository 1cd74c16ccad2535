package exports

import (
	"context"
	"sync"

	wasmffi "github.com/dh0er/wasm-ffi"
	"github.com/dh0er/wasm-ffi/abi"
	"github.com/dh0er/wasm-ffi/errors"
	"github.com/dh0er/wasm-ffi/marshal"
	"github.com/dh0er/wasm-ffi/wasm"
)

// Fixed two-part name shared by every shim module. Collisions across
// instantiations are the instantiator's problem, not ours: each shim
// lives in its own instance.
const (
	importModule = "e"
	importName   = "f"
	exportName   = "f"
)

// Config carries the collaborators a Synthesizer needs. Table and
// Instantiator are required. Memory defaults to the process-wide
// default memory, Signatures to the process-wide signature registry.
//
// A supplied Signatures must carry the same pointer width as the
// process registry: the argument and result marshallers resolve
// pointer width process-wide, so a divergent Signatures would emit
// 64-bit value-type codes while addresses are still truncated to 32
// bits. FromFunction rejects the mismatch.
type Config struct {
	Table        wasmffi.Table
	Instantiator wasmffi.Instantiator
	Memory       wasmffi.Memory
	Signatures   *abi.Signatures
}

// Synthesizer converts *Func callables into indirect function table
// entries. Safe for concurrent use.
type Synthesizer struct {
	cfg Config

	mu    sync.Mutex
	cache map[*Func]uint64
}

// New validates cfg and returns a Synthesizer.
func New(cfg Config) (*Synthesizer, error) {
	if cfg.Table == nil {
		return nil, errors.InvalidInput(errors.PhaseExport, "table is required")
	}
	if cfg.Instantiator == nil {
		return nil, errors.InvalidInput(errors.PhaseExport, "instantiator is required")
	}
	return &Synthesizer{
		cfg:   cfg,
		cache: make(map[*Func]uint64),
	}, nil
}

// FromFunction returns a function pointer whose address is the table
// index of a shim that forwards to fn. The same *Func always resolves
// to the same index; the table grows by one only on first sight.
func (s *Synthesizer) FromFunction(ctx context.Context, fn *Func) (abi.Pointer, error) {
	if fn == nil || fn.Call == nil {
		return abi.Pointer{}, errors.InvalidInput(errors.PhaseExport, "nil callable")
	}

	mem := s.cfg.Memory
	if mem == nil {
		var ok bool
		if mem, ok = abi.DefaultMemory(); !ok {
			return abi.Pointer{}, errors.Binding(errors.PhaseExport, "no memory bound")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.cache[fn]; ok {
		return abi.FromAddressIn(mem, abi.Ptr(abi.NativeFunc), idx), nil
	}

	if len(fn.Params) > MaxArity {
		return abi.Pointer{}, errors.Arity(len(fn.Params), MaxArity)
	}

	sigs := s.cfg.Signatures
	if sigs == nil {
		var ok bool
		if sigs, ok = abi.Default(); !ok {
			return abi.Pointer{}, errors.Registration(errors.PhaseExport, "signature registry not initialized")
		}
	}
	if w := sigs.PointerWidth(); w != abi.PointerWidth() {
		return abi.Pointer{}, errors.New(errors.PhaseExport, errors.KindRegistration).
			Detail("signature registry width %d does not match process pointer width %d", w, abi.PointerWidth()).
			Build()
	}

	lift := make([]lifter, len(fn.Params))
	for i, p := range fn.Params {
		p := p
		lift[i] = func(raw uint64) (any, error) {
			v, err := marshal.Lift(p, raw, mem)
			if err != nil {
				return nil, err
			}
			return v, nil
		}
	}

	ret := fn.Ret
	lower := func(v any) ([]uint64, error) {
		if ret.Kind == abi.KindVoid {
			return nil, nil
		}
		raw, err := marshal.Lower(ret, v)
		if err != nil {
			return nil, err
		}
		return []uint64{raw}, nil
	}

	code := sigs.SignatureOf(fn.Ret, fn.Params...)
	tramp := goCallable{fn: trampolines[len(fn.Params)](fn, lift, lower)}

	inst, err := s.cfg.Instantiator.Instantiate(ctx, shimModule(code).Encode(), map[string]wasmffi.Callable{
		importName: tramp,
	})
	if err != nil {
		return abi.Pointer{}, errors.Instantiation(err)
	}

	exported := inst.Export(exportName)
	if exported == nil {
		return abi.Pointer{}, errors.NotFound(errors.PhaseExport, "export", exportName)
	}

	idx, err := s.cfg.Table.Grow(1)
	if err != nil {
		return abi.Pointer{}, errors.Wrap(errors.PhaseExport, errors.KindRegistration, err, "growing function table")
	}
	if err := s.cfg.Table.Set(idx, exported); err != nil {
		return abi.Pointer{}, errors.Wrap(errors.PhaseExport, errors.KindRegistration, err, "installing table entry")
	}

	s.cache[fn] = uint64(idx)
	return abi.FromAddressIn(mem, abi.Ptr(abi.NativeFunc), uint64(idx)), nil
}

// shimModule builds the single-import single-export module for a
// value-type code string. Built fresh for every instantiation.
func shimModule(code string) *wasm.Module {
	ft := wasm.FuncType{}
	if code[0] != abi.CodeVoid {
		ft.Results = []wasm.ValType{valTypeOf(code[0])}
	}
	for i := 1; i < len(code); i++ {
		ft.Params = append(ft.Params, valTypeOf(code[i]))
	}
	return &wasm.Module{
		Types:   []wasm.FuncType{ft},
		Imports: []wasm.Import{{Module: importModule, Name: importName, TypeIdx: 0}},
		Exports: []wasm.Export{{Name: exportName, Kind: wasm.KindFunc, Idx: 0}},
	}
}

func valTypeOf(c byte) wasm.ValType {
	switch c {
	case abi.CodeF32:
		return wasm.ValF32
	case abi.CodeF64:
		return wasm.ValF64
	case abi.CodeI64:
		return wasm.ValI64
	default:
		return wasm.ValI32
	}
}
