package marshal

import (
	"context"

	wasmffi "github.com/dh0er/wasm-ffi"
	"github.com/dh0er/wasm-ffi/abi"
	"github.com/dh0er/wasm-ffi/errors"
)

// NewBuilder returns the standard conversion builder for a function
// with the given return and parameter tags.
func NewBuilder(ret abi.Type, params ...abi.Type) Builder {
	ps := make([]abi.Type, len(params))
	copy(ps, params)

	return func(call wasmffi.Callable, mem wasmffi.Memory) Invoker {
		return func(ctx context.Context, args ...any) (any, error) {
			if len(args) != len(ps) {
				return nil, errors.New(errors.PhaseMarshal, errors.KindInvalidInput).
					Detail("got %d arguments, signature takes %d", len(args), len(ps)).
					Build()
			}

			stack := make([]uint64, len(ps))
			for i, p := range ps {
				v, err := Lower(p, args[i])
				if err != nil {
					return nil, err
				}
				stack[i] = v
			}

			results, err := call.Call(ctx, stack...)
			if err != nil {
				return nil, err
			}

			if ret.Kind == abi.KindVoid {
				return nil, nil
			}
			if len(results) == 0 {
				return nil, errors.InvalidData(errors.PhaseMarshal, "host callable returned no value")
			}
			return Lift(ret, results[0], mem)
		}
	}
}
