package marshal

import (
	"github.com/tetratelabs/wazero/api"

	wasmffi "github.com/dh0er/wasm-ffi"
	"github.com/dh0er/wasm-ffi/abi"
	"github.com/dh0er/wasm-ffi/errors"
)

// Lower converts a Go value to its raw stack representation for the
// given type tag. Numbers pass through at the tag's width and
// signedness; pointers lower to their integer address.
func Lower(t abi.Type, v any) (uint64, error) {
	switch t.Kind {
	case abi.KindFloat:
		f, ok := toFloat64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return api.EncodeF32(float32(f)), nil

	case abi.KindDouble:
		f, ok := toFloat64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return api.EncodeF64(f), nil

	case abi.KindBool:
		b, ok := v.(bool)
		if !ok {
			return 0, lowerErr(t, v)
		}
		if b {
			return 1, nil
		}
		return 0, nil

	case abi.KindInt8:
		n, ok := toInt64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return api.EncodeI32(int32(int8(n))), nil

	case abi.KindInt16:
		n, ok := toInt64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return api.EncodeI32(int32(int16(n))), nil

	case abi.KindInt32:
		n, ok := toInt64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return api.EncodeI32(int32(n)), nil

	case abi.KindUint8:
		n, ok := toInt64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return uint64(uint8(n)), nil

	case abi.KindUint16:
		n, ok := toInt64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return uint64(uint16(n)), nil

	case abi.KindUint32, abi.KindUtf8, abi.KindOpaque:
		n, ok := toInt64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return uint64(uint32(n)), nil

	case abi.KindInt64:
		n, ok := toInt64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return api.EncodeI64(n), nil

	case abi.KindUint64:
		n, ok := toInt64(v)
		if !ok {
			return 0, lowerErr(t, v)
		}
		return uint64(n), nil

	case abi.KindIntPtr, abi.KindHandle, abi.KindPtr:
		var addr uint64
		if p, ok := v.(abi.Pointer); ok {
			addr = p.Address()
		} else if n, ok := toInt64(v); ok {
			addr = uint64(n)
		} else {
			return 0, lowerErr(t, v)
		}
		if abi.PointerWidth() <= 4 {
			addr = uint64(uint32(addr))
		}
		return addr, nil

	default:
		return 0, errors.Unsupported(errors.PhaseMarshal, t.String(), "cannot marshal a value of an unsized type")
	}
}

// Lift converts a raw stack value back to a Go value for the given
// type tag. Pointer-typed values are reconstructed as pointers bound
// to mem.
func Lift(t abi.Type, raw uint64, mem wasmffi.Memory) (any, error) {
	switch t.Kind {
	case abi.KindVoid:
		return nil, nil
	case abi.KindFloat:
		return api.DecodeF32(raw), nil
	case abi.KindDouble:
		return api.DecodeF64(raw), nil
	case abi.KindBool:
		return api.DecodeI32(raw) != 0, nil
	case abi.KindInt8:
		return int64(int8(raw)), nil
	case abi.KindInt16:
		return int64(int16(raw)), nil
	case abi.KindInt32:
		return int64(api.DecodeI32(raw)), nil
	case abi.KindInt64:
		return int64(raw), nil
	case abi.KindUint8:
		return uint64(uint8(raw)), nil
	case abi.KindUint16:
		return uint64(uint16(raw)), nil
	case abi.KindUint32, abi.KindUtf8, abi.KindOpaque:
		return uint64(uint32(raw)), nil
	case abi.KindUint64:
		return raw, nil
	case abi.KindIntPtr:
		if abi.PointerWidth() <= 4 {
			return int64(api.DecodeI32(raw)), nil
		}
		return int64(raw), nil
	case abi.KindHandle:
		if abi.PointerWidth() <= 4 {
			return uint64(uint32(raw)), nil
		}
		return raw, nil
	case abi.KindPtr:
		addr := raw
		if abi.PointerWidth() <= 4 {
			addr = uint64(uint32(raw))
		}
		return abi.FromAddressIn(mem, t, addr), nil
	default:
		return nil, errors.Unsupported(errors.PhaseMarshal, t.String(), "cannot unmarshal a value of an unsized type")
	}
}

func lowerErr(t abi.Type, v any) error {
	return errors.New(errors.PhaseMarshal, errors.KindInvalidInput).
		Type(t.String()).
		Detail("cannot marshal %T", v).
		Build()
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uintptr:
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	default:
		return 0, false
	}
}
