package exports

import (
	"context"
)

// MaxArity is the largest parameter count a synthesized function
// pointer supports. The trampoline table below is fixed at build
// time; callables with more parameters are rejected before any table
// mutation happens.
const MaxArity = 6

type lifter func(raw uint64) (any, error)

type lowerer func(v any) ([]uint64, error)

type callFunc func(ctx context.Context, params []uint64) ([]uint64, error)

// goCallable adapts a callFunc to the Callable interface so it can be
// handed to an Instantiator as an import.
type goCallable struct {
	fn callFunc
}

func (g goCallable) Call(ctx context.Context, params ...uint64) ([]uint64, error) {
	return g.fn(ctx, params)
}

// invoke runs the native callable, substituting ExceptionalReturn
// when it panics. The panic must not cross into the embedder.
func invoke(fn *Func, args ...any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			out = fn.ExceptionalReturn
		}
	}()
	return fn.Call(args...)
}

var trampolines = [MaxArity + 1]func(fn *Func, lift []lifter, lower lowerer) callFunc{
	tramp0, tramp1, tramp2, tramp3, tramp4, tramp5, tramp6,
}

func tramp0(fn *Func, _ []lifter, lower lowerer) callFunc {
	return func(_ context.Context, _ []uint64) ([]uint64, error) {
		return lower(invoke(fn))
	}
}

func tramp1(fn *Func, lift []lifter, lower lowerer) callFunc {
	return func(_ context.Context, p []uint64) ([]uint64, error) {
		a0, err := lift[0](p[0])
		if err != nil {
			return nil, err
		}
		return lower(invoke(fn, a0))
	}
}

func tramp2(fn *Func, lift []lifter, lower lowerer) callFunc {
	return func(_ context.Context, p []uint64) ([]uint64, error) {
		a0, err := lift[0](p[0])
		if err != nil {
			return nil, err
		}
		a1, err := lift[1](p[1])
		if err != nil {
			return nil, err
		}
		return lower(invoke(fn, a0, a1))
	}
}

func tramp3(fn *Func, lift []lifter, lower lowerer) callFunc {
	return func(_ context.Context, p []uint64) ([]uint64, error) {
		a0, err := lift[0](p[0])
		if err != nil {
			return nil, err
		}
		a1, err := lift[1](p[1])
		if err != nil {
			return nil, err
		}
		a2, err := lift[2](p[2])
		if err != nil {
			return nil, err
		}
		return lower(invoke(fn, a0, a1, a2))
	}
}

func tramp4(fn *Func, lift []lifter, lower lowerer) callFunc {
	return func(_ context.Context, p []uint64) ([]uint64, error) {
		a0, err := lift[0](p[0])
		if err != nil {
			return nil, err
		}
		a1, err := lift[1](p[1])
		if err != nil {
			return nil, err
		}
		a2, err := lift[2](p[2])
		if err != nil {
			return nil, err
		}
		a3, err := lift[3](p[3])
		if err != nil {
			return nil, err
		}
		return lower(invoke(fn, a0, a1, a2, a3))
	}
}

func tramp5(fn *Func, lift []lifter, lower lowerer) callFunc {
	return func(_ context.Context, p []uint64) ([]uint64, error) {
		a0, err := lift[0](p[0])
		if err != nil {
			return nil, err
		}
		a1, err := lift[1](p[1])
		if err != nil {
			return nil, err
		}
		a2, err := lift[2](p[2])
		if err != nil {
			return nil, err
		}
		a3, err := lift[3](p[3])
		if err != nil {
			return nil, err
		}
		a4, err := lift[4](p[4])
		if err != nil {
			return nil, err
		}
		return lower(invoke(fn, a0, a1, a2, a3, a4))
	}
}

func tramp6(fn *Func, lift []lifter, lower lowerer) callFunc {
	return func(_ context.Context, p []uint64) ([]uint64, error) {
		a0, err := lift[0](p[0])
		if err != nil {
			return nil, err
		}
		a1, err := lift[1](p[1])
		if err != nil {
			return nil, err
		}
		a2, err := lift[2](p[2])
		if err != nil {
			return nil, err
		}
		a3, err := lift[3](p[3])
		if err != nil {
			return nil, err
		}
		a4, err := lift[4](p[4])
		if err != nil {
			return nil, err
		}
		a5, err := lift[5](p[5])
		if err != nil {
			return nil, err
		}
		return lower(invoke(fn, a0, a1, a2, a3, a4, a5))
	}
}
