// Package errors provides structured error types for the wasm-ffi library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the native type tag name and canonical
// signature string involved, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMarshal, errors.KindInvalidData).
//		Signature("int Function(int, double)").
//		Detail("unparseable parameter list").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unsupported(errors.PhaseAddress, "Void", "element offset")
//	err := errors.Arity(8, 6)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind, so sentinel comparisons only need those two
// fields populated.
package errors
