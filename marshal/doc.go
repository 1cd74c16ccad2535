// Package marshal implements the outbound wrapper registry: it turns
// host-exported callables into statically typed native-style functions.
//
// A Builder is registered per canonical signature string, usually by
// generated code at startup:
//
//	marshal.RegisterSignature("int Function(int, double)")
//
// Resolving a signature against a host callable and a bound memory
// region produces an Invoker that converts arguments and results per
// native ABI rules: scalars pass through at their declared width and
// signedness, pointer arguments lower to their integer address, and
// pointer returns are reconstructed as pointers bound to the same
// region. A missing builder is a normal miss, not an error; callers
// decide whether that is fatal.
//
// The Lift and Lower conversion primitives are shared with the exports
// package, which applies them in the opposite direction for inbound
// function pointers.
package marshal
