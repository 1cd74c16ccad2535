// Package exports turns native-style callables into host function
// pointers: entries in the indirect function table whose address is
// the table index.
//
// The host cannot insert an arbitrary host function reference into a
// table directly. FromFunction therefore encodes a minimal binary
// module - one function type, one import of that type, one export of
// the imported function - and instantiates it synchronously with a
// fixed-arity trampoline as the sole import. The instantiation
// product is a table-insertable callable that forwards into the
// native callable with per-argument marshalling.
//
// Go function values are not comparable, so callable identity is the
// *Func pointer: passing the same *Func twice yields the same table
// index without growing the table again.
package exports
