// Package gen implements the build-time signature discovery that the
// wrapper registry depends on. Generic instantiations cannot be
// enumerated at run time, so the generator scans source text for
// signature annotations and lookupFunction call sites, canonicalizes
// what it finds, and emits a registration routine the program calls
// at startup.
//
// The scan is textual and deliberately not a language parser: the
// sweep mode counts angle-bracket depth to capture nested generic
// arguments and requires an immediate empty call after the argument
// list to reject unrelated uses of the token.
package gen
