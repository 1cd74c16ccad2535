// Package engine backs the abstract interfaces with wazero. It
// provides the instantiator used for synthesized shim modules, linear
// memories obtained by instantiating a memory-export module, and a
// host-side indirect function table.
//
// Every Instantiate call runs in a child runtime of its own. Shim
// modules all import from the same two-part name, and wazero host
// modules are registered per runtime by name, so sharing a runtime
// across shims would collide on the second instantiation.
package engine
