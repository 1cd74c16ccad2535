package engine

import (
	"sync"

	wasmffi "github.com/dh0er/wasm-ffi"
	"github.com/dh0er/wasm-ffi/errors"
)

// LocalTable is a host-side indirect function table. Indices are
// stable for the table's lifetime; slots are never reclaimed.
type LocalTable struct {
	mu    sync.RWMutex
	slots []wasmffi.Callable
}

// NewTable creates an empty table.
func NewTable() *LocalTable {
	return &LocalTable{}
}

// Length returns the current number of slots.
func (t *LocalTable) Length() uint32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return uint32(len(t.slots))
}

// Grow appends n empty slots and returns the index of the first one.
func (t *LocalTable) Grow(n uint32) (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := uint32(len(t.slots))
	t.slots = append(t.slots, make([]wasmffi.Callable, n)...)
	return idx, nil
}

// Set stores a callable at an existing slot index.
func (t *LocalTable) Set(index uint32, fn wasmffi.Callable) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index >= uint32(len(t.slots)) {
		return errors.OutOfBounds(errors.PhaseHost, uint64(index), uint64(len(t.slots)))
	}
	t.slots[index] = fn
	return nil
}

// Get returns the callable at index, or false for an out of range or
// empty slot.
func (t *LocalTable) Get(index uint32) (wasmffi.Callable, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if index >= uint32(len(t.slots)) || t.slots[index] == nil {
		return nil, false
	}
	return t.slots[index], true
}
