package engine

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/dh0er/wasm-ffi/errors"
	"github.com/dh0er/wasm-ffi/wasm"
)

const memoryExportName = "memory"

// Memory adapts an api.Memory to the Memory interface. Read returns
// a window aliasing the underlying buffer, so writes through the
// slice are visible to the instance.
type Memory struct {
	mem api.Memory
}

// WrapMemory wraps an existing wazero memory, typically the exported
// memory of an instance loaded elsewhere.
func WrapMemory(m api.Memory) *Memory {
	return &Memory{mem: m}
}

// NewMemory instantiates a module that declares and exports a single
// linear memory, and returns the exported memory. minPages and
// maxPages are in 64KB units; maxPages may be nil for no declared
// maximum.
func (e *Engine) NewMemory(ctx context.Context, minPages uint32, maxPages *uint32) (*Memory, error) {
	mod := &wasm.Module{
		Memories: []wasm.Limits{{Min: minPages, Max: maxPages}},
		Exports:  []wasm.Export{{Name: memoryExportName, Kind: wasm.KindMemory, Idx: 0}},
	}

	// Anonymous modules collide on the empty name, so give each
	// memory instance a name of its own.
	name := fmt.Sprintf("ffi-memory-%d", e.memCount.Add(1))
	inst, err := e.runtime.InstantiateWithConfig(ctx, mod.Encode(), wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	m := inst.ExportedMemory(memoryExportName)
	if m == nil {
		return nil, errors.NotFound(errors.PhaseHost, "export", memoryExportName)
	}
	return &Memory{mem: m}, nil
}

func (m *Memory) oob(offset, length uint32) error {
	return errors.OutOfBounds(errors.PhaseAddress, uint64(offset)+uint64(length), uint64(m.mem.Size()))
}

func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	b, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, m.oob(offset, length)
	}
	return b, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return m.oob(offset, uint32(len(data)))
	}
	return nil
}

func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, m.oob(offset, 1)
	}
	return v, nil
}

func (m *Memory) ReadU16(offset uint32) (uint16, error) {
	v, ok := m.mem.ReadUint16Le(offset)
	if !ok {
		return 0, m.oob(offset, 2)
	}
	return v, nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, m.oob(offset, 4)
	}
	return v, nil
}

func (m *Memory) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, m.oob(offset, 8)
	}
	return v, nil
}

func (m *Memory) WriteU8(offset uint32, v uint8) error {
	if !m.mem.WriteByte(offset, v) {
		return m.oob(offset, 1)
	}
	return nil
}

func (m *Memory) WriteU16(offset uint32, v uint16) error {
	if !m.mem.WriteUint16Le(offset, v) {
		return m.oob(offset, 2)
	}
	return nil
}

func (m *Memory) WriteU32(offset uint32, v uint32) error {
	if !m.mem.WriteUint32Le(offset, v) {
		return m.oob(offset, 4)
	}
	return nil
}

func (m *Memory) WriteU64(offset uint32, v uint64) error {
	if !m.mem.WriteUint64Le(offset, v) {
		return m.oob(offset, 8)
	}
	return nil
}

// Buffer returns the whole linear memory as an aliasing slice. The
// slice is invalidated by memory growth.
func (m *Memory) Buffer() ([]byte, error) {
	return m.Read(0, m.mem.Size())
}

func (m *Memory) Size() uint32 {
	return m.mem.Size()
}
