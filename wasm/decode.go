package wasm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dh0er/wasm-ffi/wasm/internal/binary"
)

// Decode parses the section subset this package encodes. The host side
// uses it to recover the imported function types of a synthesized
// module before instantiation. Unknown sections are skipped by length.
func Decode(data []byte) (*Module, error) {
	r := binary.NewReader(bytes.NewReader(data))

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if magic != Magic {
		return nil, r.WrapError("header", fmt.Errorf("bad magic %#x", magic))
	}
	version, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if version != Version {
		return nil, r.WrapError("header", fmt.Errorf("unsupported version %d", version))
	}

	m := &Module{}
	for {
		id, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return m, nil
			}
			return nil, r.WrapError("section", err)
		}
		size, err := r.ReadU32()
		if err != nil {
			return nil, r.WrapError("section", err)
		}

		switch id {
		case SectionType:
			err = decodeTypeSection(r, m)
		case SectionImport:
			err = decodeImportSection(r, m)
		case SectionMemory:
			err = decodeMemorySection(r, m)
		case SectionExport:
			err = decodeExportSection(r, m)
		default:
			_, err = r.ReadBytes(int(size))
		}
		if err != nil {
			return nil, err
		}
	}
}

func decodeTypeSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return r.WrapError("type", err)
	}
	for i := uint32(0); i < count; i++ {
		form, err := r.ReadByte()
		if err != nil {
			return r.WrapError("type", err)
		}
		if form != FuncTypeByte {
			return r.WrapError("type", fmt.Errorf("unsupported type form %#x", form))
		}
		params, err := readValTypes(r)
		if err != nil {
			return r.WrapError("type", err)
		}
		results, err := readValTypes(r)
		if err != nil {
			return r.WrapError("type", err)
		}
		m.Types = append(m.Types, FuncType{Params: params, Results: results})
	}
	return nil
}

func decodeImportSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return r.WrapError("import", err)
	}
	for i := uint32(0); i < count; i++ {
		mod, err := r.ReadName()
		if err != nil {
			return r.WrapError("import", err)
		}
		name, err := r.ReadName()
		if err != nil {
			return r.WrapError("import", err)
		}
		kind, err := r.ReadByte()
		if err != nil {
			return r.WrapError("import", err)
		}
		if kind != KindFunc {
			return r.WrapError("import", fmt.Errorf("unsupported import kind %d", kind))
		}
		typeIdx, err := r.ReadU32()
		if err != nil {
			return r.WrapError("import", err)
		}
		m.Imports = append(m.Imports, Import{Module: mod, Name: name, TypeIdx: typeIdx})
	}
	return nil
}

func decodeMemorySection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return r.WrapError("memory", err)
	}
	for i := uint32(0); i < count; i++ {
		flags, err := r.ReadByte()
		if err != nil {
			return r.WrapError("memory", err)
		}
		min, err := r.ReadU32()
		if err != nil {
			return r.WrapError("memory", err)
		}
		lim := Limits{Min: min}
		if flags&LimitsHasMax != 0 {
			max, err := r.ReadU32()
			if err != nil {
				return r.WrapError("memory", err)
			}
			lim.Max = &max
		}
		m.Memories = append(m.Memories, lim)
	}
	return nil
}

func decodeExportSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return r.WrapError("export", err)
	}
	for i := uint32(0); i < count; i++ {
		name, err := r.ReadName()
		if err != nil {
			return r.WrapError("export", err)
		}
		kind, err := r.ReadByte()
		if err != nil {
			return r.WrapError("export", err)
		}
		idx, err := r.ReadU32()
		if err != nil {
			return r.WrapError("export", err)
		}
		m.Exports = append(m.Exports, Export{Name: name, Kind: kind, Idx: idx})
	}
	return nil
}

func readValTypes(r *binary.Reader) ([]ValType, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	types := make([]ValType, 0, count)
	for i := uint32(0); i < count; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		switch ValType(b) {
		case ValI32, ValI64, ValF32, ValF64:
			types = append(types, ValType(b))
		default:
			return nil, fmt.Errorf("unsupported value type %#x", b)
		}
	}
	return types, nil
}
