package abi

// Kind enumerates the closed set of native type tag kinds.
type Kind uint8

const (
	KindVoid Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindIntPtr
	KindFloat
	KindDouble
	KindBool
	KindUtf8
	KindHandle
	KindFunc
	KindPtr
	KindOpaque // unrecognized marker kept by name
)

// Type is a native type tag. Tags carry no runtime state; they exist to
// select byte width and host value-type code.
type Type struct {
	Kind Kind
	Elem *Type  // element tag for KindPtr
	name string // raw name for KindOpaque
}

// Predefined concrete tags.
var (
	Void       = Type{Kind: KindVoid}
	Int8       = Type{Kind: KindInt8}
	Int16      = Type{Kind: KindInt16}
	Int32      = Type{Kind: KindInt32}
	Int64      = Type{Kind: KindInt64}
	Uint8      = Type{Kind: KindUint8}
	Uint16     = Type{Kind: KindUint16}
	Uint32     = Type{Kind: KindUint32}
	Uint64     = Type{Kind: KindUint64}
	IntPtr     = Type{Kind: KindIntPtr}
	Float      = Type{Kind: KindFloat}
	Double     = Type{Kind: KindDouble}
	Bool       = Type{Kind: KindBool}
	Utf8       = Type{Kind: KindUtf8}
	Handle     = Type{Kind: KindHandle}
	NativeFunc = Type{Kind: KindFunc}
)

// Ptr returns the pointer-to-elem tag.
func Ptr(elem Type) Type {
	e := elem
	return Type{Kind: KindPtr, Elem: &e}
}

// Opaque returns a tag for a marker name outside the closed set. Such
// tags resolve to the permissive 'i' value-type code.
func Opaque(name string) Type {
	return Type{Kind: KindOpaque, name: name}
}

// String returns the canonical tag name.
func (t Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUint8:
		return "Uint8"
	case KindUint16:
		return "Uint16"
	case KindUint32:
		return "Uint32"
	case KindUint64:
		return "Uint64"
	case KindIntPtr:
		return "IntPtr"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindBool:
		return "Bool"
	case KindUtf8:
		return "Utf8"
	case KindHandle:
		return "Handle"
	case KindFunc:
		return "NativeFunction"
	case KindPtr:
		return "Pointer<" + t.Elem.String() + ">"
	case KindOpaque:
		return t.name
	default:
		return "unknown"
	}
}

// Sized reports whether the tag has a byte width. Void and function
// markers are unsized.
func (t Type) Sized() bool {
	switch t.Kind {
	case KindVoid, KindFunc:
		return false
	default:
		return true
	}
}

// Size returns the byte width of the tag for the given pointer width.
// The second return is false for unsized tags.
func (t Type) Size(pointerWidth uint32) (uint32, bool) {
	switch t.Kind {
	case KindInt8, KindUint8, KindBool, KindUtf8:
		return 1, true
	case KindInt16, KindUint16:
		return 2, true
	case KindInt32, KindUint32, KindFloat:
		return 4, true
	case KindInt64, KindUint64, KindDouble:
		return 8, true
	case KindIntPtr, KindHandle, KindPtr:
		return pointerWidth, true
	case KindOpaque:
		return pointerWidth, true
	default:
		return 0, false
	}
}
