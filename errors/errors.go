package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAddress   Phase = "address"   // pointer construction and arithmetic
	PhaseSignature Phase = "signature" // signature registry and parsing
	PhaseMarshal   Phase = "marshal"   // argument/result conversion
	PhaseExport    Phase = "export"    // function pointer synthesis
	PhaseHost      Phase = "host"      // host memory/table/instantiation
	PhaseGenerate  Phase = "generate"  // build-time signature discovery
)

// Kind categorizes the error
type Kind string

const (
	KindBinding       Kind = "binding"       // no memory region resolvable
	KindUnsupported   Kind = "unsupported"   // operation on an unsized type tag
	KindArity         Kind = "arity"         // callable exceeds trampoline table
	KindInstantiation Kind = "instantiation" // module compile/instantiate failure
	KindOutOfBounds   Kind = "out_of_bounds" // memory or table index out of range
	KindRegistration  Kind = "registration"  // registry initialization misuse
	KindNotFound      Kind = "not_found"     // missing export or symbol
	KindInvalidData   Kind = "invalid_data"  // malformed module bytes or signature
	KindInvalidInput  Kind = "invalid_input" // caller-supplied argument rejected
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause     error
	Phase     Phase
	Kind      Kind
	Type      string // native type tag name, when relevant
	Signature string // canonical signature string, when relevant
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}
	if e.Signature != "" {
		if e.Type != "" {
			b.WriteString(", signature ")
		} else {
			b.WriteString(": signature ")
		}
		b.WriteString(e.Signature)
	}

	if e.Detail != "" {
		if e.Type != "" || e.Signature != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Type sets the native type tag name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Signature sets the canonical signature string
func (b *Builder) Signature(s string) *Builder {
	b.err.Signature = s
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Binding creates an unresolved-memory error
func Binding(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBinding,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, typeName, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Type:   typeName,
		Detail: what,
	}
}

// Arity creates an unsupported-arity error
func Arity(got, max int) *Error {
	return &Error{
		Phase:  PhaseExport,
		Kind:   KindArity,
		Detail: fmt.Sprintf("callable takes %d arguments, trampoline table supports at most %d", got, max),
	}
}

// Instantiation creates a module instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
	}
}

// Registration creates a registry misuse error
func Registration(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
