package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:     PhaseMarshal,
				Kind:      KindInvalidData,
				Type:      "Uint8",
				Signature: "int Function(int)",
				Detail:    "cannot convert",
			},
			contains: []string{"[marshal]", "invalid_data", "Uint8", "int Function(int)", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseAddress,
				Kind:  KindBinding,
			},
			contains: []string{"[address]", "binding"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseHost,
				Kind:   KindInstantiation,
				Detail: "instantiate module",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[host]", "instantiation", "instantiate module", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseHost,
		Kind:  KindInstantiation,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseAddress,
		Kind:  KindUnsupported,
		Type:  "Void",
	}

	if !err.Is(&Error{Phase: PhaseAddress, Kind: KindUnsupported}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseExport, Kind: KindUnsupported}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseAddress, Kind: KindBinding}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseAddress, Kind: KindUnsupported}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseSignature, KindInvalidData).
		Type("Int32").
		Signature("void Function(Int32)").
		Cause(cause).
		Detail("expected %s, got %s", "type name", "garbage").
		Build()

	if err.Phase != PhaseSignature {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseSignature)
	}
	if err.Kind != KindInvalidData {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidData)
	}
	if err.Type != "Int32" {
		t.Errorf("Type = %v, want Int32", err.Type)
	}
	if err.Signature != "void Function(Int32)" {
		t.Errorf("Signature = %v", err.Signature)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected type name, got garbage" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Binding", func(t *testing.T) {
		err := Binding(PhaseAddress, "no default memory bound")
		if err.Kind != KindBinding {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBinding)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseAddress, "Void", "element offset")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
		if err.Type != "Void" {
			t.Errorf("Type = %v, want Void", err.Type)
		}
	})

	t.Run("Arity", func(t *testing.T) {
		err := Arity(8, 6)
		if err.Kind != KindArity {
			t.Errorf("Kind = %v, want %v", err.Kind, KindArity)
		}
		if !strings.Contains(err.Detail, "8") || !strings.Contains(err.Detail, "6") {
			t.Errorf("Detail = %v, should contain both arities", err.Detail)
		}
	})

	t.Run("Instantiation", func(t *testing.T) {
		cause := errors.New("bad magic")
		err := Instantiation(cause)
		if err.Kind != KindInstantiation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInstantiation)
		}
		if !errors.Is(err, Instantiation(nil)) {
			t.Error("errors.Is should match any instantiation error")
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseHost, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if !strings.Contains(err.Detail, "10") {
			t.Errorf("Detail = %v, should contain index", err.Detail)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseHost, "export", "f")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, `"f"`) {
			t.Errorf("Detail = %v, should quote the name", err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("io failure")
		err := Wrap(PhaseGenerate, KindInvalidData, cause, "read source")
		if !errors.Is(err, cause) {
			t.Error("wrapped error should match cause")
		}
	})
}
