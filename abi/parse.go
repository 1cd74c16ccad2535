package abi

import (
	"regexp"
	"strings"

	"github.com/dh0er/wasm-ffi/errors"
)

// Signature strings are the lookup keys shared by the wrapper registry
// and the build-time generator. The host runtime cannot compare generic
// type parameters by identity, so two textually different spellings of
// the same signature must canonicalize to the same key.

var (
	wsRE     = regexp.MustCompile(`\s+`)
	fnRE     = regexp.MustCompile(`([^\s(])Function\(`)
	casingRE = regexp.MustCompile(`\b(u?int(8|16|32|64)|intptr)\b`)
)

// casingFix corrects lowercase integer-width tag spellings to the
// canonical capitalized tags.
var casingFix = map[string]string{
	"int8":   "Int8",
	"int16":  "Int16",
	"int32":  "Int32",
	"int64":  "Int64",
	"uint8":  "Uint8",
	"uint16": "Uint16",
	"uint32": "Uint32",
	"uint64": "Uint64",
	"intptr": "IntPtr",
}

// CanonicalizeSignature normalizes a signature string into its registry
// key form: whitespace collapsed, the redundant "ffi." qualifier
// stripped, and integer-width tag casing corrected.
func CanonicalizeSignature(s string) string {
	s = wsRE.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "ffi.", "")
	s = strings.ReplaceAll(s, ",", ", ")
	s = fnRE.ReplaceAllString(s, "$1 Function(")
	s = casingRE.ReplaceAllStringFunc(s, func(m string) string {
		return casingFix[m]
	})
	return s
}

// ParseSignature parses a canonical signature string of the form
// "Ret Function(P1, P2)" into its return and parameter tags. The
// parameter list is split depth-aware so nested Pointer<...> arguments
// survive intact. Unrecognized type names become opaque tags rather
// than errors; they resolve through the permissive 'i' fallback.
func ParseSignature(s string) (ret Type, params []Type, err error) {
	s = CanonicalizeSignature(s)

	idx := strings.Index(s, " Function(")
	if idx < 0 || !strings.HasSuffix(s, ")") {
		return Void, nil, errors.New(errors.PhaseSignature, errors.KindInvalidData).
			Signature(s).
			Detail("expected \"Ret Function(...)\"").
			Build()
	}

	ret = parseTypeName(s[:idx])
	inner := s[idx+len(" Function(") : len(s)-1]
	if inner == "" {
		return ret, nil, nil
	}

	for _, part := range splitTopLevel(inner) {
		params = append(params, parseTypeName(part))
	}
	return ret, params, nil
}

// splitTopLevel splits a comma-separated list, treating '<' and '>' as
// nesting delimiters so commas inside generic arguments do not split.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

var tagsByName = map[string]Type{
	"void":           Void,
	"Void":           Void,
	"Int8":           Int8,
	"Int16":          Int16,
	"Int32":          Int32,
	"Int64":          Int64,
	"Uint8":          Uint8,
	"Uint16":         Uint16,
	"Uint32":         Uint32,
	"Uint64":         Uint64,
	"IntPtr":         IntPtr,
	"Float":          Float,
	"Double":         Double,
	"Bool":           Bool,
	"Utf8":           Utf8,
	"Handle":         Handle,
	"NativeFunction": NativeFunc,

	// host-language aliases
	"int":    Int64,
	"double": Double,
	"bool":   Bool,
}

func parseTypeName(name string) Type {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "Pointer<") && strings.HasSuffix(name, ">") {
		return Ptr(parseTypeName(name[len("Pointer<") : len(name)-1]))
	}
	if t, ok := tagsByName[name]; ok {
		return t
	}
	return Opaque(name)
}
