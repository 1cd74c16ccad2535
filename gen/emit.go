package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dh0er/wasm-ffi/errors"
)

const (
	// DefaultOutputDir is where the generated registration package
	// lives unless the caller overrides it.
	DefaultOutputDir = "ffisig"

	signaturesFile = "signatures.gen.go"
	fallbackFile   = "signatures_fallback.gen.go"

	header = "// Code generated by ffigen. DO NOT EDIT.\n"

	marshalImport = "github.com/dh0er/wasm-ffi/marshal"
)

// Emit writes the registration routine for res into outDir, creating
// the directory if needed. The fallback file is always written so a
// caller can reference RegisterSignatures unconditionally; the
// registration file is written only when at least one signature was
// discovered. Output is deterministic: the same Result produces byte
// identical files.
func Emit(outDir string, res *Result) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "creating output directory")
	}
	pkg := filepath.Base(outDir)

	if err := writeFile(filepath.Join(outDir, fallbackFile), fallbackSource(pkg)); err != nil {
		return err
	}
	if len(res.Signatures) == 0 {
		// A previous run may have left a registration file behind;
		// zero discoveries must leave only the fallback.
		if err := os.Remove(filepath.Join(outDir, signaturesFile)); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "removing stale registration file")
		}
		return nil
	}
	return writeFile(filepath.Join(outDir, signaturesFile), signaturesSource(pkg, res.Signatures))
}

func fallbackSource(pkg string) []byte {
	var b bytes.Buffer
	b.WriteString(header)
	b.WriteString("\n//go:build !ffisignatures\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("// RegisterSignatures is a no-op on platforms where generated\n")
	b.WriteString("// signature registration is not used.\n")
	b.WriteString("func RegisterSignatures() error { return nil }\n")
	return b.Bytes()
}

func signaturesSource(pkg string, sigs []string) []byte {
	var b bytes.Buffer
	b.WriteString(header)
	b.WriteString("\n//go:build ffisignatures\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "import %q\n\n", marshalImport)
	b.WriteString("// RegisterSignatures installs a wrapper builder for every\n")
	b.WriteString("// signature discovered at generation time.\n")
	b.WriteString("func RegisterSignatures() error {\n")
	b.WriteString("\tfor _, sig := range signatures {\n")
	b.WriteString("\t\tif err := marshal.RegisterSignature(sig); err != nil {\n")
	b.WriteString("\t\t\treturn err\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn nil\n")
	b.WriteString("}\n\n")
	b.WriteString("var signatures = []string{\n")
	for _, sig := range sigs {
		fmt.Fprintf(&b, "\t%s,\n", strconv.Quote(sig))
	}
	b.WriteString("}\n")
	return b.Bytes()
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "writing "+path)
	}
	return nil
}
