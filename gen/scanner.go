package gen

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dh0er/wasm-ffi/abi"
	"github.com/dh0er/wasm-ffi/errors"
)

const (
	// annotationMarker precedes a declaration and carries a literal
	// signature string.
	annotationMarker = "//ffi:signature"

	// sweepMarker anywhere in a file enables the whole-file sweep for
	// lookupFunction call sites.
	sweepMarker = "//ffi:scan"

	// sweepToken is the call-style token the sweep looks for. The
	// generic argument list that follows it is the signature.
	sweepToken = "lookupFunction"
)

var annotationRE = regexp.MustCompile(`(?m)^[ \t]*//ffi:signature[ \t]+(.+)$`)

// Result is the outcome of a scan: canonical signature strings,
// deduplicated and sorted.
type Result struct {
	Signatures []string
}

// Scan walks the source tree under root and collects signatures from
// both discovery modes. Hidden and underscore-prefixed directories,
// testdata, and vendor trees are skipped, as are the generator's own
// output files. Malformed signature text is not rejected here; it is
// canonicalized as-is and would only surface as a registry miss at
// resolve time.
func Scan(root string) (*Result, error) {
	set := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if name == signaturesFile || name == fallbackFile {
			return nil
		}
		if !strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, ".dart") {
			return nil
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		scanFile(string(src), set)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseGenerate, errors.KindInvalidInput, err, "scanning sources")
	}

	out := make([]string, 0, len(set))
	for sig := range set {
		out = append(out, sig)
	}
	sort.Strings(out)
	return &Result{Signatures: out}, nil
}

func scanFile(src string, set map[string]struct{}) {
	for _, m := range annotationRE.FindAllStringSubmatch(src, -1) {
		add(set, m[1])
	}
	if strings.Contains(src, sweepMarker) {
		sweep(src, set)
	}
}

// sweep finds every "lookupFunction<...>()" occurrence, capturing the
// generic argument text between depth-matched angle brackets. The
// empty call immediately after the closing bracket is required so
// that mentions of the token in other positions do not register
// signatures.
func sweep(src string, set map[string]struct{}) {
	for i := 0; ; {
		j := strings.Index(src[i:], sweepToken)
		if j < 0 {
			return
		}
		pos := i + j + len(sweepToken)
		i = pos
		if pos >= len(src) || src[pos] != '<' {
			continue
		}

		depth := 0
		end := -1
		for k := pos; k < len(src); k++ {
			switch src[k] {
			case '<':
				depth++
			case '>':
				depth--
				if depth == 0 {
					end = k
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			return
		}
		if !strings.HasPrefix(src[end+1:], "()") {
			i = end + 1
			continue
		}
		add(set, src[pos+1:end])
		i = end + 3
	}
}

func add(set map[string]struct{}, raw string) {
	sig := abi.CanonicalizeSignature(raw)
	if sig == "" {
		return
	}
	set[sig] = struct{}{}
}
