package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dh0er/wasm-ffi/gen"
)

func main() {
	out := flag.String("o", gen.DefaultOutputDir, "Output directory for the generated registration package")
	flag.Parse()

	if err := run(".", *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(src, out string) error {
	res, err := gen.Scan(src)
	if err != nil {
		return err
	}
	if err := gen.Emit(out, res); err != nil {
		return err
	}
	fmt.Printf("ffigen: %d signature(s) -> %s\n", len(res.Signatures), out)
	return nil
}
