// Command pulsec compiles a single ".pulse" source file, writing the
// generated JavaScript (and, if any view used scoped styles, CSS) either
// to disk or to stdout.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vincenthirtz/pulse-js-framework-sub000/compiler"
	"github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"
)

func main() {
	var (
		out       = flag.String("out", "", "output file for generated code (default: stdout)")
		cssOut    = flag.String("css-out", "", "output file for extracted CSS (default: alongside -out with a .css extension, or stdout if -out is empty)")
		sourceMap = flag.Bool("sourcemap", false, "emit a source map alongside the generated code (to <out>.map, or stdout if -out is empty)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.pulse>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pulsec: %v\n", err)
		os.Exit(1)
	}

	result, err := compiler.Compile(string(src), compiler.Options{
		Filename:  path,
		SourceMap: *sourceMap,
	})
	if err != nil {
		reportError(err, string(src))
		os.Exit(1)
	}

	if err := writeOutput(result, *out, *cssOut); err != nil {
		fmt.Fprintf(os.Stderr, "pulsec: %v\n", err)
		os.Exit(1)
	}

	if *sourceMap && result.Map != nil {
		data, err := json.MarshalIndent(result.Map, "", "  ")
		if err == nil {
			if *out == "" {
				fmt.Fprintln(os.Stderr, "--- sourcemap ---")
				fmt.Println(string(data))
			} else {
				err = os.WriteFile(*out+".map", data, 0o644)
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "pulsec: %v\n", err)
			os.Exit(1)
		}
	}
}

func writeOutput(result *compiler.Result, out, cssOut string) error {
	if out == "" {
		fmt.Println(result.Code)
		if result.CSS != "" {
			if cssOut != "" {
				return os.WriteFile(cssOut, []byte(result.CSS), 0o644)
			}
			fmt.Fprintln(os.Stderr, "--- css ---")
			fmt.Println(result.CSS)
		}
		return nil
	}

	if err := os.WriteFile(out, []byte(result.Code), 0o644); err != nil {
		return err
	}
	if result.CSS == "" {
		return nil
	}

	if cssOut == "" {
		cssOut = strings.TrimSuffix(out, filepath.Ext(out)) + ".css"
	}
	return os.WriteFile(cssOut, []byte(result.CSS), 0o644)
}

func reportError(err error, src string) {
	var pe *pulseerr.Error
	if errors.As(err, &pe) {
		pe.WithSource(src)
		fmt.Fprintf(os.Stderr, "pulsec: %s: %s\n", pe.Code, pe.Message)
		if snippet := pe.Snippet(); snippet != "" {
			fmt.Fprintln(os.Stderr, snippet)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "pulsec: %v\n", err)
}
