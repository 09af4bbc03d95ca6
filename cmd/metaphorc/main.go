// Command metaphorc compiles a Metaphor source file to numbered plain
// text, per spec.md §6. Flag handling follows the teacher's
// cmd/llxgen/llxgen.go: package-level flag variables, a custom Usage,
// and a straight-line sequence of "if no error yet, do the next step"
// stages instead of deeply nested error handling.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ava12/metaphorc/parser"
	"github.com/ava12/metaphorc/render"
	"github.com/ava12/metaphorc/simplify"
)

var (
	outputFile string
	debug      bool
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: metaphorc [options] <file>")
		flag.PrintDefaults()
	}

	flag.StringVar(&outputFile, "o", "", "write output to `file`; default stdout")
	flag.StringVar(&outputFile, "outputFile", "", "write output to `file`; default stdout")
	flag.BoolVar(&debug, "d", false, `print "Debug mode is ON" and the parsed tree to stderr`)
	flag.BoolVar(&debug, "debug", false, `print "Debug mode is ON" and the parsed tree to stderr`)
	flag.Parse()

	if debug {
		fmt.Fprintln(os.Stderr, "Debug mode is ON")
	}

	inputFile := flag.Arg(0)
	if inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not open output file %s: %s\n", outputFile, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	ok, tree, errs, err := parser.New().Parse(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if !ok {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "----------------\n%s\n", e.Error())
		}
		fmt.Fprintln(os.Stderr, "----------------")
		os.Exit(2)
	}

	simplify.Tree(tree)
	if debug {
		fmt.Fprintln(os.Stderr, tree.DebugString())
	}
	if err := render.Tree(tree, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
