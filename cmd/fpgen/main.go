// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command fpgen generates the C++ implementation of a fragment processor.
//
// Usage:
//
//	fpgen [options] <input.json>
//
// Examples:
//
//	fpgen GrBlur.json                  # Generate to stdout
//	fpgen -o GrBlur.cpp GrBlur.json    # Generate to file
//	fpgen -name Blur program.json      # Explicit processor name
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gogpu/fpgen"
	"github.com/gogpu/fpgen/cpp"
)

var (
	output  = flag.String("o", "", "output file (default: stdout)")
	name    = flag.String("name", "", "processor name (default: derived from input file)")
	prefix  = flag.String("prefix", "Gr", "processor class prefix")
	checked = flag.Bool("checked", false, "report out-of-range builtin indices")
	version = flag.Bool("version", false, "print version")
)

const fpgenVersion = "0.1.0-dev"

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("fpgen version %s\n", fpgenVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	program, err := fpgen.Decode(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding program: %v\n", err)
		os.Exit(1)
	}

	opts := generateOptions(*prefix, *checked)
	processor := *name
	if processor == "" {
		processor = fpgen.ProcessorName(inputPath, *prefix)
	}

	code, err := fpgen.GenerateWithOptions(program, processor, opts)
	if err != nil {
		var diags cpp.Diagnostics
		if errors.As(err, &diags) {
			fmt.Fprint(os.Stderr, colorize(diags.FormatAll(program.Source)))
			fmt.Fprintf(os.Stderr, "%d error(s)\n", diags.Len())
		} else {
			fmt.Fprintf(os.Stderr, "Generation error: %v\n", err)
		}
		os.Exit(1)
	}

	if *output != "" {
		err = os.WriteFile(*output, []byte(code), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully generated %s from %s (%d bytes)\n", *output, inputPath, len(code))
	} else {
		_, err = os.Stdout.WriteString(code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	}
}

// generateOptions builds generator options from the command line. The GLSL
// class prefix follows the class prefix: "Gr" gives "GrGLSL".
func generateOptions(classPrefix string, checked bool) cpp.Options {
	opts := cpp.DefaultOptions()
	opts.ClassPrefix = classPrefix
	opts.GLSLPrefix = classPrefix + "GLSL"
	if checked {
		opts.IndexPolicy = cpp.IndexChecked
	}
	return opts
}

// colorize highlights the "error:" labels when stderr is a terminal.
func colorize(report string) string {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return report
	}
	return strings.ReplaceAll(report, "error:", colorRed+"error:"+colorReset)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: fpgen [options] <input.json>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  fpgen GrBlur.json                Generate to stdout\n")
	fmt.Fprintf(os.Stderr, "  fpgen -o GrBlur.cpp GrBlur.json  Generate to file\n")
}
