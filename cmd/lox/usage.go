package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lox [--trace]                 start the REPL")
	fmt.Fprintln(w, "  lox [--trace] <script.lox>    run a script")
	fmt.Fprintln(w, "  lox [--trace] run [script]    run a script, or lox.yml main")
	fmt.Fprintln(w, "  lox [--trace] repl")
	fmt.Fprintln(w, "  lox tokens <script.lox>       dump tokens as JSON")
	fmt.Fprintln(w, "  lox ast <script.lox>          print the syntax tree")
	fmt.Fprintln(w, "  lox test [dir]                run YAML conformance fixtures")
	fmt.Fprintln(w, "  lox --version")
}
