package main

import (
	"encoding/json"
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostics"
	"lox/interpreter-go/pkg/driver"
)

func runTokens(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "lox tokens expects exactly one script")
		return driver.ExitUsage
	}
	source, code := readSource(args[0])
	if code != driver.ExitOK {
		return code
	}
	reporter := diagnostics.NewReporter(stderr)
	tokens := driver.Tokens(source, reporter)
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(tokens); err != nil {
		fmt.Fprintf(stderr, "lox tokens: %v\n", err)
		return driver.ExitIOErr
	}
	if reporter.HadError {
		return driver.ExitDataErr
	}
	return driver.ExitOK
}

func runAST(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "lox ast expects exactly one script")
		return driver.ExitUsage
	}
	source, code := readSource(args[0])
	if code != driver.ExitOK {
		return code
	}
	reporter := diagnostics.NewReporter(stderr)
	stmts := driver.ParseProgram(source, reporter)
	if reporter.HadError {
		return driver.ExitDataErr
	}
	if len(stmts) > 0 {
		fmt.Fprintln(stdout, ast.PrintStatements(stmts))
	}
	return driver.ExitOK
}
