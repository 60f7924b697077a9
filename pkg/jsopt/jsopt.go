// Package jsopt is the public API for the variable-elimination optimizer.
// It wraps internal/varelim, internal/fold, internal/parser,
// internal/printer, and internal/directive into the whole-file operation
// the CLI (cmd/jsopt) exposes, mirroring how this tool's teacher wraps
// its own internal minifier behind a small public surface.
package jsopt

import (
	"fmt"
	"strings"

	"github.com/saruga/jsopt/internal/ast"
	"github.com/saruga/jsopt/internal/directive"
	"github.com/saruga/jsopt/internal/fold"
	"github.com/saruga/jsopt/internal/parser"
	"github.com/saruga/jsopt/internal/printer"
	"github.com/saruga/jsopt/internal/varelim"
)

// OptimizeFunction runs the core variable-elimination pipeline over body
// in place and returns the number of bindings eliminated. This is the
// exact optimize_function contract from §6 — re-exported here so
// programmatic callers don't need to reach into internal/varelim.
func OptimizeFunction(body []ast.Node) int {
	return varelim.OptimizeFunction(body)
}

// FoldAdditions folds additive chains of literals and names reachable
// from node, in place.
func FoldAdditions(node ast.Node) {
	fold.FoldAdditions(node)
}

// FunctionResult reports the outcome for one optimized top-level
// function.
type FunctionResult struct {
	Name       string
	Eliminated int
}

// Result is the outcome of running OptimizeSource over a whole file.
type Result struct {
	Code       string
	Eliminated int
	Functions  []FunctionResult
}

// OptimizeSource runs the whole CLI-level pipeline (§6) over src: it
// locates the generated-functions marker, optimizes and folds the body
// of every top-level function named there, reprints the program one
// top-level child at a time, collapses blank-line runs, and re-emits the
// marker line using its original name list so the output stays
// self-describing.
//
// A source with no marker line is returned unchanged — nothing is
// eligible, which is not an error.
func OptimizeSource(src string) (Result, error) {
	dir, found, err := directive.Find(src)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{Code: src}, nil
	}

	prog, err := parser.ParseString(src)
	if err != nil {
		return Result{}, fmt.Errorf("jsopt: %w", err)
	}

	generated := directive.NewSet(dir.Names)
	var functions []FunctionResult
	total := 0
	for _, child := range prog.Body {
		body, name, ok := functionBody(child)
		if !ok || !generated[name] {
			continue
		}
		n := varelim.OptimizeFunction(body)
		fold.FoldBody(body)
		total += n
		functions = append(functions, FunctionResult{Name: name, Eliminated: n})
	}

	var out strings.Builder
	for _, part := range printer.PrintTopLevelChildren(prog) {
		out.WriteString(part)
	}
	markerLine, err := directive.Format(dir.Names)
	if err != nil {
		return Result{}, err
	}

	code := printer.CollapseBlankLines(out.String()) + markerLine + "\n"
	return Result{Code: code, Eliminated: total, Functions: functions}, nil
}

func functionBody(n ast.Node) ([]ast.Node, string, bool) {
	switch x := n.(type) {
	case *ast.Defun:
		return x.Body, x.Name, true
	case *ast.Function:
		return x.Body, x.Name, true
	default:
		return nil, "", false
	}
}
