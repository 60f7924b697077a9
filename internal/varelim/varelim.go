package varelim

import "github.com/saruga/jsopt/internal/ast"

// Stats summarizes one run of the analysis over a function body, beyond
// the bare eliminated count the optimize_function contract (§6) returns.
type Stats struct {
	Scanned            int // local bindings seen by the basic scan
	Eliminated         int
	KeptConservatively int // local, single-def bindings the live-range or purity checks vetoed
}

// Result carries the full binding table alongside the summary stats, for
// callers that want more than the raw eliminated count — cmd/jsopt's
// --stats flag in particular.
type Result struct {
	Table *Table
	Stats Stats
}

// Analyze runs every pass over body in order and rewrites it in place,
// returning the full table and summary statistics.
func Analyze(body []ast.Node) *Result {
	t := Scan(body)
	AnalyzeInitializers(t)
	Closure(t)
	AnalyzeLiveRange(t, body)

	eliminable := collectEliminable(t)
	n := Rewrite(t, body, eliminable)

	scanned := 0
	singleDefLocals := 0
	for _, b := range t.Bindings {
		if b.IsLocal {
			scanned++
		}
		if b.IsLocal && b.IsSingleDef {
			singleDefLocals++
		}
	}

	return &Result{
		Table: t,
		Stats: Stats{
			Scanned:            scanned,
			Eliminated:         n,
			KeptConservatively: singleDefLocals - n,
		},
	}
}

// OptimizeFunction runs the full variable-elimination pipeline over body,
// rewriting it in place, and returns the number of bindings eliminated —
// the exact signature the specification's external interface (§6) names.
func OptimizeFunction(body []ast.Node) int {
	return Analyze(body).Stats.Eliminated
}
