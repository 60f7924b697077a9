// Package fold implements the auxiliary expression optimizer (§4.7):
// folding maximal chains of additive `+` operators that mix numeric
// literals and names into a single constant at the innermost position.
package fold

import "github.com/saruga/jsopt/internal/ast"

// FoldAdditions runs the additive-chain folder over n in place, rewriting
// every `+` node reachable from n — not just ones in initializer
// position, so a call argument or return value built from a literal
// chain folds too.
func FoldAdditions(n ast.Node) {
	ast.Walk(n, visitFold)
}

// FoldBody runs FoldAdditions over every statement of a function body.
func FoldBody(body []ast.Node) {
	ast.Walk(&ast.Block{Body: body}, visitFold)
}

func visitFold(n ast.Node) (ast.Node, ast.Action) {
	bin, ok := n.(*ast.Binary)
	if !ok || bin.Op != "+" {
		return nil, ast.ActionContinue
	}
	folded, ok := foldAdditionChain(bin)
	if !ok {
		return nil, ast.ActionContinue
	}
	return folded, ast.ActionReplace
}

// foldAdditionChain gathers the maximal chain of `+` operands rooted at
// bin. It aborts (ok=false) if the chain contains any subnode that is not
// a num, a name, or a further `+` binary — in particular any other
// operator anywhere in the chain — or if the chain has no literal
// operand at all (nothing to fold).
func foldAdditionChain(bin *ast.Binary) (ast.Node, bool) {
	var sum float64
	hasLiteral := false
	var names []string
	if !gatherAdditionOperands(bin, &sum, &hasLiteral, &names) || !hasLiteral {
		return nil, false
	}

	var result ast.Node = &ast.Num{Value: sum}
	for _, name := range names {
		result = &ast.Binary{Op: "+", Left: result, Right: &ast.Name{Value: name}}
	}
	return result, true
}

func gatherAdditionOperands(n ast.Node, sum *float64, hasLiteral *bool, names *[]string) bool {
	switch x := n.(type) {
	case *ast.Num:
		*sum += x.Value
		*hasLiteral = true
		return true
	case *ast.Name:
		*names = append(*names, x.Value)
		return true
	case *ast.Binary:
		if x.Op != "+" {
			return false
		}
		if !gatherAdditionOperands(x.Left, sum, hasLiteral, names) {
			return false
		}
		return gatherAdditionOperands(x.Right, sum, hasLiteral, names)
	default:
		return false
	}
}
