package ast

// Clone returns a deep copy of n. The rewriter uses this when splicing an
// eliminated binding's initializer into more than one use site: the
// purity invariant on initializers makes sharing the same subtree safe
// for semantics, but a shared subtree is still one value — mutating it at
// one use site (as a later pass might) would be visible at every other
// use site, so Clone is used instead of sharing.
func Clone(n Node) Node {
	switch x := n.(type) {
	case nil:
		return nil

	case *Toplevel:
		return &Toplevel{Body: cloneList(x.Body)}
	case *Defun:
		return &Defun{Name: x.Name, Params: append([]string(nil), x.Params...), Body: cloneList(x.Body)}
	case *Function:
		return &Function{Name: x.Name, Params: append([]string(nil), x.Params...), Body: cloneList(x.Body)}
	case *Block:
		return &Block{Body: cloneList(x.Body)}
	case *Var:
		defs := make([]*VarDef, len(x.Defs))
		for i, d := range x.Defs {
			defs[i] = &VarDef{Name: d.Name, Value: Clone(d.Value)}
		}
		return &Var{Defs: defs}
	case *ExprStatement:
		return &ExprStatement{X: Clone(x.X)}
	case *If:
		return &If{Cond: Clone(x.Cond), Then: Clone(x.Then), Else: Clone(x.Else)}
	case *Switch:
		cases := make([]*CaseClause, len(x.Cases))
		for i, c := range x.Cases {
			cases[i] = &CaseClause{Test: Clone(c.Test), Body: cloneList(c.Body)}
		}
		return &Switch{Disc: Clone(x.Disc), Cases: cases}
	case *Try:
		var catch *Catch
		if x.Catch != nil {
			catch = &Catch{Param: x.Catch.Param, Body: cloneList(x.Catch.Body)}
		}
		return &Try{Body: cloneList(x.Body), Catch: catch, Finally: cloneList(x.Finally)}
	case *Do:
		return &Do{Body: Clone(x.Body), Cond: Clone(x.Cond)}
	case *While:
		return &While{Cond: Clone(x.Cond), Body: Clone(x.Body)}
	case *For:
		return &For{Init: Clone(x.Init), Cond: Clone(x.Cond), Step: Clone(x.Step), Body: Clone(x.Body)}
	case *ForIn:
		return &ForIn{Init: Clone(x.Init), Object: Clone(x.Object), Body: Clone(x.Body)}
	case *Return:
		return &Return{Value: Clone(x.Value)}
	case *Throw:
		return &Throw{Value: Clone(x.Value)}
	case *Label:
		return &Label{Name: x.Name, Body: Clone(x.Body)}
	case *Break:
		return &Break{Label: x.Label}
	case *Continue:
		return &Continue{Label: x.Label}
	case *Debugger:
		return &Debugger{}
	case *Empty:
		return &Empty{}

	case *Name:
		return &Name{Value: x.Value}
	case *Num:
		return &Num{Value: x.Value}
	case *String:
		return &String{Value: x.Value}
	case *Binary:
		return &Binary{Op: x.Op, Left: Clone(x.Left), Right: Clone(x.Right)}
	case *UnaryPrefix:
		return &UnaryPrefix{Op: x.Op, X: Clone(x.X)}
	case *UnaryPostfix:
		return &UnaryPostfix{Op: x.Op, X: Clone(x.X)}
	case *Sub:
		return &Sub{Expr: Clone(x.Expr), Property: Clone(x.Property)}
	case *Assign:
		return &Assign{Op: x.Op, Left: Clone(x.Left), Right: Clone(x.Right)}
	case *Call:
		return &Call{Func: Clone(x.Func), Args: cloneList(x.Args)}
	case *New:
		return &New{Func: Clone(x.Func), Args: cloneList(x.Args)}

	default:
		panic(fmtUnexpectedKind(n))
	}
}

func cloneList(list []Node) []Node {
	if list == nil {
		return nil
	}
	out := make([]Node, len(list))
	for i, n := range list {
		out[i] = Clone(n)
	}
	return out
}
