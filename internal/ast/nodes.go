package ast

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// Toplevel is the root of a parsed program: an ordered list of top-level
// statements (function declarations, var statements, expression
// statements, ...).
type Toplevel struct {
	Body []Node
}

func (*Toplevel) Kind() Kind { return KindToplevel }

// Defun is a named function declaration: `function name(params) { body }`
// used as a statement.
type Defun struct {
	Name   string
	Params []string
	Body   []Node
}

func (*Defun) Kind() Kind { return KindDefun }

// Function is a function expression. It may carry a Name (a named
// function expression) or be anonymous.
type Function struct {
	Name   string
	Params []string
	Body   []Node
}

func (*Function) Kind() Kind { return KindFunction }

// Block is a brace-delimited statement list, used as the body of if/while/
// for/... constructs.
type Block struct {
	Body []Node
}

func (*Block) Kind() Kind { return KindBlock }

// VarDef is one name/initializer pair inside a Var node. It is not itself
// a Node — the walker never visits a VarDef directly, only the
// initializer expression it holds — but it is exported because the
// variable-elimination analysis keeps a pointer back to it.
type VarDef struct {
	Name  string
	Value Node // nil if the declaration has no initializer
}

// Var is a `var` declaration statement, one or more comma-separated
// bindings.
type Var struct {
	Defs []*VarDef
}

func (*Var) Kind() Kind { return KindVar }

// ExprStatement wraps an expression used in statement position, e.g. a
// bare call or assignment followed by a semicolon.
type ExprStatement struct {
	X Node
}

func (*ExprStatement) Kind() Kind { return KindExprStatement }

// If is an if/else statement. Else is nil when there is no else branch.
type If struct {
	Cond Node
	Then Node
	Else Node
}

func (*If) Kind() Kind { return KindIf }

// CaseClause is one `case expr:` or `default:` arm of a Switch. Test is
// nil for the default clause.
type CaseClause struct {
	Test Node
	Body []Node
}

// Switch is a switch statement.
type Switch struct {
	Disc  Node
	Cases []*CaseClause
}

func (*Switch) Kind() Kind { return KindSwitch }

// Catch is the catch clause of a Try. Param is "" if the catch binds no
// exception variable.
type Catch struct {
	Param string
	Body  []Node
}

// Try is a try/catch/finally statement. Catch and Finally are both
// optional (either may be nil, but not both, in well-formed input).
type Try struct {
	Body    []Node
	Catch   *Catch
	Finally []Node
}

func (*Try) Kind() Kind { return KindTry }

// Do is a do/while loop.
type Do struct {
	Body Node
	Cond Node
}

func (*Do) Kind() Kind { return KindDo }

// While is a while loop.
type While struct {
	Cond Node
	Body Node
}

func (*While) Kind() Kind { return KindWhile }

// For is a C-style for loop. Init may be a *Var, an expression, or nil.
// Cond and Step may be nil.
type For struct {
	Init Node
	Cond Node
	Step Node
	Body Node
}

func (*For) Kind() Kind { return KindFor }

// ForIn is a for-in loop. Init is the iteration binding: a *Var (whose
// single declared name receives each key) or a bare *Name when the
// binding already exists.
type ForIn struct {
	Init   Node
	Object Node
	Body   Node
}

func (*ForIn) Kind() Kind { return KindForIn }

// Return is a return statement. Value is nil for a bare `return;`.
type Return struct {
	Value Node
}

func (*Return) Kind() Kind { return KindReturn }

// Throw is a throw statement.
type Throw struct {
	Value Node
}

func (*Throw) Kind() Kind { return KindThrow }

// Label is a labeled statement: `name: stmt`.
type Label struct {
	Name string
	Body Node
}

func (*Label) Kind() Kind { return KindLabel }

// Break is a break statement, optionally targeting a label.
type Break struct {
	Label string
}

func (*Break) Kind() Kind { return KindBreak }

// Continue is a continue statement, optionally targeting a label.
type Continue struct {
	Label string
}

func (*Continue) Kind() Kind { return KindContinue }

// Debugger is a `debugger;` statement.
type Debugger struct{}

func (*Debugger) Kind() Kind { return KindDebugger }

// Empty is a no-op placeholder statement. The rewriter substitutes it for
// a Var declaration whose every binding has been eliminated.
type Empty struct{}

func (*Empty) Kind() Kind { return KindEmpty }

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// Name is an identifier reference, including the literal "undefined"
// synthesized for declarations without an initializer.
type Name struct {
	Value string
}

func (*Name) Kind() Kind { return KindName }

// Num is a numeric literal.
type Num struct {
	Value float64
}

func (*Num) Kind() Kind { return KindNum }

// String is a string literal.
type String struct {
	Value string
}

func (*String) Kind() Kind { return KindString }

// Binary is a binary operator expression.
type Binary struct {
	Op    string
	Left  Node
	Right Node
}

func (*Binary) Kind() Kind { return KindBinary }

// UnaryPrefix is a prefix unary expression: `!x`, `-x`, `++x`, `typeof x`, ...
type UnaryPrefix struct {
	Op string
	X  Node
}

func (*UnaryPrefix) Kind() Kind { return KindUnaryPrefix }

// UnaryPostfix is a postfix unary expression: `x++`, `x--`.
type UnaryPostfix struct {
	Op string
	X  Node
}

func (*UnaryPostfix) Kind() Kind { return KindUnaryPostfix }

// Sub is a subscript (indexing) expression: `expr[property]`.
type Sub struct {
	Expr     Node
	Property Node
}

func (*Sub) Kind() Kind { return KindSub }

// Assign is an assignment expression: `left op right`, where op is "=",
// "+=", "-=", etc.
type Assign struct {
	Op    string
	Left  Node
	Right Node
}

func (*Assign) Kind() Kind { return KindAssign }

// Call is a function call expression.
type Call struct {
	Func Node
	Args []Node
}

func (*Call) Kind() Kind { return KindCall }

// New is a constructor invocation: `new Func(args)`.
type New struct {
	Func Node
	Args []Node
}

func (*New) Kind() Kind { return KindNew }

// Undefined returns a fresh Name node for the literal "undefined", used
// to synthesize the initializer of a declaration that has none.
func Undefined() *Name {
	return &Name{Value: "undefined"}
}

// IsUndefinedName reports whether n is the synthetic "undefined" name.
func IsUndefinedName(n Node) bool {
	name, ok := n.(*Name)
	return ok && name.Value == "undefined"
}
