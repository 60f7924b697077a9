// Package parser implements a hand-written recursive-descent parser for the
// JS-like dialect internal/ast describes. The grammar is deliberately small:
// it covers exactly the statement and expression shapes that spec.md's
// closed AST kind set names, plus the ordinary JS operator precedence
// ladder over them. There is no ternary conditional expression and no
// object/array literal syntax — the dialect this optimizer targets
// (Emscripten's asm.js/wasm2js backend output) never emits either, and
// ast.Kind has no node for them.
package parser

import (
	"fmt"

	"github.com/saruga/jsopt/internal/ast"
	"github.com/saruga/jsopt/internal/lexer"
)

// ParseError is a syntax error encountered while parsing.
type ParseError struct {
	Message string
	Line    int
	Col     int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// Parser holds the token stream and current position for one Parse call.
// It is not reusable across inputs — construct a fresh Parser per source.
type Parser struct {
	tokens []lexer.Token
	pos    int

	// noIn suppresses treating the `in` keyword as the relational
	// operator while parsing a for-loop's init clause, so that
	// `for (x in obj)` can be told apart from `for (x; x in obj; )`.
	noIn bool
}

// New returns a Parser over src, eagerly tokenizing the entire input.
func New(src string) *Parser {
	l := lexer.New(src)
	var toks []lexer.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == lexer.TokEOF {
			break
		}
	}
	return &Parser{tokens: toks}
}

// Parse parses the full token stream as a program and returns its Toplevel
// node. On the first syntax error, it panics with a *ParseError — per
// spec.md §7, malformed input to this layer is a programmer error in
// whatever produced the source, not something the optimizer recovers from.
// Callers that want a plain error value should use ParseString.
func (p *Parser) Parse() *ast.Toplevel {
	var body []ast.Node
	for p.current().Kind != lexer.TokEOF {
		body = append(body, p.parseStatement())
	}
	return &ast.Toplevel{Body: body}
}

// ParseString parses src as a full program, converting a parse panic into
// a returned error.
func ParseString(src string) (prog *ast.Toplevel, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	prog = New(src).Parse()
	return prog, nil
}

// ----------------------------------------------------------------------------
// Token helpers
// ----------------------------------------------------------------------------

func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) fail(format string, args ...interface{}) {
	tok := p.current()
	panic(&ParseError{Message: fmt.Sprintf(format, args...), Line: tok.Line, Col: tok.Col})
}

func (p *Parser) isPunct(lit string) bool {
	tok := p.current()
	return tok.Kind == lexer.TokPunct && tok.Literal == lit
}

func (p *Parser) isKeyword(word string) bool {
	tok := p.current()
	return tok.Kind == lexer.TokIdent && tok.Literal == word
}

func (p *Parser) expectPunct(lit string) {
	if !p.isPunct(lit) {
		p.fail("expected %q, got %q", lit, p.current().Literal)
	}
	p.advance()
}

func (p *Parser) eatPunct(lit string) bool {
	if p.isPunct(lit) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) eatKeyword(word string) bool {
	if p.isKeyword(word) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectIdent() string {
	tok := p.current()
	if tok.Kind != lexer.TokIdent {
		p.fail("expected identifier, got %q", tok.Literal)
	}
	p.advance()
	return tok.Literal
}

// eatSemi consumes an optional trailing semicolon (ASI-lite: statements
// never require one).
func (p *Parser) eatSemi() {
	p.eatPunct(";")
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Parser) parseStatement() ast.Node {
	tok := p.current()

	if tok.Kind == lexer.TokPunct && tok.Literal == "{" {
		return p.parseBlock()
	}
	if tok.Kind == lexer.TokPunct && tok.Literal == ";" {
		p.advance()
		return &ast.Empty{}
	}

	if tok.Kind == lexer.TokIdent {
		switch tok.Literal {
		case "var":
			v := p.parseVar()
			p.eatSemi()
			return v
		case "function":
			return p.parseFunction(true)
		case "if":
			return p.parseIf()
		case "switch":
			return p.parseSwitch()
		case "try":
			return p.parseTry()
		case "do":
			return p.parseDo()
		case "while":
			return p.parseWhile()
		case "for":
			return p.parseFor()
		case "return":
			p.advance()
			var val ast.Node
			if !p.isPunct(";") && !p.isPunct("}") && p.current().Kind != lexer.TokEOF {
				val = p.parseExpression()
			}
			p.eatSemi()
			return &ast.Return{Value: val}
		case "throw":
			p.advance()
			val := p.parseExpression()
			p.eatSemi()
			return &ast.Throw{Value: val}
		case "break":
			p.advance()
			label := p.maybeLabelRef()
			p.eatSemi()
			return &ast.Break{Label: label}
		case "continue":
			p.advance()
			label := p.maybeLabelRef()
			p.eatSemi()
			return &ast.Continue{Label: label}
		case "debugger":
			p.advance()
			p.eatSemi()
			return &ast.Debugger{}
		}

		// Labeled statement: `ident : stmt`.
		if p.peek(1).Kind == lexer.TokPunct && p.peek(1).Literal == ":" {
			name := p.advance().Literal
			p.advance() // ":"
			return &ast.Label{Name: name, Body: p.parseStatement()}
		}
	}

	x := p.parseExpression()
	p.eatSemi()
	return &ast.ExprStatement{X: x}
}

// maybeLabelRef consumes an identifier operand to break/continue only when
// it appears on the same statement (no intervening semicolon semantics
// beyond this dialect's ASI-lite rule: a following `;`, `}`, or EOF ends
// the operand).
func (p *Parser) maybeLabelRef() string {
	tok := p.current()
	if tok.Kind == lexer.TokIdent && !lexer.Keywords[tok.Literal] {
		p.advance()
		return tok.Literal
	}
	return ""
}

func (p *Parser) parseBlock() *ast.Block {
	p.expectPunct("{")
	var body []ast.Node
	for !p.isPunct("}") && p.current().Kind != lexer.TokEOF {
		body = append(body, p.parseStatement())
	}
	p.expectPunct("}")
	return &ast.Block{Body: body}
}

// parseBlockOrStatement returns a single Node usable as a construct body:
// either a genuine Block, or — for a bare single statement — the statement
// itself, matching the Node-typed Body/Then/Else fields on If/Do/While/For.
func (p *Parser) parseBlockOrStatement() ast.Node {
	if p.isPunct("{") {
		return p.parseBlock()
	}
	return p.parseStatement()
}

func (p *Parser) parseVar() *ast.Var {
	p.advance() // "var"
	var defs []*ast.VarDef
	for {
		name := p.expectIdent()
		var value ast.Node
		if p.eatPunct("=") {
			value = p.parseAssignment()
		}
		defs = append(defs, &ast.VarDef{Name: name, Value: value})
		if !p.eatPunct(",") {
			break
		}
	}
	return &ast.Var{Defs: defs}
}

// parseFunction parses a function, as a statement (Defun, name required) or
// as an expression (Function, name optional).
func (p *Parser) parseFunction(asStatement bool) ast.Node {
	p.advance() // "function"
	name := ""
	if p.current().Kind == lexer.TokIdent && !lexer.Keywords[p.current().Literal] {
		name = p.advance().Literal
	} else if asStatement {
		p.fail("expected function name")
	}
	params := p.parseParams()
	body := p.parseBlock()
	if asStatement {
		return &ast.Defun{Name: name, Params: params, Body: body.Body}
	}
	return &ast.Function{Name: name, Params: params, Body: body.Body}
}

func (p *Parser) parseParams() []string {
	p.expectPunct("(")
	var params []string
	for !p.isPunct(")") {
		params = append(params, p.expectIdent())
		if !p.eatPunct(",") {
			break
		}
	}
	p.expectPunct(")")
	return params
}

func (p *Parser) parseIf() ast.Node {
	p.advance() // "if"
	p.expectPunct("(")
	cond := p.parseExpression()
	p.expectPunct(")")
	then := p.parseBlockOrStatement()
	var els ast.Node
	if p.eatKeyword("else") {
		els = p.parseBlockOrStatement()
	}
	return &ast.If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseSwitch() ast.Node {
	p.advance() // "switch"
	p.expectPunct("(")
	disc := p.parseExpression()
	p.expectPunct(")")
	p.expectPunct("{")
	var cases []*ast.CaseClause
	for !p.isPunct("}") {
		var test ast.Node
		if p.eatKeyword("case") {
			test = p.parseExpression()
		} else if !p.eatKeyword("default") {
			p.fail("expected case or default, got %q", p.current().Literal)
		}
		p.expectPunct(":")
		var body []ast.Node
		for !p.isKeyword("case") && !p.isKeyword("default") && !p.isPunct("}") {
			body = append(body, p.parseStatement())
		}
		cases = append(cases, &ast.CaseClause{Test: test, Body: body})
	}
	p.expectPunct("}")
	return &ast.Switch{Disc: disc, Cases: cases}
}

func (p *Parser) parseTry() ast.Node {
	p.advance() // "try"
	body := p.parseBlock()
	var catch *ast.Catch
	var finally []ast.Node
	if p.eatKeyword("catch") {
		param := ""
		if p.eatPunct("(") {
			param = p.expectIdent()
			p.expectPunct(")")
		}
		catchBody := p.parseBlock()
		catch = &ast.Catch{Param: param, Body: catchBody.Body}
	}
	if p.eatKeyword("finally") {
		finally = p.parseBlock().Body
	}
	return &ast.Try{Body: body.Body, Catch: catch, Finally: finally}
}

func (p *Parser) parseDo() ast.Node {
	p.advance() // "do"
	body := p.parseBlockOrStatement()
	if !p.eatKeyword("while") {
		p.fail("expected 'while' after do-body")
	}
	p.expectPunct("(")
	cond := p.parseExpression()
	p.expectPunct(")")
	p.eatSemi()
	return &ast.Do{Body: body, Cond: cond}
}

func (p *Parser) parseWhile() ast.Node {
	p.advance() // "while"
	p.expectPunct("(")
	cond := p.parseExpression()
	p.expectPunct(")")
	body := p.parseBlockOrStatement()
	return &ast.While{Cond: cond, Body: body}
}

// parseFor disambiguates a C-style for from a for-in by parsing the init
// clause then checking for the "in" keyword.
func (p *Parser) parseFor() ast.Node {
	p.advance() // "for"
	p.expectPunct("(")

	var init ast.Node
	p.noIn = true
	if p.isKeyword("var") {
		init = p.parseVar()
	} else if !p.isPunct(";") {
		init = &ast.ExprStatement{X: p.parseExpression()}
	}
	p.noIn = false

	if p.isKeyword("in") {
		p.advance()
		object := p.parseExpression()
		p.expectPunct(")")
		body := p.parseBlockOrStatement()
		return &ast.ForIn{Init: forInBinding(init), Object: object, Body: body}
	}

	p.expectPunct(";")
	var cond ast.Node
	if !p.isPunct(";") {
		cond = p.parseExpression()
	}
	p.expectPunct(";")
	var step ast.Node
	if !p.isPunct(")") {
		step = p.parseExpression()
	}
	p.expectPunct(")")
	body := p.parseBlockOrStatement()
	return &ast.For{Init: unwrapExprStatement(init), Cond: cond, Step: step, Body: body}
}

// forInBinding converts the parsed init clause of a for-in header into the
// Node the ast.ForIn.Init field expects: a *ast.Var (untouched) or the bare
// *ast.Name extracted from a wrapping ExprStatement.
func forInBinding(init ast.Node) ast.Node {
	if es, ok := init.(*ast.ExprStatement); ok {
		return es.X
	}
	return init
}

func unwrapExprStatement(n ast.Node) ast.Node {
	if es, ok := n.(*ast.ExprStatement); ok {
		return es.X
	}
	return n
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// assignOps is every assignment operator this dialect's lexer can produce,
// mapped for a quick membership test.
var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true, ">>>=": true,
	"**=": true,
}

func (p *Parser) parseExpression() ast.Node {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Node {
	left := p.parseLogicalOr()
	tok := p.current()
	if tok.Kind == lexer.TokPunct && assignOps[tok.Literal] {
		op := p.advance().Literal
		right := p.parseAssignment()
		return &ast.Assign{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBinaryLevel(ops map[string]bool, next func(*Parser) ast.Node) ast.Node {
	left := next(p)
	for {
		tok := p.current()
		if tok.Kind != lexer.TokPunct && tok.Kind != lexer.TokIdent {
			break
		}
		if !ops[tok.Literal] {
			break
		}
		op := p.advance().Literal
		right := next(p)
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left
}

var opsLogicalOr = map[string]bool{"||": true, "??": true}
var opsLogicalAnd = map[string]bool{"&&": true}
var opsBitOr = map[string]bool{"|": true}
var opsBitXor = map[string]bool{"^": true}
var opsBitAnd = map[string]bool{"&": true}
var opsEquality = map[string]bool{"==": true, "!=": true, "===": true, "!==": true}
var opsRelational = map[string]bool{"<": true, ">": true, "<=": true, ">=": true, "instanceof": true, "in": true}
var opsRelationalNoIn = map[string]bool{"<": true, ">": true, "<=": true, ">=": true, "instanceof": true}
var opsShift = map[string]bool{"<<": true, ">>": true, ">>>": true}
var opsAdditive = map[string]bool{"+": true, "-": true}
var opsMultiplicative = map[string]bool{"*": true, "/": true, "%": true}
var opsExponent = map[string]bool{"**": true}

func (p *Parser) parseLogicalOr() ast.Node    { return p.parseBinaryLevel(opsLogicalOr, (*Parser).parseLogicalAnd) }
func (p *Parser) parseLogicalAnd() ast.Node   { return p.parseBinaryLevel(opsLogicalAnd, (*Parser).parseBitOr) }
func (p *Parser) parseBitOr() ast.Node        { return p.parseBinaryLevel(opsBitOr, (*Parser).parseBitXor) }
func (p *Parser) parseBitXor() ast.Node       { return p.parseBinaryLevel(opsBitXor, (*Parser).parseBitAnd) }
func (p *Parser) parseBitAnd() ast.Node       { return p.parseBinaryLevel(opsBitAnd, (*Parser).parseEquality) }
func (p *Parser) parseEquality() ast.Node     { return p.parseBinaryLevel(opsEquality, (*Parser).parseRelational) }
func (p *Parser) parseRelational() ast.Node {
	ops := opsRelational
	if p.noIn {
		ops = opsRelationalNoIn
	}
	return p.parseBinaryLevel(ops, (*Parser).parseShift)
}
func (p *Parser) parseShift() ast.Node        { return p.parseBinaryLevel(opsShift, (*Parser).parseAdditive) }
func (p *Parser) parseAdditive() ast.Node     { return p.parseBinaryLevel(opsAdditive, (*Parser).parseMultiplicative) }
func (p *Parser) parseMultiplicative() ast.Node {
	return p.parseBinaryLevel(opsMultiplicative, (*Parser).parseExponent)
}
func (p *Parser) parseExponent() ast.Node { return p.parseBinaryLevel(opsExponent, (*Parser).parseUnary) }

var prefixOps = map[string]bool{
	"!": true, "~": true, "+": true, "-": true, "++": true, "--": true,
	"typeof": true, "void": true, "delete": true,
}

func (p *Parser) parseUnary() ast.Node {
	tok := p.current()
	if (tok.Kind == lexer.TokPunct || tok.Kind == lexer.TokIdent) && prefixOps[tok.Literal] {
		op := p.advance().Literal
		x := p.parseUnary()
		return &ast.UnaryPrefix{Op: op, X: x}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Node {
	x := p.parseCallOrMember()
	tok := p.current()
	if tok.Kind == lexer.TokPunct && (tok.Literal == "++" || tok.Literal == "--") {
		op := p.advance().Literal
		return &ast.UnaryPostfix{Op: op, X: x}
	}
	return x
}

func (p *Parser) parseCallOrMember() ast.Node {
	x := p.parseNewOrPrimary()
	for {
		switch {
		case p.isPunct("."):
			p.advance()
			prop := p.expectIdent()
			x = &ast.Sub{Expr: x, Property: &ast.String{Value: prop}}
		case p.isPunct("["):
			p.advance()
			idx := p.parseExpression()
			p.expectPunct("]")
			x = &ast.Sub{Expr: x, Property: idx}
		case p.isPunct("("):
			x = &ast.Call{Func: x, Args: p.parseArgs()}
		default:
			return x
		}
	}
}

func (p *Parser) parseArgs() []ast.Node {
	p.expectPunct("(")
	saved := p.noIn
	p.noIn = false
	var args []ast.Node
	for !p.isPunct(")") {
		args = append(args, p.parseAssignment())
		if !p.eatPunct(",") {
			break
		}
	}
	p.noIn = saved
	p.expectPunct(")")
	return args
}

// parseNewOrPrimary handles `new Ctor(args)` inline, since `new` binds
// tighter than a following call and needs its own member-chain walk to
// find the constructor expression before the argument list.
func (p *Parser) parseNewOrPrimary() ast.Node {
	if p.isKeyword("new") {
		p.advance()
		callee := p.parseNewCallee()
		var args []ast.Node
		if p.isPunct("(") {
			args = p.parseArgs()
		}
		return &ast.New{Func: callee, Args: args}
	}
	return p.parsePrimary()
}

// parseNewCallee parses the constructor expression of a `new` node: a
// primary followed by `.member`/`[index]` accesses, but stopping before a
// call so that `new Foo(args)` attributes the argument list to the New
// node rather than to a nested Call.
func (p *Parser) parseNewCallee() ast.Node {
	x := p.parseNewOrPrimary()
	for {
		switch {
		case p.isPunct("."):
			p.advance()
			prop := p.expectIdent()
			x = &ast.Sub{Expr: x, Property: &ast.String{Value: prop}}
		case p.isPunct("["):
			p.advance()
			idx := p.parseExpression()
			p.expectPunct("]")
			x = &ast.Sub{Expr: x, Property: idx}
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.current()
	switch {
	case tok.Kind == lexer.TokNum:
		p.advance()
		return &ast.Num{Value: parseNumberLiteral(tok.Literal)}
	case tok.Kind == lexer.TokString:
		p.advance()
		return &ast.String{Value: tok.Literal}
	case tok.Kind == lexer.TokIdent && tok.Literal == "function":
		return p.parseFunction(false)
	case tok.Kind == lexer.TokIdent && !lexer.Keywords[tok.Literal]:
		p.advance()
		return &ast.Name{Value: tok.Literal}
	case tok.Kind == lexer.TokPunct && tok.Literal == "(":
		p.advance()
		saved := p.noIn
		p.noIn = false
		x := p.parseExpression()
		p.noIn = saved
		p.expectPunct(")")
		return x
	default:
		p.fail("unexpected token %q", tok.Literal)
		return nil
	}
}

func parseNumberLiteral(lit string) float64 {
	var v float64
	if len(lit) > 2 && (lit[1] == 'x' || lit[1] == 'X') && lit[0] == '0' {
		var n int64
		for _, c := range lit[2:] {
			n *= 16
			switch {
			case c >= '0' && c <= '9':
				n += int64(c - '0')
			case c >= 'a' && c <= 'f':
				n += int64(c-'a') + 10
			case c >= 'A' && c <= 'F':
				n += int64(c-'A') + 10
			}
		}
		return float64(n)
	}
	fmt.Sscanf(lit, "%g", &v)
	return v
}
