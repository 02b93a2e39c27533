// Package parser is a hand-written recursive-descent parser building the
// generic parsetree.Node contract the compiler consumes. It exists so the
// CLI and end-to-end tests can exercise the compiler and VM against real
// source text rather than hand-built trees; the compiler itself is written
// against the parsetree.Node interface and does not depend on this package.
package parser

import (
	"context"
	"fmt"
	"go/scanner"

	"github.com/jacob-hughes/plang/lang/parsetree"
	plscanner "github.com/jacob-hughes/plang/lang/scanner"
	"github.com/jacob-hughes/plang/lang/token"
)

// ErrorList is the accumulated list of syntax errors encountered while
// parsing, reusing go/scanner's multi-error shape exactly as the scanner
// package does.
type ErrorList = scanner.ErrorList

// Parse scans and parses a single source file, returning the root "program"
// node (its children are the parsed "class_def" nodes).
func Parse(path string) (*parsetree.Node, error) {
	fs, toks, err := plscanner.ScanFile(context.Background(), path)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, file: fs, path: path}
	prog := p.parseProgram()
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

type parser struct {
	toks []plscanner.TokenAndValue
	pos  int
	file *token.FileSet
	path string
	errs ErrorList
}

func (p *parser) cur() plscanner.TokenAndValue { return p.toks[p.pos] }

func (p *parser) at(tok token.Token) bool { return p.cur().Token == tok }

func (p *parser) advance() plscanner.TokenAndValue {
	tv := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tv
}

func (p *parser) expect(tok token.Token) plscanner.TokenAndValue {
	if !p.at(tok) {
		p.errorf("expected %s, found %s", tok, p.cur().Token)
		return p.cur()
	}
	return p.advance()
}

func (p *parser) errorf(format string, args ...any) {
	line, col := p.cur().Value.Pos.LineCol()
	p.errs.Add(token.Position{Filename: p.path, Line: line, Column: col}, fmt.Sprintf(format, args...))
}

func (p *parser) term(rule string) *parsetree.Node {
	tv := p.advance()
	return parsetree.NewTerm(rule, tv.Value.Pos, tv.Value.Start, len(tv.Value.Raw))
}

// program := class_def*
func (p *parser) parseProgram() *parsetree.Node {
	var classes []*parsetree.Node
	for !p.at(token.EOF) {
		classes = append(classes, p.parseClassDef())
	}
	return parsetree.NewNonterm("program", classes...)
}

// class_def := "class" IDENT ( "(" IDENT? ")" )? "{" func_def* "}"
func (p *parser) parseClassDef() *parsetree.Node {
	p.expect(token.CLASS)
	name := p.term("IDENT")
	if p.at(token.LPAREN) {
		p.advance()
		if p.at(token.IDENT) {
			p.advance() // parent class name, parsed but not bound to any semantics
		}
		p.expect(token.RPAREN)
	}
	p.expect(token.LBRACE)
	var funcs []*parsetree.Node
	for p.at(token.DEF) {
		funcs = append(funcs, p.parseFuncDef())
	}
	p.expect(token.RBRACE)
	return parsetree.NewNonterm("class_def", append([]*parsetree.Node{name}, funcs...)...)
}

// func_def := "def" IDENT "(" ( IDENT ("," IDENT)* )? ")" "{" block_contents "}"
func (p *parser) parseFuncDef() *parsetree.Node {
	p.expect(token.DEF)
	name := p.term("IDENT")
	p.expect(token.LPAREN)
	var params []*parsetree.Node
	for p.at(token.IDENT) {
		params = append(params, p.term("IDENT"))
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN)
	paramList := parsetree.NewNonterm("param_list", params...)
	block := p.parseBlock()
	return parsetree.NewNonterm("func_def", name, paramList, block)
}

// block := "{" (statement (";" statement)* ";"?)? "}"
func (p *parser) parseBlock() *parsetree.Node {
	p.expect(token.LBRACE)
	var stmts []*parsetree.Node
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatement())
		if p.at(token.SEMI) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return parsetree.NewNonterm("block", stmts...)
}

// statement := let_statement | if_statement | for_statement | raise | expression
func (p *parser) parseStatement() *parsetree.Node {
	var inner *parsetree.Node
	switch {
	case p.at(token.LET):
		inner = p.parseLetStatement()
	case p.at(token.IF):
		inner = p.parseIfStatement()
	case p.at(token.FOR):
		inner = p.parseForStatement()
	case p.at(token.RAISE):
		p.advance()
		inner = parsetree.NewNonterm("raise")
	default:
		inner = p.parseExpressionStmt()
	}
	return parsetree.NewNonterm("statement", inner)
}

// let_statement := "let" IDENT "=" expression
func (p *parser) parseLetStatement() *parsetree.Node {
	p.expect(token.LET)
	name := p.term("IDENT")
	p.expect(token.EQ)
	expr := p.parseExpressionStmt()
	return parsetree.NewNonterm("let_statement", name, expr)
}

// if_statement := "if" expression block
func (p *parser) parseIfStatement() *parsetree.Node {
	p.expect(token.IF)
	cond := p.parseExpressionStmt()
	block := p.parseBlock()
	return parsetree.NewNonterm("if_statement", cond, block)
}

// for_statement := "for" "(" statement ";" expression ";" statement ")" block
func (p *parser) parseForStatement() *parsetree.Node {
	p.expect(token.FOR)
	p.expect(token.LPAREN)
	init := p.parseStatement()
	p.expect(token.SEMI)
	cond := p.parseExpressionStmt()
	p.expect(token.SEMI)
	step := p.parseStatement()
	p.expect(token.RPAREN)
	block := p.parseBlock()
	return parsetree.NewNonterm("for_statement", init, cond, step, block)
}

// parseExpressionStmt parses an expression, wrapped in the "expression" rule
// node that the compiler's dispatch expects wherever the grammar has an
// expression slot (statement bodies, binary operands, arguments, let/if/for
// conditions, field-set right-hand sides).
func (p *parser) parseExpressionStmt() *parsetree.Node {
	return p.parseExpression()
}

func wrapExpr(inner *parsetree.Node) *parsetree.Node {
	return parsetree.NewNonterm("expression", inner)
}

// expression := primary (binop primary)*, left-associative, single precedence
// level, matching spec.md's binary_expression (no operator precedence
// climbing needed: the grammar has exactly one expression-level operator
// slot between two operands). Every operand is itself an "expression" node,
// including nested binary_expression results, so genExpr's dispatch can
// always unwrap one "expression" layer before inspecting the inner kind.
func (p *parser) parseExpression() *parsetree.Node {
	left := wrapExpr(p.parsePrimary())
	for p.cur().Token.IsBinaryOp() {
		op := p.term(p.cur().Token.String())
		right := wrapExpr(p.parsePrimary())
		left = wrapExpr(parsetree.NewNonterm("binary_expression", left, op, right))
	}
	return left
}

func (p *parser) parsePrimary() *parsetree.Node {
	switch {
	case p.at(token.INT):
		lit := p.term("INT_LITERAL")
		return parsetree.NewNonterm("literal", lit)

	case p.at(token.FLOAT):
		lit := p.term("FLOAT_LITERAL")
		return parsetree.NewNonterm("literal", lit)

	case p.at(token.STRING):
		tv := p.advance()
		lit := parsetree.NewStringTerm(tv.Value.Pos, tv.Value.Start, len(tv.Value.Raw), tv.Value.String)
		return parsetree.NewNonterm("literal", lit)

	case p.at(token.NEW):
		p.advance()
		cls := p.term("IDENT")
		p.expect(token.LPAREN)
		args := p.parseArgList()
		p.expect(token.RPAREN)
		return parsetree.NewNonterm("class_instance_creation", cls, args)

	case p.at(token.LPAREN):
		p.advance()
		inner := p.parseExpression() // already "expression"-wrapped
		p.expect(token.RPAREN)
		return inner.Child(0) // unwrap once: the caller (parseExpression) re-wraps it

	case p.at(token.IDENT):
		name := p.term("IDENT")
		switch {
		case p.at(token.LPAREN):
			// IDENT(args) -- call to a method of the current class
			p.advance()
			args := p.parseArgList()
			p.expect(token.RPAREN)
			return parsetree.NewNonterm("method_invocation_same_class", name, args)

		case p.at(token.DOT):
			p.advance()
			member := p.term("IDENT")
			switch {
			case p.at(token.LPAREN):
				p.advance()
				args := p.parseArgList()
				p.expect(token.RPAREN)
				return parsetree.NewNonterm("method_invocation", name, member, args)
			case p.at(token.EQ):
				p.advance()
				val := p.parseExpression()
				return parsetree.NewNonterm("field_set", name, member, val)
			default:
				return parsetree.NewNonterm("field_access", name, member)
			}

		default:
			return parsetree.NewNonterm("variable", name)
		}

	default:
		p.errorf("unexpected token %s in expression", p.cur().Token)
		p.advance()
		return parsetree.NewNonterm("variable", p.term("IDENT"))
	}
}

// arg_list := (expression ("," expression)*)?
func (p *parser) parseArgList() *parsetree.Node {
	var args []*parsetree.Node
	for !p.at(token.RPAREN) {
		args = append(args, p.parseExpressionStmt())
		if p.at(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	return parsetree.NewNonterm("arg_list", args...)
}
