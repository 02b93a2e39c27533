// Package compiler implements the tree-walk emitter that lowers a
// parsetree.Node into a flat compiler.Program of tagged instructions, and
// the Program/Instr/Opcode types the VM executes.
package compiler

import (
	"fmt"

	"github.com/jacob-hughes/plang/lang/parsetree"
)

const constructorName = "construct"

// Compile lowers the parse tree rooted at root (a "program" node whose
// children are "class_def" nodes) into a Program. src is the original
// source text, used to recover terminal lexemes via parsetree.Node.Text.
//
// Any malformed tree (unknown rule name, wrong child shape, reference to an
// undeclared local) is a compiler bug or a grammar/compiler drift, not a
// user-facing error (spec.md §7); such cases surface as a returned error
// rather than a crash, recovered from the emitter's panics.
func Compile(root *parsetree.Node, src []byte) (prog *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compile: %v", r)
		}
	}()

	ctx := newContext()
	e := &emitter{ctx: ctx, src: src}
	e.genProgram(root)
	return ctx.prog, nil
}

type emitter struct {
	ctx *context
	src []byte
}

func (e *emitter) text(n *parsetree.Node) string { return n.Text(e.src) }

func (e *emitter) genProgram(node *parsetree.Node) {
	for _, cls := range node.Children() {
		e.genClass(cls)
	}
}

// class_def := [nameTerm, func_def...]
func (e *emitter) genClass(node *parsetree.Node) {
	children := node.Children()
	e.ctx.registerClass(e.text(children[0]))
	for _, fn := range children[1:] {
		e.genFuncDef(fn)
	}
}

// func_def := [nameTerm, param_list, block]
func (e *emitter) genFuncDef(node *parsetree.Node) {
	children := node.Children()
	name := e.text(children[0])
	key := e.ctx.registerFunction(name)
	e.genParams(children[1])
	e.genBlock(children[2])

	if key.Class == "global" && key.Func == "main" {
		e.ctx.gen(Instr{Op: Exit})
	} else {
		e.ctx.gen(Instr{Op: Ret})
	}
}

// param_list := [IDENT...]
func (e *emitter) genParams(node *parsetree.Node) {
	for _, p := range node.Children() {
		e.ctx.registerParameter(e.text(p))
	}
}

// block := [statement...]
func (e *emitter) genBlock(node *parsetree.Node) {
	for _, stmt := range node.Children() {
		e.genStatement(stmt)
	}
}

// statement := [inner] where inner.Rule() selects the kind
func (e *emitter) genStatement(node *parsetree.Node) {
	inner := node.Child(0)
	switch inner.Rule() {
	case "expression":
		// bare expression statements never Pop: the VM's Exit/Ret only ever
		// look at the top of the current frame's stack, so the value left
		// behind by whichever expression statement executes last in a block
		// becomes that block's published/returned value.
		e.genExpr(inner)
	case "let_statement":
		e.genLet(inner)
	case "if_statement":
		e.genIf(inner)
	case "for_statement":
		e.genFor(inner)
	case "raise":
		e.ctx.gen(Instr{Op: Raise})
	default:
		panic("compile: unknown statement node " + inner.Rule())
	}
}

// genLet: let_statement := [nameTerm, expr]
func (e *emitter) genLet(node *parsetree.Node) {
	children := node.Children()
	e.genExpr(children[1])
	slot := e.ctx.registerLocal(e.text(children[0]))
	e.ctx.gen(Instr{Op: StoreVar, Slot: slot})
}

// genIf: if_statement := [cond, block]
func (e *emitter) genIf(node *parsetree.Node) {
	children := node.Children()
	e.genExpr(children[0])
	jmp := e.ctx.gen(Instr{Op: JumpIfFalse})
	e.genBlock(children[1])
	e.ctx.patch(jmp)
}

// genFor: for_statement := [init, cond, step, block]
func (e *emitter) genFor(node *parsetree.Node) {
	children := node.Children()
	e.genStatement(children[0])
	loopEntry := len(e.ctx.prog.Instructions)
	e.genExpr(children[1])
	exit := e.ctx.gen(Instr{Op: JumpIfFalse})
	e.genBlock(children[3])
	e.genStatement(children[2])
	e.ctx.gen(Instr{Op: Jump, Target: loopEntry})
	e.ctx.patch(exit)
}

// expression := [inner]
func (e *emitter) genExpr(node *parsetree.Node) {
	inner := node.Child(0)
	switch inner.Rule() {
	case "variable":
		slot := e.ctx.slotOf(e.text(inner.Child(0)))
		e.ctx.gen(Instr{Op: LoadVar, Slot: slot})

	case "binary_expression":
		children := inner.Children()
		e.genExpr(children[0])
		e.genExpr(children[2])
		e.ctx.gen(Instr{Op: binaryOp(children[1].Rule())})

	case "method_invocation":
		// x.m(args) compiles to Call(x, m): the receiver variable's name is
		// used verbatim as the class component of the call key, and the
		// receiver itself is not passed. No type of x is looked up.
		children := inner.Children()
		e.genArgs(children[2])
		e.ctx.gen(Instr{Op: Call, Class: e.text(children[0]), Func: e.text(children[1])})

	case "method_invocation_same_class":
		children := inner.Children()
		e.genArgs(children[1])
		e.ctx.gen(Instr{Op: Call, Class: e.ctx.curCls, Func: e.text(children[0])})

	case "field_access":
		children := inner.Children()
		slot := e.ctx.slotOf(e.text(children[0]))
		e.ctx.gen(Instr{Op: LoadVar, Slot: slot})
		e.ctx.gen(Instr{Op: LoadField, Func: e.text(children[1])})

	case "field_set":
		children := inner.Children()
		e.genExpr(children[2])
		slot := e.ctx.slotOf(e.text(children[0]))
		e.ctx.gen(Instr{Op: LoadVar, Slot: slot})
		e.ctx.gen(Instr{Op: StoreField, Func: e.text(children[1])})

	case "class_instance_creation":
		children := inner.Children()
		cls := e.text(children[0])
		e.ctx.gen(Instr{Op: NewObject})
		e.ctx.gen(Instr{Op: Dup})
		e.genArgs(children[1])
		e.ctx.gen(Instr{Op: Call, Class: cls, Func: constructorName})
		e.ctx.gen(Instr{Op: Pop}) // discard construct()'s None, leaving the instance

	case "literal":
		e.genLiteral(inner.Child(0))

	default:
		panic("compile: unknown expression node " + inner.Rule())
	}
}

func (e *emitter) genLiteral(lit *parsetree.Node) {
	switch lit.Rule() {
	case "INT_LITERAL":
		v := parseInt32(e.text(lit))
		e.ctx.gen(Instr{Op: PushInt, IntArg: v})
	case "FLOAT_LITERAL":
		v := parseFloat32(e.text(lit))
		e.ctx.gen(Instr{Op: PushDouble, DoubleArg: v})
	case "STR_LITERAL":
		e.ctx.gen(Instr{Op: PushStr, StrArg: lit.Decoded()})
	default:
		panic("compile: unknown literal kind " + lit.Rule())
	}
}

// arg_list := [expression...]
func (e *emitter) genArgs(node *parsetree.Node) {
	for _, arg := range node.Children() {
		e.genExpr(arg)
	}
}

func binaryOp(rule string) Opcode {
	switch rule {
	case "+":
		return Add
	case "-":
		return Sub
	case "<":
		return Lt
	case "<=":
		return Lteq
	case ">":
		return Gt
	case ">=":
		return Gteq
	case "==":
		return Eqeq
	default:
		panic("compile: unknown binary operator " + rule)
	}
}
