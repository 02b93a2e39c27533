package compiler

import "fmt"

// Instr is a single instruction in the flat instruction stream. It is a
// tagged struct rather than a packed/varint-encoded byte sequence: the
// language has no block-level control-flow graph to linearize, so the
// tree-walk emitter writes directly into a plain slice (see DESIGN.md).
type Instr struct {
	Op Opcode

	IntArg    int32
	DoubleArg float32
	StrArg    string

	Class string // Call's class-name operand
	Func  string // Call's func-name operand; LoadField/StoreField's field name

	Slot int // LoadVar/StoreVar's local slot index

	Target int // Jump/JumpIfTrue/JumpIfFalse's instruction index
}

func (i Instr) String() string {
	switch i.Op {
	case PushInt:
		return fmt.Sprintf("PushInt %d", i.IntArg)
	case PushDouble:
		return fmt.Sprintf("PushDouble %g", i.DoubleArg)
	case PushStr:
		return fmt.Sprintf("PushStr %q", i.StrArg)
	case LoadVar, StoreVar:
		return fmt.Sprintf("%s %d", i.Op, i.Slot)
	case LoadField, StoreField:
		return fmt.Sprintf("%s %q", i.Op, i.Func)
	case Jump, JumpIfTrue, JumpIfFalse:
		return fmt.Sprintf("%s %d", i.Op, i.Target)
	case Call:
		return fmt.Sprintf("Call %s.%s", i.Class, i.Func)
	default:
		return i.Op.String()
	}
}

// FuncKey identifies a function by its enclosing class name and its own
// name, the same (class, func) pair original_source's Bytecode.labels and
// Bytecode.symbols are keyed by.
type FuncKey struct {
	Class string
	Func  string
}

// FuncDescriptor records the metadata the VM needs to set up a call frame
// for a function: how many of its locals are parameters (passed in
// left-to-right call order) versus locals introduced by `let` inside the
// body.
type FuncDescriptor struct {
	NumParams int
	Locals    []string // in slot order; Locals[:NumParams] are the parameters
}

// Program is the output of compilation: a single flat instruction stream
// plus the symbol/label tables the VM uses to locate function entry points
// and frame layouts.
type Program struct {
	Instructions []Instr
	Labels       map[FuncKey]int // (class, func) -> index of its first instruction
	Symbols      map[FuncKey]FuncDescriptor
}

// Disassemble renders the program as pseudo-assembly: one instruction per
// line, annotated with labels at function entry points.
func (p *Program) Disassemble() string {
	entryAt := make(map[int]FuncKey, len(p.Labels))
	for k, addr := range p.Labels {
		entryAt[addr] = k
	}

	var out []byte
	for i, instr := range p.Instructions {
		if k, ok := entryAt[i]; ok {
			out = append(out, []byte(fmt.Sprintf("%s.%s:\n", k.Class, k.Func))...)
		}
		out = append(out, []byte(fmt.Sprintf("%4d\t%s\n", i, instr))...)
	}
	return string(out)
}
