package compiler

// context accumulates a Program while the tree-walk emitter descends the
// parse tree. It is a direct rendering of original_source's
// CompilerContext: the instruction slice, the label/symbol tables, and the
// "currently being compiled" class/function name used to resolve locals and
// register new function entry points.
type context struct {
	prog   *Program
	curCls string
	curFn  string
}

func newContext() *context {
	return &context{
		prog: &Program{
			Labels:  make(map[FuncKey]int),
			Symbols: make(map[FuncKey]FuncDescriptor),
		},
		curCls: "global",
		curFn:  "global",
	}
}

// gen appends instr to the instruction stream and returns its index.
func (c *context) gen(instr Instr) int {
	c.prog.Instructions = append(c.prog.Instructions, instr)
	return len(c.prog.Instructions) - 1
}

// patch fixes up the Target of a previously emitted forward jump (at pos)
// to point at the instruction about to be emitted next.
func (c *context) patch(pos int) {
	target := len(c.prog.Instructions)
	instr := &c.prog.Instructions[pos]
	switch instr.Op {
	case JumpIfTrue, JumpIfFalse, Jump:
		instr.Target = target
	default:
		panic("compiler: patch called on a non-jump instruction")
	}
}

// registerClass records the name of the class currently being compiled.
func (c *context) registerClass(name string) {
	c.curCls = name
}

// registerFunction records a new (class, func) entry point at the current
// end of the instruction stream, and switches the "current function"
// context so subsequent registerLocal/slotOf calls resolve against it.
func (c *context) registerFunction(name string) FuncKey {
	c.curFn = name
	key := FuncKey{Class: c.curCls, Func: name}
	c.prog.Labels[key] = len(c.prog.Instructions)
	c.prog.Symbols[key] = FuncDescriptor{}
	return key
}

func (c *context) curKey() FuncKey {
	return FuncKey{Class: c.curCls, Func: c.curFn}
}

// registerParameter adds name as the next parameter of the function
// currently being compiled, returning its slot index.
func (c *context) registerParameter(name string) int {
	key := c.curKey()
	desc := c.prog.Symbols[key]
	desc.Locals = append(desc.Locals, name)
	desc.NumParams++
	c.prog.Symbols[key] = desc
	return len(desc.Locals) - 1
}

// registerLocal returns the slot index for name within the function
// currently being compiled, allocating a new slot if this is the first
// reference to it (this is also how a `let` re-using an existing name, e.g.
// inside a nested block, reuses the same slot instead of allocating a new
// one).
func (c *context) registerLocal(name string) int {
	key := c.curKey()
	desc := c.prog.Symbols[key]
	for i, l := range desc.Locals {
		if l == name {
			return i
		}
	}
	desc.Locals = append(desc.Locals, name)
	c.prog.Symbols[key] = desc
	return len(desc.Locals) - 1
}

// slotOf returns the slot index already assigned to name within the
// function currently being compiled. It panics if name was never
// registered, signaling a reference to an undeclared local (spec.md §7:
// "no user-facing undefined variable recovery").
func (c *context) slotOf(name string) int {
	key := c.curKey()
	desc := c.prog.Symbols[key]
	for i, l := range desc.Locals {
		if l == name {
			return i
		}
	}
	panic("compiler: reference to undeclared local " + name)
}
