package machine

import (
	"errors"
	"fmt"
	"io"

	"github.com/jacob-hughes/plang/internal/config"
	"github.com/jacob-hughes/plang/lang/compiler"
)

// mainKey is the (class, func) pair the VM looks up to find its entry
// point, the same convention original_source's enter_main uses.
var mainKey = compiler.FuncKey{Class: "global", Func: "main"}

// ErrNoSuchField is the fatal error a LoadField of an undeclared field
// raises. original_source's interp.rs reads a missing field with
// `obj.fields.get(field_name).expect("Field not found")` — it panics rather
// than substituting a sentinel value, since a well-compiled program never
// reads a field that wasn't assigned first. A miscompile or a hand-built
// Program can still reach this, so it surfaces as a returned error rather
// than crashing the host process.
var ErrNoSuchField = errors.New("machine: no such field")

// haltPC is the program counter the unwind protocol sets when a raise
// reaches the outermost frame, forcing the dispatch loop to stop on its
// next bounds check. original_source uses usize::max_value() for the same
// purpose.
const haltPC = -1

// VM executes a single compiler.Program to completion. It is not reusable
// across programs: construct a fresh VM per Run.
type VM struct {
	prog   *compiler.Program
	heap   []*Object
	frames []*frame
	pc     int

	cfg config.Config

	// Stderr receives the backtrace printed when an exception unwinds past
	// the outermost frame, matching original_source's unwind_stack_on_raise.
	Stderr io.Writer
}

// New constructs a VM for prog using cfg's step/call-depth limits.
func New(prog *compiler.Program, cfg config.Config) *VM {
	return &VM{prog: prog, cfg: cfg}
}

// Run executes the program's (global, main) function to completion and
// returns its published result: the value Exit peeked, or None if the
// program raised all the way out without ever reaching an Exit.
//
// Instructions that reference state a well-compiled Program can never
// produce (an out-of-range local slot, a call to an undefined function, a
// read of a field that was never assigned) panic internally; those panics
// signal an interpreter or compiler bug rather than a user-facing failure,
// and are recovered here into a returned error, the same convention
// compiler.Compile uses for its own emitter panics.
func (vm *VM) Run() (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = None
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("machine: %v", r)
		}
	}()

	entry, ok := vm.prog.Labels[mainKey]
	if !ok {
		return None, fmt.Errorf("machine: no global.main entry point")
	}

	// heap slot exceptionPtr holds the exception object every raise
	// references, so program objects start at index 1.
	vm.heap = []*Object{newObject()}
	vm.frames = []*frame{newFrame("global.main", len(vm.prog.Instructions), nil)}
	vm.pc = entry

	result = None
	steps := 0
	for vm.pc >= 0 && vm.pc < len(vm.prog.Instructions) {
		if vm.cfg.MaxSteps > 0 {
			steps++
			if steps > vm.cfg.MaxSteps {
				return None, fmt.Errorf("machine: exceeded max step count %d", vm.cfg.MaxSteps)
			}
		}
		if vm.cfg.MaxCallDepth > 0 && len(vm.frames) > vm.cfg.MaxCallDepth {
			return None, fmt.Errorf("machine: exceeded max call depth %d", vm.cfg.MaxCallDepth)
		}

		instr := vm.prog.Instructions[vm.pc]
		halted, published := vm.step(instr)
		if halted {
			if published {
				result = vm.cur().peek()
			}
			break
		}

		if vm.cur().raising {
			vm.unwindStackOnRaise()
		}
	}
	return result, nil
}

func (vm *VM) cur() *frame { return vm.frames[len(vm.frames)-1] }

// step executes one instruction, advancing vm.pc (to the next instruction,
// or to a jump Target; Exit leaves it unchanged). It returns halted=true when
// the loop in Run should stop, and published=true when result should be
// read from the current frame's top of stack (Exit's peek, never a pop).
func (vm *VM) step(instr compiler.Instr) (halted, published bool) {
	f := vm.cur()
	next := vm.pc + 1

	switch instr.Op {
	case compiler.PushInt:
		f.push(Int(instr.IntArg))
	case compiler.PushDouble:
		f.push(Double(instr.DoubleArg))
	case compiler.PushStr:
		f.push(Str(instr.StrArg))
	case compiler.Pop:
		f.pop()
	case compiler.Dup:
		f.dup()

	case compiler.Add:
		vm.binOp(f, numAdd)
	case compiler.Sub:
		vm.binOp(f, numSub)
	case compiler.Lt:
		vm.binOp(f, numLt)
	case compiler.Lteq:
		vm.binOp(f, numLteq)
	case compiler.Gt:
		vm.binOp(f, numGt)
	case compiler.Gteq:
		vm.binOp(f, numGteq)
	case compiler.Eqeq:
		vm.binOp(f, numEqeq)

	case compiler.LoadVar:
		f.push(f.loadLocal(instr.Slot))
	case compiler.StoreVar:
		f.storeLocal(instr.Slot, f.pop())

	case compiler.LoadGlobal, compiler.StoreGlobal, compiler.Swap:
		panic(fmt.Sprintf("machine: %s is not implemented", instr.Op))

	case compiler.NewObject:
		vm.heap = append(vm.heap, newObject())
		f.push(ObjectRef(len(vm.heap) - 1))

	case compiler.LoadField:
		obj := vm.objectAt(f.pop())
		v, ok := obj.field(instr.Func)
		if !ok {
			panic(ErrNoSuchField)
		}
		f.push(v)

	case compiler.StoreField:
		obj := vm.objectAt(f.pop())
		v := f.pop()
		obj.setField(instr.Func, v)

	case compiler.Jump:
		vm.pc = instr.Target
		return false, false
	case compiler.JumpIfTrue:
		if f.pop().Bool() {
			vm.pc = instr.Target
			return false, false
		}
	case compiler.JumpIfFalse:
		if !f.pop().Bool() {
			vm.pc = instr.Target
			return false, false
		}

	case compiler.Call:
		vm.call(instr)
		return false, false

	case compiler.Ret:
		vm.ret()
		return false, false

	case compiler.Raise:
		f.raise("Exception")

	case compiler.Exit:
		return true, true

	default:
		panic(fmt.Sprintf("machine: unhandled opcode %s", instr.Op))
	}

	vm.pc = next
	return false, false
}

// raise pushes the same two-value exception marker original_source's
// Frame::raise does (a reference to the sentinel exception object at heap
// index 0, followed by the message) and sets the raising flag.
func (f *frame) raise(msg string) {
	f.push(ObjectRef(exceptionPtr))
	f.push(Str(msg))
	f.raising = true
}

// exceptionPtr is the heap index original_source reserves for the
// exception object that every raise references (EXCEPTION_PTR).
const exceptionPtr = 0

func (vm *VM) binOp(f *frame, op func(a, b Value) (Value, bool)) {
	b := f.pop()
	a := f.pop()
	v, ok := op(a, b)
	if !ok {
		f.raise("TypeError")
		return
	}
	f.push(v)
}

func (vm *VM) objectAt(v Value) *Object {
	if v.kind != KindObjectRef || v.ref < 0 || v.ref >= len(vm.heap) {
		panic("machine: field access on a non-object value")
	}
	return vm.heap[v.ref]
}

// call pops instr's arguments off the caller's stack (in reverse push
// order, so they land in left-to-right call order in the callee's
// locals), pushes a new frame at the callee's entry point, and jumps
// there. Grounded on interp.rs's Instr::Call handling.
func (vm *VM) call(instr compiler.Instr) {
	key := compiler.FuncKey{Class: instr.Class, Func: instr.Func}
	desc, ok := vm.prog.Symbols[key]
	if !ok {
		panic(fmt.Sprintf("machine: call to undefined function %s.%s", instr.Class, instr.Func))
	}
	entry, ok := vm.prog.Labels[key]
	if !ok {
		panic(fmt.Sprintf("machine: call to undefined function %s.%s", instr.Class, instr.Func))
	}

	caller := vm.cur()
	args := make([]Value, desc.NumParams)
	for i := desc.NumParams - 1; i >= 0; i-- {
		args[i] = caller.pop()
	}

	vm.frames = append(vm.frames, newFrame(fmt.Sprintf("%s.%s", instr.Class, instr.Func), vm.pc+1, args))
	vm.pc = entry
}

// ret pops the callee frame, taking its top of stack (or None if empty) as
// the return value, pushes that value onto the new top frame, and resumes
// at the return address recorded when the call was made.
func (vm *VM) ret() {
	callee := vm.frames[len(vm.frames)-1]
	var retval Value
	if len(callee.stack) > 0 {
		retval = callee.pop()
	} else {
		retval = None
	}
	returnAddress := callee.returnAddress
	vm.frames = vm.frames[:len(vm.frames)-1]

	vm.cur().push(retval)
	vm.pc = returnAddress
}

// unwindStackOnRaise implements the exception-propagation protocol: walk
// frames from the innermost outward, accumulating a backtrace, until a
// try-region frame is found or the frames are exhausted. No construct in
// this language ever sets a frame's in-try flag (there is no try/catch
// surface syntax), so every raise unwinds all the way out: the backtrace
// is printed to Stderr and the VM halts with no published result, matching
// original_source's unwind_stack_on_raise when it drains every frame.
func (vm *VM) unwindStackOnRaise() {
	var backtrace []string
	tryIndex := -1
	for i := len(vm.frames) - 1; i >= 0; i-- {
		backtrace = append(backtrace, vm.frames[i].name)
		if vm.frames[i].inTry {
			tryIndex = i
			break
		}
	}

	if tryIndex >= 0 {
		vm.frames = vm.frames[:tryIndex+1]
		vm.pc = vm.frames[tryIndex].returnAddress
		vm.frames[tryIndex].raising = false
		return
	}

	if vm.Stderr != nil {
		fmt.Fprintln(vm.Stderr, "unhandled exception, backtrace:")
		for _, name := range backtrace {
			fmt.Fprintf(vm.Stderr, "  in %s\n", name)
		}
	}
	vm.frames = nil
	vm.pc = haltPC
}
