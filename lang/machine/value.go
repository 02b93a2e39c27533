// Package machine implements the stack-based virtual machine that executes
// a compiled *compiler.Program: a VM holding a heap of Objects and a call
// stack of Frames, dispatching one compiler.Instr at a time.
package machine

import "fmt"

// Value is the VM's tagged runtime value: exactly the six cases
// original_source's NativeType enumerates. There is deliberately no
// interface-based open value set — the language has a closed, fixed type
// zoo.
type Value struct {
	kind Kind

	i   int32
	f   float32
	b   bool
	s   string
	ref int // heap index, valid when kind == KindObjectRef
}

// Kind discriminates which field of Value is populated.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindDouble
	KindBool
	KindStr
	KindObjectRef
)

func Int(v int32) Value       { return Value{kind: KindInt, i: v} }
func Double(v float32) Value  { return Value{kind: KindDouble, f: v} }
func Bool(v bool) Value       { return Value{kind: KindBool, b: v} }
func Str(v string) Value      { return Value{kind: KindStr, s: v} }
func ObjectRef(idx int) Value { return Value{kind: KindObjectRef, ref: idx} }

// None is the absence of a value: what `Ret` pushes when the callee's stack
// is empty.
var None = Value{kind: KindNone}

func (v Value) Kind() Kind { return v.kind }
func (v Value) Int() int32 { return v.i }
func (v Value) Double() float32 { return v.f }
func (v Value) Bool() bool { return v.b }
func (v Value) Str() string { return v.s }
func (v Value) ObjectRef() int { return v.ref }

// String renders v per the published-result textual form spec.md §6
// specifies: ints/floats in natural decimal form, bools as true/false,
// strings verbatim, object references as &<index>, and the absence of a
// result as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindDouble:
		return trimFloat(v.f)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindStr:
		return v.s
	case KindObjectRef:
		return fmt.Sprintf("&%d", v.ref)
	default:
		return ""
	}
}

func trimFloat(f float32) string {
	s := fmt.Sprintf("%g", f)
	return s
}
