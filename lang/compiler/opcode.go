package compiler

// Opcode identifies the operation a single Instr performs.
//
// "x y OP z" is a stack picture: the operand stack state before and after
// the instruction executes.
type Opcode uint8

const ( //nolint:revive
	PushInt    Opcode = iota // -            PushInt    n
	PushDouble                // -            PushDouble f
	PushStr                   // -            PushStr    s
	Pop                       // x            Pop        -
	Dup                       // x            Dup        x x

	Add  // a b Add  c
	Sub  // a b Sub  c
	Lt   // a b Lt   bool
	Lteq // a b Lteq bool
	Gt   // a b Gt   bool
	Gteq // a b Gteq bool
	Eqeq // a b Eqeq bool

	LoadVar  // -     LoadVar<slot>  v
	StoreVar // v     StoreVar<slot> -

	// declared for parity with the instruction-set contract; no emitter path
	// produces these and the VM panics if it ever dispatches one.
	LoadGlobal
	StoreGlobal
	Swap

	NewObject  // -   NewObject  objref
	LoadField  // obj LoadField<name>  v
	StoreField // v obj StoreField<name> -

	Jump        // -    Jump<target>        -
	JumpIfTrue  // bool JumpIfTrue<target>  -
	JumpIfFalse // bool JumpIfFalse<target> -

	Call  // arg1..argN Call<class,func> ret
	Ret   // v          Ret              -   (returns to caller)
	Raise // -          Raise            -   (begins unwind)
	Exit  // v          Exit             -   (halts the VM, v is the published result)
)

func (op Opcode) String() string { return opcodeNames[op] }

var opcodeNames = [...]string{
	PushInt:     "PushInt",
	PushDouble:  "PushDouble",
	PushStr:     "PushStr",
	Pop:         "Pop",
	Dup:         "Dup",
	Add:         "Add",
	Sub:         "Sub",
	Lt:          "Lt",
	Lteq:        "Lteq",
	Gt:          "Gt",
	Gteq:        "Gteq",
	Eqeq:        "Eqeq",
	LoadVar:     "LoadVar",
	StoreVar:    "StoreVar",
	LoadGlobal:  "LoadGlobal",
	StoreGlobal: "StoreGlobal",
	Swap:        "Swap",
	NewObject:   "NewObject",
	LoadField:   "LoadField",
	StoreField:  "StoreField",
	Jump:        "Jump",
	JumpIfTrue:  "JumpIfTrue",
	JumpIfFalse: "JumpIfFalse",
	Call:        "Call",
	Ret:         "Ret",
	Raise:       "Raise",
	Exit:        "Exit",
}
