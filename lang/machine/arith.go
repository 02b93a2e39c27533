package machine

// binaryArith evaluates a+b or a-b (comparisons go through compare), following
// original_source's Int/Int, Int/Double, Double/Int, Double/Double
// coercion table exactly: an Int paired with a Double is promoted to
// Double, and any other pairing raises TypeError. ok is false on a type
// mismatch, in which case the caller raises.
func binaryArith(op func(a, b float64) float64, intOp func(a, b int32) int32, a, b Value) (Value, bool) {
	switch {
	case a.kind == KindInt && b.kind == KindInt:
		return Int(intOp(a.i, b.i)), true
	case a.kind == KindInt && b.kind == KindDouble:
		return Double(float32(op(float64(a.i), float64(b.f)))), true
	case a.kind == KindDouble && b.kind == KindInt:
		return Double(float32(op(float64(a.f), float64(b.i)))), true
	case a.kind == KindDouble && b.kind == KindDouble:
		return Double(float32(op(float64(a.f), float64(b.f)))), true
	default:
		return Value{}, false
	}
}

func numAdd(a, b Value) (Value, bool) {
	return binaryArith(func(x, y float64) float64 { return x + y }, func(x, y int32) int32 { return x + y }, a, b)
}

func numSub(a, b Value) (Value, bool) {
	return binaryArith(func(x, y float64) float64 { return x - y }, func(x, y int32) int32 { return x - y }, a, b)
}

// compare evaluates a binary relational operator, following the same
// Int/Double coercion table as numAdd/numSub but always yielding a Bool.
func compare(cmp func(x, y float64) bool, a, b Value) (Value, bool) {
	switch {
	case a.kind == KindInt && b.kind == KindInt:
		return Bool(cmp(float64(a.i), float64(b.i))), true
	case a.kind == KindInt && b.kind == KindDouble:
		return Bool(cmp(float64(a.i), float64(b.f))), true
	case a.kind == KindDouble && b.kind == KindInt:
		return Bool(cmp(float64(a.f), float64(b.i))), true
	case a.kind == KindDouble && b.kind == KindDouble:
		return Bool(cmp(float64(a.f), float64(b.f))), true
	default:
		return Value{}, false
	}
}

func numLt(a, b Value) (Value, bool)   { return compare(func(x, y float64) bool { return x < y }, a, b) }
func numLteq(a, b Value) (Value, bool) { return compare(func(x, y float64) bool { return x <= y }, a, b) }
func numGt(a, b Value) (Value, bool)   { return compare(func(x, y float64) bool { return x > y }, a, b) }
func numGteq(a, b Value) (Value, bool) { return compare(func(x, y float64) bool { return x >= y }, a, b) }
func numEqeq(a, b Value) (Value, bool) { return compare(func(x, y float64) bool { return x == y }, a, b) }
