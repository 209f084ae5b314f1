// Package constant implements the tagged scalar value, the numeric
// promotion rules (L1, P1-P4), and the fold operations the semantic
// analyser uses to give every resolved expression an optional folded
// ConstantValue (spec.md §4.5, §9).
package constant

import (
	"math"

	"github.com/sourcelang/slc/internal/types"
)

// Value is a fixed-layout tagged scalar: exactly one of the fields below
// is meaningful, selected by Kind. Modeled as a flat struct with an
// explicit kind tag rather than an interface hierarchy, per spec.md §9's
// guidance that the fold rules are exhaustive so a switch on kind is both
// complete and cheap.
type Value struct {
	Kind types.Kind
	I    int64   // integer kinds (signed and unsigned alike, stored sign-extended)
	U    uint64  // unsigned view of I, used for unsigned wraparound arithmetic
	F    float64 // f32/f64
	B    bool    // Bool
}

func Int(k types.Kind, v int64) Value  { return Value{Kind: k, I: v, U: uint64(v)} }
func Uint(k types.Kind, v uint64) Value { return Value{Kind: k, I: int64(v), U: v} }
func Float(k types.Kind, v float64) Value { return Value{Kind: k, F: v} }
func Bool(v bool) Value                { return Value{Kind: types.KindBool, B: v} }

// unsignedOrder / signedOrder give the widening chain within one
// signedness, used by P1's overflow-promotes-to-next-wider-kind rule.
var unsignedOrder = []types.Kind{types.KindU8, types.KindU16, types.KindU32, types.KindU64}
var signedOrder = []types.Kind{types.KindI8, types.KindI16, types.KindI32, types.KindI64}
var floatOrder = []types.Kind{types.KindF32, types.KindF64}

func nextWider(order []types.Kind, k types.Kind) (types.Kind, bool) {
	for i, o := range order {
		if o == k {
			if i+1 < len(order) {
				return order[i+1], true
			}
			return k, false
		}
	}
	return k, false
}

func fitsUnsigned(k types.Kind, v uint64) bool {
	switch k {
	case types.KindU8:
		return v <= math.MaxUint8
	case types.KindU16:
		return v <= math.MaxUint16
	case types.KindU32:
		return v <= math.MaxUint32
	default:
		return true
	}
}

func fitsSigned(k types.Kind, v int64) bool {
	switch k {
	case types.KindI8:
		return v >= math.MinInt8 && v <= math.MaxInt8
	case types.KindI16:
		return v >= math.MinInt16 && v <= math.MaxInt16
	case types.KindI32:
		return v >= math.MinInt32 && v <= math.MaxInt32
	default:
		return true
	}
}

// InferLiteralKind applies L1: a non-negative integer literal takes the
// smallest unsigned type that fits; a negative literal the smallest
// signed type; bool literals take Bool.
func InferLiteralKind(v int64, negative bool) types.Kind {
	if negative {
		for _, k := range signedOrder {
			if fitsSigned(k, v) {
				return k
			}
		}
		return types.KindI64
	}
	for _, k := range unsignedOrder {
		if fitsUnsigned(k, uint64(v)) {
			return k
		}
	}
	return types.KindU64
}

// InferRealKind applies L1's float half: f32 if the value fits the f32
// finite range, else f64.
func InferRealKind(v float64) types.Kind {
	if v >= -math.MaxFloat32 && v <= math.MaxFloat32 {
		return types.KindF32
	}
	return types.KindF64
}

// PromoteSameKind applies P1: equal-kind operands keep that kind; the
// caller re-checks range after folding and widens via this function on
// overflow.
func PromoteSameKind(k types.Kind) types.Kind { return k }

// Widen returns the next-wider kind of the same signedness, per P1's
// overflow-promotion rule. Returns the same kind, false once the widest
// kind of that signedness is reached (the caller then wraps instead).
func Widen(k types.Kind) (types.Kind, bool) {
	if k.IsUnsigned() {
		return nextWider(unsignedOrder, k)
	}
	if k.IsSigned() {
		return nextWider(signedOrder, k)
	}
	if k.IsFloat() {
		return nextWider(floatOrder, k)
	}
	return k, false
}

// PromoteMixed applies P2/P3/P4 to pick the result kind of a binary
// operator whose operand kinds differ.
func PromoteMixed(lhs, rhs types.Kind) types.Kind {
	// P4: bool is unsigned width-1; result stays Bool only if both are Bool.
	if lhs == types.KindBool && rhs == types.KindBool {
		return types.KindBool
	}
	if lhs == types.KindBool {
		lhs = types.KindU8
	}
	if rhs == types.KindBool {
		rhs = types.KindU8
	}

	// P3: int mixed with float converts the int operand; result is the
	// wider float.
	if lhs.IsFloat() || rhs.IsFloat() {
		lf, rf := lhs, rhs
		if !lf.IsFloat() {
			lf = types.KindF64
		}
		if !rf.IsFloat() {
			rf = types.KindF64
		}
		if types.KindRank(lf) >= types.KindRank(rf) {
			return lf
		}
		return rf
	}

	if lhs == rhs {
		return lhs
	}

	// P2: wider of the two. types.Kind's iota order already encodes
	// u8<u16<u32<u64<i8<i16<i32<i64, so the signed kinds outrank every
	// unsigned kind and a straight rank comparison picks the wider one,
	// preferring the signed side whenever ranks tie across the
	// unsigned/signed boundary.
	if types.KindRank(rhs) > types.KindRank(lhs) {
		return rhs
	}
	return lhs
}

// foldIntBinary folds a same-kind pair of integer constants for Add/Sub/Mul,
// widening per P1 on overflow and wrapping at the widest kind of that
// signedness (two's-complement for signed, modulo 2^n for unsigned).
func foldIntBinary(k types.Kind, lhs, rhs int64, op func(a, b int64) (int64, bool)) (Value, types.Kind) {
	cur := k
	for {
		result, overflowed := op(lhs, rhs)
		if !overflowed && fitsKind(cur, result) {
			return Int(cur, result), cur
		}
		wider, ok := Widen(cur)
		if !ok {
			// widest of this signedness: wrap instead of widening further.
			return Int(cur, wrapToKind(cur, result)), cur
		}
		cur = wider
	}
}

func fitsKind(k types.Kind, v int64) bool {
	if k.IsUnsigned() {
		return v >= 0 && fitsUnsigned(k, uint64(v))
	}
	return fitsSigned(k, v)
}

func wrapToKind(k types.Kind, v int64) int64 {
	switch k {
	case types.KindU8:
		return int64(uint8(v))
	case types.KindU16:
		return int64(uint16(v))
	case types.KindU32:
		return int64(uint32(v))
	case types.KindU64:
		return int64(uint64(v))
	case types.KindI8:
		return int64(int8(v))
	case types.KindI16:
		return int64(int16(v))
	case types.KindI32:
		return int64(int32(v))
	default:
		return v
	}
}

// Add folds an arithmetic `+` between two constants already promoted to
// a common kind (see PromoteMixed / PromoteSameKind).
func Add(k types.Kind, lhs, rhs Value) Value {
	if k.IsFloat() {
		return Float(k, lhs.F+rhs.F)
	}
	v, resultKind := foldIntBinary(k, lhs.I, rhs.I, func(a, b int64) (int64, bool) {
		r := a + b
		return r, (b > 0 && r < a) || (b < 0 && r > a)
	})
	v.Kind = resultKind
	return v
}

func Sub(k types.Kind, lhs, rhs Value) Value {
	if k.IsFloat() {
		return Float(k, lhs.F-rhs.F)
	}
	v, resultKind := foldIntBinary(k, lhs.I, rhs.I, func(a, b int64) (int64, bool) {
		r := a - b
		return r, (b < 0 && r < a) || (b > 0 && r > a)
	})
	v.Kind = resultKind
	return v
}

func Mul(k types.Kind, lhs, rhs Value) Value {
	if k.IsFloat() {
		return Float(k, lhs.F*rhs.F)
	}
	v, resultKind := foldIntBinary(k, lhs.I, rhs.I, func(a, b int64) (int64, bool) {
		if a == 0 || b == 0 {
			return 0, false
		}
		r := a * b
		return r, r/b != a
	})
	v.Kind = resultKind
	return v
}

func Div(k types.Kind, lhs, rhs Value) (Value, bool) {
	if k.IsFloat() {
		if rhs.F == 0 {
			return Value{}, false
		}
		return Float(k, lhs.F/rhs.F), true
	}
	if rhs.I == 0 {
		return Value{}, false
	}
	return Int(k, lhs.I/rhs.I), true
}

// Compare folds the six comparison operators; result kind is always Bool.
func CompareEq(lhs, rhs Value) Value  { return Bool(scalarEqual(lhs, rhs)) }
func CompareNeq(lhs, rhs Value) Value { return Bool(!scalarEqual(lhs, rhs)) }

func scalarEqual(lhs, rhs Value) bool {
	if lhs.Kind.IsFloat() || rhs.Kind.IsFloat() {
		return lhs.F == rhs.F
	}
	if lhs.Kind == types.KindBool || rhs.Kind == types.KindBool {
		return lhs.B == rhs.B
	}
	if lhs.Kind.IsUnsigned() || rhs.Kind.IsUnsigned() {
		return lhs.U == rhs.U
	}
	return lhs.I == rhs.I
}

func CompareOrder(lhs, rhs Value) int {
	if lhs.Kind.IsFloat() || rhs.Kind.IsFloat() {
		switch {
		case lhs.F < rhs.F:
			return -1
		case lhs.F > rhs.F:
			return 1
		default:
			return 0
		}
	}
	if lhs.Kind.IsUnsigned() || rhs.Kind.IsUnsigned() {
		switch {
		case lhs.U < rhs.U:
			return -1
		case lhs.U > rhs.U:
			return 1
		default:
			return 0
		}
	}
	switch {
	case lhs.I < rhs.I:
		return -1
	case lhs.I > rhs.I:
		return 1
	default:
		return 0
	}
}

// ShortCircuitOr / ShortCircuitAnd implement the constant evaluator's
// short-circuit folding: a constant-true LHS of `||`, or constant-false
// LHS of `&&`, lets the evaluator skip folding the RHS entirely.
func ShortCircuitOr(lhs Value) (Value, bool) {
	if lhs.Kind == types.KindBool && lhs.B {
		return Bool(true), true
	}
	return Value{}, false
}

func ShortCircuitAnd(lhs Value) (Value, bool) {
	if lhs.Kind == types.KindBool && !lhs.B {
		return Bool(false), true
	}
	return Value{}, false
}

// AsU64 extracts the unsigned 64-bit view, used by the CFG builder to
// compare switch case values.
func (v Value) AsU64() uint64 {
	if v.Kind.IsFloat() {
		return uint64(v.F)
	}
	return v.U
}

// AsInt64 extracts the signed 64-bit view, used for explicit enum
// member values.
func (v Value) AsInt64() int64 { return v.I }
