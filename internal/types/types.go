// Package types implements the closed variant type set of spec.md §3:
// Void, Bool, the eight integer kinds, the two float kinds, and Custom
// (struct/union/enum/unresolved), each composable with a pointer depth
// and an optional fixed-dimension array descriptor, plus function-pointer
// types.
package types

import (
	"fmt"
	"strings"
)

// Kind is a base scalar kind. Its integer value doubles as the
// widening-kind index used by the constant evaluator's promotion rules
// (spec.md §4.5, P1/P2): the ordering u8<u16<u32<u64<i8<i16<i32<i64 is
// the literal iota order below.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindU8
	KindU16
	KindU32
	KindU64
	KindI8
	KindI16
	KindI32
	KindI64
	KindF32
	KindF64
	KindCustom
)

var kindNames = map[Kind]string{
	KindVoid: "void", KindBool: "bool",
	KindU8: "u8", KindU16: "u16", KindU32: "u32", KindU64: "u64",
	KindI8: "i8", KindI16: "i16", KindI32: "i32", KindI64: "i64",
	KindF32: "f32", KindF64: "f64",
	KindCustom: "custom",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsInteger reports whether k is one of the eight integer kinds.
func (k Kind) IsInteger() bool { return k >= KindU8 && k <= KindI64 }

// IsUnsigned reports whether k is one of the four unsigned kinds.
func (k Kind) IsUnsigned() bool { return k >= KindU8 && k <= KindU64 }

// IsSigned reports whether k is one of the four signed kinds.
func (k Kind) IsSigned() bool { return k >= KindI8 && k <= KindI64 }

// IsFloat reports whether k is f32 or f64.
func (k Kind) IsFloat() bool { return k == KindF32 || k == KindF64 }

// BuiltinTable maps source type-name spellings to their Kind, the fixed
// table spec.md §4.4 "Type resolution" refers to.
var BuiltinTable = map[string]Kind{
	"void": KindVoid, "bool": KindBool,
	"u8": KindU8, "u16": KindU16, "u32": KindU32, "u64": KindU64,
	"i8": KindI8, "i16": KindI16, "i32": KindI32, "i64": KindI64,
	"f32": KindF32, "f64": KindF64,
}

// ArrayDesc is an ordered list of fixed positive dimensions.
type ArrayDesc struct {
	Dims []int
}

func (a *ArrayDesc) String() string {
	var sb strings.Builder
	for _, d := range a.Dims {
		fmt.Fprintf(&sb, "[%d]", d)
	}
	return sb.String()
}

// FuncSig describes a function-pointer type's signature.
type FuncSig struct {
	Return   *Type
	Params   []*Type
	Variadic bool
}

// Type is a base kind composed with a pointer depth and an optional
// array descriptor (spec.md §3: "Type modifiers, composed on top of any
// base"). CustomName is populated iff Kind == KindCustom. Func is
// populated iff this is a function-pointer type (fn* rtype(ptypes...)).
type Type struct {
	Kind         Kind
	CustomName   string
	PointerDepth int
	Array        *ArrayDesc
	Func         *FuncSig
}

// Base returns a value (pointer depth 0, no array) type of the given kind.
func Base(k Kind) *Type { return &Type{Kind: k} }

// Custom returns a value Custom type with the given name.
func Custom(name string) *Type { return &Type{Kind: KindCustom, CustomName: name} }

// WithPointerDepth returns a copy of t with the given pointer depth.
func (t *Type) WithPointerDepth(depth int) *Type {
	cp := *t
	cp.PointerDepth = depth
	return &cp
}

// WithArray returns a copy of t with the given array descriptor.
func (t *Type) WithArray(a *ArrayDesc) *Type {
	cp := *t
	cp.Array = a
	return &cp
}

// IsValue reports whether t has pointer depth 0 and no array dimensions.
func (t *Type) IsValue() bool {
	return t.PointerDepth == 0 && (t.Array == nil || len(t.Array.Dims) == 0)
}

// Equals reports structural equality of two types.
func (t *Type) Equals(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.PointerDepth != o.PointerDepth {
		return false
	}
	if t.Kind == KindCustom && t.CustomName != o.CustomName {
		return false
	}
	if (t.Array == nil) != (o.Array == nil) {
		return false
	}
	if t.Array != nil {
		if len(t.Array.Dims) != len(o.Array.Dims) {
			return false
		}
		for i := range t.Array.Dims {
			if t.Array.Dims[i] != o.Array.Dims[i] {
				return false
			}
		}
	}
	if (t.Func == nil) != (o.Func == nil) {
		return false
	}
	if t.Func != nil {
		if t.Func.Variadic != o.Func.Variadic || len(t.Func.Params) != len(o.Func.Params) {
			return false
		}
		if !t.Func.Return.Equals(o.Func.Return) {
			return false
		}
		for i := range t.Func.Params {
			if !t.Func.Params[i].Equals(o.Func.Params[i]) {
				return false
			}
		}
	}
	return true
}

// String renders a type in the source surface syntax for diagnostics.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var base string
	switch {
	case t.Func != nil:
		params := make([]string, len(t.Func.Params))
		for i, p := range t.Func.Params {
			params[i] = p.String()
		}
		tail := ""
		if t.Func.Variadic {
			tail = ", ..."
		}
		base = fmt.Sprintf("fn*%s(%s%s)", t.Func.Return, strings.Join(params, ", "), tail)
	case t.Kind == KindCustom:
		base = t.CustomName
	default:
		base = t.Kind.String()
	}
	suffix := strings.Repeat("*", t.PointerDepth)
	if t.Array != nil {
		suffix += t.Array.String()
	}
	if suffix == "" {
		return base
	}
	return base + " " + suffix
}

// KindRank is a snapshot of the widening order used by the constant
// evaluator (spec.md §3's ordering note, §4.5 P1/P2). It exists as its
// own function (rather than relying on callers reading Kind's raw
// integer value) so the arithmetic promotion code reads declaratively.
func KindRank(k Kind) int { return int(k) }
