package sema

import (
	"strconv"
	"strings"

	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/constant"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/source"
	"github.com/sourcelang/slc/internal/types"
)

// resolveExpr resolves e with no expected type in context (spec.md §4.5's
// general case: literals, references, calls, operators).
func (a *Analyzer) resolveExpr(e ast.Expr) resolved.Expr {
	return a.resolveExprTyped(e, nil)
}

// resolveExprTyped resolves e, threading an optional expected type through
// to the handful of forms whose own type is inferred from context rather
// than synthesised bottom-up: struct literals and array literals
// (spec.md §3's "`.{...}` takes its struct type from context").
func (a *Analyzer) resolveExprTyped(e ast.Expr, expected *types.Type) resolved.Expr {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return a.resolveNumberLiteral(n)
	case *ast.StringLiteral:
		return &resolved.StringLiteral{
			ExprBase: resolved.ExprBase{Type: types.Base(types.KindU8).WithPointerDepth(1), Location: n.Location},
			Value:    n.Value,
		}
	case *ast.CharLiteral:
		v := constant.Int(types.KindU8, int64(n.Value))
		return &resolved.CharLiteral{
			ExprBase: resolved.ExprBase{Type: types.Base(types.KindU8), Const: &v, Location: n.Location},
			Value:    n.Value,
		}
	case *ast.DeclRefExpr:
		return a.resolveDeclRef(n)
	case *ast.EnumElementAccess:
		return a.resolveEnumElementAccess(n.EnumName, n.Member, n.Location)
	case *ast.MemberAccess:
		return a.resolveMemberAccess(n)
	case *ast.ArrayElementAccess:
		return a.resolveArrayElementAccess(n)
	case *ast.CallExpr:
		return a.resolveCall(n)
	case *ast.StructLiteralExpr:
		return a.resolveStructLiteral(n, expected)
	case *ast.ArrayLiteralExpr:
		return a.resolveArrayLiteral(n, expected)
	case *ast.GroupingExpr:
		return a.resolveExprTyped(n.Inner, expected)
	case *ast.BinaryOperator:
		return a.resolveBinary(n)
	case *ast.UnaryOperator:
		return a.resolveUnary(n)
	case *ast.ExplicitCast:
		return a.resolveCast(n)
	case *ast.NullExpr:
		return &resolved.NullExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid).WithPointerDepth(1), Location: n.Location}}
	case *ast.SizeofExpr:
		t := a.resolveType(n.Type)
		size, _ := a.sizeAndAlignOf(t)
		v := constant.Uint(types.KindU64, size)
		return resolved.NewNumberLiteral(types.Base(types.KindU64), v, n.Location)
	case *ast.AlignofExpr:
		t := a.resolveType(n.Type)
		_, align := a.sizeAndAlignOf(t)
		v := constant.Uint(types.KindU64, align)
		return resolved.NewNumberLiteral(types.Base(types.KindU64), v, n.Location)
	}
	return nil
}

func (a *Analyzer) resolveNumberLiteral(n *ast.NumberLiteral) resolved.Expr {
	switch n.Kind {
	case ast.BoolNumber:
		v := constant.Bool(n.Text == "true")
		return resolved.NewNumberLiteral(types.Base(types.KindBool), v, n.Location)
	case ast.RealNumber:
		f, _ := strconv.ParseFloat(n.Text, 64)
		k := constant.InferRealKind(f)
		v := constant.Float(k, f)
		return resolved.NewNumberLiteral(types.Base(k), v, n.Location)
	case ast.BinIntNumber:
		text := strings.TrimPrefix(strings.TrimPrefix(n.Text, "0b"), "0B")
		u, _ := strconv.ParseUint(text, 2, 64)
		k := constant.InferLiteralKind(int64(u), false)
		v := constant.Uint(k, u)
		return resolved.NewNumberLiteral(types.Base(k), v, n.Location)
	default: // ast.IntNumber
		negative := strings.HasPrefix(n.Text, "-")
		if negative {
			i, _ := strconv.ParseInt(n.Text, 10, 64)
			k := constant.InferLiteralKind(i, true)
			v := constant.Int(k, i)
			return resolved.NewNumberLiteral(types.Base(k), v, n.Location)
		}
		u, _ := strconv.ParseUint(n.Text, 10, 64)
		k := constant.InferLiteralKind(int64(u), false)
		v := constant.Uint(k, u)
		return resolved.NewNumberLiteral(types.Base(k), v, n.Location)
	}
}

// resolveDeclRef resolves a plain or module-qualified name reference. A
// module-qualified name is ambiguous at parse time between `module::symbol`
// and `EnumName::Member` (ast.EnumElementAccess's doc comment); sema
// disambiguates here using enumOf before falling back to an imported
// module's export table.
func (a *Analyzer) resolveDeclRef(n *ast.DeclRefExpr) resolved.Expr {
	if n.Module != "" {
		if _, ok := a.enumOf(n.Module); ok {
			return a.resolveEnumElementAccess(n.Module, n.Name, n.Location)
		}
		exports, ok := a.imports[n.Module]
		if !ok {
			a.sink.Errorf(n.Location, diag.SEM001, "unknown module %q", n.Module)
			return &resolved.NullExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid), Location: n.Location}}
		}
		decl, ok := exports[n.Name]
		if !ok {
			a.sink.Errorf(n.Location, diag.SEM001, "module %q has no exported symbol %q", n.Module, n.Name)
			return &resolved.NullExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid), Location: n.Location}}
		}
		return declRefFor(decl, n.Location)
	}

	decl, ok := a.lookup(n.Name)
	if !ok {
		a.sink.Errorf(n.Location, diag.SEM001, "undeclared identifier %q", n.Name)
		return &resolved.NullExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid), Location: n.Location}}
	}
	return declRefFor(decl, n.Location)
}

// declRefFor builds the resolved DeclRefExpr for a looked-up declaration,
// carrying forward a global constant's folded value so downstream constant
// folding (enum initialisers, array dimensions) can see through it.
func declRefFor(decl resolved.Decl, loc source.Location) resolved.Expr {
	switch d := decl.(type) {
	case *resolved.VarDecl:
		var c *constant.Value
		if d.Const && d.Initializer != nil {
			c = d.Initializer.Constant()
		}
		return &resolved.DeclRefExpr{ExprBase: resolved.ExprBase{Type: d.Type, Const: c, Location: loc}, Decl: d}
	case *resolved.ParamDecl:
		return &resolved.DeclRefExpr{ExprBase: resolved.ExprBase{Type: d.Type, Location: loc}, Decl: d}
	case *resolved.FunctionDecl:
		return &resolved.DeclRefExpr{ExprBase: resolved.ExprBase{Type: d.Signature(), Location: loc}, Decl: d}
	default:
		return &resolved.DeclRefExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid), Location: loc}, Decl: decl}
	}
}

func (a *Analyzer) resolveEnumElementAccess(enumName, member string, loc source.Location) resolved.Expr {
	ed, ok := a.enumOf(enumName)
	if !ok {
		a.sink.Errorf(loc, diag.SEM001, "unknown enum type %q", enumName)
		return &resolved.NullExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid), Location: loc}}
	}
	idx := ed.MemberIndex(member)
	if idx < 0 {
		a.sink.Errorf(loc, diag.SEM001, "enum %q has no member %q", enumName, member)
		return &resolved.NullExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid), Location: loc}}
	}
	v := constant.Int(ed.Underlying.Kind, ed.Members[idx].Value)
	return &resolved.EnumElementAccess{
		ExprBase:    resolved.ExprBase{Type: types.Custom(ed.Name), Const: &v, Location: loc},
		Enum:        ed,
		MemberIndex: idx,
	}
}

func (a *Analyzer) resolveMemberAccess(n *ast.MemberAccess) resolved.Expr {
	base := a.resolveExpr(n.Base)
	indices := make([]int, 0, len(n.Fields))
	cur := base.ResolvedType()
	for _, name := range n.Fields {
		if cur == nil || cur.Kind != types.KindCustom {
			a.sink.Errorf(n.Location, diag.SEM003, "cannot access field %q on non-struct type", name)
			break
		}
		sd, ok := a.structs[cur.CustomName]
		if !ok {
			a.sink.Errorf(n.Location, diag.SEM003, "cannot access field %q on type %q", name, cur.CustomName)
			break
		}
		idx := sd.FieldIndex(name)
		if idx < 0 {
			a.sink.Errorf(n.Location, diag.SEM001, "struct %q has no field %q", sd.Name, name)
			break
		}
		indices = append(indices, idx)
		cur = sd.Fields[idx].Type
	}
	return &resolved.MemberAccess{
		ExprBase:     resolved.ExprBase{Type: cur, Location: n.Location},
		Base:         base,
		FieldIndices: indices,
		FieldNames:   append([]string{}, n.Fields...),
	}
}

func (a *Analyzer) resolveArrayElementAccess(n *ast.ArrayElementAccess) resolved.Expr {
	base := a.resolveExpr(n.Base)
	indices := make([]resolved.Expr, len(n.Indices))
	for i, idx := range n.Indices {
		indices[i] = a.resolveExpr(idx)
	}
	elemType := base.ResolvedType()
	if elemType != nil {
		if elemType.Array != nil && len(elemType.Array.Dims) > 0 {
			elemType = elemType.WithArray(nil)
		} else if elemType.PointerDepth > 0 {
			elemType = elemType.WithPointerDepth(elemType.PointerDepth - 1)
		}
	}
	return &resolved.ArrayElementAccess{
		ExprBase: resolved.ExprBase{Type: elemType, Location: n.Location},
		Base:     base,
		Indices:  indices,
	}
}

func (a *Analyzer) resolveCall(n *ast.CallExpr) resolved.Expr {
	ref, ok := n.Callee.(*ast.DeclRefExpr)
	if !ok {
		a.sink.Errorf(n.Location, diag.SEM005, "callee is not a function name")
		return &resolved.NullExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid), Location: n.Location}}
	}

	var fn *resolved.FunctionDecl
	if ref.Module != "" {
		exports, ok := a.imports[ref.Module]
		if !ok {
			a.sink.Errorf(n.Location, diag.SEM001, "unknown module %q", ref.Module)
		} else if d, ok := exports[ref.Name].(*resolved.FunctionDecl); ok {
			fn = d
		} else {
			a.sink.Errorf(n.Location, diag.SEM005, "%q is not a function", ref.Name)
		}
	} else if d, ok := a.funcs[ref.Name]; ok {
		fn = d
	} else if _, ok := a.lookup(ref.Name); ok {
		a.sink.Errorf(n.Location, diag.SEM005, "%q is not callable", ref.Name)
	} else {
		a.sink.Errorf(n.Location, diag.SEM001, "undeclared identifier %q", ref.Name)
	}

	args := make([]resolved.Expr, len(n.Args))
	for i, arg := range n.Args {
		args[i] = a.resolveExpr(arg)
	}

	if fn != nil {
		if fn.Variadic {
			if len(args) < len(fn.Params) {
				a.sink.Errorf(n.Location, diag.SEM004, "%q expects at least %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
			}
		} else if len(args) != len(fn.Params) {
			a.sink.Errorf(n.Location, diag.SEM004, "%q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
		}
	}

	retType := types.Base(types.KindVoid)
	if fn != nil {
		retType = fn.ReturnType
	}
	return &resolved.CallExpr{ExprBase: resolved.ExprBase{Type: retType, Location: n.Location}, Callee: fn, Args: args}
}

// resolveStructLiteral applies I5: initialisers may be all-positional,
// all-named, or a mix, matched against the target struct's field order.
func (a *Analyzer) resolveStructLiteral(n *ast.StructLiteralExpr, expected *types.Type) resolved.Expr {
	if expected == nil || expected.Kind != types.KindCustom {
		a.sink.Errorf(n.Location, diag.SEM003, "cannot infer struct type for literal from context")
		return &resolved.NullExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid), Location: n.Location}}
	}
	sd, ok := a.structs[expected.CustomName]
	if !ok {
		a.sink.Errorf(n.Location, diag.SEM003, "%q is not a struct type", expected.CustomName)
		return &resolved.NullExpr{ExprBase: resolved.ExprBase{Type: types.Base(types.KindVoid), Location: n.Location}}
	}

	fields := make([]resolved.Expr, len(sd.Fields))
	positional := 0
	for _, init := range n.Inits {
		idx := positional
		if init.FieldName != "" {
			idx = sd.FieldIndex(init.FieldName)
			if idx < 0 {
				a.sink.Errorf(init.Location, diag.SEM001, "struct %q has no field %q", sd.Name, init.FieldName)
				continue
			}
		} else {
			positional++
		}
		if idx < 0 || idx >= len(fields) {
			continue
		}
		if init.Value != nil {
			fields[idx] = a.resolveExprTyped(init.Value, sd.Fields[idx].Type)
		}
	}

	return &resolved.StructLiteralExpr{ExprBase: resolved.ExprBase{Type: expected, Location: n.Location}, Struct: sd, Fields: fields}
}

func (a *Analyzer) resolveArrayLiteral(n *ast.ArrayLiteralExpr, expected *types.Type) resolved.Expr {
	var elemExpected *types.Type
	resultType := expected
	if expected != nil && expected.Array != nil && len(expected.Array.Dims) > 0 {
		elemExpected = expected.WithArray(&types.ArrayDesc{Dims: expected.Array.Dims[1:]})
	}

	elems := make([]resolved.Expr, len(n.Elements))
	for i, el := range n.Elements {
		elems[i] = a.resolveExprTyped(el, elemExpected)
	}

	if resultType == nil && len(elems) > 0 && elems[0].ResolvedType() != nil {
		elemType := elems[0].ResolvedType()
		resultType = elemType.WithArray(&types.ArrayDesc{Dims: []int{len(elems)}})
	}

	return &resolved.ArrayLiteralExpr{ExprBase: resolved.ExprBase{Type: resultType, Location: n.Location}, Elements: elems}
}

func (a *Analyzer) resolveBinary(n *ast.BinaryOperator) resolved.Expr {
	lhs := a.resolveExpr(n.Lhs)

	// Short-circuit: if the LHS folds to a decisive value, skip resolving
	// the RHS's constant fold entirely but still build the node so the
	// CFG builder sees a normal binary expression (spec.md §4.5).
	if n.Op == ast.OpOr {
		if lc := lhs.Constant(); lc != nil {
			if v, short := constant.ShortCircuitOr(*lc); short {
				rhs := a.resolveExpr(n.Rhs)
				return &resolved.BinaryOperator{ExprBase: resolved.ExprBase{Type: types.Base(types.KindBool), Const: &v, Location: n.Location}, Op: n.Op, Lhs: lhs, Rhs: rhs}
			}
		}
	}
	if n.Op == ast.OpAnd {
		if lc := lhs.Constant(); lc != nil {
			if v, short := constant.ShortCircuitAnd(*lc); short {
				rhs := a.resolveExpr(n.Rhs)
				return &resolved.BinaryOperator{ExprBase: resolved.ExprBase{Type: types.Base(types.KindBool), Const: &v, Location: n.Location}, Op: n.Op, Lhs: lhs, Rhs: rhs}
			}
		}
	}

	rhs := a.resolveExpr(n.Rhs)
	resultType, foldedConst := a.foldBinary(n.Op, lhs, rhs, n.Location)
	return &resolved.BinaryOperator{ExprBase: resolved.ExprBase{Type: resultType, Const: foldedConst, Location: n.Location}, Op: n.Op, Lhs: lhs, Rhs: rhs}
}

// foldBinary applies P2-P4 to pick the operator's result type, then folds
// the operation if both operands carry constants (spec.md §4.5).
func (a *Analyzer) foldBinary(op ast.BinaryOp, lhs, rhs resolved.Expr, loc source.Location) (*types.Type, *constant.Value) {
	isComparison := op == ast.OpEq || op == ast.OpNeq || op == ast.OpLt || op == ast.OpLe || op == ast.OpGt || op == ast.OpGe
	isLogical := op == ast.OpOr || op == ast.OpAnd

	var operandKind types.Kind
	if lhs.ResolvedType() != nil && rhs.ResolvedType() != nil {
		operandKind = constant.PromoteMixed(lhs.ResolvedType().Kind, rhs.ResolvedType().Kind)
	}

	resultType := types.Base(operandKind)
	if isComparison || isLogical {
		resultType = types.Base(types.KindBool)
	}

	lc, rc := lhs.Constant(), rhs.Constant()
	if lc == nil || rc == nil {
		return resultType, nil
	}

	l := promoteConstant(*lc, operandKind)
	r := promoteConstant(*rc, operandKind)

	switch op {
	case ast.OpAdd:
		v := constant.Add(operandKind, l, r)
		return types.Base(v.Kind), &v
	case ast.OpSub:
		v := constant.Sub(operandKind, l, r)
		return types.Base(v.Kind), &v
	case ast.OpMul:
		v := constant.Mul(operandKind, l, r)
		return types.Base(v.Kind), &v
	case ast.OpDiv:
		v, ok := constant.Div(operandKind, l, r)
		if !ok {
			a.sink.Errorf(loc, diag.SEM003, "division by zero in constant expression")
			return resultType, nil
		}
		return types.Base(v.Kind), &v
	case ast.OpEq:
		v := constant.CompareEq(l, r)
		return resultType, &v
	case ast.OpNeq:
		v := constant.CompareNeq(l, r)
		return resultType, &v
	case ast.OpLt:
		v := constant.Bool(constant.CompareOrder(l, r) < 0)
		return resultType, &v
	case ast.OpLe:
		v := constant.Bool(constant.CompareOrder(l, r) <= 0)
		return resultType, &v
	case ast.OpGt:
		v := constant.Bool(constant.CompareOrder(l, r) > 0)
		return resultType, &v
	case ast.OpGe:
		v := constant.Bool(constant.CompareOrder(l, r) >= 0)
		return resultType, &v
	case ast.OpOr:
		v := constant.Bool(l.B || r.B)
		return resultType, &v
	case ast.OpAnd:
		v := constant.Bool(l.B && r.B)
		return resultType, &v
	case ast.OpBitOr:
		v := constant.Uint(operandKind, l.U|r.U)
		return resultType, &v
	case ast.OpBitXor:
		v := constant.Uint(operandKind, l.U^r.U)
		return resultType, &v
	case ast.OpBitAnd:
		v := constant.Uint(operandKind, l.U&r.U)
		return resultType, &v
	case ast.OpShl:
		v := constant.Uint(operandKind, l.U<<uint(r.U))
		return resultType, &v
	case ast.OpShr:
		v := constant.Uint(operandKind, l.U>>uint(r.U))
		return resultType, &v
	}
	return resultType, nil
}

// promoteConstant reinterprets a folded constant under the common kind
// picked by PromoteMixed, so Add/Sub/Mul/Div see matching-kind operands.
func promoteConstant(v constant.Value, k types.Kind) constant.Value {
	if v.Kind == k {
		return v
	}
	if k.IsFloat() {
		if v.Kind.IsFloat() {
			return constant.Float(k, v.F)
		}
		if v.Kind.IsUnsigned() {
			return constant.Float(k, float64(v.U))
		}
		return constant.Float(k, float64(v.I))
	}
	if v.Kind == types.KindBool {
		if v.B {
			return constant.Uint(k, 1)
		}
		return constant.Uint(k, 0)
	}
	if k.IsUnsigned() {
		return constant.Uint(k, v.U)
	}
	return constant.Int(k, v.I)
}

func (a *Analyzer) resolveUnary(n *ast.UnaryOperator) resolved.Expr {
	rhs := a.resolveExpr(n.Rhs)
	rt := rhs.ResolvedType()

	var resultType *types.Type
	var folded *constant.Value

	switch n.Op {
	case ast.OpNot:
		resultType = types.Base(types.KindBool)
		if c := rhs.Constant(); c != nil {
			v := constant.Bool(!c.B)
			folded = &v
		}
	case ast.OpNeg:
		resultType = rt
		if c := rhs.Constant(); c != nil && rt != nil {
			if rt.IsFloat() {
				v := constant.Float(rt.Kind, -c.F)
				folded = &v
			} else {
				v := constant.Int(rt.Kind, -c.I)
				folded = &v
			}
		}
	case ast.OpDeref:
		if rt != nil && rt.PointerDepth > 0 {
			resultType = rt.WithPointerDepth(rt.PointerDepth - 1)
		} else {
			a.sink.Errorf(n.Location, diag.SEM003, "cannot dereference non-pointer type")
			resultType = types.Base(types.KindVoid)
		}
	case ast.OpAddr:
		if rt != nil {
			resultType = rt.WithPointerDepth(rt.PointerDepth + 1)
		} else {
			resultType = types.Base(types.KindVoid).WithPointerDepth(1)
		}
	}

	return &resolved.UnaryOperator{ExprBase: resolved.ExprBase{Type: resultType, Const: folded, Location: n.Location}, Op: n.Op, Rhs: rhs}
}

func (a *Analyzer) resolveCast(n *ast.ExplicitCast) resolved.Expr {
	target := a.resolveType(n.TargetType)
	rhs := a.resolveExpr(n.Rhs)
	kind, ok := classifyCast(rhs.ResolvedType(), target)
	if !ok {
		a.sink.Errorf(n.Location, diag.SEM009, "invalid cast from %q to %q", rhs.ResolvedType(), target)
	}

	var folded *constant.Value
	if c := rhs.Constant(); c != nil && ok {
		folded = foldCast(kind, *c, target)
	}

	return &resolved.ExplicitCast{ExprBase: resolved.ExprBase{Type: target, Const: folded, Location: n.Location}, Kind: kind, Rhs: rhs}
}

// classifyCast picks one of the eight cast kinds of spec.md §4.5 for a
// from->to pair, or reports the cast as invalid.
func classifyCast(from, to *types.Type) (ast.CastKind, bool) {
	if from == nil || to == nil {
		return ast.CastNop, false
	}
	fromPtr, toPtr := from.PointerDepth > 0, to.PointerDepth > 0
	switch {
	case fromPtr && toPtr:
		return ast.CastPtr, true
	case fromPtr && !toPtr:
		if to.Kind.IsInteger() {
			return ast.CastPtrToInt, true
		}
		return ast.CastNop, false
	case !fromPtr && toPtr:
		if from.Kind.IsInteger() {
			return ast.CastIntToPtr, true
		}
		return ast.CastNop, false
	}

	if from.Kind == types.KindCustom || to.Kind == types.KindCustom {
		if from.Kind == to.Kind && from.CustomName == to.CustomName {
			return ast.CastNop, true
		}
		return ast.CastNop, false
	}

	switch {
	case from.Kind.IsFloat() && to.Kind.IsInteger():
		return ast.CastFloatToInt, true
	case from.Kind.IsInteger() && to.Kind.IsFloat():
		return ast.CastIntToFloat, true
	case from.Kind.IsFloat() && to.Kind.IsFloat():
		if types.KindRank(to.Kind) > types.KindRank(from.Kind) {
			return ast.CastExtend, true
		}
		if types.KindRank(to.Kind) < types.KindRank(from.Kind) {
			return ast.CastTruncate, true
		}
		return ast.CastNop, true
	case from.Kind.IsInteger() && to.Kind.IsInteger():
		if from.Kind == to.Kind {
			return ast.CastNop, true
		}
		if widerKind(to.Kind, from.Kind) {
			return ast.CastExtend, true
		}
		return ast.CastTruncate, true
	case from.Kind == types.KindBool || to.Kind == types.KindBool:
		return ast.CastNop, true
	}
	return ast.CastNop, false
}

// widerKind reports whether a's representation is strictly wider than b's,
// comparing byte width rather than raw rank (so i64 is not "wider" than
// u64 despite ranking higher, spec.md §3's widening note).
func widerKind(a, b types.Kind) bool {
	return scalarWidth(a) > scalarWidth(b)
}

func scalarWidth(k types.Kind) int {
	switch k {
	case types.KindU8, types.KindI8, types.KindBool:
		return 1
	case types.KindU16, types.KindI16:
		return 2
	case types.KindU32, types.KindI32, types.KindF32:
		return 4
	default:
		return 8
	}
}

func foldCast(kind ast.CastKind, v constant.Value, target *types.Type) *constant.Value {
	switch kind {
	case ast.CastIntToFloat:
		var f float64
		if v.Kind.IsUnsigned() {
			f = float64(v.U)
		} else {
			f = float64(v.I)
		}
		out := constant.Float(target.Kind, f)
		return &out
	case ast.CastFloatToInt:
		if target.Kind.IsUnsigned() {
			out := constant.Uint(target.Kind, uint64(v.F))
			return &out
		}
		out := constant.Int(target.Kind, int64(v.F))
		return &out
	case ast.CastExtend, ast.CastTruncate, ast.CastNop:
		if target.Kind.IsFloat() {
			out := constant.Float(target.Kind, v.F)
			return &out
		}
		if target.Kind.IsUnsigned() {
			out := constant.Uint(target.Kind, wrapUint(target.Kind, v.U))
			return &out
		}
		out := constant.Int(target.Kind, v.I)
		return &out
	default:
		return nil
	}
}

func wrapUint(k types.Kind, v uint64) uint64 {
	switch k {
	case types.KindU8:
		return uint64(uint8(v))
	case types.KindU16:
		return uint64(uint16(v))
	case types.KindU32:
		return uint64(uint32(v))
	default:
		return v
	}
}
