package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/parser"
	"github.com/sourcelang/slc/internal/source"
)

func parse(t *testing.T, src string) (*ast.File, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	buf := source.New("t.sl", []byte(src))
	p := parser.New(buf, sink)
	f := p.Parse()
	require.NotNil(t, f)
	return f, sink
}

func TestParseGlobalVarAndFunction(t *testing.T) {
	f, sink := parse(t, `
export var i32 counter = 0;

export fn i32 add(i32 a, i32 b) {
	return a + b;
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	require.Len(t, f.Decls, 2)

	v, ok := f.Decls[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "counter", v.Name)
	assert.True(t, v.Exported)
	assert.False(t, v.Const)

	fn, ok := f.Decls[1].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Statements, 1)

	ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
}

func TestParseStructAndEnum(t *testing.T) {
	f, sink := parse(t, `
struct Point {
	i32 x;
	i32 y;
}

enum Color : u8 {
	Red,
	Green = 5,
	Blue,
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	require.Len(t, f.Decls, 2)

	s, ok := f.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", s.Name)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, "x", s.Fields[0].Name)

	e, ok := f.Decls[1].(*ast.EnumDecl)
	require.True(t, ok)
	require.NotNil(t, e.Underlying)
	assert.Equal(t, "u8", e.Underlying.Name)
	require.Len(t, e.Members, 3)
	assert.Equal(t, "Green", e.Members[1].Name)
	require.NotNil(t, e.Members[1].Value)
}

func TestParseExternBlock(t *testing.T) {
	f, sink := parse(t, `
extern "m" {
	fn i32 puts(i8* s);
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	require.Len(t, f.Decls, 1)

	ext, ok := f.Decls[0].(*ast.ExternBlock)
	require.True(t, ok)
	assert.Equal(t, "m", ext.Library)
	require.Len(t, ext.Funcs, 1)
	assert.Equal(t, "puts", ext.Funcs[0].Name)
	assert.Nil(t, ext.Funcs[0].Body)
}

func TestOperatorPrecedence(t *testing.T) {
	f, sink := parse(t, `
fn i32 f() {
	return 1 + 2 * 3 == 7 && 1 | 2 ^ 3 & 4 != 0;
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := f.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)

	top, ok := ret.Value.(*ast.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, top.Op)

	lhs, ok := top.Lhs.(*ast.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, ast.OpEq, lhs.Op)

	addExpr, ok := lhs.Lhs.(*ast.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, addExpr.Op)
	mulExpr, ok := addExpr.Rhs.(*ast.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mulExpr.Op)
}

func TestCastVsGroupingDisambiguation(t *testing.T) {
	f, sink := parse(t, `
fn i32 f(i32 x) {
	return (i32)x + (x);
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := f.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	bin := ret.Value.(*ast.BinaryOperator)
	assert.Equal(t, ast.OpAdd, bin.Op)

	cast, ok := bin.Lhs.(*ast.ExplicitCast)
	require.True(t, ok)
	assert.Equal(t, "i32", cast.TargetType.Name)

	group, ok := bin.Rhs.(*ast.GroupingExpr)
	require.True(t, ok)
	ref, ok := group.Inner.(*ast.DeclRefExpr)
	require.True(t, ok)
	assert.Equal(t, "x", ref.Name)
}

func TestModuleQualifiedReferenceParsesAsDeclRef(t *testing.T) {
	f, sink := parse(t, `
fn i32 f() {
	return math::pi;
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := f.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	ref, ok := ret.Value.(*ast.DeclRefExpr)
	require.True(t, ok)
	assert.Equal(t, "math", ref.Module)
	assert.Equal(t, "pi", ref.Name)
}

func TestModuleQualifiedTypeNameParses(t *testing.T) {
	f, sink := parse(t, `
fn shapes::Point origin() {
	return (shapes::Point)0;
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := f.Decls[0].(*ast.FunctionDecl)
	assert.Equal(t, "shapes", fn.ReturnType.Module)
	assert.Equal(t, "Point", fn.ReturnType.Name)
}

func TestSwitchStatement(t *testing.T) {
	f, sink := parse(t, `
fn void f(i32 x) {
	switch (x) {
	case 1:
		return;
	default:
		return;
	}
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := f.Decls[0].(*ast.FunctionDecl)
	sw, ok := fn.Body.Statements[0].(*ast.SwitchStmt)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	require.NotNil(t, sw.Cases[0].Value)
	assert.Nil(t, sw.Cases[1].Value)
}

func TestForLoopAndAssignment(t *testing.T) {
	f, sink := parse(t, `
fn void f() {
	for (var i32 i = 0; i < 10; i = i + 1) {
		*p = i;
	}
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := f.Decls[0].(*ast.FunctionDecl)
	forStmt, ok := fn.Body.Statements[0].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", forStmt.Counter.Name)
	require.NotNil(t, forStmt.Cond)
	require.NotNil(t, forStmt.Increment)

	assign, ok := forStmt.Body.Statements[0].(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, 1, assign.DerefCount)
}

func TestSizeofAndAlignof(t *testing.T) {
	f, sink := parse(t, `
fn u64 f() {
	return sizeof(Point) + alignof(i32);
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := f.Decls[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	bin := ret.Value.(*ast.BinaryOperator)

	sz, ok := bin.Lhs.(*ast.SizeofExpr)
	require.True(t, ok)
	assert.Equal(t, "Point", sz.Type.Name)

	al, ok := bin.Rhs.(*ast.AlignofExpr)
	require.True(t, ok)
	assert.Equal(t, "i32", al.Type.Name)
}

func TestFunctionPointerType(t *testing.T) {
	f, sink := parse(t, `
var fn*i32(i32, i32) callback = null;
`)
	require.False(t, sink.HasErrors(), sink.All())
	v := f.Decls[0].(*ast.VarDecl)
	require.True(t, v.Type.IsFunc)
	assert.Equal(t, "i32", v.Type.FuncReturn.Name)
	require.Len(t, v.Type.FuncParams, 2)
}

func TestStructAndArrayLiterals(t *testing.T) {
	f, sink := parse(t, `
fn void f() {
	var Point p = .{ .x = 1, .y = 2 };
	var i32 xs = [1, 2, 3];
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := f.Decls[0].(*ast.FunctionDecl)

	decl1 := fn.Body.Statements[0].(*ast.DeclStmt)
	lit, ok := decl1.Decl.Initializer.(*ast.StructLiteralExpr)
	require.True(t, ok)
	require.Len(t, lit.Inits, 2)
	assert.Equal(t, "x", lit.Inits[0].FieldName)

	decl2 := fn.Body.Statements[1].(*ast.DeclStmt)
	arr, ok := decl2.Decl.Initializer.(*ast.ArrayLiteralExpr)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
}

func TestErrorRecoverySynchronisesOnNextTopLevelDecl(t *testing.T) {
	f, sink := parse(t, `
fn i32 broken( {{{
struct Fine {
	i32 a;
}
`)
	require.True(t, sink.HasErrors())
	require.False(t, f.IsCompleteAST)

	var names []string
	for _, d := range f.Decls {
		if s, ok := d.(*ast.StructDecl); ok {
			names = append(names, s.Name)
		}
	}
	assert.Contains(t, names, "Fine")
}

func TestVariadicExternFunction(t *testing.T) {
	f, sink := parse(t, `
extern "c" {
	fn i32 printf(i8* fmt, ...);
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	ext := f.Decls[0].(*ast.ExternBlock)
	fn := ext.Funcs[0]
	assert.True(t, fn.Variadic)
	require.Len(t, fn.Params, 1)
}
