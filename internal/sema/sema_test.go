package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/parser"
	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/sema"
	"github.com/sourcelang/slc/internal/sid"
	"github.com/sourcelang/slc/internal/source"
	"github.com/sourcelang/slc/internal/types"
)

func analyze(t *testing.T, src string) (*resolved.Module, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	buf := source.New("t.sl", []byte(src))
	f := parser.New(buf, sink).Parse()
	require.True(t, f.IsCompleteAST, sink.All())
	a := sema.New("t", sink, nil)
	return a.AnalyzeFile(f), sink
}

func funcByName(mod *resolved.Module, name string) *resolved.FunctionDecl {
	for _, d := range mod.Decls {
		if fn, ok := d.(*resolved.FunctionDecl); ok && fn.Name == name {
			return fn
		}
	}
	return nil
}

func TestResolveTypeFindsImportedStructQualified(t *testing.T) {
	pointDecl := &resolved.StructDecl{
		ID: sid.ID("shapes.Point"), Name: "Point", Exported: true,
		Fields: []*resolved.StructField{{Name: "x", Type: types.Base(types.KindI32)}},
	}
	imports := map[string]sema.ExportTable{"shapes": {"Point": pointDecl}}

	sink := diag.NewSink()
	buf := source.New("t.sl", []byte(`
import shapes;

export fn void origin(shapes::Point p) {
	return;
}
`))
	f := parser.New(buf, sink).Parse()
	require.True(t, f.IsCompleteAST, sink.All())
	mod := sema.New("app", sink, imports).AnalyzeFile(f)
	require.False(t, sink.HasErrors(), sink.All())

	fn := funcByName(mod, "origin")
	require.NotNil(t, fn)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, types.KindCustom, fn.Params[0].Type.Kind)
	assert.Equal(t, "Point", fn.Params[0].Type.CustomName)
}

func TestResolveTypeFindsImportedStructUnqualified(t *testing.T) {
	pointDecl := &resolved.StructDecl{
		ID: sid.ID("shapes.Point"), Name: "Point", Exported: true,
		Fields: []*resolved.StructField{{Name: "x", Type: types.Base(types.KindI32)}},
	}
	imports := map[string]sema.ExportTable{"shapes": {"Point": pointDecl}}

	sink := diag.NewSink()
	buf := source.New("t.sl", []byte(`
import shapes;

export fn void origin(Point p) {
	return;
}
`))
	f := parser.New(buf, sink).Parse()
	require.True(t, f.IsCompleteAST, sink.All())
	mod := sema.New("app", sink, imports).AnalyzeFile(f)
	require.False(t, sink.HasErrors(), sink.All())

	fn := funcByName(mod, "origin")
	require.NotNil(t, fn)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, types.KindCustom, fn.Params[0].Type.Kind)
}

func TestResolvesGlobalAndFunctionSignature(t *testing.T) {
	mod, sink := analyze(t, `
export var i32 counter = 0;

export fn i32 add(i32 a, i32 b) {
	return a + b;
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	require.Len(t, mod.Decls, 2)

	v, ok := mod.Decls[0].(*resolved.VarDecl)
	require.True(t, ok)
	assert.Equal(t, types.KindI32, v.Type.Kind)
	require.NotNil(t, v.Initializer.Constant())
	assert.Equal(t, int64(0), v.Initializer.Constant().AsInt64())

	fn := funcByName(mod, "add")
	require.NotNil(t, fn)
	assert.Len(t, fn.Params, 2)
	require.Len(t, fn.Body.Statements, 1)
	ret, ok := fn.Body.Statements[0].(*resolved.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*resolved.BinaryOperator)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
}

func TestConstantFoldingWidensOnOverflow(t *testing.T) {
	mod, sink := analyze(t, `
export var u16 big = 200 * 200;
`)
	require.False(t, sink.HasErrors(), sink.All())
	v := mod.Decls[0].(*resolved.VarDecl)
	c := v.Initializer.Constant()
	require.NotNil(t, c)
	assert.Equal(t, types.KindU16, c.Kind)
	assert.Equal(t, uint64(40000), c.AsU64())
}

func TestUndeclaredIdentifierReportsSEM001(t *testing.T) {
	_, sink := analyze(t, `
export fn i32 bad() {
	return missing;
}
`)
	require.True(t, sink.HasErrors())
	assert.Equal(t, diag.SEM001, sink.All()[0].Code)
}

func TestRedeclarationReportsSEM002(t *testing.T) {
	_, sink := analyze(t, `
var i32 x = 1;
var i32 x = 2;
`)
	require.True(t, sink.HasErrors())
	assert.Equal(t, diag.SEM002, sink.All()[0].Code)
}

func TestGlobalWithoutInitializerReportsSEM003(t *testing.T) {
	_, sink := analyze(t, `
var i32 x;
`)
	require.True(t, sink.HasErrors())
	assert.Equal(t, diag.SEM003, sink.All()[0].Code)
}

func TestWrongArityReportsSEM004(t *testing.T) {
	_, sink := analyze(t, `
fn i32 add(i32 a, i32 b) { return a + b; }
fn void caller() {
	var i32 r = add(1);
}
`)
	require.True(t, sink.HasErrors())
	found := false
	for _, d := range sink.All() {
		if d.Code == diag.SEM004 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRecursiveByValueStructReportsSEM007(t *testing.T) {
	_, sink := analyze(t, `
struct Node {
	i32 value;
	Node next;
}
`)
	require.True(t, sink.HasErrors())
	assert.Equal(t, diag.SEM007, sink.All()[0].Code)
}

func TestRecursiveStructThroughPointerIsAllowed(t *testing.T) {
	_, sink := analyze(t, `
struct Node {
	i32 value;
	Node* next;
}
`)
	assert.False(t, sink.HasErrors(), sink.All())
}

func TestEnumImplicitAndExplicitValues(t *testing.T) {
	mod, sink := analyze(t, `
enum Color {
	Red,
	Green = 5,
	Blue,
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	ed := mod.Decls[0].(*resolved.EnumDecl)
	assert.Equal(t, int64(0), ed.Members[0].Value)
	assert.Equal(t, int64(5), ed.Members[1].Value)
	assert.Equal(t, int64(6), ed.Members[2].Value)
}

func TestEnumMemberAccessResolvesToEnumElementAccess(t *testing.T) {
	mod, sink := analyze(t, `
enum Color { Red, Green, Blue }

export fn Color pick() {
	return Color::Green;
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := funcByName(mod, "pick")
	require.NotNil(t, fn)
	ret := fn.Body.Statements[0].(*resolved.ReturnStmt)
	access, ok := ret.Value.(*resolved.EnumElementAccess)
	require.True(t, ok)
	assert.Equal(t, 1, access.MemberIndex)
}

func TestDeferIsRejectedWithSEM011(t *testing.T) {
	_, sink := analyze(t, `
fn void f() {
	defer g();
}
fn void g() {}
`)
	require.True(t, sink.HasErrors())
	codes := map[diag.Code]bool{}
	for _, d := range sink.All() {
		codes[d.Code] = true
	}
	assert.True(t, codes[diag.SEM011])
}

func TestUnreachableStatementWarnsOnce(t *testing.T) {
	_, sink := analyze(t, `
fn i32 f() {
	return 1;
	var i32 a = 2;
	var i32 b = 3;
}
`)
	warnings := 0
	for _, d := range sink.All() {
		if d.Code == diag.WARN001 {
			warnings++
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestSizeofAndAlignofFoldToU64Constants(t *testing.T) {
	mod, sink := analyze(t, `
export var u64 s = sizeof(i32);
export var u64 al = alignof(i64);
`)
	require.False(t, sink.HasErrors(), sink.All())
	s := mod.Decls[0].(*resolved.VarDecl)
	al := mod.Decls[1].(*resolved.VarDecl)
	assert.Equal(t, uint64(4), s.Initializer.Constant().AsU64())
	assert.Equal(t, uint64(8), al.Initializer.Constant().AsU64())
}

func TestExplicitCastClassification(t *testing.T) {
	mod, sink := analyze(t, `
export fn i64 widen(i32 x) {
	return (i64)x;
}
`)
	require.False(t, sink.HasErrors(), sink.All())
	fn := funcByName(mod, "widen")
	ret := fn.Body.Statements[0].(*resolved.ReturnStmt)
	cast, ok := ret.Value.(*resolved.ExplicitCast)
	require.True(t, ok)
	assert.Equal(t, ast.CastExtend, cast.Kind)
}
