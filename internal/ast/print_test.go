package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/parser"
	"github.com/sourcelang/slc/internal/source"
)

func parseSource(t *testing.T, src string) *ast.File {
	t.Helper()
	sink := diag.NewSink()
	buf := source.New("roundtrip.sl", []byte(src))
	f := parser.New(buf, sink).Parse()
	require.False(t, sink.HasErrors(), sink.All())
	return f
}

// locationInvariant treats every source.Location as equal to every
// other: Print does not preserve byte offsets, so the round-trip
// comparison below must ignore them.
var locationInvariant = cmp.Comparer(func(a, b source.Location) bool { return true })

// TestPrintParseRoundTrip checks Print(Parse(Print(f))) == Print(f), and
// that the reparsed declaration list is structurally identical to the
// original modulo source locations (Q5's testable property).
func TestPrintParseRoundTrip(t *testing.T) {
	sources := []string{
		`export var i32 counter = 0;`,
		`
struct Point {
	i32 x;
	i32 y;
}
`,
		`
enum Color : u8 {
	Red,
	Green = 5,
	Blue,
}
`,
		`
export fn i32 add(i32 a, i32 b) {
	return a + b;
}
`,
		`
extern "c" {
	fn i32 printf(i8* fmt, ...);
}
`,
		`
fn void f(i32 x) {
	var i32 y = (i32)x + (x);
	if (y > 0) {
		return;
	} else {
		y = y - 1;
	}
	while (y > 0) {
		y = y - 1;
	}
	for (var i32 i = 0; i < 10; i = i + 1) {
		*p = i;
	}
	switch (x) {
	case 1:
		return;
	default:
		return;
	}
}
`,
	}

	for _, src := range sources {
		original := parseSource(t, src)
		printed := ast.Print(original)
		reparsed := parseSource(t, printed)
		reprinted := ast.Print(reparsed)

		require.Equal(t, printed, reprinted, "printing is not idempotent for:\n%s", src)

		diff := cmp.Diff(original.Decls, reparsed.Decls,
			locationInvariant,
			cmpopts.EquateEmpty(),
		)
		require.Empty(t, diff, "round-tripped AST differs for:\n%s", src)
	}
}
