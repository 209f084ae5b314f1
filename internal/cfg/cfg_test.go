package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcelang/slc/internal/cfg"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/parser"
	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/sema"
	"github.com/sourcelang/slc/internal/source"
)

func buildFunc(t *testing.T, src, name string) (*cfg.CFG, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	buf := source.New("t.sl", []byte(src))
	f := parser.New(buf, sink).Parse()
	require.True(t, f.IsCompleteAST, sink.All())
	mod := sema.New("t", sink, nil).AnalyzeFile(f)
	require.False(t, sink.HasErrors(), sink.All())

	var fn *resolved.FunctionDecl
	for _, d := range mod.Decls {
		if cand, ok := d.(*resolved.FunctionDecl); ok && cand.Name == name {
			fn = cand
		}
	}
	require.NotNil(t, fn)
	return cfg.Build(fn, sink), sink
}

func TestEmptyFunctionHasEntryExitEdge(t *testing.T) {
	g, _ := buildFunc(t, `fn void f() {}`, "f")
	require.NotEqual(t, g.Entry, g.Exit)
	require.Len(t, g.Blocks[g.Entry].Successors, 1)
	assert.Equal(t, g.Exit, g.Blocks[g.Entry].Successors[0].To)
	assert.True(t, g.Blocks[g.Entry].Successors[0].Reachable)
}

func TestReturnSplitsIntoItsOwnBlock(t *testing.T) {
	g, _ := buildFunc(t, `
fn i32 f() {
	return 1;
}
`, "f")
	require.NotEqual(t, g.Entry, g.Exit)
	require.Len(t, g.Blocks[g.Entry].Successors, 1)
	returnBlock := g.Blocks[g.Entry].Successors[0].To
	assert.NotEqual(t, g.Exit, returnBlock)
	require.Len(t, g.Blocks[returnBlock].Successors, 1)
	assert.Equal(t, g.Exit, g.Blocks[returnBlock].Successors[0].To)
}

func TestIfStmtProducesTwoBranchEdges(t *testing.T) {
	g, _ := buildFunc(t, `
fn void f(i32 x) {
	if (x) {
		return;
	} else {
		return;
	}
}
`, "f")
	require.Len(t, g.Blocks[g.Entry].Successors, 1)
	ifBlock := g.Blocks[g.Entry].Successors[0].To
	require.Len(t, g.Blocks[ifBlock].Successors, 2)
	for _, e := range g.Blocks[ifBlock].Successors {
		assert.True(t, e.Reachable)
	}
}

func TestConstantTrueConditionMarksElseUnreachable(t *testing.T) {
	g, _ := buildFunc(t, `
fn void f() {
	if (true) {
		return;
	} else {
		return;
	}
}
`, "f")
	ifBlock := g.Blocks[g.Entry].Successors[0].To
	require.Len(t, g.Blocks[ifBlock].Successors, 2)
	var reachableCount int
	for _, e := range g.Blocks[ifBlock].Successors {
		if e.Reachable {
			reachableCount++
		}
	}
	assert.Equal(t, 1, reachableCount)
}

func TestWhileStmtWiresHeaderLatchAndBody(t *testing.T) {
	g, _ := buildFunc(t, `
fn void f(i32 x) {
	while (x) {
		x = x - 1;
	}
}
`, "f")
	header := g.Blocks[g.Entry].Successors[0].To
	require.Len(t, g.Blocks[header].Successors, 2)
}

func TestRecognisedStatementsDoNotReportINT001(t *testing.T) {
	g, sink := buildFunc(t, `fn void f() {}`, "f")
	require.NotNil(t, g)
	for _, d := range sink.All() {
		assert.NotEqual(t, diag.INT001, d.Code)
	}
}
