// Package cfg builds a per-function reverse control-flow graph from a
// resolved.FunctionDecl's body, grounded on
// original_source/compiler/src/cfg.cpp's CFGBuilder: basic blocks are
// discovered by walking each block's statements back to front, entry is
// wired up last, and branch edges carry a `reachable` flag derived from
// any folded constant the condition carries (spec.md §4.6).
package cfg

import (
	"github.com/sourcelang/slc/internal/constant"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/types"
)

// Edge is one predecessor/successor link. Reachable is false for a branch
// that a folded constant condition proves is never taken, letting a
// downstream consumer flag genuinely dead code distinctly from merely
// unreachable-after-return code (WARN001 already covers the latter).
type Edge struct {
	To        int
	Reachable bool
}

// Item is one node placed into a basic block: either a full statement or
// a leaf expression discovered while descending into one (resolved.Stmt
// and resolved.Expr are distinct interfaces, so a block needs room for
// both kinds of node).
type Item struct {
	Stmt resolved.Stmt
	Expr resolved.Expr
}

// BasicBlock holds its statements in reverse-discovery (builder) order;
// callers that want source order should iterate Statements in reverse.
type BasicBlock struct {
	Predecessors []Edge
	Successors   []Edge
	Statements   []Item
}

// CFG is one function's basic-block graph. Entry and Exit are indices
// into Blocks. Block 0 is always the function's sole exit block (built
// first, per the teacher algorithm), and Entry is always the
// highest-numbered block.
type CFG struct {
	Blocks []*BasicBlock
	Entry  int
	Exit   int
}

func (c *CFG) insertNewBlock() int {
	c.Blocks = append(c.Blocks, &BasicBlock{})
	return len(c.Blocks) - 1
}

func (c *CFG) insertNewBlockBefore(before int, reachable bool) int {
	b := c.insertNewBlock()
	c.insertEdge(b, before, reachable)
	return b
}

func (c *CFG) insertEdge(from, to int, reachable bool) {
	c.Blocks[from].Successors = append(c.Blocks[from].Successors, Edge{To: to, Reachable: reachable})
	c.Blocks[to].Predecessors = append(c.Blocks[to].Predecessors, Edge{To: from, Reachable: reachable})
}

func (c *CFG) insertStmt(s resolved.Stmt, block int) {
	c.Blocks[block].Statements = append(c.Blocks[block].Statements, Item{Stmt: s})
}

func (c *CFG) insertExprItem(e resolved.Expr, block int) {
	c.Blocks[block].Statements = append(c.Blocks[block].Statements, Item{Expr: e})
}

type builder struct {
	cfg  *CFG
	sink *diag.Sink
}

// Build constructs the CFG for one function body. fn.Body must be
// non-nil (a declaration-only/extern function has no graph to build).
func Build(fn *resolved.FunctionDecl, sink *diag.Sink) *CFG {
	b := &builder{cfg: &CFG{}, sink: sink}
	b.cfg.Exit = b.cfg.insertNewBlock()
	body := b.insertBlock(fn.Body, b.cfg.Exit)
	b.cfg.Entry = b.cfg.insertNewBlockBefore(body, true)
	return b.cfg
}

// isTerminator reports whether a statement ends a straight-line run of
// statements within one basic block. ForStmt/SwitchStmt are this
// repo's own extension of spec.md §4.6's terminator set (the original
// implementation leaves both as no-ops, see insertStmt's default below).
func isTerminator(s resolved.Stmt) bool {
	switch s.(type) {
	case *resolved.ReturnStmt, *resolved.IfStmt, *resolved.WhileStmt, *resolved.ForStmt, *resolved.SwitchStmt:
		return true
	}
	return false
}

func (b *builder) insertBlock(blk *resolved.Block, successor int) int {
	stmts := blk.Statements
	shouldInsertBlock := true
	for i := len(stmts) - 1; i >= 0; i-- {
		st := stmts[i]
		if shouldInsertBlock && !isTerminator(st) {
			successor = b.cfg.insertNewBlockBefore(successor, true)
		}
		_, shouldInsertBlock = st.(*resolved.WhileStmt)
		successor = b.insertStmt(st, successor)
	}
	return successor
}

func (b *builder) insertStmt(s resolved.Stmt, block int) int {
	switch st := s.(type) {
	case *resolved.IfStmt:
		return b.insertIf(st, block)
	case *resolved.WhileStmt:
		return b.insertWhile(st, block)
	case *resolved.ForStmt:
		return b.insertFor(st, block)
	case *resolved.SwitchStmt:
		return b.insertSwitch(st, block)
	case *resolved.ReturnStmt:
		return b.insertReturn(st, block)
	case *resolved.DeclStmt:
		return b.insertDecl(st, block)
	case *resolved.Assignment:
		return b.insertAssignment(st, block)
	case *resolved.ExprStmt:
		b.cfg.insertStmt(st, block)
		return b.insertExpr(st.Value, block)
	case *resolved.Block:
		return b.insertBlock(st, block)
	default:
		if b.sink != nil {
			b.sink.Errorf(s.Pos(), diag.INT001, "unrecognised resolved statement %T reached the CFG builder", s)
		}
		return block
	}
}

func (b *builder) insertIf(ifStmt *resolved.IfStmt, exit int) int {
	falseBlock := exit
	switch {
	case ifStmt.Else != nil:
		falseBlock = b.insertBlock(ifStmt.Else, exit)
	case ifStmt.ElseIf != nil:
		falseBlock = b.insertIf(ifStmt.ElseIf, exit)
	}
	trueBlock := b.insertBlock(ifStmt.Then, exit)
	entry := b.cfg.insertNewBlock()

	trueReachable, falseReachable := branchReachability(ifStmt.Cond)
	b.cfg.insertEdge(entry, trueBlock, trueReachable)
	b.cfg.insertEdge(entry, falseBlock, falseReachable)
	b.cfg.insertStmt(ifStmt, entry)
	return b.insertExpr(ifStmt.Cond, entry)
}

func (b *builder) insertWhile(ws *resolved.WhileStmt, exit int) int {
	latch := b.cfg.insertNewBlock()
	body := b.insertBlock(ws.Body, latch)
	header := b.cfg.insertNewBlock()
	b.cfg.insertEdge(latch, header, true)

	bodyReachable, exitReachable := branchReachability(ws.Cond)
	b.cfg.insertEdge(header, body, bodyReachable)
	b.cfg.insertEdge(header, exit, exitReachable)
	b.cfg.insertStmt(ws, header)
	b.insertExpr(ws.Cond, header)
	return header
}

// insertFor mirrors insertWhile's header/body/latch shape, with the
// counter declaration wired into its own block ahead of the header and
// the increment statement folded into the latch (DESIGN.md's
// terminator-set extension; the original implementation leaves ForStmt
// as a no-op).
func (b *builder) insertFor(fs *resolved.ForStmt, exit int) int {
	latch := b.cfg.insertNewBlock()
	if fs.Increment != nil {
		b.insertStmt(fs.Increment, latch)
	}
	body := b.insertBlock(fs.Body, latch)
	header := b.cfg.insertNewBlock()
	b.cfg.insertEdge(latch, header, true)

	var bodyReachable, exitReachable bool
	if fs.Cond != nil {
		bodyReachable, exitReachable = branchReachability(fs.Cond)
	} else {
		bodyReachable, exitReachable = true, false
	}
	b.cfg.insertEdge(header, body, bodyReachable)
	b.cfg.insertEdge(header, exit, exitReachable)
	b.cfg.insertStmt(fs, header)
	if fs.Cond != nil {
		b.insertExpr(fs.Cond, header)
	}

	init := header
	if fs.Counter != nil {
		init = b.cfg.insertNewBlockBefore(header, true)
		if fs.Counter.Initializer != nil {
			b.insertExpr(fs.Counter.Initializer, init)
		}
	}
	return init
}

// insertSwitch wires one edge per case from a single dispatch block to
// that case's own block, falling through to exit when no case's folded
// value is known to match (DESIGN.md's terminator-set extension;
// the original implementation leaves SwitchStmt as a no-op).
func (b *builder) insertSwitch(sw *resolved.SwitchStmt, exit int) int {
	entry := b.cfg.insertNewBlock()
	subjectConst := sw.Subject.Constant()
	hasDefault, matched := false, false
	for i := len(sw.Cases) - 1; i >= 0; i-- {
		c := sw.Cases[i]
		caseBlock := b.cfg.insertNewBlockBefore(exit, true)
		for j := len(c.Body) - 1; j >= 0; j-- {
			caseBlock = b.insertStmt(c.Body[j], caseBlock)
		}
		reachable := true
		if c.Value == nil {
			hasDefault = true
		} else if subjectConst != nil {
			reachable = constEquals(*subjectConst, *c.Value)
			matched = matched || reachable
		}
		b.cfg.insertEdge(entry, caseBlock, reachable)
	}
	if !hasDefault {
		b.cfg.insertEdge(entry, exit, subjectConst == nil || !matched)
	}
	b.cfg.insertStmt(sw, entry)
	return b.insertExpr(sw.Subject, entry)
}

func constEquals(a, b constant.Value) bool {
	return a.AsU64() == b.AsU64()
}

// branchReachability derives the (taken, not-taken) reachability flags
// from a condition's folded constant: a definite value makes the other
// edge unreachable, anything else leaves both conservatively reachable.
func branchReachability(cond resolved.Expr) (takenReachable, notTakenReachable bool) {
	c := cond.Constant()
	if c == nil || c.Kind != types.KindBool {
		return true, true
	}
	return c.B, !c.B
}

func (b *builder) insertExpr(e resolved.Expr, block int) int {
	b.cfg.insertExprItem(e, block)
	switch ex := e.(type) {
	case *resolved.CallExpr:
		for i := len(ex.Args) - 1; i >= 0; i-- {
			b.insertExpr(ex.Args[i], block)
		}
		return block
	case *resolved.BinaryOperator:
		b.insertExpr(ex.Rhs, block)
		b.insertExpr(ex.Lhs, block)
		return block
	case *resolved.UnaryOperator:
		return b.insertExpr(ex.Rhs, block)
	case *resolved.ExplicitCast:
		return b.insertExpr(ex.Rhs, block)
	case *resolved.MemberAccess:
		return b.insertExpr(ex.Base, block)
	case *resolved.ArrayElementAccess:
		for i := len(ex.Indices) - 1; i >= 0; i-- {
			b.insertExpr(ex.Indices[i], block)
		}
		return b.insertExpr(ex.Base, block)
	}
	return block
}

func (b *builder) insertReturn(ret *resolved.ReturnStmt, block int) int {
	block = b.cfg.insertNewBlockBefore(b.cfg.Exit, true)
	b.cfg.insertStmt(ret, block)
	if ret.Value != nil {
		return b.insertExpr(ret.Value, block)
	}
	return block
}

func (b *builder) insertDecl(stmt *resolved.DeclStmt, block int) int {
	b.cfg.insertStmt(stmt, block)
	if stmt.Decl.Initializer != nil {
		return b.insertExpr(stmt.Decl.Initializer, block)
	}
	return block
}

func (b *builder) insertAssignment(a *resolved.Assignment, block int) int {
	b.cfg.insertStmt(a, block)
	return b.insertExpr(a.Rhs, block)
}
