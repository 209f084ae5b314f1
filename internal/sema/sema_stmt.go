package sema

import (
	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/sid"
	"github.com/sourcelang/slc/internal/source"
	"github.com/sourcelang/slc/internal/types"
)

// resolveBlock resolves a statement block in its own scope, threading
// returnType through for ReturnStmt's type check and tagging exactly one
// WARN001 at the first statement found unreachable after a ReturnStmt
// (spec.md §4.4).
func (a *Analyzer) resolveBlock(b *ast.Block, returnType *types.Type) *resolved.Block {
	a.pushScope()
	defer a.popScope()

	out := &resolved.Block{Location: b.Location}
	returned := false
	warned := false
	for _, s := range b.Statements {
		if returned && !warned {
			a.sink.Warnf(s.Pos(), diag.WARN001, "unreachable statement")
			warned = true
		}
		stmt := a.resolveStmt(s, returnType)
		if stmt != nil {
			out.Statements = append(out.Statements, stmt)
		}
		if _, ok := s.(*ast.ReturnStmt); ok {
			returned = true
		}
	}
	return out
}

func (a *Analyzer) resolveStmt(s ast.Stmt, returnType *types.Type) resolved.Stmt {
	switch n := s.(type) {
	case *ast.DeclStmt:
		return a.resolveDeclStmt(n)
	case *ast.Assignment:
		return a.resolveAssignment(n)
	case *ast.ReturnStmt:
		return a.resolveReturn(n, returnType)
	case *ast.IfStmt:
		return a.resolveIf(n, returnType)
	case *ast.WhileStmt:
		return &resolved.WhileStmt{
			Cond: a.resolveExprTyped(n.Cond, types.Base(types.KindBool)), Body: a.resolveBlock(n.Body, returnType),
			Location: n.Location,
		}
	case *ast.ForStmt:
		return a.resolveFor(n, returnType)
	case *ast.ExprStmt:
		return &resolved.ExprStmt{Value: a.resolveExpr(n.Value), Location: n.Location}
	case *ast.SwitchStmt:
		return a.resolveSwitch(n, returnType)
	case *ast.DeferStmt:
		a.sink.Errorf(n.Location, diag.SEM011, "defer is not supported")
		return nil
	}
	return nil
}

// declareLocal inserts a block-scoped declaration into the innermost
// scope, reporting SEM002 on a name collision with anything already
// visible in that same scope (shadowing an outer scope is legal).
func (a *Analyzer) declareLocal(name string, d resolved.Decl, loc source.Location) {
	inner := a.scopes[len(a.scopes)-1]
	if _, dup := inner[name]; dup {
		a.sink.Errorf(loc, diag.SEM002, "redeclaration of %q", name)
		return
	}
	inner[name] = d
}

func (a *Analyzer) resolveDeclStmt(n *ast.DeclStmt) resolved.Stmt {
	vd := &resolved.VarDecl{
		ID: a.mintID(sid.KindVar, n.Decl.Name), Name: n.Decl.Name,
		Type: a.resolveType(n.Decl.Type), Const: n.Decl.Const, Location: n.Decl.Location,
	}
	if n.Decl.Initializer != nil {
		vd.Initializer = a.resolveExprTyped(n.Decl.Initializer, vd.Type)
	} else if vd.Const {
		a.sink.Errorf(n.Decl.Location, diag.SEM003, "const variable %q requires an initializer", n.Decl.Name)
	}
	a.declareLocal(n.Decl.Name, vd, n.Decl.Location)
	return &resolved.DeclStmt{Decl: vd, Location: n.Location}
}

// resolveAssignment validates the lvalue per spec.md §3's `(*)*postfix`
// shape: a bare name must resolve to a non-const variable/parameter, and
// any leading `*` always produces a valid (pointer-typed) lvalue (SEM006).
func (a *Analyzer) resolveAssignment(n *ast.Assignment) resolved.Stmt {
	target := a.resolveExpr(n.Target)
	if n.DerefCount == 0 {
		if ref, ok := target.(*resolved.DeclRefExpr); ok {
			if isConstDecl(ref.Decl) {
				a.sink.Errorf(n.Location, diag.SEM006, "cannot assign to const")
			}
		} else if _, ok := target.(*resolved.MemberAccess); !ok {
			if _, ok := target.(*resolved.ArrayElementAccess); !ok {
				a.sink.Errorf(n.Location, diag.SEM006, "invalid assignment target")
			}
		}
	}

	var expected *types.Type
	if t := target.ResolvedType(); t != nil {
		expected = t.WithPointerDepth(t.PointerDepth - n.DerefCount)
	}
	rhs := a.resolveExprTyped(n.Rhs, expected)
	return &resolved.Assignment{Target: target, DerefCount: n.DerefCount, Rhs: rhs, Location: n.Location}
}

func isConstDecl(d resolved.Decl) bool {
	switch v := d.(type) {
	case *resolved.VarDecl:
		return v.Const
	case *resolved.ParamDecl:
		return v.Const
	}
	return false
}

func (a *Analyzer) resolveReturn(n *ast.ReturnStmt, returnType *types.Type) resolved.Stmt {
	var value resolved.Expr
	if n.Value != nil {
		value = a.resolveExprTyped(n.Value, returnType)
	} else if returnType != nil && returnType.Kind != types.KindVoid {
		a.sink.Errorf(n.Location, diag.SEM003, "missing return value for non-void function")
	}
	return &resolved.ReturnStmt{Value: value, Location: n.Location}
}

func (a *Analyzer) resolveIf(n *ast.IfStmt, returnType *types.Type) resolved.Stmt {
	out := &resolved.IfStmt{
		Cond: a.resolveExprTyped(n.Cond, types.Base(types.KindBool)),
		Then: a.resolveBlock(n.Then, returnType),
		Location: n.Location,
	}
	if n.ElseIf != nil {
		elseIf := a.resolveIf(n.ElseIf, returnType).(*resolved.IfStmt)
		out.ElseIf = elseIf
	} else if n.Else != nil {
		out.Else = a.resolveBlock(n.Else, returnType)
	}
	return out
}

// resolveFor gives the loop counter its own header scope that is
// visible to cond/increment/body but nothing outside the loop (spec.md
// §4.4's "for-loop header scope").
func (a *Analyzer) resolveFor(n *ast.ForStmt, returnType *types.Type) resolved.Stmt {
	a.pushScope()
	defer a.popScope()

	var counter *resolved.VarDecl
	if n.Counter != nil {
		counter = &resolved.VarDecl{
			ID: a.mintID(sid.KindVar, n.Counter.Name), Name: n.Counter.Name,
			Type: a.resolveType(n.Counter.Type), Const: n.Counter.Const, Location: n.Counter.Location,
		}
		if n.Counter.Initializer != nil {
			counter.Initializer = a.resolveExprTyped(n.Counter.Initializer, counter.Type)
		}
		a.declareLocal(n.Counter.Name, counter, n.Counter.Location)
	}

	var cond resolved.Expr
	if n.Cond != nil {
		cond = a.resolveExprTyped(n.Cond, types.Base(types.KindBool))
	}
	var increment resolved.Stmt
	if n.Increment != nil {
		increment = a.resolveStmt(n.Increment, returnType)
	}

	return &resolved.ForStmt{
		Counter: counter, Cond: cond, Increment: increment,
		Body: a.resolveBlock(n.Body, returnType), Location: n.Location,
	}
}

func (a *Analyzer) resolveSwitch(n *ast.SwitchStmt, returnType *types.Type) resolved.Stmt {
	subject := a.resolveExpr(n.Subject)
	out := &resolved.SwitchStmt{Subject: subject, Location: n.Location}
	for _, c := range n.Cases {
		cc := &resolved.CaseClause{}
		if c.Value != nil {
			resolvedVal := a.resolveExprTyped(c.Value, subject.ResolvedType())
			cc.Value = resolvedVal.Constant()
			if cc.Value == nil {
				a.sink.Errorf(c.Location, diag.SEM003, "case value must be a compile-time constant")
			}
		}
		a.pushScope()
		for _, s := range c.Body {
			if stmt := a.resolveStmt(s, returnType); stmt != nil {
				cc.Body = append(cc.Body, stmt)
			}
		}
		a.popScope()
		out.Cases = append(out.Cases, cc)
	}
	return out
}
