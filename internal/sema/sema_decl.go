package sema

import (
	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/sid"
)

// collectFunctionSignatures resolves every function's signature first
// and inserts it into a.funcs, so bodies can reference forward-declared
// functions (spec.md §4.4's function resolution pipeline, step 1).
func (a *Analyzer) collectFunctionSignatures(f *ast.File) {
	register := func(n *ast.FunctionDecl) {
		if _, dup := a.funcs[n.Name]; dup {
			a.sink.Errorf(n.Location, diag.SEM002, "redeclaration of %q", n.Name)
			return
		}
		params := make([]*resolved.ParamDecl, len(n.Params))
		for i, p := range n.Params {
			params[i] = &resolved.ParamDecl{
				ID: a.mintID(sid.KindParam, n.Name+"."+p.Name), Name: p.Name,
				Type: a.resolveType(p.Type), Const: p.Const, Location: p.Location,
			}
		}
		a.funcs[n.Name] = &resolved.FunctionDecl{
			ID: a.mintID(sid.KindFunc, n.Name), Name: n.Name,
			ReturnType: a.resolveType(n.ReturnType), Params: params, Variadic: n.Variadic,
			Exported: n.Exported, Library: n.Library, OriginalName: n.OriginalName,
			Location: n.Location,
		}
	}

	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.FunctionDecl:
			register(n)
		case *ast.ExternBlock:
			for _, efn := range n.Funcs {
				register(efn)
			}
		}
	}
}

// collectGlobalSignatures resolves every module-scope variable's type
// (but not yet its initializer expression, which may reference other
// globals or functions declared later in source order) and inserts it
// into a.globals.
func (a *Analyzer) collectGlobalSignatures(f *ast.File) {
	for _, d := range f.Decls {
		n, ok := d.(*ast.VarDecl)
		if !ok {
			continue
		}
		if _, dup := a.globals[n.Name]; dup {
			a.sink.Errorf(n.Location, diag.SEM002, "redeclaration of %q", n.Name)
			continue
		}
		a.globals[n.Name] = &resolved.VarDecl{
			ID: a.mintID(sid.KindVar, n.Name), Name: n.Name,
			Type: a.resolveType(n.Type), Const: n.Const, Global: true,
			Exported: n.Exported, Location: n.Location,
		}
	}
}

// resolveGlobalInitializer resolves a module-scope variable's
// initializer expression now that every global/function signature is
// known. I3: a const or global variable must have a non-absent
// initializer.
func (a *Analyzer) resolveGlobalInitializer(n *ast.VarDecl) *resolved.VarDecl {
	v := a.globals[n.Name]
	if n.Initializer != nil {
		v.Initializer = a.resolveExpr(n.Initializer)
	} else {
		a.sink.Errorf(n.Location, diag.SEM003, "global variable %q requires an initializer", n.Name)
	}
	return v
}

// resolveFunctionBody resolves one function's body: push a parameter
// scope, insert params, resolve the block (spec.md §4.4 step 2).
func (a *Analyzer) resolveFunctionBody(fn *resolved.FunctionDecl, n *ast.FunctionDecl) {
	a.pushScope()
	defer a.popScope()

	for _, p := range fn.Params {
		a.scopes[len(a.scopes)-1][p.Name] = p
	}

	fn.Body = a.resolveBlock(n.Body, fn.ReturnType)
}
