// Package sema implements name and type resolution: it folds an
// internal/ast.File into an internal/resolved.Module, maintaining a
// scope stack, resolving struct/enum/function signatures before bodies,
// and driving internal/constant to fold every resolved expression's
// constant value (spec.md §4.4).
package sema

import (
	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/sid"
)

// ExportTable maps an exported name to its resolved declaration, built
// by AnalyzeFile and consumed by dependent modules' Analyzers (spec.md
// §3's "exported symbol table", §4.3's bottom-up merge).
type ExportTable map[string]resolved.Decl

// Analyzer resolves one module's AST into a resolved.Module.
type Analyzer struct {
	path    string // this module's identity, used to mint sid.IDs
	sink    *diag.Sink
	imports map[string]ExportTable // imported module identity -> its exports

	structs map[string]*resolved.StructDecl
	enums   map[string]*resolved.EnumDecl
	funcs   map[string]*resolved.FunctionDecl
	globals map[string]*resolved.VarDecl

	scopes []map[string]resolved.Decl

	layouts map[*resolved.StructDecl]resolved.Layout
}

// New creates an Analyzer for one module. imports maps each module name
// this file `import`s to that module's already-resolved export table
// (spec.md §4.3: sema runs bottom-up so dependency exports are ready).
func New(path string, sink *diag.Sink, imports map[string]ExportTable) *Analyzer {
	return &Analyzer{
		path:    path,
		sink:    sink,
		imports: imports,
		structs: make(map[string]*resolved.StructDecl),
		enums:   make(map[string]*resolved.EnumDecl),
		funcs:   make(map[string]*resolved.FunctionDecl),
		globals: make(map[string]*resolved.VarDecl),
	}
}

func (a *Analyzer) pushScope() { a.scopes = append(a.scopes, map[string]resolved.Decl{}) }
func (a *Analyzer) popScope()  { a.scopes = a.scopes[:len(a.scopes)-1] }

// lookup walks the scope stack outward, then functions and globals,
// returning the first match (I1/I2's "first matching declaration" rule).
func (a *Analyzer) lookup(name string) (resolved.Decl, bool) {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if d, ok := a.scopes[i][name]; ok {
			return d, true
		}
	}
	if d, ok := a.funcs[name]; ok {
		return d, true
	}
	if d, ok := a.globals[name]; ok {
		return d, true
	}
	return nil, false
}

// AnalyzeFile resolves f into a resolved.Module. Call after every
// imported module's Analyzer has already produced its export table.
func (a *Analyzer) AnalyzeFile(f *ast.File) *resolved.Module {
	a.collectNamedTypes(f)
	a.resolveNamedTypeBodies(f)
	a.collectFunctionSignatures(f)
	a.collectGlobalSignatures(f)

	mod := &resolved.Module{Identity: a.path}
	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.StructDecl:
			mod.Decls = append(mod.Decls, a.structs[n.Name])
		case *ast.EnumDecl:
			mod.Decls = append(mod.Decls, a.enums[n.Name])
		case *ast.VarDecl:
			mod.Decls = append(mod.Decls, a.resolveGlobalInitializer(n))
		case *ast.FunctionDecl:
			fn := a.funcs[n.Name]
			if n.Body != nil {
				a.resolveFunctionBody(fn, n)
			}
			mod.Decls = append(mod.Decls, fn)
		case *ast.ExternBlock:
			for _, efn := range n.Funcs {
				mod.Decls = append(mod.Decls, a.funcs[efn.Name])
			}
		}
	}

	return mod
}

// Exports returns the subset of this module's resolved declarations
// that were marked `export`, keyed by name (spec.md §3).
func (a *Analyzer) Exports() ExportTable {
	out := ExportTable{}
	for name, s := range a.structs {
		if s.Exported {
			out[name] = s
		}
	}
	for name, e := range a.enums {
		if e.Exported {
			out[name] = e
		}
	}
	for name, v := range a.globals {
		if v.Exported {
			out[name] = v
		}
	}
	for name, fn := range a.funcs {
		if fn.Exported {
			out[name] = fn
		}
	}
	return out
}

func (a *Analyzer) mintID(kind sid.Kind, name string) sid.ID { return sid.New(a.path, kind, name) }
