package sema

import (
	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/sid"
	"github.com/sourcelang/slc/internal/types"
)

// collectNamedTypes registers every struct/enum name with an empty body
// (pass 1 of spec.md §4.4's "Struct/enum resolution": "collecting all
// struct and enum decls into a named-type map" before any field/member
// is resolved, so mutually-referencing custom types see each other).
func (a *Analyzer) collectNamedTypes(f *ast.File) {
	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.StructDecl:
			if a.structs[n.Name] != nil || a.enums[n.Name] != nil {
				a.sink.Errorf(n.Location, diag.SEM002, "redeclaration of type %q", n.Name)
				continue
			}
			a.structs[n.Name] = &resolved.StructDecl{
				ID: a.mintID(sid.KindStruct, n.Name), Name: n.Name,
				Exported: n.Exported, Location: n.Location,
			}
		case *ast.EnumDecl:
			if a.structs[n.Name] != nil || a.enums[n.Name] != nil {
				a.sink.Errorf(n.Location, diag.SEM002, "redeclaration of type %q", n.Name)
				continue
			}
			a.enums[n.Name] = &resolved.EnumDecl{
				ID: a.mintID(sid.KindEnum, n.Name), Name: n.Name,
				Exported: n.Exported, Location: n.Location,
			}
		}
	}
}

// resolveNamedTypeBodies is pass 1.5: now that every custom type name is
// known, resolve field/member types. Recursive fields through a pointer
// are allowed; recursive by-value containment is SEM007.
func (a *Analyzer) resolveNamedTypeBodies(f *ast.File) {
	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.StructDecl:
			sd := a.structs[n.Name]
			for _, field := range n.Fields {
				ft := a.resolveType(field.Type)
				sd.Fields = append(sd.Fields, &resolved.StructField{Name: field.Name, Type: ft})
			}
		case *ast.EnumDecl:
			ed := a.enums[n.Name]
			ed.Underlying = types.Base(types.KindI32)
			if n.Underlying != nil {
				ed.Underlying = a.resolveType(n.Underlying)
			}
			a.resolveEnumMembers(ed, n)
		}
	}
	for _, sd := range a.structs {
		a.checkStructRecursion(sd, map[string]bool{})
	}
}

func (a *Analyzer) resolveEnumMembers(ed *resolved.EnumDecl, n *ast.EnumDecl) {
	seen := map[string]bool{}
	seenValues := map[int64]bool{}
	next := int64(0)
	for _, m := range n.Members {
		if seen[m.Name] {
			a.sink.Errorf(m.Location, diag.SEM008, "redeclaration of enum member %q", m.Name)
			continue
		}
		seen[m.Name] = true

		val := next
		if m.Value != nil {
			resolvedVal := a.resolveExpr(m.Value)
			if c := resolvedVal.Constant(); c != nil {
				val = c.AsInt64()
			} else {
				a.sink.Errorf(m.Location, diag.SEM003, "enum member %q initializer is not a compile-time constant", m.Name)
			}
		}
		if seenValues[val] {
			a.sink.Errorf(m.Location, diag.SEM008, "duplicate value %d for enum member %q", val, m.Name)
		}
		seenValues[val] = true
		ed.Members = append(ed.Members, &resolved.EnumMember{Name: m.Name, Value: val})
		next = val + 1
	}
}

// checkStructRecursion walks a struct's value-typed (non-pointer,
// non-array) fields looking for a cycle back to the struct itself;
// fields reached only through a pointer are fine (I6/SEM007).
func (a *Analyzer) checkStructRecursion(sd *resolved.StructDecl, visiting map[string]bool) {
	if visiting[sd.Name] {
		a.sink.Errorf(sd.Location, diag.SEM007, "recursive by-value struct %q", sd.Name)
		return
	}
	visiting[sd.Name] = true
	defer delete(visiting, sd.Name)

	for _, f := range sd.Fields {
		if f.Type == nil || !f.Type.IsValue() || f.Type.Kind != types.KindCustom {
			continue
		}
		if nested, ok := a.structs[f.Type.CustomName]; ok {
			a.checkStructRecursion(nested, visiting)
		}
	}
}

// resolveType turns a surface TypeExpr into a concrete types.Type,
// consulting the builtin table first, then this module's struct/enum
// names (spec.md §4.4's "Type resolution"). An unresolved name reports
// SEM010 and yields an unresolved Custom marker so callers can keep
// going.
func (a *Analyzer) resolveType(t *ast.TypeExpr) *types.Type {
	if t == nil {
		return types.Base(types.KindVoid)
	}
	if t.IsFunc {
		params := make([]*types.Type, len(t.FuncParams))
		for i, p := range t.FuncParams {
			params[i] = a.resolveType(p)
		}
		return &types.Type{
			Kind: types.KindCustom,
			Func: &types.FuncSig{Return: a.resolveType(t.FuncReturn), Params: params, Variadic: t.FuncVariadic},
		}
	}

	var base *types.Type
	if t.Module != "" {
		if named, ok := a.importedNamedType(t.Module, t.Name); ok {
			base = named
		} else {
			a.sink.Errorf(t.Location, diag.SEM010, "unresolved type %q::%q", t.Module, t.Name)
			base = types.Custom(t.Name)
		}
	} else if kind, ok := types.BuiltinTable[t.Name]; ok {
		base = types.Base(kind)
	} else if _, ok := a.structs[t.Name]; ok {
		base = types.Custom(t.Name)
	} else if _, ok := a.enums[t.Name]; ok {
		base = types.Custom(t.Name)
	} else if named, ok := a.anyImportedNamedType(t.Name); ok {
		base = named
	} else {
		a.sink.Errorf(t.Location, diag.SEM010, "unresolved type %q", t.Name)
		base = types.Custom(t.Name)
	}

	base = base.WithPointerDepth(t.PointerDepth)
	if len(t.ArrayDims) > 0 {
		base = base.WithArray(&types.ArrayDesc{Dims: append([]int{}, t.ArrayDims...)})
	}
	return base
}

// importedNamedType looks up a struct/enum export by name in one
// specific imported module's ExportTable, mirroring resolveDeclRef's
// module-qualified lookup in sema_expr.go but for type positions
// (spec.md §4.4: "a named type is looked up in struct/enum
// declarations, both local and imported").
func (a *Analyzer) importedNamedType(module, name string) (*types.Type, bool) {
	exports, ok := a.imports[module]
	if !ok {
		return nil, false
	}
	return namedTypeFromExport(exports[name], name)
}

// anyImportedNamedType searches every imported module's export table
// for a struct/enum named name, for an unqualified type spelling
// (spec.md §4.4 does not require the `module::` qualifier for types).
func (a *Analyzer) anyImportedNamedType(name string) (*types.Type, bool) {
	for _, exports := range a.imports {
		if t, ok := namedTypeFromExport(exports[name], name); ok {
			return t, true
		}
	}
	return nil, false
}

func namedTypeFromExport(decl resolved.Decl, name string) (*types.Type, bool) {
	switch decl.(type) {
	case *resolved.StructDecl, *resolved.EnumDecl:
		return types.Custom(name), true
	default:
		return nil, false
	}
}

// enumOf reports whether name is a known enum type in this module,
// returning it if so (used to reclassify a `name::member` DeclRefExpr
// into an EnumElementAccess, see sema_expr.go).
func (a *Analyzer) enumOf(name string) (*resolved.EnumDecl, bool) {
	e, ok := a.enums[name]
	return e, ok
}
