package sema

import (
	"github.com/sourcelang/slc/internal/resolved"
	"github.com/sourcelang/slc/internal/types"
)

// sizeAndAlignOf computes a type's byte size and alignment, grounded on
// original_source/compiler/src/types.c's per-kind TypeInfo table. Used
// by the sizeof/alignof constant-folding builtins (SPEC_FULL.md §6).
func (a *Analyzer) sizeAndAlignOf(t *types.Type) (size, align uint64) {
	if t == nil {
		return 0, 1
	}
	if t.PointerDepth > 0 {
		return 8, 8
	}
	if t.Array != nil && len(t.Array.Dims) > 0 {
		elemSize, elemAlign := a.sizeAndAlignOf(t.WithArray(nil))
		count := uint64(1)
		for _, d := range t.Array.Dims {
			count *= uint64(d)
		}
		return elemSize * count, elemAlign
	}
	if t.Func != nil {
		return 8, 8
	}
	if t.Kind == types.KindCustom {
		if sd, ok := a.structs[t.CustomName]; ok {
			return a.structLayout(sd)
		}
		if ed, ok := a.enums[t.CustomName]; ok {
			return a.sizeAndAlignOf(ed.Underlying)
		}
		return 0, 1
	}
	return scalarSizeAndAlign(t.Kind)
}

func scalarSizeAndAlign(k types.Kind) (uint64, uint64) {
	switch k {
	case types.KindVoid:
		return 0, 1
	case types.KindBool, types.KindU8, types.KindI8:
		return 1, 1
	case types.KindU16, types.KindI16:
		return 2, 2
	case types.KindU32, types.KindI32, types.KindF32:
		return 4, 4
	case types.KindU64, types.KindI64, types.KindF64:
		return 8, 8
	default:
		return 1, 1
	}
}

// structLayout lays out fields in declaration order, padding each to its
// own alignment and rounding the final size up to the struct's overall
// alignment (the widest field alignment).
func (a *Analyzer) structLayout(sd *resolved.StructDecl) (size, align uint64) {
	l := a.Layout(sd)
	return l.Size, l.Align
}

// Layout computes a struct's full member layout, the form spec.md §6
// hands the backend as "a map from struct-declaration identity to its
// member layout (ordered (type, name))".
func (a *Analyzer) Layout(sd *resolved.StructDecl) resolved.Layout {
	if l, ok := a.layouts[sd]; ok {
		return l
	}
	var l resolved.Layout
	l.Align = 1
	var offset uint64
	for _, f := range sd.Fields {
		fSize, fAlign := a.sizeAndAlignOf(f.Type)
		if fAlign > l.Align {
			l.Align = fAlign
		}
		if fAlign > 0 {
			offset = (offset + fAlign - 1) / fAlign * fAlign
		}
		l.Fields = append(l.Fields, resolved.FieldLayout{Name: f.Name, Type: f.Type, Offset: offset})
		offset += fSize
	}
	if l.Align > 0 {
		offset = (offset + l.Align - 1) / l.Align * l.Align
	}
	l.Size = offset
	if a.layouts == nil {
		a.layouts = map[*resolved.StructDecl]resolved.Layout{}
	}
	a.layouts[sd] = l
	return l
}

// LayoutTable builds the full struct-identity→Layout map for every
// struct this analyzer has resolved, the exact shape
// internal/backend.Emitter expects.
func (a *Analyzer) LayoutTable() map[*resolved.StructDecl]resolved.Layout {
	table := map[*resolved.StructDecl]resolved.Layout{}
	for _, sd := range a.structs {
		table[sd] = a.Layout(sd)
	}
	return table
}
