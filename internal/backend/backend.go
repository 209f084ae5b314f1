// Package backend defines the interface between the compiler core and
// whatever IR emitter/linker sits downstream of it (spec.md §6). The IR
// emitter itself is specified only at its interface — spec.md explicitly
// scopes out "the final IR emitter" — while the linker-driver is
// concrete, because spec.md §6 gives its exact command-line shape.
package backend

import (
	"github.com/sourcelang/slc/internal/resolved"
)

// EncodingRules carries the integer-encoding decisions spec.md §4.5
// fixes (two's-complement signed integers, IEEE-754 floats) plus the
// target's pointer width, so an Emitter never has to re-derive them.
type EncodingRules struct {
	PointerWidthBits int
	TwosComplement   bool
	IEEE754Floats    bool
}

// DefaultEncodingRules is the core's 64-bit default (spec.md §6: "the
// core defaults to 64-bit and exposes it as a single function").
func DefaultEncodingRules() EncodingRules {
	return EncodingRules{PointerWidthBits: 64, TwosComplement: true, IEEE754Floats: true}
}

// Emitter turns a fully resolved, ordered set of modules into one or
// more IR files ready for the linker-driver. spec.md §6 hands it (a) the
// ordered resolved modules, (b) each struct's member layout, (c) the
// integer-encoding rules, and (d) the pointer width — no concrete
// implementation ships in this repo; a real backend (LLVM, a bytecode
// assembler, a C transpiler) plugs in here.
type Emitter interface {
	EmitIR(modules []*resolved.Module, layouts map[*resolved.StructDecl]resolved.Layout, encoding EncodingRules) (irFiles []string, err error)
}
