// Package sid gives every resolved declaration a stable, content-derived
// identity so back-references (DeclRefExpr -> Decl) can be compared and
// hashed without pointer identity (spec.md §9's arena/handle pattern).
package sid

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ID is a declaration's stable identity, derived from its defining
// module path, its kind, and its name.
type ID string

// Kind tags which declaration namespace an ID was minted in, so two
// declarations with the same name but different kinds (e.g. a struct
// and an enum both named "Color") never collide.
type Kind string

const (
	KindVar    Kind = "var"
	KindParam  Kind = "param"
	KindFunc   Kind = "func"
	KindStruct Kind = "struct"
	KindEnum   Kind = "enum"
)

// New derives a stable ID from a declaration's defining path, kind, and
// name. Two declarations with identical (path, kind, name) get the same
// ID; sema's redeclaration checks compare names, not IDs.
func New(path string, kind Kind, name string) ID {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%s", path, kind, name)))
	return ID(hex.EncodeToString(h[:])[:16])
}
