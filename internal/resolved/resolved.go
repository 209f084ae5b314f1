// Package resolved defines the tree internal/sema produces from an
// internal/ast tree: every declaration has a stable internal/sid
// identity, every expression carries a concrete internal/types.Type plus
// an optional folded internal/constant.Value, and every reference is a
// non-owning back-pointer into the declaration arena that owns it
// (spec.md §3, §9). The resolved tree is the single source of truth
// consumed by internal/cfg and internal/backend.
package resolved

import (
	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/constant"
	"github.com/sourcelang/slc/internal/sid"
	"github.com/sourcelang/slc/internal/source"
	"github.com/sourcelang/slc/internal/types"
)

// Node is the common interface implemented by every resolved node.
type Node interface {
	Pos() source.Location
}

// Decl is any resolved top-level or block-scoped declaration.
type Decl interface {
	Node
	DeclID() sid.ID
	declNode()
}

// Expr is any resolved expression: it always carries a concrete type and
// an optional folded constant.
type Expr interface {
	Node
	ResolvedType() *types.Type
	Constant() *constant.Value
	exprNode()
}

// Stmt is any resolved statement.
type Stmt interface {
	Node
	stmtNode()
}

// ExprBase factors the (Type, Const, Location) triple every resolved
// expression carries (spec.md §3's "resolved counterpart" definition),
// so each concrete expression struct need only add its own fields.
type ExprBase struct {
	Type     *types.Type
	Const    *constant.Value
	Location source.Location
}

func (e *ExprBase) Pos() source.Location       { return e.Location }
func (e *ExprBase) ResolvedType() *types.Type  { return e.Type }
func (e *ExprBase) Constant() *constant.Value  { return e.Const }

// ---------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------

// Module is one fully resolved source file: its own declarations only.
// Imported declarations are not copied in; a `module::name` reference
// points into the exporting module's tree.
type Module struct {
	Identity string
	Decls    []Decl
}

type VarDecl struct {
	ID          sid.ID
	Name        string
	Type        *types.Type
	Const       bool
	Global      bool
	Exported    bool
	Initializer Expr
	Location    source.Location
}

func (v *VarDecl) Pos() source.Location { return v.Location }
func (v *VarDecl) DeclID() sid.ID       { return v.ID }
func (v *VarDecl) declNode()            {}

type ParamDecl struct {
	ID       sid.ID
	Name     string
	Type     *types.Type
	Const    bool
	Location source.Location
}

func (p *ParamDecl) Pos() source.Location { return p.Location }
func (p *ParamDecl) DeclID() sid.ID       { return p.ID }
func (p *ParamDecl) declNode()            {}

type FunctionDecl struct {
	ID           sid.ID
	Name         string
	ReturnType   *types.Type
	Params       []*ParamDecl
	Variadic     bool
	Body         *Block // nil for a declaration-only / extern signature
	Exported     bool
	Library      string
	OriginalName string
	Location     source.Location
}

func (f *FunctionDecl) Pos() source.Location { return f.Location }
func (f *FunctionDecl) DeclID() sid.ID       { return f.ID }
func (f *FunctionDecl) declNode()            {}

// Signature returns the function-pointer type describing this
// function's call shape, used wherever a function value needs a type
// (e.g. assigning it to a `fn*` variable).
func (f *FunctionDecl) Signature() *types.Type {
	params := make([]*types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return &types.Type{Kind: types.KindCustom, Func: &types.FuncSig{Return: f.ReturnType, Params: params, Variadic: f.Variadic}}
}

type StructField struct {
	Name string
	Type *types.Type
}

type StructDecl struct {
	ID       sid.ID
	Name     string
	Fields   []*StructField
	Exported bool
	Location source.Location
}

func (s *StructDecl) Pos() source.Location { return s.Location }
func (s *StructDecl) DeclID() sid.ID       { return s.ID }
func (s *StructDecl) declNode()            {}

// FieldIndex returns the ordinal position of a field by name, or -1.
func (s *StructDecl) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// FieldLayout is one struct member's position in its owner's memory
// layout (spec.md §6's "member layout (ordered (type, name))" backend
// input).
type FieldLayout struct {
	Name   string
	Type   *types.Type
	Offset uint64
}

// Layout is a struct declaration's full member layout plus its overall
// size/alignment, keyed by struct identity in the map the core hands the
// backend (spec.md §6).
type Layout struct {
	Fields []FieldLayout
	Size   uint64
	Align  uint64
}

type EnumMember struct {
	Name  string
	Value int64
}

type EnumDecl struct {
	ID         sid.ID
	Name       string
	Underlying *types.Type
	Members    []*EnumMember
	Exported   bool
	Location   source.Location
}

func (e *EnumDecl) Pos() source.Location { return e.Location }
func (e *EnumDecl) DeclID() sid.ID       { return e.ID }
func (e *EnumDecl) declNode()            {}

// MemberIndex returns the ordinal position of a member by name, or -1.
func (e *EnumDecl) MemberIndex(name string) int {
	for i, m := range e.Members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

type NumberLiteral struct {
	ExprBase
}

func NewNumberLiteral(t *types.Type, v constant.Value, loc source.Location) *NumberLiteral {
	return &NumberLiteral{ExprBase{Type: t, Const: &v, Location: loc}}
}
func (*NumberLiteral) exprNode() {}

type StringLiteral struct {
	ExprBase
	Value string
}

func (*StringLiteral) exprNode() {}

type CharLiteral struct {
	ExprBase
	Value rune
}

func (*CharLiteral) exprNode() {}

// DeclRefExpr is a resolved reference to a variable, parameter, or
// function, carrying a direct (non-owning) back-pointer to the
// declaration it names (spec.md §9's arena-handle pattern: Decl is
// never freed while this reference is alive, since declarations outlive
// every reference to them within a module's lifetime).
type DeclRefExpr struct {
	ExprBase
	Decl Decl
}

func (*DeclRefExpr) exprNode() {}

// MemberAccess is `base.field(.field)*` with field names resolved to
// ordinal indices (spec.md §3's InnerMemberAccess, flattened into a
// slice rather than a cons-list -- structurally equivalent, simpler to
// walk from Go).
type MemberAccess struct {
	ExprBase
	Base         Expr
	FieldIndices []int
	FieldNames   []string
}

func (*MemberAccess) exprNode() {}

type ArrayElementAccess struct {
	ExprBase
	Base    Expr
	Indices []Expr
}

func (*ArrayElementAccess) exprNode() {}

// CallExpr is `callee(args...)`; Callee is the resolved function being
// called.
type CallExpr struct {
	ExprBase
	Callee *FunctionDecl
	Args   []Expr
}

func (*CallExpr) exprNode() {}

// StructLiteralExpr holds one Expr per field in declaration order; a nil
// entry means "leave uninitialised" (spec.md §3).
type StructLiteralExpr struct {
	ExprBase
	Struct *StructDecl
	Fields []Expr
}

func (*StructLiteralExpr) exprNode() {}

type ArrayLiteralExpr struct {
	ExprBase
	Elements []Expr
}

func (*ArrayLiteralExpr) exprNode() {}

// EnumElementAccess is `EnumName::Member`, resolved once sema determines
// the qualifier names an enum rather than an imported module.
type EnumElementAccess struct {
	ExprBase
	Enum        *EnumDecl
	MemberIndex int
}

func (*EnumElementAccess) exprNode() {}

type BinaryOperator struct {
	ExprBase
	Op  ast.BinaryOp
	Lhs Expr
	Rhs Expr
}

func (*BinaryOperator) exprNode() {}

type UnaryOperator struct {
	ExprBase
	Op  ast.UnaryOp
	Rhs Expr
}

func (*UnaryOperator) exprNode() {}

type ExplicitCast struct {
	ExprBase
	Kind ast.CastKind
	Rhs  Expr
}

func (*ExplicitCast) exprNode() {}

type NullExpr struct {
	ExprBase
}

func (*NullExpr) exprNode() {}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

type Block struct {
	Statements []Stmt
	Location   source.Location
}

func (b *Block) Pos() source.Location { return b.Location }
func (b *Block) stmtNode()            {}

type DeclStmt struct {
	Decl     *VarDecl
	Location source.Location
}

func (d *DeclStmt) Pos() source.Location { return d.Location }
func (d *DeclStmt) stmtNode()            {}

type Assignment struct {
	Target     Expr
	DerefCount int
	Rhs        Expr
	Location   source.Location
}

func (a *Assignment) Pos() source.Location { return a.Location }
func (a *Assignment) stmtNode()            {}

type ReturnStmt struct {
	Value    Expr
	Location source.Location
}

func (r *ReturnStmt) Pos() source.Location { return r.Location }
func (r *ReturnStmt) stmtNode()            {}

type IfStmt struct {
	Cond     Expr
	Then     *Block
	ElseIf   *IfStmt
	Else     *Block
	Location source.Location
}

func (i *IfStmt) Pos() source.Location { return i.Location }
func (i *IfStmt) stmtNode()            {}

type WhileStmt struct {
	Cond     Expr
	Body     *Block
	Location source.Location
}

func (w *WhileStmt) Pos() source.Location { return w.Location }
func (w *WhileStmt) stmtNode()            {}

type ForStmt struct {
	Counter   *VarDecl
	Cond      Expr
	Increment Stmt
	Body      *Block
	Location  source.Location
}

func (f *ForStmt) Pos() source.Location { return f.Location }
func (f *ForStmt) stmtNode()            {}

type ExprStmt struct {
	Value    Expr
	Location source.Location
}

func (e *ExprStmt) Pos() source.Location { return e.Location }
func (e *ExprStmt) stmtNode()            {}

// CaseClause is one `case expr:` (Value non-nil, folded constant) or
// `default:` (Value nil) arm of a SwitchStmt.
type CaseClause struct {
	Value *constant.Value
	Body  []Stmt
}

type SwitchStmt struct {
	Subject  Expr
	Cases    []*CaseClause
	Location source.Location
}

func (s *SwitchStmt) Pos() source.Location { return s.Location }
func (s *SwitchStmt) stmtNode()            {}
