// Package ast defines the tree the parser produces: declarations,
// expressions, statements, and types, each carrying a source location.
// Names and member accesses are unresolved here; internal/sema produces
// the parallel resolved tree in internal/resolved.
package ast

import "github.com/sourcelang/slc/internal/source"

// Node is the common interface implemented by every AST node.
type Node interface {
	Pos() source.Location
}

// Decl is a top-level or block-scoped declaration.
type Decl interface {
	Node
	declNode()
}

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is the surface syntax of a type: a base name plus the
// pointer-depth / array-dimension / function-pointer modifiers composed
// on top of it (spec.md §3).
type TypeExpr struct {
	Module       string // non-empty for a `module::Type` qualified spelling
	Name         string // builtin spelling or a Custom type name
	PointerDepth int
	ArrayDims    []int // empty when not an array

	// Func* populated iff this is a `fn* rtype ( ptype, ... )` type.
	FuncReturn   *TypeExpr
	FuncParams   []*TypeExpr
	FuncVariadic bool
	IsFunc       bool

	Location source.Location
}

func (t *TypeExpr) Pos() source.Location { return t.Location }

// ---------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------

// File is one parsed source file: an ordered list of top-level
// declarations plus whether parsing completed without a synchronising
// error (spec.md §4.2's is_complete_ast flag).
type File struct {
	Path           string
	ModuleName     string // from an optional leading `module name;`, "" if absent
	Imports        []*ImportDecl
	Decls          []Decl
	IsCompleteAST  bool
	Location       source.Location
}

func (f *File) Pos() source.Location { return f.Location }

// ImportDecl is `import name;`.
type ImportDecl struct {
	Name     string
	Location source.Location
}

func (i *ImportDecl) Pos() source.Location { return i.Location }

// VarDecl is `(const|var) type id (= expr)? ;`, legal at block scope and
// at module scope (global, spec.md §3).
type VarDecl struct {
	Name        string
	Type        *TypeExpr
	Const       bool
	Global      bool
	Exported    bool
	Initializer Expr // nil iff absent
	Location    source.Location
}

func (v *VarDecl) Pos() source.Location { return v.Location }
func (v *VarDecl) declNode()            {}

// ParamDecl is one function parameter.
type ParamDecl struct {
	Name     string
	Type     *TypeExpr
	Const    bool
	Location source.Location
}

func (p *ParamDecl) Pos() source.Location { return p.Location }
func (p *ParamDecl) declNode()            {}

// FunctionDecl is `fn rtype name ( params ) block?`, or an extern
// signature with no body. Library is populated only when the function
// is declared inside an `extern "L" { ... }` block (SPEC_FULL.md §6
// supplemental feature). The parser has no aliasing syntax, so it never
// sets OriginalName.
type FunctionDecl struct {
	Name         string
	ReturnType   *TypeExpr
	Params       []*ParamDecl
	Variadic     bool
	Body         *Block // nil for a declaration-only / extern signature
	Exported     bool
	Library      string // "" unless declared in an extern block
	OriginalName string // always "" from the parser
	Location     source.Location
}

func (f *FunctionDecl) Pos() source.Location { return f.Location }
func (f *FunctionDecl) declNode()            {}

// ExternBlock is `extern "name" { FunctionDecl* }`, where "name" is the
// library to link against (SPEC_FULL.md §6 supplemental feature,
// grounded on original_source/compiler/src/parser.c's extern-block
// parsing). Functions declared inside carry no body.
type ExternBlock struct {
	Library  string
	Funcs    []*FunctionDecl
	Location source.Location
}

func (e *ExternBlock) Pos() source.Location { return e.Location }
func (e *ExternBlock) declNode()            {}

// StructField is one ordered (type, name) pair; field order is ABI
// layout order (spec.md §3).
type StructField struct {
	Name     string
	Type     *TypeExpr
	Location source.Location
}

// StructDecl is `struct name { field* }`.
type StructDecl struct {
	Name     string
	Fields   []*StructField
	Exported bool
	Location source.Location
}

func (s *StructDecl) Pos() source.Location { return s.Location }
func (s *StructDecl) declNode()            {}

// EnumMember is one `name (= expr)?` entry.
type EnumMember struct {
	Name       string
	Value      Expr // nil iff the member takes the implicit next value
	Location   source.Location
}

// EnumDecl is `enum name (: underlying)? { member* }`; underlying
// defaults to i32 when absent (spec.md §3).
type EnumDecl struct {
	Name       string
	Underlying *TypeExpr // nil -> defaults to i32 during sema
	Members    []*EnumMember
	Exported   bool
	Location   source.Location
}

func (e *EnumDecl) Pos() source.Location { return e.Location }
func (e *EnumDecl) declNode()            {}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// NumberLitKind distinguishes the four surface spellings a NumberLiteral
// can have (spec.md §3).
type NumberLitKind int

const (
	IntNumber NumberLitKind = iota
	BinIntNumber
	RealNumber
	BoolNumber
)

// NumberLiteral is an int/real/bool literal in its original text form;
// inferred typing happens during sema per spec.md §4.5 rule L1.
type NumberLiteral struct {
	Kind     NumberLitKind
	Text     string
	Location source.Location
}

func (n *NumberLiteral) Pos() source.Location { return n.Location }
func (n *NumberLiteral) exprNode()             {}

// StringLiteral is a decoded (escapes already resolved by the lexer)
// string literal.
type StringLiteral struct {
	Value    string
	Location source.Location
}

func (s *StringLiteral) Pos() source.Location { return s.Location }
func (s *StringLiteral) exprNode()             {}

// CharLiteral is a decoded character literal.
type CharLiteral struct {
	Value    rune
	Location source.Location
}

func (c *CharLiteral) Pos() source.Location { return c.Location }
func (c *CharLiteral) exprNode()             {}

// DeclRefExpr names a variable, parameter, or function, optionally
// qualified by a module (`module::symbol`, spec.md §3's Module row).
type DeclRefExpr struct {
	Module   string // "" unless module-qualified
	Name     string
	Location source.Location
}

func (d *DeclRefExpr) Pos() source.Location { return d.Location }
func (d *DeclRefExpr) exprNode()             {}

// MemberAccess is `base.field(.field)*`; Fields holds every `.field` in
// source order (the resolved form collapses this into an
// InnerMemberAccess chain of field indices, spec.md §3).
type MemberAccess struct {
	Base     Expr
	Fields   []string
	Location source.Location
}

func (m *MemberAccess) Pos() source.Location { return m.Location }
func (m *MemberAccess) exprNode()             {}

// ArrayElementAccess is `base[i0][i1]...`.
type ArrayElementAccess struct {
	Base     Expr
	Indices  []Expr
	Location source.Location
}

func (a *ArrayElementAccess) Pos() source.Location { return a.Location }
func (a *ArrayElementAccess) exprNode()             {}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee   Expr
	Args     []Expr
	Location source.Location
}

func (c *CallExpr) Pos() source.Location { return c.Location }
func (c *CallExpr) exprNode()             {}

// StructFieldInit is one `.field = expr`, `expr` (positional), or
// `.field` (leave absent) initialiser entry.
type StructFieldInit struct {
	FieldName string // "" for a positional initialiser
	Value     Expr   // nil means "leave uninitialised"
	Location  source.Location
}

// StructLiteralExpr is `. { init, ... }`.
type StructLiteralExpr struct {
	Inits    []*StructFieldInit
	Location source.Location
}

func (s *StructLiteralExpr) Pos() source.Location { return s.Location }
func (s *StructLiteralExpr) exprNode()             {}

// ArrayLiteralExpr is `[ e0, e1, ... ]`.
type ArrayLiteralExpr struct {
	Elements []Expr
	Location source.Location
}

func (a *ArrayLiteralExpr) Pos() source.Location { return a.Location }
func (a *ArrayLiteralExpr) exprNode()             {}

// EnumElementAccess is `EnumName::Member`. The parser cannot
// syntactically tell `EnumName::Member` apart from a module-qualified
// `module::symbol` reference (both are `ident :: ident`), so it always
// produces a DeclRefExpr with Module set for that surface form; sema
// reclassifies it into an EnumElementAccess once it knows whether the
// qualifier names an enum or an imported module (see sema's
// resolveDeclRef).
type EnumElementAccess struct {
	EnumName string
	Member   string
	Location source.Location
}

func (e *EnumElementAccess) Pos() source.Location { return e.Location }
func (e *EnumElementAccess) exprNode()             {}

// GroupingExpr is a parenthesised expression, kept distinct from its
// inner expression only to preserve source fidelity for the pretty
// printer's round-trip property (Q5).
type GroupingExpr struct {
	Inner    Expr
	Location source.Location
}

func (g *GroupingExpr) Pos() source.Location { return g.Location }
func (g *GroupingExpr) exprNode()             {}

// BinaryOp names the binary operators spec.md §4.2 gives precedence for,
// plus the bitwise family added per SPEC_FULL.md §9.
type BinaryOp int

const (
	OpOr BinaryOp = iota
	OpAnd
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpBitOr
	OpBitXor
	OpBitAnd
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var binaryOpNames = map[BinaryOp]string{
	OpOr: "||", OpAnd: "&&", OpEq: "==", OpNeq: "!=",
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpBitOr: "|", OpBitXor: "^", OpBitAnd: "&", OpShl: "<<", OpShr: ">>",
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
}

func (o BinaryOp) String() string { return binaryOpNames[o] }

// BinaryOperator is `lhs op rhs`.
type BinaryOperator struct {
	Op       BinaryOp
	Lhs      Expr
	Rhs      Expr
	Location source.Location
}

func (b *BinaryOperator) Pos() source.Location { return b.Location }
func (b *BinaryOperator) exprNode()             {}

// UnaryOp names the four prefix unary operators of spec.md §4.2.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNeg
	OpDeref
	OpAddr
)

var unaryOpNames = map[UnaryOp]string{OpNot: "!", OpNeg: "-", OpDeref: "*", OpAddr: "&"}

func (o UnaryOp) String() string { return unaryOpNames[o] }

// UnaryOperator is `op rhs`.
type UnaryOperator struct {
	Op       UnaryOp
	Rhs      Expr
	Location source.Location
}

func (u *UnaryOperator) Pos() source.Location { return u.Location }
func (u *UnaryOperator) exprNode()             {}

// CastKind names the eight explicit-cast kinds of spec.md §4.5.
type CastKind int

const (
	CastNop CastKind = iota
	CastExtend
	CastTruncate
	CastPtr
	CastIntToPtr
	CastPtrToInt
	CastFloatToInt
	CastIntToFloat
)

// ExplicitCast is `( type ) rhs`. Kind is absent in the AST (it depends
// on resolved types) and is filled in on the resolved counterpart.
type ExplicitCast struct {
	TargetType *TypeExpr
	Rhs        Expr
	Location   source.Location
}

func (e *ExplicitCast) Pos() source.Location { return e.Location }
func (e *ExplicitCast) exprNode()             {}

// NullExpr is the `null` literal.
type NullExpr struct {
	Location source.Location
}

func (n *NullExpr) Pos() source.Location { return n.Location }
func (n *NullExpr) exprNode()             {}

// SizeofExpr / AlignofExpr are the supplemental `sizeof(type)` /
// `alignof(type)` builtin expressions (SPEC_FULL.md §6).
type SizeofExpr struct {
	Type     *TypeExpr
	Location source.Location
}

func (s *SizeofExpr) Pos() source.Location { return s.Location }
func (s *SizeofExpr) exprNode()             {}

type AlignofExpr struct {
	Type     *TypeExpr
	Location source.Location
}

func (a *AlignofExpr) Pos() source.Location { return a.Location }
func (a *AlignofExpr) exprNode()             {}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

// Block is `{ stmt* }`.
type Block struct {
	Statements []Stmt
	Location   source.Location
}

func (b *Block) Pos() source.Location { return b.Location }
func (b *Block) stmtNode()            {}

// DeclStmt wraps a block-scoped VarDecl as a statement.
type DeclStmt struct {
	Decl     *VarDecl
	Location source.Location
}

func (d *DeclStmt) Pos() source.Location { return d.Location }
func (d *DeclStmt) stmtNode()            {}

// Assignment is `lvalue = rhs`, where lvalue is `(*)*postfix-chain`:
// DerefCount counts leading `*` and Target is the declref/member/array
// postfix chain being assigned through (spec.md §3).
type Assignment struct {
	Target     Expr
	DerefCount int
	Rhs        Expr
	Location   source.Location
}

func (a *Assignment) Pos() source.Location { return a.Location }
func (a *Assignment) stmtNode()            {}

// ReturnStmt is `return expr? ;`.
type ReturnStmt struct {
	Value    Expr // nil for a bare `return;`
	Location source.Location
}

func (r *ReturnStmt) Pos() source.Location { return r.Location }
func (r *ReturnStmt) stmtNode()            {}

// IfStmt is `if ( cond ) then (else (if|block))?`.
type IfStmt struct {
	Cond     Expr
	Then     *Block
	ElseIf   *IfStmt // mutually exclusive with Else
	Else     *Block
	Location source.Location
}

func (i *IfStmt) Pos() source.Location { return i.Location }
func (i *IfStmt) stmtNode()            {}

// WhileStmt is `while ( cond ) block`.
type WhileStmt struct {
	Cond     Expr
	Body     *Block
	Location source.Location
}

func (w *WhileStmt) Pos() source.Location { return w.Location }
func (w *WhileStmt) stmtNode()            {}

// ForStmt is `for ( var-decl ; cond ; incr ) block`, with the counter
// variable scoped to its own loop-header scope (spec.md §4.4).
type ForStmt struct {
	Counter   *VarDecl
	Cond      Expr
	Increment Stmt // an Assignment or an expression statement
	Body      *Block
	Location  source.Location
}

func (f *ForStmt) Pos() source.Location { return f.Location }
func (f *ForStmt) stmtNode()            {}

// ExprStmt is a bare expression used as a statement (e.g. a call for
// its side effect).
type ExprStmt struct {
	Value    Expr
	Location source.Location
}

func (e *ExprStmt) Pos() source.Location { return e.Location }
func (e *ExprStmt) stmtNode()            {}

// DeferStmt is accepted syntactically (so recovery does not treat it as
// a syntax error) but is rejected by sema; the source-language semantics
// are unclear and out of scope per spec.md §9.
type DeferStmt struct {
	Call     Expr
	Location source.Location
}

func (d *DeferStmt) Pos() source.Location { return d.Location }
func (d *DeferStmt) stmtNode()            {}

// CaseClause is one `case expr: block` or `default: block` arm of a
// SwitchStmt (SPEC_FULL.md §6 supplemental feature).
type CaseClause struct {
	Value    Expr // nil for `default`
	Body     []Stmt
	Location source.Location
}

// SwitchStmt is `switch ( expr ) { case ... default? }`.
type SwitchStmt struct {
	Subject  Expr
	Cases    []*CaseClause
	Location source.Location
}

func (s *SwitchStmt) Pos() source.Location { return s.Location }
func (s *SwitchStmt) stmtNode()            {}
