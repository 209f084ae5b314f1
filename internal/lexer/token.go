package lexer

import "fmt"

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	ILLEGAL TokenKind = iota
	EOF

	// Literals
	IDENT
	INT
	BININT
	REAL
	STRING
	CHAR
	BOOL

	// Keywords
	EXPORT
	EXTERN
	FN
	ALIAS
	VOID
	RETURN
	IF
	ELSE
	MODULE
	DEFER
	WHILE
	FOR
	CONST
	STRUCT
	NULL
	VAR
	IMPORT
	ENUM
	SIZEOF
	ALIGNOF
	SWITCH
	CASE
	DEFAULT

	// Single-character punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMI
	DOT
	STAR
	SLASH
	PLUS
	MINUS
	BANG
	AMP
	PIPE
	CARET
	ASSIGN
	LT
	GT

	COLON // :

	// Compound operators
	DCOLON   // ::
	EQ       // ==
	NEQ      // !=
	LE       // <=
	GE       // >=
	ANDAND   // &&
	OROR     // ||
	SHL      // <<
	SHR      // >>
	ELLIPSIS // ...
)

var names = map[TokenKind]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "identifier",
	INT:    "integer literal",
	BININT: "binary integer literal",
	REAL:   "real literal",
	STRING: "string literal",
	CHAR:   "character literal",
	BOOL:   "bool literal",

	EXPORT: "export", EXTERN: "extern", FN: "fn", ALIAS: "alias",
	VOID: "void", RETURN: "return", IF: "if", ELSE: "else",
	MODULE: "module", DEFER: "defer", WHILE: "while", FOR: "for",
	CONST: "const", STRUCT: "struct", NULL: "null", VAR: "var",
	IMPORT: "import", ENUM: "enum", SIZEOF: "sizeof", ALIGNOF: "alignof",
	SWITCH: "switch", CASE: "case", DEFAULT: "default",

	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	LBRACKET: "[", RBRACKET: "]", COMMA: ",", SEMI: ";", DOT: ".",
	STAR: "*", SLASH: "/", PLUS: "+", MINUS: "-", BANG: "!",
	AMP: "&", PIPE: "|", CARET: "^", ASSIGN: "=", LT: "<", GT: ">",

	COLON: ":", DCOLON: "::", EQ: "==", NEQ: "!=", LE: "<=", GE: ">=",
	ANDAND: "&&", OROR: "||", SHL: "<<", SHR: ">>", ELLIPSIS: "...",
}

func (k TokenKind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

var keywords = map[string]TokenKind{
	"export": EXPORT, "extern": EXTERN, "fn": FN, "alias": ALIAS,
	"void": VOID, "return": RETURN, "if": IF, "else": ELSE,
	"module": MODULE, "defer": DEFER, "while": WHILE, "for": FOR,
	"const": CONST, "struct": STRUCT, "null": NULL, "var": VAR,
	"import": IMPORT, "enum": ENUM, "sizeof": SIZEOF, "alignof": ALIGNOF,
	"switch": SWITCH, "case": CASE, "default": DEFAULT,
	"true": BOOL, "false": BOOL,
}

// LookupIdent classifies an alpha-starting run as a keyword or a plain
// identifier (spec.md §4.1).
func LookupIdent(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Token is one lexical unit: its kind, its source text (for
// identifiers/literals), and its position.
type Token struct {
	Kind    TokenKind
	Literal string
	Line    int
	Column  int
	Offset  int
	File    string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s:%d:%d", t.Kind, t.Literal, t.File, t.Line, t.Column)
}
