// Package diag provides the central diagnostics sink used by every
// phase of the pipeline, plus the phase-prefixed error code taxonomy
// consulted by tests. cmd/slc has no error-code lookup.
package diag

// Code is a stable, phase-prefixed identifier for a diagnostic kind.
type Code string

const (
	// Lexical errors (LEX###)
	LEX001 Code = "LEX001" // unknown character
	LEX002 Code = "LEX002" // unterminated string literal
	LEX003 Code = "LEX003" // unterminated character literal
	LEX004 Code = "LEX004" // unsupported escape sequence

	// Syntactic errors (PAR###)
	PAR001 Code = "PAR001" // unexpected token
	PAR002 Code = "PAR002" // missing closing delimiter
	PAR003 Code = "PAR003" // illegal top-level construct
	PAR004 Code = "PAR004" // incomplete declaration
	PAR005 Code = "PAR005" // invalid lvalue in assignment

	// Module errors (MOD###)
	MOD001 Code = "MOD001" // missing import file
	MOD002 Code = "MOD002" // ambiguous import
	MOD003 Code = "MOD003" // import cycle

	// Semantic errors (SEM###)
	SEM001 Code = "SEM001" // undeclared identifier
	SEM002 Code = "SEM002" // redeclaration
	SEM003 Code = "SEM003" // type mismatch / cannot convert
	SEM004 Code = "SEM004" // wrong arity
	SEM005 Code = "SEM005" // non-callable callee
	SEM006 Code = "SEM006" // assignment to non-lvalue or const
	SEM007 Code = "SEM007" // recursive by-value struct
	SEM008 Code = "SEM008" // enum member redeclaration / duplicate value
	SEM009 Code = "SEM009" // invalid cast
	SEM010 Code = "SEM010" // unresolved type
	SEM011 Code = "SEM011" // defer is out of scope

	// Warnings (WARN###)
	WARN001 Code = "WARN001" // unreachable statement
	WARN002 Code = "WARN002" // unused value (reserved)

	// Internal invariant violations (INT###)
	INT001 Code = "INT001" // unrecognised resolved-statement variant reached the CFG builder
)

// Info describes a Code for tooling; cmd/slc has no flag that prints it.
type Info struct {
	Code        Code
	Phase       string
	Description string
}

// Registry maps every Code to its Info.
var Registry = map[Code]Info{
	LEX001: {LEX001, "lexer", "Unknown character"},
	LEX002: {LEX002, "lexer", "Unterminated string literal"},
	LEX003: {LEX003, "lexer", "Unterminated character literal"},
	LEX004: {LEX004, "lexer", "Unsupported escape sequence"},

	PAR001: {PAR001, "parser", "Unexpected token"},
	PAR002: {PAR002, "parser", "Missing closing delimiter"},
	PAR003: {PAR003, "parser", "Illegal top-level construct"},
	PAR004: {PAR004, "parser", "Incomplete declaration"},
	PAR005: {PAR005, "parser", "Invalid assignment target"},

	MOD001: {MOD001, "module", "Module not found"},
	MOD002: {MOD002, "module", "Ambiguous import"},
	MOD003: {MOD003, "module", "Import cycle"},

	SEM001: {SEM001, "sema", "Undeclared identifier"},
	SEM002: {SEM002, "sema", "Redeclaration"},
	SEM003: {SEM003, "sema", "Type mismatch"},
	SEM004: {SEM004, "sema", "Wrong arity"},
	SEM005: {SEM005, "sema", "Non-callable callee"},
	SEM006: {SEM006, "sema", "Invalid assignment target"},
	SEM007: {SEM007, "sema", "Recursive by-value struct"},
	SEM008: {SEM008, "sema", "Duplicate enum member"},
	SEM009: {SEM009, "sema", "Invalid cast"},
	SEM010: {SEM010, "sema", "Unresolved type"},
	SEM011: {SEM011, "sema", "defer is not supported"},

	WARN001: {WARN001, "sema", "Unreachable statement"},
	WARN002: {WARN002, "sema", "Unused value"},

	INT001: {INT001, "cfg", "Unrecognised resolved statement"},
}

// Lookup returns the Info for a Code.
func Lookup(c Code) (Info, bool) {
	info, ok := Registry[c]
	return info, ok
}
