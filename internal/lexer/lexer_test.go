package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input, "test.sl")
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks
}

func TestPunctuationAndCompoundOperators(t *testing.T) {
	toks := collect(t, `:: == != <= >= && || << >> ... + - * /`)
	kinds := []TokenKind{DCOLON, EQ, NEQ, LE, GE, ANDAND, OROR, SHL, SHR, ELLIPSIS, PLUS, MINUS, STAR, SLASH, EOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		require.Equalf(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks := collect(t, `fn struct enum foobar true false`)
	require.Equal(t, FN, toks[0].Kind)
	require.Equal(t, STRUCT, toks[1].Kind)
	require.Equal(t, ENUM, toks[2].Kind)
	require.Equal(t, IDENT, toks[3].Kind)
	require.Equal(t, BOOL, toks[4].Kind)
	require.Equal(t, BOOL, toks[5].Kind)
}

func TestNumericLiterals(t *testing.T) {
	toks := collect(t, `123 0b1010 3.14 5.`)
	require.Equal(t, INT, toks[0].Kind)
	require.Equal(t, "123", toks[0].Literal)
	require.Equal(t, BININT, toks[1].Kind)
	require.Equal(t, "0b1010", toks[1].Literal)
	require.Equal(t, REAL, toks[2].Kind)
	require.Equal(t, "3.14", toks[2].Literal)
	// "5." has no fractional digit after the dot, so it lexes as an
	// integer "5" followed by a DOT token (spec.md §4.1).
	require.Equal(t, INT, toks[3].Kind)
	require.Equal(t, "5", toks[3].Literal)
	require.Equal(t, DOT, toks[4].Kind)
}

func TestStringEscapes(t *testing.T) {
	toks := collect(t, `"a\nb\t\"c\\"`)
	require.Equal(t, STRING, toks[0].Kind)
	require.Equal(t, "a\nb\t\"c\\", toks[0].Literal)
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	toks := collect(t, `"abc`)
	require.Equal(t, ILLEGAL, toks[0].Kind)
}

func TestUnsupportedEscapeIsIllegal(t *testing.T) {
	toks := collect(t, `"\x41"`)
	require.Equal(t, ILLEGAL, toks[0].Kind)
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := collect(t, "fn // a comment\nvoid")
	require.Equal(t, FN, toks[0].Kind)
	require.Equal(t, VOID, toks[1].Kind)
}

func TestLineColumnTracking(t *testing.T) {
	toks := collect(t, "fn\nvoid")
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[1].Line)
}

func TestUnitLikeEmptyParens(t *testing.T) {
	toks := collect(t, `()`)
	require.Equal(t, LPAREN, toks[0].Kind)
	require.Equal(t, RPAREN, toks[1].Kind)
}
