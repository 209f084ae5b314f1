// Package parser implements a recursive-descent parser with precedence
// climbing for sl (spec.md §4.2). The whole token stream is buffered up
// front so the `(type)` vs `(expr)` disambiguation (try a type, back up
// one token on failure) and top-level error recovery can both use
// plain index backtracking rather than a lexer checkpoint/restore API.
package parser

import (
	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/lexer"
	"github.com/sourcelang/slc/internal/source"
)

// Parser holds a fully tokenized file and produces a *ast.File.
type Parser struct {
	toks []lexer.Token
	pos  int
	file string
	sink *diag.Sink

	// hadError tracks whether the current top-level declaration reported
	// an error, so Parse knows to resynchronise and can set
	// IsCompleteAST accurately.
	hadError bool
}

// New tokenizes buf in full and returns a Parser ready to Parse it.
func New(buf *source.Buffer, sink *diag.Sink) *Parser {
	l := lexer.New(string(buf.Bytes), buf.Path)
	var toks []lexer.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == lexer.EOF {
			break
		}
	}
	return &Parser{toks: toks, file: buf.Path, sink: sink}
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}
func (p *Parser) peek() lexer.Token { return p.peekAt(1) }

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k lexer.TokenKind) bool { return p.cur().Kind == k }

func (p *Parser) loc() source.Location {
	t := p.cur()
	return source.Location{Path: t.File, Line: t.Line, Column: t.Column, Offset: t.Offset}
}

func locOf(t lexer.Token) source.Location {
	return source.Location{Path: t.File, Line: t.Line, Column: t.Column, Offset: t.Offset}
}

// expect consumes the current token if it matches k, else reports
// PAR001 (unexpected token, carrying the expected kind per spec.md §7)
// and returns the token anyway so callers can keep building a tree.
func (p *Parser) expect(k lexer.TokenKind) lexer.Token {
	if p.at(k) {
		return p.advance()
	}
	p.errorf(diag.PAR001, "expected %s, found %s %q", k, p.cur().Kind, p.cur().Literal)
	return p.cur()
}

func (p *Parser) errorf(code diag.Code, format string, args ...interface{}) {
	p.hadError = true
	p.sink.Errorf(p.loc(), code, format, args...)
}

// synchronise skips tokens until one of `fn struct enum var const extern
// Eof ;` at brace-depth zero (spec.md §4.2).
func (p *Parser) synchronise() {
	depth := 0
	for !p.at(lexer.EOF) {
		switch p.cur().Kind {
		case lexer.LBRACE:
			depth++
		case lexer.RBRACE:
			if depth > 0 {
				depth--
			}
		case lexer.SEMI:
			if depth == 0 {
				p.advance()
				return
			}
		case lexer.FN, lexer.STRUCT, lexer.ENUM, lexer.VAR, lexer.CONST, lexer.EXTERN:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

// Parse parses a complete source file into an *ast.File.
func (p *Parser) Parse() *ast.File {
	file := &ast.File{Path: p.file, Location: p.loc()}

	if p.at(lexer.MODULE) {
		p.advance()
		name := p.expect(lexer.IDENT)
		file.ModuleName = name.Literal
		p.expect(lexer.SEMI)
	}

	for p.at(lexer.IMPORT) {
		start := p.advance()
		name := p.expect(lexer.IDENT)
		p.expect(lexer.SEMI)
		file.Imports = append(file.Imports, &ast.ImportDecl{Name: name.Literal, Location: locOf(start)})
	}

	for !p.at(lexer.EOF) {
		before := p.hadError
		p.hadError = false
		d := p.parseTopLevelDecl()
		if p.hadError {
			p.synchronise()
		}
		p.hadError = p.hadError || before
		if d != nil {
			file.Decls = append(file.Decls, d)
		}
	}

	file.IsCompleteAST = !p.hadError
	return file
}
