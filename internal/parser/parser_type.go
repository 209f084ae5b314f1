package parser

import (
	"strconv"

	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/lexer"
)

// parseType parses a type and reports PAR001 on failure.
func (p *Parser) parseType() *ast.TypeExpr {
	t, ok := p.tryParseType()
	if !ok {
		p.errorf(diag.PAR001, "expected a type, found %s %q", p.cur().Kind, p.cur().Literal)
		return &ast.TypeExpr{Name: "void", Location: p.loc()}
	}
	return t
}

// tryParseType attempts to parse a type starting at the current
// position without reporting diagnostics. On failure the parser
// position is restored to where it started, which is what lets the
// `(type)` vs `(expr)` cast/grouping disambiguation back up one token
// (spec.md §4.2).
func (p *Parser) tryParseType() (*ast.TypeExpr, bool) {
	start := p.pos
	loc := p.loc()

	var base *ast.TypeExpr
	switch {
	case p.at(lexer.FN) && p.peek().Kind == lexer.STAR:
		p.advance() // fn
		p.advance() // *
		ret, ok := p.tryParseType()
		if !ok {
			p.pos = start
			return nil, false
		}
		if !p.at(lexer.LPAREN) {
			p.pos = start
			return nil, false
		}
		p.advance()
		var params []*ast.TypeExpr
		variadic := false
		for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
			if p.at(lexer.ELLIPSIS) {
				p.advance()
				variadic = true
				break
			}
			pt, ok := p.tryParseType()
			if !ok {
				p.pos = start
				return nil, false
			}
			params = append(params, pt)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if !p.at(lexer.RPAREN) {
			p.pos = start
			return nil, false
		}
		p.advance()
		base = &ast.TypeExpr{IsFunc: true, FuncReturn: ret, FuncParams: params, FuncVariadic: variadic, Location: loc}
	case p.at(lexer.VOID):
		p.advance()
		base = &ast.TypeExpr{Name: "void", Location: loc}
	case p.at(lexer.IDENT):
		tok := p.advance()
		if p.at(lexer.DCOLON) && p.peek().Kind == lexer.IDENT {
			p.advance() // ::
			name := p.advance()
			base = &ast.TypeExpr{Module: tok.Literal, Name: name.Literal, Location: loc}
		} else {
			base = &ast.TypeExpr{Name: tok.Literal, Location: loc}
		}
	default:
		return nil, false
	}

	for p.at(lexer.STAR) {
		p.advance()
		base.PointerDepth++
	}
	for p.at(lexer.LBRACKET) {
		p.advance()
		if !p.at(lexer.INT) {
			p.pos = start
			return nil, false
		}
		n, err := strconv.Atoi(p.advance().Literal)
		if err != nil || n <= 0 {
			p.pos = start
			return nil, false
		}
		if !p.at(lexer.RBRACKET) {
			p.pos = start
			return nil, false
		}
		p.advance()
		base.ArrayDims = append(base.ArrayDims, n)
	}

	return base, true
}
