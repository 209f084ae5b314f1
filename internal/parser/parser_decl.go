package parser

import (
	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/lexer"
)

// parseTopLevelDecl parses one of StructDecl | EnumDecl | FunctionDecl |
// VarDecl | extern-block (spec.md §4.2; `import` is consumed up front
// by Parse before this loop runs).
func (p *Parser) parseTopLevelDecl() ast.Decl {
	exported := false
	if p.at(lexer.EXPORT) {
		p.advance()
		exported = true
	}

	switch p.cur().Kind {
	case lexer.STRUCT:
		return p.parseStructDecl(exported)
	case lexer.ENUM:
		return p.parseEnumDecl(exported)
	case lexer.FN:
		return p.parseFunctionDecl(exported, "", "")
	case lexer.VAR, lexer.CONST:
		d := p.parseVarDecl(true, exported)
		p.expect(lexer.SEMI)
		return d
	case lexer.EXTERN:
		return p.parseExternBlock()
	default:
		p.errorf(diag.PAR003, "illegal top-level construct: unexpected %s %q", p.cur().Kind, p.cur().Literal)
		p.advance()
		return nil
	}
}

func (p *Parser) parseVarDecl(global, exported bool) *ast.VarDecl {
	loc := p.loc()
	isConst := p.at(lexer.CONST)
	if !isConst && !p.at(lexer.VAR) {
		p.errorf(diag.PAR001, "expected var or const, found %s", p.cur().Kind)
	} else {
		p.advance()
	}
	t := p.parseType()
	name := p.expect(lexer.IDENT).Literal
	var init ast.Expr
	if p.at(lexer.ASSIGN) {
		p.advance()
		init = p.parseExpr()
	} else if isConst || global {
		// I3: a const or module-global variable must have an initializer;
		// sema reports SEM003 if it is still absent here.
	}
	return &ast.VarDecl{
		Name: name, Type: t, Const: isConst, Global: global, Exported: exported,
		Initializer: init, Location: loc,
	}
}

func (p *Parser) parseParamList() ([]*ast.ParamDecl, bool) {
	p.expect(lexer.LPAREN)
	var params []*ast.ParamDecl
	variadic := false
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		if p.at(lexer.ELLIPSIS) {
			p.advance()
			variadic = true
			break
		}
		loc := p.loc()
		isConst := false
		if p.at(lexer.CONST) {
			p.advance()
			isConst = true
		}
		t := p.parseType()
		name := p.expect(lexer.IDENT).Literal
		params = append(params, &ast.ParamDecl{Name: name, Type: t, Const: isConst, Location: loc})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN)
	return params, variadic
}

func (p *Parser) parseFunctionDecl(exported bool, library, originalName string) *ast.FunctionDecl {
	loc := p.loc()
	p.expect(lexer.FN)
	rtype := p.parseType()
	name := p.expect(lexer.IDENT).Literal
	params, variadic := p.parseParamList()

	fn := &ast.FunctionDecl{
		Name: name, ReturnType: rtype, Params: params, Variadic: variadic,
		Exported: exported, Library: library, OriginalName: originalName, Location: loc,
	}
	if p.at(lexer.LBRACE) {
		fn.Body = p.parseBlock()
	} else {
		p.expect(lexer.SEMI)
	}
	return fn
}

func (p *Parser) parseExternBlock() *ast.ExternBlock {
	loc := p.loc()
	p.advance() // extern
	lib := p.expect(lexer.STRING).Literal
	p.expect(lexer.LBRACE)
	var funcs []*ast.FunctionDecl
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		funcs = append(funcs, p.parseFunctionDecl(false, lib, ""))
	}
	p.expect(lexer.RBRACE)
	return &ast.ExternBlock{Library: lib, Funcs: funcs, Location: loc}
}

func (p *Parser) parseStructDecl(exported bool) *ast.StructDecl {
	loc := p.loc()
	p.advance() // struct
	name := p.expect(lexer.IDENT).Literal
	p.expect(lexer.LBRACE)
	var fields []*ast.StructField
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		fieldLoc := p.loc()
		t := p.parseType()
		fname := p.expect(lexer.IDENT).Literal
		p.expect(lexer.SEMI)
		fields = append(fields, &ast.StructField{Name: fname, Type: t, Location: fieldLoc})
	}
	p.expect(lexer.RBRACE)
	return &ast.StructDecl{Name: name, Fields: fields, Exported: exported, Location: loc}
}

func (p *Parser) parseEnumDecl(exported bool) *ast.EnumDecl {
	loc := p.loc()
	p.advance() // enum
	name := p.expect(lexer.IDENT).Literal
	var underlying *ast.TypeExpr
	if p.at(lexer.COLON) {
		p.advance()
		underlying = p.parseType()
	}
	p.expect(lexer.LBRACE)
	var members []*ast.EnumMember
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		mLoc := p.loc()
		mname := p.expect(lexer.IDENT).Literal
		var val ast.Expr
		if p.at(lexer.ASSIGN) {
			p.advance()
			val = p.parseExpr()
		}
		members = append(members, &ast.EnumMember{Name: mname, Value: val, Location: mLoc})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RBRACE)
	return &ast.EnumDecl{Name: name, Underlying: underlying, Members: members, Exported: exported, Location: loc}
}
