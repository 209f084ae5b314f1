package parser

import (
	"github.com/sourcelang/slc/internal/ast"
	"github.com/sourcelang/slc/internal/diag"
	"github.com/sourcelang/slc/internal/lexer"
)

func (p *Parser) parseBlock() *ast.Block {
	loc := p.loc()
	p.expect(lexer.LBRACE)
	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(lexer.RBRACE)
	return &ast.Block{Statements: stmts, Location: loc}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.IF:
		return p.parseIf()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.VAR, lexer.CONST:
		loc := p.loc()
		d := p.parseVarDecl(false, false)
		p.expect(lexer.SEMI)
		return &ast.DeclStmt{Decl: d, Location: loc}
	case lexer.DEFER:
		loc := p.loc()
		p.advance()
		call := p.parseExpr()
		p.expect(lexer.SEMI)
		return &ast.DeferStmt{Call: call, Location: loc}
	case lexer.SWITCH:
		return p.parseSwitch()
	default:
		return p.parseAssignmentOrExprStmt()
	}
}

func (p *Parser) parseWhile() ast.Stmt {
	loc := p.loc()
	p.advance()
	p.expect(lexer.LPAREN)
	cond := p.parseExpr()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStmt{Cond: cond, Body: body, Location: loc}
}

func (p *Parser) parseFor() ast.Stmt {
	loc := p.loc()
	p.advance()
	p.expect(lexer.LPAREN)
	counter := p.parseVarDecl(false, false)
	p.expect(lexer.SEMI)
	var cond ast.Expr
	if !p.at(lexer.SEMI) {
		cond = p.parseExpr()
	}
	p.expect(lexer.SEMI)
	var incr ast.Stmt
	if !p.at(lexer.RPAREN) {
		incr = p.parseSimpleStmt()
	}
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.ForStmt{Counter: counter, Cond: cond, Increment: incr, Body: body, Location: loc}
}

func (p *Parser) parseIf() ast.Stmt {
	loc := p.loc()
	p.advance()
	p.expect(lexer.LPAREN)
	cond := p.parseExpr()
	p.expect(lexer.RPAREN)
	then := p.parseBlock()
	stmt := &ast.IfStmt{Cond: cond, Then: then, Location: loc}
	if p.at(lexer.ELSE) {
		p.advance()
		if p.at(lexer.IF) {
			stmt.ElseIf = p.parseIf().(*ast.IfStmt)
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	loc := p.loc()
	p.advance()
	var val ast.Expr
	if !p.at(lexer.SEMI) {
		val = p.parseExpr()
	}
	p.expect(lexer.SEMI)
	return &ast.ReturnStmt{Value: val, Location: loc}
}

func (p *Parser) parseSwitch() ast.Stmt {
	loc := p.loc()
	p.advance()
	p.expect(lexer.LPAREN)
	subject := p.parseExpr()
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)
	var cases []*ast.CaseClause
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		caseLoc := p.loc()
		var value ast.Expr
		if p.at(lexer.CASE) {
			p.advance()
			value = p.parseExpr()
		} else if p.at(lexer.DEFAULT) {
			p.advance()
		} else {
			p.errorf(diag.PAR003, "expected case or default, found %s", p.cur().Kind)
			p.advance()
			continue
		}
		p.expect(lexer.COLON)
		var body []ast.Stmt
		for !p.at(lexer.CASE) && !p.at(lexer.DEFAULT) && !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
			body = append(body, p.parseStmt())
		}
		cases = append(cases, &ast.CaseClause{Value: value, Body: body, Location: caseLoc})
	}
	p.expect(lexer.RBRACE)
	return &ast.SwitchStmt{Subject: subject, Cases: cases, Location: loc}
}

// parseSimpleStmt parses an assignment-or-expr with no trailing `;`,
// used for a for-loop's increment clause (spec.md §4.2).
func (p *Parser) parseSimpleStmt() ast.Stmt {
	loc := p.loc()
	expr := p.parseExpr()
	if p.at(lexer.ASSIGN) {
		p.advance()
		rhs := p.parseExpr()
		target, derefs := splitDerefs(expr)
		return &ast.Assignment{Target: target, DerefCount: derefs, Rhs: rhs, Location: loc}
	}
	return &ast.ExprStmt{Value: expr, Location: loc}
}

func (p *Parser) parseAssignmentOrExprStmt() ast.Stmt {
	stmt := p.parseSimpleStmt()
	p.expect(lexer.SEMI)
	return stmt
}

// splitDerefs unwraps leading UnaryOperator(OpDeref) nodes so an
// assignment's lvalue-deref-count (spec.md §3) is explicit rather than
// folded into a UnaryOperator tree: `*p = x` parses its lhs expression
// as `*p` (a UnaryOperator), and this pulls the `*` out into
// Assignment.DerefCount.
func splitDerefs(e ast.Expr) (ast.Expr, int) {
	count := 0
	for {
		u, ok := e.(*ast.UnaryOperator)
		if !ok || u.Op != ast.OpDeref {
			return e, count
		}
		count++
		e = u.Rhs
	}
}
