// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/golangee/concrete/ast"
	"github.com/golangee/concrete/token"
)

func (p *Parser) parseStatements() ([]ast.Statement, *Error) {
	var stmts []ast.Statement

	for p.cur.Kind != token.RBrace && !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Statement, *Error) {
	switch p.cur.Kind {
	case token.Let:
		return p.parseLetStmt()
	case token.Return:
		return p.parseReturnStmt()
	case token.Match:
		return p.parseMatchStmt()
	case token.If:
		return p.parseIfStmt()
	case token.While:
		return p.parseWhileStmt()
	case token.For:
		return p.parseForStmt()
	default:
		return p.parseExprLedStmt()
	}
}

func (p *Parser) parseLetCore() (*ast.LetStmt, *Error) {
	start, err := p.expect(token.Let)
	if err != nil {
		return nil, err
	}

	isMut := false
	if p.cur.Kind == token.Mut {
		isMut = true

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}

	ty, err := p.parseTypeDescriptor()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}

	rhs, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}

	return &ast.LetStmt{IsMut: isMut, Name: name, Type: ty, Rhs: rhs, Span: start.Span.Cover(rhs.Spanned())}, nil
}

func (p *Parser) parseLetStmt() (ast.Statement, *Error) {
	stmt, err := p.parseLetCore()
	if err != nil {
		return nil, err
	}

	end, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}

	stmt.Span = stmt.Span.Cover(end.Span)

	return stmt, nil
}

// parseAssignCore parses `"*"* PathOp "=" RHS` without the trailing
// ';' — shared between a standalone AssignStmt and a for-loop's post
// clause.
func (p *Parser) parseAssignCore() (*ast.AssignStmt, *Error) {
	start := p.cur.Span

	derefs := 0
	for p.cur.Kind == token.Star {
		derefs++

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	first, err := p.parseIdentOrSelf()
	if err != nil {
		return nil, err
	}

	segs, err := p.parsePathSegments()
	if err != nil {
		return nil, err
	}

	lvalue := ast.PathOp{First: first, Extra: segs, Span: first.Span.Cover(p.cur.Span)}

	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}

	rhs, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}

	return &ast.AssignStmt{Derefs: derefs, Lvalue: lvalue, Rhs: rhs, Span: start.Cover(rhs.Spanned())}, nil
}

func (p *Parser) parseReturnStmt() (ast.Statement, *Error) {
	start, err := p.expect(token.Return)
	if err != nil {
		return nil, err
	}

	var value ast.Expression

	if p.cur.Kind != token.Semicolon {
		value, err = p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
	}

	end, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{Value: value, Span: start.Span.Cover(end.Span)}, nil
}

func (p *Parser) parseMatchStmt() (ast.Statement, *Error) {
	expr, err := p.parseMatchExpr()
	if err != nil {
		return nil, err
	}

	me := expr.(*ast.MatchExpr)

	return &ast.MatchStmt{Match: *me, Span: me.Span}, nil
}

func (p *Parser) parseIfStmt() (ast.Statement, *Error) {
	expr, err := p.parseIfExpr()
	if err != nil {
		return nil, err
	}

	ie := expr.(*ast.IfExpr)

	return &ast.IfStmt{If: *ie, Span: ie.Span}, nil
}

func (p *Parser) parseWhileStmt() (ast.Statement, *Error) {
	start, err := p.expect(token.While)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExprNoBrace(precLowest)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Cond: cond, Body: body, Span: start.Span.Cover(p.cur.Span)}, nil
}

// parseForStmt covers all three productions spec §4.2 lists:
// C-style `for (LetStmt? ; Expr? ; AssignStmt?) { ... }`,
// condition-only `for (Expr) { ... }`, and infinite `for { ... }`
// (note: no parens at all on the infinite form).
func (p *Parser) parseForStmt() (ast.Statement, *Error) {
	start, err := p.expect(token.For)
	if err != nil {
		return nil, err
	}

	if p.cur.Kind == token.LBrace {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		return &ast.ForStmt{Body: body, Span: start.Span.Cover(p.cur.Span)}, nil
	}

	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var init ast.Statement

	switch p.cur.Kind {
	case token.Semicolon:
		if err := p.advance(); err != nil {
			return nil, err
		}
	case token.Let:
		initStmt, err := p.parseLetCore()
		if err != nil {
			return nil, err
		}

		init = initStmt

		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}
	default:
		// Only an empty or LetStmt init clause is grammatical for the
		// C-style form, so anything else here must be the lone
		// expression of the condition-only form instead.
		cond, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}

		end, err := p.expect(token.RParen)
		if err != nil {
			return nil, err
		}

		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		return &ast.ForStmt{Cond: cond, Body: body, Span: start.Span.Cover(end.Span)}, nil
	}

	var cond ast.Expression

	if p.cur.Kind != token.Semicolon {
		cond, err = p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	var post ast.Statement

	if p.cur.Kind != token.RParen {
		postStmt, err := p.parseAssignCore()
		if err != nil {
			return nil, err
		}

		post = postStmt
	}

	end, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body, Span: start.Span.Cover(end.Span)}, nil
}

// parseExprLedStmt parses whatever does not begin with a statement
// keyword: a deref-led assignment (`*p = ...`), a free function call
// statement, a bare PathOp expression statement, or a PathOp
// assignment.
func (p *Parser) parseExprLedStmt() (ast.Statement, *Error) {
	if p.cur.Kind == token.Star {
		stmt, err := p.parseAssignCore()
		if err != nil {
			return nil, err
		}

		end, err := p.expect(token.Semicolon)
		if err != nil {
			return nil, err
		}

		stmt.Span = stmt.Span.Cover(end.Span)

		return stmt, nil
	}

	start := p.cur.Span

	// "self" normalises straight into Ident (spec §3); it can never
	// start a qualified path or a free-function call, only a PathOp.
	if p.cur.Kind == token.SelfKw {
		selfIdent := ast.Ident{Name: "self", Span: start}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.finishPathOrAssignStmt(start, selfIdent)
	}

	name, err := p.parseTypeNamePath(true)
	if err != nil {
		return nil, err
	}

	qualified := len(name.Path) > 0 || len(name.Generics) > 0

	if p.cur.Kind == token.LParen {
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}

		call := ast.FnCallExpr{Path: name.Path, Target: name.Name, Generics: name.Generics, Args: args, Span: start.Cover(p.cur.Span)}

		end, err := p.expect(token.Semicolon)
		if err != nil {
			return nil, err
		}

		return &ast.FnCallStmt{Call: call, Span: start.Cover(end.Span)}, nil
	}

	if qualified {
		return nil, unexpectedTokenErr(p.cur.Span, "'(' to call", p.cur.Kind)
	}

	return p.finishPathOrAssignStmt(start, name.Name)
}

// finishPathOrAssignStmt parses the `.field`/`.method(...)`/`[idx]`
// chain following a path's first identifier, then decides between an
// AssignStmt (if `=` follows) and a bare PathOpStmt.
func (p *Parser) finishPathOrAssignStmt(start token.Span, first ast.Ident) (ast.Statement, *Error) {
	segs, err := p.parsePathSegments()
	if err != nil {
		return nil, err
	}

	path := ast.PathOp{First: first, Extra: segs, Span: start.Cover(p.cur.Span)}

	if p.cur.Kind == token.Assign {
		if err := p.advance(); err != nil {
			return nil, err
		}

		rhs, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}

		end, err := p.expect(token.Semicolon)
		if err != nil {
			return nil, err
		}

		return &ast.AssignStmt{Derefs: 0, Lvalue: path, Rhs: rhs, Span: start.Cover(end.Span)}, nil
	}

	end, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}

	return &ast.PathOpStmt{Path: path, Span: start.Cover(end.Span)}, nil
}
