// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/golangee/concrete/ast"
	"github.com/golangee/concrete/token"
)

// Precedence ranks, highest number binds tightest. These mirror spec
// §4.2's table read bottom-to-top: level 5 (cast) is the loosest real
// operator, level 2 (comparisons) the tightest — note this is the
// inverse of many sibling languages, where comparisons are usually
// looser than arithmetic; the spec is explicit this must be preserved
// bit-for-bit.
const (
	precLowest = iota
	precCast
	precAddSub
	precMulDiv
	precCompare
)

type infixOp struct {
	op   ast.BinaryOperator
	prec int
}

var infixOps = map[token.Kind]infixOp{
	token.EqEq:    {ast.BinEq, precCompare},
	token.NotEq:   {ast.BinNotEq, precCompare},
	token.Lt:      {ast.BinLt, precCompare},
	token.Gt:      {ast.BinGt, precCompare},
	token.Le:      {ast.BinLe, precCompare},
	token.Ge:      {ast.BinGe, precCompare},
	token.AndAnd:  {ast.BinAndAnd, precCompare},
	token.OrOr:    {ast.BinOrOr, precCompare},
	token.Star:    {ast.BinMul, precMulDiv},
	token.Slash:   {ast.BinDiv, precMulDiv},
	token.Percent: {ast.BinRem, precMulDiv},
	token.Plus:    {ast.BinAdd, precAddSub},
	token.Minus:   {ast.BinSub, precAddSub},
	token.Amp:     {ast.BinBitAnd, precAddSub},
	token.Pipe:    {ast.BinBitOr, precAddSub},
	token.Caret:   {ast.BinBitXor, precAddSub},
}

// parseExpr parses a full expression, permitting a bare StructInit or
// EnumInit atom (the position is not ambiguous with a following block).
func (p *Parser) parseExpr(minPrec int) (ast.Expression, *Error) {
	return p.parseExprCtx(minPrec, true)
}

// parseExprNoBrace parses an expression in a position where a trailing
// "{" would instead open a block — if/while conditions and the match
// scrutinee (a for-loop condition sits inside parentheses and uses
// parseExpr) (spec §4.2: "`{` after an expression is ambiguous
// with a block"). A bare StructInit/EnumInit is not permitted there;
// write it parenthesised.
func (p *Parser) parseExprNoBrace(minPrec int) (ast.Expression, *Error) {
	return p.parseExprCtx(minPrec, false)
}

func (p *Parser) parseExprCtx(minPrec int, allowBrace bool) (ast.Expression, *Error) {
	left, err := p.parseUnary(allowBrace)
	if err != nil {
		return nil, err
	}

	for {
		if p.cur.Kind == token.As {
			if precCast <= minPrec {
				break
			}

			start := left.Spanned()

			if err := p.advance(); err != nil {
				return nil, err
			}

			to, err := p.parseTypeDescriptor()
			if err != nil {
				return nil, err
			}

			left = &ast.CastExpr{Inner: left, To: to, Span: start.Cover(to.Spanned())}

			continue
		}

		info, ok := infixOps[p.cur.Kind]
		if !ok || info.prec <= minPrec {
			break
		}

		start := left.Spanned()

		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.parseExprCtx(info.prec, allowBrace)
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOpExpr{Lhs: left, Op: info.op, Rhs: right, Span: start.Cover(right.Spanned())}
	}

	return left, nil
}

// parseUnary handles level-1 prefix operators, right-associative by
// plain recursion: each binds tighter than anything after it.
func (p *Parser) parseUnary(allowBrace bool) (ast.Expression, *Error) {
	switch p.cur.Kind {
	case token.Amp:
		start := p.cur.Span

		if err := p.advance(); err != nil {
			return nil, err
		}

		isMut := false
		if p.cur.Kind == token.Mut {
			isMut = true

			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		inner, err := p.parseUnary(allowBrace)
		if err != nil {
			return nil, err
		}

		return &ast.AsRefExpr{Inner: inner, IsMut: isMut, Span: start.Cover(inner.Spanned())}, nil

	case token.Star:
		start := p.cur.Span

		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseUnary(allowBrace)
		if err != nil {
			return nil, err
		}

		return &ast.DerefExpr{Inner: inner, Span: start.Cover(inner.Spanned())}, nil

	case token.Minus:
		return p.parseUnaryOp(ast.UnaryNeg, allowBrace)
	case token.Bang:
		return p.parseUnaryOp(ast.UnaryNot, allowBrace)
	case token.Tilde:
		return p.parseUnaryOp(ast.UnaryBitNot, allowBrace)
	default:
		return p.parseAtom(allowBrace)
	}
}

func (p *Parser) parseUnaryOp(op ast.UnaryOperator, allowBrace bool) (ast.Expression, *Error) {
	start := p.cur.Span

	if err := p.advance(); err != nil {
		return nil, err
	}

	inner, err := p.parseUnary(allowBrace)
	if err != nil {
		return nil, err
	}

	return &ast.UnaryOpExpr{Op: op, Inner: inner, Span: start.Cover(inner.Spanned())}, nil
}

func (p *Parser) parseAtom(allowBrace bool) (ast.Expression, *Error) {
	switch p.cur.Kind {
	case token.Integer:
		tok := p.cur

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.ValueExprNode{Value: ast.ValueExpr{Int: tok.Int, Span: tok.Span}}, nil

	case token.Float:
		tok := p.cur

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.ValueExprNode{Value: ast.ValueExpr{Float: tok.Text, Span: tok.Span}}, nil

	case token.String:
		tok := p.cur

		if err := p.advance(); err != nil {
			return nil, err
		}

		text := tok.Text

		return &ast.ValueExprNode{Value: ast.ValueExpr{Str: &text, Span: tok.Span}}, nil

	case token.Char:
		tok := p.cur

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.ValueExprNode{Value: ast.ValueExpr{Char: tok.CharVal, IsChar: true, Span: tok.Span}}, nil

	case token.Boolean:
		tok := p.cur

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.ValueExprNode{Value: ast.ValueExpr{Bool: tok.BoolVal, IsBool: true, Span: tok.Span}}, nil

	case token.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}

		return inner, nil

	case token.LBracket:
		return p.parseArrayInit()

	case token.Match:
		return p.parseMatchExpr()

	case token.If:
		return p.parseIfExpr()

	case token.SelfKw:
		start := p.cur.Span

		if err := p.advance(); err != nil {
			return nil, err
		}

		first := ast.Ident{Name: "self", Span: start}

		segs, err := p.parsePathSegments()
		if err != nil {
			return nil, err
		}

		return &ast.PathExpr{Path: ast.PathOp{First: first, Extra: segs, Span: start.Cover(p.cur.Span)}, Span: start.Cover(p.cur.Span)}, nil

	case token.Ident:
		return p.parseIdentLedExpr(allowBrace)

	default:
		return nil, unexpectedTokenErr(p.cur.Span, "an expression", p.cur.Kind)
	}
}

// parseIdentLedExpr parses everything that can begin with an
// identifier: a plain path (`x.y[0]`), a free/qualified function call
// (`f(...)`, `a::b::<T>(...)`), a struct initialiser (`T { ... }`), or
// an enum initialiser / associated-method call (`T#Variant`, `T#m(...)`
// — spec §9 keeps the `#` sigil deliberately, it disambiguates against
// `T::m::<...>(...)`'s clash with path-with-generics).
func (p *Parser) parseIdentLedExpr(allowBrace bool) (ast.Expression, *Error) {
	start := p.cur.Span

	name, err := p.parseTypeNamePath(true)
	if err != nil {
		return nil, err
	}

	qualified := len(name.Path) > 0 || len(name.Generics) > 0

	switch {
	case p.cur.Kind == token.LParen:
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}

		return &ast.FnCallExpr{Path: name.Path, Target: name.Name, Generics: name.Generics, Args: args, Span: start.Cover(p.cur.Span)}, nil

	case allowBrace && p.cur.Kind == token.LBrace:
		if err := p.advance(); err != nil {
			return nil, err
		}

		fields, err := p.parseFieldInits()
		if err != nil {
			return nil, err
		}

		end, err := p.expect(token.RBrace)
		if err != nil {
			return nil, err
		}

		return &ast.StructInitExpr{Type: name, Fields: fields, Span: start.Cover(end.Span)}, nil

	case p.cur.Kind == token.Hash:
		if err := p.advance(); err != nil {
			return nil, err
		}

		member, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		if p.cur.Kind == token.LParen || (p.cur.Kind == token.ColonColon && p.peek.Kind == token.Lt) {
			call, err := p.parseFnCallOpAfterName(member)
			if err != nil {
				return nil, err
			}

			return &ast.AssocMethodCallExpr{Type: name, Call: call, Span: start.Cover(p.cur.Span)}, nil
		}

		var fields []ast.FieldInit

		if allowBrace && p.cur.Kind == token.LBrace {
			if err := p.advance(); err != nil {
				return nil, err
			}

			fields, err = p.parseFieldInits()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.RBrace); err != nil {
				return nil, err
			}
		}

		return &ast.EnumInitExpr{Type: name, Variant: member, Fields: fields, Span: start.Cover(p.cur.Span)}, nil

	default:
		if qualified {
			return nil, unexpectedTokenErr(p.cur.Span, "'(' to call", p.cur.Kind)
		}

		segs, err := p.parsePathSegments()
		if err != nil {
			return nil, err
		}

		return &ast.PathExpr{Path: ast.PathOp{First: name.Name, Extra: segs, Span: start.Cover(p.cur.Span)}, Span: start.Cover(p.cur.Span)}, nil
	}
}

func (p *Parser) parsePathSegments() ([]ast.PathSegment, *Error) {
	var segs []ast.PathSegment

	for {
		switch p.cur.Kind {
		case token.Dot:
			start := p.cur.Span

			if err := p.advance(); err != nil {
				return nil, err
			}

			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}

			if p.cur.Kind == token.LParen || (p.cur.Kind == token.ColonColon && p.peek.Kind == token.Lt) {
				call, err := p.parseFnCallOpAfterName(name)
				if err != nil {
					return nil, err
				}

				segs = append(segs, &ast.MethodCallSegment{Call: call, Span: start.Cover(p.cur.Span)})

				continue
			}

			segs = append(segs, &ast.FieldAccessSegment{Name: name, Span: start.Cover(name.Span)})

		case token.LBracket:
			start := p.cur.Span

			if err := p.advance(); err != nil {
				return nil, err
			}

			idx, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}

			end, err := p.expect(token.RBracket)
			if err != nil {
				return nil, err
			}

			segs = append(segs, &ast.ArrayIndexSegment{Index: idx, Span: start.Cover(end.Span)})

		default:
			return segs, nil
		}
	}
}

func (p *Parser) parseFnCallOpAfterName(name ast.Ident) (ast.FnCallOp, *Error) {
	var generics []ast.TypeDescriptor

	if p.cur.Kind == token.ColonColon && p.peek.Kind == token.Lt {
		if err := p.advance(); err != nil {
			return ast.FnCallOp{}, err
		}

		g, err := p.parseGenericArgList()
		if err != nil {
			return ast.FnCallOp{}, err
		}

		generics = g
	}

	args, err := p.parseCallArgs()
	if err != nil {
		return ast.FnCallOp{}, err
	}

	return ast.FnCallOp{Name: name, Generics: generics, Args: args, Span: name.Span.Cover(p.cur.Span)}, nil
}

func (p *Parser) parseCallArgs() ([]ast.Expression, *Error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var args []ast.Expression

	for p.cur.Kind != token.RParen {
		arg, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			if p.cur.Kind == token.RParen {
				break
			}

			continue
		}

		break
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return args, nil
}

func (p *Parser) parseFieldInits() ([]ast.FieldInit, *Error) {
	var fields []ast.FieldInit

	for p.cur.Kind != token.RBrace {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}

		val, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}

		fields = append(fields, ast.FieldInit{Name: name, Value: val, Span: name.Span.Cover(val.Spanned())})

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	return fields, nil
}

func (p *Parser) parseArrayInit() (ast.Expression, *Error) {
	start, err := p.expect(token.LBracket)
	if err != nil {
		return nil, err
	}

	var elems []ast.Expression

	for p.cur.Kind != token.RBracket {
		e, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			if p.cur.Kind == token.RBracket {
				break
			}

			continue
		}

		break
	}

	end, err := p.expect(token.RBracket)
	if err != nil {
		return nil, err
	}

	return &ast.ArrayInitExpr{Elements: elems, Span: start.Span.Cover(end.Span)}, nil
}

func (p *Parser) parseMatchExpr() (ast.Expression, *Error) {
	start, err := p.expect(token.Match)
	if err != nil {
		return nil, err
	}

	scrutinee, err := p.parseExprNoBrace(precLowest)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var variants []ast.MatchVariant

	for p.cur.Kind != token.RBrace {
		vStart := p.cur.Span

		valuePattern, enumPattern, err := p.parseMatchPattern()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.FatArrow); err != nil {
			return nil, err
		}

		var body []ast.Statement

		if p.cur.Kind == token.LBrace {
			body, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		} else {
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}

			body = []ast.Statement{stmt}
		}

		variants = append(variants, ast.MatchVariant{
			ValuePattern: valuePattern, EnumPattern: enumPattern, Body: body, Span: vStart.Cover(p.cur.Span),
		})

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			if p.cur.Kind == token.RBrace {
				break
			}

			continue
		}

		break
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	return &ast.MatchExpr{Scrutinee: scrutinee, Variants: variants, Span: start.Span.Cover(end.Span)}, nil
}

// parseMatchPattern parses one of the two pattern shapes a MatchVariant
// can start with: an enum pattern `TypeNameUse#Variant { binds }`, or a
// plain value pattern. A value pattern that starts with an identifier
// is read as a path only (`x`, `x.y`, `x[0]`), with no operators or
// calls; any other value pattern is a non-brace expression.
func (p *Parser) parseMatchPattern() (ast.Expression, *ast.EnumMatchExpr, *Error) {
	if p.cur.Kind != token.Ident {
		expr, err := p.parseExprNoBrace(precLowest)
		if err != nil {
			return nil, nil, err
		}

		return expr, nil, nil
	}

	start := p.cur.Span

	name, err := p.parseTypeNamePath(true)
	if err != nil {
		return nil, nil, err
	}

	if p.cur.Kind != token.Hash {
		segs, err := p.parsePathSegments()
		if err != nil {
			return nil, nil, err
		}

		return &ast.PathExpr{Path: ast.PathOp{First: name.Name, Extra: segs, Span: start.Cover(p.cur.Span)}, Span: start.Cover(p.cur.Span)}, nil, nil
	}

	if err := p.advance(); err != nil {
		return nil, nil, err
	}

	variant, err := p.parseIdent()
	if err != nil {
		return nil, nil, err
	}

	var binds []ast.Ident

	if p.cur.Kind == token.LBrace {
		if err := p.advance(); err != nil {
			return nil, nil, err
		}

		for p.cur.Kind != token.RBrace {
			id, err := p.parseIdent()
			if err != nil {
				return nil, nil, err
			}

			binds = append(binds, id)

			if p.cur.Kind == token.Comma {
				if err := p.advance(); err != nil {
					return nil, nil, err
				}

				continue
			}

			break
		}

		if _, err := p.expect(token.RBrace); err != nil {
			return nil, nil, err
		}
	}

	return nil, &ast.EnumMatchExpr{Type: name, Variant: variant, Binds: binds, Span: start.Cover(p.cur.Span)}, nil
}

func (p *Parser) parseIfExpr() (ast.Expression, *Error) {
	start, err := p.expect(token.If)
	if err != nil {
		return nil, err
	}

	cond, err := p.parseExprNoBrace(precLowest)
	if err != nil {
		return nil, err
	}

	thenBody, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBody []ast.Statement

	if p.cur.Kind == token.Else {
		if err := p.advance(); err != nil {
			return nil, err
		}

		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfExpr{Cond: cond, Then: thenBody, Else: elseBody, Span: start.Span.Cover(p.cur.Span)}, nil
}
