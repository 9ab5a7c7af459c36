// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"github.com/golangee/concrete/ast"
	"github.com/golangee/concrete/token"
)

// parseTypeNamePath parses `(Ident "::")* Ident` plus an optional
// generic argument list. Two surface forms share this one production:
// the type-position form takes generics directly as `<...>`
// (usePosition == false); the value/use-position form requires the
// turbofish `::<...>` (usePosition == true) to stay unambiguous
// against `<` comparison (spec §4.2, §9 "Turbofish ambiguity").
func (p *Parser) parseTypeNamePath(usePosition bool) (ast.TypeName, *Error) {
	start := p.cur.Span

	name, err := p.parseIdent()
	if err != nil {
		return ast.TypeName{}, err
	}

	var path []ast.Ident

	for p.cur.Kind == token.ColonColon && p.peek.Kind == token.Ident {
		if err := p.advance(); err != nil {
			return ast.TypeName{}, err
		}

		path = append(path, name)

		name, err = p.parseIdent()
		if err != nil {
			return ast.TypeName{}, err
		}
	}

	var generics []ast.TypeDescriptor

	switch {
	case usePosition && p.cur.Kind == token.ColonColon && p.peek.Kind == token.Lt:
		if err := p.advance(); err != nil {
			return ast.TypeName{}, err
		}

		generics, err = p.parseGenericArgList()
		if err != nil {
			return ast.TypeName{}, err
		}
	case !usePosition && p.cur.Kind == token.Lt:
		generics, err = p.parseGenericArgList()
		if err != nil {
			return ast.TypeName{}, err
		}
	}

	return ast.TypeName{Path: path, Name: name, Generics: generics, Span: start.Cover(p.cur.Span)}, nil
}

func (p *Parser) parseGenericArgList() ([]ast.TypeDescriptor, *Error) {
	if _, err := p.expect(token.Lt); err != nil {
		return nil, err
	}

	var args []ast.TypeDescriptor

	for p.cur.Kind != token.Gt {
		td, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}

		args = append(args, td)

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			if p.cur.Kind == token.Gt {
				break
			}

			continue
		}

		break
	}

	if _, err := p.expect(token.Gt); err != nil {
		return nil, &Error{Kind: MalformedTurbofish, Span: err.Span, Msg: "expected '>' to close generic argument list"}
	}

	return args, nil
}

// parseTypeDescriptor parses `TypeName`, `[T; N]`, `&T`, `&mut T`,
// `*const T`, or `*mut T` (spec §3, §4.2). SelfType is never produced
// here; it is only legal as a method receiver, handled in parseParam.
func (p *Parser) parseTypeDescriptor() (ast.TypeDescriptor, *Error) {
	switch p.cur.Kind {
	case token.Amp:
		start := p.cur.Span

		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.cur.Kind == token.Mut {
			if err := p.advance(); err != nil {
				return nil, err
			}

			of, err := p.parseTypeDescriptor()
			if err != nil {
				return nil, err
			}

			return &ast.MutRefType{Of: of, Span: start.Cover(of.Spanned())}, nil
		}

		of, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}

		return &ast.RefType{Of: of, Span: start.Cover(of.Spanned())}, nil

	case token.Star:
		start := p.cur.Span

		if err := p.advance(); err != nil {
			return nil, err
		}

		switch p.cur.Kind {
		case token.Const:
			if err := p.advance(); err != nil {
				return nil, err
			}

			of, err := p.parseTypeDescriptor()
			if err != nil {
				return nil, err
			}

			return &ast.ConstPtrType{Of: of, Span: start.Cover(of.Spanned())}, nil
		case token.Mut:
			if err := p.advance(); err != nil {
				return nil, err
			}

			of, err := p.parseTypeDescriptor()
			if err != nil {
				return nil, err
			}

			return &ast.MutPtrType{Of: of, Span: start.Cover(of.Spanned())}, nil
		default:
			return nil, unexpectedTokenErr(p.cur.Span, "'const' or 'mut'", p.cur.Kind)
		}

	case token.LBracket:
		start := p.cur.Span

		if err := p.advance(); err != nil {
			return nil, err
		}

		of, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}

		sizeTok, err := p.expect(token.Integer)
		if err != nil {
			return nil, err
		}

		if !sizeTok.Int.IsUint64() {
			return nil, &Error{Kind: InvalidArraySize, Span: sizeTok.Span}
		}

		end, err := p.expect(token.RBracket)
		if err != nil {
			return nil, err
		}

		return &ast.ArrayType{Of: of, Size: sizeTok.Int.Uint64(), Span: start.Cover(end.Span)}, nil

	default:
		name, err := p.parseTypeNamePath(false)
		if err != nil {
			return nil, err
		}

		return &ast.NamedType{Name: name}, nil
	}
}
