// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package parser is a hand-written recursive-descent parser with a
// Pratt expression core, built in place of a generated LR parser —
// spec §9 sanctions exactly this substitution provided precedence and
// the `<`/turbofish disambiguation behave identically to the grammar
// it replaces. See DESIGN.md for the grounding of this choice.
package parser

import (
	"github.com/golangee/concrete/ast"
	"github.com/golangee/concrete/token"
)

// Parser holds a two-token look-ahead window (cur, peek) over a
// Lexer, the same shape the teacher's parser2 decoder and the
// Pratt-parser reference in other_examples use.
type Parser struct {
	file *token.File
	lex  *token.Lexer
	cur  token.Token
	peek token.Token
}

func newParser(file *token.File) (*Parser, *Error) {
	p := &Parser{file: file, lex: token.NewLexer(file)}

	if err := p.advance(); err != nil {
		return nil, err
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

// Parse is the sole entry point: `parse(path, source) -> CompilationUnit
// | Error` (spec §4.2, §6).
func Parse(path string, source []byte, opts ...Option) (*ast.CompilationUnit, error) {
	cfg := options{filename: path}
	for _, opt := range opts {
		opt(&cfg)
	}

	file := token.NewFile(cfg.filename, source)

	p, err := newParser(file)
	if err != nil {
		return nil, err
	}

	cu, perr := p.parseCompilationUnit()
	if perr != nil {
		return nil, perr
	}

	return cu, nil
}

func (p *Parser) advance() *Error {
	p.cur = p.peek

	tok, lexErr := p.lex.Next()
	if lexErr != nil {
		return lexicalErr(lexErr)
	}

	p.peek = tok

	return nil
}

func (p *Parser) atEOF() bool {
	return p.cur.Kind == token.EOF
}

func (p *Parser) expect(kind token.Kind) (token.Token, *Error) {
	if p.cur.Kind != kind {
		// unexpectedTokenErr itself reports EOF as UnexpectedEOF.
		return token.Token{}, unexpectedTokenErr(p.cur.Span, kind.String(), p.cur.Kind)
	}

	tok := p.cur
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}

	return tok, nil
}

func (p *Parser) parseIdent() (ast.Ident, *Error) {
	tok, err := p.expect(token.Ident)
	if err != nil {
		return ast.Ident{}, err
	}

	return ast.Ident{Name: tok.Text, Span: tok.Span}, nil
}

// parseIdentOrSelf accepts a plain identifier or the "self" keyword,
// normalising the latter into an Ident per spec §3's rule that
// keywords parsed in identifier position are normalised into Ident.
func (p *Parser) parseIdentOrSelf() (ast.Ident, *Error) {
	if p.cur.Kind == token.SelfKw {
		tok := p.cur

		if err := p.advance(); err != nil {
			return ast.Ident{}, err
		}

		return ast.Ident{Name: "self", Span: tok.Span}, nil
	}

	return p.parseIdent()
}

// parseCompilationUnit consumes every top-level doc-commented `mod`
// item until end of input.
func (p *Parser) parseCompilationUnit() (*ast.CompilationUnit, *Error) {
	cu := &ast.CompilationUnit{}

	for !p.atEOF() {
		doc, err := p.consumeLeadingDocString()
		if err != nil {
			return nil, err
		}

		mod, err := p.parseModule(doc)
		if err != nil {
			return nil, err
		}

		cu.Modules = append(cu.Modules, mod)
	}

	return cu, nil
}

// consumeLeadingDocString consumes a DocString token if one is
// present at the current position; the lexer already merges a run of
// consecutive "///" lines into a single token (spec §4.3).
func (p *Parser) consumeLeadingDocString() (*ast.DocString, *Error) {
	if p.cur.Kind != token.DocString {
		return nil, nil
	}

	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}

	return &ast.DocString{Lines: splitLines(tok.Text), Span: tok.Span}, nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}

	lines = append(lines, s[start:])

	return lines
}

// parseAttributes consumes `#[name]` / `#[name = "value"]` runs.
func (p *Parser) parseAttributes() ([]ast.Attribute, *Error) {
	var attrs []ast.Attribute

	for p.cur.Kind == token.Hash {
		start := p.cur.Span

		if err := p.advance(); err != nil {
			return nil, err
		}

		if _, err := p.expect(token.LBracket); err != nil {
			return nil, err
		}

		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		var value *string
		if p.cur.Kind == token.Assign {
			if err := p.advance(); err != nil {
				return nil, err
			}

			valTok, err := p.expect(token.String)
			if err != nil {
				return nil, err
			}

			value = &valTok.Text
		}

		end, err := p.expect(token.RBracket)
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, ast.Attribute{Name: name.Name, Value: value, Span: start.Cover(end.Span)})
	}

	return attrs, nil
}

func (p *Parser) parseGenericParams() ([]ast.GenericParam, *Error) {
	if p.cur.Kind != token.Lt {
		return nil, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	var params []ast.GenericParam

	for {
		start := p.cur.Span

		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		var bounds []ast.TypeName

		if p.cur.Kind == token.Colon {
			if err := p.advance(); err != nil {
				return nil, err
			}

			bound, err := p.parseTypeNamePath(false)
			if err != nil {
				return nil, err
			}

			bounds = append(bounds, bound)

			for p.cur.Kind == token.Plus {
				if err := p.advance(); err != nil {
					return nil, err
				}

				bound, err := p.parseTypeNamePath(false)
				if err != nil {
					return nil, err
				}

				bounds = append(bounds, bound)
			}
		}

		params = append(params, ast.GenericParam{Name: name, Bounds: bounds, Span: start.Cover(p.cur.Span)})

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
		return nil, err
	}

	return params, nil
}

func (p *Parser) parseModule(doc *ast.DocString) (*ast.Module, *Error) {
	start, err := p.expect(token.Mod)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	contents, err := p.parseModuleItems()
	if err != nil {
		return nil, err
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	return &ast.Module{
		DocString: doc,
		Name:      name,
		Contents:  contents,
		FilePath:  p.file.Path,
		Span:      start.Span.Cover(end.Span),
	}, nil
}

func (p *Parser) parseModuleItems() ([]ast.Handle[ast.ModuleDefItem], *Error) {
	var items []ast.Handle[ast.ModuleDefItem]

	for p.cur.Kind != token.RBrace && !p.atEOF() {
		item, err := p.parseModuleItem()
		if err != nil {
			return nil, err
		}

		items = append(items, ast.NewHandle(&item))
	}

	return items, nil
}

func (p *Parser) parseModuleItem() (ast.ModuleDefItem, *Error) {
	doc, err := p.consumeLeadingDocString()
	if err != nil {
		return nil, err
	}

	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	isPub := false
	if p.cur.Kind == token.Pub {
		isPub = true

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	switch p.cur.Kind {
	case token.Const:
		return p.parseConstantDecl(doc, isPub)
	case token.Struct:
		return p.parseStructDecl(doc, attrs, isPub)
	case token.Union:
		return p.parseUnionDecl(doc, attrs, isPub)
	case token.Enum:
		return p.parseEnumDecl(doc, attrs, isPub)
	case token.Extern:
		if err := p.advance(); err != nil {
			return nil, err
		}

		sig, err := p.parseFunctionSignature(doc, attrs, isPub, false)
		if err != nil {
			return nil, err
		}

		sig.IsExtern = true

		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, err
		}

		return &ast.FunctionDeclItem{Decl: sig}, nil
	case token.Fn:
		sig, err := p.parseFunctionSignature(doc, attrs, isPub, false)
		if err != nil {
			return nil, err
		}

		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}

		return &ast.FunctionItem{Def: &ast.FunctionDef{Decl: sig, Body: body}}, nil
	case token.Trait:
		return p.parseTraitDecl(doc, isPub)
	case token.TypeKw:
		return p.parseTypeAliasDecl(doc, isPub)
	case token.Impl:
		return p.parseImplLike()
	case token.Mod:
		return p.parseModOrExternalModule(doc)
	case token.Import:
		return p.parseImportDecl()
	default:
		return nil, unexpectedTokenErr(p.cur.Span, "a module item", p.cur.Kind)
	}
}

func (p *Parser) parseModOrExternalModule(doc *ast.DocString) (ast.ModuleDefItem, *Error) {
	start, err := p.expect(token.Mod)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	if p.cur.Kind == token.Semicolon {
		end := p.cur.Span

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.ExternalModuleItem{Decl: &ast.ExternalModule{Name: name, Span: start.Span.Cover(end)}}, nil
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	contents, err := p.parseModuleItems()
	if err != nil {
		return nil, err
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	return &ast.NestedModuleItem{Module: &ast.Module{
		DocString: doc,
		Name:      name,
		Contents:  contents,
		FilePath:  p.file.Path,
		Span:      start.Span.Cover(end.Span),
	}}, nil
}

func (p *Parser) parseImportDecl() (ast.ModuleDefItem, *Error) {
	start, err := p.expect(token.Import)
	if err != nil {
		return nil, err
	}

	first, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	path := []ast.Ident{first}

	for p.cur.Kind == token.Dot {
		if err := p.advance(); err != nil {
			return nil, err
		}

		seg, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		path = append(path, seg)
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var members []ast.Ident

	for p.cur.Kind != token.RBrace {
		m, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		members = append(members, m)

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	end, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}

	return &ast.ImportItem{Decl: &ast.ImportDecl{Path: path, Members: members, Span: start.Span.Cover(end.Span)}}, nil
}

func (p *Parser) parseConstantDecl(doc *ast.DocString, isPub bool) (ast.ModuleDefItem, *Error) {
	start, err := p.expect(token.Const)
	if err != nil {
		return nil, err
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

	value, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}

	end, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}

	return &ast.ConstantItem{Decl: &ast.ConstantDecl{
		DocString: doc, IsPub: isPub, Name: name, Type: ty, Value: value,
		Span: start.Span.Cover(end.Span),
	}}, nil
}

func (p *Parser) parseStructFields() ([]ast.StructField, *Error) {
	var fields []ast.StructField

	for p.cur.Kind != token.RBrace {
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

		fields = append(fields, ast.StructField{Name: name, Type: ty, Span: name.Span.Cover(ty.Spanned())})

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

func (p *Parser) parseStructDecl(doc *ast.DocString, attrs []ast.Attribute, isPub bool) (ast.ModuleDefItem, *Error) {
	start, err := p.expect(token.Struct)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	fields, err := p.parseStructFields()
	if err != nil {
		return nil, err
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	return &ast.StructItem{Decl: &ast.StructDecl{
		DocString: doc, Attributes: attrs, IsPub: isPub, Name: name, Generics: generics, Fields: fields,
		Span: start.Span.Cover(end.Span),
	}}, nil
}

func (p *Parser) parseUnionDecl(doc *ast.DocString, attrs []ast.Attribute, isPub bool) (ast.ModuleDefItem, *Error) {
	start, err := p.expect(token.Union)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	fields, err := p.parseStructFields()
	if err != nil {
		return nil, err
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	return &ast.UnionItem{Decl: &ast.UnionDecl{
		DocString: doc, Attributes: attrs, IsPub: isPub, Name: name, Generics: generics, Fields: fields,
		Span: start.Span.Cover(end.Span),
	}}, nil
}

func (p *Parser) parseEnumDecl(doc *ast.DocString, attrs []ast.Attribute, isPub bool) (ast.ModuleDefItem, *Error) {
	start, err := p.expect(token.Enum)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var variants []ast.EnumVariant

	for p.cur.Kind != token.RBrace {
		vStart := p.cur.Span

		vName, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		var fields []ast.StructField
		if p.cur.Kind == token.LBrace {
			if err := p.advance(); err != nil {
				return nil, err
			}

			fields, err = p.parseStructFields()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.RBrace); err != nil {
				return nil, err
			}
		}

		var discriminant ast.Expression
		if p.cur.Kind == token.Assign {
			if err := p.advance(); err != nil {
				return nil, err
			}

			discriminant, err = p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
		}

		variants = append(variants, ast.EnumVariant{
			Name: vName, Fields: fields, Discriminant: discriminant, Span: vStart.Cover(p.cur.Span),
		})

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	return &ast.EnumItem{Decl: &ast.EnumDecl{
		DocString: doc, Attributes: attrs, IsPub: isPub, Name: name, Generics: generics, Variants: variants,
		Span: start.Span.Cover(end.Span),
	}}, nil
}

func (p *Parser) parseTraitDecl(doc *ast.DocString, isPub bool) (ast.ModuleDefItem, *Error) {
	start, err := p.expect(token.Trait)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	var assocTypes []ast.AssociatedTypeDecl

	var methods []*ast.FunctionDecl

	for p.cur.Kind != token.RBrace {
		mdoc, err := p.consumeLeadingDocString()
		if err != nil {
			return nil, err
		}

		switch p.cur.Kind {
		case token.TypeKw:
			atStart := p.cur.Span

			if err := p.advance(); err != nil {
				return nil, err
			}

			atName, err := p.parseIdent()
			if err != nil {
				return nil, err
			}

			end, err := p.expect(token.Semicolon)
			if err != nil {
				return nil, err
			}

			assocTypes = append(assocTypes, ast.AssociatedTypeDecl{
				DocString: mdoc, Name: atName, Span: atStart.Cover(end.Span),
			})
		case token.Fn:
			sig, err := p.parseFunctionSignature(mdoc, nil, false, false)
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.Semicolon); err != nil {
				return nil, err
			}

			methods = append(methods, sig)
		default:
			return nil, unexpectedTokenErr(p.cur.Span, "associated type or method signature", p.cur.Kind)
		}
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	return &ast.TraitItem{Decl: &ast.TraitDecl{
		DocString: doc, IsPub: isPub, Name: name, GenericParms: generics,
		AssociatedTypes: assocTypes, Methods: methods, Span: start.Span.Cover(end.Span),
	}}, nil
}

func (p *Parser) parseTypeAliasDecl(doc *ast.DocString, isPub bool) (ast.ModuleDefItem, *Error) {
	start, err := p.expect(token.TypeKw)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}

	ty, err := p.parseTypeDescriptor()
	if err != nil {
		return nil, err
	}

	end, err := p.expect(token.Semicolon)
	if err != nil {
		return nil, err
	}

	return &ast.TypeAliasItem{Decl: &ast.TypeAliasDecl{
		DocString: doc, IsPub: isPub, Name: name, Generics: generics, Type: ty,
		Span: start.Span.Cover(end.Span),
	}}, nil
}

// parseImplLike parses both inherent impl blocks and trait impl
// blocks. The two are disambiguated after parsing the first type: if
// "for" follows, what was parsed was the trait name.
func (p *Parser) parseImplLike() (ast.ModuleDefItem, *Error) {
	start, err := p.expect(token.Impl)
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}

	firstName, err := p.parseTypeNamePath(false)
	if err != nil {
		return nil, err
	}

	if p.cur.Kind == token.For {
		if err := p.advance(); err != nil {
			return nil, err
		}

		target, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.LBrace); err != nil {
			return nil, err
		}

		assocTypes, methods, err := p.parseImplBody()
		if err != nil {
			return nil, err
		}

		end, err := p.expect(token.RBrace)
		if err != nil {
			return nil, err
		}

		return &ast.ImplTraitItem{Block: &ast.ImplTraitBlock{
			TargetTrait: firstName, Target: target, GenericParms: generics,
			AssociatedTypes: assocTypes, Methods: methods, Span: start.Span.Cover(end.Span),
		}}, nil
	}

	target := &ast.NamedType{Name: firstName}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	_, methods, err := p.parseImplBody()
	if err != nil {
		return nil, err
	}

	end, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}

	return &ast.ImplItem{Block: &ast.ImplBlock{
		Target: target, GenericParms: generics, Methods: methods, Span: start.Span.Cover(end.Span),
	}}, nil
}

func (p *Parser) parseImplBody() ([]ast.AssociatedTypeBinding, []*ast.FunctionDef, *Error) {
	var assocTypes []ast.AssociatedTypeBinding

	var methods []*ast.FunctionDef

	for p.cur.Kind != token.RBrace {
		doc, err := p.consumeLeadingDocString()
		if err != nil {
			return nil, nil, err
		}

		attrs, err := p.parseAttributes()
		if err != nil {
			return nil, nil, err
		}

		isPub := false
		if p.cur.Kind == token.Pub {
			isPub = true

			if err := p.advance(); err != nil {
				return nil, nil, err
			}
		}

		switch p.cur.Kind {
		case token.TypeKw:
			start := p.cur.Span

			if err := p.advance(); err != nil {
				return nil, nil, err
			}

			atName, err := p.parseIdent()
			if err != nil {
				return nil, nil, err
			}

			if _, err := p.expect(token.Assign); err != nil {
				return nil, nil, err
			}

			ty, err := p.parseTypeDescriptor()
			if err != nil {
				return nil, nil, err
			}

			end, err := p.expect(token.Semicolon)
			if err != nil {
				return nil, nil, err
			}

			assocTypes = append(assocTypes, ast.AssociatedTypeBinding{
				DocString: doc, Name: atName, Type: ty, Span: start.Cover(end.Span),
			})
		case token.Fn:
			sig, err := p.parseFunctionSignature(doc, attrs, isPub, true)
			if err != nil {
				return nil, nil, err
			}

			body, err := p.parseBlock()
			if err != nil {
				return nil, nil, err
			}

			methods = append(methods, &ast.FunctionDef{Decl: sig, Body: body})
		default:
			return nil, nil, unexpectedTokenErr(p.cur.Span, "associated type binding or method", p.cur.Kind)
		}
	}

	return assocTypes, methods, nil
}

// parseFunctionSignature parses `fn name<generics>(params) -> ret`
// only; callers decide whether a body or a terminating ';' follows.
func (p *Parser) parseFunctionSignature(doc *ast.DocString, attrs []ast.Attribute, isPub, allowSelf bool) (*ast.FunctionDecl, *Error) {
	start, err := p.expect(token.Fn)
	if err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}

	params, err := p.parseParams(allowSelf)
	if err != nil {
		return nil, err
	}

	var retType ast.TypeDescriptor
	if p.cur.Kind == token.Arrow {
		if err := p.advance(); err != nil {
			return nil, err
		}

		retType, err = p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}
	}

	return &ast.FunctionDecl{
		DocString: doc, Attributes: attrs, IsPub: isPub, Name: name,
		GenericParms: generics, Params: params, RetType: retType,
		Span: start.Span.Cover(p.cur.Span),
	}, nil
}

func (p *Parser) parseParams(allowSelf bool) ([]ast.Param, *Error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var params []ast.Param

	for p.cur.Kind != token.RParen {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}

		if _, isSelf := param.Type.(*ast.SelfType); isSelf {
			if !allowSelf || len(params) != 0 {
				return nil, &Error{Kind: MisplacedSelf, Span: param.Span}
			}
		}

		params = append(params, param)

		if p.cur.Kind == token.Comma {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		break
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	return params, nil
}

func (p *Parser) parseParam() (ast.Param, *Error) {
	start := p.cur.Span

	if p.cur.Kind == token.SelfKw {
		if err := p.advance(); err != nil {
			return ast.Param{}, err
		}

		return ast.Param{
			Name: ast.Ident{Name: "self", Span: start},
			Type: &ast.SelfType{IsRef: false, IsMut: false, Span: start},
			Span: start,
		}, nil
	}

	if p.cur.Kind == token.Amp {
		if err := p.advance(); err != nil {
			return ast.Param{}, err
		}

		isMut := false
		if p.cur.Kind == token.Mut {
			isMut = true

			if err := p.advance(); err != nil {
				return ast.Param{}, err
			}
		}

		selfTok, err := p.expect(token.SelfKw)
		if err != nil {
			return ast.Param{}, err
		}

		span := start.Cover(selfTok.Span)

		return ast.Param{
			Name: ast.Ident{Name: "self", Span: selfTok.Span},
			Type: &ast.SelfType{IsRef: true, IsMut: isMut, Span: span},
			Span: span,
		}, nil
	}

	name, err := p.parseIdent()
	if err != nil {
		return ast.Param{}, err
	}

	if _, err := p.expect(token.Colon); err != nil {
		return ast.Param{}, err
	}

	ty, err := p.parseTypeDescriptor()
	if err != nil {
		return ast.Param{}, err
	}

	return ast.Param{Name: name, Type: ty, Span: name.Span.Cover(ty.Spanned())}, nil
}

func (p *Parser) parseBlock() ([]ast.Statement, *Error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	stmts, err := p.parseStatements()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return stmts, nil
}
