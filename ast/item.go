// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/golangee/concrete/token"

// CompilationUnit owns every top-level Module parsed from one file.
type CompilationUnit struct {
	Modules []*Module
}

// Module is `docstring? "mod" Ident "{" ModuleItems? "}"`.
type Module struct {
	DocString *DocString
	Name      Ident
	Contents  []Handle[ModuleDefItem]
	FilePath  string
	Span      token.Span
}

// ModuleDefItem is the tagged union over everything a module body can
// contain. Each arm is carried behind a Handle because downstream
// passes register the same node in more than one table (spec §3).
type ModuleDefItem interface {
	moduleDefItem()
	Spanned() token.Span
}

// ConstantItem wraps a ConstantDecl as a module item.
type ConstantItem struct{ Decl *ConstantDecl }

// StructItem wraps a StructDecl as a module item.
type StructItem struct{ Decl *StructDecl }

// UnionItem wraps a UnionDecl as a module item.
type UnionItem struct{ Decl *UnionDecl }

// EnumItem wraps an EnumDecl as a module item.
type EnumItem struct{ Decl *EnumDecl }

// FunctionItem wraps a full function definition (decl plus body).
type FunctionItem struct{ Def *FunctionDef }

// FunctionDeclItem wraps a bodiless function declaration: an extern
// function or a trait-required method signature.
type FunctionDeclItem struct{ Decl *FunctionDecl }

// TraitItem wraps a TraitDecl as a module item.
type TraitItem struct{ Decl *TraitDecl }

// TypeAliasItem wraps a TypeAliasDecl as a module item.
type TypeAliasItem struct{ Decl *TypeAliasDecl }

// ImplItem wraps an inherent ImplBlock as a module item.
type ImplItem struct{ Block *ImplBlock }

// ImplTraitItem wraps a trait ImplTraitBlock as a module item.
type ImplTraitItem struct{ Block *ImplTraitBlock }

// NestedModuleItem wraps a module defined inline inside another module.
type NestedModuleItem struct{ Module *Module }

// ExternalModuleItem is a forward declaration `mod name;`.
type ExternalModuleItem struct{ Decl *ExternalModule }

// ImportItem wraps an ImportDecl as a module item.
type ImportItem struct{ Decl *ImportDecl }

func (*ConstantItem) moduleDefItem()       {}
func (*StructItem) moduleDefItem()         {}
func (*UnionItem) moduleDefItem()          {}
func (*EnumItem) moduleDefItem()           {}
func (*FunctionItem) moduleDefItem()       {}
func (*FunctionDeclItem) moduleDefItem()   {}
func (*TraitItem) moduleDefItem()          {}
func (*TypeAliasItem) moduleDefItem()      {}
func (*ImplItem) moduleDefItem()           {}
func (*ImplTraitItem) moduleDefItem()      {}
func (*NestedModuleItem) moduleDefItem()   {}
func (*ExternalModuleItem) moduleDefItem() {}
func (*ImportItem) moduleDefItem()         {}

func (i *ConstantItem) Spanned() token.Span       { return i.Decl.Span }
func (i *StructItem) Spanned() token.Span         { return i.Decl.Span }
func (i *UnionItem) Spanned() token.Span          { return i.Decl.Span }
func (i *EnumItem) Spanned() token.Span           { return i.Decl.Span }
func (i *FunctionItem) Spanned() token.Span       { return i.Def.Decl.Span }
func (i *FunctionDeclItem) Spanned() token.Span   { return i.Decl.Span }
func (i *TraitItem) Spanned() token.Span          { return i.Decl.Span }
func (i *TypeAliasItem) Spanned() token.Span      { return i.Decl.Span }
func (i *ImplItem) Spanned() token.Span           { return i.Block.Span }
func (i *ImplTraitItem) Spanned() token.Span      { return i.Block.Span }
func (i *NestedModuleItem) Spanned() token.Span   { return i.Module.Span }
func (i *ExternalModuleItem) Spanned() token.Span { return i.Decl.Span }
func (i *ImportItem) Spanned() token.Span         { return i.Decl.Span }

// ExternalModule is a forward declaration `mod name;` carrying only a
// name, per spec §3's invariant that such items carry nothing else.
type ExternalModule struct {
	Name Ident
	Span token.Span
}

// ImportDecl is `import a.b.c { X, Y };`.
type ImportDecl struct {
	Path    []Ident
	Members []Ident
	Span    token.Span
}
