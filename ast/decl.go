// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/golangee/concrete/token"

// ConstantDecl is a module-level `const NAME: T = expr;`.
type ConstantDecl struct {
	DocString *DocString
	IsPub     bool
	Name      Ident
	Type      TypeDescriptor
	Value     Expression
	Span      token.Span
}

// StructField is one `name: TypeDescriptor` entry of a struct body.
type StructField struct {
	Name Ident
	Type TypeDescriptor
	Span token.Span
}

// StructDecl is `struct Name<generics> { fields }`.
type StructDecl struct {
	DocString  *DocString
	Attributes []Attribute
	IsPub      bool
	Name       Ident
	Generics   []GenericParam
	Fields     []StructField
	Span       token.Span
}

// UnionDecl mirrors StructDecl: a union shares its field list shape
// but gives every field the same storage, the same way the teacher's
// AttributeList-bearing struct declarations do (field layout, not
// field semantics, is what the parser owns).
type UnionDecl struct {
	DocString  *DocString
	Attributes []Attribute
	IsPub      bool
	Name       Ident
	Generics   []GenericParam
	Fields     []StructField
	Span       token.Span
}

// EnumVariant is one arm of an enum: a bare tag, or a tag carrying a
// struct-like field list, optionally with an explicit discriminant.
type EnumVariant struct {
	Name          Ident
	Fields        []StructField
	Discriminant  Expression
	Span          token.Span
}

// EnumDecl is `enum Name<generics> { variants }`.
type EnumDecl struct {
	DocString  *DocString
	Attributes []Attribute
	IsPub      bool
	Name       Ident
	Generics   []GenericParam
	Variants   []EnumVariant
	Span       token.Span
}

// Param is one function parameter: either a named, typed parameter or
// a `self`-typed receiver parameter (legal only as parameter zero of a
// method inside an Impl/ImplTrait block; the parser enforces this, not
// the type itself).
type Param struct {
	Name Ident
	Type TypeDescriptor
	Span token.Span
}

// FunctionDecl is a function signature: `fn name<generics>(params) ->
// ret`. It stands alone for extern declarations and trait-required
// methods; FunctionDef pairs it with a body.
type FunctionDecl struct {
	DocString    *DocString
	Attributes   []Attribute
	IsPub        bool
	IsExtern     bool
	Name         Ident
	GenericParms []GenericParam
	Params       []Param
	RetType      TypeDescriptor
	Span         token.Span
}

// FunctionDef is a FunctionDecl plus its statement body.
type FunctionDef struct {
	Decl *FunctionDecl
	Body []Statement
}

// AssociatedTypeDecl is `docstring? "type" Name ";"` inside a trait
// body, declaring (without binding) one associated type a conforming
// impl must supply. Spec §4.3 lists "associated type" as one of the
// doc-accepting item kinds, so this carries its own DocString rather
// than the bare Ident TraitDecl.AssociatedTypes used to hold.
type AssociatedTypeDecl struct {
	DocString *DocString
	Name      Ident
	Span      token.Span
}

// TraitDecl is `trait Name<generics> { associated types; methods }`.
type TraitDecl struct {
	DocString       *DocString
	IsPub           bool
	Name            Ident
	GenericParms    []GenericParam
	AssociatedTypes []AssociatedTypeDecl
	Methods         []*FunctionDecl
	Span            token.Span
}

// ImplBlock is an inherent `impl Target<generics> { methods }`.
type ImplBlock struct {
	Target       TypeDescriptor
	GenericParms []GenericParam
	Methods      []*FunctionDef
	Span         token.Span
}

// AssociatedTypeBinding is `docstring? "type" Name = TypeDescriptor;`
// inside an ImplTraitBlock, satisfying one of the trait's associated
// types. Spec §4.3 lists "associated type" as a doc-accepting item
// kind; DocString carries a `///` run written immediately before this
// binding.
type AssociatedTypeBinding struct {
	DocString *DocString
	Name      Ident
	Type      TypeDescriptor
	Span      token.Span
}

// ImplTraitBlock is `impl TraitName<generics> for Target { ... }`.
type ImplTraitBlock struct {
	TargetTrait      TypeName
	Target           TypeDescriptor
	GenericParms     []GenericParam
	AssociatedTypes  []AssociatedTypeBinding
	Methods          []*FunctionDef
	Span             token.Span
}

// TypeAliasDecl is `type Name<generics> = TypeDescriptor;`.
type TypeAliasDecl struct {
	DocString *DocString
	IsPub     bool
	Name      Ident
	Generics  []GenericParam
	Type      TypeDescriptor
	Span      token.Span
}
