// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ast defines the typed syntax tree produced by package parser:
// compilation units, modules, declarations, types, expressions, and
// statements for the L language.
package ast

import "github.com/golangee/concrete/token"

// Ident is a name together with the span it was spelled at. Keywords
// used in identifier position (notably "self") are normalised into an
// Ident carrying their textual form; nothing downstream can tell the
// difference between a keyword-as-name and an ordinary name.
type Ident struct {
	Name string
	Span token.Span
}

// DocString is a run of consecutive "///" lines merged into one node,
// attached to the item immediately following it. See §4.3.
type DocString struct {
	Lines []string
	Span  token.Span
}

// Attribute is a `#[name]` or `#[name = "value"]` annotation. Attribute
// values are retained verbatim; this package does not interpret them.
type Attribute struct {
	Name  string
	Value *string
	Span  token.Span
}

// GenericParam is one entry of a `<T: Bound + Bound>` parameter list.
type GenericParam struct {
	Name   Ident
	Bounds []TypeName
	Span   token.Span
}

// TypeName is a qualified name plus optional generic arguments. It
// covers both surface forms the grammar distinguishes: the type
// position form `A::B<T>` and the value/use position form `A::B::<T>`
// (the latter required to disambiguate from `<` comparison). Which
// form was written is not retained on the node itself — it is a
// property of which parser production built it, not of the tree.
type TypeName struct {
	Path     []Ident
	Name     Ident
	Generics []TypeDescriptor
	Span     token.Span
}

// TypeDescriptor is a tagged union over every spelling a type can take.
// Each variant is a distinct pointer type implementing the unexported
// marker method, following the teacher's interface-plus-concrete-
// variants idiom rather than a formal Visitor (see DESIGN.md).
type TypeDescriptor interface {
	typeDescriptor()
	Spanned() token.Span
}

// NamedType is `TypeName` used directly as a type.
type NamedType struct {
	Name TypeName
}

// ArrayType is `[T; N]`; Size must fit in unsigned 64 bits, checked at
// parse time (spec §3 invariants).
type ArrayType struct {
	Of   TypeDescriptor
	Size uint64
	Span token.Span
}

// RefType is `&T`, a shared reference.
type RefType struct {
	Of   TypeDescriptor
	Span token.Span
}

// MutRefType is `&mut T`.
type MutRefType struct {
	Of   TypeDescriptor
	Span token.Span
}

// ConstPtrType is `*const T`.
type ConstPtrType struct {
	Of   TypeDescriptor
	Span token.Span
}

// MutPtrType is `*mut T`.
type MutPtrType struct {
	Of   TypeDescriptor
	Span token.Span
}

// SelfType is the type of a `self`/`&self`/`&mut self` parameter. It is
// only legal as the first parameter of a method inside an Impl or
// ImplTrait block; the parser enforces that placement, not this type.
type SelfType struct {
	IsRef bool
	IsMut bool
	Span  token.Span
}

func (*NamedType) typeDescriptor()    {}
func (*ArrayType) typeDescriptor()    {}
func (*RefType) typeDescriptor()      {}
func (*MutRefType) typeDescriptor()   {}
func (*ConstPtrType) typeDescriptor() {}
func (*MutPtrType) typeDescriptor()   {}
func (*SelfType) typeDescriptor()     {}

func (t *NamedType) Spanned() token.Span    { return t.Name.Span }
func (t *ArrayType) Spanned() token.Span    { return t.Span }
func (t *RefType) Spanned() token.Span      { return t.Span }
func (t *MutRefType) Spanned() token.Span   { return t.Span }
func (t *ConstPtrType) Spanned() token.Span { return t.Span }
func (t *MutPtrType) Spanned() token.Span   { return t.Span }
func (t *SelfType) Spanned() token.Span     { return t.Span }
