// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import "github.com/golangee/concrete/token"

// Statement is the tagged union over every statement form.
type Statement interface {
	statement()
	Spanned() token.Span
}

// LetStmt is `let mut? name: Type = rhs;`. RHS may be any Expression —
// including a StructInitExpr, EnumInitExpr, or AssocMethodCallExpr,
// which are themselves Expression variants, covering the spec's four
// explicit RHS productions without a separate sum type.
type LetStmt struct {
	IsMut bool
	Name  Ident
	Type  TypeDescriptor
	Rhs   Expression
	Span  token.Span
}

// AssignStmt is `"*"* PathOp = rhs;`. Derefs counts the leading `*`
// tokens, the indirection depth applied to the l-value.
type AssignStmt struct {
	Derefs int
	Lvalue PathOp
	Rhs    Expression
	Span   token.Span
}

// FnCallStmt is a free function call used as a statement.
type FnCallStmt struct {
	Call FnCallExpr
	Span token.Span
}

// PathOpStmt is a PathOp used as an expression statement (e.g. a bare
// method call chain for its side effects).
type PathOpStmt struct {
	Path PathOp
	Span token.Span
}

// ReturnStmt is `return expr?;`.
type ReturnStmt struct {
	Value Expression // nil for a bare `return;`
	Span  token.Span
}

// MatchStmt is a MatchExpr used as a statement.
type MatchStmt struct {
	Match MatchExpr
	Span  token.Span
}

// IfStmt is an IfExpr used as a statement.
type IfStmt struct {
	If   IfExpr
	Span token.Span
}

// WhileStmt is `while expr { stmts }`.
type WhileStmt struct {
	Cond Expression
	Body []Statement
	Span token.Span
}

// ForStmt covers all three productions spec §4.2 lists: C-style
// (Init, Cond and Post each optional), condition-only (only Cond), and
// infinite (none present).
type ForStmt struct {
	Init Statement  // nil unless C-style
	Cond Expression // nil for infinite
	Post Statement  // nil unless C-style
	Body []Statement
	Span token.Span
}

func (*LetStmt) statement()    {}
func (*AssignStmt) statement() {}
func (*FnCallStmt) statement() {}
func (*PathOpStmt) statement() {}
func (*ReturnStmt) statement() {}
func (*MatchStmt) statement()  {}
func (*IfStmt) statement()     {}
func (*WhileStmt) statement()  {}
func (*ForStmt) statement()    {}

func (s *LetStmt) Spanned() token.Span    { return s.Span }
func (s *AssignStmt) Spanned() token.Span { return s.Span }
func (s *FnCallStmt) Spanned() token.Span { return s.Span }
func (s *PathOpStmt) Spanned() token.Span { return s.Span }
func (s *ReturnStmt) Spanned() token.Span { return s.Span }
func (s *MatchStmt) Spanned() token.Span  { return s.Span }
func (s *IfStmt) Spanned() token.Span     { return s.Span }
func (s *WhileStmt) Spanned() token.Span  { return s.Span }
func (s *ForStmt) Spanned() token.Span    { return s.Span }

// EnumMatchExpr is `TypeNameUse#Variant` or `TypeNameUse#Variant {
// field, ... }`, binding variant field names as locals in the arm body.
type EnumMatchExpr struct {
	Type    TypeName
	Variant Ident
	Binds   []Ident
	Span    token.Span
}

// MatchVariant is one arm of a MatchExpr: either a value pattern or an
// EnumMatchExpr pattern, each followed by a single statement or a
// braced statement block.
type MatchVariant struct {
	ValuePattern Expression     // set for a ValueExpr-pattern arm
	EnumPattern  *EnumMatchExpr // set for an enum-pattern arm
	Body         []Statement
	Span         token.Span
}
