// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"math/big"

	"github.com/golangee/concrete/token"
)

// Expression is the tagged union over every expression form the
// grammar builds; see spec §4.2 for the precedence table that decides
// how BinaryOp/UnaryOp/Cast nest.
type Expression interface {
	expression()
	Spanned() token.Span
}

// ValueExpr is a literal atom: every Kind the lexer can hand back as a
// literal-carrying token, lifted into the expression tree unchanged.
type ValueExpr struct {
	Int     *big.Int // non-nil for an integer literal
	Float   string    // non-empty for a float literal (lexical spelling, undecoded)
	Str     *string   // non-nil for a string literal
	Char    rune
	IsChar  bool
	Bool    bool
	IsBool  bool
	Span    token.Span
}

// UnaryOperator enumerates level-1 prefix operators other than the
// dedicated AsRef/Deref nodes.
type UnaryOperator int

const (
	UnaryNeg UnaryOperator = iota
	UnaryNot
	UnaryBitNot
)

// BinaryOperator enumerates every level 2/3/4 infix operator. Its
// value never by itself encodes precedence; §4.2's table is the sole
// source of truth and is implemented in package parser, not here.
type BinaryOperator int

const (
	BinEq BinaryOperator = iota
	BinNotEq
	BinLt
	BinGt
	BinLe
	BinGe
	BinAndAnd
	BinOrOr
	BinMul
	BinDiv
	BinRem
	BinAdd
	BinSub
	BinBitAnd
	BinBitOr
	BinBitXor
)

// AsRefExpr is prefix `&expr` or `&mut expr`.
type AsRefExpr struct {
	Inner Expression
	IsMut bool
	Span  token.Span
}

// DerefExpr is prefix `*expr`.
type DerefExpr struct {
	Inner Expression
	Span  token.Span
}

// UnaryOpExpr is prefix `-`, `!`, or `~`.
type UnaryOpExpr struct {
	Op    UnaryOperator
	Inner Expression
	Span  token.Span
}

// BinaryOpExpr is any level 2/3/4 infix application.
type BinaryOpExpr struct {
	Lhs  Expression
	Op   BinaryOperator
	Rhs  Expression
	Span token.Span
}

// CastExpr is the level-5 `expr as TypeDescriptor`, the lowest-binding
// operator in the table (spec §4.2 is explicit that this differs from
// sibling languages and must be preserved).
type CastExpr struct {
	Inner Expression
	To    TypeDescriptor
	Span  token.Span
}

// ValueExprNode lifts a ValueExpr literal into an Expression.
type ValueExprNode struct{ Value ValueExpr }

// FnCallExpr is a free function call, optionally through a path and
// optionally with an explicit turbofish generic argument list.
type FnCallExpr struct {
	Path     []Ident
	Target   Ident
	Generics []TypeDescriptor
	Args     []Expression
	Span     token.Span
}

// MatchExpr is `match expr { variants }`.
type MatchExpr struct {
	Scrutinee Expression
	Variants  []MatchVariant
	Span      token.Span
}

// IfExpr is `if expr { stmts } (else { stmts })?`. There is no
// syntactic else-if chain; `else if` is written as a nested block
// (spec §4.2).
type IfExpr struct {
	Cond   Expression
	Then   []Statement
	Else   []Statement
	Span   token.Span
}

// StructInitExpr is `TypeName { field: expr, ... }`. Fields are
// insertion-ordered as written.
type StructInitExpr struct {
	Type   TypeName
	Fields []FieldInit
	Span   token.Span
}

// FieldInit is one `name: expr` entry of a StructInitExpr.
type FieldInit struct {
	Name  Ident
	Value Expression
	Span  token.Span
}

// EnumInitExpr is `TypeName#Variant { fields }` or `TypeName#Variant`.
type EnumInitExpr struct {
	Type    TypeName
	Variant Ident
	Fields  []FieldInit
	Span    token.Span
}

// AssocMethodCallExpr is `TypeName#method(args)` — spec §9 preserves
// the `#` sigil deliberately; it is a workaround for the grammar
// ambiguity `T::method::<…>(…)` would otherwise create, not something
// to "clean up" to `::`.
type AssocMethodCallExpr struct {
	Type   TypeName
	Call   FnCallOp
	Span   token.Span
}

// ArrayInitExpr is `[e1, e2, ...]`.
type ArrayInitExpr struct {
	Elements []Expression
	Span     token.Span
}

// PathExpr wraps a PathOp used as a value-producing expression.
type PathExpr struct {
	Path PathOp
	Span token.Span
}

func (*AsRefExpr) expression()           {}
func (*DerefExpr) expression()           {}
func (*UnaryOpExpr) expression()         {}
func (*BinaryOpExpr) expression()        {}
func (*CastExpr) expression()            {}
func (*ValueExprNode) expression()       {}
func (*FnCallExpr) expression()          {}
func (*MatchExpr) expression()           {}
func (*IfExpr) expression()              {}
func (*StructInitExpr) expression()      {}
func (*EnumInitExpr) expression()        {}
func (*AssocMethodCallExpr) expression() {}
func (*ArrayInitExpr) expression()       {}
func (*PathExpr) expression()            {}

func (e *AsRefExpr) Spanned() token.Span           { return e.Span }
func (e *DerefExpr) Spanned() token.Span           { return e.Span }
func (e *UnaryOpExpr) Spanned() token.Span         { return e.Span }
func (e *BinaryOpExpr) Spanned() token.Span        { return e.Span }
func (e *CastExpr) Spanned() token.Span            { return e.Span }
func (e *ValueExprNode) Spanned() token.Span       { return e.Value.Span }
func (e *FnCallExpr) Spanned() token.Span          { return e.Span }
func (e *MatchExpr) Spanned() token.Span           { return e.Span }
func (e *IfExpr) Spanned() token.Span              { return e.Span }
func (e *StructInitExpr) Spanned() token.Span      { return e.Span }
func (e *EnumInitExpr) Spanned() token.Span        { return e.Span }
func (e *AssocMethodCallExpr) Spanned() token.Span { return e.Span }
func (e *ArrayInitExpr) Spanned() token.Span       { return e.Span }
func (e *PathExpr) Spanned() token.Span            { return e.Span }

// FnCallOp is the `name::<generics>?(args)` shape shared by free
// function calls and the call half of an associated-method call.
type FnCallOp struct {
	Name     Ident
	Generics []TypeDescriptor
	Args     []Expression
	Span     token.Span
}

// PathOp is an identifier followed by a greedily-appended chain of
// field accesses, method calls, and array indexings (spec §4.2).
type PathOp struct {
	First Ident
	Extra []PathSegment
	Span  token.Span
}

// PathSegment is a tagged union over the three chain link shapes a
// PathOp can append.
type PathSegment interface {
	pathSegment()
	Spanned() token.Span
}

// FieldAccessSegment is `.name`.
type FieldAccessSegment struct {
	Name Ident
	Span token.Span
}

// MethodCallSegment is `.name(args)` or `.name::<generics>(args)`.
type MethodCallSegment struct {
	Call FnCallOp
	Span token.Span
}

// ArrayIndexSegment is `[expr]`.
type ArrayIndexSegment struct {
	Index Expression
	Span  token.Span
}

func (*FieldAccessSegment) pathSegment() {}
func (*MethodCallSegment) pathSegment()  {}
func (*ArrayIndexSegment) pathSegment()  {}

func (s *FieldAccessSegment) Spanned() token.Span { return s.Span }
func (s *MethodCallSegment) Spanned() token.Span  { return s.Span }
func (s *ArrayIndexSegment) Spanned() token.Span  { return s.Span }
