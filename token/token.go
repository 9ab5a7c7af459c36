// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import "math/big"

// Kind is a closed enumeration of every terminal the lexer can
// produce: keywords, punctuation, operators, and literal-carrying
// tokens.
type Kind int

const (
	EOF Kind = iota

	// Literal-carrying tokens.
	Ident
	Integer
	Float
	String
	Char
	Boolean
	DocString

	// Keywords.
	Let
	Const
	Fn
	Return
	Struct
	Union
	Enum
	Impl
	If
	Else
	While
	For
	Match
	Mod
	Pub
	Mut
	Import
	Extern
	As
	SelfKw
	Trait
	TypeKw

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Assign
	Semicolon
	Colon
	ColonColon
	Arrow
	FatArrow
	Comma
	Hash
	Lt
	Gt
	Ge
	Le
	Dot

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent
	AndAnd
	OrOr
	EqEq
	NotEq
	Bang
	Tilde
	Caret
	Amp
	Pipe
)

var kindNames = map[Kind]string{
	EOF:        "end of input",
	Ident:      "identifier",
	Integer:    "integer literal",
	Float:      "float literal",
	String:     "string literal",
	Char:       "char literal",
	Boolean:    "boolean literal",
	DocString:  "doc comment",
	Let:        "let", Const: "const", Fn: "fn", Return: "return",
	Struct: "struct", Union: "union", Enum: "enum", Impl: "impl",
	If: "if", Else: "else", While: "while", For: "for", Match: "match",
	Mod: "mod", Pub: "pub", Mut: "mut", Import: "import", Extern: "extern",
	As: "as", SelfKw: "self", Trait: "trait", TypeKw: "type",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Assign: "=", Semicolon: ";",
	Colon: ":", ColonColon: "::", Arrow: "->", FatArrow: "=>",
	Comma: ",", Hash: "#", Lt: "<", Gt: ">", Ge: ">=", Le: "<=", Dot: ".",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	AndAnd: "&&", OrOr: "||", EqEq: "==", NotEq: "!=", Bang: "!",
	Tilde: "~", Caret: "^", Amp: "&", Pipe: "|",
}

// String renders a Kind the way it would appear in source, used in
// "expected X, got Y" diagnostics.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "unknown token"
}

// Keywords maps reserved words to their Kind. A word found here can
// never be lexed as Ident.
var Keywords = map[string]Kind{
	"let": Let, "const": Const, "fn": Fn, "return": Return,
	"struct": Struct, "union": Union, "enum": Enum, "impl": Impl,
	"if": If, "else": Else, "while": While, "for": For, "match": Match,
	"mod": Mod, "pub": Pub, "mut": Mut, "import": Import, "extern": Extern,
	"as": As, "self": SelfKw, "trait": Trait, "type": TypeKw,
	"true": Boolean, "false": Boolean,
}

// Token is a single lexed terminal: (lo, Token, hi) in the spec's
// terms, here carried as Span plus Kind plus whatever payload the
// Kind needs.
type Token struct {
	Kind Kind
	Span Span

	// Text carries the literal spelling for Ident, Float (decimal
	// parsing is deferred to a later pass), String (already
	// escape-decoded) and DocString (a whole run of consecutive '///'
	// lines, one line per source line joined by '\n', '///' stripped).
	Text string

	// Int carries the value of an Integer token. u128 has no native
	// Go representation, so math/big is the only primitive wide
	// enough; see DESIGN.md.
	Int *big.Int

	// CharVal carries the decoded rune of a Char token.
	CharVal rune

	// BoolVal carries the value of a Boolean token.
	BoolVal bool
}
