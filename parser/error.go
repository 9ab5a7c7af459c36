// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"fmt"

	"github.com/golangee/concrete/token"
)

// ErrorKind enumerates every parse-error shape spec §4.4/§7 names.
type ErrorKind int

const (
	// UnexpectedToken carries Expected/Got below.
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
	InvalidLiteral
	InvalidArraySize
	MalformedTurbofish
	MisplacedSelf
	MisplacedAttribute
	Lexical
)

// Error is the single error type this package ever returns. Recovery
// is never attempted — the first Error aborts the parse, and the
// entry point's only failure value is one of these (spec §4.4, §7).
type Error struct {
	Kind ErrorKind
	Span token.Span

	// Expected/Got are populated for UnexpectedToken.
	Expected string
	Got      token.Kind

	Msg string

	// Cause holds a wrapped *token.LexError when a lexical failure
	// surfaced mid-parse, preserving its original span (spec §7).
	Cause *token.LexError
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}

	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token: expected %s, got %s", e.Expected, e.Got)
	case UnexpectedEOF:
		return "unexpected end of input"
	case InvalidLiteral:
		return "invalid literal"
	case InvalidArraySize:
		return "array size does not fit in 64 bits"
	case MalformedTurbofish:
		return "malformed turbofish generic argument list"
	case MisplacedSelf:
		return "'self' may only appear as the first parameter of a method"
	case MisplacedAttribute:
		return "attribute in non-attribute position"
	case Lexical:
		return e.Cause.Error()
	default:
		return "parse error"
	}
}

func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}

	return nil
}

// Explain renders a multi-line, caret-pointing explanation against the
// file the error's span belongs to, in the style of token.LexError's
// own Explain. A Lexical error delegates straight to its Cause so the
// original lexer-level rendering (and its Hint, if any) survives.
func (e *Error) Explain(f *token.File) string {
	if e.Kind == Lexical {
		return e.Cause.Explain(f)
	}

	return (&token.LexError{Span: e.Span, Msg: e.Error()}).Explain(f)
}

// Explain is the package-level convenience a CLI-style caller reaches
// for: whatever error Parse returned, render it the same way. The
// core parser never calls this itself — it only ever returns values.
func Explain(err error, f *token.File) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Explain(f)
	}

	var le *token.LexError
	if errors.As(err, &le) {
		return le.Explain(f)
	}

	return err.Error()
}

// unexpectedTokenErr reports a grammar production seeing the wrong
// token. Input running out counts as its own distinct kind (spec
// §4.4: UnexpectedToken and UnexpectedEof are named separately), so a
// `got` of token.EOF is reported as UnexpectedEOF here regardless of
// what the call site expected.
func unexpectedTokenErr(span token.Span, expected string, got token.Kind) *Error {
	if got == token.EOF {
		return unexpectedEOFErr(span)
	}

	return &Error{Kind: UnexpectedToken, Span: span, Expected: expected, Got: got}
}

func unexpectedEOFErr(span token.Span) *Error {
	return &Error{Kind: UnexpectedEOF, Span: span}
}

func lexicalErr(cause *token.LexError) *Error {
	return &Error{Kind: Lexical, Span: cause.Span, Cause: cause}
}
