// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind distinguishes the lexical failure modes the spec calls
// out: unknown bytes, unterminated literals/comments, bad escapes,
// and numeric literals that overflow their target width.
type ErrorKind int

const (
	UnknownChar ErrorKind = iota
	UnterminatedString
	UnterminatedChar
	UnterminatedComment
	InvalidEscape
	NumericOverflow
	MalformedNumber
)

// LexError is a fatal lexical failure. The lexer never recovers from
// one; it is the last value the lexer produces for a given input.
type LexError struct {
	Kind ErrorKind
	Span Span
	Msg  string
	// Hint is an optional one-line suggestion, mirroring the teacher's
	// PosError.Hint.
	Hint string
}

func (e *LexError) Error() string {
	return e.Msg
}

// Explain renders a multi-line, caret-pointing explanation of the
// error against its source file, in the style of the teacher's
// PosError.Explain.
func (e *LexError) Explain(f *File) string {
	line, col := f.LineCol(e.Span.Lo)
	text := f.Line(e.Span.Lo)

	indent := len(strconv.Itoa(line))

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "%s\n", f.PosString(e.Span))
	fmt.Fprintf(sb, "%*s |\n", indent, "")
	fmt.Fprintf(sb, "%*d | %s\n", indent, line, text)
	fmt.Fprintf(sb, "%*s | %*s^ %s\n", indent, "", col-1, "", e.Msg)

	if e.Hint != "" {
		fmt.Fprintf(sb, "%*s = hint: %s\n", indent, "", e.Hint)
	}

	return sb.String()
}
