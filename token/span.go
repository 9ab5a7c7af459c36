// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package token defines the lexical token set, the source span model,
// and the hand-written lexer for the L language.
package token

import "strconv"

// Span is a half-open [Lo, Hi) byte range into a File's buffer.
// It is the only way positions are propagated between the lexer, the
// parser, and the AST.
type Span struct {
	Lo, Hi int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.Hi - s.Lo
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	lo, hi := s.Lo, s.Hi
	if other.Lo < lo {
		lo = other.Lo
	}

	if other.Hi > hi {
		hi = other.Hi
	}

	return Span{Lo: lo, Hi: hi}
}

// File is an immutable source buffer together with the path it was
// read from. A compilation input is exactly this: a path plus an
// immutable byte buffer.
type File struct {
	Path string
	Text []byte

	// lineStarts holds the byte offset of the first byte of each line,
	// lazily computed, used only to render human positions for errors.
	lineStarts []int
}

// NewFile wraps source bytes for a given path.
func NewFile(path string, text []byte) *File {
	return &File{Path: path, Text: text}
}

func (f *File) ensureLineStarts() {
	if f.lineStarts != nil {
		return
	}

	starts := []int{0}

	for i, b := range f.Text {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	f.lineStarts = starts
}

// LineCol resolves a byte offset into a one-based (line, column) pair,
// used only for diagnostics; the parser and lexer never consult this
// themselves, only Explain does.
func (f *File) LineCol(offset int) (line, col int) {
	f.ensureLineStarts()

	line = 1
	for i, start := range f.lineStarts {
		if start > offset {
			break
		}

		line = i + 1
	}

	col = offset - f.lineStarts[line-1] + 1

	return line, col
}

// Slice returns the raw bytes covered by span.
func (f *File) Slice(span Span) []byte {
	return f.Text[span.Lo:span.Hi]
}

// Line returns the full source text of the line containing offset,
// without its trailing newline.
func (f *File) Line(offset int) string {
	f.ensureLineStarts()

	line, _ := f.LineCol(offset)
	start := f.lineStarts[line-1]

	end := len(f.Text)
	if line < len(f.lineStarts) {
		end = f.lineStarts[line] - 1
	}

	for end > start && (f.Text[end-1] == '\n' || f.Text[end-1] == '\r') {
		end--
	}

	return string(f.Text[start:end])
}

// PosString renders a span's start as "path:line:col", mirroring the
// teacher's Pos.String().
func (f *File) PosString(span Span) string {
	line, col := f.LineCol(span.Lo)
	return f.Path + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(col)
}
