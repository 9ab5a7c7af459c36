// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"math/big"
	"strings"
	"unicode/utf8"
)

// maxU128 is the largest value representable by an unsigned 128-bit
// integer; integer literals whose value exceeds it are a lexical
// error (NumericOverflow), not a parser concern.
var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Lexer turns a File's byte buffer into a lazy sequence of Tokens.
// It is single-threaded, synchronous, and owns no resources beyond
// the File it was given; the caller owns the buffer.
//
// Unlike the teacher's streaming, bufio.Reader-backed Lexer (which
// had to support unbounded look-ahead over an io.Reader), this Lexer
// operates directly on the fully-buffered File.Text, since the spec
// requires the whole compilation input up front. See DESIGN.md.
type Lexer struct {
	file *File
	src  []byte
	pos  int // byte offset of the next unread byte
}

// NewLexer creates a Lexer over the given source file.
func NewLexer(file *File) *Lexer {
	return &Lexer{file: file, src: file.Text}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peekByte(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}

	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++

	return b
}

// Next returns the next token. At end of input it returns a Token
// with Kind == EOF and a nil error, forever. Any lexical failure is
// fatal: the caller must stop calling Next after an error.
func (l *Lexer) Next() (Token, *LexError) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}

	start := l.pos

	if l.eof() {
		return Token{Kind: EOF, Span: Span{Lo: start, Hi: start}}, nil
	}

	b := l.peekByte(0)

	switch {
	case isIdentStart(b):
		return l.lexIdentOrKeyword(start)
	case isDigit(b):
		return l.lexNumber(start)
	case b == '"':
		return l.lexString(start)
	case b == '\'':
		return l.lexChar(start)
	default:
		return l.lexPunctOrOperator(start)
	}
}

// skipTrivia consumes whitespace and comments, emitting DocString
// runs is NOT done here — doc comments are real tokens, handled by
// lexPunctOrOperator's '/' branch via lexDocRun.
func (l *Lexer) skipTrivia() *LexError {
	for {
		if l.eof() {
			return nil
		}

		b := l.peekByte(0)

		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			// CR before LF is treated as whitespace, same as any other
			// ASCII whitespace byte.
			l.advance()
		case b == '/' && l.peekByte(1) == '/' && l.peekByte(2) != '/':
			l.skipLineComment()
		case b == '/' && l.peekByte(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) skipLineComment() {
	for !l.eof() && l.peekByte(0) != '\n' {
		l.advance()
	}
}

func (l *Lexer) skipBlockComment() *LexError {
	start := l.pos
	l.advance() // '/'
	l.advance() // '*'

	depth := 1
	for depth > 0 {
		if l.eof() {
			return &LexError{
				Kind: UnterminatedComment,
				Span: Span{Lo: start, Hi: l.pos},
				Msg:  "unterminated block comment",
			}
		}

		if l.peekByte(0) == '/' && l.peekByte(1) == '*' {
			l.advance()
			l.advance()
			depth++

			continue
		}

		if l.peekByte(0) == '*' && l.peekByte(1) == '/' {
			l.advance()
			l.advance()
			depth--

			continue
		}

		l.advance()
	}

	return nil
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (l *Lexer) lexIdentOrKeyword(start int) (Token, *LexError) {
	for !l.eof() && isIdentCont(l.peekByte(0)) {
		l.advance()
	}

	text := string(l.src[start:l.pos])
	span := Span{Lo: start, Hi: l.pos}

	if kind, ok := Keywords[text]; ok {
		if kind == Boolean {
			return Token{Kind: Boolean, Span: span, Text: text, BoolVal: text == "true"}, nil
		}

		return Token{Kind: kind, Span: span, Text: text}, nil
	}

	return Token{Kind: Ident, Span: span, Text: text}, nil
}

// lexDocRun consumes a run of consecutive "///" lines starting at the
// current position (already known to begin with "///") and returns a
// single DocString token whose Text is the joined, newline-separated
// body with one "///" prefix stripped per source line.
func (l *Lexer) lexDocRun(start int) Token {
	var lines []string

	for {
		l.advance() // '/'
		l.advance() // '/'
		l.advance() // '/'

		lineStart := l.pos
		for !l.eof() && l.peekByte(0) != '\n' {
			l.advance()
		}

		line := string(l.src[lineStart:l.pos])
		lines = append(lines, strings.TrimPrefix(line, " "))

		// Skip the newline and any following whitespace-only gap to see
		// if another "///" line directly continues the run.
		savedPos := l.pos
		for !l.eof() && (l.peekByte(0) == '\n' || l.peekByte(0) == ' ' || l.peekByte(0) == '\t' || l.peekByte(0) == '\r') {
			l.advance()
		}

		if l.eof() || !(l.peekByte(0) == '/' && l.peekByte(1) == '/' && l.peekByte(2) == '/') {
			l.pos = savedPos
			break
		}
	}

	return Token{Kind: DocString, Span: Span{Lo: start, Hi: l.pos}, Text: strings.Join(lines, "\n")}
}

func (l *Lexer) lexNumber(start int) (Token, *LexError) {
	if l.peekByte(0) == '0' && (l.peekByte(1) == 'x' || l.peekByte(1) == 'X') {
		return l.lexRadixInt(start, 16, "0123456789abcdefABCDEF")
	}

	if l.peekByte(0) == '0' && (l.peekByte(1) == 'b' || l.peekByte(1) == 'B') {
		return l.lexRadixInt(start, 2, "01")
	}

	if l.peekByte(0) == '0' && (l.peekByte(1) == 'o' || l.peekByte(1) == 'O') {
		return l.lexRadixInt(start, 8, "01234567")
	}

	for !l.eof() && isDigit(l.peekByte(0)) {
		l.advance()
	}

	isFloat := false
	if l.peekByte(0) == '.' && isDigit(l.peekByte(1)) {
		isFloat = true
		l.advance()

		for !l.eof() && isDigit(l.peekByte(0)) {
			l.advance()
		}
	}

	if l.peekByte(0) == 'e' || l.peekByte(0) == 'E' {
		save := l.pos
		l.advance()

		if l.peekByte(0) == '+' || l.peekByte(0) == '-' {
			l.advance()
		}

		if isDigit(l.peekByte(0)) {
			isFloat = true
			for !l.eof() && isDigit(l.peekByte(0)) {
				l.advance()
			}
		} else {
			l.pos = save
		}
	}

	text := string(l.src[start:l.pos])
	span := Span{Lo: start, Hi: l.pos}

	if isFloat {
		return Token{Kind: Float, Span: span, Text: text}, nil
	}

	v, ok := new(big.Int).SetString(text, 10)
	if !ok || v.Cmp(maxU128) > 0 {
		return Token{}, &LexError{
			Kind: NumericOverflow,
			Span: span,
			Msg:  "integer literal '" + text + "' does not fit in 128 bits",
		}
	}

	return Token{Kind: Integer, Span: span, Text: text, Int: v}, nil
}

func (l *Lexer) lexRadixInt(start, radix int, digits string) (Token, *LexError) {
	l.advance() // '0'
	l.advance() // radix marker

	digitsStart := l.pos
	for !l.eof() && strings.IndexByte(digits, l.peekByte(0)) >= 0 {
		l.advance()
	}

	if l.pos == digitsStart {
		return Token{}, &LexError{
			Kind: MalformedNumber,
			Span: Span{Lo: start, Hi: l.pos},
			Msg:  "malformed numeric literal: no digits after radix prefix",
		}
	}

	text := string(l.src[start:l.pos])
	span := Span{Lo: start, Hi: l.pos}

	v, ok := new(big.Int).SetString(string(l.src[digitsStart:l.pos]), radix)
	if !ok || v.Cmp(maxU128) > 0 {
		return Token{}, &LexError{
			Kind: NumericOverflow,
			Span: span,
			Msg:  "integer literal '" + text + "' does not fit in 128 bits",
		}
	}

	return Token{Kind: Integer, Span: span, Text: text, Int: v}, nil
}

// decodeEscape consumes an escape sequence after a consumed '\\' and
// returns the decoded rune.
func (l *Lexer) decodeEscape(seqStart int) (rune, *LexError) {
	if l.eof() {
		return 0, &LexError{Kind: InvalidEscape, Span: Span{Lo: seqStart, Hi: l.pos}, Msg: "unterminated escape sequence"}
	}

	c := l.advance()

	switch c {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case '0':
		return 0, nil
	case 'x':
		if l.pos+2 > len(l.src) {
			return 0, &LexError{Kind: InvalidEscape, Span: Span{Lo: seqStart, Hi: l.pos}, Msg: "incomplete \\xHH escape"}
		}

		hi, lo := l.advance(), l.advance()

		v, ok := parseHexByte(hi, lo)
		if !ok {
			return 0, &LexError{Kind: InvalidEscape, Span: Span{Lo: seqStart, Hi: l.pos}, Msg: "invalid \\xHH escape"}
		}

		return rune(v), nil
	case 'u':
		if l.eof() || l.peekByte(0) != '{' {
			return 0, &LexError{Kind: InvalidEscape, Span: Span{Lo: seqStart, Hi: l.pos}, Msg: "expected '{' after \\u"}
		}

		l.advance()

		digitStart := l.pos
		for !l.eof() && l.peekByte(0) != '}' {
			l.advance()
		}

		if l.eof() {
			return 0, &LexError{Kind: InvalidEscape, Span: Span{Lo: seqStart, Hi: l.pos}, Msg: "unterminated \\u{...} escape"}
		}

		hexDigits := string(l.src[digitStart:l.pos])
		l.advance() // '}'

		v, ok := new(big.Int).SetString(hexDigits, 16)
		if !ok || !utf8.ValidRune(rune(v.Int64())) {
			return 0, &LexError{Kind: InvalidEscape, Span: Span{Lo: seqStart, Hi: l.pos}, Msg: "invalid \\u{...} escape"}
		}

		return rune(v.Int64()), nil
	default:
		return 0, &LexError{Kind: InvalidEscape, Span: Span{Lo: seqStart, Hi: l.pos}, Msg: "unknown escape sequence '\\" + string(c) + "'"}
	}
}

func parseHexByte(hi, lo byte) (byte, bool) {
	h, ok1 := hexDigitVal(hi)
	l, ok2 := hexDigitVal(lo)

	if !ok1 || !ok2 {
		return 0, false
	}

	return h<<4 | l, true
}

func hexDigitVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

func (l *Lexer) lexString(start int) (Token, *LexError) {
	l.advance() // opening '"'

	var sb strings.Builder

	for {
		if l.eof() {
			return Token{}, &LexError{Kind: UnterminatedString, Span: Span{Lo: start, Hi: l.pos}, Msg: "unterminated string literal"}
		}

		c := l.peekByte(0)
		if c == '"' {
			l.advance()
			break
		}

		if c == '\\' {
			escStart := l.pos
			l.advance()

			r, err := l.decodeEscape(escStart)
			if err != nil {
				return Token{}, err
			}

			sb.WriteRune(r)

			continue
		}

		r, size := utf8.DecodeRune(l.src[l.pos:])
		sb.WriteRune(r)
		l.pos += size
	}

	return Token{Kind: String, Span: Span{Lo: start, Hi: l.pos}, Text: sb.String()}, nil
}

func (l *Lexer) lexChar(start int) (Token, *LexError) {
	l.advance() // opening '\''

	if l.eof() {
		return Token{}, &LexError{Kind: UnterminatedChar, Span: Span{Lo: start, Hi: l.pos}, Msg: "unterminated char literal"}
	}

	var value rune

	if l.peekByte(0) == '\\' {
		escStart := l.pos
		l.advance()

		r, err := l.decodeEscape(escStart)
		if err != nil {
			return Token{}, err
		}

		value = r
	} else {
		r, size := utf8.DecodeRune(l.src[l.pos:])
		value = r
		l.pos += size
	}

	if l.eof() || l.peekByte(0) != '\'' {
		return Token{}, &LexError{Kind: UnterminatedChar, Span: Span{Lo: start, Hi: l.pos}, Msg: "char literal must be exactly one character wide"}
	}

	l.advance() // closing '\''

	return Token{Kind: Char, Span: Span{Lo: start, Hi: l.pos}, CharVal: value}, nil
}

// punctTable is consulted longest-match-first; lexPunctOrOperator
// walks it in the order declared here.
var punctTable = []struct {
	text string
	kind Kind
}{
	{"::", ColonColon},
	{"->", Arrow},
	{"=>", FatArrow},
	{">=", Ge},
	{"<=", Le},
	{"&&", AndAnd},
	{"||", OrOr},
	{"==", EqEq},
	{"!=", NotEq},
	{"(", LParen}, {")", RParen},
	{"{", LBrace}, {"}", RBrace},
	{"[", LBracket}, {"]", RBracket},
	{"=", Assign}, {";", Semicolon}, {":", Colon},
	{",", Comma}, {"#", Hash}, {"<", Lt}, {">", Gt}, {".", Dot},
	{"+", Plus}, {"-", Minus}, {"*", Star}, {"/", Slash}, {"%", Percent},
	{"!", Bang}, {"~", Tilde}, {"^", Caret}, {"&", Amp}, {"|", Pipe},
}

func (l *Lexer) lexPunctOrOperator(start int) (Token, *LexError) {
	// A doc-comment run takes priority over a bare line comment.
	if l.peekByte(0) == '/' && l.peekByte(1) == '/' && l.peekByte(2) == '/' {
		return l.lexDocRun(start), nil
	}

	for _, p := range punctTable {
		if l.match(p.text) {
			return Token{Kind: p.kind, Span: Span{Lo: start, Hi: l.pos}}, nil
		}
	}

	r, size := utf8.DecodeRune(l.src[l.pos:])
	l.pos += size

	return Token{}, &LexError{
		Kind: UnknownChar,
		Span: Span{Lo: start, Hi: l.pos},
		Msg:  "unexpected character '" + string(r) + "'",
	}
}

func (l *Lexer) match(text string) bool {
	if l.pos+len(text) > len(l.src) {
		return false
	}

	if string(l.src[l.pos:l.pos+len(text)]) != text {
		return false
	}

	l.pos += len(text)

	return true
}
