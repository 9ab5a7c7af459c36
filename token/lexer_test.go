// SPDX-FileCopyrightText: © 2021 The dyml authors <https://github.com/golangee/dyml/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) ([]Token, *LexError) {
	t.Helper()

	f := NewFile("test.l", []byte(src))
	l := NewLexer(f)

	var toks []Token

	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}

		toks = append(toks, tok)

		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

func TestLexerKeywordsAndPunctuation(t *testing.T) {
	toks, err := lexAll(t, "mod a { fn f() -> i32 { return 1; } }")
	require.Nil(t, err)

	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	require.Equal(t, []Kind{
		Mod, Ident, LBrace,
		Fn, Ident, LParen, RParen, Arrow, Ident, LBrace,
		Return, Integer, Semicolon, RBrace, RBrace, EOF,
	}, kinds)
}

func TestLexerTurbofishVsCompare(t *testing.T) {
	toks, err := lexAll(t, "f::<i32>(1)")
	require.Nil(t, err)
	require.Equal(t, []Kind{Ident, ColonColon, Lt, Ident, Gt, LParen, Integer, RParen, EOF}, kindsOf(toks))

	toks, err = lexAll(t, "a < b")
	require.Nil(t, err)
	require.Equal(t, []Kind{Ident, Lt, Ident, EOF}, kindsOf(toks))
}

func kindsOf(toks []Token) []Kind {
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestLexerIntegerRadixes(t *testing.T) {
	toks, err := lexAll(t, "0x1F 0b101 0o17 42")
	require.Nil(t, err)
	require.Len(t, toks, 5) // four integers + EOF

	require.Equal(t, int64(31), toks[0].Int.Int64())
	require.Equal(t, int64(5), toks[1].Int.Int64())
	require.Equal(t, int64(15), toks[2].Int.Int64())
	require.Equal(t, int64(42), toks[3].Int.Int64())
}

func TestLexerIntegerOverflow(t *testing.T) {
	huge := "340282366920938463463374607431768211456" // 2^128
	_, err := lexAll(t, huge)
	require.NotNil(t, err)
	require.Equal(t, NumericOverflow, err.Kind)
}

func TestLexerFloatRetainsSpelling(t *testing.T) {
	toks, err := lexAll(t, "3.14 2.5e10")
	require.Nil(t, err)
	require.Equal(t, "3.14", toks[0].Text)
	require.Equal(t, "2.5e10", toks[1].Text)
}

func TestLexerStringEscapes(t *testing.T) {
	toks, err := lexAll(t, `"a\nb\t\"\\\x41\u{1F600}"`)
	require.Nil(t, err)
	require.Equal(t, "a\nb\t\"\\A\U0001F600", toks[0].Text)
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := lexAll(t, `"abc`)
	require.NotNil(t, err)
	require.Equal(t, UnterminatedString, err.Kind)
}

func TestLexerCharLiteralMustBeOneWide(t *testing.T) {
	toks, err := lexAll(t, `'a'`)
	require.Nil(t, err)
	require.Equal(t, 'a', toks[0].CharVal)

	_, err = lexAll(t, `'ab'`)
	require.NotNil(t, err)
	require.Equal(t, UnterminatedChar, err.Kind)
}

func TestLexerDocStringRunMerges(t *testing.T) {
	toks, err := lexAll(t, "/// line one\n/// line two\nfn f() {}")
	require.Nil(t, err)
	require.Equal(t, DocString, toks[0].Kind)
	require.Equal(t, "line one\nline two", toks[0].Text)
	require.Equal(t, Fn, toks[1].Kind)
}

func TestLexerNestedBlockComments(t *testing.T) {
	toks, err := lexAll(t, "/* outer /* inner */ still outer */ fn")
	require.Nil(t, err)
	require.Equal(t, Fn, toks[0].Kind)
}

func TestLexerUnterminatedBlockComment(t *testing.T) {
	_, err := lexAll(t, "/* never closed")
	require.NotNil(t, err)
	require.Equal(t, UnterminatedComment, err.Kind)
}

func TestLexerUnknownChar(t *testing.T) {
	_, err := lexAll(t, "$")
	require.NotNil(t, err)
	require.Equal(t, UnknownChar, err.Kind)
}

// TestLexerKindShapeStable guards property 4's precondition at the
// lexer level: two spellings of the same punctuation run (extra inner
// whitespace aside) must tokenize to the identical Kind sequence, so
// the parser's precedence climbing has nothing but Kind to key off of.
func TestLexerKindShapeStable(t *testing.T) {
	a, err := lexAll(t, "1+2*3")
	require.Nil(t, err)

	b, err := lexAll(t, "1 + 2 * 3")
	require.Nil(t, err)

	if diff := cmp.Diff(kindsOf(a), kindsOf(b)); diff != "" {
		t.Fatalf("kind sequence differs by whitespace alone (-tight +spaced):\n%s", diff)
	}
}

func TestLexerCRLFTreatedAsWhitespace(t *testing.T) {
	toks, err := lexAll(t, "fn\r\nf")
	require.Nil(t, err)
	require.Equal(t, []Kind{Fn, Ident, EOF}, kindsOf(toks))
}
