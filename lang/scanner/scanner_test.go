package scanner_test

import (
	"testing"

	"github.com/jacob-hughes/plang/lang/scanner"
	"github.com/jacob-hughes/plang/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []scanner.TokenAndValue {
	t.Helper()

	var (
		s      scanner.Scanner
		tokVal token.Value
		el     scanner.ErrorList
	)
	fs := token.NewFileSet()
	file := fs.AddFile("test.plang", len(src))
	s.Init(file, []byte(src), el.Add)

	var toks []scanner.TokenAndValue
	for {
		tok := s.Scan(&tokVal)
		toks = append(toks, scanner.TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	require.NoError(t, el.Err())
	return toks
}

func tokenKinds(toks []scanner.TokenAndValue) []token.Token {
	kinds := make([]token.Token, len(toks))
	for i, tv := range toks {
		kinds[i] = tv.Token
	}
	return kinds
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks := scanAll(t, "class def let if for raise new foo")
	require.Equal(t, []token.Token{
		token.CLASS, token.DEF, token.LET, token.IF, token.FOR, token.RAISE, token.NEW, token.IDENT, token.EOF,
	}, tokenKinds(toks))
}

func TestScanIntLiteral(t *testing.T) {
	toks := scanAll(t, "666")
	require.Equal(t, token.INT, toks[0].Token)
	require.Equal(t, int32(666), toks[0].Value.Int)
}

func TestScanFloatLiteral(t *testing.T) {
	toks := scanAll(t, "1.5")
	require.Equal(t, token.FLOAT, toks[0].Token)
	require.InDelta(t, float32(1.5), toks[0].Value.Float, 0.0001)
}

func TestScanStringLiteral(t *testing.T) {
	toks := scanAll(t, `"hello \"world\""`)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, `hello "world"`, toks[0].Value.String)
}

func TestScanPunctuation(t *testing.T) {
	toks := scanAll(t, "+ - < <= > >= == = ; , . ( ) { }")
	require.Equal(t, []token.Token{
		token.PLUS, token.MINUS, token.LT, token.LTEQ, token.GT, token.GTEQ,
		token.EQEQ, token.EQ, token.SEMI, token.COMMA, token.DOT,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.EOF,
	}, tokenKinds(toks))
}

func TestScanLineComment(t *testing.T) {
	toks := scanAll(t, "1 // ignored\n+ 2")
	require.Equal(t, []token.Token{token.INT, token.PLUS, token.INT, token.EOF}, tokenKinds(toks))
}

func TestScanIllegalCharacter(t *testing.T) {
	var (
		s      scanner.Scanner
		tokVal token.Value
		el     scanner.ErrorList
	)
	fs := token.NewFileSet()
	file := fs.AddFile("test.plang", 1)
	s.Init(file, []byte("$"), el.Add)
	tok := s.Scan(&tokVal)
	require.Equal(t, token.ILLEGAL, tok)
	require.Error(t, el.Err())
}
