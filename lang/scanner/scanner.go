// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"context"
	"fmt"
	"go/scanner"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jacob-hughes/plang/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// TokenAndValue combines the token type with the token value type in the same
// struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFile tokenizes a single source file and returns the list of tokens
// plus any error encountered. The error, if non-nil, is either the error from
// reading path or an ErrorList of scan errors sorted by position.
func ScanFile(ctx context.Context, path string) (*token.FileSet, []TokenAndValue, error) {
	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	fs := token.NewFileSet()
	file := fs.AddFile(path, len(b))
	s.Init(file, b, el.Add)

	var toks []TokenAndValue
	for {
		tok := s.Scan(&tokVal)
		toks = append(toks, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	el.Sort()
	return fs, toks, el.Err()
}

// Scanner tokenizes plang source files for the parser to consume.
type Scanner struct {
	// immutable state after Init
	file *token.File
	src  []byte
	err  func(pos token.Position, msg string)

	// mutable scanning state
	sb   strings.Builder
	cur  rune // current character
	off  int  // byte offset of cur
	roff int  // reading offset (position after current character)
}

// Init initializes the scanner to tokenize a new file. It panics if the
// file size is not the same as the length of the src slice.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}

	s.file = file
	s.src = src
	s.err = errHandler

	s.sb.Reset()
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.file.AddLine(s.off)
		}
		s.cur = -1
		return
	}

	s.off = s.roff
	if s.cur == '\n' {
		s.file.AddLine(s.off)
	}

	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.PositionAt(off), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

func (s *Scanner) advanceIf(match byte) bool {
	if s.cur == rune(match) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source file.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok = token.LookupKw(lit)
		*tokVal = token.Value{Raw: lit, Pos: pos}

	case isDecimal(cur):
		var lit string
		tok, lit = s.number()
		*tokVal = token.Value{Raw: lit, Pos: pos}
		if tok == token.INT {
			tokVal.Int = numberToInt(lit)
		} else {
			tokVal.Float = numberToFloat(lit)
		}

	default:
		s.advance() // always make progress
		switch cur {
		case '=':
			tok = token.EQ
			if s.advanceIf('=') {
				tok = token.EQEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '"':
			lit, val := s.shortString()
			tok = token.STRING
			*tokVal = token.Value{Raw: lit, Pos: pos, String: val}

		case '<':
			tok = token.LT
			if s.advanceIf('=') {
				tok = token.LTEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '>':
			tok = token.GT
			if s.advanceIf('=') {
				tok = token.GTEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '+':
			tok = token.PLUS
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}
		case '-':
			tok = token.MINUS
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}
		case ';':
			tok = token.SEMI
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}
		case ',':
			tok = token.COMMA
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}
		case '.':
			tok = token.DOT
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}
		case '(':
			tok = token.LPAREN
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}
		case ')':
			tok = token.RPAREN
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}
		case '{':
			tok = token.LBRACE
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}
		case '}':
			tok = token.RBRACE
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case -1:
			tok = token.EOF
			*tokVal = token.Value{Raw: "", Pos: pos}

		default:
			s.errorf(start, "illegal character %#U", cur)
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: string(cur), Pos: pos}
		}
	}
	tokVal.Start = start
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// skipWhitespaceAndComments skips spaces and '//' line comments; plang has
// no block comment syntax.
func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9' ||
		rn >= utf8.RuneSelf && unicode.IsDigit(rn)
}
