package scanner

import (
	"strconv"

	"github.com/jacob-hughes/plang/lang/token"
)

// number scans a decimal integer or float literal. plang's surface grammar
// (spec.md §6, extended by SPEC_FULL.md §4.6) only needs plain decimal
// digits and an optional single '.' fractional part — no hex/octal/binary
// prefixes, no digit separators, no exponents.
func (s *Scanner) number() (tok token.Token, lit string) {
	start := s.off
	tok = token.INT

	for isDecimal(s.cur) {
		s.advance()
	}
	if s.cur == '.' && isDecimal(rune(s.peek())) {
		tok = token.FLOAT
		s.advance() // consume '.'
		for isDecimal(s.cur) {
			s.advance()
		}
	}

	lit = string(s.src[start:s.off])
	return tok, lit
}

func isDecimal(rn rune) bool {
	return '0' <= rn && rn <= '9'
}

func numberToInt(lit string) int32 {
	v, _ := strconv.ParseInt(lit, 10, 32)
	return int32(v)
}

func numberToFloat(lit string) float32 {
	v, _ := strconv.ParseFloat(lit, 32)
	return float32(v)
}
