package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupKw(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok > kwStart && tok < kwEnd
		val := LookupKw(tok.String())
		if expect {
			require.Equal(t, tok, val)
		} else {
			require.Equal(t, IDENT, val)
		}
	}
}

func TestIsBinaryOp(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok >= PLUS && tok <= EQEQ
		require.Equal(t, expect, tok.IsBinaryOp())
	}
}
