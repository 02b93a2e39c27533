// Package grammar holds a plain-text EBNF rendering of the surface syntax
// lang/parser implements by hand, verified for well-formedness the way
// mna-nenuphar verifies its own grammar.ebnf: this package carries no
// runtime code, only the description and its self-check.
package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestEBNF(t *testing.T) {
	f, err := os.Open("grammar.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("grammar.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatal(err)
	}
}
