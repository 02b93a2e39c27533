package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/jacob-hughes/plang/lang/parser"
	"github.com/jacob-hughes/plang/lang/parsetree"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return printError(stdio, ParseFile(stdio, args[0]))
}

// ParseFile parses path and prints its parse tree, one node per line,
// indented by depth.
func ParseFile(stdio mainer.Stdio, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	root, err := parser.Parse(path)
	if err != nil {
		return err
	}

	printNode(stdio.Stdout, root, src, 0)
	return nil
}

func printNode(w interface{ Write([]byte) (int, error) }, n *parsetree.Node, src []byte, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
	if n.IsTerminal() {
		fmt.Fprintf(w, "%s %q\n", n.Rule(), n.Text(src))
		return
	}
	fmt.Fprintf(w, "%s\n", n.Rule())
	for _, child := range n.Children() {
		printNode(w, child, src, depth+1)
	}
}
