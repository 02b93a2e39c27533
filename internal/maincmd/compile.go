package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/jacob-hughes/plang/lang/compiler"
	"github.com/jacob-hughes/plang/lang/parser"
)

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return printError(stdio, CompileFile(stdio, args[0]))
}

// CompileFile parses and compiles path, printing the resulting
// disassembly.
func CompileFile(stdio mainer.Stdio, path string) error {
	prog, err := compileProgram(path)
	if err != nil {
		return err
	}
	fmt.Fprint(stdio.Stdout, prog.Disassemble())
	return nil
}

func compileProgram(path string) (*compiler.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := parser.Parse(path)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(root, src)
}
