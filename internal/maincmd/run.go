package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/jacob-hughes/plang/internal/config"
	"github.com/jacob-hughes/plang/lang/machine"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return printError(stdio, RunFile(stdio, args[0]))
}

// RunFile parses, compiles, and executes path, printing its published
// result (the empty string if the program raised all the way out).
func RunFile(stdio mainer.Stdio, path string) error {
	prog, err := compileProgram(path)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	vm := machine.New(prog, cfg)
	vm.Stderr = stdio.Stderr
	result, err := vm.Run()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdio.Stdout, result.String())
	return nil
}
