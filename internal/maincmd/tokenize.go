package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/jacob-hughes/plang/lang/scanner"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return printError(stdio, TokenizeFile(ctx, stdio, args[0]))
}

// TokenizeFile scans path and prints one line per token: its position,
// kind, and raw text.
func TokenizeFile(ctx context.Context, stdio mainer.Stdio, path string) error {
	fs, toks, err := scanner.ScanFile(ctx, path)
	if fs != nil && len(fs.Files()) > 0 {
		file := fs.Files()[0]
		for _, tv := range toks {
			pos := file.Position(tv.Value.Pos)
			fmt.Fprintf(stdio.Stdout, "%s: %s", pos, tv.Token)
			if tv.Value.Raw != "" {
				fmt.Fprintf(stdio.Stdout, " %q", tv.Value.Raw)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
