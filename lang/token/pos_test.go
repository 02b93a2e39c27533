package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakePosLineCol(t *testing.T) {
	p := MakePos(3, 7)
	line, col := p.LineCol()
	require.Equal(t, 3, line)
	require.Equal(t, 7, col)
	require.False(t, p.Unknown())
}

func TestPosUnknown(t *testing.T) {
	require.True(t, Pos(0).Unknown())
	require.True(t, MakePos(0, 1).Unknown())
	require.True(t, MakePos(1, 0).Unknown())
}

func TestPositionString(t *testing.T) {
	require.Equal(t, "foo.plang:3:7", Position{Filename: "foo.plang", Line: 3, Column: 7}.String())
	require.Equal(t, "foo.plang", Position{Filename: "foo.plang"}.String())
}

func TestFileLineCol(t *testing.T) {
	src := "let x = 1;\nlet y = 2;\nx\n"
	f := NewFile("test.plang", len(src))
	for i, b := range []byte(src) {
		if b == '\n' {
			f.AddLine(i + 1)
		}
	}

	pos := f.Position(f.Pos(0))
	require.Equal(t, 1, pos.Line)
	require.Equal(t, 1, pos.Column)

	secondLineStart := len("let x = 1;\n")
	pos = f.Position(f.Pos(secondLineStart))
	require.Equal(t, 2, pos.Line)
	require.Equal(t, 1, pos.Column)
}

func TestFileSetAddFile(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddFile("a.plang", 10)
	require.Equal(t, "a.plang", f.Name())
	require.Equal(t, 10, f.Size())
}
