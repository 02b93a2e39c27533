package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacob-hughes/plang/lang/parser"
	"github.com/jacob-hughes/plang/lang/parsetree"
)

func parseSource(t *testing.T, src string) *parsetree.Node {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.pl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	root, err := parser.Parse(path)
	require.NoError(t, err)
	return root
}

func TestParseEmptyClass(t *testing.T) {
	root := parseSource(t, `class global(){ def main(){ } }`)
	require.Equal(t, "program", root.Rule())
	require.Len(t, root.Children(), 1)

	cls := root.Child(0)
	require.Equal(t, "class_def", cls.Rule())
	require.Equal(t, "global", cls.Child(0).Text([]byte(`class global(){ def main(){ } }`)))
}

func TestParseBinaryExpressionIsExpressionWrapped(t *testing.T) {
	root := parseSource(t, `class global(){ def main(){ 1 + 2 } }`)
	stmt := root.Child(0).Child(1).Child(2).Child(0) // class_def -> func_def -> block -> statement
	require.Equal(t, "statement", stmt.Rule())

	expr := stmt.Child(0)
	require.Equal(t, "expression", expr.Rule())

	bin := expr.Child(0)
	require.Equal(t, "binary_expression", bin.Rule())
	require.Len(t, bin.Children(), 3)
	require.Equal(t, "expression", bin.Child(0).Rule())
	require.Equal(t, "expression", bin.Child(2).Rule())
}

func TestParseFieldAccessAndSet(t *testing.T) {
	src := `class global(){ def main(){ x.y = 1; x.y } }`
	root := parseSource(t, src)
	block := root.Child(0).Child(1).Child(2)
	require.Len(t, block.Children(), 2)

	set := block.Child(0).Child(0).Child(0)
	require.Equal(t, "field_set", set.Rule())

	access := block.Child(1).Child(0).Child(0)
	require.Equal(t, "field_access", access.Rule())
}

func TestParseClassInstanceCreation(t *testing.T) {
	src := `class global(){ def main(){ new Foo() } }`
	root := parseSource(t, src)
	stmt := root.Child(0).Child(1).Child(2).Child(0)
	create := stmt.Child(0).Child(0)
	require.Equal(t, "class_instance_creation", create.Rule())
}

func TestParseForStatementShape(t *testing.T) {
	src := `class global(){ def main(){ for(let i = 0; i < 10; let i = i + 1){ } } }`
	root := parseSource(t, src)
	stmt := root.Child(0).Child(1).Child(2).Child(0)
	forStmt := stmt.Child(0)
	require.Equal(t, "for_statement", forStmt.Rule())
	require.Len(t, forStmt.Children(), 4)
}
