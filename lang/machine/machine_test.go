package machine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacob-hughes/plang/internal/config"
	"github.com/jacob-hughes/plang/lang/compiler"
	"github.com/jacob-hughes/plang/lang/machine"
	"github.com/jacob-hughes/plang/lang/parser"
)

func runSource(t *testing.T, src string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "main.pl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	root, err := parser.Parse(path)
	require.NoError(t, err)

	prog, err := compiler.Compile(root, []byte(src))
	require.NoError(t, err)

	var stderr stringBuilder
	vm := machine.New(prog, config.Config{})
	vm.Stderr = &stderr
	result, err := vm.Run()
	require.NoError(t, err)
	return result.String(), stderr.String()
}

type stringBuilder struct{ buf []byte }

func (s *stringBuilder) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}
func (s *stringBuilder) String() string { return string(s.buf) }

func TestIntLiteral(t *testing.T) {
	result, _ := runSource(t, `class global(){ def main(){ 666 } }`)
	require.Equal(t, "666", result)
}

func TestAddition(t *testing.T) {
	result, _ := runSource(t, `class global(){ def main(){ 5 + 5 } }`)
	require.Equal(t, "10", result)
}

func TestLetSlotReuse(t *testing.T) {
	result, _ := runSource(t, `class global(){ def main(){ let x = 666; if x == 666 { let x = 123 }; x } }`)
	require.Equal(t, "123", result)
}

func TestForLoopAccumulation(t *testing.T) {
	result, _ := runSource(t, `class global(){ def main(){ let x = 0; for(let i = 0; i <= 10; let i = i + 1){ let x = i }; x } }`)
	require.Equal(t, "10", result)
}

func TestNestedForLoops(t *testing.T) {
	src := `class global(){ def main(){
		let x = 0;
		for(let i = 0; i < 10; let i = i + 1){
			for(let j = 0; j < 10; let j = j + 1){
				let x = x + 1
			}
		};
		x
	} }`
	result, _ := runSource(t, src)
	require.Equal(t, "100", result)
}

func TestFieldAccess(t *testing.T) {
	src := `class global(){ def main(){ let x = new Foo(); x.y } } class Foo(){ def construct(self){ self.y = 6 } }`
	result, _ := runSource(t, src)
	require.Equal(t, "6", result)
}

func TestUnhandledRaiseYieldsEmptyResult(t *testing.T) {
	src := `class global(){ def main(){ 1 + foo() } def foo(){ raise } }`
	result, stderr := runSource(t, src)
	require.Equal(t, "", result)
	require.NotEmpty(t, stderr)
}

func TestFloatLiteralRoundTrip(t *testing.T) {
	result, _ := runSource(t, `class global(){ def main(){ 1.5 } }`)
	require.Equal(t, "1.5", result)
}

func TestMaxStepsGuardStopsInfiniteLoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.pl")
	src := `class global(){ def main(){ let x = 0; for(let i = 0; i < 1; let i = i){ let x = x + 1 } } }`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	root, err := parser.Parse(path)
	require.NoError(t, err)
	prog, err := compiler.Compile(root, []byte(src))
	require.NoError(t, err)

	vm := machine.New(prog, config.Config{MaxSteps: 1000})
	_, err = vm.Run()
	require.Error(t, err)
}

func TestLoadMissingFieldIsFatal(t *testing.T) {
	src := `class global(){ def main(){ let x = new Foo(); x.y } } class Foo(){ def construct(self){ } }`

	dir := t.TempDir()
	path := filepath.Join(dir, "main.pl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	root, err := parser.Parse(path)
	require.NoError(t, err)
	prog, err := compiler.Compile(root, []byte(src))
	require.NoError(t, err)

	vm := machine.New(prog, config.Config{})
	_, err = vm.Run()
	require.ErrorIs(t, err, machine.ErrNoSuchField)
}

func TestTypeErrorOnMixedAddOperand(t *testing.T) {
	src := `class global(){ def main(){ let x = new Foo(); x + 1 } } class Foo(){ def construct(self){ } }`
	result, stderr := runSource(t, src)
	require.Equal(t, "", result)
	require.NotEmpty(t, stderr)
}
