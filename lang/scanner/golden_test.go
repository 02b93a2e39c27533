package scanner_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"

	"github.com/jacob-hughes/plang/internal/filetest"
	"github.com/jacob-hughes/plang/internal/maincmd"
)

var testUpdateScannerTests = flag.Bool("test.update-scanner-tests", false, "If set, replace expected scanner golden results with actual results.")

func TestScanGolden(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".pl") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			// error is ignored here; TokenizeFile already prints it to ebuf.
			_ = maincmd.TokenizeFile(context.Background(), stdio, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateScannerTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateScannerTests)
		})
	}
}
