package xctest

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/teranos/acceptmark/spec/markdown"
	"github.com/teranos/acceptmark/testgen"
)

var update = flag.Bool("update", false, "rewrite the generated files in testdata/*.txtar")

// Each archive holds one markdown document (the first file) followed by the
// expected output as "<dialect>/<generated file name>".
func TestGolden(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		t.Run(filepath.Base(path), func(t *testing.T) {
			runGolden(t, path)
		})
	}
}

func runGolden(t *testing.T, path string) {
	archive, err := txtar.ParseFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, archive.Files, "archive needs an input document")

	input := archive.Files[0]
	specs, err := markdown.Parse(input.Name, input.Data)
	require.NoError(t, err)

	want := make(map[string][]byte)
	for _, f := range archive.Files[1:] {
		want[f.Name] = f.Data
	}

	g := NewGenerator()
	got := []txtar.File{input}
	for _, d := range []testgen.Dialect{testgen.Swift2, testgen.Swift3} {
		for _, s := range specs {
			src, err := g.Emit(s, d)
			require.NoError(t, err)

			name := d.String() + "/" + s.GeneratedFileName
			got = append(got, txtar.File{Name: name, Data: []byte(src)})
			if *update {
				continue
			}

			expected, ok := want[name]
			if !ok {
				t.Errorf("%s: no golden output (run with -update)", name)
				continue
			}
			if diff := cmp.Diff(string(expected), src); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
			}
		}
	}

	if *update {
		archive.Files = got
		require.NoError(t, os.WriteFile(path, txtar.Format(archive), 0o644))
		t.Logf("updated %s", path)
		return
	}

	for name := range want {
		if !containsFile(got, name) {
			t.Errorf("%s: golden output no longer produced", name)
		}
	}
}

func containsFile(files []txtar.File, name string) bool {
	for _, f := range files {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}
