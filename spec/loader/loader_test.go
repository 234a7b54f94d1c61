package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/acceptmark/errors"
)

func TestLoadFileMarkdown(t *testing.T) {
	specs, err := LoadFile(filepath.Join("testdata", "Calc.md"))
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "Calc_Add", specs[0].Prefix())
	assert.Len(t, specs[0].Tests, 2)
}

func TestLoadFileYAML(t *testing.T) {
	specs, err := LoadFile(filepath.Join("testdata", "Greeting.yaml"))
	require.NoError(t, err)
	require.Len(t, specs, 1)

	s := specs[0]
	assert.Equal(t, "Greeting_Hello", s.Prefix())
	assert.Equal(t, "Greeting_HelloTests.swift", s.GeneratedFileName)
	assert.Equal(t, "Greeting.yaml", s.SourceDocumentName)
	assert.Equal(t, []string{"Greets people by name."}, s.DocumentationLines)

	require.Len(t, s.Tests, 2)
	assert.Equal(t, "plain", s.Tests[0].Name)
	assert.Equal(t, `name: "Ada", excited: false`, s.InputParametersList(s.Tests[0]))
	assert.Equal(t, `message: "Hello, Ada"`, s.OutputParametersList(s.Tests[0]))
	assert.Equal(t, `message: "Hello, Grace!"`, s.OutputParametersList(s.Tests[1]))
}

func TestLoadFileTOML(t *testing.T) {
	specs, err := LoadFile(filepath.Join("testdata", "Units.toml"))
	require.NoError(t, err)
	require.Len(t, specs, 1)

	s := specs[0]
	assert.Equal(t, "Units_Convert", s.Prefix())
	assert.Equal(t, "UnitConversionTests.swift", s.GeneratedFileName)

	require.Len(t, s.Tests, 2)
	// bindings follow declaration order even though the table lists unit first
	assert.Equal(t, `meters: 1, unit: "ft"`, s.InputParametersList(s.Tests[0]))
	assert.Equal(t, "value: 3.28084", s.OutputParametersList(s.Tests[0]))
	assert.Equal(t, `meters: 2, unit: "m"`, s.InputParametersList(s.Tests[1]))
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{
			name: "yaml bindings out of order",
			file: "Calc.yaml",
			content: `specs:
  - name: Add
    inputs: [{name: a, type: Int}, {name: b, type: Int}]
    outputs: [{name: sum, type: Int}]
    tests:
      - {inputs: {b: 2, a: 1}, outputs: {sum: 3}}
`,
			want: `input binding 0 is "b", expected "a"`,
		},
		{
			name: "yaml undeclared variable",
			file: "Calc.yaml",
			content: `specs:
  - name: Add
    inputs: [{name: a, type: Int}]
    outputs: []
    tests:
      - {inputs: {a: 1, c: 2}}
`,
			want: `Calc.yaml:6: "c" is not a declared variable`,
		},
		{
			name: "yaml missing binding",
			file: "Calc.yaml",
			content: `specs:
  - name: Add
    inputs: [{name: a, type: Int}]
    outputs: [{name: sum, type: Int}]
    tests:
      - {inputs: {a: 1}}
`,
			want: `missing output binding for "sum"`,
		},
		{
			name: "yaml unknown key",
			file: "Calc.yaml",
			content: `specz: []
`,
			want: "failed to parse YAML",
		},
		{
			name: "toml extra key",
			file: "Calc.toml",
			content: `[[specs]]
name = "Add"
inputs = [{ name = "a", type = "Int" }]
outputs = []

[[specs.tests]]
inputs = { a = 1, z = 2 }
`,
			want: "undeclared variables z",
		},
		{
			name: "toml unknown key",
			file: "Calc.toml",
			content: `namespce = "Calc"
`,
			want: "unknown keys namespce",
		},
		{
			name: "toml missing binding",
			file: "Calc.toml",
			content: `[[specs]]
name = "Add"
inputs = [{ name = "a", type = "Int" }, { name = "b", type = "Int" }]
outputs = []

[[specs.tests]]
inputs = { a = 1 }
`,
			want: `missing input binding for "b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeDoc(t, tt.file, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsMalformedSpec(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFileKeepsValidSpecs(t *testing.T) {
	t.Run("markdown section that fails validation", func(t *testing.T) {
		doc := `# Add
| a:Int | b:Int || sum:Int |
| 1     | 2     || 3       |

# Sub
| a:Int | a:Int || diff:Int |
| 1     | 1     || 0        |
`
		specs, err := LoadFile(writeDoc(t, "Calc.md", doc))
		require.Error(t, err)
		assert.True(t, errors.IsMalformedSpec(err))
		assert.Contains(t, err.Error(), `spec Calc_Sub (Calc.md): input variable "a" declared more than once`)
		require.Len(t, specs, 1)
		assert.Equal(t, "Calc_Add", specs[0].Prefix())
	})

	t.Run("yaml spec with a bad binding", func(t *testing.T) {
		doc := `specs:
  - name: Add
    inputs: [{name: a, type: Int}]
    outputs: [{name: sum, type: Int}]
    tests:
      - {inputs: {a: 1}, outputs: {sum: 1}}
  - name: Sub
    inputs: [{name: a, type: Int}]
    outputs: []
    tests:
      - {inputs: {a: 1, z: 2}}
`
		specs, err := LoadFile(writeDoc(t, "Calc.yaml", doc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `Calc.yaml:11: "z" is not a declared variable`)
		require.Len(t, specs, 1)
		assert.Equal(t, "Calc_Add", specs[0].Prefix())
	})
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	_, err := LoadFile(writeDoc(t, "Calc.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported specification format ".json"`)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestDiscover(t *testing.T) {
	files, err := Discover([]string{"testdata"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata", "Calc.md"),
		filepath.Join("testdata", "Greeting.yaml"),
		filepath.Join("testdata", "Units.toml"),
		filepath.Join("testdata", "nested", "Misc.yml"),
	}, files)

	t.Run("extension filter without dot", func(t *testing.T) {
		files, err := Discover([]string{"testdata"}, []string{"toml"})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join("testdata", "Units.toml")}, files)
	})

	t.Run("explicit files are kept and deduplicated", func(t *testing.T) {
		readme := filepath.Join("testdata", "nested", "README.txt")
		files, err := Discover([]string{readme, readme, filepath.Join("testdata", "nested")}, []string{".yml"})
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join("testdata", "nested", "Misc.yml"),
			readme,
		}, files)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Discover([]string{filepath.Join("testdata", "nope")}, nil)
		assert.Error(t, err)
	})
}

func TestLoadAllContinuesPastFailures(t *testing.T) {
	bad := writeDoc(t, "Broken.md", "# Add\n| a | b |\n")
	files := []string{filepath.Join("testdata", "Calc.md"), bad, filepath.Join("testdata", "Greeting.yaml")}

	specs, err := LoadAll(files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken.md")
	require.Len(t, specs, 2)
	assert.Equal(t, "Calc_Add", specs[0].Prefix())
	assert.Equal(t, "Greeting_Hello", specs[1].Prefix())

	t.Run("partially valid document", func(t *testing.T) {
		mixed := writeDoc(t, "Mixed.md", "# Good\n| a || b |\n| 1 || 2 |\n\n# Bad\n| a | b |\n| 1 | 2 |\n")
		specs, err := LoadAll([]string{mixed, filepath.Join("testdata", "Calc.md")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Mixed.md:6")
		require.Len(t, specs, 2)
		assert.Equal(t, "Mixed_Good", specs[0].Prefix())
		assert.Equal(t, "Calc_Add", specs[1].Prefix())
	})
}
