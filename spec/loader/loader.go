// Package loader turns specification documents on disk into spec.Spec values.
//
// Three document formats are understood, selected by extension:
//
//	.md          AcceptanceMark markdown (see spec/markdown)
//	.yaml, .yml  structured YAML
//	.toml        structured TOML
//
// The structured formats share one shape:
//
//	namespace: Calc
//	specs:
//	  - name: Add
//	    inputs:  [{name: a, type: Int}, {name: b, type: Int}]
//	    outputs: [{name: sum, type: Int}]
//	    tests:
//	      - {inputs: {a: 1, b: 2}, outputs: {sum: 3}}
package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/logger"
	"github.com/teranos/acceptmark/spec"
	"github.com/teranos/acceptmark/spec/markdown"
)

// DefaultExtensions are the document extensions Discover keeps when none are configured.
var DefaultExtensions = []string{".md", ".yaml", ".yml", ".toml"}

// documentSpec is one spec of a structured document, minus its test cases
// whose encoding differs between YAML and TOML
type documentSpec struct {
	Name          string          `yaml:"name" toml:"name"`
	File          string          `yaml:"file" toml:"file"`
	Documentation []string        `yaml:"documentation" toml:"documentation"`
	Inputs        []spec.Variable `yaml:"inputs" toml:"inputs"`
	Outputs       []spec.Variable `yaml:"outputs" toml:"outputs"`
}

// LoadFile parses one document, picking the decoder from the file extension.
// Every returned spec has passed Validate. A spec that fails to parse or
// validate is left out and reported in the returned error; the document's
// other specs are still returned.
func LoadFile(path string) ([]*spec.Spec, error) {
	var (
		specs []*spec.Spec
		errs  []error
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		specs, err = markdown.ParseFile(path)
	case ".yaml", ".yml":
		specs, err = loadYAML(path)
	case ".toml":
		specs, err = loadTOML(path)
	default:
		return nil, errors.WithHint(
			errors.Newf("unsupported specification format %q", filepath.Ext(path)),
			"use .md, .yaml, .yml or .toml")
	}
	if err != nil {
		errs = append(errs, err)
	}

	valid := make([]*spec.Spec, 0, len(specs))
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, s)
	}

	logger.Debugw("Loaded specification document",
		logger.FieldDocument, path,
		logger.FieldCount, len(valid),
		logger.FieldFailed, len(errs))

	switch len(errs) {
	case 0:
		return valid, nil
	case 1:
		return valid, errs[0]
	default:
		return valid, errors.Join(errs...)
	}
}

// build converts decoded structured specs; rows supplies the test cases of
// the i-th spec. A spec whose rows fail is dropped and its error joined into
// the returned one.
func build(name, namespace string, documentation []string, decoded []documentSpec,
	rows func(i int, s *spec.Spec) ([]spec.TestCase, error)) ([]*spec.Spec, error) {
	if namespace == "" {
		namespace = markdown.NamespaceFromName(name)
	}

	specs := make([]*spec.Spec, 0, len(decoded))
	var errs []error
	for i, ds := range decoded {
		s := &spec.Spec{
			Namespace:          namespace,
			TestName:           ds.Name,
			InputVars:          ds.Inputs,
			OutputVars:         ds.Outputs,
			SourceDocumentName: name,
			GeneratedFileName:  ds.File,
		}
		if s.GeneratedFileName == "" {
			s.GeneratedFileName = spec.DefaultFileName(s.Prefix())
		}
		s.DocumentationLines = append(append([]string{}, documentation...), ds.Documentation...)

		tests, err := rows(i, s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.Tests = tests
		specs = append(specs, s)
	}
	if len(errs) > 0 {
		return specs, errors.Join(errs...)
	}
	return specs, nil
}

// Discover expands paths into the sorted list of specification documents
// they contain. Directories are walked recursively; a file named explicitly
// is kept whatever its extension.
func Discover(paths []string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	keep := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		keep[strings.ToLower(ext)] = true
	}

	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", root)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if keep[strings.ToLower(filepath.Ext(path))] {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk %s", root)
		}
	}

	sort.Strings(files)
	return files, nil
}

// LoadAll loads every file, continuing past failures. It returns the specs
// that loaded and a joined error for the documents and specs that did not.
func LoadAll(files []string) ([]*spec.Spec, error) {
	var (
		all  []*spec.Spec
		errs []error
	)
	for _, f := range files {
		specs, err := LoadFile(f)
		if err != nil {
			logger.Warnw("Failed to load specification document",
				logger.FieldDocument, f,
				logger.FieldCount, len(specs),
				logger.FieldError, err)
			errs = append(errs, err)
		}
		all = append(all, specs...)
	}
	if len(errs) > 0 {
		return all, errors.Join(errs...)
	}
	return all, nil
}
