package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/spec"
	"github.com/teranos/acceptmark/spec/markdown"
)

type tomlDocument struct {
	Namespace     string     `toml:"namespace"`
	Documentation []string   `toml:"documentation"`
	Specs         []tomlSpec `toml:"specs"`
}

type tomlSpec struct {
	documentSpec
	Tests []tomlCase `toml:"tests"`
}

// tomlCase bindings are unordered tables; they are ordered by declaration
type tomlCase struct {
	Name    string                 `toml:"name"`
	Inputs  map[string]interface{} `toml:"inputs"`
	Outputs map[string]interface{} `toml:"outputs"`
}

func loadTOML(path string) ([]*spec.Spec, error) {
	name := filepath.Base(path)

	var doc tomlDocument
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, errors.ErrMalformedSpec), "%s: failed to parse TOML", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.NewMalformedSpecError("%s: unknown keys %s", name, strings.Join(keys, ", "))
	}

	decoded := make([]documentSpec, len(doc.Specs))
	for i, ts := range doc.Specs {
		decoded[i] = ts.documentSpec
	}

	return build(name, doc.Namespace, doc.Documentation, decoded, func(i int, s *spec.Spec) ([]spec.TestCase, error) {
		cases := doc.Specs[i].Tests
		tests := make([]spec.TestCase, 0, len(cases))
		for j, tc := range cases {
			inputs, err := tableBindings(s.InputVars, tc.Inputs)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: spec %s test %d inputs", name, s.Prefix(), j)
			}
			outputs, err := tableBindings(s.OutputVars, tc.Outputs)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: spec %s test %d outputs", name, s.Prefix(), j)
			}
			tests = append(tests, spec.TestCase{Name: tc.Name, Inputs: inputs, Outputs: outputs})
		}
		return tests, nil
	})
}

// tableBindings formats the values of a TOML table and orders them by the
// declared variables. Undeclared keys are rejected; missing ones are left
// for Validate to report.
func tableBindings(vars []spec.Variable, table map[string]interface{}) ([]spec.Binding, error) {
	types := make(map[string]string, len(vars))
	for _, v := range vars {
		types[v.Name] = v.Type
	}

	values := make(map[string]string, len(table))
	for key, raw := range table {
		typ := types[key]
		cell, err := tomlCell(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "%q", key)
		}
		literal, err := markdown.FormatLiteral(typ, cell)
		if err != nil {
			return nil, errors.Wrapf(err, "%q", key)
		}
		values[key] = literal
	}

	bindings, extra := spec.BindingsFromMap(vars, values)
	if len(extra) > 0 {
		return nil, errors.NewMalformedSpecError("undeclared variables %s", strings.Join(extra, ", "))
	}
	return bindings, nil
}

func tomlCell(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case int64, float64, bool:
		return fmt.Sprint(v), nil
	default:
		return "", errors.NewMalformedSpecError("unsupported value %v of type %T", raw, raw)
	}
}
