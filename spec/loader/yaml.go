package loader

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/spec"
	"github.com/teranos/acceptmark/spec/markdown"
)

type yamlDocument struct {
	Namespace     string     `yaml:"namespace"`
	Documentation []string   `yaml:"documentation"`
	Specs         []yamlSpec `yaml:"specs"`
}

type yamlSpec struct {
	documentSpec `yaml:",inline"`
	Tests        []yamlCase `yaml:"tests"`
}

// yamlCase keeps bindings as nodes so their document order survives decoding
type yamlCase struct {
	Name    string    `yaml:"name"`
	Inputs  yaml.Node `yaml:"inputs"`
	Outputs yaml.Node `yaml:"outputs"`
}

func loadYAML(path string) ([]*spec.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	defer f.Close()

	name := filepath.Base(path)

	var doc yamlDocument
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrapf(errors.Mark(err, errors.ErrMalformedSpec), "%s: failed to parse YAML", name)
	}

	decoded := make([]documentSpec, len(doc.Specs))
	for i, ys := range doc.Specs {
		decoded[i] = ys.documentSpec
	}

	return build(name, doc.Namespace, doc.Documentation, decoded, func(i int, s *spec.Spec) ([]spec.TestCase, error) {
		cases := doc.Specs[i].Tests
		tests := make([]spec.TestCase, 0, len(cases))
		for _, yc := range cases {
			inputs, err := nodeBindings(name, s.InputVars, &yc.Inputs)
			if err != nil {
				return nil, err
			}
			outputs, err := nodeBindings(name, s.OutputVars, &yc.Outputs)
			if err != nil {
				return nil, err
			}
			tests = append(tests, spec.TestCase{Name: yc.Name, Inputs: inputs, Outputs: outputs})
		}
		return tests, nil
	})
}

// nodeBindings reads a mapping of variable name to scalar in document order
func nodeBindings(document string, vars []spec.Variable, node *yaml.Node) ([]spec.Binding, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.NewMalformedSpecError("%s:%d: bindings must be a mapping", document, node.Line)
	}

	types := make(map[string]string, len(vars))
	for _, v := range vars {
		types[v.Name] = v.Type
	}

	bindings := make([]spec.Binding, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		typ, ok := types[key.Value]
		if !ok {
			return nil, errors.NewMalformedSpecError("%s:%d: %q is not a declared variable", document, key.Line, key.Value)
		}
		if value.Kind != yaml.ScalarNode {
			return nil, errors.NewMalformedSpecError("%s:%d: value of %q must be a scalar", document, value.Line, key.Value)
		}

		cell := value.Value
		if value.Tag == "!!null" {
			cell = ""
		}
		literal, err := markdown.FormatLiteral(typ, cell)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: %q", document, value.Line, key.Value)
		}
		bindings = append(bindings, spec.Binding{Name: key.Value, Value: literal})
	}
	return bindings, nil
}
