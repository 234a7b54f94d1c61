// Package spec holds the in-memory model of an acceptance test specification.
//
// A Spec is produced by a parser (see spec/markdown and spec/loader), checked
// with Validate, and handed to a generator that renders it as test source.
// Generators never mutate a Spec.
package spec

import (
	"sort"
	"strings"
)

// Variable declares one input or output of the operation under test.
// Type is an opaque token copied verbatim into generated declarations.
type Variable struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
}

// Binding binds a pre-formatted source literal to a declared variable.
type Binding struct {
	Name  string
	Value string
}

// TestCase is one row of the specification table.
// Inputs and Outputs follow the declaration order of the owning Spec.
type TestCase struct {
	// Name is optional and only used in diagnostics; generated test
	// methods are numbered by position
	Name    string
	Inputs  []Binding
	Outputs []Binding
}

// Spec is one named group of test cases sharing an input/output shape.
type Spec struct {
	Namespace string
	TestName  string

	InputVars  []Variable
	OutputVars []Variable
	Tests      []TestCase

	// DocumentationLines are embedded verbatim in the generated header
	DocumentationLines []string

	// SourceDocumentName is the authored document this spec came from
	SourceDocumentName string
	// GeneratedFileName is the output file name, relative to the output directory
	GeneratedFileName string
}

// DefaultFileName returns the conventional output file name for a prefix.
func DefaultFileName(prefix string) string {
	return prefix + "Tests.swift"
}

// Prefix returns the identifier prefix "<Namespace>_<TestName>" every
// generated symbol is derived from.
func (s *Spec) Prefix() string {
	return s.Namespace + "_" + s.TestName
}

// InputTypeName returns the name of the generated input shape.
func (s *Spec) InputTypeName() string { return s.Prefix() + "Input" }

// OutputTypeName returns the name of the generated output shape.
func (s *Spec) OutputTypeName() string { return s.Prefix() + "Output" }

// RunnableName returns the name of the generated runnable contract.
func (s *Spec) RunnableName() string { return s.Prefix() + "Runnable" }

// TestsName returns the name of the generated test suite.
func (s *Spec) TestsName() string { return s.Prefix() + "Tests" }

// RunnerName returns the name of the concrete runner a human supplies.
func (s *Spec) RunnerName() string { return s.Prefix() + "Runner" }

// InputParametersList renders the labelled constructor arguments for the
// input shape of tc, e.g. "a: 1, b: 2".
func (s *Spec) InputParametersList(tc TestCase) string {
	return parametersList(s.InputVars, tc.Inputs)
}

// OutputParametersList renders the labelled constructor arguments for the
// expected output shape of tc.
func (s *Spec) OutputParametersList(tc TestCase) string {
	return parametersList(s.OutputVars, tc.Outputs)
}

// parametersList pairs declarations with bindings positionally. Callers are
// expected to have run Validate; surplus entries on either side are ignored.
func parametersList(vars []Variable, bindings []Binding) string {
	n := len(vars)
	if len(bindings) < n {
		n = len(bindings)
	}

	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = vars[i].Name + ": " + bindings[i].Value
	}
	return strings.Join(parts, ", ")
}

// BindingsFromMap orders values by the declared variables. Names present in
// values but not declared are returned as extra; declared names missing from
// values are simply absent, so Validate reports them.
func BindingsFromMap(vars []Variable, values map[string]string) (bindings []Binding, extra []string) {
	declared := make(map[string]bool, len(vars))
	for _, v := range vars {
		declared[v.Name] = true
		if value, ok := values[v.Name]; ok {
			bindings = append(bindings, Binding{Name: v.Name, Value: value})
		}
	}
	for name := range values {
		if !declared[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return bindings, extra
}
