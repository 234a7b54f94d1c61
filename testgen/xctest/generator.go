// Package xctest renders specifications as Swift XCTest suites.
//
// Each unit declares an input struct, an Equatable output struct, a Runnable
// protocol and an XCTestCase subclass with one test method per test case.
// The concrete runner is left for a human to write; a commented-out sample
// closes the file.
package xctest

import (
	"github.com/teranos/acceptmark/spec"
	"github.com/teranos/acceptmark/testgen"
)

// Generator emits XCTest source for Swift 2 and Swift 3.
type Generator struct {
	builder testgen.Builder
}

// NewGenerator returns a Generator with the standard fragment order.
func NewGenerator() *Generator {
	return &Generator{builder: testgen.Builder{
		header,
		imports,
		inputStruct,
		outputStruct,
		runnableProtocol,
		testCaseClass,
		equalityOperator,
		sampleRunner,
	}}
}

func (g *Generator) Language() string      { return "swift" }
func (g *Generator) FileExtension() string { return "swift" }

// Emit validates s and renders it. Nothing is rendered when s is malformed.
func (g *Generator) Emit(s *spec.Spec, d testgen.Dialect) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	return g.builder.Build(&testgen.Unit{Spec: s, Dialect: d}), nil
}

var _ testgen.Generator = (*Generator)(nil)
