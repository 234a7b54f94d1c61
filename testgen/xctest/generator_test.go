package xctest

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/spec"
	"github.com/teranos/acceptmark/testgen"
)

func calcAdd() *spec.Spec {
	return &spec.Spec{
		Namespace:  "Calc",
		TestName:   "Add",
		InputVars:  []spec.Variable{{Name: "a", Type: "Int"}, {Name: "b", Type: "Int"}},
		OutputVars: []spec.Variable{{Name: "sum", Type: "Int"}},
		Tests: []spec.TestCase{
			{
				Inputs:  []spec.Binding{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}},
				Outputs: []spec.Binding{{Name: "sum", Value: "3"}},
			},
		},
		DocumentationLines: []string{"| a:Int | b:Int || sum:Int |"},
		SourceDocumentName: "Calc.md",
		GeneratedFileName:  "Calc_AddTests.swift",
	}
}

func TestGeneratorMetadata(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "swift", g.Language())
	assert.Equal(t, "swift", g.FileExtension())
}

func TestEmitCalcAdd(t *testing.T) {
	src, err := NewGenerator().Emit(calcAdd(), testgen.Swift3)
	require.NoError(t, err)

	for _, want := range []string{
		"struct Calc_AddInput {\n\tlet a: Int\n\tlet b: Int\n}\n",
		"struct Calc_AddOutput: Equatable {\n\tlet sum: Int\n}\n",
		"protocol Calc_AddRunnable {\n\tfunc run(input: Calc_AddInput) throws -> Calc_AddOutput\n}\n",
		"class Calc_AddTests: XCTestCase {",
		"\tfunc testAdd_0() {\n",
		"\t\tlet input = Calc_AddInput(a: 1, b: 2)\n",
		"\t\tlet expected = Calc_AddOutput(sum: 3)\n",
		"\t\tlet result = try! testRunner.run(input: input)\n",
		"\t\tXCTAssertEqual(expected, result)\n",
		"func == (lhs: Calc_AddOutput, rhs: Calc_AddOutput) -> Bool {\n\treturn\n\t\tlhs.sum == rhs.sum\n}\n",
		"//class Calc_AddRunner : Calc_AddRunnable {\n",
		"//\t\t//return <Calc_AddOutput>\n",
	} {
		assert.Contains(t, src, want)
	}
	assert.True(t, strings.HasSuffix(src, "\n"))
}

func TestEmitDeterministic(t *testing.T) {
	g := NewGenerator()
	for _, d := range []testgen.Dialect{testgen.Swift2, testgen.Swift3} {
		first, err := g.Emit(calcAdd(), d)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := NewGenerator().Emit(calcAdd(), d)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestEmitDialectOnlyChangesCallSite(t *testing.T) {
	g := NewGenerator()
	s := calcAdd()
	s.Tests = append(s.Tests, s.Tests[0], s.Tests[0])

	swift2, err := g.Emit(s, testgen.Swift2)
	require.NoError(t, err)
	swift3, err := g.Emit(s, testgen.Swift3)
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(swift2, "try! testRunner.run(input)\n"))
	assert.Equal(t, 3, strings.Count(swift3, "try! testRunner.run(input: input)\n"))
	assert.Equal(t, swift3, strings.ReplaceAll(swift2, "run(input)\n", "run(input: input)\n"))
}

func TestEmitPreservesFieldOrder(t *testing.T) {
	s := &spec.Spec{
		Namespace:  "Order",
		TestName:   "Fields",
		InputVars:  []spec.Variable{{Name: "zeta", Type: "Int"}, {Name: "alpha", Type: "String"}, {Name: "mid", Type: "Double"}},
		OutputVars: []spec.Variable{{Name: "y", Type: "Bool"}, {Name: "b", Type: "Int"}},
		Tests: []spec.TestCase{{
			Inputs:  []spec.Binding{{Name: "zeta", Value: "1"}, {Name: "alpha", Value: `"x"`}, {Name: "mid", Value: "0.5"}},
			Outputs: []spec.Binding{{Name: "y", Value: "true"}, {Name: "b", Value: "2"}},
		}},
		GeneratedFileName: "Order_FieldsTests.swift",
	}

	src, err := NewGenerator().Emit(s, testgen.Swift3)
	require.NoError(t, err)

	assert.Contains(t, src, "\tlet zeta: Int\n\tlet alpha: String\n\tlet mid: Double\n")
	assert.Contains(t, src, "\tlet y: Bool\n\tlet b: Int\n")
	assert.Contains(t, src, `Order_FieldsInput(zeta: 1, alpha: "x", mid: 0.5)`)
	assert.Contains(t, src, "Order_FieldsOutput(y: true, b: 2)")
	assert.Contains(t, src, "\t\tlhs.y == rhs.y &&\n\t\tlhs.b == rhs.b\n}")
}

func TestEmitOneMethodPerCase(t *testing.T) {
	method := regexp.MustCompile(`(?m)^\tfunc testAdd_(\d+)\(\) \{$`)

	for _, n := range []int{0, 1, 4} {
		s := calcAdd()
		base := s.Tests[0]
		s.Tests = nil
		for i := 0; i < n; i++ {
			s.Tests = append(s.Tests, base)
		}

		src, err := NewGenerator().Emit(s, testgen.Swift3)
		require.NoError(t, err)

		matches := method.FindAllStringSubmatch(src, -1)
		require.Len(t, matches, n)
		for i, m := range matches {
			assert.Equal(t, strconv.Itoa(i), m[1], "methods are numbered in order")
		}
	}
}

func TestEmitZeroCasesStillDeclaresSuite(t *testing.T) {
	s := calcAdd()
	s.Tests = nil

	src, err := NewGenerator().Emit(s, testgen.Swift3)
	require.NoError(t, err)
	assert.Contains(t, src, "override func setUp()")
	assert.NotContains(t, src, "func testAdd_")
}

func TestEmitNoOutputs(t *testing.T) {
	s := calcAdd()
	s.OutputVars = nil
	s.Tests[0].Outputs = nil

	src, err := NewGenerator().Emit(s, testgen.Swift2)
	require.NoError(t, err)
	assert.Contains(t, src, "struct Calc_AddOutput: Equatable {\n}\n")
	assert.Contains(t, src, "let expected = Calc_AddOutput()\n")
	assert.Contains(t, src, "\treturn\n\t\ttrue\n}\n")
}

func TestEmitRejectsMalformed(t *testing.T) {
	s := calcAdd()
	s.Tests[0].Inputs = s.Tests[0].Inputs[:1]

	src, err := NewGenerator().Emit(s, testgen.Swift3)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedSpec(err))
	assert.Empty(t, src)
}

func TestHeader(t *testing.T) {
	s := calcAdd()
	s.DocumentationLines = []string{"# Add", "see /* nested */ comment"}

	got := header(&testgen.Unit{Spec: s})
	assert.Equal(t, "/*\n"+
		" * File Auto-Generated by AcceptanceMark - DO NOT EDIT\n"+
		" * input file: Calc.md\n"+
		" * generated file: Calc_AddTests.swift\n"+
		" *\n"+
		" * -- Test Specification --\n"+
		" *\n"+
		" * # Add\n"+
		" * see / * nested * / comment\n"+
		" */\n", got)
}

func TestRunArgument(t *testing.T) {
	assert.Equal(t, "input", runArgument(testgen.Swift2))
	assert.Equal(t, "input: input", runArgument(testgen.Swift3))
	assert.Equal(t, "input: input", runArgument(testgen.Dialect(0)))
}
