package xctest

import (
	"fmt"
	"strings"

	"github.com/teranos/acceptmark/spec"
	"github.com/teranos/acceptmark/testgen"
)

// commentSafe breaks up comment delimiters so documentation cannot open or
// close the header comment
var commentSafe = strings.NewReplacer("/*", "/ *", "*/", "* /")

func header(u *testgen.Unit) string {
	var sb strings.Builder
	sb.WriteString("/*\n")
	sb.WriteString(" * File Auto-Generated by AcceptanceMark - DO NOT EDIT\n")
	fmt.Fprintf(&sb, " * input file: %s\n", u.Spec.SourceDocumentName)
	fmt.Fprintf(&sb, " * generated file: %s\n", u.Spec.GeneratedFileName)
	sb.WriteString(" *\n")
	sb.WriteString(" * -- Test Specification --\n")
	sb.WriteString(" *\n")
	for _, line := range u.Spec.DocumentationLines {
		fmt.Fprintf(&sb, " * %s\n", commentSafe.Replace(line))
	}
	sb.WriteString(" */\n")
	return sb.String()
}

func imports(*testgen.Unit) string {
	return "import XCTest\n\n"
}

func fields(vars []spec.Variable) string {
	var sb strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&sb, "\tlet %s: %s\n", v.Name, v.Type)
	}
	return sb.String()
}

func inputStruct(u *testgen.Unit) string {
	return "struct " + u.Spec.InputTypeName() + " {\n" + fields(u.Spec.InputVars) + "}\n\n"
}

func outputStruct(u *testgen.Unit) string {
	return "struct " + u.Spec.OutputTypeName() + ": Equatable {\n" + fields(u.Spec.OutputVars) + "}\n\n"
}

func runnableProtocol(u *testgen.Unit) string {
	s := u.Spec
	return "protocol " + s.RunnableName() + " {\n" +
		"\tfunc run(input: " + s.InputTypeName() + ") throws -> " + s.OutputTypeName() + "\n" +
		"}\n"
}

// runArgument is the call-site argument passed to the runner
func runArgument(d testgen.Dialect) string {
	if d == testgen.Swift2 {
		return "input"
	}
	return "input: input"
}

func testMethod(s *spec.Spec, d testgen.Dialect, i int, tc spec.TestCase) string {
	// try! keeps a throwing runner fatal to the test process
	return fmt.Sprintf("\tfunc test%s_%d() {\n", s.TestName, i) +
		"\t\tlet input = " + s.InputTypeName() + "(" + s.InputParametersList(tc) + ")\n" +
		"\t\tlet expected = " + s.OutputTypeName() + "(" + s.OutputParametersList(tc) + ")\n" +
		"\t\tlet result = try! testRunner.run(" + runArgument(d) + ")\n" +
		"\t\tXCTAssertEqual(expected, result)\n" +
		"\t}\n\n"
}

func testCaseClass(u *testgen.Unit) string {
	s := u.Spec

	var sb strings.Builder
	sb.WriteString("class " + s.TestsName() + ": XCTestCase {\n")
	sb.WriteString("\n")
	sb.WriteString("\tvar testRunner: " + s.RunnableName() + "!\n")
	sb.WriteString("\n")
	sb.WriteString("\toverride func setUp() {\n")
	sb.WriteString("\t\t// MARK: Implement the " + s.RunnerName() + " class!\n")
	sb.WriteString("\t\ttestRunner = " + s.RunnerName() + "()\n")
	sb.WriteString("\t}\n")
	sb.WriteString("\n")
	for i, tc := range s.Tests {
		sb.WriteString(testMethod(s, u.Dialect, i, tc))
	}
	sb.WriteString("}\n\n")
	return sb.String()
}

func equalityOperator(u *testgen.Unit) string {
	s := u.Spec

	checks := make([]string, len(s.OutputVars))
	for i, v := range s.OutputVars {
		checks[i] = "\t\tlhs." + v.Name + " == rhs." + v.Name
	}
	body := strings.Join(checks, " &&\n")
	if len(checks) == 0 {
		// a bare return would not compile
		body = "\t\ttrue"
	}

	return "func == (lhs: " + s.OutputTypeName() + ", rhs: " + s.OutputTypeName() + ") -> Bool {\n" +
		"\treturn\n" +
		body + "\n" +
		"}\n"
}

func sampleRunner(u *testgen.Unit) string {
	s := u.Spec
	return "//\n" +
		"//// You need to create a test runner. Sample runner:\n" +
		"//class " + s.RunnerName() + " : " + s.RunnableName() + " {\n" +
		"//\n" +
		"//\tfunc run(input: " + s.InputTypeName() + ") throws -> " + s.OutputTypeName() + " {\n" +
		"//\t\t//return <" + s.OutputTypeName() + ">\n" +
		"//\t}\n" +
		"//}\n" +
		"//\n"
}
