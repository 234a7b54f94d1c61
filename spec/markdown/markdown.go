// Package markdown parses AcceptanceMark documents.
//
// A document is ordinary markdown. Every heading that is followed by a table
// becomes one specification:
//
//	---
//	namespace: Calc
//	types: Int
//	---
//	# Add
//	| a:Int | b:Int || sum:Int |
//	| ----- | ----- || ------- |
//	| 1     | 2     || 3       |
//
// Header cells are "name:Type" (or just "name", typed with the front matter
// default). An empty cell splits inputs from outputs. The row right after
// the header may be a |---| alignment row; every later row is a test case.
package markdown

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/spec"
)

// DefaultType is used for header cells that carry no explicit type.
const DefaultType = "String"

// FrontMatter holds the optional YAML block at the top of a document.
type FrontMatter struct {
	// Namespace overrides the namespace derived from the file name
	Namespace string `yaml:"namespace"`
	// Types is the default type for untyped columns
	Types string `yaml:"types"`
}

var (
	nonIdentifier   = regexp.MustCompile(`[^A-Za-z0-9_]`)
	identifierStart = regexp.MustCompile(`^[A-Za-z_]`)
	alignmentCell   = regexp.MustCompile(`^:?-+:?$`)
)

// ParseFile reads and parses the document at path.
func ParseFile(path string) ([]*spec.Spec, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Parse(filepath.Base(path), content)
}

// NamespaceFromName derives a namespace from a document name: the base name
// up to its first dot, reduced to identifier characters.
func NamespaceFromName(name string) string {
	base := filepath.Base(name)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return nonIdentifier.ReplaceAllString(base, "")
}

// Parse parses one document. name is recorded as the source document name of
// every produced spec and used to derive the default namespace.
//
// Errors in the document as a whole return no specs. An error in one
// section only drops that section: the specs of the other sections are
// returned together with the joined section errors.
func Parse(name string, content []byte) ([]*spec.Spec, error) {
	lines := strings.Split(string(bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))), "\n")

	fm, bodyStart, err := parseFrontMatter(name, lines)
	if err != nil {
		return nil, err
	}

	p := &parser{
		document:    name,
		namespace:   NamespaceFromName(name),
		defaultType: DefaultType,
	}
	if fm.Namespace != "" {
		p.namespace = fm.Namespace
	}
	if fm.Types != "" {
		p.defaultType = fm.Types
	}
	if p.namespace == "" {
		return nil, errors.NewMalformedSpecError("%s: cannot derive a namespace from the document name", name)
	}
	if !identifierStart.MatchString(p.namespace) {
		return nil, errors.WithHint(
			errors.NewMalformedSpecError("%s:1: namespace %q does not start with a letter or underscore", name, p.namespace),
			"rename the document or set namespace: in the front matter")
	}

	return p.parse(lines, bodyStart)
}

// parseFrontMatter decodes a leading "---" delimited YAML block. It returns
// the index of the first body line.
func parseFrontMatter(name string, lines []string) (FrontMatter, int, error) {
	var fm FrontMatter
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, 0, nil
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "---" {
			continue
		}
		block := strings.Join(lines[1:i], "\n")
		if strings.TrimSpace(block) != "" {
			dec := yaml.NewDecoder(strings.NewReader(block))
			dec.KnownFields(true)
			if err := dec.Decode(&fm); err != nil {
				return fm, 0, errors.Wrapf(errors.Mark(err, errors.ErrMalformedSpec), "%s: failed to parse front matter", name)
			}
		}
		return fm, i + 1, nil
	}

	return fm, 0, errors.NewMalformedSpecError("%s:1: front matter is not closed", name)
}

type parser struct {
	document    string
	namespace   string
	defaultType string
}

// section is a heading and the table lines that follow it
type section struct {
	heading     string
	headingLine int
	table       []string
	tableLines  []int
}

func (p *parser) parse(lines []string, start int) ([]*spec.Spec, error) {
	var (
		sections []*section
		current  *section
		fenced   bool
	)

	for i := start; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")
		trimmed := strings.TrimSpace(line)
		lineNo := i + 1

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
			continue
		}
		if fenced {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "#"):
			current = &section{heading: line, headingLine: lineNo}
			sections = append(sections, current)
		case strings.HasPrefix(trimmed, "|"):
			if current == nil {
				return nil, errors.NewMalformedSpecError("%s:%d: table has no heading", p.document, lineNo)
			}
			if len(current.table) > 0 && current.tableLines[len(current.tableLines)-1] != lineNo-1 {
				return nil, errors.NewMalformedSpecError("%s:%d: heading %q has more than one table",
					p.document, lineNo, strings.TrimSpace(current.heading))
			}
			current.table = append(current.table, line)
			current.tableLines = append(current.tableLines, lineNo)
		}
	}

	var (
		specs []*spec.Spec
		errs  []error
	)
	for _, sec := range sections {
		if len(sec.table) == 0 {
			// prose heading
			continue
		}
		s, err := p.buildSpec(sec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		specs = append(specs, s)
	}
	switch len(errs) {
	case 0:
		return specs, nil
	case 1:
		return specs, errs[0]
	default:
		return specs, errors.Join(errs...)
	}
}

func (p *parser) buildSpec(sec *section) (*spec.Spec, error) {
	testName := nonIdentifier.ReplaceAllString(strings.TrimLeft(strings.TrimSpace(sec.heading), "#"), "")
	if testName == "" {
		return nil, errors.NewMalformedSpecError("%s:%d: heading yields an empty test name", p.document, sec.headingLine)
	}

	header := splitRow(sec.table[0])
	split := -1
	for i, cell := range header {
		if cell == "" {
			split = i
			break
		}
	}
	if split < 0 {
		return nil, errors.WithHint(
			errors.NewMalformedSpecError("%s:%d: header has no empty cell separating inputs from outputs", p.document, sec.tableLines[0]),
			"write the header as | in1 | in2 || out1 |")
	}

	inputs, err := p.columns(header[:split], sec.tableLines[0])
	if err != nil {
		return nil, err
	}
	outputs, err := p.columns(header[split+1:], sec.tableLines[0])
	if err != nil {
		return nil, err
	}

	s := &spec.Spec{
		Namespace:          p.namespace,
		TestName:           testName,
		InputVars:          inputs,
		OutputVars:         outputs,
		SourceDocumentName: p.document,
	}
	s.GeneratedFileName = spec.DefaultFileName(s.Prefix())
	s.DocumentationLines = append([]string{sec.heading}, sec.table...)

	first := 1
	if len(sec.table) > 1 && isAlignmentRow(splitRow(sec.table[1])) {
		first = 2
	}
	for r := first; r < len(sec.table); r++ {
		lineNo := sec.tableLines[r]
		cells := splitRow(sec.table[r])
		if len(cells) != len(header) {
			return nil, errors.NewMalformedSpecError("%s:%d: row has %d cells, header has %d",
				p.document, lineNo, len(cells), len(header))
		}

		tc := spec.TestCase{Name: "line " + strconv.Itoa(lineNo)}
		if tc.Inputs, err = p.bindings(inputs, cells[:split], lineNo); err != nil {
			return nil, err
		}
		if tc.Outputs, err = p.bindings(outputs, cells[split+1:], lineNo); err != nil {
			return nil, err
		}
		s.Tests = append(s.Tests, tc)
	}

	return s, nil
}

func (p *parser) columns(cells []string, lineNo int) ([]spec.Variable, error) {
	vars := make([]spec.Variable, 0, len(cells))
	for _, cell := range cells {
		name, typ, _ := strings.Cut(cell, ":")
		name = strings.TrimSpace(name)
		typ = strings.TrimSpace(typ)
		if name == "" {
			return nil, errors.NewMalformedSpecError("%s:%d: column %q has no name", p.document, lineNo, cell)
		}
		if typ == "" {
			typ = p.defaultType
		}
		vars = append(vars, spec.Variable{Name: name, Type: typ})
	}
	return vars, nil
}

func (p *parser) bindings(vars []spec.Variable, cells []string, lineNo int) ([]spec.Binding, error) {
	out := make([]spec.Binding, len(vars))
	for i, v := range vars {
		value, err := FormatLiteral(v.Type, cells[i])
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: column %q", p.document, lineNo, v.Name)
		}
		out[i] = spec.Binding{Name: v.Name, Value: value}
	}
	return out, nil
}

// FormatLiteral turns a table cell into a Swift literal for the given type.
// String cells are quoted unless they already are; every other type is
// copied verbatim and must not be empty. Cells must be valid UTF-8.
func FormatLiteral(typ, cell string) (string, error) {
	cell = strings.TrimSpace(cell)
	if !utf8.ValidString(cell) {
		return "", errors.NewMalformedSpecError("value %q is not valid UTF-8", cell)
	}
	if typ == "String" {
		if len(cell) >= 2 && strings.HasPrefix(cell, `"`) && strings.HasSuffix(cell, `"`) {
			return cell, nil
		}
		return QuoteSwift(cell), nil
	}
	if cell == "" {
		return "", errors.NewMalformedSpecError("empty value for type %s", typ)
	}
	if alignmentCell.MatchString(cell) {
		return "", errors.NewMalformedSpecError("value %q for type %s is a table alignment marker", cell, typ)
	}
	return cell, nil
}

// QuoteSwift returns s as a Swift string literal. Non-printable runes use
// the \u{...} form, the only numeric escape Swift has. s must be valid UTF-8.
func QuoteSwift(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if strconv.IsPrint(r) {
				sb.WriteRune(r)
			} else {
				fmt.Fprintf(&sb, `\u{%x}`, r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// splitRow splits a table row into trimmed cells, dropping the outer pipes.
// Escaped pipes (\|) stay inside their cell.
func splitRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	if strings.HasSuffix(row, "|") && !strings.HasSuffix(row, `\|`) {
		row = row[:len(row)-1]
	}

	var (
		cells []string
		cell  strings.Builder
	)
	for i := 0; i < len(row); i++ {
		switch {
		case row[i] == '\\' && i+1 < len(row) && row[i+1] == '|':
			cell.WriteByte('|')
			i++
		case row[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(row[i])
		}
	}
	return append(cells, strings.TrimSpace(cell.String()))
}

// isAlignmentRow reports whether every non-empty cell is a |---| marker
func isAlignmentRow(cells []string) bool {
	seen := false
	for _, c := range cells {
		if c == "" {
			continue
		}
		if !alignmentCell.MatchString(c) {
			return false
		}
		seen = true
	}
	return seen
}
