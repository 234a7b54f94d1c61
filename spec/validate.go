package spec

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/teranos/acceptmark/errors"
)

var (
	identifier     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	identifierTail = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Validate checks the structural invariants a generator relies on.
// It returns an error wrapping errors.ErrMalformedSpec describing the first
// violation; emission must not proceed when it fails.
func (s *Spec) Validate() error {
	if s.Namespace == "" || s.TestName == "" {
		return errors.NewMalformedSpecError("%s: namespace and test name are required (got %q, %q)",
			s.where(), s.Namespace, s.TestName)
	}
	// the namespace starts every emitted type name; the test name only follows it
	if !identifier.MatchString(s.Namespace) {
		return errors.NewMalformedSpecError("%s: namespace %q is not a valid identifier", s.where(), s.Namespace)
	}
	if !identifierTail.MatchString(s.TestName) {
		return errors.NewMalformedSpecError("%s: test name %q may only contain letters, digits and underscores",
			s.where(), s.TestName)
	}

	if err := checkUnique(s.InputVars, "input"); err != nil {
		return errors.Wrap(err, s.where())
	}
	if err := checkUnique(s.OutputVars, "output"); err != nil {
		return errors.Wrap(err, s.where())
	}

	for i, tc := range s.Tests {
		if err := checkBindings(s.InputVars, tc.Inputs, "input"); err != nil {
			return errors.Wrapf(err, "%s: %s", s.where(), caseLabel(i, tc))
		}
		if err := checkBindings(s.OutputVars, tc.Outputs, "output"); err != nil {
			return errors.Wrapf(err, "%s: %s", s.where(), caseLabel(i, tc))
		}
	}

	return nil
}

// where identifies the spec in error messages
func (s *Spec) where() string {
	if s.SourceDocumentName == "" {
		return "spec " + s.Prefix()
	}
	return fmt.Sprintf("spec %s (%s)", s.Prefix(), s.SourceDocumentName)
}

func caseLabel(i int, tc TestCase) string {
	if tc.Name == "" {
		return fmt.Sprintf("test case %d", i)
	}
	return fmt.Sprintf("test case %d %q", i, tc.Name)
}

func checkUnique(vars []Variable, kind string) error {
	seen := make(map[string]bool, len(vars))
	for i, v := range vars {
		if v.Name == "" {
			return errors.NewMalformedSpecError("%s variable %d has no name", kind, i)
		}
		if seen[v.Name] {
			return errors.NewMalformedSpecError("%s variable %q declared more than once", kind, v.Name)
		}
		seen[v.Name] = true
	}
	return nil
}

// checkBindings requires one binding per declared variable, in declaration order
func checkBindings(vars []Variable, bindings []Binding, kind string) error {
	for i, v := range vars {
		if i >= len(bindings) {
			return errors.NewMalformedSpecError("missing %s binding for %q (got %d of %d)",
				kind, v.Name, len(bindings), len(vars))
		}
		if bindings[i].Name != v.Name {
			return errors.NewMalformedSpecError("%s binding %d is %q, expected %q",
				kind, i, bindings[i].Name, v.Name)
		}
	}
	if len(bindings) > len(vars) {
		return errors.NewMalformedSpecError("unexpected %s binding %q (declared %d %s variables)",
			kind, bindings[len(vars)].Name, len(vars), kind)
	}
	return nil
}

// ValidateBatch reports specifications whose identifier prefix or output
// file name collides with another one in the same batch. The returned map
// holds one error per colliding spec index; the joined error summarizes all
// collisions and is nil when there are none. File names are compared without
// regard to case, since the default macOS filesystem is case-insensitive.
func ValidateBatch(specs []*Spec) (map[int]error, error) {
	byPrefix := make(map[string][]int)
	byFile := make(map[string][]int)
	for i, s := range specs {
		byPrefix[s.Prefix()] = append(byPrefix[s.Prefix()], i)
		key := strings.ToLower(s.GeneratedFileName)
		byFile[key] = append(byFile[key], i)
	}

	perSpec := make(map[int]error)
	var all []error

	report := func(groups map[string][]int, what string, label func(i int) string) {
		keys := make([]string, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			idx := groups[key]
			if len(idx) < 2 {
				continue
			}
			docs := make([]string, len(idx))
			for j, i := range idx {
				docs[j] = specs[i].SourceDocumentName
			}
			err := errors.NewDuplicatePrefixError("%s %q is produced by %d specifications %q",
				what, label(idx[0]), len(idx), docs)
			all = append(all, err)
			for _, i := range idx {
				if _, done := perSpec[i]; !done {
					perSpec[i] = err
				}
			}
		}
	}

	report(byPrefix, "identifier prefix", func(i int) string { return specs[i].Prefix() })
	report(byFile, "output file", func(i int) string { return specs[i].GeneratedFileName })

	if len(all) == 0 {
		return nil, nil
	}
	return perSpec, errors.Join(all...)
}
