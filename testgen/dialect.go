package testgen

import (
	"fmt"
	"strings"
)

// Dialect selects the syntax variant of the target test framework.
// The zero value is the default dialect.
type Dialect int

const (
	// Swift3 calls the runner with a labelled argument: run(input: input)
	Swift3 Dialect = iota
	// Swift2 calls the runner positionally: run(input)
	Swift2
)

// DefaultDialect is used when a dialect string is not recognized.
const DefaultDialect = Swift3

func (d Dialect) String() string {
	switch d {
	case Swift2:
		return "swift2"
	case Swift3:
		return "swift3"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

// Resolution is the outcome of resolving a free-form dialect string.
type Resolution struct {
	Dialect Dialect
	// UsedDefault is set when Raw matched no known dialect
	UsedDefault bool
	Raw         string
}

// Notice describes the fallback for an unrecognized string, or returns ""
// when the string was recognized.
func (r Resolution) Notice() string {
	if !r.UsedDefault {
		return ""
	}
	return fmt.Sprintf("unrecognized dialect %q, defaulting to %s", r.Raw, DefaultDialect)
}

// ResolveDialect maps a version string such as "Swift2.3" or "swift3" to a
// Dialect. Matching is a case-insensitive substring test and "swift2" is
// checked first, so a string naming both resolves to Swift2. Resolution
// never fails; anything else yields DefaultDialect with UsedDefault set.
func ResolveDialect(raw string) Resolution {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "swift2"):
		return Resolution{Dialect: Swift2, Raw: raw}
	case strings.Contains(lower, "swift3"):
		return Resolution{Dialect: Swift3, Raw: raw}
	default:
		return Resolution{Dialect: DefaultDialect, UsedDefault: true, Raw: raw}
	}
}
