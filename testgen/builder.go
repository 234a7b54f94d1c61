package testgen

import (
	"strings"

	"github.com/teranos/acceptmark/spec"
)

// Unit is the input every fragment renders from.
type Unit struct {
	Spec    *spec.Spec
	Dialect Dialect
}

// Fragment renders one contiguous piece of a generated unit.
type Fragment func(u *Unit) string

// Builder concatenates fragments in order.
type Builder []Fragment

// Build renders every fragment for u.
func (b Builder) Build(u *Unit) string {
	var sb strings.Builder
	for _, f := range b {
		sb.WriteString(f(u))
	}
	return sb.String()
}
