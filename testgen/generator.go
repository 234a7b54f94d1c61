// Package testgen turns acceptance test specifications into test source files.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. A framework-agnostic driver (Generate, Check) that validates a batch of
//     specs, renders each one and persists it through a Writer
//  2. Framework-specific generators (xctest/) that render a single spec
//
// Generators build their output from an ordered list of fragments (Builder),
// so each piece of a unit can be tested on its own.
//
// # Design Decisions
//
//   - Output is a pure function of (spec, dialect). No timestamps and no map
//     iteration reach the rendered text, so `amtool check` can compare bytes.
//   - One failed spec never aborts the batch; failures are collected in the Report
//   - Specs whose prefix or output file collide are reported and skipped
//     before anything is written
//
// # Implementing a New Generator
//
//  1. Create package: testgen/<framework>/generator.go
//  2. Implement the Generator interface (see below)
//  3. Select it from the generate command in cmd/amtool/commands
//  4. Add golden tests under testgen/<framework>/testdata
package testgen

import "github.com/teranos/acceptmark/spec"

// Generator renders one specification as a complete source unit.
type Generator interface {
	// Emit validates s and renders it in dialect d. Nothing is rendered
	// when validation fails.
	Emit(s *spec.Spec, d Dialect) (string, error)

	// FileExtension returns the file extension of generated units (e.g. "swift")
	FileExtension() string

	// Language returns the target language name (e.g. "swift")
	Language() string
}
