package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across acceptmark.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Generation
	FieldSpec     = "spec"     // identifier prefix, e.g. Calc_Add
	FieldDocument = "document" // originating document name
	FieldDialect  = "dialect"
	FieldCase     = "case"
	FieldTests    = "tests"

	// Files and paths
	FieldPath      = "path"
	FieldOutputDir = "output_dir"
	FieldFile      = "file"
	FieldLine      = "line"

	// Operations
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldCommand   = "command"

	// Timing and counts
	FieldDurationMS = "duration_ms"
	FieldCount      = "count"
	FieldFailed     = "failed"

	// Errors
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type SpecWatcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewSpecWatcher() *SpecWatcher {
//	    return &SpecWatcher{
//	        logger: logger.ComponentLogger("watch"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	specLogger := logger.ChildLogger(baseLogger, logger.FieldSpec, s.Prefix())
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
