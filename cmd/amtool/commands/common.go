// Package commands implements the amtool subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/acceptmark/am"
	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/logger"
	"github.com/teranos/acceptmark/spec"
	"github.com/teranos/acceptmark/spec/loader"
	"github.com/teranos/acceptmark/sym"
	"github.com/teranos/acceptmark/testgen"
)

// generationFlags are shared by generate, check and watch
type generationFlags struct {
	output  string
	dialect string
	jobs    int
	format  bool
	json    bool
}

func (f *generationFlags) register(cmd *cobra.Command, withJobs bool) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory (default: generate.output_dir, empty prints to stdout)")
	cmd.Flags().StringVarP(&f.dialect, "dialect", "d", "", `Swift version string, e.g. "swift2" or "Swift3.0" (default: generate.dialect)`)
	if withJobs {
		cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "Specifications generated concurrently (default: generate.jobs)")
		cmd.Flags().BoolVar(&f.format, "format", false, "Run format.command on every written file")
	}
	cmd.Flags().BoolVar(&f.json, "json", false, "Emit JSON logs")
}

// runSettings is the configuration of one run after flags are applied
type runSettings struct {
	Paths           []string
	Extensions      []string
	OutputDir       string
	Dialect         testgen.Resolution
	Jobs            int
	CreateOutputDir bool
	// Formatter is the formatter argv; nil when formatting is off
	Formatter []string
	Debounce  time.Duration
}

// resolveSettings layers the command's flags over the loaded configuration
func resolveSettings(cmd *cobra.Command, args []string, flags *generationFlags) (*runSettings, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, err
	}

	s := &runSettings{
		Paths:           args,
		Extensions:      cfg.Generate.Extensions,
		OutputDir:       cfg.Generate.OutputDir,
		Jobs:            cfg.Generate.Jobs,
		CreateOutputDir: cfg.Generate.CreateOutputDir,
		Debounce:        time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
	}
	if len(s.Paths) == 0 {
		s.Paths = []string{"."}
	}

	changed := cmd.Flags().Changed
	if changed("output") {
		s.OutputDir = flags.output
	}
	rawDialect := cfg.Generate.Dialect
	if changed("dialect") {
		rawDialect = flags.dialect
	}
	s.Dialect = testgen.ResolveDialect(rawDialect)
	if changed("jobs") {
		if flags.jobs < 1 {
			return nil, errors.Newf("--jobs must be >= 1, got %d", flags.jobs)
		}
		s.Jobs = flags.jobs
	}

	if cfg.Format.Enabled || flags.format {
		args, err := cfg.Format.Args()
		if err != nil {
			return nil, err
		}
		s.Formatter = args
	}

	return s, nil
}

// loadSpecs discovers and loads every document below paths. Documents that
// fail to load are reported in the returned error; the rest are returned.
func loadSpecs(paths, extensions []string) ([]*spec.Spec, error) {
	files, err := loader.Discover(paths, extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.WithHintf(
			errors.Newf("no specification documents found in %s", strings.Join(paths, ", ")),
			"documents are selected by extension: %s", strings.Join(extensions, " "))
	}

	logger.Debugw("Discovered specification documents", logger.FieldCount, len(files))
	return loader.LoadAll(files)
}

// warnDialect reports a dialect string that fell back to the default
func warnDialect(w io.Writer, r testgen.Resolution) {
	if !r.UsedDefault {
		return
	}
	logger.Warnw(r.Notice(), logger.FieldDialect, r.Raw)
	fmt.Fprintf(w, "%s %s\n", pterm.Yellow(sym.Warn), r.Notice())
}

// formatHook runs the formatter on a written file
func formatHook(ctx context.Context, argv []string) func(path string) error {
	return func(path string) error {
		c := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
		out, err := c.CombinedOutput()
		if err != nil {
			msg := strings.TrimSpace(string(out))
			if msg == "" {
				return errors.Wrapf(err, "formatter %s failed", argv[0])
			}
			return errors.Wrapf(err, "formatter %s failed: %s", argv[0], msg)
		}
		logger.Debugw("Formatted generated file",
			logger.FieldPath, path,
			logger.FieldCommand, argv[0])
		return nil
	}
}

// printFailure prints one failed item with any hints attached to its error
func printFailure(w io.Writer, name string, err error) {
	fmt.Fprintf(w, "%s %s: %v\n", pterm.Red(sym.Fail), name, err)
	if hints := errors.FlattenHints(err); hints != "" {
		for _, hint := range strings.Split(hints, "\n") {
			fmt.Fprintf(w, "  %s %s\n", pterm.Gray("hint:"), hint)
		}
	}
}

// commandContext returns the command's context, or Background when the
// command was executed without one
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
