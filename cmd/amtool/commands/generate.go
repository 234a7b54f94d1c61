package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/internal/fileio"
	"github.com/teranos/acceptmark/logger"
	"github.com/teranos/acceptmark/spec"
	"github.com/teranos/acceptmark/sym"
	"github.com/teranos/acceptmark/testgen"
	"github.com/teranos/acceptmark/testgen/xctest"
)

var generateFlags generationFlags

// GenerateCmd generates XCTest sources from specification documents
var GenerateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: sym.Short("generate", "Generate XCTest sources from specification documents"),
	Long: `Generate one Swift XCTest file per specification.

Paths may be documents or directories; directories are searched recursively
for the extensions in generate.extensions. With no paths the current
directory is used.

Each file is written atomically to the output directory. Without an output
directory the generated sources are printed to stdout, each preceded by a
"// File:" banner.

A specification that is malformed, collides with another one or cannot be
written is reported and skipped; the others are still generated. The exit
status is 1 when anything failed.

Examples:
  amtool generate specs/                        # Print to stdout
  amtool generate -o Tests/Generated specs/     # Write files
  amtool generate -d Swift2.3 -o out specs/     # Legacy call syntax
  amtool generate -j 8 --format -o out specs/   # Parallel, then swiftformat`,
	RunE: runGenerate,
}

func init() {
	generateFlags.register(GenerateCmd, true)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd, args, &generateFlags)
	if err != nil {
		return err
	}

	specs, loadErr := loadSpecs(settings.Paths, settings.Extensions)
	if loadErr != nil && len(specs) == 0 {
		return loadErr
	}

	report, err := generate(commandContext(cmd), settings, specs, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if report.Failed() {
		err := errors.Newf("%d of %d specifications failed", len(report.Failures()), len(report.Items))
		if loadErr != nil {
			return errors.Join(loadErr, err)
		}
		return err
	}
	return loadErr
}

// generate runs the batch driver and prints one status line per item.
// Status goes to stdout when writing files and to stderr in stdout mode,
// where stdout carries the generated sources.
func generate(ctx context.Context, s *runSettings, specs []*spec.Spec, stdout, stderr io.Writer) (*testgen.Report, error) {
	warnDialect(stderr, s.Dialect)

	opts := testgen.Options{
		OutputDir: s.OutputDir,
		Dialect:   s.Dialect.Dialect,
		Generator: xctest.NewGenerator(),
		Jobs:      s.Jobs,
	}

	status := stdout
	toStdout := s.OutputDir == ""
	if toStdout {
		status = stderr
		// units are printed in input order
		opts.Jobs = 1
		opts.Writer = bannerWriter{w: stdout}
	} else {
		opts.Writer = fileio.AtomicWriter{MkdirAll: s.CreateOutputDir}
		if s.Formatter != nil {
			opts.AfterWrite = formatHook(ctx, s.Formatter)
		}
	}

	report, err := testgen.Generate(ctx, specs, opts)
	if err != nil {
		return nil, err
	}

	for _, item := range report.Items {
		if item.OK() {
			if !toStdout {
				fmt.Fprintf(status, "%s %s\n", pterm.LightGreen(sym.OK), item.Path)
			}
			continue
		}
		printFailure(status, item.Spec.Prefix(), item.Err)
	}
	fmt.Fprintf(status, "Generated %d of %d specifications (%s) in %dms\n",
		len(report.Written()), len(report.Items), s.Dialect.Dialect, report.Duration.Milliseconds())

	return report, nil
}

// bannerWriter prints each unit to w, preceded by its file name
type bannerWriter struct {
	w io.Writer
}

func (b bannerWriter) WriteText(path, content string) error {
	if _, err := fmt.Fprintf(b.w, "// File: %s\n%s\n", path, content); err != nil {
		return errors.WrapWriteFailure(err, path)
	}
	logger.Debugw("Printed generated unit", logger.FieldFile, path)
	return nil
}
