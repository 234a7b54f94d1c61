package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/spec"
	"github.com/teranos/acceptmark/sym"
	"github.com/teranos/acceptmark/testgen"
	"github.com/teranos/acceptmark/testgen/xctest"
)

var checkFlags generationFlags

// CheckCmd checks that generated sources match their specifications
var CheckCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: sym.Short("check", "Check that generated sources are up to date"),
	Long: `Render every specification in memory and compare it with the file in the
output directory. Nothing is written.

Exit codes:
  0 - Generated sources are up to date
  1 - A file is stale, missing or could not be rendered

Examples:
  amtool check -o Tests/Generated specs/   # In CI, after amtool generate`,
	RunE: runCheck,
}

func init() {
	checkFlags.register(CheckCmd, false)
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd, args, &checkFlags)
	if err != nil {
		return err
	}
	if settings.OutputDir == "" {
		return errors.WithHint(
			errors.New("check needs an output directory"),
			"pass --output or set generate.output_dir in acceptmark.toml")
	}

	specs, loadErr := loadSpecs(settings.Paths, settings.Extensions)
	if loadErr != nil && len(specs) == 0 {
		return loadErr
	}

	result, err := check(commandContext(cmd), settings, specs, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if loadErr != nil {
		return errors.Join(loadErr, result.Err())
	}
	return result.Err()
}

func check(ctx context.Context, s *runSettings, specs []*spec.Spec, out io.Writer) (*testgen.CheckResult, error) {
	warnDialect(out, s.Dialect)

	result, err := testgen.Check(ctx, specs, testgen.Options{
		OutputDir: s.OutputDir,
		Dialect:   s.Dialect.Dialect,
		Generator: xctest.NewGenerator(),
	})
	if err != nil {
		return nil, err
	}

	if result.UpToDate {
		fmt.Fprintf(out, "%s %d generated files are up to date\n", pterm.LightGreen(sym.OK), len(specs))
		return result, nil
	}

	fmt.Fprintf(out, "%s Generated sources are out of date.\n", pterm.Red(sym.Fail))
	for _, path := range result.Stale {
		fmt.Fprintf(out, "  %s %s\n", pterm.Yellow("stale:  "), path)
	}
	for _, path := range result.Missing {
		fmt.Fprintf(out, "  %s %s\n", pterm.Yellow("missing:"), path)
	}
	for _, item := range result.Failed {
		printFailure(out, item.Spec.Prefix(), item.Err)
	}
	return result, nil
}
