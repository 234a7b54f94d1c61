package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/logger"
	"github.com/teranos/acceptmark/sym"
	"github.com/teranos/acceptmark/watch"
)

var watchFlags generationFlags

// WatchCmd regenerates sources whenever a specification document changes
var WatchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: sym.Short("watch", "Regenerate XCTest sources when specification documents change"),
	Long: `Generate once, then watch the given documents and directories and
regenerate after every change until interrupted.

Changes are debounced (watch.debounce_ms, default 300). A failed
regeneration is reported and watching continues.

Examples:
  amtool watch -o Tests/Generated specs/`,
	RunE: runWatch,
}

func init() {
	watchFlags.register(WatchCmd, true)
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd, args, &watchFlags)
	if err != nil {
		return err
	}
	if settings.OutputDir == "" {
		return errors.WithHint(
			errors.New("watch needs an output directory"),
			"pass --output or set generate.output_dir in acceptmark.toml")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	rebuild := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			logger.Infow("Specification documents changed", logger.FieldCount, len(changed), logger.FieldFile, changed[0])
		}
		specs, loadErr := loadSpecs(settings.Paths, settings.Extensions)
		if loadErr != nil {
			printFailure(errOut, "load", loadErr)
		}
		report, err := generate(ctx, settings, specs, out, errOut)
		if err != nil {
			return err
		}
		if loadErr != nil {
			return loadErr
		}
		return report.Err()
	}

	sw, err := watch.NewSpecWatcher(settings.Paths, settings.Extensions, settings.Debounce, rebuild)
	if err != nil {
		return err
	}

	logger.Infow("Watching specification documents",
		logger.FieldCount, len(settings.Paths),
		logger.FieldOutputDir, settings.OutputDir)
	return sw.Run(ctx)
}
