package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/acceptmark/am"
	"github.com/teranos/acceptmark/cmd/amtool/commands"
	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/logger"
)

var rootCmd = &cobra.Command{
	Use:   "amtool",
	Short: "amtool - XCTest generator for AcceptanceMark specifications",
	Long: `amtool turns AcceptanceMark specification documents into Swift XCTest
sources. Every table in a document becomes one test class with one test
method per row, plus the input/output types and runner protocol the tests
call into.

Available commands:
  generate - Generate XCTest sources (stdout or an output directory)
  check    - Verify generated sources are up to date
  watch    - Regenerate on every document change
  am       - Manage amtool configuration ("I am")
  version  - Show version information

Examples:
  amtool generate -o Tests/Generated specs/
  amtool check -o Tests/Generated specs/
  amtool am init`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := am.Load()
		if err != nil {
			// am subcommands must still run to repair a broken acceptmark.toml
			if cmd.Parent() != commands.AmCmd {
				return err
			}
			cfg = am.DefaultConfig()
		}

		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs := cfg.Log.JSON
		if cmd != commands.VersionCmd {
			if v, err := cmd.Flags().GetBool("json"); err == nil && v {
				jsonLogs = true
			}
		}

		logger.SetTheme(cfg.Log.Theme)
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Debugw("Configuration loaded", logger.FieldPath, am.ConfigFileUsed())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hints := errors.FlattenHints(err); hints != "" {
			for _, hint := range strings.Split(hints, "\n") {
				fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
			}
		}
		os.Exit(1)
	}
}
