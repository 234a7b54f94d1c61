package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/acceptmark/am"
	"github.com/teranos/acceptmark/display"
	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/sym"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: sym.Short("am", "Manage amtool configuration"),
	Long: sym.AM + ` am: manage amtool configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (AMTOOL_* prefix, e.g. AMTOOL_GENERATE_DIALECT)
3. Project config (acceptmark.toml, searched upward from the working directory)
4. Default values

Examples:
  amtool am show                          # Show effective configuration
  amtool am show --sources                # Show where each setting comes from
  amtool am init                          # Write acceptmark.toml with defaults
  amtool am set generate.dialect swift2   # Change one setting`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective configuration after defaults, acceptmark.toml and AMTOOL_* are applied",
	RunE:  runAmShow,
}

var amInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write acceptmark.toml with every default",
	Long: `Write acceptmark.toml in the working directory holding every default.
An existing file is kept unless --force is given; it is then backed up to
acceptmark.toml.back1 (older backups rotate up to .back3).`,
	Args: cobra.NoArgs,
	RunE: runAmInit,
}

var amSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Long: `Set one configuration value in the project acceptmark.toml (created in the
working directory when none is found). The file is only written when the
result is a valid configuration.

Values are read as integers, booleans or comma-separated lists where they
parse as such, and as strings otherwise.

Examples:
  amtool am set generate.output_dir Tests/Generated
  amtool am set generate.jobs 4
  amtool am set generate.extensions .md,.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runAmSet,
}

var (
	configFormat string
	showSources  bool
	initForce    bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", display.FormatTOML, "Output format: toml, json, yaml")
	amShowCmd.Flags().BoolVar(&showSources, "sources", false, "Show the source of every setting")
	amInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing acceptmark.toml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amInitCmd)
	AmCmd.AddCommand(amSetCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	if showSources {
		return showConfigSources(cmd.OutOrStdout())
	}

	cfg, err := am.Load()
	if err != nil {
		return err
	}
	data, err := display.Marshal(cfg, configFormat)
	if err != nil {
		return err
	}
	if configFormat != display.FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout(), "# amtool configuration")
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func showConfigSources(out io.Writer) error {
	settings, err := am.GetConfigIntrospection()
	if err != nil {
		return err
	}

	if path := am.ConfigFileUsed(); path != "" {
		fmt.Fprintf(out, "Project config: %s\n\n", path)
	} else {
		fmt.Fprintf(out, "Project config: none (no %s found)\n\n", am.ConfigFileName)
	}

	for _, s := range settings {
		value := fmt.Sprintf("%v", s.Value)
		if len(value) > 50 {
			value = value[:47] + "..."
		}
		label := pterm.Gray(string(s.Source))
		switch s.Source {
		case am.SourceProject:
			label = pterm.LightCyan(string(s.Source))
		case am.SourceEnvironment:
			label = pterm.Yellow(string(s.Source) + " " + s.SourcePath)
		}
		fmt.Fprintf(out, "  %s = %s  [%s]\n", s.Key, value, label)
	}
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}
	path := filepath.Join(wd, am.ConfigFileName)
	if err := am.WriteDefault(path, initForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", pterm.LightGreen(sym.OK), path)
	return nil
}

func runAmSet(cmd *cobra.Command, args []string) error {
	path, err := projectConfigTarget()
	if err != nil {
		return err
	}
	key, value := args[0], am.ParseValue(args[1])
	if err := am.SetValue(path, key, value); err != nil {
		return err
	}
	am.Reset()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %v (%s)\n", pterm.LightGreen(sym.OK), key, value, path)
	return nil
}

// projectConfigTarget returns the nearest acceptmark.toml, or the path a new
// one would get in the working directory
func projectConfigTarget() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}
	if path := am.FindProjectConfig(wd); path != "" {
		return path, nil
	}
	return filepath.Join(wd, am.ConfigFileName), nil
}
