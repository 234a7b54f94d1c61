package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/acceptmark/display"
	"github.com/teranos/acceptmark/testgen"
	"github.com/teranos/acceptmark/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show amtool version information",
	Long:  `Display version, build time, commit hash, platform and supported dialects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get(testgen.Swift2.String(), testgen.Swift3.String())
		out := cmd.OutOrStdout()

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(out, info)
		}

		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		fmt.Fprintf(out, "Dialects: %s (default %s)\n", strings.Join(info.Dialects, ", "), testgen.DefaultDialect)
		return nil
	},
}

func init() {
	VersionCmd.Flags().Bool("json", false, "Output version info as JSON")
}
