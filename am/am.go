// Package am loads the amtool configuration.
//
// Settings come from, lowest precedence first: built-in defaults, the
// nearest acceptmark.toml found by walking up from the working directory,
// and AMTOOL_* environment variables (AMTOOL_GENERATE_DIALECT, ...).
// Command-line flags override all of them and are applied by the commands.
package am

// Config represents the amtool configuration
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Format   FormatConfig   `mapstructure:"format" toml:"format" json:"format" yaml:"format"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// GenerateConfig configures test generation
type GenerateConfig struct {
	// OutputDir receives generated files; empty prints them to stdout
	OutputDir string `mapstructure:"output_dir" toml:"output_dir" json:"output_dir" yaml:"output_dir"`
	// Dialect is a free-form version string such as "swift3" or "Swift2.3"
	Dialect string `mapstructure:"dialect" toml:"dialect" json:"dialect" yaml:"dialect"`
	// Jobs is the number of specs generated concurrently (default: 1)
	Jobs int `mapstructure:"jobs" toml:"jobs" json:"jobs" yaml:"jobs"`
	// Extensions selects documents when a directory is given
	Extensions      []string `mapstructure:"extensions" toml:"extensions" json:"extensions" yaml:"extensions"`
	CreateOutputDir bool     `mapstructure:"create_output_dir" toml:"create_output_dir" json:"create_output_dir" yaml:"create_output_dir"`
}

// FormatConfig configures the formatter run on every written file
type FormatConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled" yaml:"enabled"`
	// Command is split like a shell would; the file path is appended
	Command string `mapstructure:"command" toml:"command" json:"command" yaml:"command"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"` // quiet period before regenerating (default: 300)
}

// LogConfig configures diagnostics output
type LogConfig struct {
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"` // Color theme: everforest, gruvbox, plain
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// File and environment conventions
const (
	ConfigFileName = "acceptmark.toml"
	EnvPrefix      = "AMTOOL"

	DefaultFilePermissions = 0644
)
