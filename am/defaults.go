package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Generation defaults
	v.SetDefault("generate.output_dir", "")
	v.SetDefault("generate.dialect", "swift3")
	v.SetDefault("generate.jobs", 1)
	v.SetDefault("generate.extensions", []string{".md", ".yaml", ".yml", ".toml"})
	v.SetDefault("generate.create_output_dir", false)

	// Formatter defaults (off unless asked for)
	v.SetDefault("format.enabled", false)
	v.SetDefault("format.command", "swiftformat --quiet")

	v.SetDefault("watch.debounce_ms", 300)

	v.SetDefault("log.theme", "everforest")
	v.SetDefault("log.json", false)
}

// DefaultConfig returns the configuration made of defaults only.
func DefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}
