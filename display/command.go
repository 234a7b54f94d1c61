// Package display renders command results for humans or machines.
package display

import (
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/acceptmark/errors"
)

// Formats accepted by Marshal
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ShouldOutputJSON reports whether cmd was asked for JSON output, either by
// its own --json flag or by --format json
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if v, err := cmd.Flags().GetBool("json"); err == nil && v {
		return true
	}
	if f, err := cmd.Flags().GetString("format"); err == nil && f == FormatJSON {
		return true
	}
	return false
}

// Marshal renders v in the named format
func Marshal(v interface{}, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return MarshalJSON(v)
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal YAML")
		}
		return data, nil
	case FormatTOML:
		data, err := toml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal TOML")
		}
		return data, nil
	default:
		return nil, errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
}
