package am

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/acceptmark/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceProject     ConfigSource = "project"     // acceptmark.toml
	SourceEnvironment ConfigSource = "environment" // AMTOOL_* env vars
)

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"` // File path or env var name
}

// GetConfigIntrospection lists every effective setting with its source,
// sorted by key.
func GetConfigIntrospection() ([]SettingInfo, error) {
	v, err := GetViper()
	if err != nil {
		return nil, err
	}

	var fileKeys map[string]bool
	if path := ConfigFileUsed(); path != "" {
		fv := viper.New()
		fv.SetConfigFile(path)
		fv.SetConfigType("toml")
		if err := fv.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		fileKeys = make(map[string]bool)
		for _, k := range fv.AllKeys() {
			fileKeys[k] = true
		}
	}

	return introspect(v, ConfigFileUsed(), fileKeys), nil
}

func introspect(v *viper.Viper, path string, fileKeys map[string]bool) []SettingInfo {
	keys := v.AllKeys()
	sort.Strings(keys)

	settings := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info := SettingInfo{Key: key, Value: v.Get(key), Source: SourceDefault, SourcePath: "built-in default"}
		if fileKeys[key] {
			info.Source, info.SourcePath = SourceProject, path
		}

		// Environment overrides the file
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(envKey); ok {
			info.Source, info.SourcePath = SourceEnvironment, envKey
		}

		settings = append(settings, info)
	}
	return settings
}
