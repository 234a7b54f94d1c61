package am

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/logger"
)

// Validate checks that the configuration is valid.
// The dialect is not checked here: unknown dialects fall back to the default
// with a warning at generation time.
func (c *Config) Validate() error {
	if c.Generate.Jobs < 1 {
		return errors.Newf("generate.jobs must be >= 1, got %d", c.Generate.Jobs)
	}

	for _, ext := range c.Generate.Extensions {
		if strings.TrimSpace(strings.TrimPrefix(ext, ".")) == "" {
			return errors.Newf("generate.extensions contains an empty entry %q", ext)
		}
	}

	if c.Format.Enabled {
		if _, err := c.Format.Args(); err != nil {
			return err
		}
	}

	// Watch debounce: 0 = regenerate on every event, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	if c.Log.Theme != "" && !logger.HasTheme(c.Log.Theme) {
		return errors.WithHintf(
			errors.Newf("log.theme %q is not a known theme", c.Log.Theme),
			"use one of %s", strings.Join(logger.ThemeNames(), ", "))
	}

	return nil
}

// Args splits the formatter command line into argv.
func (f FormatConfig) Args() ([]string, error) {
	args, err := shellquote.Split(f.Command)
	if err != nil {
		return nil, errors.Wrapf(err, "format.command %q cannot be parsed", f.Command)
	}
	if len(args) == 0 {
		return nil, errors.New("format.command cannot be empty when format.enabled is set")
	}
	return args, nil
}
