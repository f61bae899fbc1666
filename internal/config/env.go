package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix starts every environment variable the loader reads.
const EnvPrefix = "GLYPH_"

// EnvLoader overrides settings from environment variables.
type EnvLoader struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader reading variables that start with prefix.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// envSetting applies one variable to a config.
type envSetting struct {
	name string
	path string
	set  func(c *Config, v string) error
}

// envSettings lists the variables by name without the prefix.
var envSettings = []envSetting{
	{"REFRESH_RATE", "app.refresh_rate", func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		c.App.RefreshRate = Duration(d)
		return err
	}},
	{"LOG_LEVEL", "log.level", func(c *Config, v string) error {
		c.Log.Level = strings.ToLower(v)
		return nil
	}},
	{"LOG_FILE", "log.file", func(c *Config, v string) error {
		c.Log.File = v
		return nil
	}},
	{"TERMINAL_DRIVER", "terminal.driver", func(c *Config, v string) error {
		c.Terminal.Driver = strings.ToLower(v)
		return nil
	}},
	{"BRACKETED_PASTE", "terminal.bracketed_paste", func(c *Config, v string) error {
		b, err := parseBool(v)
		c.Terminal.BracketedPaste = b
		return err
	}},
	{"COMMAND_KEY", "editor.command_key", func(c *Config, v string) error {
		c.Editor.CommandKey = v
		return nil
	}},
	{"SPLIT", "editor.split", func(c *Config, v string) error {
		b, err := parseBool(v)
		c.Editor.Split = b
		return err
	}},
	{"INIT_SCRIPT", "editor.init_script", func(c *Config, v string) error {
		c.Editor.InitScript = v
		return nil
	}},
	{"TAB_WIDTH", "editor.tab_width", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		c.Editor.TabWidth = n
		return err
	}},
}

// EnvNames returns the full names of the variables the loader reads.
func (l *EnvLoader) EnvNames() []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = l.prefix + s.name
	}
	return names
}

// Apply overrides the settings of cfg that have a variable set. Empty
// values count as set.
func (l *EnvLoader) Apply(cfg *Config) error {
	var errs []error
	for _, s := range envSettings {
		name := l.prefix + s.name
		v, ok := l.lookup(name)
		if !ok {
			continue
		}
		if err := s.set(cfg, v); err != nil {
			errs = append(errs, fmt.Errorf("%s (%s=%q): %w", s.path, name, v, err))
		}
	}
	return errors.Join(errs...)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("%w: not a boolean", ErrInvalidValue)
}
