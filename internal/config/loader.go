package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Load builds a configuration from the defaults, the file at path and the
// environment. An empty path skips the file layer. Relative keymap paths
// in the file are resolved against the file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := NewEnvLoader(EnvPrefix).Apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	defer f.Close()

	if err := Decode(cfg, f, format, path); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	for i, p := range cfg.Keymaps.Files {
		if p != "" && !filepath.IsAbs(p) {
			cfg.Keymaps.Files[i] = filepath.Join(dir, p)
		}
	}
	if p := cfg.Editor.InitScript; p != "" && !filepath.IsAbs(p) {
		cfg.Editor.InitScript = filepath.Join(dir, p)
	}
	return nil
}

// Decode reads r into cfg. Keys absent from the input keep the values
// already in cfg. source names the input in errors.
func Decode(cfg *Config, r io.Reader, format Format, source string) error {
	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return newParseError(source, format, err)
	}
	return nil
}
