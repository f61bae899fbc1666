package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a keymap file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported keymap format")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// file is the on-disk shape of a keymap, shared by all formats.
type file struct {
	Name     string        `json:"name" toml:"name" yaml:"name"`
	Mode     string        `json:"mode" toml:"mode" yaml:"mode"`
	Priority int           `json:"priority,omitempty" toml:"priority,omitempty" yaml:"priority,omitempty"`
	Source   string        `json:"source,omitempty" toml:"source,omitempty" yaml:"source,omitempty"`
	Bindings []fileBinding `json:"bindings" toml:"bindings" yaml:"bindings"`
}

type fileBinding struct {
	Keys        string `json:"keys" toml:"keys" yaml:"keys"`
	Action      string `json:"action" toml:"action" yaml:"action"`
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category,omitempty" toml:"category,omitempty" yaml:"category,omitempty"`
}

// Decode reads one keymap and checks its bindings.
func Decode(r io.Reader, format Format) (*Keymap, error) {
	var f file
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&f)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&f)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	km := &Keymap{
		Name:     f.Name,
		Mode:     f.Mode,
		Priority: f.Priority,
		Source:   f.Source,
		Bindings: make([]Binding, 0, len(f.Bindings)),
	}
	for _, b := range f.Bindings {
		km.Bindings = append(km.Bindings, Binding(b))
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}

// LoadFile loads a keymap file. A keymap without a name is named after
// the file; one without a source is a user keymap.
func LoadFile(path string) (*Keymap, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if km.Source == "" {
		km.Source = "user"
	}
	return km, nil
}

// LoadPaths loads keymaps in path order. A directory contributes its
// keymap files in name order; other files in it are skipped. Every path
// is tried: the keymaps that loaded are returned along with the joined
// errors of those that did not.
func LoadPaths(paths []string) ([]*Keymap, error) {
	var (
		keymaps []*Keymap
		errs    []error
	)
	load := func(path string) {
		km, err := LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			return
		}
		keymaps = append(keymaps, km)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("keymap path: %w", err))
			continue
		}
		if !info.IsDir() {
			load(path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if _, ferr := FormatFromPath(e.Name()); ferr == nil && !e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			load(filepath.Join(path, name))
		}
	}
	return keymaps, errors.Join(errs...)
}
