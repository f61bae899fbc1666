// Package config loads glyph's settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. built-in defaults (Default)
//  2. a TOML or YAML file, chosen by extension
//  3. GLYPH_* environment variables
//
// Command-line flags are applied on top by the caller. Keys missing from
// a file keep their defaults; unknown keys are an error.
//
// A Watcher reloads the file when it changes and hands the new
// configuration to the UI goroutine over a channel.
package config
