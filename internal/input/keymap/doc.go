// Package keymap maps key events to actions.
//
// Bindings are written as key specifications ("i", "<C-q>", "Ctrl+Up") and
// action names ("mode.insert", "app.quit"), grouped into a Keymap per mode.
// Keymaps come from the built-in defaults and from user files in JSON, TOML
// or YAML. A Registry collects them and resolves each mode to a single
// key-to-action-name map.
//
// Widgets never look at names at dispatch time. At startup each widget turns
// the resolved names into a Table of its own action type:
//
//	reg := keymap.NewRegistry()
//	if err := keymap.LoadDefaults(reg, ":"); err != nil {
//	    return err
//	}
//	table, err := keymap.Build(reg, keymap.ModeNormal, normalActions, nil)
//
// A Table is immutable. On configuration reload new tables are built and
// swapped in.
package keymap
