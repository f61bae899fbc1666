package keymap

import (
	"errors"
	"sort"
	"sync"

	"github.com/dshills/glyph/internal/input/key"
)

// ErrNilKeymap is returned when registering a nil keymap.
var ErrNilKeymap = errors.New("cannot register nil keymap")

// Registry manages all keymaps and resolves the bindings of a mode.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*registered

	// seq orders registrations; later registrations win ties.
	seq int
}

type registered struct {
	*Compiled
	seq int
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*registered),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}
	c, err := km.Compile()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.keymaps[km.Name] = &registered{Compiled: c, seq: r.seq}
	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keymaps, name)
}

// Get returns a keymap by name.
func (r *Registry) Get(name string) *Compiled {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if km, ok := r.keymaps[name]; ok {
		return km.Compiled
	}
	return nil
}

// Keymaps returns the keymaps of a mode, lowest precedence first.
func (r *Registry) Keymaps(mode string) []*Compiled {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*registered, 0, len(r.keymaps))
	for _, km := range r.keymaps {
		if km.Mode == mode {
			list = append(list, km)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Priority != list[j].Priority {
			return list[i].Priority < list[j].Priority
		}
		return list[i].seq < list[j].seq
	})

	result := make([]*Compiled, len(list))
	for i, km := range list {
		result[i] = km.Compiled
	}
	return result
}

// Resolve returns the action name bound to each key in mode. When several
// keymaps bind the same key, the higher priority keymap wins, then the one
// registered last. Within one keymap the last binding for a key wins.
func (r *Registry) Resolve(mode string) map[key.Event]string {
	resolved := make(map[key.Event]string)
	for _, km := range r.Keymaps(mode) {
		for i, b := range km.Bindings {
			resolved[km.Keys[i]] = b.Action
		}
	}
	return resolved
}

// Modes returns the modes that have at least one keymap, sorted.
func (r *Registry) Modes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	modes := make([]string, 0)
	for _, km := range r.keymaps {
		if !seen[km.Mode] {
			seen[km.Mode] = true
			modes = append(modes, km.Mode)
		}
	}
	sort.Strings(modes)
	return modes
}
