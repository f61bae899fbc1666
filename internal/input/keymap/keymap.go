package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/glyph/internal/input/key"
)

var (
	errNoMode   = errors.New("empty mode")
	errNoKeys   = errors.New("empty keys")
	errNoAction = errors.New("empty action")
)

// Binding maps one key to an action name. Keys uses the notation of
// key.Parse: "j", "Esc", "<C-q>", "Ctrl+Up".
type Binding struct {
	Keys        string
	Action      string
	Description string
	Category    string
}

func (b Binding) parse() (key.Event, error) {
	if b.Keys == "" {
		return key.Event{}, errNoKeys
	}
	if b.Action == "" {
		return key.Event{}, fmt.Errorf("%s: %w", b.Keys, errNoAction)
	}
	ev, err := key.Parse(b.Keys)
	if err != nil {
		return key.Event{}, fmt.Errorf("%s: %w", b.Keys, err)
	}
	return ev, nil
}

// Keymap is a named set of bindings for one mode. Keymaps of a mode are
// layered by Priority and then by registration order.
type Keymap struct {
	Name     string
	Mode     string
	Bindings []Binding
	Priority int

	// Source tells where the keymap came from: "default" or "user".
	Source string
}

// NewKeymap creates an empty keymap.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name, Bindings: []Binding{}}
}

func (k *Keymap) ForMode(mode string) *Keymap {
	k.Mode = mode
	return k
}

func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add binds keys to action.
func (k *Keymap) Add(keys, action string) *Keymap {
	return k.AddBinding(Binding{Keys: keys, Action: action})
}

func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Compiled is a keymap with its keys parsed. Keys[i] is the key of
// Bindings[i].
type Compiled struct {
	*Keymap
	Keys []key.Event
}

// Lookup returns the action of the last binding for ev.
func (c *Compiled) Lookup(ev key.Event) (string, bool) {
	for i := len(c.Keys) - 1; i >= 0; i-- {
		if c.Keys[i] == ev {
			return c.Bindings[i].Action, true
		}
	}
	return "", false
}

// Compile parses every binding of k. Every problem found is reported in
// one joined error.
func (k *Keymap) Compile() (*Compiled, error) {
	var errs []error
	if k.Mode == "" {
		errs = append(errs, errNoMode)
	}
	c := &Compiled{Keymap: k, Keys: make([]key.Event, len(k.Bindings))}
	for i, b := range k.Bindings {
		ev, err := b.parse()
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %d: %w", i, err))
			continue
		}
		c.Keys[i] = ev
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("keymap %q: %w", k.Name, errors.Join(errs...))
	}
	return c, nil
}

// Validate reports the problems Compile would.
func (k *Keymap) Validate() error {
	_, err := k.Compile()
	return err
}
