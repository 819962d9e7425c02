package term

import "charm.land/bubbles/v2/key"

// KeyMap defines the list view key bindings.
type KeyMap struct {
	Quit     key.Binding
	Jump     key.Binding // open the go-to prompt
	PageDown key.Binding
	PageUp   key.Binding
	Home     key.Binding
	End      key.Binding
	Forward  key.Binding // one cell towards the end
	Back     key.Binding // one cell towards the start

	// Go-to prompt.
	Submit key.Binding
	Cancel key.Binding
	Erase  key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Jump:     key.NewBinding(key.WithKeys("g", ":"), key.WithHelp("g", "goto")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "space")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Home:     key.NewBinding(key.WithKeys("home")),
		End:      key.NewBinding(key.WithKeys("end", "G")),
		Forward:  key.NewBinding(key.WithKeys("down", "j", "right", "l")),
		Back:     key.NewBinding(key.WithKeys("up", "k", "left", "h")),
		Submit:   key.NewBinding(key.WithKeys("enter")),
		Cancel:   key.NewBinding(key.WithKeys("esc")),
		Erase:    key.NewBinding(key.WithKeys("backspace")),
	}
}

// shortHelp renders the bindings shown on the status line.
func (k KeyMap) shortHelp() string {
	var out string
	for _, b := range []key.Binding{k.Jump, k.Quit} {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if out != "" {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
