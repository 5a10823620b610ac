package hostui

import "github.com/charmbracelet/bubbles/key"

// ModalKeyMap binds the confirmation dialog keys
type ModalKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Accept  key.Binding
	Dismiss key.Binding
	Switch  key.Binding
}

var ModalKeys = ModalKeyMap{
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "ok")),
	Cancel:  key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "cancel")),
	Accept:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "press focused button")),
	Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Switch:  key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch button")),
}

// ShortHelp implements help.KeyMap
func (k ModalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel, k.Switch, k.Dismiss}
}

// FullHelp implements help.KeyMap
func (k ModalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Accept}}
}
