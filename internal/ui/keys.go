package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Filter   key.Binding
	NewQuery key.Binding
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Raw      key.Binding
	Copy     key.Binding
	CopyAll  key.Binding
	Export   key.Binding
	Whois    key.Binding
}

var Keys = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	NewQuery: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "new search")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	NextPage: key.NewBinding(key.WithKeys("n", "right", "pgdown"), key.WithHelp("n", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("p", "left", "pgup"), key.WithHelp("p", "prev page")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev tab")),
	Raw:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "raw data")),
	Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	CopyAll:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "copy all")),
	Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
	Whois:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "whois")),
}

// Hints renders the short help for bindings, e.g. "n next page • q quit".
func Hints(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
