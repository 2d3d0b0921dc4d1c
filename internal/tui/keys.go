package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	PanUp    key.Binding
	PanDown  key.Binding
	Reset    key.Binding
	Jump     key.Binding
	Orient   key.Binding
	SVG      key.Binding
	JSON     key.Binding
	Reload   key.Binding
	Save     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "move")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("", "")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("", "")),
		PanLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "pan")),
		PanRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("", "")),
		PanUp:    key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("", "")),
		PanDown:  key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("", "")),
		Reset:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		Jump:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump")),
		Orient:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "orientation")),
		SVG:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export svg")),
		JSON:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "export json")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save config")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) helpEntries() [][2]string {
	return [][2]string{
		{"↑/↓", "move"},
		{"enter", "toggle"},
		{"+/-", "zoom"},
		{"←/→", "pan"},
		{"/", "jump"},
		{"e", "svg"},
		{"d", "json"},
		{"o", "flip"},
		{"q", "quit"},
	}
}
