package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search key.Binding
	Submit key.Binding
	Leave  key.Binding
	Focus  key.Binding
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Drop   key.Binding
	Power  key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "dig")),
		Leave:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave search")),
		Focus:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "pick")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Drop:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop on platter")),
		Power:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "power")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) searching() []key.Binding {
	return []key.Binding{k.Submit, k.Leave, k.Focus}
}

func (k keyMap) browsing() []key.Binding {
	return []key.Binding{k.Search, k.Left, k.Drop, k.Power, k.Focus, k.Quit}
}
