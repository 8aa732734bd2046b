package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down       key.Binding
	NextTab        key.Binding
	PrevTab        key.Binding
	Open           key.Binding
	Submit         key.Binding
	Back           key.Binding
	Plus, Minus    key.Binding
	Remove         key.Binding
	Favorite       key.Binding
	FavoritesOnly  key.Binding
	Sort           key.Binding
	Category       key.Binding
	Search         key.Binding
	Checkout       key.Binding
	Status         key.Binding
	Review         key.Binding
	Reload         key.Binding
	Logout         key.Binding
	ToggleAuthMode key.Binding
	Quit           key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextTab:        key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab:        key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		Open:           key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Submit:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:           key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Plus:           key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add")),
		Minus:          key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "remove one")),
		Remove:         key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Favorite:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		FavoritesOnly:  key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites only")),
		Sort:           key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Category:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Checkout:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "checkout")),
		Status:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "next status")),
		Review:         key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write review")),
		Reload:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Logout:         key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		ToggleAuthMode: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "sign in/up")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
