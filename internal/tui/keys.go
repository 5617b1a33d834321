package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Home    key.Binding
	End     key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Swipe   key.Binding
	Liked   key.Binding
	Breeds  key.Binding

	// Actions
	Like    key.Binding
	Dislike key.Binding
	Refresh key.Binding
	Filter  key.Binding
	Enter   key.Binding
	Escape  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous tab"),
		),
		Swipe: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "swipe"),
		),
		Liked: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "liked"),
		),
		Breeds: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "breeds"),
		),

		// Actions
		Like: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "like"),
		),
		Dislike: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "nope"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search provider"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// tabHelp returns the bindings shown in the footer for a tab
func tabHelp(t Tab) []key.Binding {
	switch t {
	case TabSwipe:
		return []key.Binding{Keys.Like, Keys.Dislike, Keys.NextTab, Keys.Quit}
	case TabLiked:
		return []key.Binding{Keys.Up, Keys.Down, Keys.Refresh, Keys.NextTab, Keys.Quit}
	case TabBreeds:
		return []key.Binding{Keys.Filter, Keys.Enter, Keys.Escape, Keys.NextTab, Keys.Quit}
	default:
		return nil
	}
}
