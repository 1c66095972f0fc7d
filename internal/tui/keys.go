package tui

import "github.com/charmbracelet/bubbles/key"

// hubKeys are active on the platform menu.
type hubKeys struct {
	Quit   key.Binding
	Select key.Binding
	Rescan key.Binding
}

// gameKeys are active on a game list.
type gameKeys struct {
	Launch     key.Binding
	Favourite  key.Binding
	Hide       key.Binding
	RateUp     key.Binding
	RateDown   key.Binding
	Search     key.Binding
	CycleSort  key.Binding
	Rescan     key.Binding
	Back       key.Binding
	Quit       key.Binding
	ClearNew   key.Binding
	OpenClient key.Binding
}

func newHubKeys() hubKeys {
	return hubKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
	}
}

func newGameKeys() gameKeys {
	return gameKeys{
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch"),
		),
		Favourite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favourite"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "rate up"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "rate down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		ClearNew: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "clear new"),
		),
		OpenClient: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "client"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// footer lists the shortcuts shown under the game list.
func (k gameKeys) footer() []shortcut {
	var out []shortcut
	for _, b := range []key.Binding{k.Launch, k.Favourite, k.Hide, k.RateUp, k.RateDown, k.Search, k.CycleSort, k.Rescan, k.Back} {
		h := b.Help()
		out = append(out, shortcut{Key: h.Key, Label: h.Key + " " + h.Desc})
	}
	return out
}
