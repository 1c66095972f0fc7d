package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/tui/delegate"
)

// gameItem is one row of a game list. title is the decorated display title
// from Store.Titles.
type gameItem struct {
	game         *catalog.Game
	title        string
	showPlatform bool
}

// FilterValue implements list.Item
func (g gameItem) FilterValue() string {
	return g.game.Title() + " " + g.game.Alias()
}

// Column widths
const (
	platformWidth = 16
	ratingWidth   = catalog.MaxRating
	columnGap     = 1
	minTitleWidth = 12
)

// stars renders a rating as filled and empty stars.
func stars(rating int) string {
	if rating <= 0 {
		return strings.Repeat(" ", ratingWidth)
	}
	return strings.Repeat("★", rating) + strings.Repeat("·", ratingWidth-rating)
}

// pad truncates s to width cells and pads it with spaces.
func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if n := ansi.StringWidth(s); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

func renderGameItem(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(gameItem)
	if !ok {
		return
	}

	titleW := m.Width() - 2 - ratingWidth - columnGap
	if gi.showPlatform {
		titleW -= platformWidth + columnGap
	}
	if titleW < minTitleWidth {
		titleW = minTitleWidth
	}

	title := pad(gi.title, titleW)
	rating := StyleRating.Render(stars(gi.game.Rating()))
	var plat string
	if gi.showPlatform {
		plat = " " + StylePlatform.Render(pad(gi.game.Platform().String(), platformWidth))
	}

	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+title)+plat+" "+rating)
		return
	}
	style := StyleNormal
	if !gi.game.Installed() {
		style = StyleMissing
	}
	_, _ = fmt.Fprint(w, "  "+style.Render(title)+plat+" "+rating)
}

// gameItems pairs Visible with Titles so list indexes line up with the
// store's display indexes.
func gameItems(s *catalog.Store, view catalog.Platform) []list.Item {
	games := s.Visible(view)
	titles := s.Titles(view)
	items := make([]list.Item, len(games))
	for i, g := range games {
		items[i] = gameItem{game: g, title: titles[i], showPlatform: view.IsView()}
	}
	return items
}

func newGameList(s *catalog.Store, view catalog.Platform) list.Model {
	l := list.New(gameItems(s, view), delegate.New(renderGameItem), 0, 0)
	l.Title = view.String()
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("game", "games")
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	return l
}
