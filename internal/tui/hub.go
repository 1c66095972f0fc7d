package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"

	"github.com/blackwell-systems/gamedock/internal/catalog"
	"github.com/blackwell-systems/gamedock/internal/tui/delegate"
)

// hubItem is one row of the platform menu.
type hubItem struct {
	platform catalog.Platform
	count    int
}

// FilterValue implements list.Item
func (h hubItem) FilterValue() string {
	return h.platform.String()
}

// renderHubItem renders a platform or view with its game count.
func renderHubItem(w io.Writer, m list.Model, index int, item list.Item) {
	h, ok := item.(hubItem)
	if !ok {
		return
	}

	label := fmt.Sprintf("%-22s", h.platform.String())
	count := StyleHelp.Render(fmt.Sprintf("%4d", h.count))

	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+label)+" "+count)
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(label)+" "+count)
	}
}

// hubItems builds the menu: All always, other views once they hold a game,
// then every populated platform.
func hubItems(s *catalog.Store) []list.Item {
	var items []list.Item
	for _, pc := range s.Counts() {
		if pc.Count == 0 && pc.Platform != catalog.All {
			continue
		}
		items = append(items, hubItem{platform: pc.Platform, count: pc.Count})
	}
	return items
}

func newHubList(s *catalog.Store) list.Model {
	l := list.New(hubItems(s), delegate.NewWithSpacing(renderHubItem, 0), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.HelpStyle = StyleHelp
	return l
}
