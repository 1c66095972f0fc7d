// Package delegate provides the list.ItemDelegate shared by gamedock's
// list screens.
package delegate

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc draws one list row.
type RenderFunc func(w io.Writer, m list.Model, index int, item list.Item)

// Base is a single-line delegate whose rendering is supplied by the caller.
type Base struct {
	spacing  int
	renderFn RenderFunc
}

// New returns a delegate with no spacing between rows.
func New(renderFn RenderFunc) Base {
	return Base{renderFn: renderFn}
}

// NewWithSpacing returns a delegate with blank lines between rows.
func NewWithSpacing(renderFn RenderFunc, spacing int) Base {
	return Base{spacing: spacing, renderFn: renderFn}
}

func (d Base) Height() int                         { return 1 }
func (d Base) Spacing() int                        { return d.spacing }
func (d Base) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d Base) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if d.renderFn != nil {
		d.renderFn(w, m, index, item)
	}
}
