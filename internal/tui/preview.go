package tui

import (
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/history"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// entryRenderedMsg is sent when an async preview render completes.
type entryRenderedMsg struct {
	id      int64
	content string
	err     error
}

// loadEntryCmd loads a saved analysis and renders its report off the UI loop.
func loadEntryCmd(db *history.DB, id int64, width int) tea.Cmd {
	return func() tea.Msg {
		e, err := db.Get(id)
		if err != nil {
			return entryRenderedMsg{id: id, err: err}
		}
		return entryRenderedMsg{
			id:      id,
			content: render.Report(e.Stats, render.Options{Width: width, Color: true}),
		}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
