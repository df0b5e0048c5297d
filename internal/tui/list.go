package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/history"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/render"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// entryLines is the number of terminal lines each saved analysis occupies.
const entryLines = 2

func emptyPanel(width, height int, text string) string {
	return lipgloss.NewStyle().
		Foreground(colorDim).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(text)
}

func padLines(lines []string, width, height int) string {
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// renderSections renders the viewer's left panel, one section per line.
func renderSections(sections []render.Section, cursor, offset, width, height int) string {
	var lines []string
	for i := offset; i < len(sections) && len(lines) < height; i++ {
		title := runewidth.Truncate(sections[i].Title, max(width-2, 0), "…")
		if i == cursor {
			lines = append(lines, styleListSelected.Render("> "+title))
		} else {
			lines = append(lines, "  "+styleListNormal.Render(title))
		}
	}
	return padLines(lines, width, height)
}

// renderEntries renders the history browser's left panel.
func renderEntries(results []history.Result, cursor, offset, width, height int) string {
	if len(results) == 0 {
		return emptyPanel(width, height, "No saved analyses")
	}
	var lines []string
	for i := offset; i < len(results); i++ {
		if len(lines)+entryLines > height {
			break
		}
		lines = append(lines, formatEntry(results[i], width, i == cursor)...)
	}
	return padLines(lines, width, height)
}

// formatEntry formats a saved analysis as two lines:
//
//	line 1: [>] MM-DD  title
//	line 2:    participants or search snippet (dimmed)
func formatEntry(r history.Result, width int, selected bool) []string {
	date := r.CreatedAt.Format("01-02")
	titleMax := max(width-2-6, 0)
	title := runewidth.Truncate(strings.ReplaceAll(r.Title, "\n", " "), titleMax, "")

	line1 := fmt.Sprintf("%s %s", date, title)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	detail := r.Snippet
	if detail == "" {
		detail = fmt.Sprintf("%d msgs  %s", r.TotalMessages, strings.Join(r.Participants, ", "))
	}
	detail = strings.NewReplacer("\n", " ", "\t", " ", ">>>", "", "<<<", "").Replace(detail)
	detail = runewidth.Truncate(detail, max(width-4, 0), "")
	line2 := "    " + styleSnippet.Render(detail)

	return []string{line1, line2}
}

// scrollOffset keeps the cursor visible when each item takes perItem lines.
func scrollOffset(cursor, offset, height, perItem int) int {
	visible := max(height/perItem, 1)
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visible {
		return cursor - visible + 1
	}
	return offset
}
