package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/runmark/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines() []string {
	sections := []helpOverlaySection{
		{
			title: "Search",
			entries: []helpOverlayEntry{
				{keys: "/", desc: "Type a query, ↵ to search"},
				{keys: "Esc", desc: "Cancel input or clear highlights"},
				{keys: "n / N", desc: "Next / previous match"},
				{keys: "g", desc: "First match"},
				{keys: "click", desc: "Activate the clicked match"},
			},
		},
		{
			title: "Options",
			entries: []helpOverlayEntry{
				{keys: "c", desc: "Toggle case sensitivity"},
				{keys: "w", desc: "Toggle flexible whitespace"},
				{keys: "f", desc: "Toggle fuzzy matching"},
				{keys: "a", desc: "Toggle auto-scroll to the active match"},
			},
		},
		{
			title: "View",
			entries: []helpOverlayEntry{
				{keys: "+ / -", desc: "Zoom in / out (re-layout)"},
				{keys: "0", desc: "Reset zoom"},
				{keys: "↑/↓ PgUp/PgDn", desc: "Scroll"},
				{keys: "Home/End", desc: "Top / bottom"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 32)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	baseStyle := r.theme.baseStyle()
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	titleStart := 0
	if titleWidth := r.measureTextWidth(title); w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines() {
		if row >= h-1 {
			break
		}
		text := r.truncateTextToWidth(strings.TrimRight(line, " "), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		r.drawTextLine(0, h-1, w, r.truncateTextToWidth("? toggle · Esc/q close", w), headerStyle)
	}
}
