package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/runmark/internal/state"
	"github.com/kk-code-lab/runmark/internal/textutil"
)

// matchHit is the screen span of one marked segment in the last frame.
type matchHit struct {
	y, x0, x1 int
	match     int
}

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
	hits             []matchHit
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, theme ColorTheme) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  theme,
	}
}

// MatchAt returns the match drawn at a screen cell in the last frame.
func (r *Renderer) MatchAt(x, y int) (int, bool) {
	for _, h := range r.hits {
		if h.y == y && x >= h.x0 && x < h.x1 {
			return h.match, true
		}
	}
	return -1, false
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	r.screen.HideCursor()
	r.hits = r.hits[:0]

	w, h := r.screen.Size()
	if state.HelpVisible {
		r.drawHelpOverlay(w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(state, w)
	r.drawDocument(state, w)
	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

// drawHeader renders the top bar: title, file, page of the first visible
// line and zoom.
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillRow(0, 0, w, style)

	pages := len(state.Document().Pages)
	page := 0
	if state.ScrollOffset < len(state.Lines) {
		page = state.Lines[state.ScrollOffset].Page
	}
	right := fmt.Sprintf(" page %d/%d · zoom %d%% ", page+1, pages, state.Zoom)
	left := " runmark · " + textutil.SanitizeTerminalText(state.Name)

	rightWidth := r.measureTextWidth(right)
	x := r.drawTextLine(0, 0, max(w-rightWidth, 0), r.truncateTextToWidth(left, w-rightWidth), style.Bold(true))
	if x+rightWidth <= w {
		r.drawTextLine(w-rightWidth, 0, rightWidth, right, style)
	}
}

// drawDocument draws the visible lines from the surface projections.
func (r *Renderer) drawDocument(state *statepkg.AppState, w int) {
	base := r.theme.baseStyle()
	sepStyle := base.Foreground(r.theme.SeparatorFg)

	for row := 0; row < state.ViewHeight(); row++ {
		idx := state.ScrollOffset + row
		if idx >= len(state.Lines) {
			break
		}
		y := row + 1
		line := state.Lines[idx]
		if line.Separator {
			label := fmt.Sprintf("── page %d ", line.Page+1)
			x := r.drawTextLine(0, y, w, label, sepStyle)
			for ; x < w; x++ {
				r.screen.SetContent(x, y, '─', nil, sepStyle)
			}
			continue
		}

		x := 0
		for run := line.FirstRun; run <= line.LastRun && x < w; run++ {
			for _, seg := range state.Surface.Projection(line.Page, run) {
				text := textutil.SanitizeTerminalText(seg.Text)
				x0 := x
				x = r.drawClusters(x, y, w, text, r.theme.segmentStyle(seg))
				if seg.Marked && x > x0 {
					r.hits = append(r.hits, matchHit{y: y, x0: x0, x1: x, match: seg.Match})
				}
			}
		}
	}
}

// drawStatusLine renders the query editor while typing, otherwise the
// search summary with per-context counts in their tag colors.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y < 1 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillRow(0, y, w, style)

	if state.QueryActive {
		prompt := "/"
		x := r.drawTextLine(0, y, w, prompt, style.Bold(true))
		query := textutil.SanitizeTerminalText(state.Query())
		r.drawTextLine(x, y, w-x, query, style)
		cursorX := x + r.measureTextWidth(string(state.QueryInput[:state.QueryCursor]))
		if cursorX < w {
			r.screen.ShowCursor(cursorX, y)
		}
		return
	}

	x := 0
	if state.LastError != nil {
		x = r.drawTextLine(0, y, w, " "+textutil.SanitizeTerminalText(state.LastError.Error())+" ", style.Foreground(r.theme.ErrorFg))
	}
	x = r.drawTextLine(x, y, w-x, formatMatchSummary(state.Status), style)

	for i, c := range state.Status.Contexts {
		if i >= len(state.Status.ContextCounts) {
			break
		}
		seg := fmt.Sprintf(" %s:%d ", textutil.SanitizeTerminalText(c.Query), state.Status.ContextCounts[i])
		tagStyle := style.Background(r.theme.Palette[i%len(r.theme.Palette)]).Foreground(r.theme.MatchFg)
		x = r.drawTextLine(x+1, y, w-x-1, seg, tagStyle)
	}

	flags := formatOptionFlags(state.Options) + "  " + buildFooterHelpText()
	flagsWidth := r.measureTextWidth(flags)
	if x+1+flagsWidth <= w {
		r.drawTextLine(w-flagsWidth, y, flagsWidth, flags, style)
	} else if short := formatOptionFlags(state.Options); x+1+r.measureTextWidth(short) <= w {
		r.drawTextLine(w-r.measureTextWidth(short), y, w, short, style)
	}
}
