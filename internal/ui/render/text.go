package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/kk-code-lab/runmark/internal/textutil"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := max(runewidth.RuneWidth(ru), 0)
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}
	width := max(runewidth.RuneWidth(ru), 0)
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	if maxWidth <= 1 {
		return ellipsis
	}

	available := maxWidth - 1
	var builder strings.Builder
	currentWidth := 0
	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}
	builder.WriteString(ellipsis)
	return builder.String()
}

// drawTextLine draws text from startX and returns the column after it.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	return r.drawClusters(startX, y, startX+maxWidth, text, style)
}

// drawClusters draws text one grapheme cluster per cell group so combining
// marks and emoji sequences stay with their base rune. Clusters that would
// cross maxX are dropped.
func (r *Renderer) drawClusters(startX, y, maxX int, text string, style tcell.Style) int {
	x := startX
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		width := textutil.ClusterWidth(g.Str())
		if x+width > maxX {
			break
		}
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		for w := 1; w < width; w++ {
			r.screen.SetContent(x+w, y, ' ', nil, style)
		}
		x += width
	}
	return x
}

func (r *Renderer) fillRow(startX, y, maxX int, style tcell.Style) {
	for x := startX; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}
