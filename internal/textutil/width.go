package textutil

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += max(runewidth.RuneWidth(ru), 1)
	}
	return builder.String()
}

// DisplayWidth reports the printable width of text, measuring grapheme
// clusters so emoji sequences count once.
func DisplayWidth(text string) int {
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		width += ClusterWidth(g.Str())
	}
	return width
}

// ClusterWidth is the column width of one grapheme cluster, never below one.
func ClusterWidth(cluster string) int {
	return max(uniseg.StringWidth(cluster), 1)
}

// Wrap breaks text into visual lines of at most width columns. Lines break
// after whitespace when possible and inside a word otherwise. Whitespace
// stays on the line it ends, so the pieces concatenate back to text.
func Wrap(text string, width int) []string {
	if width <= 0 || DisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	start, col := 0, 0
	breakAt, breakCol := -1, 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		from, to := g.Positions()
		cluster := g.Str()
		w := ClusterWidth(cluster)
		if isBlank(cluster) {
			// Trailing blanks may hang past the edge.
			col += w
			breakAt, breakCol = to, col
			continue
		}
		if col+w > width && col > 0 {
			if breakAt > start {
				lines = append(lines, text[start:breakAt])
				start = breakAt
				col -= breakCol
			} else {
				lines = append(lines, text[start:from])
				start = from
				col = 0
			}
			breakAt = -1
		}
		col += w
	}
	return append(lines, text[start:])
}

// Fragment splits text into pieces of at most n runes.
func Fragment(text string, n int) []string {
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return []string{text}
	}
	out := make([]string, 0, (len(runes)+n-1)/n)
	for len(runes) > n {
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return append(out, string(runes))
}

func isBlank(cluster string) bool {
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
