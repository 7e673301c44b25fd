package layout

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/runmark/internal/document"
	"github.com/kk-code-lab/runmark/internal/logging"
	"github.com/kk-code-lab/runmark/internal/textutil"
)

// Flow lays out plain text. Form feeds separate pages; every visual line is
// cut into runs of at most RunLength runes, so words routinely straddle runs.
type Flow struct {
	pages [][]string
	opts  Options
}

// NewFlow splits text into pages and source lines.
func NewFlow(text string, opts Options) (*Flow, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	rawPages := strings.Split(text, "\f")
	if len(rawPages) > 1 && strings.TrimSpace(rawPages[len(rawPages)-1]) == "" {
		rawPages = rawPages[:len(rawPages)-1]
	}

	pages := make([][]string, len(rawPages))
	for i, raw := range rawPages {
		raw = strings.TrimSuffix(raw, "\n")
		lines := strings.Split(raw, "\n")
		for j, line := range lines {
			lines[j] = textutil.ExpandTabs(line, textutil.DefaultTabWidth)
		}
		pages[i] = lines
	}
	return &Flow{pages: pages, opts: opts.normalized()}, nil
}

// PageCount returns the number of pages.
func (f *Flow) PageCount() int {
	return len(f.pages)
}

// Layout wraps every source line to the zoomed column count and fragments
// the visual lines into runs. The last run of a visual line ends the line.
func (f *Flow) Layout(zoom int) document.Document {
	cols := Columns(f.opts.Width, zoom)
	doc := document.Document{Pages: make([]document.Page, len(f.pages))}
	for pi, lines := range f.pages {
		var runs []document.Run
		for li, line := range lines {
			for vi, visual := range textutil.Wrap(line, cols) {
				pieces := textutil.Fragment(visual, f.opts.RunLength)
				for ri, piece := range pieces {
					runs = append(runs, document.Run{
						ID:        fmt.Sprintf("p%d.l%d.v%d.r%d", pi, li, vi, ri),
						Text:      piece,
						EndOfLine: ri == len(pieces)-1,
					})
				}
			}
		}
		doc.Pages[pi] = document.Page{Runs: runs, Handle: PageInfo{Index: pi, Columns: cols}}
	}
	logging.For("layout").Debug("flow layout", "zoom", zoom, "columns", cols, "runs", doc.RunCount())
	return doc
}
