package state

import (
	"github.com/kk-code-lab/runmark/internal/document"
	"github.com/kk-code-lab/runmark/internal/highlight"
	"github.com/kk-code-lab/runmark/internal/layout"
	"github.com/kk-code-lab/runmark/internal/search"
)

// chromeRows is the header plus the status line.
const chromeRows = 2

// VisualLine is one screen row of the document: a run interval of a page
// or, when Separator is set, the gap between two pages.
type VisualLine struct {
	Page      int
	FirstRun  int
	LastRun   int
	Separator bool
}

// AppState is the single source of truth
type AppState struct {
	// Document
	Name     string
	Layouter layout.Layouter
	Zoom     int
	Lines    []VisualLine

	// Search
	Surface *highlight.MemorySurface
	Engine  *highlight.Engine
	Options search.Options
	Status  highlight.Change

	// Query input
	QueryActive bool
	QueryInput  []rune
	QueryCursor int

	// Viewport
	ScrollOffset int
	ScreenWidth  int
	ScreenHeight int

	HelpVisible bool

	// Error state
	LastError error

	unsubscribe func()
}

// Config seeds a new AppState.
type Config struct {
	Name     string
	Layouter layout.Layouter
	Zoom     int
	Options  search.Options
	Width    int
	Height   int
}

// NewAppState lays the document out, wires the engine to the surface and
// keeps Status in sync with engine notifications.
func NewAppState(cfg Config) *AppState {
	s := &AppState{
		Name:         cfg.Name,
		Layouter:     cfg.Layouter,
		Zoom:         layout.ClampZoom(cfg.Zoom),
		Options:      cfg.Options,
		ScreenWidth:  cfg.Width,
		ScreenHeight: cfg.Height,
	}
	doc := s.Layouter.Layout(s.Zoom)
	s.Lines = BuildLines(doc)
	s.Surface = highlight.NewMemorySurface(doc)
	s.Surface.OnReveal = s.reveal
	s.Engine = highlight.New(s.Surface)
	s.unsubscribe = s.Engine.Subscribe(func(c highlight.Change) { s.Status = c })
	s.Engine.SetDocument(doc)
	s.Status = s.Engine.Snapshot()
	return s
}

// Close releases the engine.
func (s *AppState) Close() error {
	if s.Engine == nil {
		return nil
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	return s.Engine.Close()
}

// Document returns the current layout.
func (s *AppState) Document() document.Document {
	return s.Surface.Document()
}

// ViewHeight is the number of document rows on screen.
func (s *AppState) ViewHeight() int {
	return max(s.ScreenHeight-chromeRows, 1)
}

// MaxScroll is the largest useful ScrollOffset.
func (s *AppState) MaxScroll() int {
	return max(len(s.Lines)-s.ViewHeight(), 0)
}

// Query returns the text in the query input.
func (s *AppState) Query() string {
	return string(s.QueryInput)
}

// LineOf returns the visual line holding run of page, or -1.
func (s *AppState) LineOf(page, run int) int {
	lo, hi := 0, len(s.Lines)
	for lo < hi {
		mid := (lo + hi) / 2
		l := s.Lines[mid]
		switch {
		case l.Page < page, l.Page == page && (l.Separator || l.LastRun < run):
			lo = mid + 1
		default:
			hi = mid
		}
	}
	if lo < len(s.Lines) {
		if l := s.Lines[lo]; !l.Separator && l.Page == page && l.FirstRun <= run && run <= l.LastRun {
			return lo
		}
	}
	return -1
}

func (s *AppState) clampScroll() {
	s.ScrollOffset = min(max(s.ScrollOffset, 0), s.MaxScroll())
}

// reveal scrolls the line holding ref into view, placing it a third of the
// way down when it has to move.
func (s *AppState) reveal(ref highlight.SegmentRef) {
	line := s.LineOf(ref.Page, ref.Run)
	if line < 0 {
		return
	}
	if line >= s.ScrollOffset && line < s.ScrollOffset+s.ViewHeight() {
		return
	}
	s.ScrollOffset = line - s.ViewHeight()/3
	s.clampScroll()
}

// BuildLines splits every page at runs that end a line. Pages are separated
// by a separator row.
func BuildLines(doc document.Document) []VisualLine {
	var lines []VisualLine
	for pi, page := range doc.Pages {
		if pi > 0 {
			lines = append(lines, VisualLine{Page: pi, FirstRun: -1, LastRun: -1, Separator: true})
		}
		start := 0
		for ri, run := range page.Runs {
			if run.EndOfLine {
				lines = append(lines, VisualLine{Page: pi, FirstRun: start, LastRun: ri})
				start = ri + 1
			}
		}
		if start < len(page.Runs) {
			lines = append(lines, VisualLine{Page: pi, FirstRun: start, LastRun: len(page.Runs) - 1})
		}
	}
	return lines
}
