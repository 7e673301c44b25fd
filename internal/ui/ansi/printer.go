// Package ansi writes a highlighted document as text, marking matches with
// SGR sequences or, without color, with bracket markers.
package ansi

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/kk-code-lab/runmark/internal/document"
	"github.com/kk-code-lab/runmark/internal/highlight"
	"github.com/kk-code-lab/runmark/internal/textutil"
)

// ColorMode selects when SGR sequences are written.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

const (
	sgrReset       = "\x1b[0m"
	sgrActive      = "\x1b[1;4m"
	markOpen       = "["
	markClose      = "]"
	activeOpen     = "{"
	activeClose    = "}"
	pageSeparator  = "\f"
	fallbackOnTerm = tcell.ColorYellow
)

// ParseColorMode accepts auto, always and never.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("ansi: unknown color mode %q (want auto, always or never)", s)
	}
}

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// Enabled resolves the mode for w. Auto colors terminals only and honors
// NO_COLOR.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Printer serializes run projections.
type Printer struct {
	Color   bool
	Palette [highlight.TagCount]tcell.Color
}

// NewPrinter returns a printer using palette for tag backgrounds.
func NewPrinter(color bool, palette [highlight.TagCount]tcell.Color) *Printer {
	return &Printer{Color: color, Palette: palette}
}

// Write prints every page of doc as shown by surface. Runs that end a line
// are followed by a newline; pages are separated by a form feed. A match
// that spans runs is opened and closed once.
func (p *Printer) Write(w io.Writer, doc document.Document, surface *highlight.MemorySurface) error {
	bw := bufio.NewWriter(w)
	open := -1
	openStyle := ""

	closeMatch := func() {
		if open < 0 {
			return
		}
		if p.Color {
			bw.WriteString(sgrReset)
		} else if openStyle == activeOpen {
			bw.WriteString(activeClose)
		} else {
			bw.WriteString(markClose)
		}
		open = -1
	}

	for pi, page := range doc.Pages {
		if pi > 0 {
			closeMatch()
			bw.WriteString(pageSeparator)
		}
		for ri, run := range page.Runs {
			for _, seg := range surface.Projection(pi, ri) {
				text := textutil.SanitizeTerminalText(seg.Text)
				if !seg.Marked {
					if text != "" {
						closeMatch()
					}
					bw.WriteString(text)
					continue
				}
				if open != seg.Match {
					closeMatch()
					openStyle = p.openSequence(seg)
					bw.WriteString(openStyle)
					open = seg.Match
				}
				bw.WriteString(text)
			}
			if run.EndOfLine {
				closeMatch()
				bw.WriteByte('\n')
			}
		}
	}
	closeMatch()
	if len(doc.Pages) > 0 {
		if last := doc.Pages[len(doc.Pages)-1].Runs; len(last) > 0 && !last[len(last)-1].EndOfLine {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func (p *Printer) openSequence(seg highlight.Segment) string {
	if !p.Color {
		if seg.Active {
			return activeOpen
		}
		return markOpen
	}
	bg := p.Palette[seg.Tag%highlight.TagCount]
	if bg == tcell.ColorDefault {
		bg = fallbackOnTerm
	}
	r, g, b := bg.RGB()
	seq := fmt.Sprintf("\x1b[30;48;2;%d;%d;%dm", r, g, b)
	if seg.Active {
		seq += sgrActive
	}
	return seq
}
