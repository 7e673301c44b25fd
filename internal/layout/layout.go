// Package layout turns loaded text into a Document of runs. Plain text is
// re-fragmented for every zoom level; JSON exports of extracted text keep
// their own runs.
package layout

import (
	"errors"

	"github.com/kk-code-lab/runmark/internal/document"
)

const (
	DefaultWidth     = 80
	DefaultRunLength = 12

	DefaultZoom = 100
	MinZoom     = 50
	MaxZoom     = 200
	ZoomStep    = 25

	minColumns = 8
)

var (
	// ErrEmptyDocument is returned when the input holds no text at all.
	ErrEmptyDocument = errors.New("layout: document has no text")
	// ErrNotText is returned for binary input.
	ErrNotText = errors.New("layout: input is not text")
	// ErrMalformed is returned for JSON input that does not have the pages/items shape.
	ErrMalformed = errors.New("layout: malformed text-content JSON")
)

// Options controls how plain text is fragmented.
type Options struct {
	// Width is the viewport width in columns at 100% zoom.
	Width int
	// RunLength caps the number of runes per run.
	RunLength int
}

// DefaultOptions returns the built-in layout settings.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, RunLength: DefaultRunLength}
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.RunLength <= 0 {
		o.RunLength = DefaultRunLength
	}
	return o
}

// Layouter produces the Document for a zoom level. Every call returns a
// fresh Document; callers hand it to the engine with SetDocument.
type Layouter interface {
	Layout(zoom int) document.Document
}

// ClampZoom keeps zoom within [MinZoom, MaxZoom].
func ClampZoom(zoom int) int {
	return min(max(zoom, MinZoom), MaxZoom)
}

// Columns is the wrap width for a viewport width at zoom. Larger zoom means
// bigger glyphs and so fewer columns.
func Columns(width, zoom int) int {
	return max(width*100/ClampZoom(zoom), minColumns)
}

// PageInfo is stored in Page.Handle.
type PageInfo struct {
	Index   int
	Columns int
}
