package highlight

import (
	"slices"

	"github.com/kk-code-lab/runmark/internal/document"
)

// MemorySurface keeps run projections in memory. The viewer draws from it,
// the printer serializes it, and tests inspect it.
type MemorySurface struct {
	doc         document.Document
	projections map[runKey][]Segment
	lastReveal  SegmentRef
	revealed    bool
	reveals     int

	// OnReveal, when set, is called for every Reveal.
	OnReveal func(SegmentRef)
}

// NewMemorySurface returns a surface showing doc with no highlights.
func NewMemorySurface(doc document.Document) *MemorySurface {
	return &MemorySurface{
		doc:         doc,
		projections: make(map[runKey][]Segment),
	}
}

// Reset starts a new render generation for doc.
func (s *MemorySurface) Reset(doc document.Document) {
	s.doc = doc
	s.projections = make(map[runKey][]Segment)
	s.revealed = false
	s.reveals = 0
}

// Document returns the document being shown.
func (s *MemorySurface) Document() document.Document {
	return s.doc
}

// SetRunProjection stores the projection. A single literal segment equal to
// the run text drops the entry.
func (s *MemorySurface) SetRunProjection(page, run int, segments []Segment) {
	key := runKey{page: page, run: run}
	if len(segments) == 1 && !segments[0].Marked && segments[0].Text == s.RunText(page, run) {
		delete(s.projections, key)
		return
	}
	s.projections[key] = slices.Clone(segments)
}

// RunText returns the original text of a run, or "" when out of range.
func (s *MemorySurface) RunText(page, run int) string {
	if page < 0 || page >= len(s.doc.Pages) {
		return ""
	}
	runs := s.doc.Pages[page].Runs
	if run < 0 || run >= len(runs) {
		return ""
	}
	return runs[run].Text
}

// Reveal records ref and forwards it to OnReveal.
func (s *MemorySurface) Reveal(ref SegmentRef) {
	s.lastReveal = ref
	s.revealed = true
	s.reveals++
	if s.OnReveal != nil {
		s.OnReveal(ref)
	}
}

// LastReveal returns the most recent Reveal target.
func (s *MemorySurface) LastReveal() (SegmentRef, bool) {
	return s.lastReveal, s.revealed
}

// RevealCount returns how many times Reveal was called since the last Reset.
func (s *MemorySurface) RevealCount() int {
	return s.reveals
}

// Projection returns the run's current segments. Untouched runs come back as
// one literal segment.
func (s *MemorySurface) Projection(page, run int) []Segment {
	if segs, ok := s.projections[runKey{page: page, run: run}]; ok {
		return slices.Clone(segs)
	}
	return []Segment{Literal(s.RunText(page, run))}
}

// Display returns the text a reader would see for the run.
func (s *MemorySurface) Display(page, run int) string {
	if segs, ok := s.projections[runKey{page: page, run: run}]; ok {
		return JoinSegments(segs)
	}
	return s.RunText(page, run)
}

// Rewritten returns how many runs currently carry a non-literal projection.
func (s *MemorySurface) Rewritten() int {
	return len(s.projections)
}
