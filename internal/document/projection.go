package document

import "unicode/utf8"

// Position locates one buffer character inside a page: the run index and the
// rune offset inside that run's text.
type Position struct {
	Run    int
	Offset int
}

// Segment is a half-open [Start, End) rune span inside a single run.
type Segment struct {
	Run   int
	Start int
	End   int
}

// Len returns the number of runes covered by the segment.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Range is the footprint of one match: ordered, non-overlapping segments,
// possibly spanning several runs.
type Range []Segment

// First returns the first segment of the range.
func (r Range) First() (Segment, bool) {
	if len(r) == 0 {
		return Segment{}, false
	}
	return r[0], true
}

// Less orders ranges by document position of their first segment.
func (r Range) Less(other Range) bool {
	a, okA := r.First()
	b, okB := other.First()
	if !okA || !okB {
		return okA && !okB
	}
	if a.Run != b.Run {
		return a.Run < b.Run
	}
	return a.Start < b.Start
}

// Projection is a page flattened into one buffer. Positions has exactly one
// entry per rune of Runes.
type Projection struct {
	Text      string
	Runes     []rune
	Positions []Position
}

// Project concatenates the page's runs and records where every rune came from.
func Project(page Page) Projection {
	total := 0
	byteLen := 0
	for _, run := range page.Runs {
		total += utf8.RuneCountInString(run.Text)
		byteLen += len(run.Text)
	}

	runes := make([]rune, 0, total)
	positions := make([]Position, 0, total)
	text := make([]byte, 0, byteLen)
	for idx, run := range page.Runs {
		offset := 0
		for _, r := range run.Text {
			runes = append(runes, r)
			positions = append(positions, Position{Run: idx, Offset: offset})
			offset++
		}
		text = append(text, run.Text...)
	}

	return Projection{
		Text:      string(text),
		Runes:     runes,
		Positions: positions,
	}
}

// Len returns the buffer length in runes.
func (p Projection) Len() int {
	return len(p.Runes)
}

// Slice converts the buffer range [start, end) to run-relative segments,
// merging consecutive offsets of the same run. Out-of-range bounds are clamped.
func (p Projection) Slice(start, end int) Range {
	if start < 0 {
		start = 0
	}
	if end > len(p.Positions) {
		end = len(p.Positions)
	}
	if start >= end {
		return nil
	}

	var out Range
	for i := start; i < end; i++ {
		pos := p.Positions[i]
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Run == pos.Run && last.End == pos.Offset {
				last.End++
				continue
			}
		}
		out = append(out, Segment{Run: pos.Run, Start: pos.Offset, End: pos.Offset + 1})
	}
	return out
}
