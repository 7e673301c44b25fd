package highlight

// Segment is one piece of a run's visual projection: either literal text or
// a marked span owned by a match.
type Segment struct {
	Text   string
	Marked bool
	// Match is the owning match index, -1 for literal text.
	Match  int
	Tag    int
	Active bool
}

// Literal returns an unmarked segment.
func Literal(text string) Segment {
	return Segment{Text: text, Match: -1}
}

// SegmentRef addresses one segment of one run's projection.
type SegmentRef struct {
	Page  int
	Run   int
	Index int
}

// Surface is the rendering side of the engine. The engine only rewrites run
// projections; RunText must always return the run's original text.
type Surface interface {
	SetRunProjection(page, run int, segments []Segment)
	RunText(page, run int) string
	Reveal(ref SegmentRef)
}

// JoinSegments concatenates the visible text of a projection.
func JoinSegments(segments []Segment) string {
	switch len(segments) {
	case 0:
		return ""
	case 1:
		return segments[0].Text
	}
	n := 0
	for _, s := range segments {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range segments {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
