package search

import (
	"cmp"
	"math"
	"slices"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Hit is a half-open [Start, End) rune span in the scanned text together with
// its edit distance (0 for literal hits).
type Hit struct {
	Start    int
	End      int
	Distance int
}

// Len returns the number of runes covered by the hit.
func (h Hit) Len() int {
	return h.End - h.Start
}

// MaxErrors returns how many edits a fuzzy hit of a queryLen-rune query may
// contain for the given similarity threshold.
func MaxErrors(queryLen int, threshold float64) int {
	if queryLen <= 0 {
		return 0
	}
	t := clampThreshold(threshold)
	// The epsilon keeps 10*(1-0.9) from flooring to 0.
	return int(math.Floor(float64(queryLen)*(1-t) + 1e-9))
}

// ApproximateMatcher finds substrings of a text within a bounded edit
// distance of a pattern. Text and pattern are compared rune by rune; callers
// fold case beforehand when they want case-insensitive hits.
//
// The alignment is semi-global: a hit may start anywhere in the text, but
// the whole pattern has to be consumed.
type ApproximateMatcher struct {
	maxErrors int
}

// NewApproximateMatcher returns a matcher accepting up to maxErrors edits.
func NewApproximateMatcher(maxErrors int) *ApproximateMatcher {
	if maxErrors < 0 {
		maxErrors = 0
	}
	return &ApproximateMatcher{maxErrors: maxErrors}
}

// MaxErrors reports the configured edit budget.
func (am *ApproximateMatcher) MaxErrors() int {
	return am.maxErrors
}

// FindAll returns ordered, non-overlapping hits of pattern in text.
func (am *ApproximateMatcher) FindAll(text, pattern []rune) []Hit {
	if len(text) == 0 || len(pattern) == 0 {
		return nil
	}

	scratch := acquireEditScratch(len(text)+1, len(pattern)+1)
	defer releaseEditScratch(scratch)

	scratch.fill(text, pattern)

	var candidates []Hit
	m := len(pattern)
	for end := 1; end <= len(text); end++ {
		dist := scratch.at(end, m)
		if dist > am.maxErrors {
			continue
		}
		start := scratch.traceStart(text, pattern, end)
		if start >= end {
			continue
		}
		candidates = append(candidates, Hit{Start: start, End: end, Distance: dist})
	}

	hits := mergeOverlappingHits(candidates)
	if debugEnabled() {
		debugLog("approximate scan",
			"pattern", string(pattern),
			"textLen", len(text),
			"maxErrors", am.maxErrors,
			"candidates", len(candidates),
			"hits", len(hits))
	}
	return hits
}

// mergeOverlappingHits keeps one hit per cluster of overlapping candidates:
// the lowest distance, the earliest on ties.
func mergeOverlappingHits(candidates []Hit) []Hit {
	if len(candidates) == 0 {
		return nil
	}
	slices.SortStableFunc(candidates, func(a, b Hit) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Distance, b.Distance)
	})

	merged := make([]Hit, 0, len(candidates))
	for _, h := range candidates {
		if n := len(merged); n > 0 && h.Start < merged[n-1].End {
			if h.Distance < merged[n-1].Distance {
				merged[n-1] = h
			}
			continue
		}
		merged = append(merged, h)
	}
	return merged
}

type editScratch struct {
	table []int32
	rows  int
	cols  int
}

var editScratchPool = sync.Pool{
	New: func() any {
		return &editScratch{}
	},
}

func acquireEditScratch(rows, cols int) *editScratch {
	s := editScratchPool.Get().(*editScratch)
	required := rows * cols
	if cap(s.table) < required {
		s.table = make([]int32, required)
	}
	s.table = s.table[:required]
	s.rows = rows
	s.cols = cols
	return s
}

func releaseEditScratch(s *editScratch) {
	if s == nil {
		return
	}
	// Keep the table for reuse; oversized tables are dropped so one huge page
	// does not pin memory forever.
	if cap(s.table) > maxPooledEditCells {
		s.table = nil
	}
	s.rows = 0
	s.cols = 0
	editScratchPool.Put(s)
}

const maxPooledEditCells = 1 << 22

func (s *editScratch) at(i, j int) int {
	return int(s.table[i*s.cols+j])
}

// fill computes D[i][j], the fewest edits aligning the first j pattern runes
// so that the alignment ends right before text position i.
func (s *editScratch) fill(text, pattern []rune) {
	cols := s.cols
	t := s.table
	for j := 0; j < cols; j++ {
		t[j] = int32(j)
	}
	for i := 1; i < s.rows; i++ {
		row := i * cols
		prev := row - cols
		t[row] = 0
		tc := text[i-1]
		for j := 1; j < cols; j++ {
			var cost int32 = 1
			if pattern[j-1] == tc {
				cost = 0
			}
			best := t[prev+j-1] + cost
			if v := t[prev+j] + 1; v < best {
				best = v
			}
			if v := t[row+j-1] + 1; v < best {
				best = v
			}
			t[row+j] = best
		}
	}
}

// traceStart walks back from (end, len(pattern)) to the text position where
// the alignment begins. Diagonal moves win over vertical, vertical over
// horizontal, whenever several recurrences produced the stored value.
func (s *editScratch) traceStart(text, pattern []rune, end int) int {
	i, j := end, len(pattern)
	for j > 0 {
		cur := s.at(i, j)
		if i > 0 {
			cost := 1
			if pattern[j-1] == text[i-1] {
				cost = 0
			}
			if cur == s.at(i-1, j-1)+cost {
				i--
				j--
				continue
			}
			if cur == s.at(i-1, j)+1 {
				i--
				continue
			}
		}
		j--
	}
	return i
}

type runeBuffer struct {
	data []rune
}

var runeBufferPool = sync.Pool{
	New: func() any {
		return &runeBuffer{}
	},
}

// acquireRunes copies runes into a pooled buffer, lower-casing them when fold
// is set. Folding is one rune to one rune so offsets stay aligned.
func acquireRunes(src []rune, fold bool) ([]rune, *runeBuffer) {
	buf := runeBufferPool.Get().(*runeBuffer)
	runes := buf.data
	if cap(runes) < len(src) {
		runes = make([]rune, len(src))
	} else {
		runes = runes[:len(src)]
	}
	if !fold {
		copy(runes, src)
	} else {
		for i, r := range src {
			if r < utf8.RuneSelf {
				if r >= 'A' && r <= 'Z' {
					r += 'a' - 'A'
				}
				runes[i] = r
				continue
			}
			runes[i] = unicode.ToLower(r)
		}
	}
	buf.data = runes
	return runes, buf
}

func releaseRunes(buf *runeBuffer) {
	if buf == nil {
		return
	}
	buf.data = buf.data[:0]
	runeBufferPool.Put(buf)
}
