package search

import (
	"strings"
	"unicode"

	"github.com/kk-code-lab/runmark/internal/document"
	"github.com/kk-code-lab/runmark/internal/logging"
)

// Locate returns the run-relative footprint of every occurrence of query on
// the page, in buffer order.
func Locate(page document.Page, query string, opts Options) []document.Range {
	return LocateProjection(document.Project(page), query, opts)
}

// LocateProjection is Locate for a page that has already been projected.
func LocateProjection(proj document.Projection, query string, opts Options) []document.Range {
	hits := FindHits(proj.Runes, query, opts)
	if len(hits) == 0 {
		return nil
	}
	ranges := make([]document.Range, 0, len(hits))
	for _, h := range hits {
		if r := proj.Slice(h.Start, h.End); len(r) > 0 {
			ranges = append(ranges, r)
		}
	}
	return ranges
}

// FindHits returns buffer offsets of every occurrence of query in text.
// Blank queries and empty text produce no hits.
func FindHits(text []rune, query string, opts Options) []Hit {
	query = strings.TrimSpace(query)
	if query == "" || len(text) == 0 {
		return nil
	}
	if opts.Fuzzy {
		return findApproximate(text, query, opts)
	}

	pattern, err := CompilePattern(query, opts)
	if err != nil {
		logging.For("search").Warn("query did not compile", "query", query, "err", err)
		return nil
	}
	return pattern.FindAll(text)
}

// findApproximate runs the edit-distance scan over a whitespace-stripped copy
// of text and maps the hits back onto the original offsets.
func findApproximate(text []rune, query string, opts Options) []Hit {
	pattern := []rune(stripWhitespace(query))
	if len(pattern) == 0 {
		return nil
	}
	stripped, offsets := stripRunes(text)
	if len(stripped) == 0 {
		return nil
	}

	fold := !opts.CaseSensitive
	foldedText, textBuf := acquireRunes(stripped, fold)
	defer releaseRunes(textBuf)
	foldedPattern, patternBuf := acquireRunes(pattern, fold)
	defer releaseRunes(patternBuf)

	matcher := NewApproximateMatcher(MaxErrors(len(pattern), opts.FuzzyThreshold))
	hits := matcher.FindAll(foldedText, foldedPattern)
	for i := range hits {
		hits[i].Start = offsets[hits[i].Start]
		hits[i].End = offsets[hits[i].End-1] + 1
	}
	return hits
}

// stripRunes drops whitespace and records, for every kept rune, its offset in
// the original slice.
func stripRunes(text []rune) ([]rune, []int) {
	kept := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text))
	for i, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		kept = append(kept, r)
		offsets = append(offsets, i)
	}
	return kept, offsets
}
