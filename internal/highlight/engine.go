// Package highlight owns the match list of a document, the active-match
// pointer and the rewriting of run projections that makes matches visible.
//
// An Engine is not safe for concurrent use. Every exported method runs to
// completion and leaves the engine and its surface consistent.
package highlight

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"github.com/kk-code-lab/runmark/internal/document"
	"github.com/kk-code-lab/runmark/internal/logging"
	"github.com/kk-code-lab/runmark/internal/search"
)

// TagCount is the number of distinct context tags (colors) in use.
const TagCount = 8

// ErrClosed is the panic value raised when a closed Engine is used.
var ErrClosed = errors.New("highlight: engine used after Close")

// Match is one located occurrence.
type Match struct {
	Page    int
	Range   document.Range
	Context int
	Tag     int
}

// Context is one registered query of a multi-query search.
type Context struct {
	Query     string
	Overrides search.Overrides
}

// MultiResult reports the outcome of SearchMultiple.
type MultiResult struct {
	Total      int
	PerContext []int
}

type runKey struct {
	page int
	run  int
}

// Engine is the search and navigation state for one document.
type Engine struct {
	surface Surface
	doc     document.Document

	matches []Match
	refs    [][]SegmentRef
	active  int
	touched map[runKey][]Segment

	query    string
	contexts []Context
	multi    bool
	options  search.Options
	counts   []int

	listeners      []listenerEntry
	nextListenerID int
	closed         bool
}

// New returns an engine drawing through surface. The document starts empty.
func New(surface Surface) *Engine {
	if surface == nil {
		panic("highlight: nil surface")
	}
	return &Engine{
		surface: surface,
		active:  -1,
		touched: make(map[runKey][]Segment),
		options: search.DefaultOptions(),
	}
}

// SetDocument replaces the document, typically after a re-layout. A
// remembered query or context set is searched again before returning.
func (e *Engine) SetDocument(doc document.Document) {
	e.ensureOpen()
	e.doc = doc
	// Projections of the previous layout are gone with it.
	e.touched = make(map[runKey][]Segment)
	e.matches = nil
	e.refs = nil
	e.active = -1
	e.counts = nil

	switch {
	case e.multi && len(e.contexts) > 0:
		logging.For("highlight").Debug("replaying contexts after relayout", "contexts", len(e.contexts))
		e.SearchMultiple(e.contexts, e.options)
	case !e.multi && e.query != "":
		logging.For("highlight").Debug("replaying query after relayout", "query", e.query)
		e.Search(e.query, e.options)
	}
}

// Search highlights every occurrence of query and activates the first one.
// A blank query clears. It returns the match count.
func (e *Engine) Search(query string, opts search.Options) int {
	e.ensureOpen()
	e.reset()
	e.multi = false
	e.contexts = nil
	e.counts = nil
	e.options = opts

	if strings.TrimSpace(query) == "" {
		e.query = ""
		e.notify()
		return 0
	}
	e.query = query

	for pi, page := range e.doc.Pages {
		ranges := search.Locate(page, query, opts)
		if len(ranges) == 0 {
			continue
		}
		pageMatches := make([]Match, len(ranges))
		for i, r := range ranges {
			pageMatches[i] = Match{Page: pi, Range: r}
		}
		e.applyMatches(pi, pageMatches)
	}

	if len(e.matches) > 0 {
		e.setActive(0)
	}
	e.notify()
	return len(e.matches)
}

// SearchMultiple runs every context against the document. Each context's
// overrides are merged on top of shared. Matches of all contexts are
// interleaved in document order.
func (e *Engine) SearchMultiple(contexts []Context, shared search.Options) MultiResult {
	e.ensureOpen()
	contexts = slices.Clone(contexts)
	e.reset()
	e.multi = true
	e.query = ""
	e.contexts = contexts
	e.options = shared
	e.counts = make([]int, len(contexts))

	if !anyQuery(contexts) {
		e.notify()
		return MultiResult{PerContext: slices.Clone(e.counts)}
	}

	for pi, page := range e.doc.Pages {
		proj := document.Project(page)
		var pageMatches []Match
		for ci, c := range contexts {
			opts := shared.Merge(c.Overrides)
			for _, r := range search.LocateProjection(proj, c.Query, opts) {
				pageMatches = append(pageMatches, Match{Page: pi, Range: r, Context: ci, Tag: ci % TagCount})
				e.counts[ci]++
			}
		}
		if len(pageMatches) == 0 {
			continue
		}
		slices.SortStableFunc(pageMatches, compareMatches)
		e.applyMatches(pi, pageMatches)
	}

	if len(e.matches) > 0 {
		e.setActive(0)
	}
	e.notify()
	return MultiResult{Total: len(e.matches), PerContext: slices.Clone(e.counts)}
}

// Apply runs a saved context set. No contexts clears, one context is a
// single-query search with its overrides merged, more are a multi-context
// search.
func (e *Engine) Apply(contexts []Context, shared search.Options) MultiResult {
	switch len(contexts) {
	case 0:
		e.Clear()
		return MultiResult{}
	case 1:
		n := e.Search(contexts[0].Query, shared.Merge(contexts[0].Overrides))
		return MultiResult{Total: n, PerContext: []int{n}}
	default:
		return e.SearchMultiple(contexts, shared)
	}
}

// Clear restores every rewritten run and forgets the query.
func (e *Engine) Clear() {
	e.ensureOpen()
	e.reset()
	e.query = ""
	e.contexts = nil
	e.multi = false
	e.counts = nil
	e.notify()
}

// Next activates the following match, wrapping to the first. It returns -1
// when there is nothing to navigate.
func (e *Engine) Next() int {
	e.ensureOpen()
	total := len(e.matches)
	if total == 0 {
		return -1
	}
	return e.GoTo((e.active + 1) % total)
}

// Prev activates the preceding match, wrapping to the last. With no active
// match it starts from the last one.
func (e *Engine) Prev() int {
	e.ensureOpen()
	total := len(e.matches)
	if total == 0 {
		return -1
	}
	if e.active < 0 {
		return e.GoTo(total - 1)
	}
	return e.GoTo((e.active - 1 + total) % total)
}

// GoTo activates match index. Out-of-range indexes leave no match active.
func (e *Engine) GoTo(index int) int {
	e.ensureOpen()
	e.setActive(index)
	e.notify()
	return e.active
}

// Close restores the surface and tears the engine down. Any later call
// panics with ErrClosed.
func (e *Engine) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.reset()
	e.listeners = nil
	e.closed = true
	return nil
}

// ActiveIndex returns the active match index or -1.
func (e *Engine) ActiveIndex() int {
	e.ensureOpen()
	return e.active
}

// MatchCount returns the number of matches across the document.
func (e *Engine) MatchCount() int {
	e.ensureOpen()
	return len(e.matches)
}

// Matches returns a copy of the ordered match list.
func (e *Engine) Matches() []Match {
	e.ensureOpen()
	out := make([]Match, len(e.matches))
	for i, m := range e.matches {
		m.Range = slices.Clone(m.Range)
		out[i] = m
	}
	return out
}

// ActiveMatch returns the active match.
func (e *Engine) ActiveMatch() (Match, bool) {
	e.ensureOpen()
	if e.active < 0 || e.active >= len(e.matches) {
		return Match{}, false
	}
	return e.matches[e.active], true
}

// ContextCounts returns per-context match counts of the last SearchMultiple.
func (e *Engine) ContextCounts() []int {
	e.ensureOpen()
	return slices.Clone(e.counts)
}

// Query returns the remembered single query.
func (e *Engine) Query() string {
	e.ensureOpen()
	return e.query
}

// Contexts returns the remembered context set.
func (e *Engine) Contexts() []Context {
	e.ensureOpen()
	return slices.Clone(e.contexts)
}

// Options returns the options of the last search.
func (e *Engine) Options() search.Options {
	e.ensureOpen()
	return e.options
}

// Document returns the current document.
func (e *Engine) Document() document.Document {
	e.ensureOpen()
	return e.doc
}

func (e *Engine) ensureOpen() {
	if e.closed {
		panic(ErrClosed)
	}
}

// reset restores rewritten runs to their original text and drops all matches.
func (e *Engine) reset() {
	keys := e.touchedKeys()
	for _, k := range keys {
		e.surface.SetRunProjection(k.page, k.run, []Segment{Literal(e.surface.RunText(k.page, k.run))})
	}
	e.touched = make(map[runKey][]Segment)
	e.matches = nil
	e.refs = nil
	e.active = -1
}

type markedSpan struct {
	start int
	end   int
	index int
}

type piece struct {
	start int
	end   int
	match int
}

// applyMatches appends the page's matches and rewrites each affected run as
// alternating literal and marked segments. When pieces overlap inside a run,
// the earlier match keeps the shared characters; a match left with no
// characters of its own refers to the segments that cover it.
func (e *Engine) applyMatches(page int, pageMatches []Match) {
	base := len(e.matches)
	e.matches = append(e.matches, pageMatches...)
	e.refs = append(e.refs, make([][]SegmentRef, len(pageMatches))...)

	byRun := make(map[int][]piece)
	for k, m := range pageMatches {
		for _, seg := range m.Range {
			byRun[seg.Run] = append(byRun[seg.Run], piece{start: seg.Start, end: seg.End, match: base + k})
		}
	}

	runs := make([]int, 0, len(byRun))
	for run := range byRun {
		runs = append(runs, run)
	}
	slices.Sort(runs)

	for _, run := range runs {
		pieces := byRun[run]
		slices.SortStableFunc(pieces, func(a, b piece) int { return cmp.Compare(a.start, b.start) })

		runes := []rune(e.surface.RunText(page, run))
		segments := make([]Segment, 0, 2*len(pieces)+1)
		var marked []markedSpan
		cursor := 0
		for _, p := range pieces {
			start := max(p.start, cursor)
			end := min(p.end, len(runes))
			if start >= end {
				// Fully covered by earlier pieces: point at the segments
				// that draw these characters.
				for _, m := range marked {
					if m.start < p.end && p.start < m.end {
						e.refs[p.match] = append(e.refs[p.match], SegmentRef{Page: page, Run: run, Index: m.index})
					}
				}
				continue
			}
			if start > cursor {
				segments = append(segments, Literal(string(runes[cursor:start])))
			}
			marked = append(marked, markedSpan{start: start, end: end, index: len(segments)})
			e.refs[p.match] = append(e.refs[p.match], SegmentRef{Page: page, Run: run, Index: len(segments)})
			segments = append(segments, Segment{
				Text:   string(runes[start:end]),
				Marked: true,
				Match:  p.match,
				Tag:    e.matches[p.match].Tag,
			})
			cursor = end
		}
		if len(segments) == 0 {
			continue
		}
		if cursor < len(runes) {
			segments = append(segments, Literal(string(runes[cursor:])))
		}

		key := runKey{page: page, run: run}
		e.touched[key] = segments
		e.surface.SetRunProjection(page, run, slices.Clone(segments))
	}
}

func (e *Engine) setActive(index int) {
	if e.active >= 0 && e.active < len(e.matches) {
		e.flag(e.active, false)
	}
	if index < 0 || index >= len(e.matches) {
		e.active = -1
		return
	}
	e.active = index
	e.flag(index, true)

	if !e.options.AutoScroll {
		return
	}
	if refs := e.refs[index]; len(refs) > 0 {
		e.surface.Reveal(refs[0])
	}
}

func (e *Engine) flag(index int, on bool) {
	var dirty []runKey
	for _, ref := range e.refs[index] {
		key := runKey{page: ref.Page, run: ref.Run}
		segments, ok := e.touched[key]
		if !ok || ref.Index >= len(segments) {
			continue
		}
		segments[ref.Index].Active = on
		if !slices.Contains(dirty, key) {
			dirty = append(dirty, key)
		}
	}
	for _, key := range dirty {
		e.surface.SetRunProjection(key.page, key.run, slices.Clone(e.touched[key]))
	}
}

func (e *Engine) touchedKeys() []runKey {
	keys := make([]runKey, 0, len(e.touched))
	for k := range e.touched {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b runKey) int {
		if c := cmp.Compare(a.page, b.page); c != 0 {
			return c
		}
		return cmp.Compare(a.run, b.run)
	})
	return keys
}

func compareMatches(a, b Match) int {
	fa, _ := a.Range.First()
	fb, _ := b.Range.First()
	if c := cmp.Compare(fa.Run, fb.Run); c != 0 {
		return c
	}
	return cmp.Compare(fa.Start, fb.Start)
}

func anyQuery(contexts []Context) bool {
	for _, c := range contexts {
		if strings.TrimSpace(c.Query) != "" {
			return true
		}
	}
	return false
}
