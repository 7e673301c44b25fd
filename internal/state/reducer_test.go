package state

import (
	"strings"
	"testing"

	"github.com/kk-code-lab/runmark/internal/document"
	"github.com/kk-code-lab/runmark/internal/highlight"
	"github.com/kk-code-lab/runmark/internal/layout"
	"github.com/kk-code-lab/runmark/internal/search"
)

func newTestState(t *testing.T, text string, width, height int) (*AppState, *StateReducer) {
	t.Helper()
	flow, err := layout.NewFlow(text, layout.Options{Width: 40, RunLength: 6})
	if err != nil {
		t.Fatalf("NewFlow: %v", err)
	}
	state := NewAppState(Config{
		Name:     "test.txt",
		Layouter: flow,
		Zoom:     layout.DefaultZoom,
		Options:  search.DefaultOptions(),
		Width:    width,
		Height:   height,
	})
	t.Cleanup(func() { _ = state.Close() })
	return state, NewStateReducer()
}

func dispatch(t *testing.T, r *StateReducer, s *AppState, actions ...Action) {
	t.Helper()
	for _, a := range actions {
		if _, err := r.Reduce(s, a); err != nil {
			t.Fatalf("Reduce(%T): %v", a, err)
		}
	}
}

func typeQuery(t *testing.T, r *StateReducer, s *AppState, q string) {
	t.Helper()
	dispatch(t, r, s, QueryStartAction{})
	for _, ch := range q {
		dispatch(t, r, s, QueryCharAction{Char: ch})
	}
	dispatch(t, r, s, QuerySubmitAction{})
}

func TestBuildLines(t *testing.T) {
	doc := document.Document{Pages: []document.Page{
		{Runs: []document.Run{{Text: "a"}, {Text: "b", EndOfLine: true}, {Text: "c"}}},
		{Runs: []document.Run{{Text: "d", EndOfLine: true}}},
	}}
	got := BuildLines(doc)
	want := []VisualLine{
		{Page: 0, FirstRun: 0, LastRun: 1},
		{Page: 0, FirstRun: 2, LastRun: 2},
		{Page: 1, FirstRun: -1, LastRun: -1, Separator: true},
		{Page: 1, FirstRun: 0, LastRun: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("BuildLines returned %d lines, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLineOf(t *testing.T) {
	state, _ := newTestState(t, "one two\nthree\ffour", 80, 24)
	for _, tt := range []struct {
		page, run, want int
	}{
		{0, 0, 0},
		{0, 1, 0},
		{0, 2, 1},
		{1, 0, 3},
		{1, 5, -1},
		{2, 0, -1},
	} {
		if got := state.LineOf(tt.page, tt.run); got != tt.want {
			t.Fatalf("LineOf(%d,%d) = %d, want %d", tt.page, tt.run, got, tt.want)
		}
	}
}

func TestQueryInputSubmitSearches(t *testing.T) {
	state, r := newTestState(t, "alpha beta\ngamma alpha", 80, 24)

	typeQuery(t, r, state, "alpah")
	dispatch(t, r, state, QueryStartAction{})
	if got := state.Query(); got != "alpah" {
		t.Fatalf("query input restarts with last query, got %q", got)
	}
	dispatch(t, r, state,
		QueryBackspaceAction{},
		QueryBackspaceAction{},
		QueryCharAction{Char: 'h'},
		QueryCharAction{Char: 'a'},
		QuerySubmitAction{},
	)

	if state.QueryActive {
		t.Fatalf("expected query mode to end on submit")
	}
	if state.Status.Query != "alpha" || state.Status.MatchCount != 2 || state.Status.ActiveIndex != 0 {
		t.Fatalf("unexpected status after submit: %+v", state.Status)
	}
}

func TestQueryCursorEditing(t *testing.T) {
	state, r := newTestState(t, "text", 80, 24)
	dispatch(t, r, state, QueryStartAction{})
	for _, ch := range "foo bar" {
		dispatch(t, r, state, QueryCharAction{Char: ch})
	}
	dispatch(t, r, state,
		QueryMoveCursorAction{Direction: "home"},
		QueryCharAction{Char: '>'},
		QueryMoveCursorAction{Direction: "end"},
		QueryDeleteWordAction{},
	)
	if got := state.Query(); got != ">foo " {
		t.Fatalf("query = %q, want %q", got, ">foo ")
	}
	dispatch(t, r, state, QueryCancelAction{})
	if state.QueryActive || state.Query() != "" {
		t.Fatalf("cancel should leave query mode with empty input")
	}
	if state.Status.MatchCount != 0 {
		t.Fatalf("cancel must not search")
	}
}

func TestNavigationActions(t *testing.T) {
	state, r := newTestState(t, "x one x two x", 80, 24)
	typeQuery(t, r, state, "x")

	steps := []struct {
		action Action
		want   int
	}{
		{NextMatchAction{}, 1},
		{NextMatchAction{}, 2},
		{NextMatchAction{}, 0},
		{PrevMatchAction{}, 2},
		{FirstMatchAction{}, 0},
		{GoToMatchAction{Index: 1}, 1},
		{GoToMatchAction{Index: 9}, -1},
	}
	for _, step := range steps {
		dispatch(t, r, state, step.action)
		if state.Status.ActiveIndex != step.want {
			t.Fatalf("after %T active = %d, want %d", step.action, state.Status.ActiveIndex, step.want)
		}
	}

	dispatch(t, r, state, ClearSearchAction{})
	if state.Status.MatchCount != 0 || state.Surface.Rewritten() != 0 {
		t.Fatalf("clear should restore the document, status %+v", state.Status)
	}
}

func TestToggleOptionsRerunSearch(t *testing.T) {
	state, r := newTestState(t, "Word word WORD wo rd", 80, 24)
	typeQuery(t, r, state, "word")
	if state.Status.MatchCount != 4 {
		t.Fatalf("flexible case-insensitive search should find 4, got %d", state.Status.MatchCount)
	}

	dispatch(t, r, state, ToggleFlexibleAction{})
	if state.Status.MatchCount != 3 {
		t.Fatalf("literal search should find 3, got %d", state.Status.MatchCount)
	}
	dispatch(t, r, state, ToggleCaseAction{})
	if state.Status.MatchCount != 1 {
		t.Fatalf("case-sensitive literal search should find 1, got %d", state.Status.MatchCount)
	}
	dispatch(t, r, state, ToggleCaseAction{}, ToggleFuzzyAction{})
	if !state.Options.Fuzzy || state.Status.MatchCount != 4 {
		t.Fatalf("fuzzy search should find 4, got %d", state.Status.MatchCount)
	}
}

func TestZoomReplaysSearch(t *testing.T) {
	text := strings.Repeat("filler text ", 20) + "needle"
	state, r := newTestState(t, text, 80, 24)
	typeQuery(t, r, state, "needle")
	before := len(state.Lines)

	dispatch(t, r, state, ZoomInAction{})
	if state.Zoom != layout.DefaultZoom+layout.ZoomStep {
		t.Fatalf("zoom = %d", state.Zoom)
	}
	if len(state.Lines) <= before {
		t.Fatalf("zooming in should produce more lines: %d -> %d", before, len(state.Lines))
	}
	if state.Status.MatchCount != 1 || state.Status.ActiveIndex != 0 {
		t.Fatalf("search should be replayed after relayout: %+v", state.Status)
	}

	for i := 0; i < 10; i++ {
		dispatch(t, r, state, ZoomOutAction{})
	}
	if state.Zoom != layout.MinZoom {
		t.Fatalf("zoom should clamp at %d, got %d", layout.MinZoom, state.Zoom)
	}
	dispatch(t, r, state, ZoomResetAction{})
	if state.Zoom != layout.DefaultZoom || state.Status.MatchCount != 1 {
		t.Fatalf("reset zoom = %d, matches %d", state.Zoom, state.Status.MatchCount)
	}
}

func TestAutoScrollRevealsActiveMatch(t *testing.T) {
	lines := make([]string, 60)
	for i := range lines {
		lines[i] = "line"
	}
	lines[50] = "target here"
	state, r := newTestState(t, strings.Join(lines, "\n"), 80, 12)

	typeQuery(t, r, state, "target")
	line := state.LineOf(0, state.Lines[50].FirstRun)
	if line != 50 {
		t.Fatalf("LineOf target run = %d, want 50", line)
	}
	if line < state.ScrollOffset || line >= state.ScrollOffset+state.ViewHeight() {
		t.Fatalf("active match line %d not visible (scroll %d, height %d)", line, state.ScrollOffset, state.ViewHeight())
	}

	dispatch(t, r, state, ScrollHomeAction{}, ToggleAutoScrollAction{}, NextMatchAction{})
	if state.ScrollOffset != 0 {
		t.Fatalf("scroll should stay put with auto-scroll off, got %d", state.ScrollOffset)
	}
}

func TestScrollClamping(t *testing.T) {
	state, r := newTestState(t, strings.Repeat("row\n", 30), 80, 12)
	dispatch(t, r, state, ScrollUpAction{})
	if state.ScrollOffset != 0 {
		t.Fatalf("scroll went negative: %d", state.ScrollOffset)
	}
	dispatch(t, r, state, ScrollEndAction{})
	if state.ScrollOffset != state.MaxScroll() || state.MaxScroll() != 20 {
		t.Fatalf("scroll end = %d, max %d", state.ScrollOffset, state.MaxScroll())
	}
	dispatch(t, r, state, ScrollPageDownAction{}, ScrollDownAction{})
	if state.ScrollOffset != 20 {
		t.Fatalf("scroll past end: %d", state.ScrollOffset)
	}
	dispatch(t, r, state, ScrollPageUpAction{})
	if state.ScrollOffset != 10 {
		t.Fatalf("page up = %d, want 10", state.ScrollOffset)
	}
	dispatch(t, r, state, ResizeAction{Width: 80, Height: 40})
	if state.ScrollOffset != 0 {
		t.Fatalf("resize should clamp scroll, got %d", state.ScrollOffset)
	}
}

func TestApplyContexts(t *testing.T) {
	state, r := newTestState(t, "red green red", 80, 24)
	r.ApplyContexts(state, []highlight.Context{{Query: "red"}, {Query: "green"}})
	if state.Status.MatchCount != 3 || len(state.Status.ContextCounts) != 2 {
		t.Fatalf("multi-context status %+v", state.Status)
	}

	dispatch(t, r, state, ToggleCaseAction{})
	if len(state.Engine.Contexts()) != 2 || state.Status.MatchCount != 3 {
		t.Fatalf("toggle should rerun the context set: %+v", state.Status)
	}

	yes := true
	r.ApplyContexts(state, []highlight.Context{{Query: "RED", Overrides: search.Overrides{CaseSensitive: &yes}}})
	if state.Status.MatchCount != 0 || state.Status.Query != "RED" {
		t.Fatalf("single context keeps its overrides: %+v", state.Status)
	}
}

func TestUnknownActionIsAnError(t *testing.T) {
	state, r := newTestState(t, "text", 80, 24)
	if _, err := r.Reduce(state, struct{}{}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
