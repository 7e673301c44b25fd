package state

import (
	"fmt"
	"unicode"

	"github.com/kk-code-lab/runmark/internal/highlight"
	"github.com/kk-code-lab/runmark/internal/layout"
	"github.com/kk-code-lab/runmark/internal/logging"
)

// StateReducer applies actions to an AppState.
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies action to state in place and returns it.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	if state.QueryActive {
		if handled := r.reduceQueryInput(state, action); handled {
			return state, nil
		}
	}

	switch a := action.(type) {
	case QueryStartAction:
		state.QueryActive = true
		state.QueryInput = []rune(state.Status.Query)
		state.QueryCursor = len(state.QueryInput)

	case ClearSearchAction:
		state.Engine.Clear()

	case NextMatchAction:
		state.Engine.Next()
	case PrevMatchAction:
		state.Engine.Prev()
	case FirstMatchAction:
		if state.Engine.MatchCount() > 0 {
			state.Engine.GoTo(0)
		}
	case GoToMatchAction:
		state.Engine.GoTo(a.Index)

	case ToggleCaseAction:
		state.Options.CaseSensitive = !state.Options.CaseSensitive
		r.rerun(state)
	case ToggleFlexibleAction:
		state.Options.FlexibleWhitespace = !state.Options.FlexibleWhitespace
		r.rerun(state)
	case ToggleFuzzyAction:
		state.Options.Fuzzy = !state.Options.Fuzzy
		r.rerun(state)
	case ToggleAutoScrollAction:
		state.Options.AutoScroll = !state.Options.AutoScroll
		r.rerun(state)

	case ZoomInAction:
		r.setZoom(state, state.Zoom+layout.ZoomStep)
	case ZoomOutAction:
		r.setZoom(state, state.Zoom-layout.ZoomStep)
	case ZoomResetAction:
		r.setZoom(state, layout.DefaultZoom)

	case ScrollUpAction:
		state.ScrollOffset--
		state.clampScroll()
	case ScrollDownAction:
		state.ScrollOffset++
		state.clampScroll()
	case ScrollPageUpAction:
		state.ScrollOffset -= state.ViewHeight()
		state.clampScroll()
	case ScrollPageDownAction:
		state.ScrollOffset += state.ViewHeight()
		state.clampScroll()
	case ScrollHomeAction:
		state.ScrollOffset = 0
	case ScrollEndAction:
		state.ScrollOffset = state.MaxScroll()

	case RevealAction:
		state.reveal(a.Ref)

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampScroll()

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
	case HelpHideAction:
		state.HelpVisible = false

	case QuitAction, SuspendAction:
		// Handled by the application loop.

	default:
		return state, fmt.Errorf("state: unhandled action %T", action)
	}
	return state, nil
}

// reduceQueryInput edits the query line. It reports false for actions that
// should fall through to the normal handling.
func (r *StateReducer) reduceQueryInput(state *AppState, action Action) bool {
	switch a := action.(type) {
	case QueryCharAction:
		state.QueryInput = append(state.QueryInput[:state.QueryCursor], append([]rune{a.Char}, state.QueryInput[state.QueryCursor:]...)...)
		state.QueryCursor++
	case QueryBackspaceAction:
		if state.QueryCursor > 0 {
			state.QueryInput = append(state.QueryInput[:state.QueryCursor-1], state.QueryInput[state.QueryCursor:]...)
			state.QueryCursor--
		}
	case QueryDeleteWordAction:
		start := previousWordBoundary(state.QueryInput, state.QueryCursor)
		state.QueryInput = append(state.QueryInput[:start], state.QueryInput[state.QueryCursor:]...)
		state.QueryCursor = start
	case QueryMoveCursorAction:
		switch a.Direction {
		case "left":
			state.QueryCursor = max(state.QueryCursor-1, 0)
		case "right":
			state.QueryCursor = min(state.QueryCursor+1, len(state.QueryInput))
		case "home":
			state.QueryCursor = 0
		case "end":
			state.QueryCursor = len(state.QueryInput)
		}
	case QuerySubmitAction:
		state.QueryActive = false
		query := state.Query()
		count := state.Engine.Search(query, state.Options)
		logging.For("state").Debug("query submitted", "query", query, "matches", count)
	case QueryCancelAction:
		state.QueryActive = false
		state.QueryInput = nil
		state.QueryCursor = 0
	default:
		return false
	}
	return true
}

// ApplyContexts runs the initial search. An empty set leaves the engine
// untouched.
func (r *StateReducer) ApplyContexts(state *AppState, contexts []highlight.Context) {
	if len(contexts) == 0 {
		return
	}
	state.Engine.Apply(contexts, state.Options)
}

// rerun repeats the remembered search with the current options.
func (r *StateReducer) rerun(state *AppState) {
	switch {
	case len(state.Engine.Contexts()) > 0:
		state.Engine.SearchMultiple(state.Engine.Contexts(), state.Options)
	case state.Engine.Query() != "":
		state.Engine.Search(state.Engine.Query(), state.Options)
	}
}

// setZoom re-lays the document out and hands the new layout to the engine,
// which replays the remembered search.
func (r *StateReducer) setZoom(state *AppState, zoom int) {
	zoom = layout.ClampZoom(zoom)
	if zoom == state.Zoom {
		return
	}
	state.Zoom = zoom
	doc := state.Layouter.Layout(zoom)
	state.Lines = BuildLines(doc)
	state.ScrollOffset = 0
	state.Surface.Reset(doc)
	state.Engine.SetDocument(doc)
	state.Status = state.Engine.Snapshot()
	state.clampScroll()
}

func isSearchWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func previousWordBoundary(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	i := pos
	for i > 0 && !isSearchWordChar(runes[i-1]) {
		i--
	}
	for i > 0 && isSearchWordChar(runes[i-1]) {
		i--
	}
	return i
}
