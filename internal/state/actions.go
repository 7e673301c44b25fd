package state

import "github.com/kk-code-lab/runmark/internal/highlight"

// Action is the base interface for all state mutations
type Action interface{}

// ===== QUERY INPUT ACTIONS =====

type QueryStartAction struct{}
type QueryCharAction struct {
	Char rune
}
type QueryBackspaceAction struct{}
type QueryDeleteWordAction struct{}
type QueryMoveCursorAction struct {
	Direction string // "left", "right", "home", "end"
}
type QuerySubmitAction struct{}
type QueryCancelAction struct{}

// ===== MATCH ACTIONS =====

type ClearSearchAction struct{}
type NextMatchAction struct{}
type PrevMatchAction struct{}
type FirstMatchAction struct{}
type GoToMatchAction struct {
	Index int
}

// ===== OPTION ACTIONS =====

type ToggleCaseAction struct{}
type ToggleFlexibleAction struct{}
type ToggleFuzzyAction struct{}
type ToggleAutoScrollAction struct{}

// ===== LAYOUT ACTIONS =====

type ZoomInAction struct{}
type ZoomOutAction struct{}
type ZoomResetAction struct{}

// ===== SCROLL ACTIONS =====

type ScrollUpAction struct{}
type ScrollDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollHomeAction struct{}
type ScrollEndAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type HelpToggleAction struct{}
type HelpHideAction struct{}

// RevealAction scrolls a segment into view. The engine's reveal requests
// are applied directly; this action lets other callers do the same.
type RevealAction struct {
	Ref highlight.SegmentRef
}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
