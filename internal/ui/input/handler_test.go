package input

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/runmark/internal/state"
)

func nextAction(t *testing.T, ch chan statepkg.Action) statepkg.Action {
	t.Helper()
	select {
	case action := <-ch:
		return action
	default:
		t.Fatal("expected an action to be emitted")
		return nil
	}
}

func TestQuestionMarkTogglesHelpInNormalMode(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '?', 0))

	if _, ok := nextAction(t, actionChan).(statepkg.HelpToggleAction); !ok {
		t.Fatal("expected HelpToggleAction for '?'")
	}
}

func TestEscapeHidesHelpBeforeOtherModes(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{HelpVisible: true, QueryActive: true})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))

	if action := nextAction(t, actionChan); action != (statepkg.HelpHideAction{}) {
		t.Fatalf("expected HelpHideAction, got %T", action)
	}
}

func TestHelpSwallowsOtherKeys(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{HelpVisible: true})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'n', 0))

	select {
	case action := <-actionChan:
		t.Fatalf("expected no action while help is visible, got %T", action)
	default:
	}
}

func TestNormalModeKeyBindings(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		ch   rune
		want statepkg.Action
	}{
		{tcell.KeyRune, '/', statepkg.QueryStartAction{}},
		{tcell.KeyRune, 'n', statepkg.NextMatchAction{}},
		{tcell.KeyRune, 'N', statepkg.PrevMatchAction{}},
		{tcell.KeyRune, 'g', statepkg.FirstMatchAction{}},
		{tcell.KeyRune, 'c', statepkg.ToggleCaseAction{}},
		{tcell.KeyRune, 'w', statepkg.ToggleFlexibleAction{}},
		{tcell.KeyRune, 'f', statepkg.ToggleFuzzyAction{}},
		{tcell.KeyRune, 'a', statepkg.ToggleAutoScrollAction{}},
		{tcell.KeyRune, '+', statepkg.ZoomInAction{}},
		{tcell.KeyRune, '-', statepkg.ZoomOutAction{}},
		{tcell.KeyRune, '0', statepkg.ZoomResetAction{}},
		{tcell.KeyEnter, 0, statepkg.NextMatchAction{}},
		{tcell.KeyEscape, 0, statepkg.ClearSearchAction{}},
		{tcell.KeyPgDn, 0, statepkg.ScrollPageDownAction{}},
		{tcell.KeyHome, 0, statepkg.ScrollHomeAction{}},
		{tcell.KeyCtrlZ, 0, statepkg.SuspendAction{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v-%q", tt.key, tt.ch), func(t *testing.T) {
			actionChan := make(chan statepkg.Action, 1)
			handler := NewInputHandler(actionChan)
			handler.SetState(&statepkg.AppState{})

			if !handler.ProcessEvent(tcell.NewEventKey(tt.key, tt.ch, 0)) {
				t.Fatal("handler should keep running")
			}
			if got := nextAction(t, actionChan); got != tt.want {
				t.Fatalf("got %T, want %T", got, tt.want)
			}
		})
	}
}

func TestQueryModeTypesRunes(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{QueryActive: true})

	// 'n' must be typed, not treated as next-match.
	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'n', 0))
	action, ok := nextAction(t, actionChan).(statepkg.QueryCharAction)
	if !ok || action.Char != 'n' {
		t.Fatalf("expected QueryCharAction{'n'}, got %#v", action)
	}
}

func TestQueryModeEditingKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"enter submits", tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.QuerySubmitAction{}},
		{"escape cancels", tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.QueryCancelAction{}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.QueryBackspaceAction{}},
		{"alt backspace deletes word", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModAlt), statepkg.QueryDeleteWordAction{}},
		{"ctrl-w deletes word", tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), statepkg.QueryDeleteWordAction{}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, 0), statepkg.QueryMoveCursorAction{Direction: "left"}},
		{"ctrl-e", tcell.NewEventKey(tcell.KeyCtrlE, 0, tcell.ModCtrl), statepkg.QueryMoveCursorAction{Direction: "end"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actionChan := make(chan statepkg.Action, 1)
			handler := NewInputHandler(actionChan)
			handler.SetState(&statepkg.AppState{QueryActive: true})

			handler.ProcessEvent(tt.ev)
			if got := nextAction(t, actionChan); got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestQuitStopsProcessing(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetState(&statepkg.AppState{})

	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0)) {
		t.Fatal("'q' should stop input processing")
	}
	if _, ok := nextAction(t, actionChan).(statepkg.QuitAction); !ok {
		t.Fatal("expected QuitAction")
	}
}

func TestResizeEmitsAction(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)

	handler.ProcessEvent(tcell.NewEventResize(90, 30))

	if got := nextAction(t, actionChan); got != (statepkg.ResizeAction{Width: 90, Height: 30}) {
		t.Fatalf("got %#v", got)
	}
}
