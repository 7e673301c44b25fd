package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/runmark/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the application should stop reading input.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true
	}

	if ih.state != nil && ih.state.HelpVisible {
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyRune && (ev.Rune() == '?' || ev.Rune() == 'q') {
			ih.actionChan <- statepkg.HelpHideAction{}
		}
		return true
	}

	if ih.state != nil && ih.state.QueryActive {
		ih.processQueryKey(ev)
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.ClearSearchAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.NextMatchAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.ScrollUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.ScrollDownAction{}
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.ScrollHomeAction{}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.ScrollEndAction{}
	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case '/':
		ih.actionChan <- statepkg.QueryStartAction{}
	case 'n':
		ih.actionChan <- statepkg.NextMatchAction{}
	case 'N':
		ih.actionChan <- statepkg.PrevMatchAction{}
	case 'g':
		ih.actionChan <- statepkg.FirstMatchAction{}
	case 'c':
		ih.actionChan <- statepkg.ToggleCaseAction{}
	case 'w':
		ih.actionChan <- statepkg.ToggleFlexibleAction{}
	case 'f':
		ih.actionChan <- statepkg.ToggleFuzzyAction{}
	case 'a':
		ih.actionChan <- statepkg.ToggleAutoScrollAction{}
	case '+', '=':
		ih.actionChan <- statepkg.ZoomInAction{}
	case '-':
		ih.actionChan <- statepkg.ZoomOutAction{}
	case '0':
		ih.actionChan <- statepkg.ZoomResetAction{}
	case 'j', ' ':
		ih.actionChan <- statepkg.ScrollDownAction{}
	case 'k':
		ih.actionChan <- statepkg.ScrollUpAction{}
	case 'G':
		ih.actionChan <- statepkg.ScrollEndAction{}
	case '?':
		ih.actionChan <- statepkg.HelpToggleAction{}
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	}
	return true
}

func (ih *InputHandler) processQueryKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.actionChan <- statepkg.QueryCancelAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.QuerySubmitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			ih.actionChan <- statepkg.QueryDeleteWordAction{}
			return
		}
		ih.actionChan <- statepkg.QueryBackspaceAction{}
	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.QueryDeleteWordAction{}
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "left"}
	case tcell.KeyRight:
		ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "right"}
	case tcell.KeyHome, tcell.KeyCtrlA:
		ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "home"}
	case tcell.KeyEnd, tcell.KeyCtrlE:
		ih.actionChan <- statepkg.QueryMoveCursorAction{Direction: "end"}
	case tcell.KeyRune:
		if r := ev.Rune(); unicode.IsPrint(r) {
			ih.actionChan <- statepkg.QueryCharAction{Char: r}
		}
	}
}
