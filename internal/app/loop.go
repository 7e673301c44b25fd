package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/runmark/internal/logging"
	statepkg "github.com/kk-code-lab/runmark/internal/state"
	"github.com/kk-code-lab/runmark/internal/ui/input"
	renderui "github.com/kk-code-lab/runmark/internal/ui/render"
)

// NewApplication opens the terminal and builds a viewer for opts.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewApplicationWithScreen(screen, opts), nil
}

// NewApplicationWithScreen builds a viewer on an initialized screen.
func NewApplicationWithScreen(screen tcell.Screen, opts Options) *Application {
	// Parse mouse sequences so clicks on matches arrive as events.
	screen.EnableMouse()

	w, h := screen.Size()
	state := statepkg.NewAppState(statepkg.Config{
		Name:     opts.Name,
		Layouter: opts.Layouter,
		Zoom:     opts.Zoom,
		Options:  opts.Search,
		Width:    w,
		Height:   h,
	})

	actionCh := make(chan statepkg.Action, 10)
	reducer := statepkg.NewStateReducer()
	reducer.ApplyContexts(state, opts.Contexts)

	inputHandler := input.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	logging.For("app").Info("viewer started",
		"name", opts.Name,
		"pages", len(state.Document().Pages),
		"contexts", len(opts.Contexts),
		"matches", state.Status.MatchCount)

	return &Application{
		screen:   screen,
		state:    state,
		reducer:  reducer,
		renderer: renderui.NewRenderer(screen, opts.Theme),
		input:    inputHandler,
		actionCh: actionCh,
	}
}

// Run renders and processes events until the user quits.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse scrolls on the wheel and activates a match on primary click.
// It runs on the loop goroutine, so actions are applied directly rather than
// queued on actionCh, which only this loop drains.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.state.HelpVisible {
		return false
	}
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		return app.handleAction(statepkg.ScrollUpAction{})
	case buttons&tcell.WheelDown != 0:
		return app.handleAction(statepkg.ScrollDownAction{})
	case buttons&tcell.Button1 != 0:
		x, y := ev.Position()
		if match, ok := app.renderer.MatchAt(x, y); ok {
			return app.handleAction(statepkg.GoToMatchAction{Index: match})
		}
	}
	return false
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	app.state.LastError = nil
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		logging.For("app").Warn("action failed", "action", action, "error", err)
		app.state.LastError = err
	}
	return true
}
