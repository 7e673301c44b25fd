package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/runmark/internal/highlight"
	"github.com/kk-code-lab/runmark/internal/layout"
	"github.com/kk-code-lab/runmark/internal/search"
	statepkg "github.com/kk-code-lab/runmark/internal/state"
	inputui "github.com/kk-code-lab/runmark/internal/ui/input"
	renderui "github.com/kk-code-lab/runmark/internal/ui/render"
)

// Options configures a viewer session.
type Options struct {
	Name     string
	Layouter layout.Layouter
	Zoom     int
	Search   search.Options
	// Contexts are searched on startup. A single context behaves like a
	// query typed at the prompt.
	Contexts []highlight.Context
	Theme    renderui.ColorTheme
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	shouldQuit bool
}

// Close cleans up resources.
func (app *Application) Close() error {
	err := app.state.Close()
	app.screen.Fini()
	flushPendingInput()
	return err
}

// State exposes the application state for inspection.
func (app *Application) State() *statepkg.AppState {
	return app.state
}
