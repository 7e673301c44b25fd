//go:build !windows

package app

import (
	"os"
	"syscall"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/runmark/internal/state"
)

// contSignals are the signals that mean the shell resumed a stopped viewer.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	_ = app.screen.Suspend()
	// Stop only this process so a wrapping shell keeps job control.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		_, _ = app.reducer.Reduce(app.state, statepkg.ResizeAction{Width: w, Height: h})
	}
	return true
}

func flushPendingInput() {}
