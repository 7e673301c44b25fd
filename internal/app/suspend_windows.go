//go:build windows

package app

import (
	"os"

	"golang.org/x/sys/windows"
)

// On Windows there is no SIGTSTP/SIGCONT; treat suspend as no-op.
func contSignals() []os.Signal {
	return nil
}

func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}

// flushPendingInput drops keystrokes typed while the viewer was closing so
// they do not reach the shell.
func flushPendingInput() {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return
	}
	_ = windows.FlushConsoleInputBuffer(handle)
}
