// Package logging wires log/slog for runmark. Debug output is switched on by
// RUNMARK_DEBUG=1 and goes to RUNMARK_DEBUG_FILE when that is set, so the
// terminal viewer never writes over its own screen.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

const (
	EnvDebug     = "RUNMARK_DEBUG"
	EnvDebugFile = "RUNMARK_DEBUG_FILE"
)

// Options selects where records go and at which level.
type Options struct {
	Debug bool
	// File, when set, receives all records instead of Stderr.
	File   string
	Stderr io.Writer
	// Quiet discards warn records when no file is configured. The viewer
	// sets it because stderr is the screen.
	Quiet bool
}

var debugOn atomic.Bool

// FromEnv fills Debug and File from the environment without overriding
// values the caller already set.
func FromEnv(opts Options) Options {
	if !opts.Debug && os.Getenv(EnvDebug) == "1" {
		opts.Debug = true
	}
	if opts.File == "" {
		opts.File = strings.TrimSpace(os.Getenv(EnvDebugFile))
	}
	return opts
}

// Setup installs the default slog logger. The returned closer flushes and
// closes the log file, if any.
func Setup(opts Options) (func() error, error) {
	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}

	var (
		w      io.Writer = opts.Stderr
		closer           = func() error { return nil }
	)
	if w == nil {
		w = os.Stderr
	}

	switch {
	case opts.File != "":
		path := opts.File
		if !filepath.IsAbs(path) {
			if cwd, err := os.Getwd(); err == nil {
				path = filepath.Join(cwd, path)
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closer, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = f.Close
	case opts.Quiet:
		w = io.Discard
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	debugOn.Store(opts.Debug)
	return closer, nil
}

// DebugEnabled reports whether debug records are being written. Hot paths
// check it before building attributes.
func DebugEnabled() bool {
	return debugOn.Load()
}

// For returns the default logger tagged with a component name.
func For(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
