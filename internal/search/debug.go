package search

import "github.com/kk-code-lab/runmark/internal/logging"

func debugEnabled() bool {
	return logging.DebugEnabled()
}

func debugLog(msg string, args ...any) {
	if !debugEnabled() {
		return
	}
	logging.For("search").Debug(msg, args...)
}
