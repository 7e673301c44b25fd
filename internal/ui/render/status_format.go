package render

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/runmark/internal/highlight"
	"github.com/kk-code-lab/runmark/internal/search"
)

func formatMatchSummary(status highlight.Change) string {
	switch {
	case status.Query == "" && len(status.Contexts) == 0:
		return " no search"
	case status.MatchCount == 0:
		return fmt.Sprintf(" %s: no matches", summaryLabel(status))
	case status.ActiveIndex < 0:
		return fmt.Sprintf(" %s: %d matches", summaryLabel(status), status.MatchCount)
	default:
		return fmt.Sprintf(" %s: %d/%d", summaryLabel(status), status.ActiveIndex+1, status.MatchCount)
	}
}

func summaryLabel(status highlight.Change) string {
	if status.Query != "" {
		return fmt.Sprintf("%q", status.Query)
	}
	return fmt.Sprintf("%d queries", len(status.Contexts))
}

func formatOptionFlags(opts search.Options) string {
	parts := []string{
		"case:" + onOff(opts.CaseSensitive),
		"flex:" + onOff(opts.FlexibleWhitespace),
	}
	if opts.Fuzzy {
		parts = append(parts, fmt.Sprintf("fuzzy:%s", trimTrailingZero(fmt.Sprintf("%.2f", opts.FuzzyThreshold))))
	} else {
		parts = append(parts, "fuzzy:off")
	}
	if !opts.AutoScroll {
		parts = append(parts, "scroll:off")
	}
	return strings.Join(parts, " ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}
