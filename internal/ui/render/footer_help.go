package render

import "strings"

// buildFooterHelpText returns the key hints shown at the right of the status line.
func buildFooterHelpText() string {
	return strings.Join([]string{"/: search", "n/N: next/prev", "+/-: zoom", "?: help"}, "  ") + " "
}
