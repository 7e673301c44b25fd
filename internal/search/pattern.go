package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// flexibleRuneLimit is the longest whitespace-stripped query that still gets
// per-character whitespace tolerance. Longer queries only tolerate whitespace
// between their tokens.
const flexibleRuneLimit = 200

const (
	optionalSpace = `\s*`
	requiredSpace = `\s+`
)

// Pattern is a compiled literal or flexible-whitespace query.
type Pattern struct {
	re   *regexp2.Regexp
	expr string
}

// CompilePattern builds the matcher for query. It returns nil when the query
// is blank after trimming.
func CompilePattern(query string, opts Options) (*Pattern, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	expr := patternExpression(query, opts.FlexibleWhitespace)
	flags := regexp2.None
	if !opts.CaseSensitive {
		flags |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, flags)
	if err != nil {
		return nil, err
	}
	return &Pattern{re: re, expr: expr}, nil
}

func patternExpression(query string, flexible bool) string {
	if !flexible {
		return regexp2.Escape(query)
	}

	stripped := stripWhitespace(query)
	if utf8.RuneCountInString(stripped) > flexibleRuneLimit {
		tokens := strings.Fields(query)
		for i, tok := range tokens {
			tokens[i] = regexp2.Escape(tok)
		}
		return strings.Join(tokens, requiredSpace)
	}

	var b strings.Builder
	b.Grow(len(stripped) * (len(optionalSpace) + 2))
	first := true
	for _, r := range stripped {
		if !first {
			b.WriteString(optionalSpace)
		}
		first = false
		b.WriteString(regexp2.Escape(string(r)))
	}
	return b.String()
}

// String returns the generated expression.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// FindAll scans text for non-overlapping hits. The scan resumes right after
// each hit and steps one rune past zero-length hits.
func (p *Pattern) FindAll(text []rune) []Hit {
	if p == nil || len(text) == 0 {
		return nil
	}

	var hits []Hit
	for at := 0; at <= len(text); {
		m, err := p.re.FindRunesMatchStartingAt(text, at)
		if err != nil {
			debugLog("pattern scan aborted", "expr", p.expr, "at", at, "err", err)
			break
		}
		if m == nil {
			break
		}
		start := m.Index
		end := start + m.Length
		if end <= start {
			at = start + 1
			continue
		}
		hits = append(hits, Hit{Start: start, End: end})
		at = end
	}
	return hits
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
