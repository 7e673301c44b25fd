package document

// Run is the smallest fragment of extracted text. Its text is never mutated;
// only the way it is displayed changes.
type Run struct {
	ID        string
	Text      string
	EndOfLine bool
}

// Page is an ordered sequence of runs plus whatever the renderer attached to it.
type Page struct {
	Runs   []Run
	Handle any
}

// Document is an ordered sequence of pages. It is replaced wholesale whenever
// layout changes.
type Document struct {
	Pages []Page
}

// RunCount returns the number of runs across all pages.
func (d Document) RunCount() int {
	total := 0
	for _, p := range d.Pages {
		total += len(p.Runs)
	}
	return total
}

// Empty reports whether the document has no text at all.
func (d Document) Empty() bool {
	for _, p := range d.Pages {
		for _, r := range p.Runs {
			if r.Text != "" {
				return false
			}
		}
	}
	return true
}

// Text returns the page's runs joined with no separator.
func (p Page) Text() string {
	n := 0
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range p.Runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}
