package layout

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/kk-code-lab/runmark/internal/document"
)

// runNamespace seeds identities for items that arrive without an id.
var runNamespace = uuid.MustParse("6f1c8b52-3e0a-5d47-9a1e-2b7c4f90d8a3")

// Fixed serves a document whose runs came from the input itself. Zoom does
// not change its fragmentation.
type Fixed struct {
	doc document.Document
}

// Layout returns a fresh copy of the document.
func (f *Fixed) Layout(zoom int) document.Document {
	out := document.Document{Pages: make([]document.Page, len(f.doc.Pages))}
	for i, p := range f.doc.Pages {
		runs := make([]document.Run, len(p.Runs))
		copy(runs, p.Runs)
		out.Pages[i] = document.Page{Runs: runs, Handle: PageInfo{Index: i}}
	}
	return out
}

// ParseTextContent reads {"pages":[{"items":[{"id","str","hasEOL"}]}]}.
// Items without "str" (marked-content markers) are skipped. Items without
// an id get a stable one derived from their page and item index.
func ParseTextContent(data []byte) (*Fixed, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	pages := gjson.GetBytes(data, "pages")
	if !pages.IsArray() {
		return nil, fmt.Errorf("%w: missing pages array", ErrMalformed)
	}

	var doc document.Document
	var parseErr error
	pages.ForEach(func(_, page gjson.Result) bool {
		pi := len(doc.Pages)
		items := page.Get("items")
		if items.Exists() && !items.IsArray() {
			parseErr = fmt.Errorf("%w: page %d items is not an array", ErrMalformed, pi)
			return false
		}
		var runs []document.Run
		for ii, item := range items.Array() {
			str := item.Get("str")
			if !str.Exists() {
				continue
			}
			id := item.Get("id").String()
			if id == "" {
				id = uuid.NewSHA1(runNamespace, []byte(strconv.Itoa(pi)+"/"+strconv.Itoa(ii))).String()
			}
			runs = append(runs, document.Run{ID: id, Text: str.String(), EndOfLine: item.Get("hasEOL").Bool()})
		}
		doc.Pages = append(doc.Pages, document.Page{Runs: runs})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if doc.Empty() {
		return nil, ErrEmptyDocument
	}
	return &Fixed{doc: doc}, nil
}

// ExportTextContent writes doc in the shape ParseTextContent reads.
func ExportTextContent(doc document.Document) ([]byte, error) {
	out := []byte(`{"pages":[]}`)
	var err error
	for pi, page := range doc.Pages {
		out, err = sjson.SetRawBytes(out, fmt.Sprintf("pages.%d", pi), []byte(`{"items":[]}`))
		if err != nil {
			return nil, fmt.Errorf("layout: export page %d: %w", pi, err)
		}
		for ri, run := range page.Runs {
			item := []byte(`{}`)
			if item, err = sjson.SetBytes(item, "id", run.ID); err == nil {
				if item, err = sjson.SetBytes(item, "str", run.Text); err == nil {
					item, err = sjson.SetBytes(item, "hasEOL", run.EndOfLine)
				}
			}
			if err == nil {
				out, err = sjson.SetRawBytes(out, fmt.Sprintf("pages.%d.items.%d", pi, ri), item)
			}
			if err != nil {
				return nil, fmt.Errorf("layout: export page %d run %d: %w", pi, ri, err)
			}
		}
	}
	return out, nil
}
