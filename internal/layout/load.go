package layout

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/kk-code-lab/runmark/internal/logging"
)

// Load reads path and returns a layouter for it.
func Load(path string, opts Options) (Layouter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	l, err := LoadBytes(path, data, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: load %s: %w", path, err)
	}
	return l, nil
}

// LoadBytes picks the input format from name and content. A .json name or
// a valid JSON object is read as a text-content export.
func LoadBytes(name string, data []byte, opts Options) (Layouter, error) {
	log := logging.For("layout")
	if isJSONInput(name, data) {
		fixed, err := ParseTextContent(data)
		if err != nil {
			return nil, err
		}
		log.Debug("loaded text-content JSON", "name", name, "pages", len(fixed.doc.Pages), "runs", fixed.doc.RunCount())
		return fixed, nil
	}
	if !IsText(name, data) {
		return nil, ErrNotText
	}
	flow, err := NewFlow(NormalizeText(data), opts)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded plain text", "name", name, "pages", flow.PageCount())
	return flow, nil
}

func isJSONInput(name string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return true
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{' && gjson.ValidBytes(trimmed)
}
